package config

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gonewx/ravelight/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// LightMapDir 演示地图目录
const LightMapDir = "data/maps"

// MapTone 地图的屏幕色调，通道范围 [-255, 255]
type MapTone struct {
	R    float64 `yaml:"r"`
	G    float64 `yaml:"g"`
	B    float64 `yaml:"b"`
	Gray float64 `yaml:"gray"`
}

// MapPoint 地图格子坐标
type MapPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// MapPlayer 玩家初始位置与朝向
type MapPlayer struct {
	X         int `yaml:"x"`
	Y         int `yaml:"y"`
	Direction int `yaml:"direction"` // 2/4/6/8
}

// MapEventPage 事件页，Note 为该页的灯光注释
type MapEventPage struct {
	Note string `yaml:"note"`
}

// MapEvent 地图事件定义
type MapEvent struct {
	ID         int            `yaml:"id"`
	Name       string         `yaml:"name"`
	X          int            `yaml:"x"`
	Y          int            `yaml:"y"`
	Direction  int            `yaml:"direction"`
	Pages      []MapEventPage `yaml:"pages"`
	ActivePage int            `yaml:"active_page"`

	// Patrol 巡逻路点（格子坐标），为空表示静止
	Patrol      []MapPoint `yaml:"patrol"`
	PatrolSpeed float64    `yaml:"patrol_speed"` // 像素/帧
}

// MapCommand 演示地图的按键命令绑定，如 key "1" → "TurnOffLight 2"
type MapCommand struct {
	Key     string `yaml:"key"`
	Command string `yaml:"command"`
	Label   string `yaml:"label"`
}

// LightMapConfig 一张演示地图（data/maps/*.yaml）
type LightMapConfig struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Width    int          `yaml:"width"`  // 格子数
	Height   int          `yaml:"height"` // 格子数
	Tone     MapTone      `yaml:"tone"`
	Player   MapPlayer    `yaml:"player"`
	Events   []MapEvent   `yaml:"events"`
	Commands []MapCommand `yaml:"commands"`
}

// LoadLightMap 加载一张演示地图
func LoadLightMap(path string) (*LightMapConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map %s: %w", path, err)
	}
	m, err := ParseLightMap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// LightMapPath 返回地图ID对应的文件路径
func LightMapPath(id string) string {
	return path.Join(LightMapDir, id+".yaml")
}

// ListLightMaps 列出可用地图的ID（按名称排序）
func ListLightMaps() ([]string, error) {
	var (
		files []string
		err   error
	)
	pattern := path.Join(LightMapDir, "*.yaml")
	if embedded.IsInitialized() {
		files, err = embedded.Glob(pattern)
	} else {
		files, err = filepath.Glob(filepath.FromSlash(pattern))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}

	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, strings.TrimSuffix(filepath.Base(f), ".yaml"))
	}
	sort.Strings(ids)
	return ids, nil
}

// ParseLightMap 解析 YAML 格式的地图并验证
func ParseLightMap(data []byte) (*LightMapConfig, error) {
	var m LightMapConfig
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}
	if m.Player.Direction == 0 {
		m.Player.Direction = 2
	}
	for i := range m.Events {
		if m.Events[i].Direction == 0 {
			m.Events[i].Direction = 2
		}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map: %w", err)
	}
	return &m, nil
}

// Validate 验证地图有效性
//
// 检查：
//   - ID 非空，尺寸为正
//   - 玩家与事件在地图范围内，朝向合法
//   - 事件ID为正且不重复，ActivePage 在 [-1, len(Pages)) 内
//   - 按键命令的 Key 为单个字符且不重复
func (m *LightMapConfig) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("map id is empty")
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("map size must be positive, got %dx%d", m.Width, m.Height)
	}
	if !m.inside(m.Player.X, m.Player.Y) {
		return fmt.Errorf("player (%d,%d) is outside the map", m.Player.X, m.Player.Y)
	}
	if !validDirection(m.Player.Direction) {
		return fmt.Errorf("player direction %d is invalid", m.Player.Direction)
	}

	ids := make(map[int]bool)
	for _, ev := range m.Events {
		if ev.ID <= 0 {
			return fmt.Errorf("event %q: id must be positive", ev.Name)
		}
		if ids[ev.ID] {
			return fmt.Errorf("event %d: duplicate id", ev.ID)
		}
		ids[ev.ID] = true

		if !m.inside(ev.X, ev.Y) {
			return fmt.Errorf("event %d: (%d,%d) is outside the map", ev.ID, ev.X, ev.Y)
		}
		if !validDirection(ev.Direction) {
			return fmt.Errorf("event %d: direction %d is invalid", ev.ID, ev.Direction)
		}
		if ev.ActivePage < -1 || (len(ev.Pages) > 0 && ev.ActivePage >= len(ev.Pages)) {
			return fmt.Errorf("event %d: active_page %d out of range", ev.ID, ev.ActivePage)
		}
		for _, p := range ev.Patrol {
			if !m.inside(p.X, p.Y) {
				return fmt.Errorf("event %d: patrol point (%d,%d) is outside the map", ev.ID, p.X, p.Y)
			}
		}
		if len(ev.Patrol) > 0 && ev.PatrolSpeed <= 0 {
			return fmt.Errorf("event %d: patrol_speed must be positive", ev.ID)
		}
	}

	keys := make(map[string]bool)
	for _, c := range m.Commands {
		if len(c.Key) != 1 {
			return fmt.Errorf("command %q: key must be a single character", c.Command)
		}
		if keys[c.Key] {
			return fmt.Errorf("command key %q bound twice", c.Key)
		}
		keys[c.Key] = true
		if strings.TrimSpace(c.Command) == "" {
			return fmt.Errorf("command key %q has no command", c.Key)
		}
	}
	return nil
}

// TileCenter 返回格子脚底中心的屏幕坐标
func (m *LightMapConfig) TileCenter(x, y int, tileSize float64) (float64, float64) {
	return (float64(x) + 0.5) * tileSize, (float64(y) + 1) * tileSize
}

func (m *LightMapConfig) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

func validDirection(d int) bool {
	return d == 2 || d == 4 || d == 6 || d == 8
}
