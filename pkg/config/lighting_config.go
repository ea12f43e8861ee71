package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/gonewx/ravelight/internal/lighting"
	"github.com/gonewx/ravelight/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 窗口与地图格子常量
const (
	// GameWindowWidth 窗口逻辑宽度（像素）
	GameWindowWidth = 816
	// GameWindowHeight 窗口逻辑高度（像素）
	GameWindowHeight = 624
	// DefaultTileSize 地图格子边长（像素），手电筒光锥的格子数按它换算
	DefaultTileSize = 48.0
)

// 灯光系统默认参数
const (
	DefaultLightBuffer        = 350.0
	DefaultDarknessGamma      = 0.1
	DefaultTargetHeightOffset = 24.0
	DefaultRotationSmoothing  = 0.2
)

// LightingConfigPath 默认配置文件路径
const LightingConfigPath = "data/lighting.yaml"

// CustomSubLight 自定义灯光类型中的一个子灯光
type CustomSubLight struct {
	BaseType   string `yaml:"base_type"`  // 基础类型关键字，如 "phase"
	Parameters string `yaml:"parameters"` // 基础类型参数（不含类型关键字）
}

// CustomLightType 自定义灯光类型，注释中以 Name 作为类型关键字
type CustomLightType struct {
	Name   string           `yaml:"name"`
	Lights []CustomSubLight `yaml:"lights"`
}

// LightingConfig 灯光系统配置（data/lighting.yaml）
type LightingConfig struct {
	// LightBuffer 视口裁剪时向外扩展的像素，范围外的灯光不更新也不绘制
	LightBuffer float64 `yaml:"light_buffer"`
	// DarknessGamma 负色调到黑暗程度的指数曲线，越小越暗
	DarknessGamma float64 `yaml:"darkness_gamma"`
	// TileSize 格子边长（像素）
	TileSize float64 `yaml:"tile_size"`
	// TargetHeightOffset 追踪目标和手电筒原点向上抬高的像素（角色胸口高度）
	TargetHeightOffset float64 `yaml:"target_height_offset"`
	// RotationSmoothing 手电筒/光束每帧向目标角度转动的比例
	RotationSmoothing float64 `yaml:"rotation_smoothing"`

	ScreenWidth  int `yaml:"screen_width"`
	ScreenHeight int `yaml:"screen_height"`

	CustomLightTypes []CustomLightType `yaml:"custom_light_types"`
}

// DefaultLightingConfig 返回默认配置（无自定义类型）
func DefaultLightingConfig() *LightingConfig {
	return &LightingConfig{
		LightBuffer:        DefaultLightBuffer,
		DarknessGamma:      DefaultDarknessGamma,
		TileSize:           DefaultTileSize,
		TargetHeightOffset: DefaultTargetHeightOffset,
		RotationSmoothing:  DefaultRotationSmoothing,
		ScreenWidth:        GameWindowWidth,
		ScreenHeight:       GameWindowHeight,
	}
}

// LoadLightingConfig 加载灯光配置
//
// 优先从嵌入资源读取；embedded 未初始化时（命令行工具、测试）从磁盘读取。
//
// 参数:
//   - path: 配置文件路径（如 "data/lighting.yaml"）
//
// 返回:
//   - *LightingConfig: 缺省字段已填充默认值的配置
//   - error: 读取、解析或验证失败
func LoadLightingConfig(path string) (*LightingConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lighting config: %w", err)
	}
	cfg, err := ParseLightingConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseLightingConfig 解析 YAML 格式的灯光配置
// 未出现的字段使用默认值
func ParseLightingConfig(data []byte) (*LightingConfig, error) {
	cfg := DefaultLightingConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse lighting config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lighting config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 数值字段为有限值，LightBuffer >= 0，DarknessGamma/TileSize > 0
//   - RotationSmoothing 在 (0, 1] 内
//   - 屏幕尺寸为正
//   - 自定义类型名非空、不与内置类型重名、不重复
func (c *LightingConfig) Validate() error {
	for name, v := range map[string]float64{
		"light_buffer":         c.LightBuffer,
		"darkness_gamma":       c.DarknessGamma,
		"tile_size":            c.TileSize,
		"target_height_offset": c.TargetHeightOffset,
		"rotation_smoothing":   c.RotationSmoothing,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number", name)
		}
	}
	if c.LightBuffer < 0 {
		return fmt.Errorf("light_buffer must not be negative, got %v", c.LightBuffer)
	}
	if c.DarknessGamma <= 0 {
		return fmt.Errorf("darkness_gamma must be positive, got %v", c.DarknessGamma)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %v", c.TileSize)
	}
	if c.RotationSmoothing <= 0 || c.RotationSmoothing > 1 {
		return fmt.Errorf("rotation_smoothing must be in (0, 1], got %v", c.RotationSmoothing)
	}
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.ScreenWidth, c.ScreenHeight)
	}

	seen := make(map[string]bool)
	for i, ct := range c.CustomLightTypes {
		name := strings.ToLower(strings.TrimSpace(ct.Name))
		if name == "" {
			return fmt.Errorf("custom_light_types[%d]: name is empty", i)
		}
		if lighting.ParseLightType(name) != lighting.TypeUnknown {
			return fmt.Errorf("custom_light_types[%d]: %q shadows a built-in type", i, ct.Name)
		}
		if seen[name] {
			return fmt.Errorf("custom_light_types[%d]: duplicate name %q", i, ct.Name)
		}
		seen[name] = true
	}
	return nil
}

// BuildRegistry 按配置构建自定义灯光类型注册表
//
// 基础类型未知的子灯光会被丢弃并记录警告；没有有效子灯光的类型不注册。
func (c *LightingConfig) BuildRegistry() *lighting.Registry {
	reg := lighting.NewRegistry()
	for _, ct := range c.CustomLightTypes {
		subs := make([]lighting.SubLight, 0, len(ct.Lights))
		for _, l := range ct.Lights {
			t := lighting.ParseLightType(l.BaseType)
			if t == lighting.TypeUnknown {
				log.Printf("[LightingConfig] Warning: custom type %q: unknown base type %q (skipped)", ct.Name, l.BaseType)
				continue
			}
			subs = append(subs, lighting.SubLight{BaseType: t, Parameters: l.Parameters})
		}
		if reg.Register(ct.Name, subs) == 0 {
			log.Printf("[LightingConfig] Warning: custom type %q has no valid lights (not registered)", ct.Name)
		}
	}
	return reg
}

// readConfigFile 读取配置文件：embedded 已初始化时从嵌入资源读取，否则从磁盘读取
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
