package game

import (
	"log"

	"github.com/gonewx/ravelight/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// DefaultAppName gdata 存储使用的应用名
const DefaultAppName = "ravelight"

// ScreenTone 屏幕色调，每个通道范围 [-255, 255]
// 负的 R/G/B 会压暗画面，正的 R/G/B 以加色提亮，Gray 把压暗遮罩向灰度混合
type ScreenTone struct {
	R    float64 `yaml:"r"`
	G    float64 `yaml:"g"`
	B    float64 `yaml:"b"`
	Gray float64 `yaml:"gray"`
}

// IsDark 是否至少有一个通道为负（即需要绘制黑暗遮罩）
func (t ScreenTone) IsDark() bool {
	return t.R < 0 || t.G < 0 || t.B < 0
}

// IsBright 是否至少有一个通道为正（即需要叠加提亮）
func (t ScreenTone) IsBright() bool {
	return t.R > 0 || t.G > 0 || t.B > 0
}

// Clamped 返回每个通道限制在 [-255, 255]（Gray 为 [0, 255]）后的色调
func (t ScreenTone) Clamped() ScreenTone {
	return ScreenTone{
		R:    clampRange(t.R, -255, 255),
		G:    clampRange(t.G, -255, 255),
		B:    clampRange(t.B, -255, 255),
		Gray: clampRange(t.Gray, 0, 255),
	}
}

// GameState 存储跨场景、跨系统共享的运行时状态
//
// 不再是单例：由 app 或测试显式创建并注入到场景和系统中。
type GameState struct {
	// FrameCount 全局帧计数，每次 Update 递增。光束颜色循环以它为时钟
	FrameCount uint64

	// Tone 当前屏幕色调
	Tone ScreenTone

	gdataManager      *gdata.Manager // 可为 nil（降级模式）
	lightStateManager *LightStateManager
	settingsManager   *SettingsManager
}

// NewGameState 打开 gdata 存储并创建 GameState
//
// gdata 初始化失败时记录日志并进入降级模式（不持久化），游戏仍可运行。
func NewGameState(appName string) *GameState {
	if dir, err := utils.PrepareStorage(); err != nil {
		log.Printf("[GameState] Warning: storage directory not ready: %v", err)
	} else if dir != "" {
		log.Printf("[GameState] Storage directory: %s", dir)
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[GameState] Warning: gdata unavailable: %v (state will not be persisted)", err)
		manager = nil
	}
	return NewGameStateWithStorage(manager)
}

// NewGameStateWithStorage 使用给定的 gdata Manager 创建 GameState，manager 可为 nil
func NewGameStateWithStorage(manager *gdata.Manager) *GameState {
	return &GameState{
		gdataManager:      manager,
		lightStateManager: NewLightStateManager(manager),
		settingsManager:   NewSettingsManager(manager),
	}
}

// Tick 推进一帧
func (gs *GameState) Tick() {
	gs.FrameCount++
}

// SetTone 设置屏幕色调（自动限制范围）
func (gs *GameState) SetTone(tone ScreenTone) {
	gs.Tone = tone.Clamped()
}

// Lights 返回全局灯光开关/追踪状态
func (gs *GameState) Lights() *LightState {
	return gs.lightStateManager.State()
}

// GetLightStateManager 返回灯光状态管理器
func (gs *GameState) GetLightStateManager() *LightStateManager {
	return gs.lightStateManager
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetGdataManager 返回 gdata 存储管理器，降级模式下为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
