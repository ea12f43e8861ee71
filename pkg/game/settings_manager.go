package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// DisplaySettings 全局显示设置
// 注意：这些设置与地图和灯光状态无关，只影响本机显示
type DisplaySettings struct {
	Fullscreen      bool `yaml:"fullscreen"`      // 启动时是否全屏
	DarknessEnabled bool `yaml:"darknessEnabled"` // 是否绘制黑暗遮罩
	LightsEnabled   bool `yaml:"lightsEnabled"`   // 是否绘制加色灯光精灵
	ShowDebug       bool `yaml:"showDebug"`       // 是否显示调试信息（灯光轮廓、帧计数）
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DisplaySettings {
	return &DisplaySettings{
		Fullscreen:      false,
		DarknessEnabled: true,
		LightsEnabled:   true,
		ShowDebug:       false,
	}
}

// SettingsManager 设置管理器
// 负责显示设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager   // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *DisplaySettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "display"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或属性不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	loaded := DefaultSettings()
	found, err := loadYAMLProp(sm.gdataManager, settingsObject, settingsProperty, loaded)
	if err != nil || !found {
		sm.settings = DefaultSettings()
		return err
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	return saveYAMLProp(sm.gdataManager, settingsObject, settingsProperty, sm.settings)
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *DisplaySettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// ToggleDarkness 切换黑暗遮罩，返回切换后的值
func (sm *SettingsManager) ToggleDarkness() bool {
	sm.settings.DarknessEnabled = !sm.settings.DarknessEnabled
	return sm.settings.DarknessEnabled
}

// ToggleLights 切换灯光精灵绘制，返回切换后的值
func (sm *SettingsManager) ToggleLights() bool {
	sm.settings.LightsEnabled = !sm.settings.LightsEnabled
	return sm.settings.LightsEnabled
}

// ToggleDebug 切换调试信息，返回切换后的值
func (sm *SettingsManager) ToggleDebug() bool {
	sm.settings.ShowDebug = !sm.settings.ShowDebug
	return sm.settings.ShowDebug
}
