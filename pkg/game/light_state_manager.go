package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// 存储路径常量
const (
	lightStateObject   = "lighting"
	lightStateProperty = "state"
)

// LightStateManager 负责灯光开关/追踪状态的持久化
//
// 灯光状态属于存档数据：关掉的灯在重新进入游戏后仍保持关闭。
// gdataManager 为 nil 时进入降级模式，状态只保存在内存中。
type LightStateManager struct {
	gdataManager *gdata.Manager
	state        *LightState
}

// NewLightStateManager 创建灯光状态管理器并尝试加载已保存的状态
//
// 加载失败不是致命错误：记录日志并使用空状态。
func NewLightStateManager(gdataManager *gdata.Manager) *LightStateManager {
	lm := &LightStateManager{
		gdataManager: gdataManager,
		state:        NewLightState(),
	}
	if err := lm.Load(); err != nil {
		log.Printf("[LightStateManager] Warning: %v (starting with all lights on)", err)
	}
	return lm
}

// State 返回当前灯光状态，系统和命令都直接修改这个实例
func (lm *LightStateManager) State() *LightState {
	return lm.state
}

// Load 从 gdata 重新加载灯光状态，失败时状态被重置为空
//
// 加载会原地替换 State() 返回实例的内容，已持有该指针的系统无需重新获取。
func (lm *LightStateManager) Load() error {
	var loaded LightState
	found, err := loadYAMLProp(lm.gdataManager, lightStateObject, lightStateProperty, &loaded)
	if err != nil || !found {
		lm.state.Reset()
		return err
	}

	loaded.ensureMaps()
	*lm.state = loaded
	log.Printf("[LightStateManager] Loaded %d switch(es), %d beam target(s), %d flashlight target(s)",
		len(loaded.On), len(loaded.BeamTracking), len(loaded.FlashlightTracking))
	return nil
}

// Save 保存灯光状态，降级模式下直接返回 nil
func (lm *LightStateManager) Save() error {
	if err := saveYAMLProp(lm.gdataManager, lightStateObject, lightStateProperty, lm.state); err != nil {
		return err
	}
	if lm.gdataManager != nil {
		log.Printf("[LightStateManager] Light state saved")
	}
	return nil
}

// Execute 执行灯光命令并立即保存
//
// 命令执行失败时不保存；保存失败只记录日志，命令效果仍然生效。
func (lm *LightStateManager) Execute(name string, args ...string) error {
	if err := ExecuteLightCommand(lm.state, name, args); err != nil {
		return err
	}
	if err := lm.Save(); err != nil {
		log.Printf("[LightStateManager] Warning: %v", err)
	}
	return nil
}
