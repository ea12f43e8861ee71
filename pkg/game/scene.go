package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the client (currently a lit map).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by one tick.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 切换到另一张地图之前
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}
