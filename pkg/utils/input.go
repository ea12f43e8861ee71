// Package utils 提供平台、输入和贴图生成等通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerJustPressed 检查本帧是否刚发生点击或触摸，优先检测触摸
// 返回是否按下以及按下位置
func PointerJustPressed() (bool, int, int) {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// PointerPosition 返回当前指针位置：有触摸时为第一个触摸点，否则为鼠标位置
func PointerPosition() (int, int) {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		return ebiten.TouchPosition(ids[0])
	}
	return ebiten.CursorPosition()
}
