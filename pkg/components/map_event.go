package components

// Direction 四方向朝向，数值与小键盘方向一致
type Direction int

const (
	DirDown  Direction = 2
	DirLeft  Direction = 4
	DirRight Direction = 6
	DirUp    Direction = 8
)

// IsValid 是否为四个合法方向之一
func (d Direction) IsValid() bool {
	switch d {
	case DirDown, DirLeft, DirRight, DirUp:
		return true
	}
	return false
}

// PositionComponent 实体在屏幕上的位置（像素，脚底中心）
type PositionComponent struct {
	X, Y float64
}

// FacingComponent 实体当前朝向
// 未追踪目标的手电筒和不自旋的光束沿此方向照射
type FacingComponent struct {
	Direction Direction
}

// PlayerComponent 玩家标记组件，每张地图最多一个
type PlayerComponent struct{}

// MapEventComponent 地图事件组件
// EventID 是地图内的事件编号，追踪命令通过它查找目标
type MapEventComponent struct {
	EventID int
	Name    string

	// Pages 事件页的注释文本，ActivePage 为当前生效页的下标（-1 表示无生效页）
	Pages      []string
	ActivePage int
}

// ActiveNote 返回当前生效页的注释，没有生效页时返回空字符串
func (e *MapEventComponent) ActiveNote() string {
	if e.ActivePage < 0 || e.ActivePage >= len(e.Pages) {
		return ""
	}
	return e.Pages[e.ActivePage]
}

// PatrolComponent 让事件在路点之间往返移动（演示地图用）
type PatrolComponent struct {
	Waypoints []PositionComponent
	Speed     float64 // 像素/帧
	Target    int     // 当前目标路点下标
}
