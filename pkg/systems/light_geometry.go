package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ravelight/pkg/components"
)

// 贴图锚点：径向贴图以中心为原点，光锥和光束以上边中点为原点（向下延伸）
const (
	radialAnchorX = 0.5
	radialAnchorY = 0.5
	coneAnchorX   = 0.5
	coneAnchorY   = 0.0
)

// DirectionAngle 把事件朝向转换为灯光旋转角（弧度）
//
// 贴图默认朝下，旋转为屏幕坐标系下的顺时针方向：
//
//	下(2)=0  上(8)=π  左(4)=π/2  右(6)=-π/2
//
// 非法朝向按朝下处理。
func DirectionAngle(dir components.Direction) float64 {
	switch dir {
	case components.DirUp:
		return math.Pi
	case components.DirLeft:
		return math.Pi / 2
	case components.DirRight:
		return -math.Pi / 2
	default:
		return 0
	}
}

// NormalizeAngle 把角度规范到 [-π, π]
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	if a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// SmoothRotate 沿最短路径把 current 向 target 转动 factor 比例，返回规范化后的角度
func SmoothRotate(current, target, factor float64) float64 {
	diff := NormalizeAngle(target) - NormalizeAngle(current)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	}
	if diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return NormalizeAngle(current + diff*factor)
}

// TargetAngle 返回从 from 指向 to 的旋转角，与 DirectionAngle 使用同一约定
func TargetAngle(from, to mgl64.Vec2) float64 {
	d := to.Sub(from)
	return math.Atan2(d.Y(), d.X()) - math.Pi/2
}

// viewport 视口矩形（已按缓冲区扩展）
type viewport struct {
	minX, minY, maxX, maxY float64
}

// newViewport 创建向四周扩展 buffer 像素的视口
func newViewport(width, height int, buffer float64) viewport {
	return viewport{
		minX: -buffer,
		minY: -buffer,
		maxX: float64(width) + buffer,
		maxY: float64(height) + buffer,
	}
}

// intersectsCircle 以 origin 为中心、reach 为半径的包围盒是否与视口相交
func (v viewport) intersectsCircle(origin mgl64.Vec2, reach float64) bool {
	return origin.X()+reach >= v.minX && origin.X()-reach <= v.maxX &&
		origin.Y()+reach >= v.minY && origin.Y()-reach <= v.maxY
}
