package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ravelight/internal/lighting"
	"github.com/gonewx/ravelight/pkg/game"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// Footprint 一张光照贴图在屏幕上的摆放方式
//
// 加色灯光精灵和黑暗遮罩的镂空都从同一个 Footprint 计算变换，
// 因此两者的位置、旋转和缩放始终一致。
type Footprint struct {
	Texture game.TextureKey

	// X, Y 锚点在屏幕上的位置
	X, Y float64
	// Rotation 顺时针旋转（弧度，屏幕坐标系 y 向下）
	Rotation float64
	ScaleX   float64
	ScaleY   float64
	// AnchorX, AnchorY 锚点在贴图中的归一化位置，(0.5, 0.5) 为中心，(0.5, 0) 为上边中点
	AnchorX float64
	AnchorY float64
}

// Matrix 返回贴图像素坐标到屏幕坐标的仿射矩阵
// 顺序：平移锚点到原点 → 缩放 → 旋转 → 平移到 (X, Y)
func (f Footprint) Matrix() mgl64.Mat3 {
	w, h := f.Texture.Size()
	anchor := mgl64.Translate2D(-f.AnchorX*float64(w), -f.AnchorY*float64(h))
	scale := mgl64.Scale2D(f.ScaleX, f.ScaleY)
	rotate := mgl64.HomogRotate2D(f.Rotation)
	place := mgl64.Translate2D(f.X, f.Y)
	return place.Mul3(rotate).Mul3(scale).Mul3(anchor)
}

// GeoM 把 Matrix 转换为 ebiten 的 GeoM
func (f Footprint) GeoM() ebiten.GeoM {
	m := f.Matrix()
	var g ebiten.GeoM
	// mgl64 为列主序：At(row, col)
	g.SetElement(0, 0, m.At(0, 0))
	g.SetElement(0, 1, m.At(0, 1))
	g.SetElement(0, 2, m.At(0, 2))
	g.SetElement(1, 0, m.At(1, 0))
	g.SetElement(1, 1, m.At(1, 1))
	g.SetElement(1, 2, m.At(1, 2))
	return g
}

// Apply 把贴图像素坐标 (u, v) 变换到屏幕坐标
func (f Footprint) Apply(u, v float64) (float64, float64) {
	p := f.Matrix().Mul3x1(mgl64.Vec3{u, v, 1})
	return p.X(), p.Y()
}

// Bounds 返回贴图四个角变换后的轴对齐包围盒
func (f Footprint) Bounds() (minX, minY, maxX, maxY float64) {
	w, h := f.Texture.Size()
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {float64(w), 0}, {0, float64(h)}, {float64(w), float64(h)}} {
		x, y := f.Apply(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return minX, minY, maxX, maxY
}

// RenderSprite 一个加色灯光精灵的绘制参数
type RenderSprite struct {
	Footprint Footprint
	Tint      lighting.Color
	Alpha     float64
	Visible   bool
}

// LightSpriteComponent 实体上所有灯光的精灵，按 LightInstance.Handle 索引
// 普通灯光一个精灵，光束灯光每条光束一个精灵
type LightSpriteComponent struct {
	Sprites map[uuid.UUID][]RenderSprite
}
