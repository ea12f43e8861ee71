package utils

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// 光照贴图生成
//
// 所有贴图都是白色，颜色由渲染时的 ColorScale 染色。alpha 通道从 1 线性衰减到 0。
// 生成的是 *image.NRGBA，不依赖 GPU，调用方需要时再转换为 *ebiten.Image。

// FlashlightBlurRadius 手电筒光锥的模糊半径（像素）
const FlashlightBlurRadius = 8

// GenerateRadialLight 生成直径 2r 的径向渐变圆
// 中心 alpha=1，到半径 r 处衰减为 0；r < 1 时按 1 处理
func GenerateRadialLight(r int) *image.NRGBA {
	if r < 1 {
		r = 1
	}
	size := r * 2
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	radius := float64(r)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// 像素中心到圆心的距离
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			t := math.Sqrt(dx*dx+dy*dy) / radius
			img.SetNRGBA(x, y, whiteAlpha(1-t))
		}
	}
	return img
}

// GenerateBeamLight 生成宽 w、长 l 的光束贴图
// 渐变沿长度方向：y=0（光源端）alpha=1，y=l 处为 0
func GenerateBeamLight(w, l int) *image.NRGBA {
	w, l = atLeastOne(w), atLeastOne(l)
	img := image.NewNRGBA(image.Rect(0, 0, w, l))

	for y := 0; y < l; y++ {
		c := whiteAlpha(1 - (float64(y)+0.5)/float64(l))
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// GenerateFlashlightCone 生成手电筒光锥贴图
//
// 三角形顶点在 (w/2, 0)，底边在 y=l，alpha 沿长度方向从 1 衰减到 0，
// 之后做 blur 像素的盒式模糊使边缘柔和。blur <= 0 时不模糊。
func GenerateFlashlightCone(w, l, blur int) *image.NRGBA {
	w, l = atLeastOne(w), atLeastOne(l)
	bounds := image.Rect(0, 0, w, l)

	// 光栅化三角形得到覆盖率遮罩
	mask := image.NewAlpha(bounds)
	r := vector.NewRasterizer(w, l)
	r.MoveTo(float32(w)/2, 0)
	r.LineTo(float32(w), float32(l))
	r.LineTo(0, float32(l))
	r.ClosePath()
	r.Draw(mask, bounds, image.Opaque, image.Point{})

	img := image.NewNRGBA(bounds)
	for y := 0; y < l; y++ {
		fade := 1 - (float64(y)+0.5)/float64(l)
		for x := 0; x < w; x++ {
			coverage := float64(mask.AlphaAt(x, y).A) / 255
			img.SetNRGBA(x, y, whiteAlpha(fade*coverage))
		}
	}

	if blur > 0 {
		BoxBlurAlpha(img, blur)
	}
	return img
}

// BoxBlurAlpha 对 alpha 通道做三次可分离盒式模糊（近似高斯模糊）
// 只处理 alpha，RGB 保持不变，适用于纯白贴图
func BoxBlurAlpha(img *image.NRGBA, radius int) {
	if radius <= 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	alpha := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			alpha[y*w+x] = float64(img.NRGBAAt(b.Min.X+x, b.Min.Y+y).A)
		}
	}

	tmp := make([]float64, w*h)
	for pass := 0; pass < 3; pass++ {
		boxPass(alpha, tmp, w, h, radius, true)
		boxPass(tmp, alpha, w, h, radius, false)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			c.A = uint8(math.Round(clamp01(alpha[y*w+x]/255) * 255))
			img.SetNRGBA(b.Min.X+x, b.Min.Y+y, c)
		}
	}
}

// boxPass 一维滑动窗口平均，窗口外按 0 处理（边缘向透明衰减）
func boxPass(src, dst []float64, w, h, radius int, horizontal bool) {
	lines, length := h, w
	if !horizontal {
		lines, length = w, h
	}
	at := func(line, i int) int {
		if horizontal {
			return line*w + i
		}
		return i*w + line
	}
	window := float64(2*radius + 1)

	for line := 0; line < lines; line++ {
		sum := 0.0
		for i := -radius; i <= radius; i++ {
			if i >= 0 && i < length {
				sum += src[at(line, i)]
			}
		}
		for i := 0; i < length; i++ {
			dst[at(line, i)] = sum / window
			if out := i - radius; out >= 0 {
				sum -= src[at(line, out)]
			}
			if in := i + radius + 1; in < length {
				sum += src[at(line, in)]
			}
		}
	}
}

func whiteAlpha(a float64) color.NRGBA {
	return color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: uint8(math.Round(clamp01(a) * 255))}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
