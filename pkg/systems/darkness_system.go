package systems

import (
	"image/color"
	"math"

	"github.com/gonewx/ravelight/pkg/components"
	"github.com/gonewx/ravelight/pkg/ecs"
	"github.com/gonewx/ravelight/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// blendMultiply 正片叠底：dst' = src*dst + dst*(1-srcA)
// 遮罩中被镂空（透明）的区域保持屏幕原色
var blendMultiply = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
	BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// DarknessColor 把屏幕色调换算为黑暗遮罩的填充色
//
// 计算步骤：
//  1. 负通道按 1 + v/255 衰减（正通道不变）
//  2. Gray 非零时各通道按 Gray/255 向平均值靠拢
//  3. 三个通道都为负时，取其中最小的绝对值 n，整体乘以 1 - (n/255)^gamma
//
// 色调没有负通道时返回白色（正片叠底后不改变画面）。正通道由 BrightenColor 处理。
func DarknessColor(tone game.ScreenTone, gamma float64) color.RGBA {
	tone = tone.Clamped()

	ch := [3]float64{
		math.Round(channelFactor(tone.R) * 255),
		math.Round(channelFactor(tone.G) * 255),
		math.Round(channelFactor(tone.B) * 255),
	}

	if tone.Gray != 0 {
		avg := (ch[0] + ch[1] + ch[2]) / 3
		k := tone.Gray / 255
		for i := range ch {
			ch[i] = clampFloat(ch[i]+(avg-ch[i])*k, 0, 255)
		}
	}

	negative := math.Min(negativePart(tone.R), math.Min(negativePart(tone.G), negativePart(tone.B)))
	darken := 0.0
	if negative > 0 {
		darken = math.Pow(negative/255, gamma)
	}

	return color.RGBA{
		R: uint8(math.Round(ch[0] * (1 - darken))),
		G: uint8(math.Round(ch[1] * (1 - darken))),
		B: uint8(math.Round(ch[2] * (1 - darken))),
		A: 0xFF,
	}
}

// BrightenColor 把色调的正通道换算为整屏加色叠加的颜色
// 每个正通道按原值叠加（负通道为 0），在遮罩之后绘制，因此同样作用于灯光区域。
// 色调没有正通道时返回透明黑。
func BrightenColor(tone game.ScreenTone) color.RGBA {
	tone = tone.Clamped()
	c := color.RGBA{
		R: uint8(math.Round(math.Max(tone.R, 0))),
		G: uint8(math.Round(math.Max(tone.G, 0))),
		B: uint8(math.Round(math.Max(tone.B, 0))),
	}
	if c != (color.RGBA{}) {
		c.A = 0xFF
	}
	return c
}

func channelFactor(v float64) float64 {
	if v < 0 {
		return 1 + v/255
	}
	return 1
}

func negativePart(v float64) float64 {
	if v < 0 {
		return -v
	}
	return 0
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// DarknessSystem 黑暗遮罩合成
//
// 每帧用 DarknessColor 填充离屏遮罩，以 destination-out 把每个可见灯光的贴图
// 从遮罩中擦除（不乘灯光透明度），再以正片叠底把遮罩叠加到屏幕上。
// 色调含正通道时，最后再以 BrightenColor 整屏加色叠加一次。
// 镂空与加色精灵使用同一组 Footprint，两者的位置和旋转一致。
type DarknessSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	cache         *game.LightTextureCache
	gamma         float64

	mask *ebiten.Image
}

// NewDarknessSystem 创建黑暗系统
func NewDarknessSystem(em *ecs.EntityManager, gs *game.GameState, cache *game.LightTextureCache, gamma float64) *DarknessSystem {
	return &DarknessSystem{
		entityManager: em,
		gameState:     gs,
		cache:         cache,
		gamma:         gamma,
	}
}

// Color 返回当前色调对应的遮罩填充色
func (s *DarknessSystem) Color() color.RGBA {
	return DarknessColor(s.gameState.Tone, s.gamma)
}

// Cutouts 返回本帧需要从遮罩中擦除的所有足迹（仅开启且可见的灯光）
func (s *DarknessSystem) Cutouts() []components.Footprint {
	lights := s.gameState.Lights()
	var out []components.Footprint
	for _, id := range ecs.GetEntitiesWith1[*components.LightComponent](s.entityManager) {
		light, _ := ecs.GetComponent[*components.LightComponent](s.entityManager, id)
		for _, inst := range light.Lights {
			if !inst.Runtime.Visible || !lights.IsOn(inst.Descriptor.ID) {
				continue
			}
			out = append(out, inst.Runtime.Footprints...)
		}
	}
	return out
}

// Brighten 返回当前色调对应的加色叠加颜色
func (s *DarknessSystem) Brighten() color.RGBA {
	return BrightenColor(s.gameState.Tone)
}

// Draw 合成黑暗遮罩并叠加到屏幕，然后叠加正通道提亮
// 色调为零时不绘制
func (s *DarknessSystem) Draw(screen *ebiten.Image) {
	tone := s.gameState.Tone
	if !tone.IsDark() && !tone.IsBright() {
		return
	}
	s.prepareMask(screen)

	if tone.IsDark() {
		s.mask.Fill(s.Color())
		for _, fp := range s.Cutouts() {
			op := &ebiten.DrawImageOptions{}
			op.GeoM = fp.GeoM()
			op.Blend = ebiten.BlendDestinationOut
			op.Filter = ebiten.FilterLinear
			s.mask.DrawImage(s.cache.GetKey(fp.Texture).Image(), op)
		}

		op := &ebiten.DrawImageOptions{}
		op.Blend = blendMultiply
		screen.DrawImage(s.mask, op)
	}

	if tone.IsBright() {
		s.mask.Fill(s.Brighten())
		op := &ebiten.DrawImageOptions{}
		op.Blend = ebiten.BlendLighter
		screen.DrawImage(s.mask, op)
	}
}

// prepareMask 确保离屏遮罩与屏幕尺寸一致
func (s *DarknessSystem) prepareMask(screen *ebiten.Image) {
	b := screen.Bounds()
	if s.mask == nil || s.mask.Bounds().Dx() != b.Dx() || s.mask.Bounds().Dy() != b.Dy() {
		if s.mask != nil {
			s.mask.Deallocate()
		}
		s.mask = ebiten.NewImage(b.Dx(), b.Dy())
	}
}
