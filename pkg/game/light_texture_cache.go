package game

import (
	"fmt"
	"image"
	"log"
	"math"
	"sync"

	"github.com/gonewx/ravelight/internal/lighting"
	"github.com/gonewx/ravelight/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// TextureKind 程序生成的光照贴图种类
type TextureKind int

const (
	TextureRadial TextureKind = iota
	TextureBeam
	TextureFlashlight
)

// String 返回贴图种类名称
func (k TextureKind) String() string {
	switch k {
	case TextureRadial:
		return "radial"
	case TextureBeam:
		return "beam"
	case TextureFlashlight:
		return "flashlight"
	default:
		return fmt.Sprintf("TextureKind(%d)", int(k))
	}
}

// MaxTextureDim 生成贴图的最大边长（像素）
// 超出的灯光使用这个尺寸的贴图，绘制时由 TextureScaleFor 放大补偿
const MaxTextureDim = 4096

// TextureKey 贴图缓存键
// 径向贴图只使用 W（半径），H 恒等于 W
type TextureKey struct {
	Kind TextureKind
	W, H int
}

// String 返回可读的缓存键，如 "beam_50x200"
func (k TextureKey) String() string {
	return fmt.Sprintf("%s_%dx%d", k.Kind, k.W, k.H)
}

// Size 返回贴图的像素尺寸
func (k TextureKey) Size() (int, int) {
	if k.Kind == TextureRadial {
		return k.W * 2, k.W * 2
	}
	return k.W, k.H
}

// NewTextureKey 创建规范化的缓存键：尺寸四舍五入，限制在 [1, maxDim(kind)]
func NewTextureKey(kind TextureKind, w, h float64) TextureKey {
	limit := maxDim(kind)
	key := TextureKey{Kind: kind, W: roundDim(w, limit), H: roundDim(h, limit)}
	if kind == TextureRadial {
		key.H = key.W
	}
	return key
}

// TextureKeyFor 返回描述符渲染时使用的贴图键
// tileSize 用于把手电筒光锥的格子数换算为像素
func TextureKeyFor(d *lighting.Descriptor, tileSize float64) TextureKey {
	kind, w, h := textureExtent(d, tileSize)
	return NewTextureKey(kind, w, h)
}

// TextureScaleFor 返回绘制 TextureKeyFor 贴图时需要额外施加的缩放
// 贴图尺寸未被 MaxTextureDim 截断时为 (1, 1)
func TextureScaleFor(d *lighting.Descriptor, tileSize float64) (sx, sy float64) {
	kind, w, h := textureExtent(d, tileSize)
	key := NewTextureKey(kind, w, h)
	return capScale(w, key.W, maxDim(kind)), capScale(h, key.H, maxDim(kind))
}

// textureExtent 返回描述符所需贴图的种类和未截断的尺寸
func textureExtent(d *lighting.Descriptor, tileSize float64) (TextureKind, float64, float64) {
	switch d.Type {
	case lighting.TypePulsate:
		// 脉冲光使用最大半径的贴图，渲染时按当前半径缩放
		return TextureRadial, d.MaxRadius, d.MaxRadius
	case lighting.TypeFlashlight:
		return TextureFlashlight, d.ConeWidth * tileSize, d.ConeLength * tileSize
	case lighting.TypeBeam:
		return TextureBeam, d.BeamWidth, d.BeamLength
	default:
		return TextureRadial, d.Radius, d.Radius
	}
}

// maxDim 缓存键单个尺寸的上限；径向贴图的 W 是半径，边长为 2W
func maxDim(kind TextureKind) int {
	if kind == TextureRadial {
		return MaxTextureDim / 2
	}
	return MaxTextureDim
}

func capScale(requested float64, actual, limit int) float64 {
	if actual < limit || !(requested > float64(limit)) {
		return 1
	}
	return requested / float64(actual)
}

// LightTexture 缓存的一张光照贴图
//
// Pixels 是生成后不再修改的 CPU 图像；Image 在首次需要时才上传到 GPU，
// 因此解析工具和单元测试可以只使用 Pixels。
type LightTexture struct {
	Key    TextureKey
	Pixels *image.NRGBA

	once  sync.Once
	image *ebiten.Image
}

// Image 返回 GPU 贴图，首次调用时创建
func (t *LightTexture) Image() *ebiten.Image {
	t.once.Do(func() {
		t.image = ebiten.NewImageFromImage(t.Pixels)
	})
	return t.image
}

// LightTextureCache 按 (种类, 宽, 高) 缓存程序生成的光照贴图
//
// 只增不删：同一个键始终返回同一个 *LightTexture。
type LightTextureCache struct {
	mu       sync.RWMutex
	textures map[TextureKey]*LightTexture
}

// NewLightTextureCache 创建空缓存
func NewLightTextureCache() *LightTextureCache {
	return &LightTextureCache{textures: make(map[TextureKey]*LightTexture)}
}

// Get 返回指定种类和尺寸的贴图，不存在时生成
func (c *LightTextureCache) Get(kind TextureKind, w, h float64) *LightTexture {
	return c.GetKey(NewTextureKey(kind, w, h))
}

// GetKey 按缓存键返回贴图，不存在时生成
func (c *LightTextureCache) GetKey(key TextureKey) *LightTexture {
	c.mu.RLock()
	tex, ok := c.textures[key]
	c.mu.RUnlock()
	if ok {
		return tex
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if tex, ok := c.textures[key]; ok {
		return tex
	}

	tex = &LightTexture{Key: key, Pixels: generateTexture(key)}
	c.textures[key] = tex
	return tex
}

// Len 返回已缓存的贴图数量
func (c *LightTextureCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures)
}

// Prewarm 预先生成一组描述符需要的全部贴图，返回新生成的数量
// 在地图页面建立灯光时调用，避免第一帧渲染时集中生成
func (c *LightTextureCache) Prewarm(descriptors []lighting.Descriptor, tileSize float64) int {
	before := c.Len()
	for i := range descriptors {
		c.GetKey(TextureKeyFor(&descriptors[i], tileSize))
	}
	created := c.Len() - before
	if created > 0 {
		log.Printf("[LightTextureCache] Pre-generated %d texture(s), %d cached", created, c.Len())
	}
	return created
}

func generateTexture(key TextureKey) *image.NRGBA {
	switch key.Kind {
	case TextureBeam:
		return utils.GenerateBeamLight(key.W, key.H)
	case TextureFlashlight:
		return utils.GenerateFlashlightCone(key.W, key.H, utils.FlashlightBlurRadius)
	default:
		return utils.GenerateRadialLight(key.W)
	}
}

func roundDim(v float64, limit int) int {
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	if v > float64(limit) {
		return limit
	}
	return int(math.Round(v))
}
