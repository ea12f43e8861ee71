package game

import (
	"math"
	"sync"
	"testing"

	"github.com/gonewx/ravelight/internal/lighting"
)

func TestLightTextureCacheIdentity(t *testing.T) {
	cache := NewLightTextureCache()

	a := cache.Get(TextureRadial, 300, 300)
	b := cache.Get(TextureRadial, 300, 300)
	if a != b {
		t.Error("same key must return the same texture")
	}

	// 四舍五入后相同的尺寸命中同一个键
	if c := cache.Get(TextureRadial, 299.6, 0); c != a {
		t.Error("radial keys ignore height and round the radius")
	}

	beam := cache.Get(TextureBeam, 50, 200)
	if beam == a {
		t.Error("different kinds must not share an entry")
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}
}

func TestLightTextureCacheDimensions(t *testing.T) {
	cache := NewLightTextureCache()

	tests := []struct {
		name  string
		kind  TextureKind
		w, h  float64
		wantW int
		wantH int
	}{
		{"径向贴图直径为2r", TextureRadial, 40, 40, 80, 80},
		{"光束贴图", TextureBeam, 30, 120, 30, 120},
		{"手电筒贴图", TextureFlashlight, 96, 144, 96, 144},
		{"零尺寸按1处理", TextureBeam, 0, 0, 1, 1},
		{"负尺寸按1处理", TextureRadial, -5, -5, 2, 2},
		{"径向贴图边长不超过上限", TextureRadial, 50000, 50000, MaxTextureDim, MaxTextureDim},
		{"光束贴图边长不超过上限", TextureBeam, 20, 1e9, 20, MaxTextureDim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := cache.Get(tt.kind, tt.w, tt.h)
			b := tex.Pixels.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if w, h := tex.Key.Size(); w != tt.wantW || h != tt.wantH {
				t.Errorf("Key.Size() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLightTextureCacheConcurrentGet(t *testing.T) {
	cache := NewLightTextureCache()

	var wg sync.WaitGroup
	results := make([]*LightTexture, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Get(TextureBeam, 20, 60)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent Get must converge on one texture")
		}
	}
}

func TestTextureKeyFor(t *testing.T) {
	const tile = 48.0

	pulsate := lighting.NewDescriptor(lighting.TypePulsate)
	flash := lighting.NewDescriptor(lighting.TypeFlashlight)
	beam := lighting.NewDescriptor(lighting.TypeBeam)
	fire := lighting.NewDescriptor(lighting.TypeFire)

	tests := []struct {
		name string
		d    lighting.Descriptor
		want TextureKey
	}{
		{"脉冲光使用最大半径", pulsate, TextureKey{TextureRadial, 350, 350}},
		{"手电筒按格子换算", flash, TextureKey{TextureFlashlight, 8 * 48, 12 * 48}},
		{"光束", beam, TextureKey{TextureBeam, 50, 200}},
		{"火光", fire, TextureKey{TextureRadial, 300, 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextureKeyFor(&tt.d, tile); got != tt.want {
				t.Errorf("TextureKeyFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextureScaleFor(t *testing.T) {
	const tile = 48.0

	tests := []struct {
		name         string
		note         string
		wantKey      TextureKey
		wantX, wantY float64
	}{
		{"未截断时不缩放", "light 300 #FFFFFF", TextureKey{TextureRadial, 300, 300}, 1, 1},
		{"径向贴图截断", "light 8192 #FFFFFF", TextureKey{TextureRadial, MaxTextureDim / 2, MaxTextureDim / 2}, 4, 4},
		{"脉冲光按最大半径截断", "pulsate #FFFFFF 1 100 3072", TextureKey{TextureRadial, MaxTextureDim / 2, MaxTextureDim / 2}, 1.5, 1.5},
		{"光束只截断长度", "beam 40 10000 1 0 1", TextureKey{TextureBeam, 40, MaxTextureDim}, 1, 10000.0 / MaxTextureDim},
		{"手电筒按像素截断", "flashlight 4 100 #FFFFFF", TextureKey{TextureFlashlight, 4 * 48, MaxTextureDim}, 1, 4800.0 / MaxTextureDim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := lighting.Parse(tt.note, nil)[0]
			if got := TextureKeyFor(&d, tile); got != tt.wantKey {
				t.Errorf("TextureKeyFor() = %v, want %v", got, tt.wantKey)
			}
			sx, sy := TextureScaleFor(&d, tile)
			if math.Abs(sx-tt.wantX) > 1e-12 || math.Abs(sy-tt.wantY) > 1e-12 {
				t.Errorf("TextureScaleFor() = (%v, %v), want (%v, %v)", sx, sy, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestLightTextureCachePrewarm(t *testing.T) {
	cache := NewLightTextureCache()
	descs := lighting.Parse("light 100 #FFFFFF", nil)
	descs = append(descs, lighting.Parse("flicker 100 #FF0000 30", nil)...)
	descs = append(descs, lighting.Parse("beam 10 40 1 0 2", nil)...)

	// light 与 flicker 半径相同，共享一张贴图
	if n := cache.Prewarm(descs, 48); n != 2 {
		t.Errorf("Prewarm() created %d textures, want 2", n)
	}
	if n := cache.Prewarm(descs, 48); n != 0 {
		t.Errorf("second Prewarm() created %d textures, want 0", n)
	}
}
