package components

import (
	"math"
	"testing"

	"github.com/gonewx/ravelight/pkg/game"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFootprintCenteredRadial(t *testing.T) {
	f := Footprint{
		Texture: game.NewTextureKey(game.TextureRadial, 50, 50),
		X:       200,
		Y:       100,
		ScaleX:  1,
		ScaleY:  1,
		AnchorX: 0.5,
		AnchorY: 0.5,
	}

	if x, y := f.Apply(50, 50); !near(x, 200) || !near(y, 100) {
		t.Errorf("texture centre maps to (%v, %v), want (200, 100)", x, y)
	}

	minX, minY, maxX, maxY := f.Bounds()
	if !near(minX, 150) || !near(minY, 50) || !near(maxX, 250) || !near(maxY, 150) {
		t.Errorf("Bounds() = (%v, %v, %v, %v), want (150, 50, 250, 150)", minX, minY, maxX, maxY)
	}
}

func TestFootprintRotatedBeam(t *testing.T) {
	// 上边中点锚定的光束旋转 π 后朝上
	f := Footprint{
		Texture:  game.NewTextureKey(game.TextureBeam, 40, 200),
		X:        300,
		Y:        300,
		Rotation: math.Pi,
		ScaleX:   1,
		ScaleY:   0.5,
		AnchorX:  0.5,
		AnchorY:  0,
	}

	if x, y := f.Apply(20, 0); !near(x, 300) || !near(y, 300) {
		t.Errorf("anchor maps to (%v, %v), want (300, 300)", x, y)
	}
	if x, y := f.Apply(20, 200); !near(x, 300) || !near(y, 200) {
		t.Errorf("beam tip maps to (%v, %v), want (300, 200)", x, y)
	}

	g := f.GeoM()
	gx, gy := g.Apply(20, 200)
	if !near(gx, 300) || !near(gy, 200) {
		t.Errorf("GeoM tip = (%v, %v), want (300, 200)", gx, gy)
	}
}
