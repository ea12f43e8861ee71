package lighting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, note string) Descriptor {
	t.Helper()
	ds := Parse(note, nil)
	require.Len(t, ds, 1, "note %q", note)
	return ds[0]
}

func TestParse_LightWithID(t *testing.T) {
	d := parseOne(t, "light 300 #FFFFFF 1")

	assert.Equal(t, TypeLight, d.Type)
	assert.Equal(t, 300.0, d.Radius)
	assert.Equal(t, White, d.Color)
	assert.Equal(t, 0.0, d.OffsetX)
	assert.Equal(t, 0.0, d.OffsetY)
	assert.Equal(t, 1, d.ID)
}

func TestParse_PhaseOffsets(t *testing.T) {
	blue := Color{B: 0xFF}
	red := Color{R: 0xFF}

	withOffsets := parseOne(t, "phase 300 20 #0000FF #FF0000 100 50 1")
	assert.Equal(t, 300.0, withOffsets.Radius)
	assert.Equal(t, 20, withOffsets.PhaseSpeed)
	assert.Equal(t, []Color{blue, red}, withOffsets.Colors)
	assert.Equal(t, 100.0, withOffsets.OffsetX)
	assert.Equal(t, 50.0, withOffsets.OffsetY)
	assert.Equal(t, 1, withOffsets.ID)

	noOffsets := parseOne(t, "phase 300 20 #0000FF #FF0000 1")
	assert.Equal(t, 300.0, noOffsets.Radius)
	assert.Equal(t, 20, noOffsets.PhaseSpeed)
	assert.Equal(t, []Color{blue, red}, noOffsets.Colors)
	assert.Zero(t, noOffsets.OffsetX)
	assert.Zero(t, noOffsets.OffsetY)
	assert.Equal(t, 1, noOffsets.ID)
}

func TestParse_TrailingChainRule(t *testing.T) {
	tests := []struct {
		name   string
		note   string
		wantX  float64
		wantY  float64
		wantID int
	}{
		{"无后缀", "light 200 #FFAA00", 0, 0, 1},
		{"仅ID", "light 200 #FFAA00 7", 0, 0, 7},
		{"偏移与ID", "light 200 #FFAA00 -10 24 3", -10, 24, 3},
		{"两个数字视为ID", "light 200 #FFAA00 10 4", 0, 0, 4},
		{"非数字ID", "light 200 #FFAA00 abc", 0, 0, 1},
		{"负ID回退默认", "light 200 #FFAA00 5 5 -2", 5, 5, 1},
		{"小数ID截断", "flicker 100 #FFFFFF 30 2.7", 0, 0, 2},
		{"手电偏移", "flashlight 4 6 #FFFFFF 0 12 9", 0, 12, 9},
		{"脉冲偏移", "pulsate #FF0000 0.5 250 350 8 -8 2", 8, -8, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseOne(t, tt.note)
			assert.Equal(t, tt.wantX, d.OffsetX)
			assert.Equal(t, tt.wantY, d.OffsetY)
			assert.Equal(t, tt.wantID, d.ID)
		})
	}
}

func TestParse_FirePositional(t *testing.T) {
	tests := []struct {
		name      string
		note      string
		wantSpeed float64
		wantMin   float64
		wantMax   float64
		wantX     float64
		wantY     float64
		wantID    int
	}{
		{"全默认", "fire 150 #FF6600", 2, 0.5, 0.9, 0, 0, 1},
		{"第三个参数是速度而非ID", "fire 150 #FF6600 4", 4, 0.5, 0.9, 0, 0, 1},
		{"完整参数加ID", "fire 150 #FF6600 3 0.2 0.7 5", 3, 0.2, 0.7, 0, 0, 5},
		{"完整参数加偏移", "fire 150 #FF6600 3 0.2 0.7 12 -6", 3, 0.2, 0.7, 12, -6, 1},
		{"完整参数加偏移与ID", "fire 150 #FF6600 3 0.2 0.7 12 -6 4", 3, 0.2, 0.7, 12, -6, 4},
		{"透明度越界回退", "fire 150 #FF6600 3 1.5 -1", 3, 0.5, 0.9, 0, 0, 1},
		{"最大值低于最小值", "fire 150 #FF6600 3 0.6 0.4", 3, 0.6, 0.9, 0, 0, 1},
		{"速度非法回退", "fire 150 #FF6600 -3", 2, 0.5, 0.9, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseOne(t, tt.note)
			assert.Equal(t, 150.0, d.Radius)
			assert.Equal(t, FireOrange, d.Color)
			assert.Equal(t, tt.wantSpeed, d.FireSpeed)
			assert.Equal(t, tt.wantMin, d.FireMinAlpha)
			assert.Equal(t, tt.wantMax, d.FireMaxAlpha)
			assert.Equal(t, tt.wantX, d.OffsetX)
			assert.Equal(t, tt.wantY, d.OffsetY)
			assert.Equal(t, tt.wantID, d.ID)
		})
	}
}

func TestParse_Beam(t *testing.T) {
	d := parseOne(t, "beam 50 200 1.0 0 3 2 #FFFFFF #FF0000 #00FF00 0 0 1")

	assert.Equal(t, 50.0, d.BeamWidth)
	assert.Equal(t, 200.0, d.BeamLength)
	assert.Equal(t, 1.0, d.BeamOpacity)
	assert.Equal(t, 0, d.BeamSpeed)
	assert.Equal(t, 3, d.BeamCount)
	assert.Equal(t, 2.0, d.SpinRate)
	assert.Equal(t, []Color{White, {R: 0xFF}, {G: 0xFF}}, d.Colors)
	assert.Equal(t, 1, d.ID)

	noSpin := parseOne(t, "beam 30 120 0.5 40 1 #00ff00 #0000ff 6")
	assert.Zero(t, noSpin.SpinRate)
	assert.Equal(t, 40, noSpin.BeamSpeed)
	assert.Equal(t, 0.5, noSpin.BeamOpacity)
	assert.Equal(t, []Color{{G: 0xFF}, {B: 0xFF}}, noSpin.Colors, "hex colours are case-insensitive")
	assert.Equal(t, 6, noSpin.ID)

	noColor := parseOne(t, "beam 30 120 2 0 0")
	assert.Equal(t, []Color{White}, noColor.Colors)
	assert.Equal(t, DefaultBeamOpacity, noColor.BeamOpacity, "opacity above 1 falls back")
	assert.Equal(t, DefaultBeamCount, noColor.BeamCount, "zero beams falls back")

	crowded := parseOne(t, "beam 30 120 1 0 2000000000 #FFFFFF 1")
	assert.Equal(t, MaxBeamCount, crowded.BeamCount, "beam count is capped")
	assert.Equal(t, "beam 30 120 1 0 64 0 #FFFFFF 0 0 1", crowded.Annotation())
}

func TestParse_Defaults(t *testing.T) {
	t.Run("脉冲最大半径小于最小半径", func(t *testing.T) {
		d := parseOne(t, "pulsate #FF0000 1 400 100")
		assert.Equal(t, DefaultPulsateMin, d.MinRadius)
		assert.Equal(t, DefaultPulsateMax, d.MaxRadius)
	})

	t.Run("相位颜色不足两个", func(t *testing.T) {
		d := parseOne(t, "phase 300 20 #0000FF 1")
		assert.Equal(t, []Color{White, White}, d.Colors)
	})

	t.Run("非法数字", func(t *testing.T) {
		d := parseOne(t, "light NaN #GGGGGG")
		assert.Equal(t, DefaultRadius, d.Radius)
		assert.Equal(t, White, d.Color)
	})

	t.Run("无穷大", func(t *testing.T) {
		d := parseOne(t, "flicker Inf #FFFFFF 0")
		assert.Equal(t, DefaultRadius, d.Radius)
		assert.Equal(t, DefaultFlickerInterval, d.FlickerInterval)
	})

	t.Run("手电筒", func(t *testing.T) {
		d := parseOne(t, "flashlight x 0 red")
		assert.Equal(t, DefaultConeWidth, d.ConeWidth)
		assert.Equal(t, DefaultConeLength, d.ConeLength)
		assert.Equal(t, White, d.Color)
	})
}

func TestParse_EmptyAndUnknown(t *testing.T) {
	assert.Empty(t, Parse("", nil))
	assert.Empty(t, Parse("   \n\t", nil))
	assert.Empty(t, Parse("light", nil), "a lone keyword is not an annotation")
	assert.Empty(t, Parse("torch 300 #FFFFFF", nil))
	assert.Len(t, Parse("LIGHT 300 #FFFFFF", nil), 1, "type keywords are case-insensitive")
}

func TestParse_NeverNaN(t *testing.T) {
	notes := []string{
		"light nan nan nan nan nan",
		"pulsate nan nan nan nan nan nan nan",
		"flicker nan nan nan nan nan nan",
		"flashlight nan nan nan nan nan nan",
		"phase nan nan nan nan nan nan",
		"fire nan nan nan nan nan nan nan nan",
		"beam nan nan nan nan nan nan nan nan nan",
		"beam 1e400 -1e400 0 0 0",
	}
	for _, note := range notes {
		for _, d := range Parse(note, nil) {
			for _, v := range []float64{
				d.OffsetX, d.OffsetY, d.Radius, d.PulsateSpeed, d.MinRadius, d.MaxRadius,
				d.ConeWidth, d.ConeLength, d.FireSpeed, d.FireMinAlpha, d.FireMaxAlpha,
				d.BeamWidth, d.BeamLength, d.BeamOpacity, d.SpinRate,
			} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "note %q produced %v", note, v)
			}
			assert.GreaterOrEqual(t, d.ID, 1)
		}
	}
}

func TestParse_CustomTypes(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Siren", []SubLight{
		{BaseType: TypePhase, Parameters: "300 20 #0000FF #FF0000"},
	})
	reg.Register("Campfire", []SubLight{
		{BaseType: TypeFire, Parameters: "200 #FF6600 3 0.4 0.8"},
		{BaseType: TypeLight, Parameters: "80 #FFCC88"},
	})

	siren := Parse("siren 2", reg)
	require.Len(t, siren, 1)
	assert.Equal(t, TypePhase, siren[0].Type)
	assert.Equal(t, 2, siren[0].ID)
	assert.Len(t, siren[0].Colors, 2)

	camp := Parse("CAMPFIRE 10 -20 5", reg)
	require.Len(t, camp, 2)
	assert.Equal(t, TypeFire, camp[0].Type)
	assert.Equal(t, TypeLight, camp[1].Type)
	for _, d := range camp {
		assert.Equal(t, 10.0, d.OffsetX)
		assert.Equal(t, -20.0, d.OffsetY)
		assert.Equal(t, 5, d.ID)
	}
	assert.Equal(t, 0.4, camp[0].FireMinAlpha)
	assert.Equal(t, 80.0, camp[1].Radius)
}

func TestRegistry_DropsUnknownSubLights(t *testing.T) {
	reg := NewRegistry()

	assert.Equal(t, 0, reg.Register("ghost", []SubLight{{BaseType: TypeUnknown, Parameters: "1 2 3"}}))
	_, ok := reg.Lookup("ghost")
	assert.False(t, ok)

	assert.Equal(t, 1, reg.Register(" Lamp ", []SubLight{
		{BaseType: TypeUnknown},
		{BaseType: TypeLight, Parameters: " 120 #FFFFFF "},
	}))
	lights, ok := reg.Lookup("lamp")
	require.True(t, ok)
	assert.Equal(t, "120 #FFFFFF", lights[0].Parameters)
	assert.Equal(t, []string{"lamp"}, reg.Names())

	assert.Equal(t, 0, reg.Register("", []SubLight{{BaseType: TypeLight}}))

	var nilReg *Registry
	_, ok = nilReg.Lookup("lamp")
	assert.False(t, ok)
}

func TestRegistry_ZeroValue(t *testing.T) {
	var reg Registry
	assert.Empty(t, reg.Names())

	require.NotPanics(t, func() {
		assert.Equal(t, 1, reg.Register("lamp", []SubLight{{BaseType: TypeLight, Parameters: "80 #FFCC88"}}))
	})
	ds := Parse("lamp 3", &reg)
	require.Len(t, ds, 1)
	assert.Equal(t, 80.0, ds[0].Radius)
	assert.Equal(t, 3, ds[0].ID)
}

func TestParseLightType(t *testing.T) {
	assert.Equal(t, TypeBeam, ParseLightType(" Beam "))
	assert.Equal(t, TypeUnknown, ParseLightType("spot"))
	assert.Equal(t, "flashlight", TypeFlashlight.String())
	assert.Equal(t, "unknown", TypeUnknown.String())
}
