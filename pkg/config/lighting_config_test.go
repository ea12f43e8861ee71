package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gonewx/ravelight/internal/lighting"
)

func TestParseLightingConfigDefaults(t *testing.T) {
	cfg, err := ParseLightingConfig([]byte("light_buffer: 100\n"))
	if err != nil {
		t.Fatalf("ParseLightingConfig() error: %v", err)
	}

	if cfg.LightBuffer != 100 {
		t.Errorf("LightBuffer = %v, want 100", cfg.LightBuffer)
	}
	if cfg.DarknessGamma != DefaultDarknessGamma {
		t.Errorf("DarknessGamma = %v, want default %v", cfg.DarknessGamma, DefaultDarknessGamma)
	}
	if cfg.TileSize != DefaultTileSize || cfg.TargetHeightOffset != DefaultTargetHeightOffset {
		t.Error("missing fields should keep their defaults")
	}
	if cfg.ScreenWidth != GameWindowWidth || cfg.ScreenHeight != GameWindowHeight {
		t.Errorf("screen = %dx%d", cfg.ScreenWidth, cfg.ScreenHeight)
	}
}

func TestLightingConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"负缓冲区", "light_buffer: -1", "light_buffer"},
		{"零gamma", "darkness_gamma: 0", "darkness_gamma"},
		{"零格子", "tile_size: 0", "tile_size"},
		{"平滑系数越界", "rotation_smoothing: 1.5", "rotation_smoothing"},
		{"屏幕尺寸", "screen_width: 0", "screen size"},
		{"非有限值", "light_buffer: .nan", "finite"},
		{"自定义类型名为空", "custom_light_types: [{name: '', lights: []}]", "name is empty"},
		{"与内置类型重名", "custom_light_types: [{name: Beam, lights: []}]", "built-in"},
		{"重复的自定义类型", "custom_light_types: [{name: a}, {name: A}]", "duplicate"},
		{"YAML格式错误", "light_buffer: [", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLightingConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected an error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildRegistry(t *testing.T) {
	cfg, err := ParseLightingConfig([]byte(`
custom_light_types:
  - name: Siren
    lights:
      - {base_type: phase, parameters: "300 20 #0000FF #FF0000"}
      - {base_type: laser, parameters: "1 2 3"}
  - name: broken
    lights:
      - {base_type: nope, parameters: ""}
`))
	if err != nil {
		t.Fatalf("ParseLightingConfig() error: %v", err)
	}

	reg := cfg.BuildRegistry()
	subs, ok := reg.Lookup("siren")
	if !ok {
		t.Fatal("siren should be registered")
	}
	if len(subs) != 1 || subs[0].BaseType != lighting.TypePhase {
		t.Errorf("siren sub-lights = %+v, want only the phase light", subs)
	}
	if _, ok := reg.Lookup("broken"); ok {
		t.Error("a type without valid lights must not be registered")
	}

	descs := lighting.Parse("SIREN 10 20 3", reg)
	if len(descs) != 1 || descs[0].ID != 3 || descs[0].OffsetX != 10 {
		t.Errorf("Parse via registry = %+v", descs)
	}
}

func TestLoadLightingConfigFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lighting.yaml")
	if err := os.WriteFile(path, []byte("darkness_gamma: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLightingConfig(path)
	if err != nil {
		t.Fatalf("LoadLightingConfig() error: %v", err)
	}
	if cfg.DarknessGamma != 0.5 {
		t.Errorf("DarknessGamma = %v, want 0.5", cfg.DarknessGamma)
	}

	if _, err := LoadLightingConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

// TestShippedLightingConfig 验证仓库自带的配置文件可以加载，且所有自定义类型都有效
func TestShippedLightingConfig(t *testing.T) {
	cfg, err := LoadLightingConfig(filepath.Join("..", "..", LightingConfigPath))
	if err != nil {
		t.Fatalf("shipped config: %v", err)
	}

	reg := cfg.BuildRegistry()
	for _, ct := range cfg.CustomLightTypes {
		subs, ok := reg.Lookup(ct.Name)
		if !ok || len(subs) != len(ct.Lights) {
			t.Errorf("custom type %q lost sub-lights: %d of %d", ct.Name, len(subs), len(ct.Lights))
		}
	}
}
