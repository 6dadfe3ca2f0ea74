package picmix

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
	if got := cfg.RenderInterval(); got != 20*time.Millisecond {
		t.Errorf("RenderInterval = %v, want 20ms", got)
	}
}

func TestDecodeConfigOverridesDefaults(t *testing.T) {
	doc := `
definition = 2
allow_rotate = true
background = "#000"

[handle]
radius = 14

[scale]
mode = "width/height"

[move]
limit_mode = "picture"

[save]
format = "image/png"
`
	cfg, err := DecodeConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Definition != 2 || !cfg.AllowRotate || cfg.Background != "#000" {
		t.Errorf("top level = %v %v %q", cfg.Definition, cfg.AllowRotate, cfg.Background)
	}
	if cfg.Handle.Radius != 14 || cfg.Handle.Color != "#B4CF66" {
		t.Errorf("handle = %+v", cfg.Handle)
	}
	if cfg.Scale.Mode != ScaleFree || cfg.Scale.MinRatio != 0.5 {
		t.Errorf("scale = %+v", cfg.Scale)
	}
	if cfg.Move.LimitMode != LimitPicture {
		t.Errorf("limit mode = %s", cfg.Move.LimitMode)
	}
	if cfg.Save.Format != FormatPNG {
		t.Errorf("save format = %s", cfg.Save.Format)
	}
	// Untouched sections keep their defaults.
	if cfg.Add.Count != 5 || cfg.RenderIntervalMS != 20 {
		t.Errorf("defaults lost: add count %d, interval %d", cfg.Add.Count, cfg.RenderIntervalMS)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picmix.toml")
	if err := os.WriteFile(path, []byte("[add]\ncount = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Add.Count != 9 {
		t.Errorf("add count = %d, want 9", cfg.Add.Count)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !Is(err, ErrCodeInvalidConfig) {
		t.Errorf("missing file: err = %v, want INVALID_CONFIG", err)
	}
	cfg, err = LoadConfig("")
	if err != nil || cfg.Add.Count != 5 {
		t.Errorf("LoadConfig(\"\") = %d, %v", cfg.Add.Count, err)
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("PICMIX_HANDLE_RADIUS", "16")
	t.Setenv("PICMIX_RENDER_INTERVAL_MS", "5")
	t.Setenv("PICMIX_MOVE_LIMIT_MODE", "none")
	t.Setenv("PICMIX_ALLOW_REMOVE", "true")

	cfg, err := DecodeConfig(strings.NewReader("[handle]\nradius = 12\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Handle.Radius != 16 {
		t.Errorf("radius = %v, want 16 (env beats file)", cfg.Handle.Radius)
	}
	if cfg.RenderIntervalMS != 5 {
		t.Errorf("interval = %d, want 5", cfg.RenderIntervalMS)
	}
	if cfg.Move.LimitMode != LimitNone {
		t.Errorf("limit mode = %s, want none", cfg.Move.LimitMode)
	}
	if !cfg.AllowRemove {
		t.Error("allow remove not overridden")
	}
}

func TestConfigEnvInvalid(t *testing.T) {
	t.Setenv("PICMIX_HANDLE_RADIUS", "big")
	if _, err := LoadConfig(""); !Is(err, ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"zero definition", func(c *Config) { c.Definition = 0 }},
		{"negative interval", func(c *Config) { c.RenderIntervalMS = -1 }},
		{"zero radius", func(c *Config) { c.Handle.Radius = 0 }},
		{"negative line width", func(c *Config) { c.Line.Width = -1 }},
		{"zero min ratio", func(c *Config) { c.Scale.MinRatio = 0 }},
		{"negative count", func(c *Config) { c.Add.Count = -1 }},
		{"zero add scale", func(c *Config) { c.Add.ScaleHeight = 0 }},
		{"scale mode", func(c *Config) { c.Scale.Mode = "stretch" }},
		{"limit mode", func(c *Config) { c.Move.LimitMode = "edge" }},
		{"webp export", func(c *Config) { c.Save.Format = FormatWebP }},
		{"background", func(c *Config) { c.Background = "white" }},
		{"handle color", func(c *Config) { c.Handle.Color = "#12" }},
		{"negative button width", func(c *Config) { c.Remove.Width = -30 }},
		{"negative button height", func(c *Config) { c.Rotate.Height = -1 }},
		{"pivot below zero", func(c *Config) { c.Watermark.PivotX = -0.5 }},
		{"pivot above one", func(c *Config) { c.Remove.PivotY = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(&cfg)
			if err := cfg.Validate(); !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("Validate = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#fff", color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}, true},
		{"#B4CF66", color.NRGBA{0xB4, 0xCF, 0x66, 0xFF}, true},
		{" #11223380 ", color.NRGBA{0x11, 0x22, 0x33, 0x80}, true},
		{"transparent", color.NRGBA{}, true},
		{"fff", color.NRGBA{}, false},
		{"#ggg", color.NRGBA{}, false},
		{"#12345", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseColor(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteTOMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowRotate = true
	cfg.Rotate.URL = "file:///tmp/rotate.png"
	cfg.Save.Format = FormatBMP

	var buf bytes.Buffer
	if err := cfg.WriteTOML(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeConfig(&buf)
	if err != nil {
		t.Fatalf("decode written config: %v\n%s", err, buf.String())
	}
	if got != cfg {
		t.Errorf("round trip changed the config:\n got %+v\nwant %+v", got, cfg)
	}
}
