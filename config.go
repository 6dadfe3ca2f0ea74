package picmix

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g.
// PICMIX_RENDER_INTERVAL_MS or PICMIX_HANDLE_RADIUS.
const EnvPrefix = "PICMIX"

// Config is the complete, resolved configuration of a Mixer. Build one with
// DefaultConfig or LoadConfig; NewMixer keeps its own copy, so changes made
// after construction have no effect.
type Config struct {
	// Definition multiplies the pixel density of every layer.
	Definition float64 `toml:"definition" split_words:"true"`
	// RenderIntervalMS is the minimum time between two processed touch moves.
	RenderIntervalMS int `toml:"render_interval_ms" split_words:"true"`

	AllowScale     bool `toml:"allow_scale" split_words:"true"`
	AllowMove      bool `toml:"allow_move" split_words:"true"`
	AllowRemove    bool `toml:"allow_remove" split_words:"true"`
	AllowRotate    bool `toml:"allow_rotate" split_words:"true"`
	AllowAutoTop   bool `toml:"allow_auto_top" split_words:"true"`
	AllowWatermark bool `toml:"allow_watermark" split_words:"true"`

	// Background fills the exported image behind the pictures.
	Background string `toml:"background"`

	Handle HandleConfig `toml:"handle"`
	Line   LineConfig   `toml:"line"`
	Scale  ScaleConfig  `toml:"scale"`
	Move   MoveConfig   `toml:"move"`
	Add    AddConfig    `toml:"add"`

	Remove    ButtonConfig `toml:"remove"`
	Rotate    ButtonConfig `toml:"rotate"`
	Watermark ButtonConfig `toml:"watermark"`

	Save SaveConfig `toml:"save"`
}

// HandleConfig styles the corner handles. Radius doubles as the pick radius.
type HandleConfig struct {
	Color  string  `toml:"color"`
	Radius float64 `toml:"radius"`
}

// LineConfig styles the selection outline.
type LineConfig struct {
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
}

// ScaleConfig controls corner-drag resizing.
type ScaleConfig struct {
	Mode ScaleMode `toml:"mode"`
	// MinRatio floors the width at MinRatio times the insertion width in
	// ratio mode.
	MinRatio float64 `toml:"min_ratio" split_words:"true"`
}

// MoveConfig controls bound clamping for moves, resizes and rotations.
type MoveConfig struct {
	LimitMode LimitMode `toml:"limit_mode" split_words:"true"`
}

// AddConfig controls picture insertion.
type AddConfig struct {
	// Count is the maximum number of pictures in the scene.
	Count int `toml:"count"`
	// ScaleWidth and ScaleHeight are the fractions of the canvas a new
	// picture is fitted into.
	ScaleWidth  float64 `toml:"scale_width" split_words:"true"`
	ScaleHeight float64 `toml:"scale_height" split_words:"true"`
}

// ButtonConfig places an overlay image. The image is centered on
// (anchor + size*pivot - offset), where anchor and size belong to the selected
// picture for buttons and to the canvas for the watermark. An empty URL uses
// the built-in image.
type ButtonConfig struct {
	URL     string  `toml:"url"`
	PivotX  float64 `toml:"pivot_x" split_words:"true"`
	PivotY  float64 `toml:"pivot_y" split_words:"true"`
	OffsetX float64 `toml:"offset_x" split_words:"true"`
	OffsetY float64 `toml:"offset_y" split_words:"true"`
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
}

// SaveConfig holds export defaults. SaveOptions override them per call.
type SaveConfig struct {
	Format Format `toml:"format"`
	// Quality in (0, 1] applies to JPEG. Anything else means 0.92.
	Quality float64 `toml:"quality"`
	// Dir receives the exported temp files. Empty means os.TempDir().
	Dir string `toml:"dir"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Definition:       1,
		RenderIntervalMS: 20,
		AllowScale:       true,
		AllowMove:        true,
		AllowRemove:      false,
		AllowRotate:      false,
		AllowAutoTop:     true,
		AllowWatermark:   true,
		Background:       "#fff",
		Handle:           HandleConfig{Color: "#B4CF66", Radius: 10},
		Line:             LineConfig{Color: "#B4CF66", Width: 2},
		Scale:            ScaleConfig{Mode: ScaleRatio, MinRatio: 0.5},
		Move:             MoveConfig{LimitMode: LimitPoint},
		Add:              AddConfig{Count: 5, ScaleWidth: 0.6, ScaleHeight: 0.4},
		Remove:           ButtonConfig{PivotX: 1, PivotY: 0, Width: 30, Height: 30},
		Rotate:           ButtonConfig{PivotX: 0.5, PivotY: 1, OffsetY: -24, Width: 30, Height: 30},
		Watermark:        ButtonConfig{PivotX: 0.5, PivotY: 0.5, Width: 60, Height: 30},
		Save:             SaveConfig{Format: FormatJPEG, Quality: 1},
	}
}

// LoadConfig resolves the effective configuration: defaults, then the TOML
// file at path (skipped when path is empty), then PICMIX_* environment
// overrides. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, wrapError(ErrCodeInvalidConfig, err, "decode %s", path)
		}
	}
	return resolve(cfg)
}

// DecodeConfig is LoadConfig for an in-memory TOML document.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return cfg, wrapError(ErrCodeInvalidConfig, err, "decode config")
	}
	return resolve(cfg)
}

func resolve(cfg Config) (Config, error) {
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, wrapError(ErrCodeInvalidConfig, err, "environment overrides")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WriteTOML writes the configuration as a TOML document.
func (c Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// RenderInterval returns RenderIntervalMS as a duration.
func (c Config) RenderInterval() time.Duration {
	return time.Duration(c.RenderIntervalMS) * time.Millisecond
}

// Validate checks ranges, enums and colors.
func (c Config) Validate() error {
	switch {
	case c.Definition <= 0:
		return newError(ErrCodeInvalidConfig, "definition must be positive, got %v", c.Definition)
	case c.RenderIntervalMS < 0:
		return newError(ErrCodeInvalidConfig, "render interval must not be negative, got %d", c.RenderIntervalMS)
	case c.Handle.Radius <= 0:
		return newError(ErrCodeInvalidConfig, "handle radius must be positive, got %v", c.Handle.Radius)
	case c.Line.Width < 0:
		return newError(ErrCodeInvalidConfig, "line width must not be negative, got %v", c.Line.Width)
	case c.Scale.MinRatio <= 0:
		return newError(ErrCodeInvalidConfig, "scale min ratio must be positive, got %v", c.Scale.MinRatio)
	case c.Add.Count < 0:
		return newError(ErrCodeInvalidConfig, "add count must not be negative, got %d", c.Add.Count)
	case c.Add.ScaleWidth <= 0 || c.Add.ScaleHeight <= 0:
		return newError(ErrCodeInvalidConfig, "add scale must be positive, got %vx%v", c.Add.ScaleWidth, c.Add.ScaleHeight)
	}

	switch c.Scale.Mode {
	case ScaleRatio, ScaleFree:
	default:
		return newError(ErrCodeInvalidConfig, "unknown scale mode %q", c.Scale.Mode)
	}
	switch c.Move.LimitMode {
	case LimitNone, LimitPicture, LimitPoint:
	default:
		return newError(ErrCodeInvalidConfig, "unknown limit mode %q", c.Move.LimitMode)
	}
	switch c.Save.Format {
	case FormatPNG, FormatJPEG, FormatBMP:
	default:
		return newError(ErrCodeInvalidConfig, "unsupported save format %q", c.Save.Format)
	}

	for name, b := range map[string]ButtonConfig{
		"remove":    c.Remove,
		"rotate":    c.Rotate,
		"watermark": c.Watermark,
	} {
		if err := b.validate(); err != nil {
			return wrapError(ErrCodeInvalidConfig, err, "%s button", name)
		}
	}

	for name, s := range map[string]string{
		"background":   c.Background,
		"handle color": c.Handle.Color,
		"line color":   c.Line.Color,
	} {
		if _, err := ParseColor(s); err != nil {
			return wrapError(ErrCodeInvalidConfig, err, "%s", name)
		}
	}
	return nil
}

func (b ButtonConfig) validate() error {
	switch {
	case b.Width < 0 || b.Height < 0:
		return fmt.Errorf("size must not be negative, got %vx%v", b.Width, b.Height)
	case b.PivotX < 0 || b.PivotX > 1 || b.PivotY < 0 || b.PivotY > 1:
		return fmt.Errorf("pivot must be within [0, 1], got (%v, %v)", b.PivotX, b.PivotY)
	}
	return nil
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" or "transparent".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "transparent" {
		return color.NRGBA{}, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("color %q: missing '#'", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: want 3, 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func mustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
