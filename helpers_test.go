package picmix

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"
	"time"
)

// memDecoder decodes "mem:WxH" into a solid image of that size. Any other
// source fails.
var memDecoder = DecoderFunc(func(_ context.Context, url string) (image.Image, error) {
	var w, h int
	if _, err := fmt.Sscanf(url, "mem:%dx%d", &w, &h); err != nil {
		return nil, fmt.Errorf("unknown source %q", url)
	}
	return solid(w, h, color.RGBA{0x20, 0x40, 0xC0, 0xFF}), nil
})

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// newTestMixer builds a mixer on a manual clock with the mem decoder.
func newTestMixer(t *testing.T, w, h float64, edit func(*Config), opts ...Option) (*Mixer, *ManualClock) {
	t.Helper()
	cfg := DefaultConfig()
	if edit != nil {
		edit(&cfg)
	}
	clock := NewManualClock(time.Unix(1000, 0))
	opts = append([]Option{WithDecoder(memDecoder), WithClock(clock)}, opts...)
	m, err := NewMixer(w, h, cfg, opts...)
	if err != nil {
		t.Fatalf("NewMixer: %v", err)
	}
	return m, clock
}

// allowEdits turns on the remove and rotate operations.
func allowEdits(c *Config) {
	c.AllowRemove = true
	c.AllowRotate = true
}

func mustAdd(t *testing.T, m *Mixer, url string) Picture {
	t.Helper()
	p, err := m.Add(context.Background(), url)
	if err != nil {
		t.Fatalf("Add(%q): %v", url, err)
	}
	return p
}

func mustTouchStart(t *testing.T, m *Mixer, x, y float64) {
	t.Helper()
	if err := m.TouchStart(context.Background(), x, y); err != nil {
		t.Fatalf("TouchStart(%v, %v): %v", x, y, err)
	}
}

// moveAfter advances the clock past the rate limit and moves.
func moveAfter(m *Mixer, clock *ManualClock, x, y float64) {
	clock.Advance(m.cfg.RenderInterval())
	m.TouchMove(x, y)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func rectOf(p Picture) Rect {
	return Rect{p.X, p.Y, p.Width, p.Height}
}

func rgbaAt(l *Layer, x, y int) color.RGBA {
	return l.Image().RGBAAt(x, y)
}

// cleared reports whether every pixel of l is fully transparent.
func cleared(l *Layer) bool {
	for _, b := range l.Image().Pix {
		if b != 0 {
			return false
		}
	}
	return true
}
