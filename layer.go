package picmix

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// LayerKind names one of the four surfaces a Mixer composites.
type LayerKind uint8

const (
	LayerBackground LayerKind = iota // grid and guides, owned by the host
	LayerContent                     // every picture in paint order
	LayerOverlay                     // selection outline, handles, buttons, watermark
	LayerResult                      // export only, cleared after every Save
	layerCount
)

// String returns the lowercase layer name.
func (k LayerKind) String() string {
	switch k {
	case LayerBackground:
		return "background"
	case LayerContent:
		return "content"
	case LayerOverlay:
		return "overlay"
	case LayerResult:
		return "result"
	default:
		return "unknown"
	}
}

// Layer is a persistent CPU drawing surface. Its drawing methods take canvas
// units; the backing image is canvas size times the layer scale (definition
// times device pixel ratio), so a high-definition export needs no change in
// the caller's coordinates.
type Layer struct {
	img    *image.RGBA
	scale  float64
	w, h   float64
	interp xdraw.Interpolator
	ras    *vector.Rasterizer
}

// NewLayer creates a transparent layer of w×h canvas units at the given
// pixel scale.
func NewLayer(w, h, scale float64) *Layer {
	if scale <= 0 {
		scale = 1
	}
	pw := int(math.Ceil(w * scale))
	ph := int(math.Ceil(h * scale))
	return &Layer{
		img:    image.NewRGBA(image.Rect(0, 0, pw, ph)),
		scale:  scale,
		w:      w,
		h:      h,
		interp: xdraw.ApproxBiLinear,
		ras:    vector.NewRasterizer(pw, ph),
	}
}

// Image returns the backing image for direct reads or host uploads.
func (l *Layer) Image() *image.RGBA {
	return l.img
}

// Size returns the layer size in canvas units.
func (l *Layer) Size() (w, h float64) {
	return l.w, l.h
}

// Scale returns the number of pixels per canvas unit.
func (l *Layer) Scale() float64 {
	return l.scale
}

// SetInterpolator selects the resampling kernel used by DrawImage.
func (l *Layer) SetInterpolator(i xdraw.Interpolator) {
	l.interp = i
}

// Clear fills the layer with transparent black.
func (l *Layer) Clear() {
	clear(l.img.Pix)
}

// Fill replaces every pixel with c.
func (l *Layer) Fill(c color.Color) {
	draw.Draw(l.img, l.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect blends c over r.
func (l *Layer) FillRect(r Rect, c color.Color) {
	draw.Draw(l.img, l.pixelRect(r), image.NewUniform(c), image.Point{}, draw.Over)
}

// DrawImage scales src into r and blends it over the layer. Parts outside the
// layer are clipped.
func (l *Layer) DrawImage(src image.Image, r Rect) {
	if src == nil {
		return
	}
	dr := l.pixelRect(r)
	if dr.Empty() {
		return
	}
	l.interp.Scale(l.img, dr, src, src.Bounds(), xdraw.Over, nil)
}

// StrokeLine draws a segment of the given width with square caps.
func (l *Layer) StrokeLine(a, b Vec2, width float64, c color.Color) {
	l.ras.Reset(l.img.Bounds().Dx(), l.img.Bounds().Dy())
	l.segment(a, b, width)
	l.flush(c)
}

// StrokePolygon outlines the closed polygon through pts.
func (l *Layer) StrokePolygon(pts []Vec2, width float64, c color.Color) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	l.ras.Reset(l.img.Bounds().Dx(), l.img.Bounds().Dy())
	for i := range pts {
		l.segment(pts[i], pts[(i+1)%len(pts)], width)
	}
	l.flush(c)
}

// FillCircle fills a disc of radius r centered on center.
func (l *Layer) FillCircle(center Vec2, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	l.ras.Reset(l.img.Bounds().Dx(), l.img.Bounds().Dy())
	l.circle(center, r, false)
	l.flush(c)
}

// StrokeCircle outlines a circle of radius r. The stroke is centered on the
// circle.
func (l *Layer) StrokeCircle(center Vec2, r, width float64, c color.Color) {
	if r <= 0 || width <= 0 {
		return
	}
	l.ras.Reset(l.img.Bounds().Dx(), l.img.Bounds().Dy())
	l.circle(center, r+width/2, false)
	if inner := r - width/2; inner > 0 {
		l.circle(center, inner, true)
	}
	l.flush(c)
}

func (l *Layer) flush(c color.Color) {
	l.ras.DrawOp = draw.Over
	l.ras.Draw(l.img, l.img.Bounds(), image.NewUniform(c), image.Point{})
}

// segment adds the quad covering a→b thickened by width. Each end is
// extended by half the width so that consecutive segments meet in a square
// corner.
func (l *Layer) segment(a, b Vec2, width float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	hw := width / 2
	ux, uy := dx/n*hw, dy/n*hw
	nx, ny := -uy, ux
	a = Vec2{a.X - ux, a.Y - uy}
	b = Vec2{b.X + ux, b.Y + uy}
	l.moveTo(a.X+nx, a.Y+ny)
	l.lineTo(b.X+nx, b.Y+ny)
	l.lineTo(b.X-nx, b.Y-ny)
	l.lineTo(a.X-nx, a.Y-ny)
	l.ras.ClosePath()
}

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// circle adds a closed circle path, clockwise unless ccw.
func (l *Layer) circle(c Vec2, r float64, ccw bool) {
	k := r * kappa
	s := 1.0
	if ccw {
		s = -1
	}
	l.moveTo(c.X+r, c.Y)
	l.cubeTo(c.X+r, c.Y+s*k, c.X+k, c.Y+s*r, c.X, c.Y+s*r)
	l.cubeTo(c.X-k, c.Y+s*r, c.X-r, c.Y+s*k, c.X-r, c.Y)
	l.cubeTo(c.X-r, c.Y-s*k, c.X-k, c.Y-s*r, c.X, c.Y-s*r)
	l.cubeTo(c.X+k, c.Y-s*r, c.X+r, c.Y-s*k, c.X+r, c.Y)
	l.ras.ClosePath()
}

func (l *Layer) moveTo(x, y float64) {
	l.ras.MoveTo(float32(x*l.scale), float32(y*l.scale))
}

func (l *Layer) lineTo(x, y float64) {
	l.ras.LineTo(float32(x*l.scale), float32(y*l.scale))
}

func (l *Layer) cubeTo(x1, y1, x2, y2, x, y float64) {
	s := l.scale
	l.ras.CubeTo(float32(x1*s), float32(y1*s), float32(x2*s), float32(y2*s), float32(x*s), float32(y*s))
}

// pixelRect converts a canvas rectangle to pixels, normalizing negative
// sizes.
func (l *Layer) pixelRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X*l.scale)),
		int(math.Round(r.Y*l.scale)),
		int(math.Round((r.X+r.Width)*l.scale)),
		int(math.Round((r.Y+r.Height)*l.scale)),
	)
}
