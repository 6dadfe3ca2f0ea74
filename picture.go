package picmix

import (
	"image"

	"github.com/google/uuid"
)

// Picture is one placed image in the scene. X and Y locate the top-left
// corner in canvas units. InitialWidth and InitialHeight keep the size at
// insertion time; they are the aspect and minimum-size reference for
// ratio scaling (see AspectRef).
//
// A Picture exclusively owns Image. Rotation replaces it with a freshly
// rasterized image; the old one is never drawn into.
type Picture struct {
	ID  string
	URL string

	X, Y          float64
	Width, Height float64

	InitialWidth, InitialHeight float64

	// Angle is the cumulative clockwise rotation in degrees, a multiple of
	// 90 in [0, 360).
	Angle int

	Image image.Image

	busy bool // a rotation is in flight
}

func newPicture(url string, img image.Image, x, y, w, h float64) *Picture {
	return &Picture{
		ID:            uuid.NewString(),
		URL:           url,
		X:             x,
		Y:             y,
		Width:         w,
		Height:        h,
		InitialWidth:  w,
		InitialHeight: h,
		Image:         img,
	}
}

// Bounds returns the picture rectangle.
func (p *Picture) Bounds() Rect {
	return Rect{p.X, p.Y, p.Width, p.Height}
}

// Points returns the corners in handle order: top-left, top-right,
// bottom-right, bottom-left.
func (p *Picture) Points() [4]Vec2 {
	return p.Bounds().Points()
}

// Center returns the center of the picture rectangle.
func (p *Picture) Center() Vec2 {
	return p.Bounds().Center()
}

// Contains reports whether pt falls on the picture.
func (p *Picture) Contains(pt Vec2) bool {
	c := p.Points()
	return PointInQuad(pt, c[0], c[1], c[2])
}

// AspectRef returns the insertion size as seen at the current angle: the
// initial width and height, swapped for quarter turns.
func (p *Picture) AspectRef() (w, h float64) {
	if p.Angle%180 != 0 {
		return p.InitialHeight, p.InitialWidth
	}
	return p.InitialWidth, p.InitialHeight
}

// Busy reports whether a rotation of this picture is still in flight.
func (p *Picture) Busy() bool {
	return p.busy
}
