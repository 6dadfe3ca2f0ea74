package picmix

import "strings"

// Vec2 is a 2D vector used for touch points, corners and sizes
// throughout the API. Coordinates are canvas units.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Points returns the four corners in handle order: top-left, top-right,
// bottom-right, bottom-left.
func (r Rect) Points() [4]Vec2 {
	return [4]Vec2{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
}

// Mode is the operation a touch gesture is currently driving.
type Mode uint8

const (
	ModeNone   Mode = iota // no gesture in progress
	ModeMove               // dragging the selected picture's body
	ModeScale              // dragging one of the four corner handles
	ModeRotate             // a rotate-button tap; never driven by touch-move
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeScale:
		return "scale"
	case ModeRotate:
		return "rotate"
	default:
		return "none"
	}
}

// ScaleMode selects how a corner drag resizes a picture.
type ScaleMode string

const (
	ScaleRatio ScaleMode = "ratio"        // aspect ratio locked to the insertion size
	ScaleFree  ScaleMode = "width/height" // width and height follow the corner independently
)

// LimitMode selects how far a picture may travel towards the canvas edges.
type LimitMode string

const (
	LimitNone    LimitMode = "none"    // no clamping
	LimitPicture LimitMode = "picture" // the picture stays inside the canvas
	LimitPoint   LimitMode = "point"   // handles stay one pick radius inside the canvas
)

// Format is the MIME type of an exported image.
type Format string

const (
	FormatPNG  Format = "image/png"
	FormatJPEG Format = "image/jpeg"
	FormatBMP  Format = "image/bmp"
	FormatWebP Format = "image/webp" // decode only; Save rejects it
)

// Ext returns the file extension used for temp files of this format.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatBMP:
		return ".bmp"
	case FormatWebP:
		return ".webp"
	default:
		return ".png"
	}
}

// ParseFormat accepts a MIME type or a short name such as "png", "jpg" or
// ".bmp".
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png", string(FormatPNG):
		return FormatPNG, nil
	case "jpg", "jpeg", string(FormatJPEG):
		return FormatJPEG, nil
	case "bmp", string(FormatBMP):
		return FormatBMP, nil
	case "webp", string(FormatWebP):
		return FormatWebP, nil
	}
	return "", newError(ErrCodeUnsupported, "unknown image format %q", s)
}
