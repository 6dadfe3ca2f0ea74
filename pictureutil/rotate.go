package pictureutil

import (
	"errors"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ErrAngle is returned by Rotate for angles that are not a multiple of 90.
var ErrAngle = errors.New("pictureutil: angle must be a multiple of 90")

// Rotate turns img clockwise by angle degrees. Half turns keep the canvas
// size; quarter turns swap width and height. The image is rotated about the
// canvas center, offset by half the size difference for quarter turns so
// that the content stays centered.
func Rotate(img image.Image, angle int) (*Result, error) {
	if angle%90 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrAngle, angle)
	}
	a := ((angle % 360) + 360) % 360

	b := img.Bounds()
	cw, ch := float64(b.Dx()), float64(b.Dy())
	var ox, oy float64
	if a%180 != 0 {
		cw, ch = ch, cw
		ox = (cw - ch) / 2
		oy = (ch - cw) / 2
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(cw), int(ch)))
	if b.Empty() {
		return newResult(dst), nil
	}
	xdraw.NearestNeighbor.Transform(dst, quarterTurn(a, cw, ch, ox-float64(b.Min.X), oy-float64(b.Min.Y)), img, b, xdraw.Src, nil)
	return newResult(dst), nil
}

// quarterTurn builds T(cw/2, ch/2) · R(a) · T(-cw/2, -ch/2) · T(tx, ty) for
// a in {0, 90, 180, 270}. Exact sines avoid resampling drift.
func quarterTurn(a int, cw, ch, tx, ty float64) f64.Aff3 {
	var cos, sin float64
	switch a {
	case 0:
		cos = 1
	case 90:
		sin = 1
	case 180:
		cos = -1
	case 270:
		sin = -1
	}
	cx, cy := cw/2, ch/2
	px, py := tx-cx, ty-cy
	return f64.Aff3{
		cos, -sin, cos*px - sin*py + cx,
		sin, cos, sin*px + cos*py + cy,
	}
}
