package pictureutil

import (
	"fmt"
	"image"
	"image/draw"
)

// Clip copies the region r of img into a new r.Dx()×r.Dy() image whose
// origin is r.Min. Parts of r outside img stay transparent.
func Clip(img image.Image, r image.Rectangle) (*Result, error) {
	r = r.Canon()
	if r.Empty() {
		return nil, fmt.Errorf("pictureutil: empty clip rectangle %v", r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return newResult(dst), nil
}
