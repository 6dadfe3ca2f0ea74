package pictureutil

import (
	"bytes"
	"image"
	"image/png"
)

// Result is a freshly rasterized image together with its pixel size.
type Result struct {
	Image  *image.RGBA
	Width  int
	Height int
}

func newResult(img *image.RGBA) *Result {
	b := img.Bounds()
	return &Result{Image: img, Width: b.Dx(), Height: b.Dy()}
}

// PNG encodes the image as PNG.
func (r *Result) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL encodes the image as a base64 PNG data URL.
func (r *Result) DataURL() (string, error) {
	data, err := r.PNG()
	if err != nil {
		return "", err
	}
	return EncodeDataURL(MIMEPNG, data), nil
}
