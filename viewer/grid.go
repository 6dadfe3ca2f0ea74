package viewer

import (
	"image/color"

	"github.com/phanxgames/picmix"
)

var (
	gridLight = color.NRGBA{0xF4, 0xF4, 0xF4, 0xFF}
	gridDark  = color.NRGBA{0xE2, 0xE2, 0xE2, 0xFF}
)

// drawGrid paints a checkerboard of cell-sized squares on l so transparent
// picture regions stay visible while editing. It never reaches an export:
// the result layer paints its own background.
func drawGrid(l *picmix.Layer, w, h, cell float64) {
	l.Fill(gridLight)
	if cell <= 0 {
		return
	}
	for row := 0; float64(row)*cell < h; row++ {
		for col := row % 2; float64(col)*cell < w; col += 2 {
			l.FillRect(picmix.Rect{
				X:      float64(col) * cell,
				Y:      float64(row) * cell,
				Width:  cell,
				Height: cell,
			}, gridDark)
		}
	}
}
