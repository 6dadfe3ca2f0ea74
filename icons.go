package picmix

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Built-in button and watermark images, used when the corresponding
// ButtonConfig.URL is empty. They are drawn once at a fixed resolution and
// scaled into the configured button size.

const iconSize = 64

var (
	iconRed   = color.NRGBA{0xE0, 0x4B, 0x4B, 0xFF}
	iconGreen = color.NRGBA{0xB4, 0xCF, 0x66, 0xFF}
	iconWhite = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	iconShade = color.NRGBA{0x00, 0x00, 0x00, 0x60}
)

// defaultRemoveIcon is a red disc with a white cross.
func defaultRemoveIcon() image.Image {
	l := NewLayer(iconSize, iconSize, 1)
	c := Vec2{iconSize / 2, iconSize / 2}
	l.FillCircle(c, iconSize/2-1, iconRed)
	const d = iconSize / 5
	l.StrokeLine(Vec2{c.X - d, c.Y - d}, Vec2{c.X + d, c.Y + d}, 6, iconWhite)
	l.StrokeLine(Vec2{c.X + d, c.Y - d}, Vec2{c.X - d, c.Y + d}, 6, iconWhite)
	return l.Image()
}

// defaultRotateIcon is a green disc with a white open ring and arrow head.
func defaultRotateIcon() image.Image {
	l := NewLayer(iconSize, iconSize, 1)
	c := Vec2{iconSize / 2, iconSize / 2}
	l.FillCircle(c, iconSize/2-1, iconGreen)
	l.StrokeCircle(c, iconSize/4, 5, iconWhite)
	// Break the ring at the top-right and put an arrow head on it.
	gap := Rect{c.X + 2, c.Y - iconSize/4 - 4, iconSize / 4, iconSize/4 - 2}
	l.FillRect(gap, iconGreen)
	tip := Vec2{c.X + 2, c.Y - iconSize/4}
	l.StrokeLine(tip, Vec2{tip.X - 7, tip.Y - 7}, 5, iconWhite)
	l.StrokeLine(tip, Vec2{tip.X - 7, tip.Y + 7}, 5, iconWhite)
	return l.Image()
}

// defaultWatermark is a translucent plate with a caption.
func defaultWatermark() image.Image {
	const w, h = 120, 60
	l := NewLayer(w, h, 1)
	l.FillRect(Rect{0, 0, w, h}, iconShade)
	frame := Rect{1, 1, w - 2, h - 2}.Points()
	l.StrokePolygon(frame[:], 2, iconWhite)

	const caption = "picmix"
	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  l.Image(),
		Src:  image.NewUniform(iconWhite),
		Face: face,
	}
	adv := dr.MeasureString(caption)
	dr.Dot = fixed.Point26_6{
		X: (fixed.I(w) - adv) / 2,
		Y: fixed.I((h + face.Ascent - face.Descent) / 2),
	}
	dr.DrawString(caption)
	return l.Image()
}
