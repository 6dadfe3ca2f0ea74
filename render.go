package picmix

import "time"

// Render redraws the content and overlay layers from the picture list and
// selection, caches the button hot regions and emits render.
func (m *Mixer) Render() {
	var start time.Time
	if m.debug {
		start = time.Now()
	}

	content := m.layers[LayerContent]
	overlay := m.layers[LayerOverlay]
	content.Clear()
	overlay.Clear()

	for _, p := range m.pictures {
		content.DrawImage(p.Image, p.Bounds())
	}

	m.hasRemove, m.hasRotate = false, false
	if p := m.selectedPicture(); p != nil {
		m.drawSelection(overlay, p)
	}
	if m.watermark && len(m.pictures) == 0 {
		m.drawWatermark()
	}

	if m.debug {
		m.debugLog(renderStats{
			elapsed:  time.Since(start),
			pictures: len(m.pictures),
			selected: m.selected,
			mode:     m.mode,
		})
	}
	m.fireRender()
}

func (m *Mixer) drawSelection(overlay *Layer, p *Picture) {
	pts := p.Points()
	overlay.StrokePolygon(pts[:], m.cfg.Line.Width, m.lineColor)

	if m.cfg.AllowScale {
		r := m.cfg.Handle.Radius - 1
		for _, c := range pts {
			overlay.StrokeCircle(c, r, 1, m.lineColor)
			overlay.FillCircle(c, r, m.handleColor)
		}
	}

	if m.cfg.AllowRemove {
		m.removeRect = buttonRect(m.cfg.Remove, p.Bounds())
		m.hasRemove = true
		overlay.DrawImage(m.removeImg, m.removeRect)
	}
	if m.cfg.AllowRotate {
		m.rotateRect = buttonRect(m.cfg.Rotate, p.Bounds())
		m.hasRotate = true
		overlay.DrawImage(m.rotateImg, m.rotateRect)
	}
}

// ShowWatermark raises the watermark flag and renders. While the flag is up,
// every Render of an empty scene draws the watermark once. It does nothing
// unless AllowWatermark is set.
func (m *Mixer) ShowWatermark() {
	if m.raiseWatermark() {
		m.Render()
	}
}

func (m *Mixer) raiseWatermark() bool {
	if !m.cfg.AllowWatermark {
		return false
	}
	m.watermark = true
	return true
}

// WatermarkShown reports whether the watermark flag is up.
func (m *Mixer) WatermarkShown() bool {
	return m.watermark
}

func (m *Mixer) drawWatermark() {
	r := buttonRect(m.cfg.Watermark, Rect{0, 0, m.width, m.height})
	m.layers[LayerOverlay].DrawImage(m.watermarkImg, r)
}

// flatten paints the background color and every picture onto the result
// layer.
func (m *Mixer) flatten() {
	result := m.layers[LayerResult]
	result.Clear()
	result.Fill(m.background)
	for _, p := range m.pictures {
		result.DrawImage(p.Image, p.Bounds())
	}
}

// buttonRect places a b.Width×b.Height rectangle centered on
// anchor.min + anchor.size*pivot - offset.
func buttonRect(b ButtonConfig, anchor Rect) Rect {
	return Rect{
		X:      anchor.X + anchor.Width*b.PivotX - b.OffsetX - b.Width/2,
		Y:      anchor.Y + anchor.Height*b.PivotY - b.OffsetY - b.Height/2,
		Width:  b.Width,
		Height: b.Height,
	}
}
