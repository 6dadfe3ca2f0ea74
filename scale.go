package picmix

// scaleCorner moves the grabbed corner of p to follow the (already clamped)
// touch point t and rebuilds the rectangle against the fixed diagonal corner.
//
// In ratio mode the width is floored at MinRatio times the reference width,
// the height follows from the aspect ratio, the moving corner is clamped
// again and the width re-derived from the clamped height. The hard minimum
// of twice the handle radius comes last and moves only the grabbed side.
// The diagonal corner itself is never clamped.
func (m *Mixer) scaleCorner(p *Picture, t Vec2) {
	c := m.bounds.clampPoint(Vec2{
		m.moveStart.X + t.X - m.touchStart.X,
		m.moveStart.Y + t.Y - m.touchStart.Y,
	})
	d := m.diagonal
	ratio := m.cfg.Scale.Mode == ScaleRatio
	iw, ih := p.AspectRef()
	minW := m.cfg.Scale.MinRatio * iw
	minSide := 2 * m.cfg.Handle.Radius

	switch m.handle {
	case 0: // top-left, anchored bottom-right
		p.X, p.Y = c.X, c.Y
		p.Width, p.Height = d.X-p.X, d.Y-p.Y
		if ratio {
			if p.Width < minW {
				p.Width = minW
				p.X = d.X - p.Width
			}
			p.Height = p.Width * ih / iw
			p.Y = d.Y - p.Height

			p.Y = m.bounds.clampPoint(Vec2{p.X, p.Y}).Y
			p.Height = d.Y - p.Y
			p.Width = p.Height * iw / ih
			p.X = d.X - p.Width
		}
		if p.Width < minSide {
			p.Width = minSide
			p.X = d.X - p.Width
		}
		if p.Height < minSide {
			p.Height = minSide
			p.Y = d.Y - p.Height
		}

	case 1: // top-right, anchored bottom-left
		p.X, p.Y = d.X, c.Y
		p.Width, p.Height = c.X-d.X, d.Y-c.Y
		if ratio {
			if p.Width < minW {
				p.Width = minW
			}
			p.Height = p.Width * ih / iw
			p.Y = d.Y - p.Height

			p.Y = m.bounds.clampPoint(Vec2{p.X + p.Width, p.Y}).Y
			p.Height = d.Y - p.Y
			p.Width = p.Height * iw / ih
			p.X = d.X
		}
		if p.Width < minSide {
			p.Width = minSide
		}
		if p.Height < minSide {
			p.Height = minSide
			p.Y = d.Y - p.Height
		}

	case 2: // bottom-right, anchored top-left
		p.X, p.Y = d.X, d.Y
		p.Width, p.Height = c.X-d.X, c.Y-d.Y
		if ratio {
			if p.Width < minW {
				p.Width = minW
			}
			p.Height = p.Width * ih / iw

			p.Height = m.bounds.clampPoint(Vec2{p.X + p.Width, p.Y + p.Height}).Y - d.Y
			p.Width = p.Height * iw / ih
		}
		if p.Width < minSide {
			p.Width = minSide
		}
		if p.Height < minSide {
			p.Height = minSide
		}

	case 3: // bottom-left, anchored top-right
		p.X, p.Y = c.X, d.Y
		p.Width, p.Height = d.X-c.X, c.Y-d.Y
		if ratio {
			if p.Width < minW {
				p.Width = minW
				p.X = d.X - p.Width
			}
			p.Height = p.Width * ih / iw

			p.Height = m.bounds.clampPoint(Vec2{p.X, p.Y + p.Height}).Y - d.Y
			p.Width = p.Height * iw / ih
			p.X = d.X - p.Width
		}
		if p.Width < minSide {
			p.Width = minSide
			p.X = d.X - p.Width
		}
		if p.Height < minSide {
			p.Height = minSide
		}
	}
}
