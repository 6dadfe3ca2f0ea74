package picmix

// FitScale returns the largest size with the aspect ratio of sw×sh that fits
// inside bw×bh. The longer side (width only when strictly longer) is scaled
// to its bound first and the other side derived by ratio. Height is then
// corrected against bh, and afterwards width against bw. Applying FitScale
// to its own output with the same bounds returns that output unchanged.
func FitScale(sw, sh, bw, bh float64) (w, h float64) {
	w, h = sw, sh
	s := w / h
	if w > h {
		w = bw
		h = w / s
	} else {
		h = bh
		w = h * s
	}
	if h > bh {
		h = bh
		w = h * s
	}
	if w > bw {
		w = bw
		h = w / s
	}
	return w, h
}

// bounds clamps points and rectangles to the canvas per a LimitMode.
type bounds struct {
	mode          LimitMode
	radius        float64
	width, height float64
}

// margin is the minimum distance kept from each canvas edge.
func (b bounds) margin() (float64, bool) {
	switch b.mode {
	case LimitPicture:
		return 0, true
	case LimitPoint:
		return b.radius, true
	default:
		return 0, false
	}
}

// clampPoint limits p to the canvas shrunk by the margin.
func (b bounds) clampPoint(p Vec2) Vec2 {
	m, ok := b.margin()
	if !ok {
		return p
	}
	if p.X < m {
		p.X = m
	}
	if p.Y < m {
		p.Y = m
	}
	if p.X > b.width-m {
		p.X = b.width - m
	}
	if p.Y > b.height-m {
		p.Y = b.height - m
	}
	return p
}

// clampRect moves pic so that it lies inside the canvas shrunk by the
// margin. Left and top are corrected before right and bottom.
func (b bounds) clampRect(pic *Picture) {
	m, ok := b.margin()
	if !ok {
		return
	}
	if pic.X < m {
		pic.X = m
	}
	if pic.Y < m {
		pic.Y = m
	}
	if pic.X+pic.Width+m > b.width {
		pic.X = b.width - pic.Width - m
	}
	if pic.Y+pic.Height+m > b.height {
		pic.Y = b.height - pic.Height - m
	}
}
