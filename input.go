package picmix

import (
	"context"
	"time"
)

// TouchStart classifies a press at (x, y) and starts a gesture. The first
// match wins:
//
//  1. delete button of the selected picture (AllowRemove)
//  2. rotate button of the selected picture (AllowRotate)
//  3. a corner handle of the selected picture (AllowScale) starts a resize
//  4. the topmost picture under the point is selected and, with AllowMove,
//     starts a move; AllowAutoTop promotes it to the top
//  5. otherwise the selection is cleared
//
// Button taps consume the event. Every press ends with a full Render. Only a
// failed rotation returns an error; the scene is then unchanged.
func (m *Mixer) TouchStart(ctx context.Context, x, y float64) error {
	pt := Vec2{x, y}
	m.touchStart = pt
	m.mode = ModeNone
	m.handle = -1
	m.lastMove = time.Time{}
	sel := m.selectedPicture()

	if m.cfg.AllowRemove && sel != nil && m.hasRemove && m.removeRect.Contains(x, y) {
		m.log.Debug("touch start", "hit", "remove", "id", sel.ID)
		if !m.RemoveSelected() {
			m.Render()
		}
		return nil
	}

	if m.cfg.AllowRotate && sel != nil && m.hasRotate && m.rotateRect.Contains(x, y) {
		m.log.Debug("touch start", "hit", "rotate", "id", sel.ID)
		m.mode = ModeRotate
		err := m.rotateSelected(ctx)
		m.mode = ModeNone
		m.Render()
		return err
	}

	if sel != nil && m.cfg.AllowScale {
		pts := sel.Points()
		if i := handleAt(pts, pt, m.cfg.Handle.Radius); i >= 0 {
			m.handle = i
			m.mode = ModeScale
			m.moveStart = pts[i]
			m.touchStart = pts[i]
			m.diagonal = pts[opposite(i)]
			m.log.Debug("touch start", "hit", "handle", "corner", i, "id", sel.ID)
			m.Render()
			return nil
		}
	}

	m.selected = -1
	for i := len(m.pictures) - 1; i >= 0; i-- {
		p := m.pictures[i]
		if !p.Contains(pt) {
			continue
		}
		m.selected = i
		if m.cfg.AllowMove {
			m.mode = ModeMove
			m.moveStart = Vec2{p.X, p.Y}
		}
		break
	}
	if m.cfg.AllowAutoTop && m.selected >= 0 {
		m.selected = m.promoteToTop(m.selected)
	}
	m.log.Debug("touch start", "hit", "body", "selected", m.selected, "mode", m.mode)
	m.Render()
	return nil
}

// TouchMove drives the current move or resize gesture towards (x, y).
// Moves arriving less than Config.RenderInterval after the last processed
// one are dropped. Pictures being rotated are left alone.
func (m *Mixer) TouchMove(x, y float64) {
	p := m.selectedPicture()
	if p == nil || p.busy || (m.mode != ModeMove && m.mode != ModeScale) {
		return
	}
	now := m.clock.Now()
	if !m.lastMove.IsZero() && now.Sub(m.lastMove) < m.cfg.RenderInterval() {
		return
	}
	m.lastMove = now

	t := m.bounds.clampPoint(Vec2{x, y})
	switch m.mode {
	case ModeMove:
		p.X = m.moveStart.X + t.X - m.touchStart.X
		p.Y = m.moveStart.Y + t.Y - m.touchStart.Y
		m.bounds.clampRect(p)
	case ModeScale:
		m.scaleCorner(p, t)
	}

	m.Render()
	m.fireChange()
}

// TouchEnd ends the current gesture. The selection is kept.
func (m *Mixer) TouchEnd() {
	m.mode = ModeNone
	m.handle = -1
}
