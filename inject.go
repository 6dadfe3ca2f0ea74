package picmix

import "context"

type touchPhase uint8

const (
	phasePress touchPhase = iota
	phaseMove
	phaseRelease
)

// injectedTouch is a single queued synthetic touch event in canvas
// coordinates.
type injectedTouch struct {
	x, y  float64
	phase touchPhase
}

// InjectPress queues a touch-start at (x, y). Queued events are dispatched
// one at a time by ProcessInjected.
func (m *Mixer) InjectPress(x, y float64) {
	m.injectQueue = append(m.injectQueue, injectedTouch{x: x, y: y, phase: phasePress})
}

// InjectMove queues a touch-move to (x, y).
func (m *Mixer) InjectMove(x, y float64) {
	m.injectQueue = append(m.injectQueue, injectedTouch{x: x, y: y, phase: phaseMove})
}

// InjectRelease queues a touch-end.
func (m *Mixer) InjectRelease(x, y float64) {
	m.injectQueue = append(m.injectQueue, injectedTouch{x: x, y: y, phase: phaseRelease})
}

// InjectTap queues a press followed by a release at the same point.
func (m *Mixer) InjectTap(x, y float64) {
	m.InjectPress(x, y)
	m.InjectRelease(x, y)
}

// InjectDrag queues a full drag: a press at from, moves linearly
// interpolated over steps-2 intermediate events, a move to and a release at
// to. steps below 2 is raised to 2.
func (m *Mixer) InjectDrag(from, to Vec2, steps int) {
	if steps < 2 {
		steps = 2
	}
	m.InjectPress(from.X, from.Y)
	n := steps - 2
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		m.InjectMove(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t)
	}
	m.InjectMove(to.X, to.Y)
	m.InjectRelease(to.X, to.Y)
}

// Pending returns the number of queued synthetic events.
func (m *Mixer) Pending() int {
	return len(m.injectQueue)
}

// ProcessInjected pops one queued event and dispatches it. It reports
// whether an event was consumed, so a host can skip real input for that
// frame.
func (m *Mixer) ProcessInjected(ctx context.Context) (bool, error) {
	if len(m.injectQueue) == 0 {
		return false, nil
	}
	evt := m.injectQueue[0]
	copy(m.injectQueue, m.injectQueue[1:])
	m.injectQueue = m.injectQueue[:len(m.injectQueue)-1]

	switch evt.phase {
	case phasePress:
		return true, m.TouchStart(ctx, evt.x, evt.y)
	case phaseMove:
		m.TouchMove(evt.x, evt.y)
	case phaseRelease:
		m.TouchEnd()
	}
	return true, nil
}

// nextIsMove reports whether the next queued event is a move.
func (m *Mixer) nextIsMove() bool {
	return len(m.injectQueue) > 0 && m.injectQueue[0].phase == phaseMove
}
