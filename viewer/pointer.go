package viewer

// pointerEvent is what one frame of pointer state means for the mixer.
type pointerEvent uint8

const (
	pointerNone pointerEvent = iota
	pointerPress
	pointerMove
	pointerRelease
)

// pointer turns per-frame "is it down, where is it" samples into press,
// move and release transitions. Mouse and touch share one pointer: the
// mixer tracks a single gesture.
type pointer struct {
	down         bool
	lastX, lastY float64
}

// step feeds one frame's sample. A held pointer that did not move yields
// pointerNone. A release reports the last position seen while down.
func (p *pointer) step(pressed bool, x, y float64) (pointerEvent, float64, float64) {
	switch {
	case pressed && !p.down:
		p.down = true
		p.lastX, p.lastY = x, y
		return pointerPress, x, y
	case !pressed && p.down:
		p.down = false
		return pointerRelease, p.lastX, p.lastY
	case pressed && p.down:
		if x == p.lastX && y == p.lastY {
			return pointerNone, x, y
		}
		p.lastX, p.lastY = x, y
		return pointerMove, x, y
	}
	return pointerNone, x, y
}
