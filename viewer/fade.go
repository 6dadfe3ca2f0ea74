package viewer

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fadeDuration is how long, in seconds, the selection chrome takes to fade
// in after a new picture is selected.
const fadeDuration = 0.15

// overlayFade eases the overlay alpha from 0 to 1 whenever the selected
// index changes to another picture.
type overlayFade struct {
	tween    *gween.Tween
	alpha    float32
	selected int
}

func newOverlayFade() *overlayFade {
	return &overlayFade{alpha: 1, selected: -1}
}

// update advances the fade by dt seconds given the current selection and
// returns the overlay alpha to draw with.
func (f *overlayFade) update(selected int, dt float32) float32 {
	if selected != f.selected {
		f.selected = selected
		if selected >= 0 {
			f.tween = gween.New(0, 1, fadeDuration, ease.OutQuad)
			f.alpha = 0
		} else {
			f.tween = nil
			f.alpha = 1
		}
	}
	if f.tween != nil {
		var done bool
		f.alpha, done = f.tween.Update(dt)
		if done {
			f.tween = nil
			f.alpha = 1
		}
	}
	return f.alpha
}
