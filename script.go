package picmix

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Step is a single action in a gesture script.
type Step struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	URL     string  `json:"url,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Steps   int     `json:"steps,omitempty"`
	MS      int     `json:"ms,omitempty"`
	Format  Format  `json:"format,omitempty"`
	Quality float64 `json:"quality,omitempty"`
}

// Script is the top-level JSON structure of a gesture script. Width and
// Height give the canvas size for hosts that build the Mixer from the
// script; zero means the host decides.
type Script struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Steps  []Step  `json:"steps"`
}

// Script actions.
const (
	ActionAdd     = "add"     // url
	ActionPress   = "press"   // x, y
	ActionMove    = "move"    // x, y
	ActionRelease = "release" // x, y
	ActionTap     = "tap"     // x, y
	ActionDrag    = "drag"    // fromX, fromY, toX, toY, steps
	ActionWait    = "wait"    // ms
	ActionRotate  = "rotate"
	ActionRemove  = "remove"
	ActionSave    = "save" // label, format, quality
)

// LoadScript parses and checks a JSON gesture script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, wrapError(ErrCodeInvalidScript, err, "parse script")
	}
	if len(s.Steps) == 0 {
		return nil, newError(ErrCodeInvalidScript, "parse script: no steps")
	}
	if s.Width < 0 || s.Height < 0 {
		return nil, newError(ErrCodeInvalidScript, "canvas size must not be negative")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionAdd:
			if st.URL == "" {
				return nil, newError(ErrCodeInvalidScript, "step %d: add needs a url", i)
			}
		case ActionWait:
			if st.MS < 0 {
				return nil, newError(ErrCodeInvalidScript, "step %d: negative wait", i)
			}
		case ActionPress, ActionMove, ActionRelease, ActionTap, ActionDrag,
			ActionRotate, ActionRemove, ActionSave:
		default:
			return nil, newError(ErrCodeInvalidScript, "step %d: unknown action %q", i, st.Action)
		}
	}
	return &s, nil
}

// Output is a labeled Save made by a script.
type Output struct {
	Label  string
	Result *SaveResult
}

// Runner plays a Script against a Mixer. The Mixer must use the runner's
// clock (WithClock(r.Clock())): the clock advances by the render interval
// before every injected move, so no move is ever rate limited.
type Runner struct {
	script *Script
	clock  *ManualClock
	cursor int
	save   SaveOptions
}

// NewRunner returns a runner for s with a fresh virtual clock.
func NewRunner(s *Script) *Runner {
	return &Runner{
		script: s,
		clock:  NewManualClock(time.Unix(0, 0)),
	}
}

// Clock returns the virtual clock to hand to the Mixer.
func (r *Runner) Clock() *ManualClock {
	return r.clock
}

// SetSaveOptions sets the base options for save steps. Step fields override
// them.
func (r *Runner) SetSaveOptions(o SaveOptions) {
	r.save = o
}

// Done reports whether every step has been played.
func (r *Runner) Done() bool {
	return r.cursor >= len(r.script.Steps)
}

// Run plays the remaining steps and returns the outputs of save steps. It
// stops at the first failing step.
func (r *Runner) Run(ctx context.Context, m *Mixer) ([]Output, error) {
	var outs []Output
	for !r.Done() {
		out, err := r.Step(ctx, m)
		if err != nil {
			return outs, err
		}
		if out != nil {
			outs = append(outs, *out)
		}
	}
	return outs, nil
}

// Step plays one step, draining the touch events it queues. A save step
// returns its output.
func (r *Runner) Step(ctx context.Context, m *Mixer) (*Output, error) {
	if r.Done() {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i := r.cursor
	st := r.script.Steps[i]
	r.cursor++
	m.log.Debug("script step", "index", i, "action", st.Action)

	switch st.Action {
	case ActionAdd:
		if _, err := m.Add(ctx, st.URL); err != nil {
			return nil, err
		}
	case ActionPress:
		m.InjectPress(st.X, st.Y)
	case ActionMove:
		m.InjectMove(st.X, st.Y)
	case ActionRelease:
		m.InjectRelease(st.X, st.Y)
	case ActionTap:
		m.InjectTap(st.X, st.Y)
	case ActionDrag:
		m.InjectDrag(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Steps)
	case ActionWait:
		r.clock.Advance(time.Duration(st.MS) * time.Millisecond)
	case ActionRotate:
		if err := m.RotateSelected(ctx); err != nil {
			return nil, err
		}
	case ActionRemove:
		m.RemoveSelected()
	case ActionSave:
		opts := r.save
		if st.Format != "" {
			opts.Format = st.Format
		}
		if st.Quality != 0 {
			opts.Quality = st.Quality
		}
		res, err := m.Save(ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Output{Label: sanitizeLabel(st.Label), Result: res}, nil
	}

	for m.Pending() > 0 {
		if m.nextIsMove() {
			r.clock.Advance(m.cfg.RenderInterval())
		}
		if _, err := m.ProcessInjected(ctx); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
