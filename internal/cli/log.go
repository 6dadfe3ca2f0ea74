package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/picmix"
)

// newLogger creates the CLI logger. Debug level also reports the caller.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		ReportCaller:    level <= log.DebugLevel,
		Level:           level,
	})
}

// tally counts what a command processed and logs one summary line.
type tally struct {
	logger *log.Logger
	noun   string
	n      int
	start  time.Time
}

func newTally(l *log.Logger, noun string) *tally {
	return &tally{logger: l, noun: noun, start: time.Now()}
}

func (t *tally) add() { t.n++ }

// done logs e.g. "composed 3 pictures" with the elapsed time.
func (t *tally) done(verb string) {
	noun := t.noun
	if t.n != 1 {
		noun += "s"
	}
	t.logger.Info(fmt.Sprintf("%s %d %s", verb, t.n, noun),
		"elapsed", time.Since(t.start).Round(time.Millisecond))
}

// traceScene logs every committed scene change at debug level.
func traceScene(l *log.Logger, m *picmix.Mixer) {
	m.OnChange(func(ps []picmix.Picture) {
		if p, ok := m.SelectedPicture(); ok {
			l.Debug("scene", "pictures", len(ps), "selected", p.ID,
				"rect", fmt.Sprintf("%.0f,%.0f %.0fx%.0f", p.X, p.Y, p.Width, p.Height),
				"angle", p.Angle, "mode", m.Mode())
			return
		}
		l.Debug("scene", "pictures", len(ps))
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
