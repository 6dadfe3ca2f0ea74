package cli

import (
	"bytes"
	"context"
	"image"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/picmix"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should give log.Default()")
	}
	l := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext did not return the attached logger")
	}
}

func TestTallyDone(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "composed 1 picture "},
		{2, "composed 2 pictures "},
		{0, "composed 0 pictures "},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		c := newTally(newLogger(&buf, log.InfoLevel), "picture")
		for range tt.n {
			c.add()
		}
		c.done("composed")
		out := buf.String()
		if !strings.Contains(out, tt.want) || !strings.Contains(out, "elapsed=") {
			t.Errorf("tally of %d logged %q, want %q and elapsed", tt.n, out, tt.want)
		}
	}
}

func TestTraceScene(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)
	dec := picmix.DecoderFunc(func(context.Context, string) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 40, 20)), nil
	})
	m, err := picmix.NewMixer(100, 100, picmix.DefaultConfig(), picmix.WithDecoder(dec))
	if err != nil {
		t.Fatal(err)
	}
	traceScene(logger, m)

	if _, err := m.Add(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"scene", "pictures=1", "rect=", "20,35 60x30", "angle=0"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace %q missing %q", out, want)
		}
	}

	buf.Reset()
	m.Select(-1)
	if err := m.TouchStart(context.Background(), 1, 1); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "scene") {
		t.Errorf("traced a press that changed nothing: %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug not logged after SetLogLevel: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("debug entry without caller: %q", buf.String())
	}

	buf.Reset()
	c.SetLogLevel(LogError)
	c.Logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged at error level: %q", buf.String())
	}
}
