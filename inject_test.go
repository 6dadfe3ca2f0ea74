package picmix

import (
	"context"
	"testing"
)

func TestInjectTap(t *testing.T) {
	m, _ := newTestMixer(t, 300, 300, nil)
	mustAdd(t, m, "mem:400x200")

	m.InjectTap(20, 20)
	if m.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", m.Pending())
	}
	ctx := context.Background()

	// Frame 1: press misses every picture.
	if ok, err := m.ProcessInjected(ctx); !ok || err != nil {
		t.Fatalf("ProcessInjected = %v, %v", ok, err)
	}
	if m.Selected() != -1 {
		t.Errorf("Selected = %d after a miss, want -1", m.Selected())
	}
	if m.Pending() != 1 {
		t.Fatalf("Pending = %d after frame 1, want 1", m.Pending())
	}

	// Frame 2: release.
	if ok, _ := m.ProcessInjected(ctx); !ok {
		t.Fatal("release not consumed")
	}
	if ok, _ := m.ProcessInjected(ctx); ok {
		t.Error("empty queue reported an event")
	}
}

func TestInjectDrag(t *testing.T) {
	m, clock := newTestMixer(t, 300, 300, nil)
	mustAdd(t, m, "mem:400x200") // 180x90 at (60,105)

	m.InjectDrag(Vec2{150, 150}, Vec2{170, 160}, 4)
	// press, two interpolated moves, final move, release
	if m.Pending() != 5 {
		t.Fatalf("Pending = %d, want 5", m.Pending())
	}

	var modes []Mode
	ctx := context.Background()
	for m.Pending() > 0 {
		clock.Advance(m.cfg.RenderInterval())
		if _, err := m.ProcessInjected(ctx); err != nil {
			t.Fatal(err)
		}
		modes = append(modes, m.Mode())
	}

	want := []Mode{ModeMove, ModeMove, ModeMove, ModeMove, ModeNone}
	for i := range want {
		if modes[i] != want[i] {
			t.Errorf("mode after event %d = %s, want %s", i, modes[i], want[i])
		}
	}
	if got := rectOf(m.Pictures()[0]); got != (Rect{80, 115, 180, 90}) {
		t.Errorf("picture = %v, want {80 115 180 90}", got)
	}
}

func TestInjectDragMinimumSteps(t *testing.T) {
	m, _ := newTestMixer(t, 300, 300, nil)
	m.InjectDrag(Vec2{0, 0}, Vec2{10, 10}, 0)
	if m.Pending() != 3 {
		t.Errorf("Pending = %d, want 3", m.Pending())
	}
	if m.nextIsMove() {
		t.Error("drag does not start with a press")
	}
	if _, err := m.ProcessInjected(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !m.nextIsMove() {
		t.Error("second event is not a move")
	}
}
