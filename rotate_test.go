package picmix

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"
)

func TestRotateSelectedSwapsAndRecenters(t *testing.T) {
	m, _ := newTestMixer(t, 300, 300, allowEdits)
	mustAdd(t, m, "mem:400x200") // 180x90 at (60,105), center (150,150)

	if err := m.RotateSelected(context.Background()); err != nil {
		t.Fatal(err)
	}
	p := m.Pictures()[0]
	if p.Width != 90 || p.Height != 180 || p.Angle != 90 {
		t.Errorf("after rotate: %vx%v angle %d, want 90x180 angle 90", p.Width, p.Height, p.Angle)
	}
	if c := p.Bounds().Center(); c != (Vec2{150, 150}) {
		t.Errorf("center = %v, want (150,150)", c)
	}
	if b := p.Image.Bounds(); b.Dx() != 200 || b.Dy() != 400 {
		t.Errorf("image = %dx%d, want 200x400", b.Dx(), b.Dy())
	}
	if w, h := p.AspectRef(); w != 90 || h != 180 {
		t.Errorf("AspectRef = %vx%v, want 90x180", w, h)
	}
}

func TestRotateFourTimesRestores(t *testing.T) {
	m, _ := newTestMixer(t, 300, 300, allowEdits)
	start := mustAdd(t, m, "mem:400x200")

	ctx := context.Background()
	for range 4 {
		if err := m.RotateSelected(ctx); err != nil {
			t.Fatal(err)
		}
	}
	p := m.Pictures()[0]
	if p.Width != start.Width || p.Height != start.Height {
		t.Errorf("size = %vx%v, want %vx%v", p.Width, p.Height, start.Width, start.Height)
	}
	if p.Angle != start.Angle {
		t.Errorf("angle = %d, want %d", p.Angle, start.Angle)
	}
	if math.Abs(p.X-start.X) > 1 || math.Abs(p.Y-start.Y) > 1 {
		t.Errorf("position = (%v,%v), want about (%v,%v)", p.X, p.Y, start.X, start.Y)
	}
}

func TestRotateReclamps(t *testing.T) {
	m, _ := newTestMixer(t, 300, 300, allowEdits)
	mustAdd(t, m, "mem:400x200")
	m.pictures[0].Y = 200 // 180x90 at (60,200): bottom edge at 290

	if err := m.RotateSelected(context.Background()); err != nil {
		t.Fatal(err)
	}
	p := m.Pictures()[0]
	if p.Y+p.Height > 290 || p.Y < 10 {
		t.Errorf("rotated picture %v outside the point margin", rectOf(p))
	}
}

func TestRotateFailureLeavesPicture(t *testing.T) {
	boom := errors.New("boom")
	m, _ := newTestMixer(t, 300, 300, allowEdits, WithRotator(RotatorFunc(
		func(context.Context, image.Image, int) (image.Image, error) { return nil, boom })))
	before := mustAdd(t, m, "mem:400x200")
	changed := false
	m.OnChange(func([]Picture) { changed = true })

	err := m.RotateSelected(context.Background())
	if !Is(err, ErrCodeDecodeFailure) || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want DECODE_FAILURE wrapping boom", err)
	}
	p := m.Pictures()[0]
	if rectOf(p) != rectOf(before) || p.Angle != 0 || p.Image != before.Image {
		t.Errorf("picture changed after failed rotation: %v angle %d", rectOf(p), p.Angle)
	}
	if p.Busy() {
		t.Error("picture still busy after failed rotation")
	}
	if changed {
		t.Error("change emitted for a failed rotation")
	}
}

func TestRotateIgnoredWhileBusy(t *testing.T) {
	calls := 0
	var m *Mixer
	m, _ = newTestMixer(t, 300, 300, allowEdits, WithRotator(RotatorFunc(
		func(ctx context.Context, img image.Image, angle int) (image.Image, error) {
			calls++
			// Re-entrant requests on the same picture are ignored.
			if err := m.RotateSelected(ctx); err != nil {
				t.Errorf("nested rotate: %v", err)
			}
			if m.RemoveSelected() {
				t.Error("removed a picture that is being rotated")
			}
			return PictureRotator{}.Rotate(ctx, img, angle)
		})))
	mustAdd(t, m, "mem:400x200")

	if err := m.RotateSelected(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("rotator calls = %d, want 1", calls)
	}
	if p := m.Pictures()[0]; p.Angle != 90 {
		t.Errorf("angle = %d, want 90", p.Angle)
	}
}

func TestRotateDiscardsRemovedPicture(t *testing.T) {
	var m *Mixer
	m, _ = newTestMixer(t, 300, 300, allowEdits, WithRotator(RotatorFunc(
		func(ctx context.Context, img image.Image, angle int) (image.Image, error) {
			// The host drops the picture while the rotation is in flight.
			m.pictures = m.pictures[:0]
			m.selected = -1
			return img, nil
		})))
	mustAdd(t, m, "mem:400x200")

	if err := m.RotateSelected(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 {
		t.Errorf("len = %d, want 0", m.Len())
	}
}

func TestRotateWithoutSelection(t *testing.T) {
	m, _ := newTestMixer(t, 300, 300, allowEdits)
	mustAdd(t, m, "mem:400x200")
	m.Select(-1)
	if err := m.RotateSelected(context.Background()); err != nil {
		t.Fatal(err)
	}
	if p := m.Pictures()[0]; p.Angle != 0 {
		t.Errorf("angle = %d, want 0", p.Angle)
	}
}
