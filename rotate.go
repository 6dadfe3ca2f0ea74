package picmix

import (
	"context"
	"image"

	"github.com/phanxgames/picmix/pictureutil"
)

// Rotator re-rasterizes an image turned clockwise by a multiple of 90
// degrees.
type Rotator interface {
	Rotate(ctx context.Context, img image.Image, angle int) (image.Image, error)
}

// RotatorFunc adapts a function to the Rotator interface.
type RotatorFunc func(ctx context.Context, img image.Image, angle int) (image.Image, error)

// Rotate calls f(ctx, img, angle).
func (f RotatorFunc) Rotate(ctx context.Context, img image.Image, angle int) (image.Image, error) {
	return f(ctx, img, angle)
}

// PictureRotator rotates with pictureutil.Rotate.
type PictureRotator struct{}

// Rotate implements Rotator.
func (PictureRotator) Rotate(ctx context.Context, img image.Image, angle int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := pictureutil.Rotate(img, angle)
	if err != nil {
		return nil, err
	}
	return r.Image, nil
}

// RotateSelected turns the selected picture 90 degrees clockwise about its
// center and renders. It does nothing unless AllowRotate is set, and nothing
// when no picture is selected or the selected one is already rotating.
func (m *Mixer) RotateSelected(ctx context.Context) error {
	if !m.cfg.AllowRotate {
		return nil
	}
	err := m.rotateSelected(ctx)
	m.Render()
	return err
}

func (m *Mixer) rotateSelected(ctx context.Context) error {
	p := m.selectedPicture()
	if p == nil || p.busy {
		return nil
	}
	center := p.Center()

	p.busy = true
	img, err := m.rotator.Rotate(ctx, p.Image, 90)
	p.busy = false
	if err != nil {
		return wrapError(ErrCodeDecodeFailure, err, "rotate %s", p.ID)
	}
	// The picture may have been removed while the rotator ran.
	if m.indexOf(p) < 0 {
		m.log.Debug("rotated picture is gone", "id", p.ID)
		return nil
	}

	p.Image = img
	p.Width, p.Height = p.Height, p.Width
	p.X = center.X - p.Width/2
	p.Y = center.Y - p.Height/2
	p.Angle = (p.Angle + 90) % 360
	m.bounds.clampRect(p)
	m.log.Debug("rotated", "id", p.ID, "angle", p.Angle)
	m.fireChange()
	return nil
}
