// Package viewer runs a Mixer in an Ebitengine window. Mouse and touch drive
// the gesture state machine; the keyboard triggers rotate, remove and save.
//
//	S          save the flattened scene
//	R          rotate the selected picture
//	Delete     remove the selected picture
//	F          toggle the HUD
//	Escape     quit
package viewer

import (
	"context"
	"errors"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/picmix"
)

// Options configure a Viewer.
type Options struct {
	Title string
	// ShowHUD starts with the FPS/gesture HUD visible.
	ShowHUD bool
	// GridCell is the checkerboard cell size in canvas units. Zero draws a
	// plain background.
	GridCell float64
	// Save is used by the save key.
	Save picmix.SaveOptions
	// Logger defaults to a discarding logger.
	Logger *log.Logger
}

// Viewer implements ebiten.Game on top of a Mixer.
type Viewer struct {
	ctx  context.Context
	m    *picmix.Mixer
	opts Options
	log  *log.Logger

	images   []*ebiten.Image
	dirty    bool
	ptr      pointer
	touchIDs []ebiten.TouchID
	fade     *overlayFade
	alpha    float32
	hud      *hud
	showHUD  bool
	handles  []picmix.CallbackHandle
}

// New wires a viewer to m. Call it before m.Load so the background grid is
// painted from the loaded event.
func New(m *picmix.Mixer, opts Options) *Viewer {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	v := &Viewer{
		ctx:     context.Background(),
		m:       m,
		opts:    opts,
		log:     opts.Logger,
		fade:    newOverlayFade(),
		alpha:   1,
		showHUD: opts.ShowHUD,
		dirty:   true,
	}
	v.handles = append(v.handles,
		m.OnRender(func([]picmix.Picture) { v.dirty = true }),
		m.OnLoaded(func(bg *picmix.Layer, w, h float64) {
			drawGrid(bg, w, h, opts.GridCell)
			v.dirty = true
		}),
	)
	return v
}

// Close detaches the viewer from the mixer's events.
func (v *Viewer) Close() {
	for _, h := range v.handles {
		h.Remove()
	}
	v.handles = nil
}

// Run loads the mixer and blocks until the window closes, Escape is pressed
// or ctx is done.
func Run(ctx context.Context, v *Viewer) error {
	v.ctx = ctx
	if err := v.m.Load(ctx); err != nil {
		return err
	}
	w, h := v.m.Size()
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowTitle(v.opts.Title)
	err := ebiten.RunGame(v)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	if v.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	dt := 1 / float64(ebiten.TPS())

	// Synthetic events take the frame over from real input.
	consumed, err := v.m.ProcessInjected(v.ctx)
	if err != nil {
		v.log.Error("injected touch", "err", err)
	}
	if !consumed {
		v.processPointer()
	}
	v.processKeys()

	v.alpha = v.fade.update(v.m.Selected(), float32(dt))
	if v.showHUD {
		if v.hud == nil {
			v.hud = newHUD()
		}
		v.hud.update(dt, v.m)
	}
	return nil
}

func (v *Viewer) processPointer() {
	scale := v.m.Layer(picmix.LayerBackground).Scale()
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	v.touchIDs = ebiten.AppendTouchIDs(v.touchIDs[:0])
	if len(v.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(v.touchIDs[0])
		x, y = float64(tx), float64(ty)
		pressed = true
	}

	evt, px, py := v.ptr.step(pressed, x/scale, y/scale)
	switch evt {
	case pointerPress:
		if err := v.m.TouchStart(v.ctx, px, py); err != nil {
			v.log.Error("touch start", "err", err)
		}
	case pointerMove:
		v.m.TouchMove(px, py)
	case pointerRelease:
		v.m.TouchEnd()
	}
}

func (v *Viewer) processKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		res, err := v.m.Save(v.ctx, v.opts.Save)
		if err != nil {
			v.log.Error("save", "err", err)
			return
		}
		v.log.Info("saved", "path", res.TempFilePath, "format", res.Format, "bytes", len(res.Data))
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := v.m.RotateSelected(v.ctx); err != nil {
			v.log.Error("rotate", "err", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		v.m.RemoveSelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		v.showHUD = !v.showHUD
	}
}

// Draw implements ebiten.Game. Layers are uploaded only after a render.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.dirty {
		v.upload()
	}
	screen.Fill(color.Black)
	for k, img := range v.images {
		if picmix.LayerKind(k) == picmix.LayerResult {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		if picmix.LayerKind(k) == picmix.LayerOverlay {
			op.ColorScale.ScaleAlpha(v.alpha)
		}
		screen.DrawImage(img, op)
	}
	if v.showHUD && v.hud != nil {
		v.hud.draw(screen)
	}
}

func (v *Viewer) upload() {
	layers := v.m.Layers()
	if v.images == nil {
		v.images = make([]*ebiten.Image, len(layers))
		for i, l := range layers {
			b := l.Image().Bounds()
			v.images[i] = ebiten.NewImage(b.Dx(), b.Dy())
		}
	}
	for i, l := range layers {
		if picmix.LayerKind(i) == picmix.LayerResult {
			continue
		}
		v.images[i].WritePixels(l.Image().Pix)
	}
	v.dirty = false
}

// Layout implements ebiten.Game. The screen is the layers' pixel size.
func (v *Viewer) Layout(int, int) (int, int) {
	b := v.m.Layer(picmix.LayerBackground).Image().Bounds()
	return b.Dx(), b.Dy()
}
