package picmix

import (
	"context"
	"image"
	"image/color"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	xdraw "golang.org/x/image/draw"
)

// Mixer is one picture-mixing session on a fixed-size canvas. It owns the
// picture list, the selection, the touch session and the four layers.
//
// A Mixer is not safe for concurrent use. Drive it from a single goroutine,
// typically the host's game loop.
type Mixer struct {
	cfg           Config
	width, height float64
	pixelRatio    float64

	log     *log.Logger
	decoder Decoder
	rotator Rotator
	encoder Encoder
	clock   Clock

	layers [layerCount]*Layer
	bounds bounds

	background  color.NRGBA
	handleColor color.NRGBA
	lineColor   color.NRGBA

	removeImg    image.Image
	rotateImg    image.Image
	watermarkImg image.Image

	pictures []*Picture
	selected int // index into pictures, or -1
	handle   int // grabbed corner 0..3, or -1
	mode     Mode

	// touch session
	touchStart Vec2
	moveStart  Vec2
	diagonal   Vec2
	lastMove   time.Time

	// hot regions cached by the last Render
	removeRect, rotateRect Rect
	hasRemove, hasRotate   bool

	watermark bool
	loaded    bool
	debug     bool

	handlers    handlerRegistry
	injectQueue []injectedTouch
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(m *Mixer) {
		if l != nil {
			m.log = l
		}
	}
}

// WithDecoder sets the source decoder. The default is SourceDecoder{}.
func WithDecoder(d Decoder) Option {
	return func(m *Mixer) { m.decoder = d }
}

// WithRotator sets the rotation helper. The default is PictureRotator{}.
func WithRotator(r Rotator) Option {
	return func(m *Mixer) { m.rotator = r }
}

// WithEncoder sets the export encoder. The default is StdEncoder{}.
func WithEncoder(e Encoder) Option {
	return func(m *Mixer) { m.encoder = e }
}

// WithClock sets the clock used by the touch-move rate limiter.
func WithClock(c Clock) Option {
	return func(m *Mixer) { m.clock = c }
}

// WithPixelRatio multiplies the layer resolution on top of
// Config.Definition, like a device pixel ratio.
func WithPixelRatio(r float64) Option {
	return func(m *Mixer) {
		if r > 0 {
			m.pixelRatio = r
		}
	}
}

// NewMixer creates a session for a width×height canvas. cfg is validated and
// copied.
func NewMixer(width, height float64, cfg Config, opts ...Option) (*Mixer, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(ErrCodeInvalidConfig, "canvas size must be positive, got %vx%v", width, height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Mixer{
		cfg:        cfg,
		width:      width,
		height:     height,
		pixelRatio: 1,
		log:        log.New(io.Discard),
		decoder:    SourceDecoder{},
		rotator:    PictureRotator{},
		encoder:    StdEncoder{},
		clock:      systemClock{},
		selected:   -1,
		handle:     -1,
		bounds: bounds{
			mode:   cfg.Move.LimitMode,
			radius: cfg.Handle.Radius,
			width:  width,
			height: height,
		},
		background:   mustColor(cfg.Background),
		handleColor:  mustColor(cfg.Handle.Color),
		lineColor:    mustColor(cfg.Line.Color),
		removeImg:    defaultRemoveIcon(),
		rotateImg:    defaultRotateIcon(),
		watermarkImg: defaultWatermark(),
	}
	for _, opt := range opts {
		opt(m)
	}

	scale := cfg.Definition * m.pixelRatio
	for k := range m.layers {
		m.layers[k] = NewLayer(width, height, scale)
	}
	m.layers[LayerResult].SetInterpolator(xdraw.CatmullRom)
	return m, nil
}

// Load decodes the configured button and watermark images, renders the
// empty scene, shows the watermark and emits loaded. Later calls do nothing.
func (m *Mixer) Load(ctx context.Context) error {
	if m.loaded {
		return nil
	}
	for _, b := range []struct {
		name string
		url  string
		dst  *image.Image
	}{
		{"remove", m.cfg.Remove.URL, &m.removeImg},
		{"rotate", m.cfg.Rotate.URL, &m.rotateImg},
		{"watermark", m.cfg.Watermark.URL, &m.watermarkImg},
	} {
		if b.url == "" {
			continue
		}
		img, err := m.decoder.Decode(ctx, b.url)
		if err != nil {
			return wrapError(ErrCodeDecodeFailure, err, "%s image", b.name)
		}
		*b.dst = img
	}

	m.loaded = true
	m.raiseWatermark()
	m.Render()
	m.log.Debug("loaded", "width", m.width, "height", m.height, "scale", m.layers[LayerContent].Scale())
	m.fireLoaded()
	return nil
}

// Config returns the session's configuration.
func (m *Mixer) Config() Config {
	return m.cfg
}

// Size returns the canvas size in canvas units.
func (m *Mixer) Size() (w, h float64) {
	return m.width, m.height
}

// Add decodes url and places it as a new, selected picture fitted into
// Config.Add's share of the canvas. It fails with ErrCodeCapacityExceeded
// before decoding when the scene is full.
func (m *Mixer) Add(ctx context.Context, url string) (Picture, error) {
	if err := m.checkCapacity(); err != nil {
		return Picture{}, err
	}
	img, err := m.decoder.Decode(ctx, url)
	if err != nil {
		return Picture{}, wrapError(ErrCodeDecodeFailure, err, "add %s", shortURL(url))
	}
	return m.AddImage(url, img)
}

// AddImage is Add for an already decoded image.
func (m *Mixer) AddImage(url string, img image.Image) (Picture, error) {
	if err := m.checkCapacity(); err != nil {
		return Picture{}, err
	}
	if img == nil || img.Bounds().Empty() {
		return Picture{}, newError(ErrCodeDecodeFailure, "add %s: empty image", shortURL(url))
	}

	b := img.Bounds()
	w, h := FitScale(float64(b.Dx()), float64(b.Dy()),
		m.width*m.cfg.Add.ScaleWidth, m.height*m.cfg.Add.ScaleHeight)
	p := newPicture(url, img, m.width/2-w/2, m.height/2-h/2, w, h)

	m.pictures = append(m.pictures, p)
	m.selected = len(m.pictures) - 1
	// A gesture in progress belonged to the previous selection.
	m.mode = ModeNone
	m.handle = -1
	m.log.Debug("added", "id", p.ID, "width", w, "height", h, "count", len(m.pictures))
	m.Render()
	m.fireChange()
	return *p, nil
}

func (m *Mixer) checkCapacity() error {
	if len(m.pictures) >= m.cfg.Add.Count {
		return newError(ErrCodeCapacityExceeded, "scene holds %d pictures, limit is %d",
			len(m.pictures), m.cfg.Add.Count)
	}
	return nil
}

// Pictures returns a snapshot of the picture list in paint order.
func (m *Mixer) Pictures() []Picture {
	out := make([]Picture, len(m.pictures))
	for i, p := range m.pictures {
		out[i] = *p
	}
	return out
}

// Len returns the number of pictures in the scene.
func (m *Mixer) Len() int {
	return len(m.pictures)
}

// Selected returns the index of the selected picture, or -1.
func (m *Mixer) Selected() int {
	return m.selected
}

// SelectedPicture returns a snapshot of the selected picture.
func (m *Mixer) SelectedPicture() (Picture, bool) {
	p := m.selectedPicture()
	if p == nil {
		return Picture{}, false
	}
	return *p, true
}

// Select selects the picture at index i, or clears the selection when i is
// out of range, and renders.
func (m *Mixer) Select(i int) {
	if i < 0 || i >= len(m.pictures) {
		i = -1
	}
	m.selected = i
	m.mode = ModeNone
	m.handle = -1
	m.Render()
}

// Mode returns the operation the current gesture drives.
func (m *Mixer) Mode() Mode {
	return m.mode
}

// Handle returns the grabbed corner 0..3 while scaling, or -1.
func (m *Mixer) Handle() int {
	return m.handle
}

// Layer returns one of the four layers.
func (m *Mixer) Layer(k LayerKind) *Layer {
	return m.layers[k]
}

// Layers returns the four layers in LayerKind order.
func (m *Mixer) Layers() []*Layer {
	return m.layers[:]
}

// RemoveSelected deletes the selected picture. It reports whether a picture
// was removed. Nothing is removed unless AllowRemove is set, and a picture
// being rotated is never removed.
func (m *Mixer) RemoveSelected() bool {
	p := m.selectedPicture()
	if !m.cfg.AllowRemove || p == nil || p.busy {
		return false
	}
	m.pictures = slices.Delete(m.pictures, m.selected, m.selected+1)
	m.selected = -1
	m.mode = ModeNone
	m.handle = -1
	m.log.Debug("removed", "id", p.ID, "count", len(m.pictures))
	m.fireChange()
	if len(m.pictures) == 0 {
		m.raiseWatermark()
	}
	m.Render()
	return true
}

// promoteToTop moves the picture at i to the top of the paint order by
// swapping it with the topmost one, and returns its new index.
func (m *Mixer) promoteToTop(i int) int {
	last := len(m.pictures) - 1
	if i < 0 || i >= last {
		return i
	}
	m.pictures[i], m.pictures[last] = m.pictures[last], m.pictures[i]
	return last
}

func (m *Mixer) selectedPicture() *Picture {
	if m.selected < 0 || m.selected >= len(m.pictures) {
		return nil
	}
	return m.pictures[m.selected]
}

func (m *Mixer) indexOf(p *Picture) int {
	return slices.Index(m.pictures, p)
}
