package picmix

// EventType identifies a Mixer notification.
type EventType uint8

const (
	EventRender EventType = iota // after every redraw
	EventChange                  // after add, move, scale, rotate or delete
	EventLoaded                  // once, after the layers are set up
)

// RenderFunc and ChangeFunc receive a snapshot of the picture list in paint
// order. The snapshot is safe to keep; the images are shared.
type (
	RenderFunc func(pictures []Picture)
	ChangeFunc func(pictures []Picture)
	// LoadedFunc receives the background layer so the host can draw guides
	// behind the pictures.
	LoadedFunc func(background *Layer, width, height float64)
)

// --- Handler registry ---

type handler[F any] struct {
	id uint32
	fn F
}

type handlerRegistry struct {
	render []handler[RenderFunc]
	change []handler[ChangeFunc]
	loaded []handler[LoadedFunc]
	nextID uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice is
// a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventRender:
		h.reg.render = removeHandler(h.reg.render, h.id)
	case EventChange:
		h.reg.change = removeHandler(h.reg.change, h.id)
	case EventLoaded:
		h.reg.loaded = removeHandler(h.reg.loaded, h.id)
	}
}

func removeHandler[F any](s []handler[F], id uint32) []handler[F] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[F]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func addHandler[F any](reg *handlerRegistry, s *[]handler[F], fn F, event EventType) CallbackHandle {
	reg.nextID++
	id := reg.nextID
	*s = append(*s, handler[F]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: reg, event: event}
}

// --- Mixer-level registration ---

// OnRender registers a callback fired after every Render.
func (m *Mixer) OnRender(fn RenderFunc) CallbackHandle {
	return addHandler(&m.handlers, &m.handlers.render, fn, EventRender)
}

// OnChange registers a callback fired after every committed scene mutation.
func (m *Mixer) OnChange(fn ChangeFunc) CallbackHandle {
	return addHandler(&m.handlers, &m.handlers.change, fn, EventChange)
}

// OnLoaded registers a callback fired once by Load.
func (m *Mixer) OnLoaded(fn LoadedFunc) CallbackHandle {
	return addHandler(&m.handlers, &m.handlers.loaded, fn, EventLoaded)
}

func (m *Mixer) fireRender() {
	if len(m.handlers.render) == 0 {
		return
	}
	snap := m.Pictures()
	for _, h := range m.handlers.render {
		h.fn(snap)
	}
}

func (m *Mixer) fireChange() {
	if len(m.handlers.change) == 0 {
		return
	}
	snap := m.Pictures()
	for _, h := range m.handlers.change {
		h.fn(snap)
	}
}

func (m *Mixer) fireLoaded() {
	bg := m.layers[LayerBackground]
	for _, h := range m.handlers.loaded {
		h.fn(bg, m.width, m.height)
	}
}
