package folio

// EventType identifies a viewport input event.
type EventType uint8

const (
	EventScroll       EventType = iota // scroll offset changed
	EventResize                        // viewport dimensions changed
	EventPointerMove                   // pointer moved inside the viewport
	EventPointerLeave                  // pointer left the viewport
)

func (e EventType) String() string {
	switch e {
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerLeave:
		return "pointer-leave"
	}
	return "unknown"
}

// ViewportEvent carries the viewport state at the time an event fired.
// Pointer coordinates are client (viewport) coordinates; PageX/PageY add
// the scroll offset.
type ViewportEvent struct {
	Type     EventType
	ScrollY  float64
	Width    float64
	Height   float64
	PointerX float64
	PointerY float64
}

// PageY returns the pointer Y in document space.
func (e ViewportEvent) PageY() float64 { return e.PointerY + e.ScrollY }

type viewportHandler struct {
	id uint32
	fn func(ViewportEvent)
}

type handlerRegistry struct {
	scroll       []viewportHandler
	resize       []viewportHandler
	pointerMove  []viewportHandler
	pointerLeave []viewportHandler
	nextID       uint32
}

func (r *handlerRegistry) list(ev EventType) *[]viewportHandler {
	switch ev {
	case EventScroll:
		return &r.scroll
	case EventResize:
		return &r.resize
	case EventPointerMove:
		return &r.pointerMove
	case EventPointerLeave:
		return &r.pointerLeave
	}
	return nil
}

// CallbackHandle allows removing a registered viewport listener.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the listener. Removing twice is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	l := h.reg.list(h.event)
	if l == nil {
		return
	}
	*l = removeViewportHandler(*l, h.id)
}

func removeViewportHandler(s []viewportHandler, id uint32) []viewportHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = viewportHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// Viewport is the visible window onto the page. It owns the scroll offset,
// the viewport size, the pointer position and the reduced-motion preference,
// and fans input events out to listeners.
type Viewport struct {
	scrollY       float64
	width         float64
	height        float64
	contentHeight float64
	pointer       Vec2
	pointerInside bool
	reducedMotion bool

	handlers handlerRegistry
	dispatch []viewportHandler
	emitting bool
}

// NewViewport creates a viewport of the given size scrolled to the top.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{width: width, height: height}
}

// On registers fn for events of type ev.
func (v *Viewport) On(ev EventType, fn func(ViewportEvent)) CallbackHandle {
	l := v.handlers.list(ev)
	if l == nil || fn == nil {
		return CallbackHandle{}
	}
	v.handlers.nextID++
	id := v.handlers.nextID
	*l = append(*l, viewportHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &v.handlers, event: ev}
}

// ListenerCount returns the number of registered listeners across all event
// types.
func (v *Viewport) ListenerCount() int {
	r := &v.handlers
	return len(r.scroll) + len(r.resize) + len(r.pointerMove) + len(r.pointerLeave)
}

func (v *Viewport) event(ev EventType) ViewportEvent {
	return ViewportEvent{
		Type:     ev,
		ScrollY:  v.scrollY,
		Width:    v.width,
		Height:   v.height,
		PointerX: v.pointer.X,
		PointerY: v.pointer.Y,
	}
}

// emit snapshots the listener list so handlers may remove themselves.
func (v *Viewport) emit(ev EventType) {
	l := v.handlers.list(ev)
	if l == nil || len(*l) == 0 {
		return
	}
	e := v.event(ev)
	if v.emitting {
		// Nested emit from inside a handler; don't clobber the outer batch.
		for _, h := range append([]viewportHandler(nil), *l...) {
			h.fn(e)
		}
		return
	}
	v.emitting = true
	v.dispatch = append(v.dispatch[:0], *l...)
	for _, h := range v.dispatch {
		h.fn(e)
	}
	for i := range v.dispatch {
		v.dispatch[i] = viewportHandler{}
	}
	v.dispatch = v.dispatch[:0]
	v.emitting = false
}

// ScrollY returns the current vertical scroll offset.
func (v *Viewport) ScrollY() float64 { return v.scrollY }

// Size returns the viewport dimensions.
func (v *Viewport) Size() (width, height float64) { return v.width, v.height }

// Height returns the viewport height.
func (v *Viewport) Height() float64 { return v.height }

// SetContentHeight sets the document height used to clamp scrolling. Zero
// disables the upper clamp.
func (v *Viewport) SetContentHeight(h float64) {
	v.contentHeight = h
	v.ScrollTo(v.scrollY)
}

// ContentHeight returns the document height.
func (v *Viewport) ContentHeight() float64 { return v.contentHeight }

// MaxScroll returns the largest reachable scroll offset, or 0 when the
// content fits or is unbounded.
func (v *Viewport) MaxScroll() float64 {
	if v.contentHeight <= v.height {
		return 0
	}
	return v.contentHeight - v.height
}

func (v *Viewport) clampScroll(y float64) float64 {
	if y < 0 {
		return 0
	}
	if v.contentHeight > 0 {
		if m := v.MaxScroll(); y > m {
			return m
		}
	}
	return y
}

// ScrollTo moves the scroll offset and notifies scroll listeners when it
// changed.
func (v *Viewport) ScrollTo(y float64) {
	y = v.clampScroll(y)
	if y == v.scrollY {
		return
	}
	v.scrollY = y
	v.emit(EventScroll)
}

// ScrollBy moves the scroll offset relative to its current value.
func (v *Viewport) ScrollBy(dy float64) {
	v.ScrollTo(v.scrollY + dy)
}

// Resize changes the viewport dimensions and notifies resize listeners.
func (v *Viewport) Resize(width, height float64) {
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	v.emit(EventResize)
	// A taller viewport can lower the maximum scroll offset.
	v.ScrollTo(v.scrollY)
}

// MovePointer records the pointer position in client coordinates.
func (v *Viewport) MovePointer(x, y float64) {
	if v.pointerInside && v.pointer.X == x && v.pointer.Y == y {
		return
	}
	v.pointer = Vec2{x, y}
	v.pointerInside = true
	v.emit(EventPointerMove)
}

// LeavePointer records that the pointer left the viewport.
func (v *Viewport) LeavePointer() {
	if !v.pointerInside {
		return
	}
	v.pointerInside = false
	v.emit(EventPointerLeave)
}

// Pointer returns the last pointer position and whether it is inside.
func (v *Viewport) Pointer() (Vec2, bool) { return v.pointer, v.pointerInside }

// SetReducedMotion records the user's reduced-motion preference. Components
// read it once when they mount.
func (v *Viewport) SetReducedMotion(reduce bool) { v.reducedMotion = reduce }

// ReducedMotion reports the reduced-motion preference.
func (v *Viewport) ReducedMotion() bool { return v.reducedMotion }

// Visible returns the document-space rectangle currently in view.
func (v *Viewport) Visible() Rect {
	return Rect{X: 0, Y: v.scrollY, Width: v.width, Height: v.height}
}
