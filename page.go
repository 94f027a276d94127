package folio

import (
	"errors"
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ErrDuplicateScene is returned when two scenes share an ID.
var ErrDuplicateScene = errors.New("folio: duplicate scene id")

// ErrUnknownScene is returned for an anchor that names no scene.
var ErrUnknownScene = errors.New("folio: unknown scene id")

// Component is anything with a mount lifecycle against a viewport and frame
// scheduler. Unmount must remove every listener and cancel every pending
// frame the component registered.
type Component interface {
	Mount(vp *Viewport, frames Scheduler) error
	Unmount()
}

// SceneEventType identifies a scene visibility change.
type SceneEventType uint8

const (
	SceneEntered SceneEventType = iota // progress moved into (0, 1)
	SceneExited                        // progress reached 0 or 1
)

func (t SceneEventType) String() string {
	if t == SceneExited {
		return "exited"
	}
	return "entered"
}

// SceneEvent is emitted to the page's EventSink when a scene becomes visible
// or hidden.
type SceneEvent struct {
	Type     SceneEventType
	SceneID  string
	Progress float64
	ScrollY  float64
}

// EventSink receives scene events. Used for the optional ECS bridge.
type EventSink interface {
	EmitEvent(event SceneEvent)
}

// SceneSnapshot is a scene's state at one instant.
type SceneSnapshot struct {
	ID       string
	Progress float64
	Style    Transform
	Visible  bool
	Active   bool
}

// scrollAnim holds an active smooth-scroll tween.
type scrollAnim struct {
	tween *gween.Tween
}

// Page is the top-level object that owns the viewport, the frame queue, the
// scenes in document order and any other mounted components.
type Page struct {
	viewport   *Viewport
	frames     *FrameQueue
	scenes     []*Scene
	components []Component
	shapes     []FloatingShape
	spy        *ScrollSpy

	clock       time.Duration
	sink        EventSink
	debug       bool
	scrollTween *scrollAnim
	updateFunc  func() error

	injectQueue []syntheticEvent
	testRunner  *TestRunner
	closed      bool

	screenshotQueue []string
	screenshotDir   string
}

// NewPage creates a page with a viewport of the given size.
func NewPage(width, height float64) *Page {
	p := &Page{
		viewport: NewViewport(width, height),
		frames:   NewFrameQueue(),
	}
	p.spy = NewScrollSpy(p.Scenes)
	_ = p.spy.Mount(p.viewport, p.frames)
	return p
}

// Viewport returns the page's viewport.
func (p *Page) Viewport() *Viewport { return p.viewport }

// Frames returns the page's frame queue.
func (p *Page) Frames() *FrameQueue { return p.frames }

// Clock returns the accumulated frame time.
func (p *Page) Clock() time.Duration { return p.clock }

// SetEventSink sets the optional scene event receiver.
func (p *Page) SetEventSink(sink EventSink) { p.sink = sink }

// SetUpdateFunc registers a callback run at the end of every Update.
func (p *Page) SetUpdateFunc(fn func() error) { p.updateFunc = fn }

// SetDebugMode enables per-frame stats at debug log level and panics on use
// after Close.
func (p *Page) SetDebugMode(enabled bool) { p.debug = enabled }

// AddScene mounts s and appends it in document order.
func (p *Page) AddScene(s *Scene) error {
	if p.debug {
		debugCheckClosed(p, "AddScene")
	}
	if _, ok := p.Scene(s.ID()); ok {
		return fmt.Errorf("scene %q: %w", s.ID(), ErrDuplicateScene)
	}
	s.onVisibility = p.sceneVisibility
	p.updateContentHeight(s)
	if err := s.Mount(p.viewport, p.frames); err != nil {
		s.onVisibility = nil
		return err
	}
	p.scenes = append(p.scenes, s)
	p.spy.Update()
	return nil
}

// RemoveScene unmounts and drops the scene with the given ID.
func (p *Page) RemoveScene(id string) bool {
	for i, s := range p.scenes {
		if s.ID() == id {
			s.Unmount()
			s.onVisibility = nil
			p.scenes = append(p.scenes[:i], p.scenes[i+1:]...)
			p.spy.Update()
			return true
		}
	}
	return false
}

// Scene returns the scene with the given ID.
func (p *Page) Scene(id string) (*Scene, bool) {
	for _, s := range p.scenes {
		if s.ID() == id {
			return s, true
		}
	}
	return nil, false
}

// Scenes returns the scenes in document order. The returned slice MUST NOT
// be mutated.
func (p *Page) Scenes() []*Scene { return p.scenes }

// Add mounts a non-scene component.
func (p *Page) Add(c Component) error {
	if p.debug {
		debugCheckClosed(p, "Add")
	}
	if err := c.Mount(p.viewport, p.frames); err != nil {
		return err
	}
	p.components = append(p.components, c)
	return nil
}

// Remove unmounts and drops a component added with Add.
func (p *Page) Remove(c Component) bool {
	for i, x := range p.components {
		if x == c {
			c.Unmount()
			p.components = append(p.components[:i], p.components[i+1:]...)
			return true
		}
	}
	return false
}

// Components returns the mounted non-scene components.
func (p *Page) Components() []Component { return p.components }

// SetFloatingShapes replaces the decorative shape layout.
func (p *Page) SetFloatingShapes(shapes []FloatingShape) { p.shapes = shapes }

// FloatingShapes returns the decorative shape layout.
func (p *Page) FloatingShapes() []FloatingShape { return p.shapes }

func (p *Page) updateContentHeight(s *Scene) {
	r, ok := s.Element().Bounds()
	if ok && r.Bottom() > p.viewport.ContentHeight() {
		p.viewport.SetContentHeight(r.Bottom())
	}
}

// Relayout recomputes the content height and every scene's progress after
// element layouts changed.
func (p *Page) Relayout() {
	h := 0.0
	for _, s := range p.scenes {
		if r, ok := s.Element().Bounds(); ok && r.Bottom() > h {
			h = r.Bottom()
		}
	}
	p.viewport.SetContentHeight(h)
	for _, s := range p.scenes {
		s.Refresh()
	}
	p.spy.Update()
}

func (p *Page) sceneVisibility(s *Scene, visible bool) {
	t := SceneExited
	if visible {
		t = SceneEntered
	}
	Logger().Debug("scene visibility", "id", s.ID(), "event", t, "progress", s.Progress())
	if p.sink != nil {
		p.sink.EmitEvent(SceneEvent{Type: t, SceneID: s.ID(), Progress: s.Progress(), ScrollY: p.viewport.ScrollY()})
	}
}

// Anchor returns the scroll position that brings the scene's top to the
// top of the viewport, clamped to the reachable range.
func (p *Page) Anchor(id string) (float64, bool) {
	s, ok := p.Scene(id)
	if !ok {
		return 0, false
	}
	r, ok := s.Element().Bounds()
	if !ok {
		return 0, false
	}
	y := r.Y
	if m := p.viewport.MaxScroll(); p.viewport.ContentHeight() > 0 && y > m {
		y = m
	}
	if y < 0 {
		y = 0
	}
	return y, true
}

// ScrollTo scrolls the viewport to y over duration. A zero duration, or the
// reduced-motion preference, jumps immediately. A nil fn uses EaseGentle.
func (p *Page) ScrollTo(y float64, duration time.Duration, fn ease.TweenFunc) {
	if duration <= 0 || p.viewport.ReducedMotion() {
		p.scrollTween = nil
		p.viewport.ScrollTo(y)
		return
	}
	if fn == nil {
		fn = EaseGentle.TweenFunc()
	}
	p.scrollTween = &scrollAnim{
		tween: gween.New(float32(p.viewport.ScrollY()), float32(y), float32(duration.Seconds()), fn),
	}
}

// ScrollToAnchor scrolls to the top of the named scene.
func (p *Page) ScrollToAnchor(id string, duration time.Duration, fn ease.TweenFunc) error {
	y, ok := p.Anchor(id)
	if !ok {
		return fmt.Errorf("anchor %q: %w", id, ErrUnknownScene)
	}
	p.ScrollTo(y, duration, fn)
	return nil
}

// ActiveSection returns the ID of the scene under the navigation mark,
// SpyOffset below the viewport top.
func (p *Page) ActiveSection() (string, bool) { return p.spy.Active() }

// Scrolled reports whether the viewport is past ScrolledThreshold.
func (p *Page) Scrolled() bool { return p.spy.Scrolled() }

// OnActiveSection registers fn to run when the active section changes.
func (p *Page) OnActiveSection(fn func(id string)) { p.spy.OnChange(fn) }

// Scrolling reports whether a smooth scroll is in progress.
func (p *Page) Scrolling() bool { return p.scrollTween != nil }

// Update processes injected input, advances smooth scrolling and runs one
// animation frame.
func (p *Page) Update(dt time.Duration) error {
	if p.debug {
		debugCheckClosed(p, "Update")
	}
	var t0 time.Time
	if p.debug {
		t0 = time.Now()
	}

	if p.testRunner != nil {
		p.testRunner.step(p)
	}
	p.processInjected()

	if p.scrollTween != nil {
		v, done := p.scrollTween.tween.Update(float32(dt.Seconds()))
		p.viewport.ScrollTo(float64(v))
		if done {
			p.scrollTween = nil
		}
	}

	if dt > 0 {
		p.clock += dt
	}
	ran := p.frames.Tick(p.clock)

	if p.debug {
		p.debugLog(frameStats{
			tickTime:  time.Since(t0),
			callbacks: ran,
			pending:   p.frames.Pending(),
			settling:  p.countSettling(),
			listeners: p.viewport.ListenerCount(),
		})
	}
	if p.updateFunc != nil {
		return p.updateFunc()
	}
	return nil
}

func (p *Page) countSettling() int {
	n := 0
	for _, s := range p.scenes {
		if s.Settling() {
			n++
		}
	}
	return n
}

// Snapshot returns every scene's current state in document order.
func (p *Page) Snapshot() []SceneSnapshot {
	active, _ := p.spy.Active()
	out := make([]SceneSnapshot, len(p.scenes))
	for i, s := range p.scenes {
		out[i] = SceneSnapshot{
			ID:       s.ID(),
			Progress: s.Progress(),
			Style:    s.Style(),
			Visible:  s.Visible(),
			Active:   s.ID() == active,
		}
	}
	return out
}

// Close unmounts every component and scene in reverse order. The page must
// not be used afterwards.
func (p *Page) Close() {
	if p.closed {
		return
	}
	for i := len(p.components) - 1; i >= 0; i-- {
		p.components[i].Unmount()
	}
	for i := len(p.scenes) - 1; i >= 0; i-- {
		p.scenes[i].Unmount()
		p.scenes[i].onVisibility = nil
	}
	p.spy.Unmount()
	p.components = nil
	p.scenes = nil
	p.scrollTween = nil
	p.closed = true
	Logger().Info("page closed", "listeners", p.viewport.ListenerCount(), "pendingFrames", p.frames.Pending())
}
