package folio

import (
	"fmt"
	"time"
)

// TiltCard rotates a card toward the pointer. The pointer offset from the
// card center, normalised to [-0.5, 0.5] on each axis, is spring-smoothed and
// mapped to rotateX (from the vertical offset) and rotateY (from the
// horizontal offset).
type TiltCard struct {
	el Element

	offX, offY float64
	springX    *Smoother
	springY    *Smoother
	rotX, rotY *Table
	hovered    bool

	vp      *Viewport
	handles [3]CallbackHandle
	tick    ticker
	mounted bool
}

// DefaultTiltDegrees is the maximum rotation on each axis.
const DefaultTiltDegrees = 8

// NewTiltCard creates a tilt card over el rotating at most maxDegrees.
// Non-positive maxDegrees uses DefaultTiltDegrees; a zero spring uses
// SpringTilt.
func NewTiltCard(el Element, maxDegrees float64, spring SpringConfig) (*TiltCard, error) {
	if missingElement(el) {
		return nil, fmt.Errorf("tilt card: %w", ErrNoElement)
	}
	if maxDegrees <= 0 {
		maxDegrees = DefaultTiltDegrees
	}
	if spring == (SpringConfig{}) {
		spring = SpringTilt
	}
	t := &TiltCard{el: el}
	t.springX = NewSmoother(SignalFunc(func() float64 { return t.offX }), spring)
	t.springY = NewSmoother(SignalFunc(func() float64 { return t.offY }), spring)
	t.rotX = MustTable([]float64{-0.5, 0.5}, []float64{maxDegrees, -maxDegrees})
	t.rotY = MustTable([]float64{-0.5, 0.5}, []float64{-maxDegrees, maxDegrees})
	t.tick.step = t.step
	return t, nil
}

// Mount tracks pointer and scroll events on vp. Scrolling moves the card
// under a stationary pointer, so it is treated like pointer movement.
func (t *TiltCard) Mount(vp *Viewport, frames Scheduler) error {
	if t.mounted {
		return fmt.Errorf("tilt card: %w", ErrAlreadyMounted)
	}
	t.vp = vp
	t.tick.frames = frames
	t.mounted = true
	reduce := vp.ReducedMotion()
	t.springX.SetImmediate(reduce)
	t.springY.SetImmediate(reduce)
	t.handles[0] = vp.On(EventPointerMove, t.onPointer)
	t.handles[1] = vp.On(EventScroll, t.onPointer)
	t.handles[2] = vp.On(EventPointerLeave, func(ViewportEvent) { t.leave() })
	return nil
}

// Unmount removes listeners and cancels the pending frame.
func (t *TiltCard) Unmount() {
	if !t.mounted {
		return
	}
	for i := range t.handles {
		t.handles[i].Remove()
		t.handles[i] = CallbackHandle{}
	}
	t.tick.stop()
	t.tick.frames = nil
	t.vp = nil
	t.mounted = false
}

func (t *TiltCard) onPointer(e ViewportEvent) {
	if _, inside := t.vp.Pointer(); !inside {
		return
	}
	t.PointerAt(e.PointerX, e.PageY())
}

// PointerAt feeds a document-space pointer position. Positions outside the
// card release the tilt.
func (t *TiltCard) PointerAt(x, y float64) {
	r, ok := t.el.Bounds()
	if !ok || r.Width <= 0 || r.Height <= 0 || !r.Contains(x, y) {
		t.leave()
		return
	}
	t.hovered = true
	t.offX = (x-r.X)/r.Width - 0.5
	t.offY = (y-r.Y)/r.Height - 0.5
	t.sync()
}

func (t *TiltCard) leave() {
	if !t.hovered && t.offX == 0 && t.offY == 0 {
		return
	}
	t.hovered = false
	t.offX, t.offY = 0, 0
	t.sync()
}

func (t *TiltCard) sync() {
	a := t.springX.Sync()
	b := t.springY.Sync()
	if a || b {
		t.tick.wake()
	}
}

func (t *TiltCard) step(dt time.Duration) bool {
	a := t.springX.Step(dt)
	b := t.springY.Step(dt)
	return a || b
}

// Hovered reports whether the pointer is over the card.
func (t *TiltCard) Hovered() bool { return t.hovered }

// Element returns the card's element.
func (t *TiltCard) Element() Element { return t.el }

// Offset returns the smoothed normalised pointer offset.
func (t *TiltCard) Offset() Vec2 { return Vec2{t.springX.Value(), t.springY.Value()} }

// RotateX returns the rotation about the horizontal axis in degrees.
func (t *TiltCard) RotateX() float64 { return t.rotX.At(t.springY.Value()) }

// RotateY returns the rotation about the vertical axis in degrees.
func (t *TiltCard) RotateY() float64 { return t.rotY.At(t.springX.Value()) }

// Active reports whether a frame is scheduled.
func (t *TiltCard) Active() bool { return t.tick.active }
