package folio

import (
	"math"
	"testing"
	"time"
)

func mountCursor(t *testing.T, reduced bool) (*CursorFollower, *Viewport, *frameClock) {
	t.Helper()
	vp := NewViewport(1000, 800)
	vp.SetReducedMotion(reduced)
	clock := &frameClock{q: NewFrameQueue()}
	c := NewCursorFollower(CursorConfig{})
	if err := c.Mount(vp, clock.q); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Unmount)
	return c, vp, clock
}

func TestCursorDefaults(t *testing.T) {
	c := NewCursorFollower(CursorConfig{RingLerp: 2, DotLerp: -1})
	if c.Config() != DefaultCursorConfig {
		t.Errorf("config = %+v", c.Config())
	}
	if c.Visible() {
		t.Error("visible before any pointer event")
	}
}

func TestCursorFirstMoveSnaps(t *testing.T) {
	c, vp, clock := mountCursor(t, false)
	vp.MovePointer(100, 200)
	if c.Ring() != (Vec2{100, 200}) || c.Dot() != (Vec2{100, 200}) {
		t.Errorf("ring %v dot %v, want snapped", c.Ring(), c.Dot())
	}
	if !c.Visible() || c.Active() || clock.q.Pending() != 0 {
		t.Error("first move should snap without a frame loop")
	}
}

func TestCursorTrails(t *testing.T) {
	c, vp, clock := mountCursor(t, false)
	vp.MovePointer(100, 100)
	vp.MovePointer(200, 100)
	if !c.Active() {
		t.Fatal("move did not start the frame loop")
	}
	clock.run(1)
	if got := c.Ring().X; !approxEqual(got, 115, 1e-4) {
		t.Errorf("ring after one frame = %v, want 115", got)
	}
	if got := c.Dot().X; !approxEqual(got, 180, 1e-4) {
		t.Errorf("dot after one frame = %v, want 180", got)
	}
	if c.Ring().X >= c.Dot().X {
		t.Error("ring should lag behind the dot")
	}

	clock.run(300)
	if c.Ring() != c.Target() || c.Dot() != c.Target() {
		t.Errorf("ring %v dot %v, want both at %v", c.Ring(), c.Dot(), c.Target())
	}
	if c.Active() || clock.q.Pending() != 0 {
		t.Error("frame loop still running at rest")
	}
}

func TestCursorFrameRateIndependent(t *testing.T) {
	// Two 1/120 s steps cover the same ground as one 1/60 s step.
	a := NewCursorFollower(CursorConfig{})
	b := NewCursorFollower(CursorConfig{})
	for _, c := range []*CursorFollower{a, b} {
		c.snap(Vec2{})
		c.target = Vec2{100, 0}
	}
	a.step(time.Second / 60)
	b.step(time.Second / 120)
	b.step(time.Second / 120)
	if math.Abs(a.Ring().X-b.Ring().X) > 1e-6 {
		t.Errorf("60Hz ring %v != 120Hz ring %v", a.Ring().X, b.Ring().X)
	}
}

func TestCursorReducedMotionSnaps(t *testing.T) {
	c, vp, clock := mountCursor(t, true)
	vp.MovePointer(10, 10)
	vp.MovePointer(500, 300)
	if c.Ring() != (Vec2{500, 300}) || clock.q.Pending() != 0 {
		t.Errorf("reduced motion ring = %v pending %d", c.Ring(), clock.q.Pending())
	}
}

func TestCursorLeaveAndHover(t *testing.T) {
	c, vp, _ := mountCursor(t, false)
	vp.MovePointer(10, 10)
	c.SetHover(HoverProject)
	if !c.Hovering() || c.Label() != "View" {
		t.Errorf("hover label = %q", c.Label())
	}
	vp.LeavePointer()
	if c.Visible() || c.Hovering() {
		t.Error("leave should hide the cursor and clear hover")
	}
	vp.MovePointer(20, 20)
	if !c.Visible() {
		t.Error("re-entering should show the cursor")
	}
}

func TestHoverLabels(t *testing.T) {
	tests := map[HoverKind]string{
		HoverNone:        "",
		HoverInteractive: "",
		HoverProject:     "View",
		HoverNav:         "Go",
		HoverSocial:      "Visit",
	}
	for k, want := range tests {
		if got := k.Label(); got != want {
			t.Errorf("%d.Label() = %q, want %q", k, got, want)
		}
	}
}

func TestCursorTransformsCenterMarkers(t *testing.T) {
	c, vp, _ := mountCursor(t, true)
	vp.MovePointer(100, 100)
	if tr := c.RingTransform(); tr.X != 84 || tr.Y != 84 {
		t.Errorf("ring transform = %+v", tr)
	}
	if tr := c.DotTransform(); tr.X != 98 || tr.Y != 98 {
		t.Errorf("dot transform = %+v", tr)
	}
}

func TestCursorUnmount(t *testing.T) {
	c, vp, clock := mountCursor(t, false)
	vp.MovePointer(0, 0)
	vp.MovePointer(100, 0)
	c.Unmount()
	if vp.ListenerCount() != 0 || clock.q.Pending() != 0 {
		t.Errorf("listeners %d pending %d after Unmount", vp.ListenerCount(), clock.q.Pending())
	}
}
