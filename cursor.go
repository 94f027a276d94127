package folio

import (
	"fmt"
	"math"
	"time"
)

// HoverKind classifies what the pointer is over, which changes the cursor
// ring's appearance and label.
type HoverKind uint8

const (
	HoverNone        HoverKind = iota // plain page
	HoverInteractive                  // buttons, links, inputs
	HoverProject                      // project card
	HoverNav                          // navigation item
	HoverSocial                       // social link
)

// Label returns the text shown inside the ring for the hover kind.
func (k HoverKind) Label() string {
	switch k {
	case HoverProject:
		return "View"
	case HoverNav:
		return "Go"
	case HoverSocial:
		return "Visit"
	}
	return ""
}

// CursorConfig tunes the follower. Lerp factors are per 1/60 s frame.
type CursorConfig struct {
	RingLerp float64
	DotLerp  float64
	RingSize float64
	DotSize  float64
	// RestDistance stops the frame loop once both markers are this close to
	// the pointer.
	RestDistance float64
}

// DefaultCursorConfig is a slow 32px ring and a fast 4px dot.
var DefaultCursorConfig = CursorConfig{
	RingLerp:     0.15,
	DotLerp:      0.8,
	RingSize:     32,
	DotSize:      4,
	RestDistance: 0.05,
}

// CursorFollower draws a ring and a dot that trail the pointer with
// independent exponential smoothing.
type CursorFollower struct {
	cfg CursorConfig

	target Vec2
	ring   Vec2
	dot    Vec2
	seen   bool
	hover  HoverKind
	inside bool

	vp      *Viewport
	handles [2]CallbackHandle
	tick    ticker
	mounted bool
	reduced bool
}

// NewCursorFollower creates a follower. Zero fields of cfg take defaults.
func NewCursorFollower(cfg CursorConfig) *CursorFollower {
	d := DefaultCursorConfig
	if cfg.RingLerp <= 0 || cfg.RingLerp > 1 {
		cfg.RingLerp = d.RingLerp
	}
	if cfg.DotLerp <= 0 || cfg.DotLerp > 1 {
		cfg.DotLerp = d.DotLerp
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = d.RingSize
	}
	if cfg.DotSize <= 0 {
		cfg.DotSize = d.DotSize
	}
	if cfg.RestDistance <= 0 {
		cfg.RestDistance = d.RestDistance
	}
	c := &CursorFollower{cfg: cfg}
	c.tick.step = c.step
	return c
}

// Mount starts listening to pointer events on vp.
func (c *CursorFollower) Mount(vp *Viewport, frames Scheduler) error {
	if c.mounted {
		return fmt.Errorf("cursor follower: %w", ErrAlreadyMounted)
	}
	c.vp = vp
	c.tick.frames = frames
	c.mounted = true
	c.reduced = vp.ReducedMotion()
	c.handles[0] = vp.On(EventPointerMove, c.onMove)
	c.handles[1] = vp.On(EventPointerLeave, func(ViewportEvent) {
		c.inside = false
		c.hover = HoverNone
	})
	if p, ok := vp.Pointer(); ok {
		c.snap(p)
	}
	return nil
}

// Unmount removes listeners and cancels the pending frame.
func (c *CursorFollower) Unmount() {
	if !c.mounted {
		return
	}
	for i := range c.handles {
		c.handles[i].Remove()
		c.handles[i] = CallbackHandle{}
	}
	c.tick.stop()
	c.tick.frames = nil
	c.vp = nil
	c.mounted = false
}

func (c *CursorFollower) snap(p Vec2) {
	c.target, c.ring, c.dot = p, p, p
	c.seen = true
	c.inside = true
}

func (c *CursorFollower) onMove(e ViewportEvent) {
	p := Vec2{e.PointerX, e.PointerY}
	if !c.seen || c.reduced {
		c.snap(p)
		return
	}
	c.target = p
	c.inside = true
	c.tick.wake()
}

// lerpFactor converts a per-frame factor to one for an arbitrary dt.
func lerpFactor(k float64, dt time.Duration) float64 {
	if k >= 1 {
		return 1
	}
	frames := dt.Seconds() * 60
	return 1 - math.Pow(1-k, frames)
}

func (c *CursorFollower) step(dt time.Duration) bool {
	kr := lerpFactor(c.cfg.RingLerp, dt)
	kd := lerpFactor(c.cfg.DotLerp, dt)
	c.ring.X += (c.target.X - c.ring.X) * kr
	c.ring.Y += (c.target.Y - c.ring.Y) * kr
	c.dot.X += (c.target.X - c.dot.X) * kd
	c.dot.Y += (c.target.Y - c.dot.Y) * kd

	rest := c.cfg.RestDistance
	ringDone := math.Abs(c.target.X-c.ring.X) < rest && math.Abs(c.target.Y-c.ring.Y) < rest
	dotDone := math.Abs(c.target.X-c.dot.X) < rest && math.Abs(c.target.Y-c.dot.Y) < rest
	if ringDone {
		c.ring = c.target
	}
	if dotDone {
		c.dot = c.target
	}
	return !(ringDone && dotDone)
}

// SetHover sets what the pointer is over.
func (c *CursorFollower) SetHover(k HoverKind) { c.hover = k }

// Hover returns the current hover kind.
func (c *CursorFollower) Hover() HoverKind { return c.hover }

// Hovering reports whether the pointer is over anything interactive.
func (c *CursorFollower) Hovering() bool { return c.hover != HoverNone }

// Label returns the ring label for the current hover kind.
func (c *CursorFollower) Label() string { return c.hover.Label() }

// Visible reports whether the pointer has been seen and is inside the
// viewport.
func (c *CursorFollower) Visible() bool { return c.seen && c.inside }

// Ring returns the ring center.
func (c *CursorFollower) Ring() Vec2 { return c.ring }

// Dot returns the dot center.
func (c *CursorFollower) Dot() Vec2 { return c.dot }

// Target returns the last pointer position.
func (c *CursorFollower) Target() Vec2 { return c.target }

// RingTransform returns the ring's top-left translation.
func (c *CursorFollower) RingTransform() Transform {
	h := c.cfg.RingSize / 2
	return Transform{X: c.ring.X - h, Y: c.ring.Y - h, Scale: 1, Opacity: 1}
}

// DotTransform returns the dot's top-left translation.
func (c *CursorFollower) DotTransform() Transform {
	h := c.cfg.DotSize / 2
	return Transform{X: c.dot.X - h, Y: c.dot.Y - h, Scale: 1, Opacity: 1}
}

// Config returns the follower configuration.
func (c *CursorFollower) Config() CursorConfig { return c.cfg }

// Active reports whether a frame is scheduled.
func (c *CursorFollower) Active() bool { return c.tick.active }
