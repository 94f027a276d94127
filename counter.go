package folio

import (
	"fmt"
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CounterConfig configures a Counter.
type CounterConfig struct {
	// Target is the final count, e.g. a skill percentage.
	Target float64
	// Duration defaults to one second.
	Duration time.Duration
	Delay    time.Duration
	// Ease defaults to cubic ease-out.
	Ease ease.TweenFunc
	// Margin shrinks the viewport before testing intersection.
	Margin float64
}

// Counter counts from zero to a target once its element scrolls into view.
type Counter struct {
	el  Element
	cfg CounterConfig

	tween   *gween.Tween
	delay   float32
	value   float64
	started bool
	done    bool
	reduced bool

	inView  *InView
	tick    ticker
	mounted bool
}

// NewCounter creates a counter over el.
func NewCounter(el Element, cfg CounterConfig) (*Counter, error) {
	if missingElement(el) {
		return nil, fmt.Errorf("counter: %w", ErrNoElement)
	}
	if cfg.Duration <= 0 {
		cfg.Duration = time.Second
	}
	if cfg.Ease == nil {
		cfg.Ease = ease.OutCubic
	}
	c := &Counter{el: el, cfg: cfg}
	c.tick.step = c.step
	return c, nil
}

// Mount starts watching for the element to enter the viewport.
func (c *Counter) Mount(vp *Viewport, frames Scheduler) error {
	if c.mounted {
		return fmt.Errorf("counter: %w", ErrAlreadyMounted)
	}
	c.mounted = true
	c.reduced = vp.ReducedMotion()
	c.tick.frames = frames
	iv, err := NewInView(c.el, InViewConfig{Margin: c.cfg.Margin, Once: true, OnEnter: c.Start})
	if err != nil {
		return err
	}
	c.inView = iv
	return iv.Mount(vp, frames)
}

// Unmount stops watching and cancels the pending frame.
func (c *Counter) Unmount() {
	if !c.mounted {
		return
	}
	c.inView.Unmount()
	c.tick.stop()
	c.tick.frames = nil
	c.mounted = false
}

// Start begins counting. Later calls do nothing.
func (c *Counter) Start() {
	if c.started {
		return
	}
	c.started = true
	if c.reduced {
		c.value = c.cfg.Target
		c.done = true
		return
	}
	c.tween = gween.New(0, float32(c.cfg.Target), float32(c.cfg.Duration.Seconds()), c.cfg.Ease)
	c.delay = float32(c.cfg.Delay.Seconds())
	c.tick.wake()
}

// Update advances the counter by dt seconds. Frame-driven counters call it
// from their own loop; it is exported for hosts that drive counters directly.
func (c *Counter) Update(dt float32) {
	if !c.started || c.done {
		return
	}
	if c.delay > 0 {
		if dt <= c.delay {
			c.delay -= dt
			return
		}
		dt -= c.delay
		c.delay = 0
	}
	v, finished := c.tween.Update(dt)
	c.value = float64(v)
	if finished {
		c.value = c.cfg.Target
		c.done = true
	}
}

func (c *Counter) step(dt time.Duration) bool {
	c.Update(float32(dt.Seconds()))
	return !c.done
}

// Value returns the current count.
func (c *Counter) Value() float64 { return c.value }

// Display returns the count rounded for display.
func (c *Counter) Display() int { return int(math.Round(c.value)) }

// Fraction returns Value/Target, e.g. a skill bar's fill.
func (c *Counter) Fraction() float64 {
	if c.cfg.Target == 0 {
		return 0
	}
	return c.value / c.cfg.Target
}

// Started reports whether counting was triggered.
func (c *Counter) Started() bool { return c.started }

// Done reports whether the target was reached.
func (c *Counter) Done() bool { return c.done }

// Element returns the counted element.
func (c *Counter) Element() Element { return c.el }

// Target returns the final count.
func (c *Counter) Target() float64 { return c.cfg.Target }
