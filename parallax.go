package folio

import "fmt"

// ParallaxConfig configures a Parallax layer.
type ParallaxConfig struct {
	// Speed scales the default output range [-100*Speed, 100*Speed].
	// Negative speeds move against the scroll.
	Speed float64
	Axis  Axis
	// InputRange and OutputRange override the default mapping.
	InputRange  []float64
	OutputRange []float64
	// Spring defaults to SpringSmooth.
	Spring SpringConfig
}

// DefaultParallaxSpeed is used when Speed is zero and no OutputRange is set.
const DefaultParallaxSpeed = 0.5

// Parallax translates a layer proportionally to its element's scroll
// progress, smoothed by a spring.
type Parallax struct {
	axis     Axis
	progress *ProgressMapper
	raw      *Mapped
	smooth   *Smoother

	tick    ticker
	mounted bool
}

// NewParallax creates a parallax layer tracking el with OffsetEnterExit.
func NewParallax(el Element, cfg ParallaxConfig) (*Parallax, error) {
	pm, err := NewProgressMapper(el, OffsetEnterExit)
	if err != nil {
		return nil, fmt.Errorf("parallax: %w", err)
	}
	out := cfg.OutputRange
	if out == nil {
		speed := cfg.Speed
		if speed == 0 {
			speed = DefaultParallaxSpeed
		}
		out = []float64{-100 * speed, 100 * speed}
	}
	in := cfg.InputRange
	if in == nil {
		in = []float64{0, 1}
	}
	tbl, err := NewTable(in, out)
	if err != nil {
		return nil, fmt.Errorf("parallax: %w", err)
	}
	spring := cfg.Spring
	if spring == (SpringConfig{}) {
		spring = SpringSmooth
	}
	p := &Parallax{axis: cfg.Axis, progress: pm, raw: Map(pm, tbl)}
	p.smooth = NewSmoother(p.raw, spring)
	p.tick.step = p.smooth.Step
	return p, nil
}

// Mount attaches the layer to the viewport.
func (p *Parallax) Mount(vp *Viewport, frames Scheduler) error {
	if p.mounted {
		return fmt.Errorf("parallax: %w", ErrAlreadyMounted)
	}
	p.mounted = true
	p.tick.frames = frames
	p.progress.Attach(vp, p.invalidate)
	p.smooth.SetImmediate(vp.ReducedMotion())
	p.smooth.Sync()
	p.smooth.Jump(p.smooth.Target())
	return nil
}

// Unmount detaches listeners and cancels the pending frame.
func (p *Parallax) Unmount() {
	if !p.mounted {
		return
	}
	p.progress.Detach()
	p.tick.stop()
	p.tick.frames = nil
	p.mounted = false
}

func (p *Parallax) invalidate() {
	if p.smooth.Sync() {
		p.tick.wake()
	}
}

// Progress returns the raw scroll progress.
func (p *Parallax) Progress() float64 { return p.progress.Value() }

// Element returns the tracked element.
func (p *Parallax) Element() Element { return p.progress.Element() }

// Axis returns the translation axis.
func (p *Parallax) Axis() Axis { return p.axis }

// Value returns the smoothed translation along the configured axis.
func (p *Parallax) Value() float64 { return p.smooth.Value() }

// Offset returns the smoothed translation as a vector.
func (p *Parallax) Offset() Vec2 {
	if p.axis == AxisX {
		return Vec2{X: p.smooth.Value()}
	}
	return Vec2{Y: p.smooth.Value()}
}

// ScrollFade is an unsmoothed opacity tied to scroll: fading in as the
// element enters, or out as it leaves through the top.
type ScrollFade struct {
	progress *ProgressMapper
	opacity  *Mapped
	fadeIn   bool
	mounted  bool
}

// NewScrollFade creates a fade-in (fadeIn true) or fade-out tracker.
func NewScrollFade(el Element, fadeIn bool) (*ScrollFade, error) {
	offset, tbl := OffsetExit, MustTable([]float64{0.7, 1}, []float64{1, 0})
	if fadeIn {
		offset, tbl = OffsetEnterCenter, MustTable([]float64{0, 0.3}, []float64{0, 1})
	}
	pm, err := NewProgressMapper(el, offset)
	if err != nil {
		return nil, fmt.Errorf("scroll fade: %w", err)
	}
	return &ScrollFade{progress: pm, opacity: Map(pm, tbl), fadeIn: fadeIn}, nil
}

// Mount attaches to the viewport. The scheduler is unused; the fade is
// recomputed on read.
func (f *ScrollFade) Mount(vp *Viewport, _ Scheduler) error {
	if f.mounted {
		return fmt.Errorf("scroll fade: %w", ErrAlreadyMounted)
	}
	f.mounted = true
	f.progress.Attach(vp, nil)
	return nil
}

// Unmount detaches listeners.
func (f *ScrollFade) Unmount() {
	if !f.mounted {
		return
	}
	f.progress.Detach()
	f.mounted = false
}

// Element returns the tracked element.
func (f *ScrollFade) Element() Element { return f.progress.Element() }

// FadesIn reports whether this is a fade-in.
func (f *ScrollFade) FadesIn() bool { return f.fadeIn }

// Opacity returns the current opacity.
func (f *ScrollFade) Opacity() float64 { return f.opacity.Value() }

// Progress returns the raw scroll progress.
func (f *ScrollFade) Progress() float64 { return f.progress.Value() }
