package folio

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrMissingID is returned when a scene is configured without an anchor ID.
	ErrMissingID = errors.New("folio: scene id is required")
	// ErrAlreadyMounted is returned when mounting a mounted component.
	ErrAlreadyMounted = errors.New("folio: already mounted")
)

// Spotlight is the radial-gradient glow drawn behind a scene. At and Radius
// are fractions of the scene's bounds.
type Spotlight struct {
	Color  Color
	At     Vec2
	Radius Vec2
}

// DefaultSpotlightRadius is a 60% by 40% ellipse.
var DefaultSpotlightRadius = Vec2{0.6, 0.4}

// ParseSpotlightPosition parses a CSS-like position such as "50% 0%" or
// "0.5 0" into fractions.
func ParseSpotlightPosition(s string) (Vec2, error) {
	f := strings.Fields(s)
	if len(f) != 2 {
		return Vec2{}, fmt.Errorf("spotlight position %q: want two components", s)
	}
	x, err := ParseEdge(f[0])
	if err != nil {
		return Vec2{}, fmt.Errorf("spotlight position %q: %w", s, err)
	}
	y, err := ParseEdge(f[1])
	if err != nil {
		return Vec2{}, fmt.Errorf("spotlight position %q: %w", s, err)
	}
	return Vec2{float64(x), float64(y)}, nil
}

// Center returns the gradient center in document space for bounds.
func (sp Spotlight) Center(bounds Rect) Vec2 {
	return Vec2{bounds.X + sp.At.X*bounds.Width, bounds.Y + sp.At.Y*bounds.Height}
}

// Intensity samples the gradient at (x, y): 1 at the center falling linearly
// to 0 on the ellipse edge.
func (sp Spotlight) Intensity(bounds Rect, x, y float64) float64 {
	r := sp.Radius
	if r.X <= 0 || r.Y <= 0 {
		r = DefaultSpotlightRadius
	}
	c := sp.Center(bounds)
	rx, ry := r.X*bounds.Width, r.Y*bounds.Height
	if rx <= 0 || ry <= 0 {
		return 0
	}
	dx, dy := (x-c.X)/rx, (y-c.Y)/ry
	return clamp01(1 - math.Sqrt(dx*dx+dy*dy))
}

// SceneCurves configures the entrance and exit envelope of a scene.
type SceneCurves struct {
	EnterDomain [2]float64
	ExitDomain  [2]float64
	// MinScale is the scale at the hidden end of both curves.
	MinScale float64
}

// DefaultSceneCurves fades and scales in over the first 15% of progress and
// out over the last 15%.
var DefaultSceneCurves = SceneCurves{
	EnterDomain: [2]float64{0, 0.15},
	ExitDomain:  [2]float64{0.85, 1},
	MinScale:    0.97,
}

// SceneConfig configures a Scene.
type SceneConfig struct {
	// ID is the in-page anchor for the section. Required.
	ID string
	// Element is the section's laid-out box. Required.
	Element Element
	// Offset defaults to OffsetEnterExit.
	Offset ScrollOffset
	// IsFirst skips the entrance fade; IsLast skips the exit fade.
	IsFirst bool
	IsLast  bool
	// Spotlight is optional.
	Spotlight *Spotlight
	// Spring defaults to SpringSmooth.
	Spring SpringConfig
	// Curves defaults to DefaultSceneCurves.
	Curves SceneCurves
}

// Binding is a section-specific transform driven by a scene's progress, such
// as a parallax layer offset or an orbit rotation.
type Binding struct {
	name   string
	raw    *Mapped
	smooth *Smoother
}

// Name returns the binding name.
func (b *Binding) Name() string { return b.name }

// Value returns the smoothed value, or the raw value for unsmoothed bindings.
func (b *Binding) Value() float64 {
	if b.smooth != nil {
		return b.smooth.Value()
	}
	return b.raw.Value()
}

// Raw returns the unsmoothed value.
func (b *Binding) Raw() float64 { return b.raw.Value() }

// Scene is one full-height page section and its motion wiring: a progress
// mapper feeding entrance and exit curves, combined with minimum reduction,
// smoothed by springs and exposed as a Transform.
type Scene struct {
	cfg      SceneConfig
	progress *ProgressMapper

	opacity *Combined
	scale   *Combined

	smoothOpacity *Smoother
	smoothScale   *Smoother
	bindings      []*Binding

	tick    ticker
	vp      *Viewport
	mounted bool
	reduced bool
	visible bool
	steps   int

	onVisibility func(s *Scene, visible bool)
}

// NewScene validates cfg and builds the pipeline. Nothing listens to input
// until Mount.
func NewScene(cfg SceneConfig) (*Scene, error) {
	cfg.ID = strings.TrimSpace(cfg.ID)
	if cfg.ID == "" {
		return nil, ErrMissingID
	}
	pm, err := NewProgressMapper(cfg.Element, cfg.Offset)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", cfg.ID, err)
	}
	if cfg.Curves == (SceneCurves{}) {
		cfg.Curves = DefaultSceneCurves
	}
	cfg.Spring = cfg.Spring.withDefaults()

	curves := cfg.Curves
	var enterOpacity, enterScale, exitOpacity, exitScale *Table
	if !cfg.IsFirst {
		bp := curves.EnterDomain[:]
		if enterOpacity, err = NewTable(bp, []float64{0, 1}); err != nil {
			return nil, fmt.Errorf("scene %q: enter curve: %w", cfg.ID, err)
		}
		enterScale = MustTable(bp, []float64{curves.MinScale, 1})
	}
	if !cfg.IsLast {
		bp := curves.ExitDomain[:]
		if exitOpacity, err = NewTable(bp, []float64{1, 0}); err != nil {
			return nil, fmt.Errorf("scene %q: exit curve: %w", cfg.ID, err)
		}
		exitScale = MustTable(bp, []float64{1, curves.MinScale})
	}

	s := &Scene{
		cfg:      cfg,
		progress: pm,
		opacity:  Envelope(pm, enterOpacity, exitOpacity),
		scale:    Envelope(pm, enterScale, exitScale),
	}
	s.smoothOpacity = NewSmoother(s.opacity, cfg.Spring)
	s.smoothScale = NewSmoother(s.scale, cfg.Spring)
	s.tick.step = s.step
	return s, nil
}

// ID returns the section anchor.
func (s *Scene) ID() string { return s.cfg.ID }

// Config returns the scene configuration with defaults applied.
func (s *Scene) Config() SceneConfig { return s.cfg }

// Element returns the tracked element.
func (s *Scene) Element() Element { return s.cfg.Element }

// Spotlight returns the configured spotlight.
func (s *Scene) Spotlight() (Spotlight, bool) {
	if s.cfg.Spotlight == nil {
		return Spotlight{}, false
	}
	return *s.cfg.Spotlight, true
}

// Bind adds a transform mapped from the scene's progress. Smoothed bindings
// use the scene's spring.
func (s *Scene) Bind(name string, table *Table, smooth bool) *Binding {
	b := &Binding{name: name, raw: Map(s.progress, table)}
	if smooth {
		b.smooth = NewSmoother(b.raw, s.cfg.Spring)
		if s.mounted {
			b.smooth.SetImmediate(s.reduced)
			b.smooth.Sync()
			b.smooth.Jump(b.smooth.Target())
		}
	}
	s.bindings = append(s.bindings, b)
	return b
}

// Binding returns the named binding.
func (s *Scene) Binding(name string) (*Binding, bool) {
	for _, b := range s.bindings {
		if b.name == name {
			return b, true
		}
	}
	return nil, false
}

func (s *Scene) smoothers(fn func(*Smoother)) {
	fn(s.smoothOpacity)
	fn(s.smoothScale)
	for _, b := range s.bindings {
		if b.smooth != nil {
			fn(b.smooth)
		}
	}
}

// Mount attaches the scene to the viewport and frame scheduler. The
// reduced-motion preference is read here, once.
func (s *Scene) Mount(vp *Viewport, frames Scheduler) error {
	if s.mounted {
		return fmt.Errorf("scene %q: %w", s.cfg.ID, ErrAlreadyMounted)
	}
	s.vp = vp
	s.tick.frames = frames
	s.mounted = true
	s.progress.Attach(vp, s.invalidate)

	reduce := vp.ReducedMotion()
	s.reduced = reduce
	s.smoothers(func(sm *Smoother) {
		sm.SetImmediate(reduce)
		sm.Sync()
		sm.Jump(sm.Target())
	})
	s.updateVisibility()
	Logger().Info("scene mounted", "id", s.cfg.ID, "progress", s.progress.Value(), "reducedMotion", reduce)
	return nil
}

// Unmount removes listeners and cancels any pending frame. Smoothed values
// are frozen where they were.
func (s *Scene) Unmount() {
	if !s.mounted {
		Logger().Warn("scene unmounted twice", "id", s.cfg.ID)
		return
	}
	s.progress.Detach()
	s.tick.stop()
	s.tick.frames = nil
	s.vp = nil
	s.mounted = false
	Logger().Info("scene unmounted", "id", s.cfg.ID)
}

// Mounted reports whether the scene is attached.
func (s *Scene) Mounted() bool { return s.mounted }

// Refresh recomputes progress, for use after the element's layout changed.
func (s *Scene) Refresh() {
	if !s.mounted {
		return
	}
	s.progress.Recompute()
	s.invalidate()
}

func (s *Scene) invalidate() {
	if !s.mounted {
		return
	}
	settling := false
	s.smoothers(func(sm *Smoother) {
		if sm.Sync() {
			settling = true
		}
	})
	s.updateVisibility()
	if settling {
		s.tick.wake()
	}
}

func (s *Scene) step(dt time.Duration) bool {
	s.steps++
	settling := false
	s.smoothers(func(sm *Smoother) {
		if sm.Step(dt) {
			settling = true
		}
	})
	return settling
}

func (s *Scene) updateVisibility() {
	p := s.progress.Value()
	visible := p > 0 && p < 1
	if visible == s.visible {
		return
	}
	s.visible = visible
	if s.onVisibility != nil {
		s.onVisibility(s, visible)
	}
}

// Progress returns the scene's scroll progress.
func (s *Scene) Progress() float64 { return s.progress.Value() }

// Visible reports whether any part of the tracked range is in view.
func (s *Scene) Visible() bool { return s.visible }

// Settling reports whether a frame is scheduled to advance the springs.
func (s *Scene) Settling() bool { return s.tick.active }

// Steps returns how many animation frames the scene has processed.
func (s *Scene) Steps() int { return s.steps }

// Style returns the smoothed opacity and scale.
func (s *Scene) Style() Transform {
	return Transform{
		Scale:   s.smoothScale.Value(),
		Opacity: s.smoothOpacity.Value(),
	}
}

// RawStyle returns the combined opacity and scale before smoothing.
func (s *Scene) RawStyle() Transform {
	return Transform{
		Scale:   s.scale.Value(),
		Opacity: s.opacity.Value(),
	}
}
