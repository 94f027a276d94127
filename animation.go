package folio

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to five fields of a Transform simultaneously after
// an optional delay. Call Update(dt) each frame; the group writes values
// straight into the target.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [5]*gween.Tween
	fields [5]*float64
	ends   [5]float64
	count  int
	delay  float32
	Done   bool
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.ends[g.count] = to
	g.count++
}

// Update advances the group by dt seconds. Delay is consumed first; any
// remainder of the frame goes to the tweens.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.delay > 0 {
		if dt <= g.delay {
			g.delay -= dt
			return
		}
		dt -= g.delay
		g.delay = 0
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Finish jumps every field to its end value.
func (g *TweenGroup) Finish() {
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.ends[i]
	}
	g.delay = 0
	g.Done = true
}

// Variant is a reveal animation from one Transform to another.
type Variant struct {
	From     Transform
	To       Transform
	Duration time.Duration
	Delay    time.Duration
	Ease     CubicBezier
}

// FadeUp rises distance pixels while fading in.
func FadeUp(delay time.Duration, distance float64) Variant {
	return Variant{
		From:     Transform{Y: distance, Scale: 1, Opacity: 0},
		To:       IdentityTransform,
		Duration: DurationSlow,
		Delay:    delay,
		Ease:     EaseCinematic,
	}
}

// ScaleIn grows from 80% while fading in.
func ScaleIn(delay time.Duration) Variant {
	return Variant{
		From:     Transform{Scale: 0.8, Opacity: 0},
		To:       IdentityTransform,
		Duration: DurationSlow,
		Delay:    delay,
		Ease:     EaseSmoothOut,
	}
}

// Direction is the side a slide-in starts from.
type Direction uint8

const (
	FromLeft Direction = iota
	FromRight
	FromUp
	FromDown
)

// ParseDirection accepts "left", "right", "up" and "down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return FromLeft, nil
	case "right":
		return FromRight, nil
	case "up":
		return FromUp, nil
	case "down":
		return FromDown, nil
	}
	return 0, fmt.Errorf("unknown slide direction %q", s)
}

// SlideIn slides distance pixels in from dir while fading in.
func SlideIn(dir Direction, delay time.Duration, distance float64) Variant {
	from := Transform{Scale: 1, Opacity: 0}
	switch dir {
	case FromLeft:
		from.X = -distance
	case FromRight:
		from.X = distance
	case FromUp:
		from.Y = -distance
	case FromDown:
		from.Y = distance
	}
	return Variant{
		From:     from,
		To:       IdentityTransform,
		Duration: DurationSlow,
		Delay:    delay,
		Ease:     EaseCinematic,
	}
}

// Tween resets target to the variant's start state and returns a group that
// animates the fields that differ.
func (v Variant) Tween(target *Transform) *TweenGroup {
	*target = v.From
	d := float32(v.Duration.Seconds())
	fn := v.Ease.TweenFunc()
	g := &TweenGroup{delay: float32(v.Delay.Seconds())}
	if v.From.X != v.To.X {
		g.add(&target.X, v.To.X, d, fn)
	}
	if v.From.Y != v.To.Y {
		g.add(&target.Y, v.To.Y, d, fn)
	}
	if v.From.Scale != v.To.Scale {
		g.add(&target.Scale, v.To.Scale, d, fn)
	}
	if v.From.Rotation != v.To.Rotation {
		g.add(&target.Rotation, v.To.Rotation, d, fn)
	}
	if v.From.Opacity != v.To.Opacity {
		g.add(&target.Opacity, v.To.Opacity, d, fn)
	}
	if g.count == 0 {
		g.Done = true
	}
	return g
}

// Reveal plays a list of variants once when its element scrolls into view,
// offsetting child i by start + i*stagger.
type Reveal struct {
	el       Element
	variants []Variant
	stagger  time.Duration
	start    time.Duration
	margin   float64

	styles  []Transform
	groups  []*TweenGroup
	started bool
	reduced bool

	inView  *InView
	tick    ticker
	mounted bool
}

// RevealConfig configures a Reveal.
type RevealConfig struct {
	Stagger time.Duration
	Start   time.Duration
	// Margin shrinks the viewport before testing intersection.
	Margin float64
}

// DefaultStagger is the delay between consecutive children.
const DefaultStagger = 80 * time.Millisecond

// NewReveal creates a staggered reveal of variants over el.
func NewReveal(el Element, cfg RevealConfig, variants ...Variant) (*Reveal, error) {
	if missingElement(el) {
		return nil, fmt.Errorf("reveal: %w", ErrNoElement)
	}
	r := &Reveal{
		el:       el,
		variants: variants,
		stagger:  cfg.Stagger,
		start:    cfg.Start,
		margin:   cfg.Margin,
		styles:   make([]Transform, len(variants)),
	}
	for i, v := range variants {
		r.styles[i] = v.From
	}
	r.tick.step = r.step
	return r, nil
}

// Mount starts watching for the element to enter the viewport.
func (r *Reveal) Mount(vp *Viewport, frames Scheduler) error {
	if r.mounted {
		return fmt.Errorf("reveal: %w", ErrAlreadyMounted)
	}
	r.mounted = true
	r.reduced = vp.ReducedMotion()
	r.tick.frames = frames
	iv, err := NewInView(r.el, InViewConfig{Margin: r.margin, Once: true, OnEnter: r.Start})
	if err != nil {
		return err
	}
	r.inView = iv
	return iv.Mount(vp, frames)
}

// Unmount stops watching and cancels the pending frame.
func (r *Reveal) Unmount() {
	if !r.mounted {
		return
	}
	r.inView.Unmount()
	r.tick.stop()
	r.tick.frames = nil
	r.mounted = false
}

// Start begins the reveal. Later calls do nothing.
func (r *Reveal) Start() {
	if r.started {
		return
	}
	r.started = true
	r.groups = make([]*TweenGroup, len(r.variants))
	for i, v := range r.variants {
		v.Delay += r.start + time.Duration(i)*r.stagger
		r.groups[i] = v.Tween(&r.styles[i])
		if r.reduced {
			r.groups[i].Finish()
		}
	}
	if !r.reduced {
		r.tick.wake()
	}
}

func (r *Reveal) step(dt time.Duration) bool {
	sec := float32(dt.Seconds())
	more := false
	for _, g := range r.groups {
		g.Update(sec)
		if !g.Done {
			more = true
		}
	}
	return more
}

// Element returns the tracked element.
func (r *Reveal) Element() Element { return r.el }

// Len returns the number of children.
func (r *Reveal) Len() int { return len(r.styles) }

// Style returns child i's current transform.
func (r *Reveal) Style(i int) Transform { return r.styles[i] }

// Started reports whether the reveal has been triggered.
func (r *Reveal) Started() bool { return r.started }

// Done reports whether every child finished.
func (r *Reveal) Done() bool {
	if !r.started {
		return false
	}
	for _, g := range r.groups {
		if !g.Done {
			return false
		}
	}
	return true
}
