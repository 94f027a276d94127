package folio

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// CubicBezier is a CSS-style timing curve through (0,0), (X1,Y1), (X2,Y2),
// (1,1). X1 and X2 must lie in [0, 1]; Y values may overshoot.
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// Easing presets.
var (
	EaseCinematic   = CubicBezier{0.25, 0.46, 0.45, 0.94}
	EaseDramaticIn  = CubicBezier{0.6, 0.01, 0.05, 0.95}
	EaseSmoothOut   = CubicBezier{0.16, 1, 0.3, 1}
	EaseElasticSnap = CubicBezier{0.68, -0.55, 0.265, 1.55}
	EaseGentle      = CubicBezier{0.4, 0, 0.2, 1}
	EaseInOut       = CubicBezier{0.42, 0, 0.58, 1}
	EaseLinear      = CubicBezier{0, 0, 1, 1}
)

var easings = map[string]CubicBezier{
	"cinematic":   EaseCinematic,
	"dramaticIn":  EaseDramaticIn,
	"smoothOut":   EaseSmoothOut,
	"elasticSnap": EaseElasticSnap,
	"gentle":      EaseGentle,
	"easeInOut":   EaseInOut,
	"linear":      EaseLinear,
}

// LookupEase returns the named easing preset.
func LookupEase(name string) (CubicBezier, bool) {
	c, ok := easings[name]
	return c, ok
}

const (
	bezierNewtonIterations = 8
	bezierEpsilon          = 1e-7
)

func bezierCoeffs(p1, p2 float64) (a, b, c float64) {
	c = 3 * p1
	b = 3*(p2-p1) - c
	a = 1 - c - b
	return
}

// Ease maps linear progress t in [0, 1] through the curve. Inputs outside
// [0, 1] are clamped.
func (cb CubicBezier) Ease(t float64) float64 {
	if t <= 0 || math.IsNaN(t) {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if cb.X1 == cb.Y1 && cb.X2 == cb.Y2 {
		return t
	}
	ax, bx, cx := bezierCoeffs(cb.X1, cb.X2)
	ay, by, cy := bezierCoeffs(cb.Y1, cb.Y2)
	sampleX := func(u float64) float64 { return ((ax*u+bx)*u + cx) * u }
	slopeX := func(u float64) float64 { return (3*ax*u+2*bx)*u + cx }

	// Newton-Raphson first; fall back to bisection when the slope is flat.
	u := t
	for i := 0; i < bezierNewtonIterations; i++ {
		x := sampleX(u) - t
		if math.Abs(x) < bezierEpsilon {
			return ((ay*u+by)*u + cy) * u
		}
		d := slopeX(u)
		if math.Abs(d) < 1e-6 {
			break
		}
		u -= x / d
	}

	lo, hi := 0.0, 1.0
	u = t
	for hi-lo > bezierEpsilon {
		x := sampleX(u)
		if math.Abs(x-t) < bezierEpsilon {
			break
		}
		if x < t {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return ((ay*u+by)*u + cy) * u
}

// TweenFunc adapts the curve to gween's easing signature so it can drive a
// gween.Tween.
func (cb CubicBezier) TweenFunc() ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		return b + c*float32(cb.Ease(float64(t/d)))
	}
}

// SpringConfig parameterises a damped spring. Mass defaults to 1 when zero.
// A spring is at rest once the distance to its target is below RestDelta and
// its speed is below RestSpeed.
type SpringConfig struct {
	Stiffness float64
	Damping   float64
	Mass      float64
	RestDelta float64
	RestSpeed float64
}

// Spring presets.
var (
	SpringSmooth = SpringConfig{Stiffness: 100, Damping: 30, RestDelta: 0.001, RestSpeed: 0.01}
	SpringSnappy = SpringConfig{Stiffness: 300, Damping: 30, RestDelta: 0.001, RestSpeed: 0.01}
	SpringBouncy = SpringConfig{Stiffness: 400, Damping: 25, RestDelta: 0.001, RestSpeed: 0.01}
	SpringSlow   = SpringConfig{Stiffness: 60, Damping: 20, RestDelta: 0.001, RestSpeed: 0.01}
	SpringGentle = SpringConfig{Stiffness: 80, Damping: 25, RestDelta: 0.001, RestSpeed: 0.01}

	// SpringTilt is the pointer-driven card tilt spring.
	SpringTilt = SpringConfig{Stiffness: 150, Damping: 20, RestDelta: 0.001, RestSpeed: 0.01}
)

var springs = map[string]SpringConfig{
	"smooth": SpringSmooth,
	"snappy": SpringSnappy,
	"bouncy": SpringBouncy,
	"slow":   SpringSlow,
	"gentle": SpringGentle,
	"tilt":   SpringTilt,
}

// LookupSpring returns the named spring preset.
func LookupSpring(name string) (SpringConfig, bool) {
	c, ok := springs[name]
	return c, ok
}

// withDefaults fills zero fields from SpringSmooth. The zero config is
// SpringSmooth.
func (c SpringConfig) withDefaults() SpringConfig {
	if c == (SpringConfig{}) {
		c = SpringSmooth
	}
	if c.Stiffness <= 0 {
		c.Stiffness = SpringSmooth.Stiffness
	}
	if c.Damping < 0 {
		c.Damping = 0
	}
	if c.Mass <= 0 {
		c.Mass = 1
	}
	if c.RestDelta <= 0 {
		c.RestDelta = SpringSmooth.RestDelta
	}
	if c.RestSpeed <= 0 {
		c.RestSpeed = SpringSmooth.RestSpeed
	}
	return c
}

// AngularFrequency returns sqrt(k/m).
func (c SpringConfig) AngularFrequency() float64 {
	c = c.withDefaults()
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)). Below 1 the spring overshoots.
func (c SpringConfig) DampingRatio() float64 {
	c = c.withDefaults()
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// Duration presets.
const (
	DurationFast      = 300 * time.Millisecond
	DurationNormal    = 600 * time.Millisecond
	DurationSlow      = 900 * time.Millisecond
	DurationDramatic  = 1200 * time.Millisecond
	DurationCinematic = 1500 * time.Millisecond
)

var durations = map[string]time.Duration{
	"fast":      DurationFast,
	"normal":    DurationNormal,
	"slow":      DurationSlow,
	"dramatic":  DurationDramatic,
	"cinematic": DurationCinematic,
}

// LookupDuration returns the named duration preset.
func LookupDuration(name string) (time.Duration, bool) {
	d, ok := durations[name]
	return d, ok
}
