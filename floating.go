package folio

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// ShapeKind is a decorative floating shape.
type ShapeKind uint8

const (
	ShapeOrb ShapeKind = iota
	ShapeSquare
	ShapeTriangle
	ShapeDiamond
	ShapeHexagon
	ShapeRing
	shapeKindCount
)

var shapeNames = [...]string{"orb", "square", "triangle", "diamond", "hexagon", "ring"}

func (k ShapeKind) String() string {
	if int(k) < len(shapeNames) {
		return shapeNames[k]
	}
	return "unknown"
}

// SizeClass is a floating shape's size bucket.
type SizeClass uint8

const (
	SizeSmall SizeClass = iota
	SizeMedium
	SizeLarge
)

// Pixels returns the rendered edge length for the size class.
func (s SizeClass) Pixels() float64 {
	switch s {
	case SizeSmall:
		return 24
	case SizeLarge:
		return 96
	}
	return 48
}

// Density selects how many shapes are scattered.
type Density uint8

const (
	DensityLight Density = iota
	DensityMedium
	DensityDense
)

// Count returns the number of shapes for the density.
func (d Density) Count() int {
	switch d {
	case DensityLight:
		return 8
	case DensityDense:
		return 16
	}
	return 12
}

// ParseDensity accepts "light", "medium" and "dense".
func ParseDensity(s string) (Density, error) {
	switch s {
	case "light":
		return DensityLight, nil
	case "medium", "":
		return DensityMedium, nil
	case "dense":
		return DensityDense, nil
	}
	return 0, fmt.Errorf("unknown density %q", s)
}

// Palette names the shape colors. Hosts map them to actual colors.
var Palette = [...]string{"primary", "secondary", "accent", "warm", "emerald", "amber"}

// slots are fixed anchor positions as fractions of the container. Shape i
// uses slot i modulo the slot count.
var slots = [...]Vec2{
	{0.05, 0.10}, {0.92, 0.20}, {0.12, 0.35}, {0.85, 0.45},
	{0.08, 0.60}, {0.88, 0.70}, {0.15, 0.80}, {0.95, 0.85},
	{0.10, 0.75}, {0.80, 0.65}, {0.18, 0.55}, {0.90, 0.45},
	{0.85, 0.15}, {0.90, 0.40}, {0.88, 0.80}, {0.92, 0.50},
}

// shapeMotion is the looping keyframe set for one shape kind.
type shapeMotion struct {
	x, y, rotate, scale *Table
}

func keyframes(v ...float64) *Table {
	t, err := Keyframes(v...)
	if err != nil {
		panic(err)
	}
	return t
}

var shapeMotions = [shapeKindCount]shapeMotion{
	ShapeOrb: {
		y: keyframes(-20, 20, -20), x: keyframes(-10, 10, -10),
		rotate: keyframes(0, 5, -5, 0), scale: keyframes(1, 1.1, 1),
	},
	ShapeSquare: {
		y: keyframes(-15, 15, -15), x: keyframes(10, -10, 10),
		rotate: keyframes(0, 90, 180, 270, 360), scale: keyframes(1, 0.9, 1.1, 1),
	},
	ShapeTriangle: {
		y: keyframes(-25, 25, -25), x: keyframes(-5, 15, -5),
		rotate: keyframes(0, 120, 240, 360), scale: keyframes(1, 1.2, 0.8, 1),
	},
	ShapeDiamond: {
		y: keyframes(-18, 18, -18), x: keyframes(12, -8, 12),
		rotate: keyframes(0, 45, 90, 135, 180, 225, 270, 315, 360), scale: keyframes(1, 1.15, 0.85, 1),
	},
	ShapeHexagon: {
		y: keyframes(-22, 22, -22), x: keyframes(-8, 8, -8),
		rotate: keyframes(0, 60, 120, 180, 240, 300, 360), scale: keyframes(1, 0.9, 1.1, 1),
	},
	ShapeRing: {
		y: keyframes(-16, 16, -16), x: keyframes(8, -12, 8),
		rotate: keyframes(0, 180, 360), scale: keyframes(1, 1.3, 0.7, 1),
	},
}

// FloatingShape is one procedurally placed decorative shape.
type FloatingShape struct {
	ID       int
	Kind     ShapeKind
	Color    string
	Size     SizeClass
	Anchor   Vec2
	Delay    time.Duration
	Duration time.Duration
}

// Scatter places density.Count() shapes using rng. The same seed always
// yields the same layout.
func Scatter(rng *rand.Rand, density Density) []FloatingShape {
	n := density.Count()
	out := make([]FloatingShape, n)
	for i := range out {
		out[i] = FloatingShape{
			ID:     i,
			Kind:   ShapeKind(rng.IntN(int(shapeKindCount))),
			Color:  Palette[rng.IntN(len(Palette))],
			Size:   SizeClass(rng.IntN(3)),
			Anchor: slots[i%len(slots)],
			// 0-3 s delay, 8-20 s loop.
			Delay:    time.Duration(rng.Float64() * 3 * float64(time.Second)),
			Duration: 8*time.Second + time.Duration(rng.Float64()*12*float64(time.Second)),
		}
	}
	return out
}

// NewSeededRand returns a deterministic generator for Scatter.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Phase returns the loop position in [0, 1) at time t. Before the delay has
// elapsed the shape holds its first keyframe.
func (f FloatingShape) Phase(t time.Duration) float64 {
	if t <= f.Delay || f.Duration <= 0 {
		return 0
	}
	e := (t - f.Delay) % f.Duration
	return float64(e) / float64(f.Duration)
}

// Sample returns the shape's offset from its anchor at time t. Keyframes are
// eased in-out per segment.
func (f FloatingShape) Sample(t time.Duration) Transform {
	m := shapeMotions[f.Kind%shapeKindCount]
	p := f.Phase(t)
	fn := EaseInOut.Ease
	return Transform{
		X:        m.x.AtEased(p, fn),
		Y:        m.y.AtEased(p, fn),
		Rotation: math.Mod(m.rotate.AtEased(p, fn), 360),
		Scale:    m.scale.AtEased(p, fn),
		Opacity:  1,
	}
}

// Position returns the shape's document position inside container at t.
func (f FloatingShape) Position(container Rect, t time.Duration) Vec2 {
	s := f.Sample(t)
	return Vec2{
		X: container.X + f.Anchor.X*container.Width + s.X,
		Y: container.Y + f.Anchor.Y*container.Height + s.Y,
	}
}
