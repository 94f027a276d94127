package folio

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// SmootherState is the activity state of a Smoother.
type SmootherState uint8

const (
	AtRest   SmootherState = iota // value equals target; Step does nothing
	Settling                      // spring is moving toward the target
)

func (s SmootherState) String() string {
	if s == Settling {
		return "settling"
	}
	return "at-rest"
}

// Smoother trails a source signal with damped spring dynamics. It is the only
// stateful stage of the pipeline and is owned by exactly one component.
//
// Sync pulls the current source value as the new target; Step advances the
// spring by dt. Once both the distance to the target and the speed fall
// below the configured rest thresholds the value snaps to the target and the
// smoother stops doing work until the next Sync moves the target.
type Smoother struct {
	cfg    SpringConfig
	source Signal

	value    float64
	velocity float64
	target   float64
	state    SmootherState

	// immediate collapses every transition to the end state.
	immediate bool

	spring   harmonica.Spring
	springDT time.Duration
	omega    float64
	zeta     float64
}

// NewSmoother creates a smoother that starts at rest on the source's
// current value.
func NewSmoother(source Signal, cfg SpringConfig) *Smoother {
	cfg = cfg.withDefaults()
	v := source.Value()
	return &Smoother{
		cfg:    cfg,
		source: source,
		value:  v,
		target: v,
		omega:  cfg.AngularFrequency(),
		zeta:   cfg.DampingRatio(),
	}
}

// Value returns the smoothed value.
func (s *Smoother) Value() float64 { return s.value }

// Velocity returns the current spring velocity in units per second.
func (s *Smoother) Velocity() float64 { return s.velocity }

// Target returns the value the spring is moving toward.
func (s *Smoother) Target() float64 { return s.target }

// State reports whether the smoother is at rest or settling.
func (s *Smoother) State() SmootherState { return s.state }

// Config returns the spring configuration with defaults applied.
func (s *Smoother) Config() SpringConfig { return s.cfg }

// SetImmediate makes every Sync jump straight to the target. Used for the
// reduced-motion preference.
func (s *Smoother) SetImmediate(v bool) {
	s.immediate = v
	if v {
		s.Jump(s.target)
	}
}

// Immediate reports whether the smoother skips animation.
func (s *Smoother) Immediate() bool { return s.immediate }

// Jump sets value and target to v and comes to rest.
func (s *Smoother) Jump(v float64) {
	s.value = v
	s.target = v
	s.velocity = 0
	s.state = AtRest
}

// Sync reads the source and retargets the spring. It reports whether the
// smoother is settling afterwards.
func (s *Smoother) Sync() bool {
	s.target = s.source.Value()
	if s.immediate {
		s.Jump(s.target)
		return false
	}
	if s.outsideRest() {
		s.state = Settling
	}
	return s.state == Settling
}

func (s *Smoother) outsideRest() bool {
	return math.Abs(s.target-s.value) >= s.cfg.RestDelta ||
		math.Abs(s.velocity) >= s.cfg.RestSpeed
}

// Step advances the spring by dt and reports whether it is still settling.
// At rest, or for non-positive dt, Step changes nothing.
func (s *Smoother) Step(dt time.Duration) bool {
	if s.state == AtRest || dt <= 0 {
		return s.state == Settling
	}
	if dt != s.springDT {
		s.spring = harmonica.NewSpring(dt.Seconds(), s.omega, s.zeta)
		s.springDT = dt
	}
	s.value, s.velocity = s.spring.Update(s.value, s.velocity, s.target)
	if !s.outsideRest() {
		s.Jump(s.target)
	}
	return s.state == Settling
}
