package storycam

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SpringConfig describes a mass-spring-damper in physical terms.
type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness" env:"STIFFNESS"`
	Damping   float64 `yaml:"damping" env:"DAMPING"`
	Mass      float64 `yaml:"mass" env:"MASS"`
}

// CriticalSpring returns a critically damped config for the given
// stiffness and mass.
func CriticalSpring(stiffness, mass float64) SpringConfig {
	return SpringConfig{
		Stiffness: stiffness,
		Damping:   2 * math.Sqrt(stiffness*mass),
		Mass:      mass,
	}
}

// angularFrequency and dampingRatio convert to harmonica's parameters.
func (c SpringConfig) angularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

func (c SpringConfig) dampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// Spring smooths one scalar toward a moving target. Each scalar the
// compositor drives gets its own Spring.
type Spring struct {
	cfg    SpringConfig
	spring harmonica.Spring
	dt     float64

	pos, vel float64
	primed   bool
}

// NewSpring creates a spring resting at zero. The first Step after
// creation or Reset snaps to the target.
func NewSpring(cfg SpringConfig) *Spring {
	return &Spring{cfg: cfg}
}

// Value returns the current smoothed value.
func (s *Spring) Value() float64 {
	return s.pos
}

// Velocity returns the current velocity.
func (s *Spring) Velocity() float64 {
	return s.vel
}

// Snap jumps to v and clears velocity.
func (s *Spring) Snap(v float64) {
	s.pos = v
	s.vel = 0
	s.primed = true
}

// Reset forgets the current value; the next Step snaps.
func (s *Spring) Reset() {
	s.pos, s.vel = 0, 0
	s.primed = false
}

// Step advances the spring by dt seconds toward target and returns the new
// value.
func (s *Spring) Step(target, dt float64) float64 {
	if !s.primed {
		s.Snap(target)
		return s.pos
	}
	if dt <= 0 {
		return s.pos
	}
	// harmonica precomputes coefficients for a fixed step.
	if dt != s.dt {
		s.dt = dt
		s.spring = harmonica.NewSpring(dt, s.cfg.angularFrequency(), s.cfg.dampingRatio())
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	return s.pos
}
