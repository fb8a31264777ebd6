package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is a first-order ODE dX/dt = Derive(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator takes an error-controlled step. It returns the new
// state, the suggested next step size, and ErrStepRejected when the step
// must be retried with that smaller size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error)
}

// Observer is called once per output grid point.
type Observer func(i int, t float64, x State)

type Config struct {
	Dt            float64
	MaxDt         float64
	MinDt         float64
	Tolerance     float64
	MaxSteps      int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		MaxDt:         0.05,
		MinDt:         1e-10,
		Tolerance:     1e-8,
		MaxSteps:      5_000_000,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrParameterBounds, c.Dt)
	}
	if c.MaxDt > 0 && c.MaxDt < c.MinDt {
		return fmt.Errorf("%w: max dt %g below min dt %g", ErrParameterBounds, c.MaxDt, c.MinDt)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be non-negative, got %g", ErrParameterBounds, c.Tolerance)
	}
	return nil
}

// Stats summarizes the work done by one Integrate call.
type Stats struct {
	Steps    int
	Rejected int
	LastDt   float64
}
