package dynamo

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Simulator advances a System across an output grid with one integrator.
type Simulator struct {
	integrator Integrator
	observers  []Observer
	stats      Stats
}

func New(integrator Integrator) *Simulator {
	return &Simulator{
		integrator: integrator,
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Stats reports the work done by the most recent Integrate call.
func (s *Simulator) Stats() Stats { return s.stats }

// ValidateGrid checks that tlist is non-empty and strictly increasing.
func ValidateGrid(tlist []float64) error {
	if len(tlist) == 0 {
		return ErrInvalidGrid
	}
	for i := 1; i < len(tlist); i++ {
		if !(tlist[i] > tlist[i-1]) {
			return fmt.Errorf("%w: t[%d]=%g after t[%d]=%g", ErrInvalidGrid, i, tlist[i], i-1, tlist[i-1])
		}
	}
	return nil
}

// Integrate evolves x0 from tlist[0] through every grid point, landing
// exactly on each one, and reports the state there to the observers. The
// returned state is the state at the last grid point.
func (s *Simulator) Integrate(ctx context.Context, sys System, x0 State, tlist []float64, cfg Config) (State, error) {
	s.stats = Stats{}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateGrid(tlist); err != nil {
		return nil, err
	}
	if len(x0) != sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d entries, system expects %d", ErrDimensionMismatch, len(x0), sys.StateDim())
	}

	x := x0.Clone()
	s.notify(0, tlist[0], x)

	dt := s.clamp(cfg.Dt, cfg)
	for i := 1; i < len(tlist); i++ {
		select {
		case <-ctx.Done():
			return x, ctx.Err()
		default:
		}

		t, target := tlist[i-1], tlist[i]
		for t < target {
			if cfg.MaxSteps > 0 && s.stats.Steps >= cfg.MaxSteps {
				return x, &SimulationError{Step: s.stats.Steps, Time: t, Wrapped: ErrMaxSteps}
			}

			h, last := dt, false
			if t+h >= target {
				h, last = target-t, true
			}

			newX, next, err := s.step(sys, x, t, h, cfg)
			if errors.Is(err, ErrStepRejected) {
				s.stats.Rejected++
				if next < cfg.MinDt {
					return x, &SimulationError{Step: s.stats.Steps, Time: t, Wrapped: ErrStepTooSmall}
				}
				dt = s.clamp(next, cfg)
				continue
			}
			if err != nil {
				return x, &SimulationError{Step: s.stats.Steps, Time: t, Wrapped: err}
			}

			if cfg.ValidateState && !newX.IsValid() {
				return x, &SimulationError{Step: s.stats.Steps, Time: t, Wrapped: ErrInvalidState}
			}

			x = newX
			s.stats.Steps++
			s.stats.LastDt = h
			if last {
				t = target
			} else {
				t += h
				dt = s.clamp(next, cfg)
			}
		}

		s.notify(i, target, x)
	}

	return x, nil
}

func (s *Simulator) notify(i int, t float64, x State) {
	for _, obs := range s.observers {
		obs(i, t, x)
	}
}

func (s *Simulator) clamp(dt float64, cfg Config) float64 {
	if cfg.MaxDt > 0 && dt > cfg.MaxDt {
		return cfg.MaxDt
	}
	return dt
}

// step takes one step of size dt and returns the new state and the size
// suggested for the next one.
func (s *Simulator) step(sys System, x State, t, dt float64, cfg Config) (State, float64, error) {
	if cfg.Tolerance <= 0 {
		return s.integrator.Step(sys, x, t, dt), cfg.Dt, nil
	}
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		return adaptive.StepAdaptive(sys, x, t, dt, cfg.Tolerance)
	}
	return s.stepDoubling(sys, x, t, dt, cfg)
}

// stepDoubling estimates the local error of a fixed-step integrator by
// comparing one full step against two half steps.
func (s *Simulator) stepDoubling(sys System, x State, t, dt float64, cfg Config) (State, float64, error) {
	x1 := s.integrator.Step(sys, x, t, dt)
	xHalf := s.integrator.Step(sys, x, t, dt/2)
	x2 := s.integrator.Step(sys, xHalf, t+dt/2, dt/2)

	errEst := 0.0
	for i := range x2 {
		scale := cfg.Tolerance * (1 + math.Abs(x2[i]))
		errEst = math.Max(errEst, math.Abs(x1[i]-x2[i])/scale)
	}

	if errEst > 1 {
		return x, dt / 2, ErrStepRejected
	}
	if errEst < 0.1 {
		return x2, dt * 2, nil
	}
	return x2, dt, nil
}
