package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"
)

type decay struct{}

func (d *decay) Derive(x State, t float64) State {
	return State{-x[0]}
}

func (d *decay) StateDim() int { return 1 }

type eulerStep struct{}

func (e *eulerStep) Step(sys System, x State, t, dt float64) State {
	dx := sys.Derive(x, t)
	return State{x[0] + dt*dx[0]}
}

type rejectAll struct{ eulerStep }

func (r *rejectAll) StepAdaptive(sys System, x State, t, dt, tol float64) (State, float64, error) {
	return x, dt / 10, ErrStepRejected
}

func grid(n int, end float64) []float64 {
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = end * float64(i) / float64(n-1)
	}
	return ts
}

func TestSimulatorIntegrate(t *testing.T) {
	sim := New(&eulerStep{})

	var times []float64
	var values []float64
	sim.AddObserver(func(i int, tm float64, x State) {
		times = append(times, tm)
		values = append(values, x[0])
	})

	cfg := Config{Dt: 0.001}
	tlist := grid(11, 1.0)

	final, err := sim.Integrate(context.Background(), &decay{}, State{1.0}, tlist, cfg)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	if len(values) != 11 {
		t.Fatalf("expected 11 observations, got %d", len(values))
	}

	for i, tm := range times {
		if tm != tlist[i] {
			t.Errorf("observation %d at t=%f, expected %f", i, tm, tlist[i])
		}
	}

	if values[0] != 1.0 {
		t.Errorf("first observation should be the initial state, got %f", values[0])
	}

	expected := math.Exp(-1.0)
	if math.Abs(final[0]-expected) > 1e-3 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, final[0])
	}

	if sim.Stats().Steps < 1000 {
		t.Errorf("expected at least 1000 steps, got %d", sim.Stats().Steps)
	}
}

func TestSimulatorStepDoubling(t *testing.T) {
	sim := New(&eulerStep{})

	cfg := Config{Dt: 0.1, MaxDt: 0.1, MinDt: 1e-9, Tolerance: 1e-6}
	final, err := sim.Integrate(context.Background(), &decay{}, State{1.0}, grid(3, 1.0), cfg)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	if sim.Stats().Rejected == 0 {
		t.Error("expected step doubling to reject the initial step")
	}

	if math.Abs(final[0]-math.Exp(-1.0)) > 1e-3 {
		t.Errorf("final state %.6f too far from %.6f", final[0], math.Exp(-1.0))
	}
}

func TestSimulatorInvalidInput(t *testing.T) {
	sim := New(&eulerStep{})

	tests := []struct {
		name  string
		cfg   Config
		x0    State
		tlist []float64
		want  error
	}{
		{"zero dt", Config{Dt: 0}, State{1}, grid(3, 1), ErrParameterBounds},
		{"negative dt", Config{Dt: -0.1}, State{1}, grid(3, 1), ErrParameterBounds},
		{"empty grid", Config{Dt: 0.1}, State{1}, nil, ErrInvalidGrid},
		{"decreasing grid", Config{Dt: 0.1}, State{1}, []float64{0, 1, 0.5}, ErrInvalidGrid},
		{"repeated time", Config{Dt: 0.1}, State{1}, []float64{0, 0}, ErrInvalidGrid},
		{"wrong dimension", Config{Dt: 0.1}, State{1, 2}, grid(3, 1), ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Integrate(context.Background(), &decay{}, tt.x0, tt.tlist, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSimulatorStepTooSmall(t *testing.T) {
	sim := New(&rejectAll{})

	cfg := Config{Dt: 0.1, MinDt: 1e-6, Tolerance: 1e-8}
	_, err := sim.Integrate(context.Background(), &decay{}, State{1.0}, grid(2, 1.0), cfg)

	var simErr *SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if !errors.Is(err, ErrStepTooSmall) {
		t.Errorf("expected ErrStepTooSmall, got %v", err)
	}
}

func TestSimulatorMaxSteps(t *testing.T) {
	sim := New(&eulerStep{})

	cfg := Config{Dt: 0.01, MaxSteps: 10}
	_, err := sim.Integrate(context.Background(), &decay{}, State{1.0}, grid(2, 1.0), cfg)
	if !errors.Is(err, ErrMaxSteps) {
		t.Errorf("expected ErrMaxSteps, got %v", err)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	sim := New(&eulerStep{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Integrate(ctx, &decay{}, State{1.0}, grid(5, 1.0), Config{Dt: 0.01})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
