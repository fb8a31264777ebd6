// Package solver integrates the Schrödinger and Lindblad master equations for
// a time-dependent Hamiltonian and records expectation values on a time grid.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/rabisim/internal/dynamo"
	"github.com/san-kum/rabisim/internal/integrators"
	"github.com/san-kum/rabisim/internal/metrics"
	"github.com/san-kum/rabisim/internal/quantum"
)

var (
	ErrNilHamiltonian = errors.New("solver: hamiltonian is nil")
	ErrEmptyState     = errors.New("solver: initial state is empty")
)

// Hamiltonian yields the system Hamiltonian at time t.
type Hamiltonian interface {
	At(t float64) *quantum.Operator
}

// HamiltonianFunc adapts a plain function to Hamiltonian.
type HamiltonianFunc func(t float64) *quantum.Operator

func (f HamiltonianFunc) At(t float64) *quantum.Operator { return f(t) }

type static struct{ h *quantum.Operator }

func (s static) At(float64) *quantum.Operator { return s.h }

// Static wraps a time-independent Hamiltonian.
func Static(h *quantum.Operator) Hamiltonian { return static{h: h} }

type Options struct {
	// Integrator defaults to RK45.
	Integrator dynamo.Integrator
	// A zero Config is replaced by dynamo.DefaultConfig. Otherwise only a
	// zero Dt or MinDt is filled in; zero Tolerance, MaxDt and MaxSteps keep
	// their meaning of fixed steps, no clamp and no limit.
	Config dynamo.Config
	// StoreStates keeps the density matrix at every grid point.
	StoreStates bool
	Metrics     []metrics.Metric
	Logger      *zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		Integrator: integrators.NewRK45(),
		Config:     dynamo.DefaultConfig(),
	}
}

func (o Options) withDefaults() Options {
	if o.Integrator == nil {
		o.Integrator = integrators.NewRK45()
	}
	d := dynamo.DefaultConfig()
	if o.Config == (dynamo.Config{}) {
		o.Config = d
	}
	if o.Config.Dt == 0 {
		o.Config.Dt = d.Dt
		if o.Config.MaxDt > 0 {
			o.Config.Dt = min(d.Dt, o.Config.MaxDt)
		}
	}
	if o.Config.MinDt == 0 {
		o.Config.MinDt = d.MinDt
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

type Result struct {
	Times []float64
	// Expect holds one trajectory per requested observable, aligned with Times.
	Expect  [][]complex128
	States  []*quantum.Operator
	Metrics map[string]float64
	Stats   dynamo.Stats
}

// Real returns the real part of the i-th expectation trajectory.
func (r *Result) Real(i int) []float64 {
	out := make([]float64, len(r.Expect[i]))
	for k, v := range r.Expect[i] {
		out[k] = real(v)
	}
	return out
}

// MESolve evolves psi0 under h over tlist. Without collapse operators the
// ket is evolved directly; otherwise the density matrix |psi0><psi0| follows
// the Lindblad equation with the given collapse operators. The expectation of
// every operator in eOps is recorded at every grid time.
func MESolve(ctx context.Context, h Hamiltonian, psi0 quantum.Ket, tlist []float64, cOps, eOps []*quantum.Operator, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := opts.Logger.With().Str("component", "mesolve").Logger()

	if err := validate(h, psi0, tlist, cOps, eOps); err != nil {
		return nil, err
	}

	n := psi0.Dim()
	result := &Result{
		Times:   append([]float64(nil), tlist...),
		Expect:  make([][]complex128, len(eOps)),
		Metrics: make(map[string]float64),
	}
	for i := range result.Expect {
		result.Expect[i] = make([]complex128, len(tlist))
	}
	if opts.StoreStates {
		result.States = make([]*quantum.Operator, len(tlist))
	}
	for _, m := range opts.Metrics {
		m.Reset()
	}

	var (
		sys     dynamo.System
		x0      dynamo.State
		density func(x dynamo.State) *quantum.Operator
	)
	if len(cOps) == 0 {
		sys = &schrodinger{h: h, n: n}
		x0 = packKet(psi0)
		density = func(x dynamo.State) *quantum.Operator { return unpackKet(x).Density() }
	} else {
		sys = newLindblad(h, cOps, n)
		x0 = packOperator(psi0.Density())
		density = func(x dynamo.State) *quantum.Operator { return unpackOperator(x, n) }
	}

	needRho := opts.StoreStates || len(opts.Metrics) > 0 || len(cOps) > 0
	sim := dynamo.New(opts.Integrator)
	sim.AddObserver(func(i int, t float64, x dynamo.State) {
		if !needRho {
			psi := unpackKet(x)
			for k, op := range eOps {
				result.Expect[k][i] = quantum.ExpectKet(op, psi)
			}
			return
		}

		rho := density(x)
		for k, op := range eOps {
			result.Expect[k][i] = quantum.Expect(op, rho)
		}
		for _, m := range opts.Metrics {
			m.Observe(t, rho)
		}
		if opts.StoreStates {
			result.States[i] = rho
		}
	})

	log.Debug().
		Int("dim", n).
		Int("points", len(tlist)).
		Int("collapse_ops", len(cOps)).
		Int("observables", len(eOps)).
		Msg("integrating")

	if _, err := sim.Integrate(ctx, sys, x0, tlist, opts.Config); err != nil {
		return nil, fmt.Errorf("mesolve: %w", err)
	}

	result.Stats = sim.Stats()
	for _, m := range opts.Metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	log.Debug().
		Int("steps", result.Stats.Steps).
		Int("rejected", result.Stats.Rejected).
		Msg("integration finished")

	return result, nil
}

func validate(h Hamiltonian, psi0 quantum.Ket, tlist []float64, cOps, eOps []*quantum.Operator) error {
	if h == nil {
		return ErrNilHamiltonian
	}
	if psi0.Dim() == 0 {
		return ErrEmptyState
	}
	if err := dynamo.ValidateGrid(tlist); err != nil {
		return err
	}

	n := psi0.Dim()
	if d := h.At(tlist[0]).Dim(); d != n {
		return fmt.Errorf("%w: hamiltonian is %dx%d, state has dimension %d", dynamo.ErrDimensionMismatch, d, d, n)
	}
	for i, c := range cOps {
		if c.Dim() != n {
			return fmt.Errorf("%w: collapse operator %d is %dx%d, state has dimension %d", dynamo.ErrDimensionMismatch, i, c.Dim(), c.Dim(), n)
		}
	}
	for i, e := range eOps {
		if e.Dim() != n {
			return fmt.Errorf("%w: observable %d is %dx%d, state has dimension %d", dynamo.ErrDimensionMismatch, i, e.Dim(), e.Dim(), n)
		}
	}
	return nil
}
