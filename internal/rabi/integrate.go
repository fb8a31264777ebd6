package rabi

import (
	"context"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rabisim/internal/dynamo"
	"github.com/san-kum/rabisim/internal/metrics"
	"github.com/san-kum/rabisim/internal/quantum"
	"github.com/san-kum/rabisim/internal/solver"
)

// Option adjusts how the solver is run.
type Option func(*solver.Options)

func WithIntegrator(integ dynamo.Integrator) Option {
	return func(o *solver.Options) { o.Integrator = integ }
}

func WithConfig(cfg dynamo.Config) Option {
	return func(o *solver.Options) { o.Config = cfg }
}

func WithMetrics(m ...metrics.Metric) Option {
	return func(o *solver.Options) { o.Metrics = append(o.Metrics, m...) }
}

func WithLogger(l *zerolog.Logger) Option {
	return func(o *solver.Options) { o.Logger = l }
}

// GroundState is basis state 0, which has zero excitation.
func GroundState() quantum.Ket {
	return quantum.Basis(2, 0)
}

// Linspace returns n evenly spaced points from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}

// Solve runs the driven qubit once and returns the full solver result with
// the excitation number a†a as its only observable.
func Solve(ctx context.Context, p Params, psi0 quantum.Ket, tlist []float64, opts ...Option) (*solver.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var so solver.Options
	for _, opt := range opts {
		opt(&so)
	}

	h := NewHamiltonian(p)
	cOps := CollapseOperators(p)
	eOps := []*quantum.Operator{quantum.Number(2)}

	return solver.MESolve(ctx, h, psi0, tlist, cOps, eOps, so)
}

// Integrate returns the excitation probability of the qubit at every time
// in tlist, starting from psi0.
func Integrate(ctx context.Context, p Params, psi0 quantum.Ket, tlist []float64, opts ...Option) ([]float64, error) {
	res, err := Solve(ctx, p, psi0, tlist, opts...)
	if err != nil {
		return nil, err
	}
	return res.Real(0), nil
}
