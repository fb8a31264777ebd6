// Package experiment runs configured qubit simulations: it resolves the
// integrator, times the solver call and summarizes the trajectory.
package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/rabisim/internal/config"
	"github.com/san-kum/rabisim/internal/dynamo"
	"github.com/san-kum/rabisim/internal/metrics"
	"github.com/san-kum/rabisim/internal/rabi"
)

// Run is the outcome of one experiment.
type Run struct {
	Config     *config.Config
	Times      []float64
	Excitation []float64
	Elapsed    time.Duration
	Metrics    map[string]float64
	Stats      dynamo.Stats
}

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	logger   zerolog.Logger
}

type Option func(*Experiment)

func WithRegistry(r *Registry) Option {
	return func(e *Experiment) { e.registry = r }
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:    cfg,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = NewRegistry()
	}
	return e
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Run solves the configured system once. Elapsed covers the solver call
// only, not setup or logging.
func (e *Experiment) Run(ctx context.Context) (*Run, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	integ, err := e.registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return nil, err
	}

	log := e.logger.With().
		Str("component", "experiment").
		Str("name", e.cfg.Name).
		Str("integrator", e.cfg.Integrator).
		Logger()

	params := e.cfg.Params()
	tlist := e.cfg.TimeGrid()
	ms := append(metrics.Defaults(), metrics.NewEnergy(rabi.NewHamiltonian(params)))

	log.Debug().
		Float64("frequency", e.cfg.Frequency).
		Float64("amplitude", e.cfg.Amplitude).
		Float64("gamma1", e.cfg.Gamma1).
		Float64("gamma2", e.cfg.Gamma2).
		Int("points", len(tlist)).
		Msg("starting run")

	start := time.Now()
	res, err := rabi.Solve(ctx, params, e.cfg.InitialKet(), tlist,
		rabi.WithIntegrator(integ),
		rabi.WithConfig(e.cfg.SolverConfig()),
		rabi.WithMetrics(ms...),
		rabi.WithLogger(&log),
	)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		return nil, fmt.Errorf("experiment %s: %w", e.cfg.Name, err)
	}

	log.Info().
		Dur("elapsed", elapsed).
		Int("steps", res.Stats.Steps).
		Int("rejected", res.Stats.Rejected).
		Msg("run finished")

	return &Run{
		Config:     e.cfg,
		Times:      res.Times,
		Excitation: res.Real(0),
		Elapsed:    elapsed,
		Metrics:    res.Metrics,
		Stats:      res.Stats,
	}, nil
}
