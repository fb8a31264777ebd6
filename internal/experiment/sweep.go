package experiment

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rabisim/internal/config"
)

var ErrUnknownParameter = errors.New("experiment: unknown sweep parameter")

// Apply sets one swept parameter on a config.
type Apply func(cfg *config.Config, v float64)

var sweepParams = map[string]Apply{
	"delta":     func(c *config.Config, v float64) { c.Delta = v },
	"eps0":      func(c *config.Config, v float64) { c.Eps0 = v },
	"amplitude": func(c *config.Config, v float64) { c.Amplitude = v },
	"frequency": func(c *config.Config, v float64) { c.Frequency = v },
	"gamma1":    func(c *config.Config, v float64) { c.Gamma1 = v },
	"gamma2":    func(c *config.Config, v float64) { c.Gamma2 = v },
	"n_th":      func(c *config.Config, v float64) { c.NTh = v },
}

// Param looks up the setter for a config field by its YAML name.
func Param(name string) (Apply, error) {
	apply, ok := sweepParams[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	return apply, nil
}

// Sweep runs one experiment per value, at most parallelism at a time
// (unbounded when parallelism <= 0). Runs come back in the order of values.
// The first failure cancels the remaining runs.
func Sweep(ctx context.Context, base *config.Config, values []float64, apply Apply, parallelism int, opts ...Option) ([]*Run, error) {
	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	runs := make([]*Run, len(values))
	for i, v := range values {
		g.Go(func() error {
			cfg := base.Clone()
			apply(cfg, v)

			run, err := New(cfg, opts...).Run(ctx)
			if err != nil {
				return fmt.Errorf("sweep value %g: %w", v, err)
			}
			runs[i] = run
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
