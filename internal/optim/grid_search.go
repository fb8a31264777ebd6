// Package optim searches configuration grids for the run that minimizes an
// objective, such as the drive frequency that maximizes excitation.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/rabisim/internal/config"
	"github.com/san-kum/rabisim/internal/experiment"
)

var ErrEmptyGrid = errors.New("optim: empty search grid")

// Objective scores a run; lower is better.
type Objective func(run *experiment.Run) float64

// MaxExcitation rewards runs that reach the highest excitation probability.
func MaxExcitation(run *experiment.Run) float64 {
	return -run.Summary().MaxExcitation
}

// LateAmplitude rewards runs whose oscillation has decayed the most.
func LateAmplitude(run *experiment.Run) float64 {
	return run.Summary().LateAmplitude
}

type Result struct {
	Params    map[string]float64
	Value     float64
	Evaluated int
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	setters    []experiment.Apply
}

// NewGridSearch searches the cartesian product of ranges. Parameter names
// are the YAML keys accepted by experiment.Param.
func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("%w: %d parameters, %d ranges", ErrEmptyGrid, len(params), len(ranges))
	}

	setters := make([]experiment.Apply, len(params))
	for i, name := range params {
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("%w: no values for %s", ErrEmptyGrid, name)
		}
		apply, err := experiment.Param(name)
		if err != nil {
			return nil, err
		}
		setters[i] = apply
	}
	return &GridSearch{paramNames: params, ranges: ranges, setters: setters}, nil
}

// Search runs every grid point sequentially on top of base and returns the
// best one. The first failed run aborts the search.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, objective Objective, opts ...experiment.Option) (*Result, error) {
	best := &Result{Value: math.Inf(1)}
	if err := g.searchRecursive(ctx, 0, base.Clone(), make(map[string]float64), objective, opts, best); err != nil {
		return nil, err
	}
	return best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	cfg *config.Config,
	current map[string]float64,
	objective Objective,
	opts []experiment.Option,
	best *Result,
) error {
	if depth == len(g.paramNames) {
		run, err := experiment.New(cfg, opts...).Run(ctx)
		if err != nil {
			return fmt.Errorf("grid point %v: %w", current, err)
		}
		best.Evaluated++

		val := objective(run)
		if val < best.Value {
			best.Value = val
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := cfg.Clone()
		g.setters[depth](next, val)
		current[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, current, objective, opts, best); err != nil {
			return err
		}
	}
	return nil
}
