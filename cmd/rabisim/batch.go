package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/rabisim/internal/automation"
	"github.com/san-kum/rabisim/internal/experiment"
	"github.com/san-kum/rabisim/internal/optim"
	"github.com/san-kum/rabisim/internal/rabi"
	"github.com/san-kum/rabisim/internal/storage"
	"github.com/san-kum/rabisim/internal/viz"
)

var (
	tuneObjective string
	tuneGrid      map[string]string
)

var objectives = map[string]optim.Objective{
	"max":  optim.MaxExcitation,
	"late": optim.LateAmplitude,
}

func tuneParameters(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	objective, ok := objectives[tuneObjective]
	if !ok {
		return fmt.Errorf("unknown objective: %s (available: max, late)", tuneObjective)
	}

	names := make([]string, 0, len(tuneGrid))
	for name := range tuneGrid {
		names = append(names, name)
	}
	sort.Strings(names)

	ranges := make([][]float64, len(names))
	for i, name := range names {
		ranges[i], err = parseValues(tuneGrid[name])
		if err != nil {
			return fmt.Errorf("grid %s: %w", name, err)
		}
	}

	search, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	res, err := search.Search(cmd.Context(), cfg, objective, experiment.WithLogger(log))
	if err != nil {
		return err
	}

	fmt.Printf("evaluated %d grid points, best objective %.4f\n", res.Evaluated, res.Value)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, res.Params[name])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}
	fmt.Println()

	results, runErr := automation.RunScenario(cmd.Context(), sc, st, log)

	styles := viz.NewStyles(viz.ThemeCyberpunk)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tPERIOD\tMAX\tRUN_ID\tTRAJECTORY")
	for i, r := range results {
		s := r.Run.Summary()
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\t%s\t%s\n",
			i+1, r.Run.Config.Name, formatPeriod(s.Period), s.MaxExcitation, id, styles.Sparkline(r.Run.Excitation, 30))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

// parseValues reads either a single value or an inclusive range written as
// start:stop:count.
func parseValues(raw string) ([]float64, error) {
	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil
	case 3:
		start, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, err
		}
		stop, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("count must be positive, got %d", n)
		}
		return rabi.Linspace(start, stop, n), nil
	default:
		return nil, fmt.Errorf("expected value or start:stop:count, got %q", raw)
	}
}
