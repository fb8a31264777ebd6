package main

import (
	"fmt"
	"math"
	"os"
	"slices"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rabisim/internal/config"
	"github.com/san-kum/rabisim/internal/experiment"
	"github.com/san-kum/rabisim/internal/export"
	"github.com/san-kum/rabisim/internal/storage"
	"github.com/san-kum/rabisim/internal/viz"
)

const plotCaption = "Excitation probability of qubit"

func runDefault(cmd *cobra.Command, args []string) error {
	run, err := experiment.New(config.DefaultConfig(), experiment.WithLogger(log)).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("time elapsed = %v\n", run.Elapsed.Seconds())
	fmt.Println(viz.RenderPlot(run.Excitation, viz.DefaultPlotWidth, viz.DefaultPlotHeight, plotCaption))
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	run, err := experiment.New(cfg, experiment.WithLogger(log)).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("time elapsed = %v\n", run.Elapsed.Seconds())
	fmt.Println(viz.RenderPlot(run.Excitation, viz.DefaultPlotWidth, viz.DefaultPlotHeight, plotCaption))

	if savePath != "" {
		if err := export.WriteSVG(savePath, run.Times, run.Excitation, export.DefaultPlotOptions()); err != nil {
			return err
		}
		fmt.Printf("plot saved to %s\n", savePath)
	}

	if store {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(run)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(run.Metrics))
	for name := range run.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, run.Metrics[name])
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	apply, err := experiment.Param(sweepParam)
	if err != nil {
		return err
	}

	runs, err := experiment.Sweep(cmd.Context(), cfg, sweepValues, apply, parallelism, experiment.WithLogger(log))
	if err != nil {
		return err
	}

	styles := viz.NewStyles(viz.ThemeCyberpunk)
	elapsed := make([]float64, len(runs))

	fmt.Printf("sweep over %s (%d runs)\n\n", sweepParam, len(runs))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tPERIOD\tMAX\tLATE_AMP\tELAPSED\tTRAJECTORY")
	for i, run := range runs {
		s := run.Summary()
		elapsed[i] = run.Elapsed.Seconds()
		fmt.Fprintf(w, "%g\t%s\t%.3f\t%.3f\t%.3fs\t%s\n",
			sweepValues[i], formatPeriod(s.Period), s.MaxExcitation, s.LateAmplitude, elapsed[i],
			styles.Sparkline(run.Excitation, 40))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmean elapsed: %.3fs\n", stat.Mean(elapsed, nil))
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = referenceFirst(registry.ListIntegrators(), referenceIntegrator)
	}

	runs := make([]*experiment.Run, len(names))
	for i, name := range names {
		c := cfg.Clone()
		c.Integrator = name
		run, err := experiment.New(c, experiment.WithRegistry(registry), experiment.WithLogger(log)).Run(cmd.Context())
		if err != nil {
			return err
		}
		runs[i] = run
	}

	fmt.Printf("comparing integrators, reference: %s\n\n", names[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tREJECTED\tELAPSED\tMAX_DEVIATION\tTRACE_DRIFT")
	for i, run := range runs {
		dev := 0.0
		for k, v := range run.Excitation {
			dev = math.Max(dev, math.Abs(v-runs[0].Excitation[k]))
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.2e\t%.2e\n",
			names[i], run.Stats.Steps, run.Stats.Rejected, run.Elapsed, dev, run.Metrics["trace_drift"])
	}
	return w.Flush()
}

// referenceIntegrator is the most accurate method, used as the baseline when
// comparing all of them.
const referenceIntegrator = "rk45"

// referenceFirst moves ref to the front of names, keeping the others in order.
func referenceFirst(names []string, ref string) []string {
	i := slices.Index(names, ref)
	if i <= 0 {
		return names
	}
	out := make([]string, 0, len(names))
	out = append(out, ref)
	out = append(out, names[:i]...)
	return append(out, names[i+1:]...)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFREQUENCY\tAMPLITUDE\tGAMMA1\tGAMMA2\tN_TH")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\n", name, p.Frequency, p.Amplitude, p.Gamma1, p.Gamma2, p.NTh)
	}
	return w.Flush()
}

func formatPeriod(p float64) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", p)
}
