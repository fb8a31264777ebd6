package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/rabisim/internal/config"
	"github.com/san-kum/rabisim/internal/logger"
	"github.com/san-kum/rabisim/internal/viz"
)

var (
	dataDir   string
	logLevel  string
	logPretty bool
	log       zerolog.Logger

	// run parameters, in units of 2π where the config file uses them
	configFile string
	preset     string
	delta      float64
	eps0       float64
	amplitude  float64
	frequency  float64
	gamma1     float64
	gamma2     float64
	nth        float64
	points     int
	tEnd       float64
	integrator string

	savePath string
	store    bool

	sweepParam  string
	sweepValues []float64
	parallelism int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log = zerolog.Nop()

	rootCmd := &cobra.Command{
		Use:           "rabisim",
		Short:         "driven qubit rabi oscillation simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logger.New(logger.Config{Level: logLevel, Pretty: logPretty})
			logger.SetGlobalLogger(log)
		},
		// With no subcommand, run the default experiment and plot it.
		RunE: runDefault,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rabisim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "human readable logs")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().StringVar(&savePath, "save", "", "write the plot to an SVG file")
	runCmd.Flags().BoolVar(&store, "store", false, "persist the run in the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&savePath, "save", "", "write the plot to an SVG file")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "oscillation and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one simulation per parameter value",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "frequency", "parameter to sweep (delta, eps0, amplitude, frequency, gamma1, gamma2, n_th)")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", []float64{0.95, 1.0, 1.05}, "comma separated values")
	sweepCmd.Flags().IntVar(&parallelism, "parallel", 4, "concurrent runs (0 for unbounded)")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same configuration",
		RunE:  compareIntegrators,
	}
	addParamFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "interactive viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cmd.Context(), cfg, log)
		},
	}
	addParamFlags(viewCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search for the best drive parameters",
		Args:  cobra.NoArgs,
		RunE:  tuneParameters,
	}
	addParamFlags(tuneCmd)
	tuneCmd.Flags().StringToStringVar(&tuneGrid, "grid", map[string]string{"frequency": "0.9:1.1:21"}, "parameter=start:stop:count or parameter=value")
	tuneCmd.Flags().StringVar(&tuneObjective, "objective", "max", "objective to minimize (max: highest excitation, late: strongest damping)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario of experiments",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, sweepCmd, compareCmd, tuneCmd, scenarioCmd, presetsCmd, viewCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&delta, "delta", d.Delta, "tunnelling, units of 2π")
	f.Float64Var(&eps0, "eps0", d.Eps0, "qubit bias, units of 2π")
	f.Float64Var(&amplitude, "amplitude", d.Amplitude, "drive amplitude, units of 2π")
	f.Float64Var(&frequency, "frequency", d.Frequency, "drive frequency, units of 2π")
	f.Float64Var(&gamma1, "gamma1", d.Gamma1, "relaxation rate")
	f.Float64Var(&gamma2, "gamma2", d.Gamma2, "dephasing rate")
	f.Float64Var(&nth, "nth", d.NTh, "thermal occupation of the bath")
	f.IntVar(&points, "points", d.Points, "number of output times")
	f.Float64Var(&tEnd, "tend", d.TEnd, "end time")
	f.StringVar(&integrator, "integrator", d.Integrator, "integrator (euler, rk4, rk45)")
}

// buildConfig layers preset, config file and explicitly set flags, in that
// order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	overrides := []struct {
		flag string
		src  float64
		dst  *float64
	}{
		{"delta", delta, &cfg.Delta},
		{"eps0", eps0, &cfg.Eps0},
		{"amplitude", amplitude, &cfg.Amplitude},
		{"frequency", frequency, &cfg.Frequency},
		{"gamma1", gamma1, &cfg.Gamma1},
		{"gamma2", gamma2, &cfg.Gamma2},
		{"nth", nth, &cfg.NTh},
		{"tend", tEnd, &cfg.TEnd},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			*o.dst = o.src
		}
	}
	if flags.Changed("points") {
		cfg.Points = points
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
