package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rabisim/internal/analysis"
	"github.com/san-kum/rabisim/internal/experiment"
	"github.com/san-kum/rabisim/internal/export"
	"github.com/san-kum/rabisim/internal/storage"
	"github.com/san-kum/rabisim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tFREQ\tAMP\tGAMMA1\tGAMMA2\tINTEG\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%s\t%.3fs\n",
			run.ID,
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Config.Frequency,
			run.Config.Amplitude,
			run.Config.Gamma1,
			run.Config.Gamma2,
			run.Integrator,
			run.Elapsed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Excitation) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(traj.Excitation))
	fmt.Println(viz.RenderPlot(traj.Excitation, viz.DefaultPlotWidth, viz.DefaultPlotHeight, plotCaption))

	if savePath != "" {
		opts := export.DefaultPlotOptions()
		if err := export.WriteSVG(savePath, traj.Times, traj.Excitation, opts); err != nil {
			return err
		}
		fmt.Printf("plot saved to %s\n", savePath)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj.Excitation) < 4 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(traj.Excitation)
	plotData := ps[:max(len(ps)/4, 2)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (p_ex)"),
	)
	fmt.Println(graph)
	fmt.Println()

	s := experiment.Summarize(traj.Times, traj.Excitation)
	fmt.Printf("prominent peaks: %d\n", s.Peaks)
	if s.Period > 0 {
		fmt.Printf("rabi period: %.3f\n", s.Period)
	}
	fmt.Printf("dominant frequency: %.4f\n", s.DominantFrequency)
	if s.DominantFrequency > 0 {
		fmt.Printf("spectral period: %.3f\n", 1/s.DominantFrequency)
	}
	fmt.Printf("max excitation: %.4f\n", s.MaxExcitation)
	fmt.Printf("late amplitude: %.4f\n", s.LateAmplitude)
	fmt.Printf("amplitude decay: %.4f\n", s.AmplitudeDecay)

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	traj, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, traj.Times, traj.Excitation)
}
