package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cglsim/internal/analysis"
	"github.com/san-kum/cglsim/internal/cgl"
	"github.com/san-kum/cglsim/internal/config"
	"github.com/san-kum/cglsim/internal/export"
	"github.com/san-kum/cglsim/internal/integrators"
	"github.com/san-kum/cglsim/internal/metrics"
	"github.com/san-kum/cglsim/internal/physics"
	"github.com/san-kum/cglsim/internal/render"
	"github.com/san-kum/cglsim/internal/storage"
	"github.com/san-kum/cglsim/internal/viz"
)

var (
	dataDir    string
	gridN      int
	alpha      float64
	beta       float64
	dt         float64
	duration   float64
	dx         float64
	seed       int64
	initAmp    float64
	integrator string
	configFile string
	preset     string
	// render flags
	outFile  string
	frameIdx int
	stride   int
	scale    int
	fps      int
	quantity string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cglsim",
		Short: "complex Ginzburg-Landau simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cglsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addPhysicsFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run summary series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "temporal frequency analysis of the probe point",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "spatial power spectrum of one frame",
		Args:  cobra.ExactArgs(1),
		RunE:  spatialSpectrum,
	}
	spectrumCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (-1 = last)")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render the frame history as an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outFile, "out", "cgl.gif", "output file")
	renderCmd.Flags().IntVar(&fps, "fps", 25, "frame rate")
	renderCmd.Flags().IntVar(&scale, "scale", 4, "pixels per grid cell")
	renderCmd.Flags().IntVar(&stride, "stride", 1, "render every k-th frame")
	renderCmd.Flags().StringVar(&quantity, "quantity", "real", "real, amplitude or phase")

	frameCmd := &cobra.Command{
		Use:   "frame [run_id]",
		Short: "render a single frame as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderFrame,
	}
	frameCmd.Flags().StringVar(&outFile, "out", "frame.png", "output file")
	frameCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (-1 = last)")
	frameCmd.Flags().IntVar(&scale, "scale", 4, "pixels per grid cell")
	frameCmd.Flags().StringVar(&quantity, "quantity", "real", "real, amplitude or phase")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run summary to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run summary to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportPlotCmd := &cobra.Command{
		Use:   "export-plot [run_id]",
		Short: "export summary plot as an image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPlot,
	}
	exportPlotCmd.Flags().StringVar(&outFile, "out", "summary.png", "output file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addPhysicsFlags(liveCmd)
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Printf("%-10s alpha=%.2f beta=%.2f n=%d dt=%.3f T=%.0f\n",
					p, cfg.Alpha, cfg.Beta, cfg.N, cfg.Dt, cfg.Duration)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, spectrumCmd,
		renderCmd, frameCmd, exportJSONCmd, exportCSVCmd, exportPlotCmd,
		liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gridN, "n", config.DefaultN, "grid side length")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "linear dispersion coefficient")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "nonlinear dispersion coefficient")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration")
	cmd.Flags().Float64Var(&dx, "dx", config.DefaultDx, "grid spacing")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for initial noise")
	cmd.Flags().Float64Var(&initAmp, "init-amp", config.DefaultInitAmp, "initial noise amplitude")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler, rk4)")
}

// resolveConfig merges preset, config file, and changed CLI flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("n") {
		cfg.N = gridN
	}
	if cmd.Flags().Changed("alpha") {
		cfg.Alpha = alpha
	}
	if cmd.Flags().Changed("beta") {
		cfg.Beta = beta
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("dx") {
		cfg.Dx = dx
	}
	if cmd.Flags().Changed("init-amp") {
		cfg.InitAmp = initAmp
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getIntegrator(name string) (cgl.Integrator, error) {
	switch name {
	case "euler", "":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	integ, err := getIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	sys := physics.NewCGL(cfg.N, cfg.Alpha, cfg.Beta, cfg.Dx)
	sim := cgl.New(sys, integ)
	sim.AddMetric(metrics.NewMaxAmplitude())
	sim.AddMetric(metrics.NewMeanIntensity())

	f0 := physics.NoiseField(cfg.N, cfg.InitAmp, cfg.Seed)
	runCfg := cgl.Config{Dt: cfg.Dt, Duration: cfg.Duration, Seed: cfg.Seed}

	fmt.Printf("running cgl (n=%d alpha=%.2f beta=%.2f dt=%.3f T=%.1f)...\n",
		cfg.N, cfg.Alpha, cfg.Beta, cfg.Dt, cfg.Duration)
	start := time.Now()

	result, err := sim.Run(context.Background(), f0, runCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		N:          cfg.N,
		Alpha:      cfg.Alpha,
		Beta:       cfg.Beta,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Dx:         cfg.Dx,
		Seed:       cfg.Seed,
		Integrator: cfg.Integrator,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Fields))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

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
	fmt.Fprintln(w, "ID\tTIME\tN\tALPHA\tBETA\tDT\tDURATION\tFRAMES\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\t%.3f\t%.1fs\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.Alpha,
			run.Beta,
			run.Dt,
			run.Duration,
			run.Frames,
			run.Integrator,
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
	sum, err := st.LoadSummary(runID)
	if err != nil {
		return err
	}
	if len(sum.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("alpha=%.2f beta=%.2f n=%d\n", meta.Alpha, meta.Beta, meta.N)
	fmt.Printf("samples: %d\n\n", len(sum.Times))

	series := []struct {
		data    []float64
		caption string
	}{
		{sum.MeanIntensity, "mean |A|^2"},
		{sum.MaxAmplitude, "max |A|"},
		{sum.ProbeRe, "Re A at probe"},
	}

	for _, sr := range series {
		graph := asciigraph.Plot(sr.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
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
	sum, err := st.LoadSummary(runID)
	if err != nil {
		return err
	}
	if len(sum.ProbeRe) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("alpha=%.2f beta=%.2f\n\n", meta.Alpha, meta.Beta)

	ps := analysis.PowerSpectrum(sum.ProbeRe)
	plotData := ps
	if len(plotData) > 200 {
		plotData = plotData[:200]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (Re A at probe)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(ps, meta.Duration)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func spatialSpectrum(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	fields, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("no frames")
	}

	idx := frameIdx
	if idx < 0 || idx >= len(fields) {
		idx = len(fields) - 1
	}

	power := analysis.SpatialSpectrum(fields[idx])
	radial := analysis.RadialSpectrum(power)

	fmt.Printf("spatial spectrum: %s frame %d (t=%.2f)\n\n", runID, idx, times[idx])

	graph := asciigraph.Plot(radial,
		asciigraph.Height(15),
		asciigraph.Width(70),
		asciigraph.Caption("mean power per wavenumber ring"),
	)
	fmt.Println(graph)

	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	fields, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if stride < 1 {
		stride = 1
	}
	selected := make([]cgl.Field, 0, len(fields)/stride+1)
	for i := 0; i < len(fields); i += stride {
		selected = append(selected, fields[i])
	}

	if err := render.WriteGIF(outFile, selected, render.Quantity(quantity), fps, scale); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d frames)\n", outFile, len(selected))
	return nil
}

func renderFrame(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	fields, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("no frames")
	}

	idx := frameIdx
	if idx < 0 || idx >= len(fields) {
		idx = len(fields) - 1
	}

	if err := render.WritePNG(outFile, fields[idx], render.Quantity(quantity), scale); err != nil {
		return err
	}

	fmt.Printf("wrote %s (frame %d)\n", outFile, idx)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	sum, err := st.LoadSummary(runID)
	if err != nil {
		return err
	}

	return export.WriteJSON(os.Stdout, meta, sum)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	sum, err := st.LoadSummary(runID)
	if err != nil {
		return err
	}
	if len(sum.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "mean_intensity", "max_amplitude", "probe_re", "probe_im"}); err != nil {
		return err
	}
	for i := range sum.Times {
		row := []string{
			strconv.FormatFloat(sum.Times[i], 'f', 6, 64),
			strconv.FormatFloat(sum.MeanIntensity[i], 'g', 10, 64),
			strconv.FormatFloat(sum.MaxAmplitude[i], 'g', 10, 64),
			strconv.FormatFloat(sum.ProbeRe[i], 'g', 10, 64),
			strconv.FormatFloat(sum.ProbeIm[i], 'g', 10, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportPlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	sum, err := st.LoadSummary(runID)
	if err != nil {
		return err
	}
	if len(sum.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if err := export.PlotSummaryPNG(outFile, sum); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := getIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}

	sys := physics.NewCGL(cfg.N, cfg.Alpha, cfg.Beta, cfg.Dx)
	f0 := physics.NoiseField(cfg.N, cfg.InitAmp, cfg.Seed)

	m := viz.NewModel(sys, integ, f0, cfg.Dt, fps)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
