package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sandsim/internal/config"
	"github.com/san-kum/sandsim/internal/export"
	"github.com/san-kum/sandsim/internal/metrics"
	"github.com/san-kum/sandsim/internal/sim"
	"github.com/san-kum/sandsim/internal/viz"
	"github.com/spf13/cobra"
)

const (
	traceEvery  = 4
	traceLength = 150
)

var (
	configFile string
	dt         float64
	frames     int
	seed       int64
	runs       int
	debug      bool
	logLevel   string
	plot       bool
	svgPath    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "sandsim",
		Short:        "2d particle sandbox",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", sim.DefaultDt, "frame step before time scaling")
	rootCmd.PersistentFlags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "seed for the collision jitter")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write live mode logs to "+logDir)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "interactive sandbox in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scene headless and report metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().BoolVar(&plot, "plot", true, "plot kinetic energy")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame with body trails to this svg file")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "run independent seeded copies of a scene in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&runs, "runs", 4, "number of parallel worlds")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scene presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tLINES\tGRAVITY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%g\n", name, len(p.Scene), p.Tunables.Gravity)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, benchCmd, presetsCmd)
	return rootCmd
}

// loadConfig resolves the scene: preset first, then the config file laid
// over it, then any flag given explicitly on the command line.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = frames
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return err
	}

	w, err := cfg.NewWorld(logger)
	if err != nil {
		return err
	}
	for _, m := range defaultMetrics() {
		w.AddMetric(m)
	}
	var tracer *export.Tracer
	if svgPath != "" {
		tracer = export.NewTracer(traceEvery, traceLength)
		w.AddObserver(tracer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := w.Run(ctx, cfg.RunConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "frames: %d  bodies: %d  time: %.2f\n", result.Frames, result.Bodies, result.Time)
	for _, e := range result.Errors {
		fmt.Fprintf(out, "error: %v\n", e)
	}

	fmt.Fprintln(out, "\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}

	if tracer != nil {
		width, height := w.Bounds()
		svg := export.FrameToSVG(w.Frame(), width, height, tracer.Trails())
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "frame written to %s\n", svgPath)
	}

	if series := result.Series["kinetic_energy"]; plot && len(series) > 1 {
		graph := asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("kinetic energy"))
		fmt.Fprintln(out, "\n"+graph)
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}
	logger, err := newLogger(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return err
	}

	e := sim.NewEnsemble(cfg.Options(logger), func(w *sim.World) error { return cfg.Build(w) },
		defaultMetrics, runs, cfg.Seed)

	start := time.Now()
	results, err := e.Run(context.Background(), cfg.RunConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d worlds x %d frames in %v\n\n", runs, cfg.Frames, elapsed)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tBODIES\tFRAMES\tENERGY\tMAX SPEED\tSTABILITY")
	total := 0
	for i, r := range results {
		total += r.Frames * r.Bodies
		fmt.Fprintf(w, "%d\t%d\t%d\t%.2f\t%.2f\t%.3f\n", cfg.Seed+int64(i), r.Bodies, r.Frames,
			r.Metrics["kinetic_energy"], r.Metrics["max_speed"], r.Metrics["stability"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nbody steps/sec: %.0f\n", float64(total)/elapsed.Seconds())
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closer, err := setupLogging(debug, logLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	w, err := cfg.NewWorld(logger)
	if err != nil {
		return err
	}

	m := viz.NewModel(w, cfg, logger)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

func defaultMetrics() []sim.Metric {
	ms := metrics.Default()
	out := make([]sim.Metric, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

// newLogger writes leveled, timestamped records to w.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "sandsim",
		ReportTimestamp: true,
	}), nil
}
