package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sympend/internal/analysis"
	"github.com/san-kum/sympend/internal/config"
	"github.com/san-kum/sympend/internal/dynamo"
	"github.com/san-kum/sympend/internal/experiment"
	"github.com/san-kum/sympend/internal/export"
	"github.com/san-kum/sympend/internal/integrators"
	"github.com/san-kum/sympend/internal/logging"
	"github.com/san-kum/sympend/internal/metrics"
	"github.com/san-kum/sympend/internal/physics"
	"github.com/san-kum/sympend/internal/storage"
	"github.com/san-kum/sympend/internal/viz"
)

var (
	dbPath   string
	logLevel string
	logger   *slog.Logger

	// run configuration
	configFile string
	preset     string
	inputLine  string
	integrator string
	angle1     float64
	angle2     float64
	mass1      float64
	mass2      float64
	length1    float64
	length2    float64
	gravity    float64
	horizon    float64
	dt         float64
	steps      int
	label      string

	// output
	outPath string
	gifPath string

	// phase plot axes
	xAxis    int
	yAxis    int
	poincare bool

	// analysis
	perturbation float64
	spectrumBins int

	// bifurcation
	bifParam     string
	bifMin       float64
	bifMax       float64
	bifSteps     int
	bifTransient float64
	bifRecord    float64

	// compare and sweep
	integratorNames []string
	sweepFrom       float64
	sweepTo         float64
	sweepN          int
	sweepLimit      int
	sweepPersist    bool
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sympend",
		Short:         "double pendulum simulator with a symplectic integrator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			logger = logging.New(os.Stderr, level)
			slog.SetDefault(logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", storage.DefaultPath, "run database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a configuration and save the run",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&label, "label", "", "label stored with the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot angles and energy in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis (0 angle1, 1 angle2, 2 momentum1, 3 momentum2)")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	phaseCmd.Flags().BoolVar(&poincare, "poincare", false, "plot the Poincaré section (angle2, momentum2) at angle1 = 0")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency, energy and divergence analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "angle1 offset for the divergence estimate (0 to skip)")
	analyzeCmd.Flags().IntVar(&spectrumBins, "bins", 60, "spectrum bins to show")

	animateCmd := &cobra.Command{
		Use:   "animate [run_id]",
		Short: "replay a run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  animateRun,
	}
	animateCmd.Flags().StringVar(&gifPath, "gif", "sympend.gif", "file written when a recording is stopped")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "save the trace and angle figure (eps, png, svg or pdf)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportFigure,
	}
	exportCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default dp_<a1>_<a2>_<m1>_<l1>_<l2>.eps)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default stdout)")

	htmlCmd := &cobra.Command{
		Use:   "html [run_id]",
		Short: "write an interactive chart page",
		Args:  cobra.ExactArgs(1),
		RunE:  exportHTML,
	}
	htmlCmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default <run_id>.html)")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare integrators on the same configuration",
		Args:  cobra.NoArgs,
		RunE:  compareIntegrators,
	}
	addConfigFlags(compareCmd)
	compareCmd.Flags().StringSliceVar(&integratorNames, "integrators", nil, "integrators to compare (default all)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a grid of initial angles concurrently",
		Args:  cobra.NoArgs,
		RunE:  sweepAngles,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -180, "lowest angle in degrees")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 180, "highest angle in degrees")
	sweepCmd.Flags().IntVar(&sweepN, "n", 9, "grid points per angle")
	sweepCmd.Flags().IntVar(&sweepLimit, "parallel", 0, "concurrent runs (default GOMAXPROCS)")
	sweepCmd.Flags().BoolVar(&sweepPersist, "persist", false, "save every cell")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation",
		Short: "sweep a physical parameter and plot the Poincaré values of angle2",
		Args:  cobra.NoArgs,
		RunE:  bifurcation,
	}
	addConfigFlags(bifurcationCmd)
	bifurcationCmd.Flags().StringVar(&bifParam, "param", "gravity", "parameter to sweep")
	bifurcationCmd.Flags().Float64Var(&bifMin, "min", 5, "first parameter value")
	bifurcationCmd.Flags().Float64Var(&bifMax, "max", 15, "last parameter value")
	bifurcationCmd.Flags().IntVar(&bifSteps, "steps", 40, "parameter values")
	bifurcationCmd.Flags().Float64Var(&bifTransient, "transient", 10, "seconds discarded before recording")
	bifurcationCmd.Flags().Float64Var(&bifRecord, "record", 30, "seconds recorded per value")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tANGLE1\tANGLE2\tM1\tM2\tL1\tL2\tDT\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%d\n",
					name, p.Angle1Deg, p.Angle2Deg, p.Mass1, p.Mass2, p.Length1, p.Length2, p.Dt, p.Steps)
			}
			return w.Flush()
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			logger.Info("run deleted", "id", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, phaseCmd, analyzeCmd, animateCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, htmlCmd, compareCmd, sweepCmd, bifurcationCmd,
		presetsCmd, deleteCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if logger == nil {
			logger = logging.New(os.Stderr, slog.LevelInfo)
		}
		logger.Error("sympend failed", "err", err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&inputLine, "input", "", `"ANGLE1 ANGLE2" or "ANGLE1 ANGLE2 M1 M2 L1 L2" in degrees`)
	f.StringVar(&integrator, "integrator", config.DefaultIntegrator, "symplectic, euler, rk4 or rk45")
	f.Float64Var(&angle1, "angle1", config.DefaultAngleDeg, "initial angle of the inner arm (degrees)")
	f.Float64Var(&angle2, "angle2", config.DefaultAngleDeg, "initial angle of the outer arm (degrees)")
	f.Float64Var(&mass1, "mass1", config.DefaultMass, "inner bob mass")
	f.Float64Var(&mass2, "mass2", config.DefaultMass, "outer bob mass")
	f.Float64Var(&length1, "length1", config.DefaultLength, "inner arm length")
	f.Float64Var(&length2, "length2", config.DefaultLength, "outer arm length")
	f.Float64Var(&gravity, "gravity", physics.DefaultGravity, "gravitational acceleration")
	f.Float64Var(&horizon, "horizon", config.DefaultHorizon, "simulated time in seconds")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of samples (derived from horizon/dt when omitted)")
}

// resolveConfig layers defaults, preset, config file, input line and
// explicitly set flags, in that order. Each layer only overrides the keys it
// sets.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if inputLine != "" {
		parsed, err := config.ParseInputLine(inputLine, cfg)
		if err != nil {
			return nil, err
		}
		cfg = parsed
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	for name, dst := range map[string]*float64{
		"angle1":  &cfg.Angle1Deg,
		"angle2":  &cfg.Angle2Deg,
		"mass1":   &cfg.Mass1,
		"mass2":   &cfg.Mass2,
		"length1": &cfg.Length1,
		"length2": &cfg.Length2,
		"gravity": &cfg.Gravity,
	} {
		if flags.Changed(name) {
			v, _ := flags.GetFloat64(name)
			*dst = v
		}
	}

	// A new horizon or step size without an explicit sample count derives
	// the count from the other two.
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	switch {
	case flags.Changed("steps"):
		cfg.Steps = steps
		if !flags.Changed("horizon") {
			cfg.Horizon = float64(steps) * cfg.Dt
		}
	case flags.Changed("horizon") || flags.Changed("dt"):
		cfg.Steps = 0
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore() (*storage.Store, error) {
	return storage.Open(dbPath, logger)
}

// loadRun fetches a run's metadata and trajectory.
func loadRun(ctx context.Context, id string) (*storage.RunMetadata, *physics.Trajectory, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	meta, err := st.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	tr, err := st.LoadTrajectory(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if tr.Len() == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", id)
	}
	return meta, tr, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runner := experiment.NewRunner(st, logger)
	logger.Info("running simulation",
		"integrator", cfg.Integrator, "angle1", cfg.Angle1Deg, "angle2", cfg.Angle2Deg, "steps", cfg.Steps)

	res, err := runner.Run(cmd.Context(), cfg, label)
	if err != nil && !errors.Is(err, dynamo.ErrNumericalDivergence) {
		return err
	}

	fmt.Println(titleStyle.Render("run " + res.Meta.ID))
	fmt.Printf("completed in %v\n", res.Elapsed)
	fmt.Printf("samples: %d of %d\n", res.Trajectory.Len(), cfg.Steps)
	printMetrics(os.Stdout, res.Meta.Metrics)
	if err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("diverged at step %d", res.Meta.DivergedAt)))
		return err
	}
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintf(w, "  %-14s %.6g\n", name, m[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tCREATED\tINTEG\tANGLES\tSAMPLES\tDT\tBAND")
	for _, run := range runs {
		status := fmt.Sprintf("%d", run.Samples)
		if run.Diverged() {
			status += " (diverged)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g/%g\t%s\t%.4fs\t%.4g\n",
			run.ID,
			run.Label,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Config.Integrator,
			run.Config.Angle1Deg, run.Config.Angle2Deg,
			status,
			run.Config.Dt,
			run.Metrics["energy_band"],
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	finite := make(map[string]float64, len(meta.Metrics))
	for k, v := range meta.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite[k] = v
		}
	}
	meta.Metrics = finite

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// finitePrefix returns the samples before the first NaN or Inf.
func finitePrefix(tr *physics.Trajectory, series []float64) []float64 {
	n := tr.FirstNonFinite()
	if n < 0 {
		return series
	}
	return series[:n]
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	p, err := meta.Config.Params()
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("integrator: %s\n", meta.Config.Integrator)
	fmt.Printf("samples: %d\n\n", tr.Len())

	a1, a2 := finitePrefix(tr, tr.Angle1), finitePrefix(tr, tr.Angle2)
	if len(a1) < 2 {
		return fmt.Errorf("not enough finite samples to plot")
	}
	fmt.Println(asciigraph.PlotMany([][]float64{a1, a2},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.SeriesLegends("angle 1", "angle 2"),
		asciigraph.Caption("angles (rad) vs time"),
	))
	fmt.Println()

	energy := finitePrefix(tr, tr.Energies(p))
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green),
		asciigraph.Caption(fmt.Sprintf("energy (band %.3g)", meta.Metrics["energy_band"])),
	))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	portrait := &analysis.PhasePortrait2D{XIndex: 1, YIndex: 3}
	if poincare {
		portrait.Points = analysis.PoincareSection(tr)
		fmt.Printf("poincaré section: %d crossings of angle1 = 0\n", len(portrait.Points))
	} else {
		portrait, err = analysis.NewPhasePortrait(tr, xAxis, yAxis)
		if err != nil {
			return err
		}
	}
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 28))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	p, err := meta.Config.Params()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("frequency analysis"))
	for _, s := range []struct {
		name string
		data []float64
	}{
		{"angle 1", finitePrefix(tr, tr.Angle1)},
		{"angle 2", finitePrefix(tr, tr.Angle2)},
	} {
		freq, mag := analysis.DominantFrequency(s.data, tr.Dt)
		fmt.Printf("  %s: dominant %.4f Hz (period %.3fs, magnitude %.3g)\n", s.name, freq, 1/freq, mag)
		ps := analysis.PowerSpectrum(s.data)
		if len(ps) > spectrumBins {
			ps = ps[:spectrumBins]
		}
		fmt.Printf("  %s\n", viz.Sparkline(ps, len(ps)))
	}

	stats := metrics.Statistics(tr, p)
	fmt.Println(titleStyle.Render("\nenergy"))
	fmt.Printf("  initial %.6f  mean %.6f  std %.3g\n", stats.Initial, stats.Mean, stats.StdDev)
	fmt.Printf("  min %.6f  max %.6f  band %.3g (scale %.3g)\n", stats.Min, stats.Max, stats.Band, p.EnergyScale())
	fmt.Printf("  flips: outer %.0f, inner %.0f\n", meta.Metrics["flips"], meta.Metrics["flips_inner"])

	if perturbation > 0 {
		init, err := meta.Config.InitialState()
		if err != nil {
			return err
		}
		div, err := analysis.Divergence(p, init, perturbation, tr.Len(), tr.Dt)
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render("\nsensitivity"))
		fmt.Printf("  perturbation %.1e rad, lyapunov estimate %.4f 1/s\n", perturbation, div.Lyapunov)
		if n := len(div.Separation); n > 0 {
			fmt.Printf("  separation at t=%.1fs: %.3g\n", div.Times[n-1], div.Separation[n-1])
		}
	}
	return nil
}

func animateRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	p, err := meta.Config.Params()
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%g° / %g°  %s", meta.Config.Angle1Deg, meta.Config.Angle2Deg, meta.Config.Integrator)
	model := viz.NewModel(tr, p, title).WithGIFPath(gifPath)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok && m.Err() != nil {
		return fmt.Errorf("save recording: %w", m.Err())
	}
	return nil
}

func exportFigure(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	path := outPath
	if path == "" {
		path = export.DefaultFigureName(&meta.Config)
	}
	if err := export.SaveFigure(path, &meta.Config, tr); err != nil {
		return err
	}
	logger.Info("figure written", "path", path)
	return nil
}

// withOutput runs write against outPath, or stdout when no path is set.
func withOutput(write func(io.Writer) error) error {
	if outPath == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("exported", "path", outPath)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return withOutput(func(w io.Writer) error {
		return export.WriteCSV(w, &meta.Config, tr)
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return withOutput(func(w io.Writer) error {
		return export.WriteJSON(w, meta, tr)
	})
}

func exportHTML(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = meta.ID + ".html"
	}
	return withOutput(func(w io.Writer) error {
		return export.WriteHTML(w, meta, tr)
	})
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	runner := experiment.NewRunner(nil, logger)
	results, err := runner.Compare(cmd.Context(), cfg, integratorNames)
	if err != nil {
		return err
	}

	fmt.Printf("%g° / %g°, %d steps of %gs\n\n", cfg.Angle1Deg, cfg.Angle2Deg, cfg.Steps, cfg.Dt)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tENERGY BAND\tMAX DRIFT\tFLIPS\tSAMPLES\tTIME")
	for _, c := range results {
		m := c.Result.Meta.Metrics
		samples := fmt.Sprintf("%d", c.Result.Trajectory.Len())
		if c.Diverged {
			samples = warnStyle.Render(samples + " diverged")
		}
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.0f\t%s\t%v\n",
			c.Integrator, m["energy_band"], m["energy_drift"], m["flips"], samples, c.Result.Elapsed)
	}
	return w.Flush()
}

func sweepAngles(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	var st *storage.Store
	if sweepPersist {
		if st, err = openStore(); err != nil {
			return err
		}
		defer st.Close()
	}

	grid := experiment.Grid(sweepFrom, sweepTo, sweepN)
	runner := experiment.NewRunner(st, logger)
	points, err := runner.Sweep(cmd.Context(), cfg, grid, grid, experiment.SweepOptions{
		Limit:   sweepLimit,
		Persist: sweepPersist,
	})
	if err != nil {
		return err
	}

	fmt.Println("time to first flip of the outer arm (s), '-' never, '!' diverged")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "a1\\a2\t")
	for _, a2 := range grid {
		fmt.Fprintf(w, "%.0f\t", a2)
	}
	fmt.Fprintln(w)
	for i, a1 := range grid {
		fmt.Fprintf(w, "%.0f\t", a1)
		for j := range grid {
			pt := points[i*len(grid)+j]
			switch {
			case pt.Diverged:
				fmt.Fprint(w, "!\t")
			case pt.FirstFlip < 0:
				fmt.Fprint(w, "-\t")
			default:
				fmt.Fprintf(w, "%.1f\t", pt.FirstFlip)
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func bifurcation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}
	init, err := cfg.InitialState()
	if err != nil {
		return err
	}
	dp, err := physics.NewDoublePendulum(p)
	if err != nil {
		return err
	}

	data, err := analysis.BifurcationDiagram(dp, integrators.NewSymplecticEuler(), bifParam,
		bifMin, bifMax, bifSteps, 1, dp.InitialState(init), cfg.Dt, bifTransient, bifRecord)
	if err != nil {
		return err
	}

	fmt.Printf("angle 2 at angle1 = 0 crossings, %s from %g to %g\n", bifParam, bifMin, bifMax)
	fmt.Print(analysis.BifurcationToASCII(data, 80, 24))
	fmt.Println(strings.Repeat("─", 80))
	return nil
}
