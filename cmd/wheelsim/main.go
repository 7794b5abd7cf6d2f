package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/wheelsim/internal/automation"
	"github.com/san-kum/wheelsim/internal/config"
	"github.com/san-kum/wheelsim/internal/export"
	"github.com/san-kum/wheelsim/internal/host"
	"github.com/san-kum/wheelsim/internal/logging"
	"github.com/san-kum/wheelsim/internal/scroller"
	"github.com/san-kum/wheelsim/internal/trace"
	"github.com/san-kum/wheelsim/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	// picker overrides
	minValue int
	maxValue int
	value    int
	items    int
	wrap     bool
	order    string
	friction float64
	density  float64
	// fling and plots
	plotVar   string
	interp    string
	format    string
	outFile   string
	svgWidth  int
	svgHeight int
	// sweep
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
)

var heading = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)

func main() {
	rootCmd := &cobra.Command{
		Use:          "wheelsim",
		Short:        "wheel value picker with fling physics",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.IntVar(&minValue, "min", 1, "minimum value")
	pf.IntVar(&maxValue, "max", 100, "maximum value")
	pf.IntVar(&value, "value", 1, "initial value")
	pf.IntVar(&items, "items", 7, "visible wheel items")
	pf.BoolVar(&wrap, "wrap", true, "wrap around the range")
	pf.StringVar(&order, "order", "ascending", "value order (ascending, descending)")
	pf.Float64Var(&friction, "friction", scroller.DefaultFriction, "fling friction")
	pf.Float64Var(&density, "density", 1, "display density")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal picker",
		RunE:  runTUI,
	}

	flingCmd := &cobra.Command{
		Use:   "fling [velocity]",
		Short: "release a headless picker and plot the motion",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFling,
	}
	flingCmd.Flags().StringVar(&plotVar, "plot", "position", "plotted variable (position, velocity)")

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "plot the fling spline or an interpolator",
		RunE:  plotCurve,
	}
	curveCmd.Flags().StringVar(&interp, "interp", "", "interpolator to plot instead of the spline")

	durationsCmd := &cobra.Command{
		Use:   "durations",
		Short: "fling duration and distance by velocity",
		RunE:  printDurations,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "replay a gesture scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "fling across a range of velocities",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 100, "lowest velocity (px/s)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1000, "highest velocity (px/s)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of flings")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [velocity]",
		Short: "export a fling trace to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := flingRun(cmd, args)
			if err != nil {
				return err
			}
			return export.WriteCSV(os.Stdout, run.Samples)
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [velocity]",
		Short: "export a fling trace to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := flingRun(cmd, args)
			if err != nil {
				return err
			}
			return export.WriteJSON(os.Stdout, run)
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [velocity]",
		Short: "export a fling trace to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := flingRun(cmd, args)
			if err != nil {
				return err
			}
			return export.WriteSVG(os.Stdout, run.Samples, svgWidth, svgHeight)
		},
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if outFile != "" {
				if err := config.Save(outFile, cfg); err != nil {
					return err
				}
				fmt.Printf("config written to %s\n", outFile)
				return nil
			}
			return config.Encode(os.Stdout, cfg, format)
		},
	}
	configCmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml, toml)")
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(tuiCmd, flingCmd, curveCmd, durationsCmd, presetsCmd, scenarioCmd, sweepCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the preset, the config file and any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}

	// Load config file if specified (overrides preset)
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("min") {
		cfg.Picker.Min = minValue
	}
	if flags.Changed("max") {
		cfg.Picker.Max = maxValue
	}
	if flags.Changed("value") {
		cfg.Picker.Value = value
	}
	if flags.Changed("items") {
		cfg.Picker.Items = items
	}
	if flags.Changed("wrap") {
		cfg.Picker.Wrap = wrap
	}
	if flags.Changed("order") {
		cfg.Picker.Order = order
	}
	if flags.Changed("friction") {
		cfg.Physics.Friction = friction
	}
	if flags.Changed("density") {
		cfg.Physics.Density = density
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() zerolog.Logger {
	return logging.New(os.Stderr, logLevel)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	selected, err := viz.Run(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("selected: %d\n", selected)
	return nil
}

func parseVelocity(args []string) (float64, error) {
	if len(args) == 0 {
		return 1000, nil
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid velocity %q: %w", args[0], err)
	}
	return v, nil
}

// flingRun releases a headless picker and packages the recording.
func flingRun(cmd *cobra.Command, args []string) (export.Run, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return export.Run{}, err
	}
	v, err := parseVelocity(args)
	if err != nil {
		return export.Run{}, err
	}
	report, err := automation.Fling(context.Background(), cfg, v, newLogger())
	if err != nil {
		return export.Run{}, err
	}
	return export.Run{
		Label:    report.Name,
		Min:      cfg.Picker.Min,
		Max:      cfg.Picker.Max,
		Wrap:     cfg.Picker.Wrap,
		Velocity: v,
		Samples:  report.Samples,
		Metrics:  report.Metrics,
	}, nil
}

func runFling(cmd *cobra.Command, args []string) error {
	run, err := flingRun(cmd, args)
	if err != nil {
		return err
	}
	if len(run.Samples) == 0 {
		return fmt.Errorf("no samples recorded")
	}

	fmt.Println(heading.Render(run.Label))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	first, last := run.Samples[0], run.Samples[len(run.Samples)-1]
	fmt.Fprintf(w, "start value\t%d\n", first.Value)
	fmt.Fprintf(w, "final value\t%d\n", last.Value)
	fmt.Fprintf(w, "samples\t%d\n", len(run.Samples))
	for _, m := range run.Metrics {
		fmt.Fprintf(w, "%s\t%.2f\n", m.Name, m.Value)
	}
	w.Flush()
	fmt.Println()

	data := make([]float64, len(run.Samples))
	caption := "position (px) vs frame"
	for i, s := range run.Samples {
		switch plotVar {
		case "velocity":
			data[i] = s.Velocity
		default:
			data[i] = s.Position
		}
	}
	if plotVar == "velocity" {
		caption = "velocity (px/s) vs frame"
	}
	plot(os.Stdout, data, caption)
	return nil
}

func plot(w io.Writer, data []float64, caption string) {
	if len(data) < 2 {
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(w, graph)
}

func plotCurve(cmd *cobra.Command, args []string) error {
	if interp != "" {
		in, err := scroller.GetInterpolator(interp)
		if err != nil {
			return fmt.Errorf("%w (available: %v)", err, scroller.ListInterpolators())
		}
		data := make([]float64, 101)
		for i := range data {
			data[i] = in.Interpolation(float64(i) / 100)
		}
		plot(os.Stdout, data, interp+" interpolation over [0, 1]")
		return nil
	}

	position, time := scroller.DefaultSpline.Samples()
	fmt.Println(heading.Render(fmt.Sprintf("fling spline (%d samples)", scroller.DefaultSpline.Len())))
	plot(os.Stdout, position, "distance fraction by time fraction")
	fmt.Println()
	plot(os.Stdout, time, "time fraction by distance fraction")
	return nil
}

func printDurations(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s := scroller.New(host.NewSystemClock(), cfg.Physics.Density, nil)
	s.SetFriction(cfg.Physics.Friction)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VELOCITY\tDURATION\tDISTANCE")
	for _, v := range []float64{100, 250, 500, 1000, 2000, 4000, 8000} {
		fmt.Fprintf(w, "%.0f px/s\t%d ms\t%.1f px\n", v, s.SplineFlingDuration(v), s.SplineFlingDistance(v))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRANGE\tVALUE\tITEMS\tWRAP\tORDER")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		order := p.Order
		if order == "" {
			order = "ascending"
		}
		fmt.Fprintf(w, "%s\t%d..%d\t%d\t%d\t%v\t%s\n", name, p.Min, p.Max, p.Value, p.Items, p.Wrap, order)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	report, err := automation.RunScenario(cmd.Context(), sc, cfg, newLogger())
	if report != nil {
		printReport(os.Stdout, report)
	}
	return err
}

func printReport(out io.Writer, report *automation.Report) {
	if report.Name != "" {
		fmt.Fprintln(out, heading.Render(report.Name))
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tACTION\tT (ms)\tVALUE\tLABEL\tSTATE")
	for _, st := range report.Steps {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n", st.Index, st.Action, st.T, st.Value, st.Label, st.State)
	}
	w.Flush()

	if report.Samples == nil {
		return
	}
	fmt.Fprintf(out, "\nfinal value: %d after %d changes\n", report.Final, len(report.Changes))
	printMetrics(out, report.Metrics)
}

func printMetrics(out io.Writer, metrics []trace.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, m := range metrics {
		fmt.Fprintf(w, "%s\t%.2f\n", m.Name, m.Value)
	}
	w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sweep := automation.Sweep{MinVelocity: sweepFrom, MaxVelocity: sweepTo, NumSteps: sweepSteps}
	results, err := automation.RunSweep(cmd.Context(), sweep, cfg, newLogger())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VELOCITY\tPREDICTED\tTRAVEL\tSETTLE\tSTEPS\tFINAL")
	travel := make([]float64, len(results))
	for i, r := range results {
		travel[i] = r.Travel
		fmt.Fprintf(w, "%.0f\t%.1f px / %d ms\t%.1f px\t%.0f ms\t%d\t%d\n",
			r.Velocity, r.PredictedDistance, r.PredictedDuration, r.Travel, r.SettleMs, r.ValueChanges, r.Final)
	}
	w.Flush()
	fmt.Println()
	plot(os.Stdout, travel, "travel (px) by sweep step")
	return nil
}
