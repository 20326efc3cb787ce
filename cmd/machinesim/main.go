package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/machinesim/internal/config"
	"github.com/san-kum/machinesim/internal/export"
	"github.com/san-kum/machinesim/internal/factory"
	"github.com/san-kum/machinesim/internal/gfx"
	"github.com/san-kum/machinesim/internal/machine"
	"github.com/san-kum/machinesim/internal/metrics"
	"github.com/san-kum/machinesim/internal/sim"
	"github.com/san-kum/machinesim/internal/storage"
	"github.com/san-kum/machinesim/internal/viz"
)

// Bodies below this height have left the scene.
const fallFloor = -200.0

var (
	configFile   string
	preset       string
	dataDir      string
	resourcesDir string
	verbose      bool

	machineNum int
	frameRate  float64
	frames     int
	startFrame int
	scale      float64

	outPath   string
	statePath string
	width     int
	height    int
	braille   bool
	noImages  bool
	bgColor   string
	component string
	field     string
	svgPath   string
	theme     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "machinesim",
		Short: "frame-seekable Rube-Goldberg machine simulator",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "yaml config file")
	rootCmd.PersistentFlags().StringVarP(&preset, "preset", "p", "", "named preset (see presets)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "run directory")
	rootCmd.PersistentFlags().StringVar(&resourcesDir, "resources", "", "resources directory holding images/")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log machine lifecycle to stderr")

	runCmd := &cobra.Command{
		Use:   "run [machine...]",
		Short: "record machines frame by frame and save the runs",
		RunE:  runMachines,
	}
	runCmd.Flags().IntVarP(&machineNum, "machine", "m", config.DefaultMachine, "machine number")
	runCmd.Flags().Float64VarP(&frameRate, "rate", "r", config.DefaultFrameRate, "frames per second")
	runCmd.Flags().IntVarP(&frames, "frames", "n", config.DefaultFrames, "frames to record")

	seekCmd := &cobra.Command{
		Use:   "seek [frame]",
		Short: "seek a machine to a frame and print its components",
		Args:  cobra.ExactArgs(1),
		RunE:  seekFrame,
	}
	seekCmd.Flags().IntVarP(&machineNum, "machine", "m", config.DefaultMachine, "machine number")
	seekCmd.Flags().Float64VarP(&frameRate, "rate", "r", config.DefaultFrameRate, "frames per second")

	drawCmd := &cobra.Command{
		Use:   "draw [frame]",
		Short: "draw a machine at a timeline frame as SVG or braille",
		Args:  cobra.ExactArgs(1),
		RunE:  drawFrame,
	}
	drawCmd.Flags().IntVarP(&machineNum, "machine", "m", config.DefaultMachine, "machine number")
	drawCmd.Flags().Float64VarP(&frameRate, "rate", "r", config.DefaultFrameRate, "frames per second")
	drawCmd.Flags().IntVar(&startFrame, "start", 0, "timeline frame the machine starts at")
	drawCmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "drawing scale")
	drawCmd.Flags().StringVarP(&outPath, "output", "o", "machine.svg", "svg output path")
	drawCmd.Flags().StringVar(&statePath, "state", "", "drawable state file (machine, start frame, scale)")
	drawCmd.Flags().IntVar(&width, "width", 800, "image width")
	drawCmd.Flags().IntVar(&height, "height", 700, "image height")
	drawCmd.Flags().BoolVar(&braille, "braille", false, "print to the terminal instead of writing svg")
	drawCmd.Flags().BoolVar(&noImages, "no-images", false, "draw outlines in place of images")
	drawCmd.Flags().StringVar(&bgColor, "background", "#ffffff", "svg background fill")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot component trajectories from a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&component, "component", "", "component to plot (default: first few)")
	plotCmd.Flags().StringVar(&field, "field", "y", fmt.Sprintf("field to plot %v", sim.Fields()))
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the component's x/y path as svg")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "scrub through machines interactively",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVarP(&machineNum, "machine", "m", config.DefaultMachine, "machine number")
	liveCmd.Flags().Float64VarP(&frameRate, "rate", "r", config.DefaultFrameRate, "frames per second")
	liveCmd.Flags().IntVarP(&frames, "frames", "n", config.DefaultFrames, "frames the progress bar spans")
	liveCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run's metadata and final frame",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "", "output path (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMACHINE\tRATE\tFRAMES\tSCALE")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%d\t%.0f\t%d\t%.2f\n", name, p.Machine, p.FrameRate, p.Frames, p.Scale)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeDefaults,
	}
	initCmd.Flags().StringVar(&statePath, "state", "", "also write a default drawable state file")

	rootCmd.AddCommand(runCmd, seekCmd, drawCmd, plotCmd, liveCmd, listCmd, showCmd, exportJSONCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig starts from the defaults, the named preset or the config file,
// the file winning over the preset, then applies flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, *factory.Registry, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	applyFlags(cmd, cfg)

	registry := factory.NewRegistry(cfg.ResourcesDir)
	if err := cfg.Validate(registry.Numbers()...); err != nil {
		return nil, nil, err
	}
	return cfg, registry, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("resources") {
		cfg.ResourcesDir = resourcesDir
	}
	if flags.Changed("machine") {
		cfg.Machine = machineNum
	}
	if flags.Changed("rate") {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("start") {
		cfg.StartFrame = startFrame
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
}

func newLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "machinesim: ", log.LstdFlags)
}

func newSystem(cfg *config.Config, registry *factory.Registry) *sim.System {
	sys := sim.NewSystem(registry,
		sim.WithLogger(newLogger()),
		sim.WithFrameRate(cfg.FrameRate),
	)
	sys.ChooseMachine(cfg.Machine)
	sys.SetLocation(cfg.Location.X, cfg.Location.Y)
	return sys
}

func runMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewActiveMotors(),
		metrics.NewStability(fallFloor),
	}
}

func parseMachines(args []string, fallback int) ([]int, error) {
	if len(args) == 0 {
		return []int{fallback}, nil
	}
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid machine number %q: %w", a, err)
		}
		nums[i] = n
	}
	return nums, nil
}

func runMachines(cmd *cobra.Command, args []string) error {
	cfg, registry, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	numbers, err := parseMachines(args, cfg.Machine)
	if err != nil {
		return err
	}
	for _, n := range numbers {
		if _, err := registry.Lookup(n); err != nil {
			return err
		}
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	simCfg := sim.Config{Frames: cfg.Frames, FrameRate: cfg.FrameRate}
	logger := newLogger()

	fmt.Printf("recording %d frame(s) of %v at %.0f fps...\n", cfg.Frames, numbers, cfg.FrameRate)
	start := time.Now()

	var traces []*sim.Trace
	if len(numbers) == 1 {
		energy := metrics.NewKineticEnergy()
		motors := metrics.NewActiveMotors()

		rec := sim.NewRecorder()
		rec.AddMetric(energy)
		rec.AddMetric(motors)
		rec.AddMetric(metrics.NewStability(fallFloor))
		rec.AddObserver(&progress{logger: logger, every: int(cfg.FrameRate)})
		trace, err := rec.Record(ctx, registry.Create(numbers[0]), simCfg)
		if err != nil {
			return err
		}
		trace.Metrics["peak_kinetic_energy"] = energy.Peak()
		trace.Metrics["motor_frames"] = float64(motors.Frames())
		traces = []*sim.Trace{trace}
	} else {
		traces, err = sim.NewEnsemble(registry, runMetrics).Run(ctx, numbers, simCfg)
		if err != nil {
			return err
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)

	for _, trace := range traces {
		runID, err := st.Save(registry.Name(trace.Machine), trace)
		if err != nil {
			return err
		}
		logger.Printf("saved machine %d as %s", trace.Machine, runID)

		fmt.Printf("\nrun id: %s\n", runID)
		fmt.Printf("machine: %d (%s)\n", trace.Machine, registry.Name(trace.Machine))
		fmt.Printf("frames: %d\n", trace.Len())
		fmt.Println("metrics:")
		printMetrics(os.Stdout, trace.Metrics)
	}

	return nil
}

// progress logs the machine clock once per simulated second.
type progress struct {
	logger *log.Logger
	every  int
}

func (p *progress) OnFrame(m *machine.Machine) {
	if p.every > 0 && m.Frame()%p.every == 0 {
		p.logger.Printf("machine %d: frame %d, t=%.1fs", m.Number(), m.Frame(), m.Time())
	}
}

func printMetrics(w io.Writer, values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, values[name])
	}
}

func seekFrame(cmd *cobra.Command, args []string) error {
	frame, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid frame %q: %w", args[0], err)
	}

	cfg, registry, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sys := newSystem(cfg, registry)
	if err := sys.Seek(ctx, frame); err != nil {
		return err
	}

	fmt.Printf("machine %d (%s) at frame %d, t=%.3fs\n\n",
		sys.MachineNumber(), registry.Name(sys.MachineNumber()), sys.Frame(), sys.MachineTime())
	return writeSnapshot(os.Stdout, sys.Machine().Snapshot())
}

func writeSnapshot(out io.Writer, snap machine.Snapshot) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tKIND\tX\tY\tROT\tPHASE\tSPEED\tACTIVE")
	for _, c := range snap.Components {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.4f\t%.4f\t%.4f\t%t\n",
			c.Name, c.Kind, c.X, c.Y, c.Rotation, c.Phase, c.Speed, c.Active)
	}
	return w.Flush()
}

func drawFrame(cmd *cobra.Command, args []string) error {
	frame, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid frame %q: %w", args[0], err)
	}

	cfg, registry, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sys := newSystem(cfg, registry)

	if braille {
		sys.SetLocation(0, 0)
		sys.SetFrame(frame - cfg.StartFrame)
		canvas := viz.NewCanvas(width/8, height/16)
		viz.Render(canvas, sys, viz.DefaultView)
		fmt.Println(canvas.String())
		return nil
	}

	d := sim.NewDrawable(registry.Name(cfg.Machine), sys)
	d.LoadState(cfg.DrawableState())
	if statePath != "" {
		st, err := config.LoadState(statePath)
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}
		d.LoadState(st)
	}

	x, y := cfg.Location.X, cfg.Location.Y
	if x == 0 && y == 0 {
		x, y = float64(width)/2, float64(height)-60
	}
	d.SetPosition(x, y)
	d.SetTimelineFrame(frame)

	svg := export.NewSVG(width, height)
	svg.SetImages(!noImages)
	svg.SetBackground(bgColor)
	d.Draw(svg)
	if err := svg.Save(outPath); err != nil {
		return err
	}

	fmt.Printf("machine %d frame %d (timeline %d) written to %s\n",
		d.MachineNumber(), d.MachineFrame(frame), frame, outPath)
	return nil
}

func loadTrace(st *storage.Store, runID string) (*storage.RunMetadata, *sim.Trace, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	snaps, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}

	if len(snaps) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}

	return meta, &sim.Trace{
		Machine:   meta.Machine,
		FrameRate: meta.FrameRate,
		Snapshots: snaps,
		Metrics:   meta.Metrics,
	}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	meta, trace, err := loadTrace(storage.New(cfg.DataDir), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("machine: %d (%s)\n", meta.Machine, meta.Name)
	fmt.Printf("frames: %d\n\n", trace.Len())

	names := []string{component}
	if component == "" {
		maxPlots := 4
		names = meta.Components
		if len(names) > maxPlots {
			names = names[:maxPlots]
		}
	}

	for _, name := range names {
		data, err := trace.Series(name, field)
		if err != nil {
			return err
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s %s vs frame", name, field)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath != "" && component != "" {
		xs, err := trace.Series(component, "x")
		if err != nil {
			return err
		}
		ys, err := trace.Series(component, "y")
		if err != nil {
			return err
		}
		pts := make([]gfx.Point, len(xs))
		for i := range xs {
			pts[i] = gfx.Pt(xs[i], ys[i])
		}
		if err := os.WriteFile(svgPath, []byte(export.TrajectoryToSVG(pts, 800, 600, "#00ff88")), 0644); err != nil {
			return err
		}
		fmt.Printf("path written to %s\n", svgPath)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, registry, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sys := newSystem(cfg, registry)
	s := viz.NewScrubber(sys, registry.Numbers())
	s.SetTheme(theme)
	s.SetHorizon(cfg.Frames)

	p := tea.NewProgram(s, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMACHINE\tNAME\tTIME\tFRAMES\tRATE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%.0f\n",
			run.ID,
			run.Machine,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.FrameRate,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	meta, trace, err := loadTrace(storage.New(cfg.DataDir), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("machine: %d (%s)\n", meta.Machine, meta.Name)
	fmt.Printf("recorded: %s\n", meta.Timestamp.Format(time.RFC3339))
	fmt.Printf("frames: %d at %.0f fps\n", meta.Frames, meta.FrameRate)
	fmt.Println("metrics:")
	printMetrics(os.Stdout, meta.Metrics)

	last := trace.Snapshots[trace.Len()-1]
	fmt.Printf("\nframe %d, t=%.3fs\n", last.Frame, last.Time)
	return writeSnapshot(os.Stdout, last)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	_, trace, err := loadTrace(storage.New(cfg.DataDir), args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return storage.WriteJSON(os.Stdout, trace)
	}
	if err := storage.ExportJSON(outPath, trace); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func writeDefaults(cmd *cobra.Command, args []string) error {
	path := "machinesim.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("config written to %s\n", path)

	if statePath != "" {
		if err := config.SaveState(statePath, cfg.DrawableState()); err != nil {
			return err
		}
		fmt.Printf("drawable state written to %s\n", statePath)
	}
	return nil
}
