package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/PixelsForGlory/lsystem/internal/config"
	"github.com/PixelsForGlory/lsystem/internal/export"
	"github.com/PixelsForGlory/lsystem/internal/grammar"
	"github.com/PixelsForGlory/lsystem/internal/metrics"
	"github.com/PixelsForGlory/lsystem/internal/storage"
	"github.com/PixelsForGlory/lsystem/internal/viz"
	"github.com/PixelsForGlory/lsystem/turtle"
)

var (
	dataDir     string
	generations int
	seed        int64
	angle       float64
	step        float64
	configFile  string
	// SVG output
	outFile   string
	svgWidth  int
	svgHeight int
	svgColor  string
	svgDots   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lsys",
		Short: "L-system derivation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lsys", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "derive a system and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSystem,
	}
	runCmd.Flags().IntVar(&generations, "generations", 0, "generations to derive")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().Float64Var(&angle, "angle", config.DefaultAngle, "turn angle in degrees")
	runCmd.Flags().Float64Var(&step, "step", config.DefaultStep, "segment length")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-12s axiom=%s angle=%g rules=%d\n", name, cfg.Axiom, cfg.Angle, len(cfg.Rules))
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "render a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-generation growth",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "export a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")
	svgCmd.Flags().StringVar(&svgColor, "color", "#00ff00", "stroke color")
	svgCmd.Flags().BoolVar(&svgDots, "dots", false, "render braille dots instead of strokes")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a system grow generation by generation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&generations, "generations", 0, "generations to derive")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, showCmd, plotCmd, exportCmd, svgCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolve builds the effective configuration: preset name, then config
// file, with changed CLI flags taking precedence over both.
func resolve(cmd *cobra.Command, args []string) (string, *config.Config, error) {
	name := "koch"
	cfg := config.DefaultConfig()

	if len(args) > 0 {
		name = args[0]
		preset := config.GetPreset(name)
		if preset == nil {
			return "", nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		copied := *preset
		cfg = &copied
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return "", nil, fmt.Errorf("failed to load config: %w", err)
		}
		name = "custom"
		cfg = loaded
	}

	if cmd.Flags().Changed("generations") {
		cfg.Generations = generations
	}
	if cmd.Flags().Changed("angle") {
		cfg.Angle = angle
	}
	if cmd.Flags().Changed("step") {
		cfg.Step = step
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	return name, cfg, nil
}

func runSystem(cmd *cobra.Command, args []string) error {
	name, cfg, err := resolve(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	sys, err := cfg.Alphabet().System(cfg.Axiom, cfg.GrammarRules(), rng)
	if err != nil {
		return err
	}

	observers := metrics.Defaults[*turtle.Turtle]()

	fmt.Printf("deriving %s for %d generations...\n", name, cfg.Generations)
	start := time.Now()

	flattened := make([]string, 0, cfg.Generations)
	sizes := make([]float64, 0, cfg.Generations)
	for g := 0; g < cfg.Generations; g++ {
		if err := sys.Step(); err != nil {
			return err
		}
		d := sys.Derivation()
		for _, m := range observers {
			m.Observe(d, sys.Generation())
		}
		flattened = append(flattened, grammar.Flatten(d))
		sizes = append(sizes, float64(d.Count()))
	}

	elapsed := time.Since(start)

	results := make(map[string]float64, len(observers))
	for _, m := range observers {
		results[m.Name()] = m.Value()
	}

	runID, err := st.Save(name, cfg.Seed, cfg.Angle, cfg.Step, cfg.Pens, flattened, sizes, results)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("modules: %d\n", sys.Derivation().Count())
	fmt.Println("\nmetrics:")
	for name, val := range results {
		fmt.Printf("  %s: %.4f\n", name, val)
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
	fmt.Fprintln(w, "ID\tSYSTEM\tTIME\tGENERATIONS\tANGLE\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%d\n",
			run.ID,
			run.System,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Generations,
			run.Angle,
			run.Seed,
		)
	}

	return w.Flush()
}

// finalTrace re-parses the last stored generation of a run and traces it.
func finalTrace(st *storage.Store, runID string) (*storage.RunMetadata, []turtle.Segment, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	gens, err := st.LoadGenerations(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(gens) == 0 {
		return nil, nil, fmt.Errorf("run %s has no generations", runID)
	}

	alpha := grammar.Alphabet{Angle: meta.Angle, Step: meta.Step, Pens: meta.Pens}
	d, err := alpha.Parse(gens[len(gens)-1])
	if err != nil {
		return nil, nil, err
	}

	return meta, turtle.Trace(d, turtle.New()), nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, segs, err := finalTrace(st, args[0])
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(80, 24)
	canvas.DrawSegments(segs)

	fmt.Printf("run: %s  system: %s  segments: %d\n\n", meta.ID, meta.System, len(segs))
	fmt.Print(canvas.String())
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	sizes, err := st.LoadSizes(runID)
	if err != nil {
		return err
	}
	if len(sizes) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("system: %s\n", meta.System)
	fmt.Printf("generations: %d\n\n", len(sizes))

	graph := asciigraph.Plot(sizes,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("modules per generation"),
	)
	fmt.Println(graph)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func svgRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, segs, err := finalTrace(st, args[0])
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return fmt.Errorf("nothing to draw: the final generation has no drawing modules")
	}

	var svg string
	if svgDots {
		canvas := viz.NewCanvas(svgWidth/8, svgHeight/16)
		canvas.DrawSegments(segs)
		svg = export.CanvasToSVG(canvas, 4)
	} else {
		svg = export.SegmentsToSVG(segs, svgWidth, svgHeight, svgColor)
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(outFile, []byte(svg), 0644)
}

func runLive(cmd *cobra.Command, args []string) error {
	name, cfg, err := resolve(cmd, args)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(name, cfg, cfg.Seed)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
