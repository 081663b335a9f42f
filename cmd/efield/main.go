package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/grid"
	"github.com/san-kum/efield/internal/logging"
	"github.com/san-kum/efield/internal/streamline"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	// overrides, applied only when set on the command line
	separation  float64
	charge      float64
	coulombK    float64
	minDistance float64
	integrator  string
	seeds       int
	steps       int
	stepLength  float64
	seedRadius  float64
	gridSize    int
	spacing     float64
	width       int
	height      int
	scale       float64
	theme       string

	logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "efield",
		Short:        "electrostatic field lines, vectors and summaries",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		// Default to the interactive viewer when no command given
		RunE: runView,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".efield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	pf.Float64Var(&separation, "separation", config.DefaultSeparation, "dipole separation (replaces charges)")
	pf.Float64Var(&charge, "charge", config.DefaultCharge, "dipole charge magnitude (replaces charges)")
	pf.Float64Var(&coulombK, "k", field.DefaultK, "coulomb constant")
	pf.Float64Var(&minDistance, "min-distance", field.DefaultMinDistance, "distance floor")
	pf.StringVar(&integrator, "integrator", config.DefaultIntegrator, "line integrator (euler, rk4)")
	pf.IntVar(&seeds, "seeds", streamline.DefaultSeedsPerCharge, "field lines per charge")
	pf.IntVar(&steps, "steps", streamline.DefaultStepsPerLine, "points per field line")
	pf.Float64Var(&stepLength, "step-length", streamline.DefaultStepLength, "integration step length")
	pf.Float64Var(&seedRadius, "seed-radius", streamline.DefaultSeedRadius, "seed sphere radius")
	pf.IntVar(&gridSize, "grid-size", grid.DefaultGridSize, "grid cells per axis")
	pf.Float64Var(&spacing, "spacing", grid.DefaultSpacing, "grid spacing")
	pf.IntVar(&width, "width", config.DefaultWidth, "image width")
	pf.IntVar(&height, "height", config.DefaultHeight, "image height")
	pf.Float64Var(&scale, "scale", config.DefaultScale, "pixels per unit")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "terminal color theme")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "print flux, net charge and coulomb force",
		Args:  cobra.NoArgs,
		RunE:  runSummary,
	}

	probeCmd := &cobra.Command{
		Use:   "probe [x] [y] [z]",
		Short: "evaluate the field at a point",
		Args:  cobra.ExactArgs(3),
		RunE:  runProbe,
	}

	linesCmd := &cobra.Command{
		Use:   "lines",
		Short: "trace field lines to CSV",
		Args:  cobra.NoArgs,
		RunE:  runLines,
	}
	linesCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "sample the vector grid to CSV",
		Args:  cobra.NoArgs,
		RunE:  runGrid,
	}
	gridCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot field magnitude along the x axis",
		Args:  cobra.NoArgs,
		RunE:  runProfile,
	}
	profileCmd.Flags().Int("points", 80, "samples along the axis")
	profileCmd.Flags().Bool("log", true, "plot log10 of the magnitude")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the field to PNG",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringP("out", "o", "efield.png", "output file")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render field lines to SVG",
		Args:  cobra.NoArgs,
		RunE:  runSVG,
	}
	svgCmd.Flags().StringP("out", "o", "efield.svg", "output file")

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "compute and store a snapshot",
		Args:  cobra.NoArgs,
		RunE:  runSave,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored snapshots",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "show a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [id]",
		Short: "export a snapshot to JSON (computes one if no id given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringP("out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "interactive 3D terminal viewer",
		Args:  cobra.NoArgs,
		RunE:  runView,
	}

	rootCmd.AddCommand(summaryCmd, probeCmd, linesCmd, gridCmd, profileCmd, renderCmd, svgCmd,
		saveCmd, listCmd, showCmd, exportJSONCmd, presetsCmd, initCmd, viewCmd)
	return rootCmd
}

// loadConfig resolves the configuration: preset, then config file, then
// flags explicitly set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Overlay(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("separation") || flags.Changed("charge") {
		sep, q := dipoleOf(cfg)
		if flags.Changed("separation") {
			sep = separation
		}
		if flags.Changed("charge") {
			q = charge
		}
		cfg.Charges = []config.ChargeConfig{{X: sep / 2, Q: q}, {X: -sep / 2, Q: -q}}
	}
	if flags.Changed("k") {
		cfg.CoulombK = coulombK
	}
	if flags.Changed("min-distance") {
		cfg.MinDistance = minDistance
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("seeds") {
		cfg.Tracer.SeedsPerCharge = seeds
	}
	if flags.Changed("steps") {
		cfg.Tracer.StepsPerLine = steps
	}
	if flags.Changed("step-length") {
		cfg.Tracer.StepLength = stepLength
	}
	if flags.Changed("seed-radius") {
		cfg.Tracer.SeedRadius = seedRadius
	}
	if flags.Changed("grid-size") {
		cfg.Grid.Size = gridSize
	}
	if flags.Changed("spacing") {
		cfg.Grid.Spacing = spacing
	}
	if flags.Changed("width") {
		cfg.Render.Width = width
	}
	if flags.Changed("height") {
		cfg.Render.Height = height
	}
	if flags.Changed("scale") {
		cfg.Render.Scale = scale
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config resolved",
		zap.String("preset", preset),
		zap.String("file", configFile),
		zap.Int("charges", len(cfg.Charges)),
		zap.String("integrator", cfg.Integrator))
	return cfg, nil
}

// dipoleOf returns the separation and magnitude of the first two charges,
// falling back to the defaults.
func dipoleOf(cfg *config.Config) (float64, float64) {
	if len(cfg.Charges) < 2 {
		return config.DefaultSeparation, config.DefaultCharge
	}
	a, b := cfg.Charges[0], cfg.Charges[1]
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz), math.Abs(a.Q)
}
