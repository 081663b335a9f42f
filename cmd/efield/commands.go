package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/export"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/render"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/storage"
	"github.com/san-kum/efield/internal/summary"
	"github.com/san-kum/efield/internal/viz"
)

func newBuilder(cmd *cobra.Command) (*scene.Builder, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	b, err := scene.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return b, cfg, nil
}

func refresh(cmd *cobra.Command) (*scene.Snapshot, *config.Config, error) {
	b, cfg, err := newBuilder(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	snap, err := b.Refresh(ctx)
	if err != nil {
		return nil, nil, needsPair(cmd, err)
	}
	return snap, cfg, nil
}

// needsPair names the failing command when err is ErrInsufficientCharges.
func needsPair(cmd *cobra.Command, err error) error {
	if !errors.Is(err, field.ErrInsufficientCharges) {
		return err
	}
	return fmt.Errorf("%s needs at least two charges; probe, lines, grid and profile work with one: %w",
		cmd.Name(), err)
}

// output returns the --out file, or stdout when it is empty.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// extent is the half-width of a cube around the origin holding every charge
// and the sample lattice, plus a margin.
func extent(cfg *config.Config, charges field.ChargeSet) float64 {
	e := float64(cfg.Grid.Size) / 2 * cfg.Grid.Spacing
	lo, hi := charges.Bounds()
	for _, v := range []float64{lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z} {
		e = math.Max(e, math.Abs(v))
	}
	return e + 1
}

func printSummary(w io.Writer, s summary.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range s.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Label, e.Value, e.Unit)
	}
	return tw.Flush()
}

func runSummary(cmd *cobra.Command, args []string) error {
	b, _, err := newBuilder(cmd)
	if err != nil {
		return err
	}
	s, err := b.Summary()
	if err != nil {
		return needsPair(cmd, err)
	}
	return printSummary(cmd.OutOrStdout(), s)
}

func runProbe(cmd *cobra.Command, args []string) error {
	var p [3]float64
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", a, err)
		}
		p[i] = v
	}
	b, _, err := newBuilder(cmd)
	if err != nil {
		return err
	}

	at := field.Vec3{X: p[0], Y: p[1], Z: p[2]}
	e := b.Evaluator().At(at, b.Charges())
	v := b.Evaluator().Potential(at, b.Charges())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "point\t(%g, %g, %g)\n", at.X, at.Y, at.Z)
	fmt.Fprintf(w, "E\t(%s, %s, %s)\tN/C\n", summary.Scientific(e.X), summary.Scientific(e.Y), summary.Scientific(e.Z))
	fmt.Fprintf(w, "|E|\t%s\tN/C\n", summary.Scientific(e.Length()))
	fmt.Fprintf(w, "V\t%s\tV\n", summary.Scientific(v))
	return w.Flush()
}

func runLines(cmd *cobra.Command, args []string) error {
	b, _, err := newBuilder(cmd)
	if err != nil {
		return err
	}
	start := time.Now()
	lines := b.Tracer().Trace(b.Charges())
	logger.Debug("traced", zap.Int("lines", len(lines)), zap.Duration("elapsed", time.Since(start)))

	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if err := export.WriteLinesCSV(w, lines); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func runGrid(cmd *cobra.Command, args []string) error {
	b, _, err := newBuilder(cmd)
	if err != nil {
		return err
	}
	samples := b.Sampler().Sample(b.Charges())
	logger.Debug("sampled", zap.Int("samples", len(samples)), zap.Int("nodes", b.Sampler().Config().NodeCount()))

	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if err := export.WriteSamplesCSV(w, samples); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func runProfile(cmd *cobra.Command, args []string) error {
	b, cfg, err := newBuilder(cmd)
	if err != nil {
		return err
	}
	n, _ := cmd.Flags().GetInt("points")
	useLog, _ := cmd.Flags().GetBool("log")
	if n < 2 {
		return fmt.Errorf("points must be at least 2, got %d", n)
	}

	half := extent(cfg, b.Charges())
	data := make([]float64, n)
	for i := range data {
		x := -half + 2*half*float64(i)/float64(n-1)
		m := b.Evaluator().At(field.Vec3{X: x}, b.Charges()).Length()
		if useLog {
			m = math.Log10(math.Max(m, 1e-30))
		}
		data[i] = m
	}

	caption := fmt.Sprintf("|E| along x, %.1f to %.1f", -half, half)
	if useLog {
		caption = "log10 " + caption
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func renderOptions(cfg *config.Config) render.Options {
	opts := render.DefaultOptions()
	opts.Width = cfg.Render.Width
	opts.Height = cfg.Render.Height
	opts.Scale = cfg.Render.Scale
	opts.Spacing = cfg.Grid.Spacing
	return opts
}

func runRender(cmd *cobra.Command, args []string) error {
	snap, cfg, err := refresh(cmd)
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("out")
	if err := render.SavePNG(path, snap, renderOptions(cfg)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d lines, %d arrows)\n", path, len(snap.Lines), len(snap.Samples))
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	snap, cfg, err := refresh(cmd)
	if err != nil {
		return err
	}
	svg := export.LinesSVG(snap, cfg.Render.Width, cfg.Render.Height, string(viz.GetTheme(cfg.Render.Theme).Line))
	if svg == "" {
		return fmt.Errorf("no field lines to draw")
	}
	path, _ := cmd.Flags().GetString("out")
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	snap, _, err := refresh(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(snap)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "snapshot id: %s\n", id)
	fmt.Fprintf(out, "lines: %d  samples: %d\n\n", len(snap.Lines), len(snap.Samples))
	return printSummary(out, snap.Summary)
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCHARGES\tLINES\tSAMPLES\tFLUX\tFORCE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Charges),
			run.Lines,
			run.Samples,
			summary.Scientific(run.Summary.Flux),
			summary.Scientific(run.Summary.CoulombForce),
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	snap, err := storage.New(dataDir).LoadSnapshot(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "snapshot: %s\n", snap.ID)
	fmt.Fprintf(out, "created: %s\n", snap.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "lines: %d  samples: %d\n\n", len(snap.Lines), len(snap.Samples))

	th := viz.GetTheme(cfg.Render.Theme)
	c := viz.NewCanvas(60, 20)
	viz.DrawSnapshot(c, viz.NewCamera(extent(cfg, snap.Charges)), snap, viz.Layers{Lines: true, Charges: true}, th, cfg.Grid.Spacing)
	fmt.Fprintln(out, c.String())
	fmt.Fprintln(out, viz.ChargePanel(snap.Charges, th, 40))
	fmt.Fprintln(out, viz.SummaryPanel(snap.Summary, th, 40))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	var snap *scene.Snapshot
	var err error
	if len(args) == 1 {
		snap, err = storage.New(dataDir).LoadSnapshot(args[0])
	} else {
		snap, _, err = refresh(cmd)
	}
	if err != nil {
		return err
	}

	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if err := export.WriteJSON(w, snap); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCHARGES\tNET")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		net := 0.0
		for _, c := range p.Charges {
			net += c.Q
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(p.Charges), summary.Scientific(net))
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	b, cfg, err := newBuilder(cmd)
	if err != nil {
		return err
	}
	if _, err := b.Summary(); err != nil {
		return needsPair(cmd, err)
	}
	return viz.RunViewer(b, viz.ViewerOptions{
		Evaluator: b.Evaluator(),
		Extent:    extent(cfg, b.Charges()),
		Spacing:   cfg.Grid.Spacing,
		Theme:     cfg.Render.Theme,
	})
}
