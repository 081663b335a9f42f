// Package render rasterizes a field snapshot to PNG, projected onto the XY
// plane.
package render

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/grid"
	"github.com/san-kum/efield/internal/scene"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultScale  = 40.0
)

type Options struct {
	Width, Height int
	// Scale is pixels per world unit.
	Scale float64
	// Spacing is the grid lattice spacing; arrows are drawn at most this long.
	Spacing float64

	Background gg.RGBA
	LineColor  gg.RGBA
	Positive   gg.RGBA
	Negative   gg.RGBA
	LineWidth  float64
	ChargeSize float64

	Lines, Grid, Charges bool
}

func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Scale:      DefaultScale,
		Spacing:    1,
		Background: gg.Hex("#0a0a0a"),
		LineColor:  gg.RGBA{R: 1, G: 1, B: 1, A: 0.6},
		Positive:   gg.Hex("#ff0000"),
		Negative:   gg.Hex("#0000ff"),
		LineWidth:  1,
		ChargeSize: 6,
		Lines:      true,
		Grid:       true,
		Charges:    true,
	}
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("render: invalid size %dx%d", o.Width, o.Height)
	}
	if o.Scale <= 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return fmt.Errorf("render: invalid scale %v", o.Scale)
	}
	return nil
}

// ToScreen maps a world point to pixel coordinates. Z is dropped.
func (o Options) ToScreen(p field.Vec3) (float64, float64) {
	return float64(o.Width)/2 + p.X*o.Scale, float64(o.Height)/2 - p.Y*o.Scale
}

// Draw paints snap onto dc: background, grid arrows, field lines, then
// charges on top.
func Draw(dc *gg.Context, snap *scene.Snapshot, opts Options) error {
	dc.ClearWithColor(opts.Background)
	if snap == nil {
		return nil
	}
	if opts.Grid {
		if err := drawArrows(dc, snap, opts); err != nil {
			return err
		}
	}
	if opts.Lines {
		if err := drawLines(dc, snap, opts); err != nil {
			return err
		}
	}
	if opts.Charges {
		return drawCharges(dc, snap, opts)
	}
	return nil
}

func drawLines(dc *gg.Context, snap *scene.Snapshot, opts Options) error {
	dc.SetColor(opts.LineColor.Color())
	dc.SetLineWidth(opts.LineWidth)
	for _, l := range snap.Lines {
		if len(l.Points) < 2 {
			continue
		}
		x, y := opts.ToScreen(l.Points[0])
		dc.MoveTo(x, y)
		for _, p := range l.Points[1:] {
			x, y = opts.ToScreen(p)
			dc.LineTo(x, y)
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke line: %w", err)
		}
	}
	return nil
}

func drawArrows(dc *gg.Context, snap *scene.Snapshot, opts Options) error {
	dc.SetLineWidth(opts.LineWidth)
	for _, s := range nearestPlane(snap.Samples) {
		tip := s.Position.Add(s.Direction.Scale(s.Length * opts.Spacing * 0.8))
		x0, y0 := opts.ToScreen(s.Position)
		x1, y1 := opts.ToScreen(tip)

		dc.SetColor(s.Color.Color())
		dc.MoveTo(x0, y0)
		dc.LineTo(x1, y1)

		// head: two barbs at 150 degrees either side of the shaft
		ang := math.Atan2(y1-y0, x1-x0)
		head := math.Hypot(x1-x0, y1-y0) * 0.3
		for _, da := range []float64{math.Pi * 5 / 6, -math.Pi * 5 / 6} {
			dc.MoveTo(x1, y1)
			dc.LineTo(x1+head*math.Cos(ang+da), y1+head*math.Sin(ang+da))
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke arrow: %w", err)
		}
	}
	return nil
}

// nearestPlane keeps the samples of the z layer closest to z=0. Odd grid
// sizes have no z=0 layer; the tie between ±spacing/2 goes to the positive
// side.
func nearestPlane(samples []grid.Sample) []grid.Sample {
	if len(samples) == 0 {
		return nil
	}
	best := samples[0].Position.Z
	for _, s := range samples[1:] {
		z := s.Position.Z
		if math.Abs(z) < math.Abs(best) || (math.Abs(z) == math.Abs(best) && z > best) {
			best = z
		}
	}
	out := make([]grid.Sample, 0, len(samples))
	for _, s := range samples {
		if s.Position.Z == best {
			out = append(out, s)
		}
	}
	return out
}

func drawCharges(dc *gg.Context, snap *scene.Snapshot, opts Options) error {
	for _, c := range snap.Charges.Charges() {
		col := opts.Positive
		if c.Value < 0 {
			col = opts.Negative
		}
		x, y := opts.ToScreen(c.Position)
		dc.SetColor(col.Color())
		dc.DrawCircle(x, y, opts.ChargeSize)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("fill charge: %w", err)
		}
	}
	return nil
}

// PNG renders snap and writes it to w as PNG.
func PNG(w io.Writer, snap *scene.Snapshot, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()

	if err := Draw(dc, snap, opts); err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG renders snap to a PNG file at path.
func SavePNG(path string, snap *scene.Snapshot, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()

	if err := Draw(dc, snap, opts); err != nil {
		return err
	}
	return dc.SavePNG(path)
}
