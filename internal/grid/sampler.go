// Package grid samples the field on a uniform cubic lattice and maps each
// magnitude to an arrow length and colour for display.
package grid

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/parallel"
)

const (
	DefaultGridSize    = 10
	DefaultSpacing     = 1.0
	DefaultMinStrength = 0.1
	DefaultMaxStrength = 1.0
	DefaultEpsilon     = 1e-10
)

var (
	DefaultWeakColor   = gg.Hex("#0000ff")
	DefaultStrongColor = gg.Hex("#ff0000")
)

type Config struct {
	GridSize    int
	Spacing     float64
	MinStrength float64
	MaxStrength float64
	Epsilon     float64
	WeakColor   gg.RGBA
	StrongColor gg.RGBA
}

func DefaultConfig() Config {
	return Config{
		GridSize:    DefaultGridSize,
		Spacing:     DefaultSpacing,
		MinStrength: DefaultMinStrength,
		MaxStrength: DefaultMaxStrength,
		Epsilon:     DefaultEpsilon,
		WeakColor:   DefaultWeakColor,
		StrongColor: DefaultStrongColor,
	}
}

// Sample is one surviving lattice node.
type Sample struct {
	Position  field.Vec3
	Field     field.Vec3
	Direction field.Vec3
	Magnitude float64
	Length    float64
	Color     gg.RGBA
}

// ScaledLength compresses a magnitude logarithmically into [MinStrength, MaxStrength].
func (c Config) ScaledLength(magnitude float64) float64 {
	return clamp(math.Log10(magnitude*10), c.MinStrength, c.MaxStrength)
}

// ColorFor blends WeakColor towards StrongColor by the raw magnitude's position
// in [MinStrength, MaxStrength]. The log scale of ScaledLength is not applied.
func (c Config) ColorFor(magnitude float64) gg.RGBA {
	span := c.MaxStrength - c.MinStrength
	var t float64
	switch {
	case span > 0:
		t = clamp((magnitude-c.MinStrength)/span, 0, 1)
	case magnitude >= c.MaxStrength:
		t = 1
	}
	return c.WeakColor.Lerp(c.StrongColor, t)
}

// Coords returns the GridSize+1 lattice coordinates along one axis, centered on 0.
func (c Config) Coords() []float64 {
	if c.GridSize < 0 {
		return nil
	}
	coords := make([]float64, c.GridSize+1)
	half := float64(c.GridSize) / 2
	for n := range coords {
		coords[n] = (float64(n) - half) * c.Spacing
	}
	return coords
}

// NodeCount is the number of lattice nodes visited, before filtering.
func (c Config) NodeCount() int {
	if c.GridSize < 0 {
		return 0
	}
	n := c.GridSize + 1
	return n * n * n
}

type Sampler struct {
	eval field.Evaluator
	cfg  Config
}

func NewSampler(eval field.Evaluator, cfg Config) *Sampler {
	return &Sampler{eval: eval, cfg: cfg}
}

func (s *Sampler) Config() Config { return s.cfg }

// Sample walks the lattice in x, y, z order and emits one Sample per node whose
// field magnitude is at least Epsilon. Weaker nodes are skipped, not zeroed.
func (s *Sampler) Sample(charges field.ChargeSet) []Sample {
	coords := s.cfg.Coords()
	planes := make([][]Sample, len(coords))
	parallel.For(len(coords), 1, func(start, end int) {
		for i := start; i < end; i++ {
			planes[i] = s.plane(coords[i], coords, charges)
		}
	})

	samples := make([]Sample, 0, s.cfg.NodeCount())
	for _, pl := range planes {
		samples = append(samples, pl...)
	}
	return samples
}

// plane samples the y-z slice at x.
func (s *Sampler) plane(x float64, coords []float64, charges field.ChargeSet) []Sample {
	out := make([]Sample, 0, len(coords)*len(coords))
	for _, y := range coords {
		for _, z := range coords {
			if sample, ok := s.At(field.Vec3{X: x, Y: y, Z: z}, charges); ok {
				out = append(out, sample)
			}
		}
	}
	return out
}

// At evaluates a single node. ok is false when the magnitude is below Epsilon.
func (s *Sampler) At(p field.Vec3, charges field.ChargeSet) (Sample, bool) {
	e := s.eval.At(p, charges)
	mag := e.Length()
	if mag < s.cfg.Epsilon {
		return Sample{}, false
	}
	return Sample{
		Position:  p,
		Field:     e,
		Direction: e.Normalize(),
		Magnitude: mag,
		Length:    s.cfg.ScaledLength(mag),
		Color:     s.cfg.ColorFor(mag),
	}, true
}

// Tip returns the end point of the sample's display arrow.
func (s Sample) Tip() field.Vec3 {
	return s.Position.Add(s.Direction.Scale(s.Length))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
