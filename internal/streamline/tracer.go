// Package streamline traces field lines by fixed-step forward integration
// from seeds placed on small spheres around each charge.
package streamline

import (
	"math"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/integrators"
	"github.com/san-kum/efield/internal/parallel"
)

const (
	DefaultSeedsPerCharge = 20
	DefaultStepsPerLine   = 100
	DefaultStepLength     = 0.2
	DefaultSeedRadius     = 0.5

	minLinesPerWorker = 8
)

type Config struct {
	SeedsPerCharge int
	StepsPerLine   int
	StepLength     float64
	SeedRadius     float64
}

func DefaultConfig() Config {
	return Config{
		SeedsPerCharge: DefaultSeedsPerCharge,
		StepsPerLine:   DefaultStepsPerLine,
		StepLength:     DefaultStepLength,
		SeedRadius:     DefaultSeedRadius,
	}
}

// Line is one traced polyline. Charge is the index of the charge it was seeded from.
type Line struct {
	Charge int
	Seed   field.Vec3
	Points []field.Vec3
}

// Tracer holds no state between calls; Trace may be called concurrently.
type Tracer struct {
	eval    field.Evaluator
	cfg     Config
	stepper integrators.Stepper
}

// NewTracer returns a tracer using stepper, or forward Euler when stepper is nil.
func NewTracer(eval field.Evaluator, cfg Config, stepper integrators.Stepper) *Tracer {
	if stepper == nil {
		stepper = integrators.NewEuler()
	}
	return &Tracer{eval: eval, cfg: cfg, stepper: stepper}
}

func (t *Tracer) Config() Config { return t.cfg }

// Seeds distributes n points over a sphere of the given radius around center
// using the spiral parametrization phi = acos(-1 + 2i/n), theta = sqrt(n*pi)*phi.
// Coordinates follow the y-up spherical convention.
func Seeds(center field.Vec3, n int, radius float64) []field.Vec3 {
	seeds := make([]field.Vec3, n)
	for i := 0; i < n; i++ {
		phi := math.Acos(-1 + 2*float64(i)/float64(n))
		theta := math.Sqrt(float64(n)*math.Pi) * phi
		sinPhi := math.Sin(phi)
		seeds[i] = center.Add(field.Vec3{
			X: radius * sinPhi * math.Sin(theta),
			Y: radius * math.Cos(phi),
			Z: radius * sinPhi * math.Cos(theta),
		})
	}
	return seeds
}

// Trace returns SeedsPerCharge lines for every charge, ordered by charge then
// seed, each holding exactly StepsPerLine points.
func (t *Tracer) Trace(charges field.ChargeSet) []Line {
	if t.cfg.SeedsPerCharge <= 0 {
		return []Line{}
	}
	lines := make([]Line, 0, charges.Len()*t.cfg.SeedsPerCharge)
	for ci := 0; ci < charges.Len(); ci++ {
		for _, seed := range Seeds(charges.At(ci).Position, t.cfg.SeedsPerCharge, t.cfg.SeedRadius) {
			lines = append(lines, Line{Charge: ci, Seed: seed})
		}
	}
	parallel.For(len(lines), minLinesPerWorker, func(start, end int) {
		for i := start; i < end; i++ {
			lines[i].Points = t.TraceFrom(lines[i].Seed, charges)
		}
	})
	return lines
}

// TraceFrom integrates a single line starting at seed. The current point is
// recorded before each step, so the first point is the seed itself.
func (t *Tracer) TraceFrom(seed field.Vec3, charges field.ChargeSet) []field.Vec3 {
	n := t.cfg.StepsPerLine
	if n < 0 {
		n = 0
	}
	dir := func(p field.Vec3) field.Vec3 {
		return t.eval.At(p, charges).Normalize()
	}

	points := make([]field.Vec3, n)
	p := seed
	for i := 0; i < n; i++ {
		points[i] = p
		p = t.stepper.Step(dir, p, t.cfg.StepLength)
	}
	return points
}

// ArcLength returns the summed segment length of the line.
func (l Line) ArcLength() float64 {
	total := 0.0
	for i := 1; i < len(l.Points); i++ {
		total += l.Points[i].Distance(l.Points[i-1])
	}
	return total
}
