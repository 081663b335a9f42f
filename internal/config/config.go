package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/grid"
	"github.com/san-kum/efield/internal/integrators"
	"github.com/san-kum/efield/internal/streamline"
	"github.com/san-kum/efield/internal/summary"
)

const (
	DefaultSeparation = 6.0
	DefaultCharge     = 1e-9
	DefaultIntegrator = "euler"
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultScale      = 40.0
	DefaultTheme      = "cyberpunk"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Charges     []ChargeConfig `yaml:"charges"`
	CoulombK    float64        `yaml:"coulomb_k"`
	MinDistance float64        `yaml:"min_distance"`
	Integrator  string         `yaml:"integrator"`
	Tracer      TracerConfig   `yaml:"tracer"`
	Grid        GridConfig     `yaml:"grid"`
	Summary     SummaryConfig  `yaml:"summary"`
	Render      RenderConfig   `yaml:"render"`
}

type ChargeConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
	Q float64 `yaml:"q"`
}

type TracerConfig struct {
	SeedsPerCharge int     `yaml:"seeds_per_charge"`
	StepsPerLine   int     `yaml:"steps_per_line"`
	StepLength     float64 `yaml:"step_length"`
	SeedRadius     float64 `yaml:"seed_radius"`
}

type GridConfig struct {
	Size        int     `yaml:"size"`
	Spacing     float64 `yaml:"spacing"`
	MinStrength float64 `yaml:"min_strength"`
	MaxStrength float64 `yaml:"max_strength"`
	Epsilon     float64 `yaml:"epsilon"`
	WeakColor   string  `yaml:"weak_color"`
	StrongColor string  `yaml:"strong_color"`
}

type SummaryConfig struct {
	ReferenceRadius float64 `yaml:"reference_radius"`
}

type RenderConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
	Theme  string  `yaml:"theme"`
}

func DefaultConfig() *Config {
	h := DefaultSeparation / 2
	return &Config{
		Charges: []ChargeConfig{
			{X: h, Q: DefaultCharge},
			{X: -h, Q: -DefaultCharge},
		},
		CoulombK:    field.DefaultK,
		MinDistance: field.DefaultMinDistance,
		Integrator:  DefaultIntegrator,
		Tracer: TracerConfig{
			SeedsPerCharge: streamline.DefaultSeedsPerCharge,
			StepsPerLine:   streamline.DefaultStepsPerLine,
			StepLength:     streamline.DefaultStepLength,
			SeedRadius:     streamline.DefaultSeedRadius,
		},
		Grid: GridConfig{
			Size:        grid.DefaultGridSize,
			Spacing:     grid.DefaultSpacing,
			MinStrength: grid.DefaultMinStrength,
			MaxStrength: grid.DefaultMaxStrength,
			Epsilon:     grid.DefaultEpsilon,
			WeakColor:   "#0000ff",
			StrongColor: "#ff0000",
		},
		Summary: SummaryConfig{ReferenceRadius: summary.DefaultReferenceRadius},
		Render: RenderConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Scale:  DefaultScale,
			Theme:  DefaultTheme,
		},
	}
}

func Load(path string) (*Config, error) {
	return Overlay(path, DefaultConfig())
}

// Overlay reads path on top of a copy of base; keys absent from the file
// keep base's values. A charges list in the file replaces base's entirely.
func Overlay(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Charges = append([]ChargeConfig(nil), c.Charges...)
	return &out
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case len(c.Charges) == 0:
		return invalid("at least one charge is required")
	case c.CoulombK <= 0:
		return invalid("coulomb_k must be positive")
	case c.MinDistance < 0:
		return invalid("min_distance must not be negative")
	case c.Tracer.SeedsPerCharge < 0:
		return invalid("tracer.seeds_per_charge must not be negative")
	case c.Tracer.StepsPerLine <= 0:
		return invalid("tracer.steps_per_line must be positive")
	case c.Tracer.StepLength <= 0:
		return invalid("tracer.step_length must be positive")
	case c.Tracer.SeedRadius <= 0:
		return invalid("tracer.seed_radius must be positive")
	case c.Grid.Size < 0:
		return invalid("grid.size must not be negative")
	case c.Grid.Spacing <= 0:
		return invalid("grid.spacing must be positive")
	case c.Grid.MaxStrength <= c.Grid.MinStrength:
		return invalid("grid.max_strength must exceed grid.min_strength")
	case c.Grid.Epsilon < 0:
		return invalid("grid.epsilon must not be negative")
	case !grid.IsHexColor(c.Grid.WeakColor):
		return invalid("grid.weak_color %q is not a hex colour", c.Grid.WeakColor)
	case !grid.IsHexColor(c.Grid.StrongColor):
		return invalid("grid.strong_color %q is not a hex colour", c.Grid.StrongColor)
	case c.Summary.ReferenceRadius <= 0:
		return invalid("summary.reference_radius must be positive")
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return invalid("render size must be positive")
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return invalid("%v", err)
	}
	if _, err := c.ChargeSet(); err != nil {
		return invalid("%v", err)
	}
	return nil
}

func (c *Config) ChargeSet() (field.ChargeSet, error) {
	charges := make([]field.PointCharge, len(c.Charges))
	for i, ch := range c.Charges {
		charges[i] = field.PointCharge{
			Position: field.Vec3{X: ch.X, Y: ch.Y, Z: ch.Z},
			Value:    ch.Q,
		}
	}
	return field.NewChargeSet(charges...)
}

func (c *Config) Evaluator() field.Evaluator {
	return field.Evaluator{K: c.CoulombK, MinDistance: c.MinDistance}
}

func (c *Config) Stepper() (integrators.Stepper, error) {
	return integrators.New(c.Integrator)
}

func (c *Config) TracerConfig() streamline.Config {
	return streamline.Config{
		SeedsPerCharge: c.Tracer.SeedsPerCharge,
		StepsPerLine:   c.Tracer.StepsPerLine,
		StepLength:     c.Tracer.StepLength,
		SeedRadius:     c.Tracer.SeedRadius,
	}
}

func (c *Config) GridConfig() grid.Config {
	return grid.Config{
		GridSize:    c.Grid.Size,
		Spacing:     c.Grid.Spacing,
		MinStrength: c.Grid.MinStrength,
		MaxStrength: c.Grid.MaxStrength,
		Epsilon:     c.Grid.Epsilon,
		WeakColor:   gg.Hex(c.Grid.WeakColor),
		StrongColor: gg.Hex(c.Grid.StrongColor),
	}
}

func (c *Config) SummaryConfig() summary.Config {
	return summary.Config{ReferenceRadius: c.Summary.ReferenceRadius}
}
