// Package scene holds the explicit state for one field configuration and
// rebuilds every derived output as a single immutable Snapshot.
package scene

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/grid"
	"github.com/san-kum/efield/internal/streamline"
	"github.com/san-kum/efield/internal/summary"
)

// Snapshot is the complete output of one refresh. It is never mutated after
// Refresh returns; callers replace it wholesale.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Charges   field.ChargeSet
	Lines     []streamline.Line
	Samples   []grid.Sample
	Summary   summary.Summary
}

// Builder owns the charge set and the configured components. It carries no
// mutable state, so Refresh is safe to call concurrently.
type Builder struct {
	charges    field.ChargeSet
	eval       field.Evaluator
	tracer     *streamline.Tracer
	sampler    *grid.Sampler
	summaryCfg summary.Config
	logger     *zap.Logger
	now        func() time.Time
}

// New validates cfg and wires a Builder from it. A nil logger discards output.
func New(cfg *config.Config, logger *zap.Logger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	charges, err := cfg.ChargeSet()
	if err != nil {
		return nil, err
	}
	stepper, err := cfg.Stepper()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	eval := cfg.Evaluator()
	return &Builder{
		charges:    charges,
		eval:       eval,
		tracer:     streamline.NewTracer(eval, cfg.TracerConfig(), stepper),
		sampler:    grid.NewSampler(eval, cfg.GridConfig()),
		summaryCfg: cfg.SummaryConfig(),
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (b *Builder) Charges() field.ChargeSet      { return b.charges }
func (b *Builder) Evaluator() field.Evaluator    { return b.eval }
func (b *Builder) Tracer() *streamline.Tracer    { return b.tracer }
func (b *Builder) Sampler() *grid.Sampler        { return b.sampler }
func (b *Builder) SummaryConfig() summary.Config { return b.summaryCfg }

// Summary computes only the scalar readouts.
func (b *Builder) Summary() (summary.Summary, error) {
	return summary.Compute(b.charges, b.eval, b.summaryCfg)
}

// Refresh recomputes lines, grid samples and the summary. The three run
// concurrently; if any fails, or ctx is cancelled, no snapshot is returned.
func (b *Builder) Refresh(ctx context.Context) (*Snapshot, error) {
	start := b.now()
	snap := &Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: start,
		Charges:   b.charges,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		snap.Lines = b.tracer.Trace(b.charges)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		snap.Samples = b.sampler.Sample(b.charges)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		s, err := b.Summary()
		if err != nil {
			return err
		}
		snap.Summary = s
		return nil
	})

	if err := g.Wait(); err != nil {
		b.logger.Debug("refresh failed", zap.Error(err))
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	b.logger.Debug("refresh complete",
		zap.String("id", snap.ID),
		zap.Int("charges", b.charges.Len()),
		zap.Int("lines", len(snap.Lines)),
		zap.Int("samples", len(snap.Samples)),
		zap.Duration("elapsed", b.now().Sub(start)))
	return snap, nil
}

// Points returns every line point, useful for framing a view.
func (s *Snapshot) Points() []field.Vec3 {
	n := 0
	for _, l := range s.Lines {
		n += len(l.Points)
	}
	pts := make([]field.Vec3, 0, n)
	for _, l := range s.Lines {
		pts = append(pts, l.Points...)
	}
	return pts
}
