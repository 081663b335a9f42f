package scene

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/efield/internal/config"
	"github.com/san-kum/efield/internal/field"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Tracer.SeedsPerCharge = 6
	cfg.Tracer.StepsPerLine = 25
	cfg.Grid.Size = 4
	return cfg
}

func TestRefresh(t *testing.T) {
	defer goleak.VerifyNone(t)

	b, err := New(smallConfig(), nil)
	require.NoError(t, err)

	snap, err := b.Refresh(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Len(t, snap.Lines, 12)
	for _, l := range snap.Lines {
		assert.Len(t, l.Points, 25)
	}
	assert.Len(t, snap.Samples, 125)
	assert.InDelta(t, -2.5e-10, snap.Summary.CoulombForce, 1e-22)
	assert.Equal(t, 0.0, snap.Summary.NetCharge)
	assert.Len(t, snap.Points(), 12*25)
}

func TestRefresh_Idempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	b, err := New(smallConfig(), nil)
	require.NoError(t, err)

	first, err := b.Refresh(context.Background())
	require.NoError(t, err)
	second, err := b.Refresh(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	opts := cmpopts.IgnoreFields(Snapshot{}, "ID", "CreatedAt", "Charges")
	if diff := cmp.Diff(first, second, opts); diff != "" {
		t.Errorf("refresh not idempotent (-first +second):\n%s", diff)
	}
}

func TestRefresh_InsufficientCharges(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := smallConfig()
	cfg.Charges = cfg.Charges[:1]
	b, err := New(cfg, nil)
	require.NoError(t, err)

	snap, err := b.Refresh(context.Background())
	assert.Nil(t, snap)
	assert.True(t, errors.Is(err, field.ErrInsufficientCharges))
}

func TestRefresh_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	b, err := New(smallConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := b.Refresh(ctx)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRefresh_LogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b, err := New(smallConfig(), zap.New(core))
	require.NoError(t, err)

	_, err = b.Refresh(context.Background())
	require.NoError(t, err)

	entries := logs.FilterMessage("refresh complete").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(12), entries[0].ContextMap()["lines"])
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Grid.Spacing = 0
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
