package field

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_SingleCharge(t *testing.T) {
	e := NewEvaluator()
	s := MustChargeSet(PointCharge{Position: Vec3{}, Value: 1e-9})

	got := e.At(Vec3{X: 2}, s)

	// 9e9 * 1e-9 / 4 along +x
	assert.InDelta(t, 2.25, got.X, 1e-12)
	assert.InDelta(t, 0, got.Y, 1e-12)
	assert.InDelta(t, 0, got.Z, 1e-12)
}

func TestEvaluator_NegativeChargePointsInward(t *testing.T) {
	e := NewEvaluator()
	s := MustChargeSet(PointCharge{Position: Vec3{}, Value: -1e-9})

	got := e.At(Vec3{Y: 3}, s)

	assert.Less(t, got.Y, 0.0)
	assert.InDelta(t, 1.0, got.Length(), 1e-12)
}

func TestEvaluator_Superposition(t *testing.T) {
	e := NewEvaluator()
	a := PointCharge{Position: Vec3{X: 3}, Value: 1e-9}
	b := PointCharge{Position: Vec3{X: -3}, Value: -1e-9}
	c := PointCharge{Position: Vec3{Y: 1, Z: -2}, Value: 4e-9}

	points := []Vec3{{}, {1, 1, 1}, {3, 0, 0}, {-2.5, 0.1, 4}, {10, -10, 0.5}}
	for _, p := range points {
		both := e.At(p, MustChargeSet(a, b, c))
		split := e.At(p, MustChargeSet(a)).
			Add(e.At(p, MustChargeSet(b))).
			Add(e.At(p, MustChargeSet(c)))
		assert.InDelta(t, 0, both.Sub(split).Length(), 1e-9, "point %v", p)
	}
}

func TestEvaluator_EmptySet(t *testing.T) {
	e := NewEvaluator()
	assert.Equal(t, Vec3{}, e.At(Vec3{1, 2, 3}, ChargeSet{}))
	assert.Equal(t, 0.0, e.Potential(Vec3{1, 2, 3}, ChargeSet{}))
}

func TestEvaluator_FiniteAtCharge(t *testing.T) {
	e := NewEvaluator()
	s := Dipole(6, 1e-9)

	for i := 0; i < s.Len(); i++ {
		v := e.At(s.At(i).Position, s)
		require.True(t, v.IsFinite(), "field at charge %d: %v", i, v)
		require.True(t, !math.IsInf(e.Potential(s.At(i).Position, s), 0))
	}

	// Inside the floor radius the magnitude is capped at K*q/MinDistance^2.
	single := MustChargeSet(PointCharge{Value: 1e-9})
	near := e.At(Vec3{X: 0.01}, single)
	assert.InDelta(t, 9/(0.3*0.3), near.Length(), 1e-9)
}

func TestEvaluator_ZeroFloorStaysFinite(t *testing.T) {
	e := Evaluator{K: DefaultK, MinDistance: 0}
	s := MustChargeSet(PointCharge{Value: 1e-9})

	assert.Equal(t, Vec3{}, e.At(Vec3{}, s))
	assert.Equal(t, 0.0, e.Potential(Vec3{}, s))
}

func TestEvaluator_Force(t *testing.T) {
	e := NewEvaluator()
	s := Dipole(6, 1e-9)

	f := e.Force(s.At(0), s.At(1))
	assert.InDelta(t, -2.5e-10, f, 1e-22)
}

func TestEvaluator_ForceFlooredBelowMinDistance(t *testing.T) {
	e := NewEvaluator()
	a := PointCharge{Value: 1e-9}
	b := PointCharge{Position: Vec3{X: 0.1}, Value: 1e-9}

	// d=0.1 is floored to 0.3
	assert.InDelta(t, DefaultK*1e-18/(0.3*0.3), e.Force(a, b), 1e-15)
	assert.Less(t, e.Force(a, b), DefaultK*1e-18/(0.1*0.1))
}

func TestEvaluate_MatchesEvaluator(t *testing.T) {
	s := Dipole(6, 1e-9)
	p := Vec3{1, 2, 0}
	assert.Equal(t, NewEvaluator().At(p, s), Evaluate(p, s, DefaultK, DefaultMinDistance))
}

func TestNewChargeSet_RejectsNonFinite(t *testing.T) {
	_, err := NewChargeSet(
		PointCharge{Position: Vec3{}, Value: 1},
		PointCharge{Position: Vec3{X: math.NaN()}, Value: 1},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCharge))

	_, err = NewChargeSet(PointCharge{Value: math.Inf(1)})
	assert.ErrorIs(t, err, ErrInvalidCharge)
}

func TestChargeSet_IsImmutable(t *testing.T) {
	src := []PointCharge{{Position: Vec3{X: 1}, Value: 2}}
	s := MustChargeSet(src...)
	src[0].Value = 99

	assert.Equal(t, 2.0, s.At(0).Value)

	out := s.Charges()
	out[0].Value = 42
	assert.Equal(t, 2.0, s.At(0).Value)
}

func TestChargeSet_NetChargeAndBounds(t *testing.T) {
	s := MustChargeSet(
		PointCharge{Position: Vec3{X: 3}, Value: 2e-9},
		PointCharge{Position: Vec3{X: -3, Y: 1}, Value: -1e-9},
		PointCharge{Position: Vec3{Z: -4}, Value: 5e-10},
	)

	assert.InDelta(t, 1.5e-9, s.NetCharge(), 1e-24)

	min, max := s.Bounds()
	assert.Equal(t, Vec3{-3, 0, -4}, min)
	assert.Equal(t, Vec3{3, 1, 0}, max)

	assert.InDelta(t, 0, Dipole(6, 1e-9).NetCharge(), 0)
}
