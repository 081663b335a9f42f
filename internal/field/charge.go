package field

import (
	"fmt"
	"math"
)

type PointCharge struct {
	Position Vec3
	Value    float64
}

func (c PointCharge) IsValid() bool {
	return c.Position.IsFinite() && !math.IsNaN(c.Value) && !math.IsInf(c.Value, 0)
}

// ChargeSet is an immutable list of point charges. The zero value is an empty set.
type ChargeSet struct {
	charges []PointCharge
}

// NewChargeSet copies charges into a new set. It fails with ErrInvalidCharge
// if any position or value is not finite.
func NewChargeSet(charges ...PointCharge) (ChargeSet, error) {
	for i, c := range charges {
		if !c.IsValid() {
			return ChargeSet{}, fmt.Errorf("charge %d: %w", i, ErrInvalidCharge)
		}
	}
	cs := make([]PointCharge, len(charges))
	copy(cs, charges)
	return ChargeSet{charges: cs}, nil
}

// MustChargeSet is like NewChargeSet but panics on invalid input.
func MustChargeSet(charges ...PointCharge) ChargeSet {
	s, err := NewChargeSet(charges...)
	if err != nil {
		panic(err)
	}
	return s
}

// Dipole returns +q at (sep/2, 0, 0) and -q at (-sep/2, 0, 0).
func Dipole(separation, q float64) ChargeSet {
	h := separation / 2
	return MustChargeSet(
		PointCharge{Position: Vec3{X: h}, Value: q},
		PointCharge{Position: Vec3{X: -h}, Value: -q},
	)
}

func (s ChargeSet) Len() int             { return len(s.charges) }
func (s ChargeSet) At(i int) PointCharge { return s.charges[i] }

// Charges returns a copy of the underlying list.
func (s ChargeSet) Charges() []PointCharge {
	out := make([]PointCharge, len(s.charges))
	copy(out, s.charges)
	return out
}

// NetCharge is the arithmetic sum of all charge values.
func (s ChargeSet) NetCharge() float64 {
	sum := 0.0
	for _, c := range s.charges {
		sum += c.Value
	}
	return sum
}

// Bounds returns the axis-aligned box enclosing every charge position.
func (s ChargeSet) Bounds() (min, max Vec3) {
	if len(s.charges) == 0 {
		return Vec3{}, Vec3{}
	}
	min, max = s.charges[0].Position, s.charges[0].Position
	for _, c := range s.charges[1:] {
		p := c.Position
		min = Vec3{math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z)}
		max = Vec3{math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z)}
	}
	return min, max
}
