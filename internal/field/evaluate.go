package field

const (
	// DefaultK is the visualization-scaled Coulomb constant.
	DefaultK = 9e9
	// DefaultMinDistance floors the inverse-square distance near a charge.
	DefaultMinDistance = 0.3
)

// Evaluator computes the superposed Coulomb field of a ChargeSet.
type Evaluator struct {
	K           float64
	MinDistance float64
}

func NewEvaluator() Evaluator {
	return Evaluator{K: DefaultK, MinDistance: DefaultMinDistance}
}

// At returns the field vector at p. Each charge contributes K*q/d^2 along the
// unit displacement from the charge, with d floored at MinDistance. A point
// exactly on a charge gets no contribution from that charge.
func (e Evaluator) At(p Vec3, s ChargeSet) Vec3 {
	var sum Vec3
	for _, c := range s.charges {
		r := p.Sub(c.Position)
		dist := r.Length()
		if dist == 0 {
			continue
		}
		d := dist
		if d < e.MinDistance {
			d = e.MinDistance
		}
		sum = sum.Add(r.Scale(e.K * c.Value / (d * d * dist)))
	}
	return sum
}

// Potential returns the scalar potential sum K*q/d at p, using the same floor.
func (e Evaluator) Potential(p Vec3, s ChargeSet) float64 {
	v := 0.0
	for _, c := range s.charges {
		d := p.Distance(c.Position)
		if d < e.MinDistance {
			d = e.MinDistance
		}
		if d == 0 {
			continue
		}
		v += e.K * c.Value / d
	}
	return v
}

// Force returns the signed Coulomb force K*qa*qb/d^2 between two charges.
// Negative values mean attraction. d is floored at MinDistance like every
// other evaluation here, so charges closer than the floor report less force
// than the bare inverse-square law.
func (e Evaluator) Force(a, b PointCharge) float64 {
	d := a.Position.Distance(b.Position)
	if d < e.MinDistance {
		d = e.MinDistance
	}
	if d == 0 {
		return 0
	}
	return e.K * a.Value * b.Value / (d * d)
}

// Evaluate is a convenience wrapper around Evaluator.At.
func Evaluate(p Vec3, s ChargeSet, k, minDistance float64) Vec3 {
	return Evaluator{K: k, MinDistance: minDistance}.At(p, s)
}
