package integrators

import "github.com/san-kum/efield/internal/field"

// Euler is the forward Euler step p + h*f(p).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f DirectionField, p field.Vec3, h float64) field.Vec3 {
	return p.Add(f(p).Scale(h))
}
