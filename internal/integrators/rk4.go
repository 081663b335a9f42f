package integrators

import "github.com/san-kum/efield/internal/field"

// RK4 is the classic fourth-order Runge-Kutta step.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f DirectionField, p field.Vec3, h float64) field.Vec3 {
	k1 := f(p)
	k2 := f(p.Add(k1.Scale(h * 0.5)))
	k3 := f(p.Add(k2.Scale(h * 0.5)))
	k4 := f(p.Add(k3.Scale(h)))

	h6 := h / 6.0
	return p.Add(k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Scale(h6))
}
