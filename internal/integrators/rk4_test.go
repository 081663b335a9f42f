package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/efield/internal/field"
)

// rotation is the tangent field of circles around the z axis.
func rotation(p field.Vec3) field.Vec3 {
	return field.Vec3{X: -p.Y, Y: p.X}
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	p := field.Vec3{X: 1}
	h := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		p = integ.Step(rotation, p, h)
	}

	expectedX := math.Cos(float64(steps) * h)
	expectedY := math.Sin(float64(steps) * h)

	if math.Abs(p.X-expectedX) > 1e-8 {
		t.Errorf("x error too large: got %.10f, expected %.10f", p.X, expectedX)
	}
	if math.Abs(p.Y-expectedY) > 1e-8 {
		t.Errorf("y error too large: got %.10f, expected %.10f", p.Y, expectedY)
	}
}

func TestEulerStep(t *testing.T) {
	integ := NewEuler()

	constant := func(field.Vec3) field.Vec3 { return field.Vec3{X: 1, Y: -1} }
	got := integ.Step(constant, field.Vec3{Z: 2}, 0.2)

	want := field.Vec3{X: 0.2, Y: -0.2, Z: 2}
	if got.Sub(want).Length() > 1e-12 {
		t.Errorf("Step = %v, want %v", got, want)
	}
}

func TestStepZeroDirectionStalls(t *testing.T) {
	zero := func(field.Vec3) field.Vec3 { return field.Vec3{} }
	start := field.Vec3{X: 1, Y: 2, Z: 3}

	for _, name := range Names() {
		s, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if got := s.Step(zero, start, 0.2); got != start {
			t.Errorf("%s: expected stalled step at %v, got %v", name, start, got)
		}
	}
}

func TestNew_Unknown(t *testing.T) {
	if _, err := New("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
