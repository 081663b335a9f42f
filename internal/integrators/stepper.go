package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/efield/internal/field"
)

// DirectionField maps a point to the tangent being integrated, typically the
// unit field direction.
type DirectionField func(p field.Vec3) field.Vec3

// Stepper advances a point by one fixed step of length h along f.
type Stepper interface {
	Step(f DirectionField, p field.Vec3, h float64) field.Vec3
}

var steppers = map[string]func() Stepper{
	"euler": func() Stepper { return NewEuler() },
	"rk4":   func() Stepper { return NewRK4() },
}

// New returns the stepper registered under name.
func New(name string) (Stepper, error) {
	fn, ok := steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(steppers))
	for name := range steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
