// Package field provides the electrostatic model for point-charge configurations.
//
// The package defines the primitives every other part of efield builds on:
//
//   - [Vec3]: 3D vector used for positions and field vectors
//   - [PointCharge]: a signed charge at a fixed position
//   - [ChargeSet]: immutable list of charges, see [Dipole] for the default layout
//   - [Evaluator]: superposed Coulomb field and potential at a point
//
// # Distance Floor
//
// Contributions use max(|r|, MinDistance) in the inverse-square term so the
// field stays finite at and near a charge. This is a visualization policy:
//
//	charges := field.Dipole(6, 1e-9)
//	e := field.NewEvaluator()
//	v := e.At(field.Vec3{X: 3}, charges) // finite, even on top of a charge
//
// # Thread Safety
//
// ChargeSet and Evaluator are values with no mutable state. All functions are
// safe to call from multiple goroutines.
package field
