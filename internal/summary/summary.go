// Package summary derives scalar readouts from a charge configuration:
// a simplified flux, the net charge, and the Coulomb force between the
// first two charges.
package summary

import (
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/efield/internal/field"
)

const DefaultReferenceRadius = 5.0

type Config struct {
	ReferenceRadius float64
}

func DefaultConfig() Config {
	return Config{ReferenceRadius: DefaultReferenceRadius}
}

type Summary struct {
	Flux         float64 `json:"flux"`
	NetCharge    float64 `json:"net_charge"`
	CoulombForce float64 `json:"coulomb_force"`
}

// Compute returns the summary for charges. Flux is the field magnitude at the
// origin times the area of a sphere of ReferenceRadius, a point-sampled
// stand-in for the Gauss surface integral. CoulombForce uses charges 0 and 1
// and is signed, negative for attraction.
func Compute(charges field.ChargeSet, eval field.Evaluator, cfg Config) (Summary, error) {
	if charges.Len() < 2 {
		return Summary{}, fmt.Errorf("coulomb force needs 2 charges, have %d: %w",
			charges.Len(), field.ErrInsufficientCharges)
	}

	r := cfg.ReferenceRadius
	return Summary{
		Flux:         eval.At(field.Vec3{}, charges).Length() * 4 * math.Pi * r * r,
		NetCharge:    charges.NetCharge(),
		CoulombForce: eval.Force(charges.At(0), charges.At(1)),
	}, nil
}

// Scientific formats v with two fractional digits, e.g. 6.28e+02.
func Scientific(v float64) string {
	return strconv.FormatFloat(v, 'e', 2, 64)
}

// Entry is a labelled, formatted summary value.
type Entry struct {
	Label string
	Value string
	Unit  string
}

// Entries returns the three readouts in display order.
func (s Summary) Entries() []Entry {
	return []Entry{
		{Label: "Flux", Value: Scientific(s.Flux), Unit: "N·m²/C"},
		{Label: "Net Charge", Value: Scientific(s.NetCharge), Unit: "C"},
		{Label: "Coulomb Force", Value: Scientific(s.CoulombForce), Unit: "N"},
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("flux=%s net_charge=%s coulomb_force=%s",
		Scientific(s.Flux), Scientific(s.NetCharge), Scientific(s.CoulombForce))
}
