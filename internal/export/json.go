package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/grid"
	"github.com/san-kum/efield/internal/scene"
	"github.com/san-kum/efield/internal/summary"
)

type Charge struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	Q float64 `json:"q"`
}

// Charges converts a charge set to its serialized form.
func Charges(s field.ChargeSet) []Charge {
	out := make([]Charge, 0, s.Len())
	for _, c := range s.Charges() {
		out = append(out, Charge{X: c.Position.X, Y: c.Position.Y, Z: c.Position.Z, Q: c.Value})
	}
	return out
}

// ChargeSet rebuilds a validated charge set.
func ChargeSet(cs []Charge) (field.ChargeSet, error) {
	pcs := make([]field.PointCharge, len(cs))
	for i, c := range cs {
		pcs[i] = field.PointCharge{Position: field.Vec3{X: c.X, Y: c.Y, Z: c.Z}, Value: c.Q}
	}
	return field.NewChargeSet(pcs...)
}

type Line struct {
	Charge int          `json:"charge"`
	Points [][3]float64 `json:"points"`
}

type Sample struct {
	Position  [3]float64 `json:"position"`
	Field     [3]float64 `json:"field"`
	Magnitude float64    `json:"magnitude"`
	Length    float64    `json:"length"`
	Color     string     `json:"color"`
}

type Document struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Charges   []Charge        `json:"charges"`
	Summary   summary.Summary `json:"summary"`
	Lines     []Line          `json:"lines"`
	Samples   []Sample        `json:"samples"`
}

func vec(v field.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// NewDocument flattens snap into plain JSON-friendly values.
func NewDocument(snap *scene.Snapshot) Document {
	doc := Document{
		ID:        snap.ID,
		CreatedAt: snap.CreatedAt,
		Charges:   Charges(snap.Charges),
		Summary:   snap.Summary,
		Lines:     make([]Line, len(snap.Lines)),
		Samples:   make([]Sample, len(snap.Samples)),
	}
	for i, l := range snap.Lines {
		pts := make([][3]float64, len(l.Points))
		for j, p := range l.Points {
			pts[j] = vec(p)
		}
		doc.Lines[i] = Line{Charge: l.Charge, Points: pts}
	}
	for i, s := range snap.Samples {
		doc.Samples[i] = Sample{
			Position:  vec(s.Position),
			Field:     vec(s.Field),
			Magnitude: s.Magnitude,
			Length:    s.Length,
			Color:     grid.HexColor(s.Color),
		}
	}
	return doc
}

// WriteJSON writes snap as indented JSON.
func WriteJSON(w io.Writer, snap *scene.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(snap))
}
