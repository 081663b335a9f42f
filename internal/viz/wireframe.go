package viz

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/gogpu/gg"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/grid"
	"github.com/san-kum/efield/internal/scene"
)

// arrowScale shrinks grid arrows so neighbours do not overlap.
const arrowScale = 0.8

// Layers selects which parts of a snapshot are drawn.
type Layers struct {
	Lines   bool
	Grid    bool
	Charges bool
}

func AllLayers() Layers { return Layers{Lines: true, Grid: true, Charges: true} }

type Edge struct {
	Start, End field.Vec3
	Color      lipgloss.Color
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e field.Vec3, c lipgloss.Color) {
	w.Edges = append(w.Edges, Edge{s, e, c})
}

func (w *Wireframe) AddPoint(p field.Vec3, c lipgloss.Color) {
	w.Edges = append(w.Edges, Edge{p, p, c})
}

// AddPolyline adds consecutive segments through pts.
func (w *Wireframe) AddPolyline(pts []field.Vec3, c lipgloss.Color) {
	for i := 1; i < len(pts); i++ {
		w.AddEdge(pts[i-1], pts[i], c)
	}
}

// AddMarker adds a small three-axis cross centred on p.
func (w *Wireframe) AddMarker(p field.Vec3, size float64, c lipgloss.Color) {
	for _, axis := range []field.Vec3{{X: size}, {Y: size}, {Z: size}} {
		w.AddEdge(p.Sub(axis), p.Add(axis), c)
	}
}

// FromSnapshot converts the enabled layers of snap into edges. Grid arrows
// take the sample's own colour, scaled by the lattice spacing.
func FromSnapshot(snap *scene.Snapshot, layers Layers, theme Theme, spacing float64) *Wireframe {
	w := NewWireframe()
	if snap == nil {
		return w
	}
	if layers.Lines {
		for _, l := range snap.Lines {
			w.AddPolyline(l.Points, theme.Line)
		}
	}
	if layers.Grid {
		for _, s := range snap.Samples {
			tip := s.Position.Add(s.Direction.Scale(s.Length * spacing * arrowScale))
			w.AddEdge(s.Position, tip, HexColor(s.Color))
		}
	}
	if layers.Charges {
		for _, c := range snap.Charges.Charges() {
			w.AddMarker(c.Position, spacing/2, theme.ChargeColor(c.Value))
		}
	}
	return w
}

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Color          lipgloss.Color
}

// Render3D draws the wireframe to the canvas using a simple painter's algorithm.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.PixelSize()
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, d2, v2 := cam.Project(e.End, pw, ph)
		if v1 || v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	for _, e := range proj {
		if e.X1 == e.X2 && e.Y1 == e.Y2 {
			c.Set(e.X1, e.Y1, e.Color)
		} else {
			c.DrawLine(e.X1, e.Y1, e.X2, e.Y2, e.Color)
		}
	}
}

// DrawSnapshot clears c and paints snap onto it.
func DrawSnapshot(c *Canvas, cam *Camera, snap *scene.Snapshot, layers Layers, theme Theme, spacing float64) {
	c.Clear()
	Render3D(c, FromSnapshot(snap, layers, theme, spacing), cam)
}

// HexColor converts an RGBA colour to a lipgloss hex colour.
func HexColor(c gg.RGBA) lipgloss.Color {
	return lipgloss.Color(grid.HexColor(c))
}
