package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/scene"
)

// bounds is the XY bounding box of a set of points, padded by 10%.
type bounds struct {
	minX, maxX, minY, maxY float64
}

func boundsOf(pts []field.Vec3) bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, p := range pts {
		b.minX = math.Min(b.minX, p.X)
		b.maxX = math.Max(b.maxX, p.X)
		b.minY = math.Min(b.minY, p.Y)
		b.maxY = math.Max(b.maxY, p.Y)
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

func (b bounds) project(p field.Vec3, width, height int) (float64, float64) {
	x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
	y := float64(height) - (p.Y-b.minY)/(b.maxY-b.minY)*float64(height)
	return x, y
}

// LinesSVG draws the snapshot's field lines and charges, projected onto the
// XY plane and fitted to width x height. It returns "" when there are no
// line points.
func LinesSVG(snap *scene.Snapshot, width, height int, strokeColor string) string {
	if snap == nil {
		return ""
	}
	pts := snap.Points()
	if len(pts) == 0 {
		return ""
	}
	for _, c := range snap.Charges.Charges() {
		pts = append(pts, c.Position)
	}
	b := boundsOf(pts)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="none" stroke="%s" stroke-width="1.5">
`, width, height, width, height, strokeColor))

	for _, l := range snap.Lines {
		if len(l.Points) < 2 {
			continue
		}
		sb.WriteString(`<path d="M`)
		for i, p := range l.Points {
			x, y := b.project(p, width, height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n")

	for _, c := range snap.Charges.Charges() {
		fill := "#ff0000"
		if c.Value < 0 {
			fill = "#0000ff"
		}
		x, y := b.project(c.Position, width, height)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="6" fill="%s"/>
`, x, y, fill))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
