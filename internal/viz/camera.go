package viz

import (
	"math"

	"github.com/san-kum/efield/internal/field"
)

const (
	minZoom = 0.1
	maxZoom = 10.0
	near    = 0.1
)

// Camera projects world points onto a pixel plane. Extent is the world
// half-width that fills half of the shorter screen side at zoom 1.
type Camera struct {
	Distance         float64
	Extent           float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera frames a cube of half-width extent around the origin, tilted
// slightly so the z axis reads as depth.
func NewCamera(extent float64) *Camera {
	if extent <= 0 {
		extent = 1
	}
	return &Camera{Distance: extent * 6, Extent: extent, RotX: 0.35, RotY: -0.5, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(maxZoom, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(minZoom, c.Zoom/1.2) }

// Reset restores the default orientation and zoom.
func (c *Camera) Reset() {
	*c = *NewCamera(c.Extent)
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p field.Vec3) field.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to pixel coordinates on a sw x sh
// plane. It returns x, y, depth, and whether the point lands on screen.
func (c *Camera) Project(p field.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-near {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)
	minDim := float64(min(sw, sh))
	pScale := minDim / 2 / c.Extent
	sx := int(math.Round(rot.X*persp*pScale)) + sw/2
	sy := int(math.Round(-rot.Y*persp*pScale)) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
