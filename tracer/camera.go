package tracer

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/scene"
)

var up = geom.V(0, 1, 0)

// Camera maps pixel coordinates to primary rays.
type Camera struct {
	Origin geom.Point
	// FirstRay points at the top left corner of the screen.
	FirstRay geom.Vector
	// ScrnX and ScrnY are the steps between neighbouring pixels.
	ScrnX, ScrnY geom.Vector
	HRes, VRes   int
	Order        int
}

// NewCamera derives the screen basis from the scene header.
func NewCamera(p scene.Params) (Camera, error) {
	dir := p.CameraDirection.Unit()
	right, l := geom.NormCross(dir, up)
	if l == 0 {
		return Camera{}, ErrDegenerateCamera
	}
	camUp, _ := geom.NormCross(right, dir)

	fov := float64(p.FOV) * geom.DegToRad
	tx := math.Tan(fov / 2)
	ty := math.Tan(fov * p.Aspect / 2)

	first := dir.Add(right.Scale(tx)).Sub(camUp.Scale(ty))
	first.X += geom.Sigma
	first.Y += geom.Sigma
	return Camera{
		Origin:   p.CameraLocation,
		FirstRay: first,
		ScrnX:    right.Scale(2 * tx / float64(p.HRes)),
		ScrnY:    camUp.Scale(2 * ty / float64(p.VRes)),
		HRes:     p.HRes,
		VRes:     p.VRes,
		Order:    p.Order,
	}, nil
}

// RowCoord returns the vertical screen coordinate of row y.
func (c Camera) RowCoord(y int) float64 {
	if c.Order == 0 {
		return float64(y - c.VRes/2 + 1)
	}
	return float64(c.VRes/2 - y - 1)
}

// ImageRow returns the top-down image row that render row y fills.
func (c Camera) ImageRow(y int) int {
	if c.Order == 0 {
		return y
	}
	return c.VRes - 1 - y
}

// Ray returns the primary ray through screen position (x, yy).
func (c Camera) Ray(x, yy float64) geom.Ray {
	r, _ := geom.NewRay(c.Origin, c.FirstRay.Sub(c.ScrnX.Scale(x)).Sub(c.ScrnY.Scale(yy)))
	return r
}
