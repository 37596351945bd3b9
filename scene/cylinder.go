package scene

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
)

// Cylinder is an open tube of radius Radius around the segment Base-End.
// The caps are not part of the surface.
type Cylinder struct {
	Surface Surface
	Base    geom.Point
	End     geom.Point
	Radius  float64

	axis   geom.Vector
	height float64
	// ref0 and ref1 span the plane perpendicular to axis
	ref0, ref1 geom.Vector
}

func NewCylinder(s Surface, base, end geom.Point, radius float64) (*Cylinder, error) {
	axis, h := end.Sub(base).Normalize()
	if h <= geom.Sigma || radius <= 0 {
		return nil, ErrDegenerate
	}
	c := &Cylinder{Surface: s, Base: base, End: end, Radius: radius, axis: axis, height: h}
	helper := geom.V(1, 0, 0)
	if math.Abs(axis.X) > 0.9 {
		helper = geom.V(0, 1, 0)
	}
	c.ref0, _ = geom.NormCross(axis, helper)
	c.ref1 = axis.Cross(c.ref0)
	return c, nil
}

func (c *Cylinder) Kind() Kind        { return KindCylinder }
func (c *Cylinder) Material() Surface { return c.Surface }

// Intersect solves the quadratic for the ray's component perpendicular to
// the axis and keeps the nearest root whose projection falls on the tube.
func (c *Cylinder) Intersect(r geom.Ray) (Hit, bool) {
	w := r.Origin.Sub(c.Base)
	dp := r.Direction.Sub(c.axis.Scale(r.Direction.Dot(c.axis)))
	wp := w.Sub(c.axis.Scale(w.Dot(c.axis)))
	a := dp.Dot(dp)
	if a < geom.Sigma {
		return Hit{}, false
	}
	b := 2 * dp.Dot(wp)
	cc := wp.Dot(wp) - c.Radius*c.Radius
	dis := b*b - 4*a*cc
	if dis < 0 {
		return Hit{}, false
	}
	sq := math.Sqrt(dis)
	for _, t := range [2]float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
		if t < geom.Epsilon {
			continue
		}
		p := r.At(t)
		s := p.Sub(c.Base).Dot(c.axis)
		if s < 0 || s > c.height {
			continue
		}
		n := p.Sub(c.Base).Sub(c.axis.Scale(s)).Unit()
		return Hit{T: t, Point: p, Normal: n}, true
	}
	return Hit{}, false
}

func (c *Cylinder) Shade(r geom.Ray, h Hit, entering bool, tex Textures) Shading {
	return shadeSolid(r, h, c.Surface, entering, tex, c.uv)
}

// uv maps the angle around the axis to u and the height along it to v.
func (c *Cylinder) uv(h Hit) (u, v float64) {
	v = h.Point.Sub(c.Base).Dot(c.axis) / c.height
	u = math.Atan2(h.Normal.Dot(c.ref1), h.Normal.Dot(c.ref0))/(2*math.Pi) + 0.5
	return u, v
}

// Bounds is the box around both end discs, padded by the radius on every axis.
func (c *Cylinder) Bounds() geom.Box {
	return geom.Box{Min: c.Base.Min(c.End), Max: c.Base.Max(c.End)}.Pad(c.Radius)
}

func (c *Cylinder) OverlapsBox(b geom.Box) bool {
	return c.Bounds().Overlaps(b)
}
