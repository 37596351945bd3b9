package scene

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
)

// Ring is a flat annulus around Center, between radii Inner and Outer.
type Ring struct {
	Surface Surface
	Normal  geom.Vector
	Center  geom.Point
	Inner   float64
	Outer   float64
	D       float64

	ref0, ref1 geom.Vector
}

func NewRing(s Surface, normal geom.Vector, center geom.Point, inner, outer float64) (*Ring, error) {
	n, l := normal.Normalize()
	if l <= geom.Sigma || outer <= 0 {
		return nil, ErrDegenerate
	}
	if inner > outer {
		inner, outer = outer, inner
	}
	r := &Ring{Surface: s, Normal: n, Center: center, Inner: inner, Outer: outer}
	r.D = -center.Vector().Dot(n)
	helper := geom.V(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		helper = geom.V(0, 1, 0)
	}
	r.ref0, _ = geom.NormCross(n, helper)
	r.ref1 = n.Cross(r.ref0)
	return r, nil
}

func (r *Ring) Kind() Kind        { return KindRing }
func (r *Ring) Material() Surface { return r.Surface }

// Intersect accepts the plane hit when its distance from the center lies in
// [Inner, Outer].
func (r *Ring) Intersect(ray geom.Ray) (Hit, bool) {
	vd := r.Normal.Dot(ray.Direction)
	if math.Abs(vd) < geom.Sigma {
		return Hit{}, false
	}
	t := -(r.Normal.Dot(ray.Origin.Vector()) + r.D) / vd
	if t < planeMinT {
		return Hit{}, false
	}
	p := ray.At(t)
	dist := p.Distance(r.Center)
	if dist < r.Inner || dist > r.Outer {
		return Hit{}, false
	}
	return Hit{T: t, Point: p, Normal: r.Normal}, true
}

func (r *Ring) Shade(ray geom.Ray, h Hit, entering bool, tex Textures) Shading {
	return shadePlanar(ray, h, r.Surface, entering, tex, r.uv)
}

// uv maps the angle around the center to u and the radial position between
// the two radii to v.
func (r *Ring) uv(h Hit) (u, v float64) {
	d := h.Point.Sub(r.Center)
	u = math.Atan2(d.Dot(r.ref1), d.Dot(r.ref0))/(2*math.Pi) + 0.5
	if span := r.Outer - r.Inner; span > geom.Sigma {
		v = (d.Length() - r.Inner) / span
	}
	return u, v
}

// Bounds is the disc's box: along each axis the disc extends
// Outer*sqrt(1-n²) from the center.
func (r *Ring) Bounds() geom.Box {
	ext := func(n float64) float64 {
		return r.Outer*math.Sqrt(math.Max(0, 1-n*n)) + geom.Epsilon
	}
	e := geom.V(ext(r.Normal.X), ext(r.Normal.Y), ext(r.Normal.Z))
	return geom.Box{Min: r.Center.Add(e.Negate()), Max: r.Center.Add(e)}
}

func (r *Ring) OverlapsBox(b geom.Box) bool {
	return r.Bounds().Overlaps(b) && planeOverlapsBox(r.Normal, r.D, b)
}
