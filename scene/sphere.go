package scene

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
)

// Sphere is a sphere with a surface.
type Sphere struct {
	Surface Surface
	Center  geom.Point
	Radius  float64
}

func NewSphere(s Surface, center geom.Point, radius float64) *Sphere {
	return &Sphere{Surface: s, Center: center, Radius: radius}
}

func (s *Sphere) Kind() Kind        { return KindSphere }
func (s *Sphere) Material() Surface { return s.Surface }

// Intersect uses the geometric method. From outside the nearest root is the
// hit; from inside the far root is.
func (s *Sphere) Intersect(r geom.Ray) (Hit, bool) {
	r2 := s.Radius * s.Radius
	oc := s.Center.Sub(r.Origin)
	tca := oc.Dot(r.Direction)
	l2 := oc.Dot(oc)
	outside := l2 > r2
	if tca < geom.Epsilon && outside {
		return Hit{}, false
	}
	d := r2 + tca*tca - l2
	if d < geom.Epsilon {
		return Hit{}, false
	}
	var t float64
	if outside {
		t = tca - math.Sqrt(d)
		if math.Abs(t) < geom.Epsilon {
			t = tca + math.Sqrt(d)
		}
	} else {
		t = tca + math.Sqrt(d)
		if math.Abs(t) < geom.Epsilon {
			return Hit{}, false
		}
	}
	p := r.At(t)
	return Hit{T: t, Point: p, Normal: p.Sub(s.Center).Unit()}, true
}

func (s *Sphere) Shade(r geom.Ray, h Hit, entering bool, tex Textures) Shading {
	return shadeSolid(r, h, s.Surface, entering, tex, sphereUV)
}

// sphereUV maps the outward normal to latitude v and longitude u, both in [0,1].
func sphereUV(h Hit) (u, v float64) {
	n := h.Normal
	phi := math.Acos(math.Max(-1, math.Min(1, n.Negate().Dot(geom.V(0, 1, 0)))))
	v = phi / math.Pi
	if v < geom.Epsilon || v == 1 {
		return 0, v
	}
	theta := geom.V(0, 0, 1).Dot(n) / math.Sin(phi)
	theta = math.Max(-0.99999999, math.Min(0.99999999, theta))
	u = math.Acos(theta) / (2 * math.Pi)
	if n.X <= 0 {
		u = 1 - u
	}
	return u, v
}

func (s *Sphere) Bounds() geom.Box {
	r := geom.V(s.Radius, s.Radius, s.Radius)
	return geom.Box{Min: s.Center.Add(r.Negate()), Max: s.Center.Add(r)}
}

// OverlapsBox is true when the sphere's surface passes through b: the
// squared radius lies between the nearest and farthest squared distances
// from the center to the box.
func (s *Sphere) OverlapsBox(b geom.Box) bool {
	var dmin, dmax float64
	for axis := 0; axis < 3; axis++ {
		c := s.Center.Axis(axis)
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		a := (c - lo) * (c - lo)
		bb := (c - hi) * (c - hi)
		dmax += math.Max(a, bb)
		if c < lo {
			dmin += a
		} else if c > hi {
			dmin += bb
		}
	}
	r2 := s.Radius * s.Radius
	return dmin <= r2 && r2 <= dmax
}
