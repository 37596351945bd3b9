package scene

import (
	"math"
	"sort"

	"github.com/jdginn/go-raytracer/geom"
)

// Quadric is the implicit surface
//
//	a x² + 2b xy + 2c xz + 2d x + e y² + 2f yz + 2g y + h z² + 2i z + j = 0
//
// clipped to the box [Min, Max].
type Quadric struct {
	Surface                      Surface
	A, B, C, D, E, F, G, H, I, J float64
	Min, Max                     geom.Point
}

func NewQuadric(s Surface, coef [10]float64, lo, hi geom.Point) *Quadric {
	return &Quadric{
		Surface: s,
		A:       coef[0], B: coef[1], C: coef[2], D: coef[3], E: coef[4],
		F: coef[5], G: coef[6], H: coef[7], I: coef[8], J: coef[9],
		Min: lo.Min(hi), Max: lo.Max(hi),
	}
}

// Coefficients returns a through j in order.
func (q *Quadric) Coefficients() [10]float64 {
	return [10]float64{q.A, q.B, q.C, q.D, q.E, q.F, q.G, q.H, q.I, q.J}
}

func (q *Quadric) Kind() Kind        { return KindQuadric }
func (q *Quadric) Material() Surface { return q.Surface }

// roots returns the candidate distances in increasing order.
func (q *Quadric) roots(r geom.Ray) []float64 {
	xo, yo, zo := r.Origin.X, r.Origin.Y, r.Origin.Z
	xd, yd, zd := r.Direction.X, r.Direction.Y, r.Direction.Z

	aq := q.A*xd*xd + 2*q.B*xd*yd + 2*q.C*xd*zd + q.E*yd*yd + 2*q.F*yd*zd + q.H*zd*zd
	bq := 2 * (q.A*xo*xd + q.B*(xo*yd+xd*yo) + q.C*(xo*zd+xd*zo) + q.D*xd +
		q.E*yo*yd + q.F*(yo*zd+yd*zo) + q.G*yd + q.H*zo*zd + q.I*zd)
	cq := q.A*xo*xo + 2*q.B*xo*yo + 2*q.C*xo*zo + 2*q.D*xo +
		q.E*yo*yo + 2*q.F*yo*zo + 2*q.G*yo + q.H*zo*zo + 2*q.I*zo + q.J

	if math.Abs(aq) > geom.Epsilon {
		dis := bq*bq - 4*aq*cq
		if dis < geom.Epsilon {
			return nil
		}
		ts := []float64{(-bq - math.Sqrt(dis)) / (2 * aq), (-bq + math.Sqrt(dis)) / (2 * aq)}
		sort.Float64s(ts)
		return ts
	}
	if math.Abs(bq) < geom.Sigma {
		return nil
	}
	return []float64{-cq / bq}
}

// Intersect returns the nearest positive root inside the clip box. The
// normal is the gradient, turned to face the ray.
func (q *Quadric) Intersect(r geom.Ray) (Hit, bool) {
	clip := q.Bounds()
	for _, t := range q.roots(r) {
		if t < geom.Epsilon {
			continue
		}
		p := r.At(t)
		if !clip.ContainsTol(p, geom.Epsilon) {
			continue
		}
		n := geom.V(
			q.A*p.X+q.B*p.Y+q.C*p.Z+q.D,
			q.B*p.X+q.E*p.Y+q.F*p.Z+q.G,
			q.C*p.X+q.F*p.Y+q.H*p.Z+q.I,
		).Unit()
		if n.Dot(r.Direction) > 0 {
			n = n.Negate()
		}
		return Hit{T: t, Point: p, Normal: n}, true
	}
	return Hit{}, false
}

// Shade has no texture mapping; a quadric has no natural parameterization.
func (q *Quadric) Shade(r geom.Ray, h Hit, entering bool, tex Textures) Shading {
	return shadeSolid(r, h, q.Surface, entering, tex, nil)
}

func (q *Quadric) Bounds() geom.Box {
	return geom.Box{Min: q.Min, Max: q.Max}
}

func (q *Quadric) OverlapsBox(b geom.Box) bool {
	return q.Bounds().Pad(geom.Epsilon).Overlaps(b)
}
