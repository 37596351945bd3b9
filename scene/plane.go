package scene

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
)

// Plane is a finite parallelogram given by three corners; the fourth is
// P2 - (P1 - P0).
type Plane struct {
	Surface    Surface
	P0, P1, P2 geom.Point
	flat

	// inverse bilinear mapping
	na, nb, nc geom.Vector
	du0, du1   float64
	dv0, dv1   float64
}

func NewPlane(s Surface, p0, p1, p2 geom.Point) (*Plane, error) {
	p3 := p2.Add(p1.Sub(p0).Negate())
	f, err := newFlat([]geom.Point{p0, p1, p2, p3})
	if err != nil {
		return nil, err
	}
	pl := &Plane{Surface: s, P0: p0, P1: p1, P2: p2, flat: f}

	pa := p0.Sub(p3).Add(p2.Sub(p1))
	pb := p3.Sub(p0)
	pc := p1.Sub(p0)
	pd := p0.Vector()
	pl.na, _ = geom.NormCross(pa, f.Normal)
	pl.nb, _ = geom.NormCross(pb, f.Normal)
	pl.nc, _ = geom.NormCross(pc, f.Normal)
	pl.du0 = pl.nc.Dot(pd)
	pl.du1 = pl.na.Dot(pd) + pl.nc.Dot(pb)
	pl.dv0 = pl.nb.Dot(pd)
	pl.dv1 = pl.na.Dot(pd) + pl.nb.Dot(pc)
	return pl, nil
}

func (p *Plane) Kind() Kind        { return KindPlane }
func (p *Plane) Material() Surface { return p.Surface }

func (p *Plane) Intersect(r geom.Ray) (Hit, bool) {
	return p.intersect(r)
}

func (p *Plane) Shade(r geom.Ray, h Hit, entering bool, tex Textures) Shading {
	return shadePlanar(r, h, p.Surface, entering, tex, p.uv)
}

// uv inverts the bilinear parameterization of the quadrilateral. u runs
// from P0 toward the fourth corner and v from P0 toward P1.
func (p *Plane) uv(h Hit) (u, v float64) {
	q := h.Point.Vector()
	if den := p.du1 - q.Dot(p.na); math.Abs(den) > geom.Sigma {
		u = (q.Dot(p.nc) - p.du0) / den
	}
	if den := p.dv1 - q.Dot(p.na); math.Abs(den) > geom.Sigma {
		v = (q.Dot(p.nb) - p.dv0) / den
	}
	return u, v
}

func (p *Plane) Bounds() geom.Box {
	return p.bounds
}

func (p *Plane) OverlapsBox(b geom.Box) bool {
	return p.overlapsBox(b)
}
