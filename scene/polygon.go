package scene

import (
	"fmt"
	"math"

	"github.com/jdginn/go-raytracer/geom"
)

// flat holds what every bounded flat shape needs for intersection: the
// supporting plane N.p + D = 0 and the outline projected onto the two axes
// that remain after dropping the normal's dominant axis.
type flat struct {
	Normal   geom.Vector
	D        float64
	vertices []geom.Point
	drop     int
	us, vs   []float64
	bounds   geom.Box
}

func newFlat(vertices []geom.Point) (flat, error) {
	if len(vertices) < 3 {
		return flat{}, fmt.Errorf("%d vertices: %w", len(vertices), ErrDegenerate)
	}
	n, l := geom.NormCross(vertices[1].Sub(vertices[0]), vertices[2].Sub(vertices[0]))
	if l == 0 {
		return flat{}, fmt.Errorf("first three vertices are collinear: %w", ErrDegenerate)
	}
	f := flat{
		Normal:   n,
		D:        -vertices[0].Vector().Dot(n),
		vertices: vertices,
		drop:     dominantAxis(n),
		bounds:   geom.EmptyBox(),
	}
	f.us = make([]float64, len(vertices))
	f.vs = make([]float64, len(vertices))
	for i, p := range vertices {
		f.us[i], f.vs[i] = project(p, f.drop)
		f.bounds = f.bounds.Extend(geom.Box{Min: p, Max: p})
	}
	return f, nil
}

func (f *flat) intersect(r geom.Ray) (Hit, bool) {
	vd := f.Normal.Dot(r.Direction)
	if math.Abs(vd) < geom.Sigma {
		return Hit{}, false
	}
	t := -(f.Normal.Dot(r.Origin.Vector()) + f.D) / vd
	if t < planeMinT {
		return Hit{}, false
	}
	p := r.At(t)
	u, v := project(p, f.drop)
	if !crossingTest(f.us, f.vs, u, v) {
		return Hit{}, false
	}
	return Hit{T: t, Point: p, Normal: f.Normal}, true
}

func (f *flat) overlapsBox(b geom.Box) bool {
	return f.bounds.Pad(geom.Epsilon).Overlaps(b) && planeOverlapsBox(f.Normal, f.D, b)
}

// Polygon is a flat n-gon.
type Polygon struct {
	Surface Surface
	flat
}

func NewPolygon(s Surface, vertices []geom.Point) (*Polygon, error) {
	f, err := newFlat(vertices)
	if err != nil {
		return nil, err
	}
	return &Polygon{Surface: s, flat: f}, nil
}

func (p *Polygon) Kind() Kind        { return KindPolygon }
func (p *Polygon) Material() Surface { return p.Surface }

// Vertices returns the outline in load order.
func (p *Polygon) Vertices() []geom.Point {
	return p.vertices
}

func (p *Polygon) Intersect(r geom.Ray) (Hit, bool) {
	return p.intersect(r)
}

func (p *Polygon) Shade(r geom.Ray, h Hit, entering bool, tex Textures) Shading {
	return shadePlanar(r, h, p.Surface, entering, tex, nil)
}

func (p *Polygon) Bounds() geom.Box {
	return p.bounds
}

func (p *Polygon) OverlapsBox(b geom.Box) bool {
	return p.overlapsBox(b)
}
