package scene

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
)

// planeMinT is the smallest distance a planar hit may have.
const planeMinT = 0.001

// Orthoplane is an axis-aligned plane N.p + D = 0 bounded by the box
// [Min, Max].
type Orthoplane struct {
	Surface Surface
	Normal  geom.Vector
	D       float64
	Min     geom.Point
	Max     geom.Point
}

func NewOrthoplane(s Surface, normal geom.Vector, d float64, lo, hi geom.Point) *Orthoplane {
	return &Orthoplane{Surface: s, Normal: normal, D: d, Min: lo.Min(hi), Max: lo.Max(hi)}
}

func (o *Orthoplane) Kind() Kind        { return KindOrthoplane }
func (o *Orthoplane) Material() Surface { return o.Surface }

func (o *Orthoplane) Intersect(r geom.Ray) (Hit, bool) {
	vd := o.Normal.Dot(r.Direction)
	if math.Abs(vd) < geom.Sigma {
		return Hit{}, false
	}
	t := -(o.Normal.Dot(r.Origin.Vector()) + o.D) / vd
	if t < planeMinT {
		return Hit{}, false
	}
	p := r.At(t)
	if !o.spans(p) {
		return Hit{}, false
	}
	return Hit{T: t, Point: p, Normal: o.Normal}, true
}

// spans reports whether p lies within [Min, Max] on the two axes of the
// plane. The normal's axis is skipped; a hit point only lands on -D to
// within rounding.
func (o *Orthoplane) spans(p geom.Point) bool {
	drop := dominantAxis(o.Normal)
	for axis := 0; axis < 3; axis++ {
		if axis == drop {
			continue
		}
		if c := p.Axis(axis); c < o.Min.Axis(axis) || c > o.Max.Axis(axis) {
			return false
		}
	}
	return true
}

func (o *Orthoplane) Shade(r geom.Ray, h Hit, entering bool, tex Textures) Shading {
	return shadePlanar(r, h, o.Surface, entering, tex, func(h Hit) (float64, float64) {
		return orthoUV(dominantAxis(o.Normal), h.Point, o.Min, o.Max)
	})
}

func (o *Orthoplane) Bounds() geom.Box {
	return geom.Box{Min: o.Min, Max: o.Max}
}

func (o *Orthoplane) OverlapsBox(b geom.Box) bool {
	return o.Bounds().Overlaps(b) && planeOverlapsBox(o.Normal, o.D, b)
}
