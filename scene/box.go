package scene

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
)

const boxFaceTolerance = 1e-7

// Box is a solid axis-aligned box.
type Box struct {
	Surface Surface
	Min     geom.Point
	Max     geom.Point
}

func NewBox(s Surface, lo, hi geom.Point) *Box {
	return &Box{Surface: s, Min: lo.Min(hi), Max: lo.Max(hi)}
}

func (b *Box) Kind() Kind        { return KindBox }
func (b *Box) Material() Surface { return b.Surface }

func (b *Box) box() geom.Box {
	return geom.Box{Min: b.Min, Max: b.Max}
}

// Intersect returns the entry face, or the exit face when the ray starts
// inside the box.
func (b *Box) Intersect(r geom.Ray) (Hit, bool) {
	tn, tf, ok := b.box().Slab(r)
	if !ok {
		return Hit{}, false
	}
	t := tn
	if t < geom.Epsilon {
		t = tf
	}
	if t < geom.Epsilon {
		return Hit{}, false
	}
	p := r.At(t)
	return Hit{T: t, Point: p, Normal: b.box().FaceNormal(p, boxFaceTolerance)}, true
}

func (b *Box) Shade(r geom.Ray, h Hit, entering bool, tex Textures) Shading {
	return shadeSolid(r, h, b.Surface, entering, tex, b.faceUV)
}

// faceUV maps the hit to the normalized position on its face.
func (b *Box) faceUV(h Hit) (u, v float64) {
	return orthoUV(dominantAxis(h.Normal), h.Point, b.Min, b.Max)
}

func (b *Box) Bounds() geom.Box {
	return b.box()
}

// OverlapsBox is false when the voxel misses the box or sits strictly inside
// it, since only the surface can be hit.
func (b *Box) OverlapsBox(v geom.Box) bool {
	if !b.box().Overlaps(v) {
		return false
	}
	return !b.box().Encloses(v)
}

// orthoUV maps p to [0,1]^2 over the two axes other than drop.
func orthoUV(drop int, p, lo, hi geom.Point) (u, v float64) {
	norm := func(axis int) float64 {
		span := hi.Axis(axis) - lo.Axis(axis)
		if math.Abs(span) < geom.Sigma {
			return 0
		}
		return (p.Axis(axis) - lo.Axis(axis)) / span
	}
	switch drop {
	case 1:
		return norm(0), norm(2)
	case 2:
		return norm(0), norm(1)
	default:
		return norm(2), norm(1)
	}
}
