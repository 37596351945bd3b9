package octree

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/scene"
)

// Scan tests r against every primitive and returns the nearest hit. Ties go
// to the earlier primitive.
func Scan(prims []scene.Primitive, r geom.Ray) (scene.Hit, scene.Primitive, bool) {
	var (
		best    scene.Hit
		nearest scene.Primitive
	)
	for _, p := range prims {
		if h, ok := p.Intersect(r); ok && (nearest == nil || h.T < best.T) {
			best, nearest = h, p
		}
	}
	return best, nearest, nearest != nil
}

// Nearest returns the nearest hit of r among the indexed primitives by
// visiting the leaves along the ray in order. A leaf only accepts hits that
// fall inside its own box; the first leaf to accept one holds the answer.
func (t *Tree) Nearest(r geom.Ray) (scene.Hit, scene.Primitive, bool) {
	leaf, prevTf := t.entry(r)
	for steps := 0; leaf != nil && steps < maxSteps; steps++ {
		s, ok := leaf.Box.Cross(r)
		if !ok || s.Far <= prevTf {
			leaf = t.advance(r, prevTf)
			continue
		}
		if h, p, ok := nearestIn(leaf, r, s); ok {
			return h, p, true
		}
		prevTf = s.Far
		leaf = t.FindLeaf(t.exitPoint(leaf.Box, r, s))
	}
	return scene.Hit{}, nil, false
}

// entry returns the first leaf along r and the parameter traversal starts
// from.
func (t *Tree) entry(r geom.Ray) (*Voxel, float64) {
	root := t.Root.Box
	if root.Contains(r.Origin) {
		return t.FindLeaf(r.Origin), 0
	}
	s, ok := root.Cross(r)
	if !ok {
		return nil, 0
	}
	p := clampTo(root, r.At(s.Near))
	for axis := 0; axis < 3; axis++ {
		if !s.Enter[axis] {
			continue
		}
		d := r.Direction.Axis(axis)
		face := root.Min.Axis(axis)
		if d < 0 {
			face = root.Max.Axis(axis)
		}
		p = p.WithAxis(axis, face+math.Copysign(t.minHalf, d))
	}
	return t.FindLeaf(p), s.Near
}

// exitPoint returns a point just past the face(s) through which r leaves b.
func (t *Tree) exitPoint(b geom.Box, r geom.Ray, s geom.Span) geom.Point {
	p := clampTo(b, r.At(s.Far))
	for axis := 0; axis < 3; axis++ {
		if !s.Exit[axis] {
			continue
		}
		d := r.Direction.Axis(axis)
		face := b.Max.Axis(axis)
		if d < 0 {
			face = b.Min.Axis(axis)
		}
		p = p.WithAxis(axis, face+math.Copysign(t.minHalf, d))
	}
	return p
}

// advance walks along the ray past prevTf until it finds a leaf the ray
// leaves later than prevTf. It recovers from face stepping that lands in a
// voxel the ray only grazes.
func (t *Tree) advance(r geom.Ray, prevTf float64) *Voxel {
	delta := t.minHalf
	for k := 0; k < 64; k++ {
		v := t.FindLeaf(r.At(prevTf + delta))
		if v == nil {
			return nil
		}
		if s, ok := v.Box.Cross(r); ok && s.Far > prevTf {
			return v
		}
		delta *= 2
	}
	return nil
}

func nearestIn(v *Voxel, r geom.Ray, s geom.Span) (scene.Hit, scene.Primitive, bool) {
	eps := hitSlack * math.Max(1, math.Abs(s.Far))
	var (
		best    scene.Hit
		nearest scene.Primitive
	)
	for _, p := range v.Prims {
		h, ok := p.Intersect(r)
		if !ok || h.T < s.Near-eps || h.T > s.Far+eps {
			continue
		}
		if nearest == nil || h.T < best.T {
			best, nearest = h, p
		}
	}
	return best, nearest, nearest != nil
}

func clampTo(b geom.Box, p geom.Point) geom.Point {
	return p.Max(b.Min).Min(b.Max)
}
