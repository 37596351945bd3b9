package geom

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// ParallelEpsilon is the direction component below which a ray is treated as
// parallel to a slab.
const ParallelEpsilon = 1e-6

// Box is an axis-aligned box given by its min and max corners.
type Box struct {
	Min, Max Point
}

func (b Box) pt() pt.Box {
	return pt.Box{Min: pt.Vector(b.Min), Max: pt.Vector(b.Max)}
}

// EmptyBox returns a box that any Extend call will replace.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{Min: P(inf, inf, inf), Max: P(-inf, -inf, -inf)}
}

func (b Box) Size() Vector {
	return Vector(b.pt().Size())
}

func (b Box) Center() Point {
	return Point(b.pt().Center())
}

// Extend returns the smallest box holding both b and c.
func (b Box) Extend(c Box) Box {
	return Box{Min: b.Min.Min(c.Min), Max: b.Max.Max(c.Max)}
}

// Pad grows the box by m on every side.
func (b Box) Pad(m float64) Box {
	d := V(m, m, m)
	return Box{Min: b.Min.Add(d.Negate()), Max: b.Max.Add(d)}
}

// Contains reports whether p lies in the closed box.
func (b Box) Contains(p Point) bool {
	return b.pt().Contains(pt.Vector(p))
}

// ContainsTol reports whether p lies in the box grown by tol.
func (b Box) ContainsTol(p Point, tol float64) bool {
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol &&
		p.Z >= b.Min.Z-tol && p.Z <= b.Max.Z+tol
}

// Overlaps reports whether the two closed boxes share any point.
func (b Box) Overlaps(c Box) bool {
	return b.pt().Intersects(c.pt())
}

// Encloses reports whether c lies strictly inside b on every axis.
func (b Box) Encloses(c Box) bool {
	return b.Min.X < c.Min.X && b.Max.X > c.Max.X &&
		b.Min.Y < c.Min.Y && b.Max.Y > c.Max.Y &&
		b.Min.Z < c.Min.Z && b.Max.Z > c.Max.Z
}

// Corners returns the eight corners of the box.
func (b Box) Corners() [8]Point {
	var c [8]Point
	for i := range c {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		c[i] = p
	}
	return c
}

// Span is the parametric interval a ray spends in a box. Enter and Exit
// flag the axes whose faces the ray crosses at Near and Far; an edge or
// corner crossing flags more than one.
type Span struct {
	Near, Far   float64
	Enter, Exit [3]bool
}

// Cross intersects r with the box by the slab method. A direction component
// smaller than ParallelEpsilon counts as parallel to that slab: the ray
// misses unless its origin lies within it, and the axis is never flagged.
// Near may lie behind the origin; the box is missed only when Far does.
func (b Box) Cross(r Ray) (Span, bool) {
	s := Span{Near: math.Inf(-1), Far: math.Inf(1)}
	var near, far [3]float64
	var parallel [3]bool
	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Axis(axis)
		d := r.Direction.Axis(axis)
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		if math.Abs(d) < ParallelEpsilon {
			if o < lo || o > hi {
				return s, false
			}
			parallel[axis] = true
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		near[axis], far[axis] = t1, t2
		s.Near = math.Max(s.Near, t1)
		s.Far = math.Min(s.Far, t2)
	}
	if s.Near > s.Far || s.Far < 0 || math.IsInf(s.Far, 1) {
		return s, false
	}
	tolN := 1e-9 * math.Max(1, math.Abs(s.Near))
	tolF := 1e-9 * math.Max(1, math.Abs(s.Far))
	for axis := 0; axis < 3; axis++ {
		if parallel[axis] {
			continue
		}
		s.Enter[axis] = math.Abs(near[axis]-s.Near) <= tolN
		s.Exit[axis] = math.Abs(far[axis]-s.Far) <= tolF
	}
	return s, true
}

// Slab returns the entry and exit parameters of r through the box.
func (b Box) Slab(r Ray) (tn, tf float64, ok bool) {
	s, ok := b.Cross(r)
	return s.Near, s.Far, ok
}

// FaceNormal returns the outward normal of the face p lies on, checking the
// faces in z, x, y order with tolerance tol.
func (b Box) FaceNormal(p Point, tol float64) Vector {
	switch {
	case math.Abs(p.Z-b.Min.Z) < tol:
		return V(0, 0, -1)
	case math.Abs(p.Z-b.Max.Z) < tol:
		return V(0, 0, 1)
	case math.Abs(p.X-b.Min.X) < tol:
		return V(-1, 0, 0)
	case math.Abs(p.X-b.Max.X) < tol:
		return V(1, 0, 0)
	case math.Abs(p.Y-b.Min.Y) < tol:
		return V(0, -1, 0)
	case math.Abs(p.Y-b.Max.Y) < tol:
		return V(0, 1, 0)
	}
	// Fall back to the nearest face.
	best, n := math.Inf(1), Vector{}
	for axis := 0; axis < 3; axis++ {
		if d := math.Abs(p.Axis(axis) - b.Min.Axis(axis)); d < best {
			best, n = d, V(0, 0, 0).withAxis(axis, -1)
		}
		if d := math.Abs(p.Axis(axis) - b.Max.Axis(axis)); d < best {
			best, n = d, V(0, 0, 0).withAxis(axis, 1)
		}
	}
	return n
}

func (a Vector) withAxis(axis int, v float64) Vector {
	return Vector(Point(a).WithAxis(axis, v))
}
