// Package octree indexes scene primitives in a recursive axis-aligned
// subdivision of space and answers nearest-hit queries by walking the
// voxels a ray passes through.
package octree

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/scene"
)

const (
	// rootPad is added around the primitives' bounds before the root is cubed.
	rootPad = 5
	// DefaultThreshold is used when Options.Threshold is not positive.
	DefaultThreshold = scene.DefaultThreshold
	// DefaultMaxDepth bounds subdivision when Options.MaxDepth is not positive.
	DefaultMaxDepth = 10
	// hitSlack widens a leaf's parametric interval when accepting hits.
	hitSlack = 1e-7
	// maxSteps bounds the voxels one query may visit.
	maxSteps = 1 << 16
)

// Options control how the tree is built.
type Options struct {
	// Threshold is the most primitives a leaf may hold before it is split.
	Threshold int
	// MaxDepth stops subdivision of regions whose primitives cannot be separated.
	MaxDepth int
}

// Voxel is a node of the tree. A leaf holds primitives; an internal voxel
// holds exactly eight children and no primitives.
type Voxel struct {
	Box      geom.Box
	Depth    int
	Children *[8]*Voxel
	Prims    []scene.Primitive
}

// Leaf reports whether v has no children.
func (v *Voxel) Leaf() bool {
	return v.Children == nil
}

// Tree is a built octree. It is read-only after Build and safe for
// concurrent queries.
type Tree struct {
	Root *Voxel

	prims     []scene.Primitive
	threshold int
	maxDepth  int
	// minHalf is half the edge of the smallest voxel; stepping across a
	// voxel face by this much always lands in the neighbor.
	minHalf float64
}

// Build indexes prims. The root is the primitives' bounds padded by
// rootPad and grown into a cube from its min corner; it is always split.
func Build(prims []scene.Primitive, opts Options) *Tree {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	t := &Tree{prims: prims, threshold: opts.Threshold, maxDepth: opts.MaxDepth}

	b := geom.EmptyBox()
	for _, p := range prims {
		b = b.Extend(p.Bounds())
	}
	if len(prims) == 0 {
		b = geom.Box{}
	}
	b = b.Pad(rootPad)
	size := b.Size()
	edge := math.Max(size.X, math.Max(size.Y, size.Z))
	b.Max = b.Min.Add(geom.V(edge, edge, edge))

	t.Root = &Voxel{Box: b}
	t.minHalf = edge / 2
	t.split(t.Root, prims)
	return t
}

// Primitives returns the indexed primitives.
func (t *Tree) Primitives() []scene.Primitive {
	return t.prims
}

// Threshold returns the leaf capacity the tree was built with.
func (t *Tree) Threshold() int {
	return t.threshold
}

// MinHalf returns half the edge of the smallest voxel.
func (t *Tree) MinHalf() float64 {
	return t.minHalf
}

func (t *Tree) build(v *Voxel, candidates []scene.Primitive) {
	var in []scene.Primitive
	for _, p := range candidates {
		if p.OverlapsBox(v.Box) {
			in = append(in, p)
		}
	}
	if len(in) > t.threshold && v.Depth < t.maxDepth {
		t.split(v, in)
		return
	}
	v.Prims = in
}

// split gives v eight children and fills them from candidates.
func (t *Tree) split(v *Voxel, candidates []scene.Primitive) {
	var children [8]*Voxel
	mid := v.Box.Center()
	for i := range children {
		children[i] = &Voxel{Box: octant(v.Box, mid, i), Depth: v.Depth + 1}
	}
	if half := (mid.X - v.Box.Min.X) / 2; half < t.minHalf {
		t.minHalf = half
	}
	v.Children = &children
	for _, c := range children {
		t.build(c, candidates)
	}
}

// octant returns child i of b: bit 0 selects the high x half, bit 1 the low
// y half and bit 2 the high z half.
func octant(b geom.Box, mid geom.Point, i int) geom.Box {
	c := geom.Box{Min: b.Min, Max: mid}
	if i&1 != 0 {
		c.Min.X, c.Max.X = mid.X, b.Max.X
	}
	if i&2 == 0 {
		c.Min.Y, c.Max.Y = mid.Y, b.Max.Y
	}
	if i&4 != 0 {
		c.Min.Z, c.Max.Z = mid.Z, b.Max.Z
	}
	return c
}

// octantOf returns the index of the child of a voxel centered at mid that
// holds p.
func octantOf(p, mid geom.Point) int {
	i := 0
	if p.X >= mid.X {
		i |= 1
	}
	if p.Y < mid.Y {
		i |= 2
	}
	if p.Z >= mid.Z {
		i |= 4
	}
	return i
}

// FindLeaf returns the leaf holding p, or nil when p is outside the root.
func (t *Tree) FindLeaf(p geom.Point) *Voxel {
	if !t.Root.Box.Contains(p) {
		return nil
	}
	v := t.Root
	for !v.Leaf() {
		v = v.Children[octantOf(p, v.Box.Center())]
	}
	return v
}

// Walk calls fn for every voxel, parents before children.
func (t *Tree) Walk(fn func(v *Voxel)) {
	var walk func(v *Voxel)
	walk = func(v *Voxel) {
		fn(v)
		if v.Leaf() {
			return
		}
		for _, c := range v.Children {
			walk(c)
		}
	}
	walk(t.Root)
}
