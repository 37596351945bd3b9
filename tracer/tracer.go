// Package tracer implements recursive Whitted-style ray tracing over a
// loaded scene: nearest-hit search, direct lighting with shadow rays, the
// per-sample transport tree and its reduction to a pixel color.
package tracer

import (
	"runtime"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/octree"
	"github.com/jdginn/go-raytracer/scene"
)

// DefaultCutoff is the weight below which a secondary ray is not traced.
const DefaultCutoff = 0.05

// Options tune a Tracer beyond what the scene header carries.
type Options struct {
	// Threshold overrides the scene's octree threshold when positive.
	Threshold int
	// Cutoff overrides DefaultCutoff when positive.
	Cutoff float64
	// ClampNegativeLight drops light arriving from behind the surface
	// instead of letting it subtract.
	ClampNegativeLight bool
	// MaxOctreeDepth bounds subdivision; zero means octree.DefaultMaxDepth.
	MaxOctreeDepth int
	// Workers is the number of rows rendered at once; zero means GOMAXPROCS.
	Workers int
}

// Tracer renders one scene. It is safe for concurrent use once built.
type Tracer struct {
	scene *scene.Scene
	opts  Options
	// tree is nil when the scene is small enough to scan directly.
	tree *octree.Tree
}

// New prepares s for rendering, building the octree when the scene holds
// more primitives than the threshold.
func New(s *scene.Scene, opts Options) *Tracer {
	if opts.Threshold <= 0 {
		opts.Threshold = s.Params.OctreeThreshold()
	}
	if opts.Cutoff <= 0 {
		opts.Cutoff = DefaultCutoff
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	t := &Tracer{scene: s, opts: opts}
	if len(s.Primitives) > opts.Threshold {
		t.tree = octree.Build(s.Primitives, octree.Options{
			Threshold: opts.Threshold,
			MaxDepth:  opts.MaxOctreeDepth,
		})
	}
	return t
}

// Scene returns the scene being rendered.
func (t *Tracer) Scene() *scene.Scene {
	return t.scene
}

// Tree returns the octree, or nil when the scene is scanned directly.
func (t *Tracer) Tree() *octree.Tree {
	return t.tree
}

// Nearest returns the nearest hit of r in the scene.
func (t *Tracer) Nearest(r geom.Ray) (scene.Hit, scene.Primitive, bool) {
	if t.tree != nil {
		return t.tree.Nearest(r)
	}
	return octree.Scan(t.scene.Primitives, r)
}

// Illumination sums the direct light reaching point from every light that
// nothing blocks.
func (t *Tracer) Illumination(point geom.Point, normal geom.Vector) geom.Color {
	var c geom.Color
	for _, l := range t.scene.Lights {
		toLight, dist := geom.RayTo(point, l.Location())
		if h, _, ok := t.Nearest(toLight); ok && h.T < dist {
			continue
		}
		if t.opts.ClampNegativeLight && normal.Dot(toLight.Direction) < 0 {
			continue
		}
		c = c.Add(l.Illumination(normal, toLight.Direction))
	}
	return c
}

// Trace fills n with the transport tree for r. weight is the share of the
// pixel r can still contribute and depth its level in the tree.
func (t *Tracer) Trace(n *Node, r geom.Ray, weight float64, depth int, entering bool) {
	n.Reset()
	n.Entering = entering

	h, prim, ok := t.Nearest(r)
	if !ok {
		n.Surface = scene.NewSurface(0, 1, 0, 0, 1, t.scene.Params.Background)
		return
	}
	sh := prim.Shade(r, h, entering, t.scene.Textures)
	verifyShading(r, sh)

	n.Hit = true
	n.Point = sh.Point
	n.Normal = sh.Normal
	n.Surface = sh.Surface
	n.Entering = sh.Entering
	direct := t.Illumination(sh.Point, sh.Normal)
	n.Surface.Color = t.scene.Params.Ambient.Add(direct).Mul(sh.Surface.Color)

	if depth >= t.scene.Params.MaxDepth {
		return
	}
	if kt := n.Surface.KTran; sh.HasTransmitted && weight*kt > t.opts.Cutoff {
		n.Transmitted = &Node{}
		t.Trace(n.Transmitted, sh.Transmitted, weight*kt, depth+1, sh.Entering)
	}
	if ks := n.Surface.KSpec; sh.HasReflected && weight*ks > t.opts.Cutoff {
		n.Reflected = &Node{}
		t.Trace(n.Reflected, sh.Reflected, weight*ks, depth+1, entering)
	}
}

// Fold reduces the tree rooted at n to a color: the node's own diffuse
// term plus each child's folded color scaled by weight.
func Fold(n *Node, weight float64) geom.Color {
	var c geom.Color
	if n.Transmitted != nil {
		c = Fold(n.Transmitted, weight*n.Surface.KTran).Scale(weight)
	}
	if n.Reflected != nil {
		c = c.Add(Fold(n.Reflected, weight*n.Surface.KSpec).Scale(weight))
	}
	return c.Add(n.Surface.Color.Scale(n.Surface.KDiff))
}

// Sample traces r from the camera and folds the result, reusing root.
func (t *Tracer) Sample(root *Node, r geom.Ray) geom.Color {
	t.Trace(root, r, 1, 0, true)
	return Fold(root, 1)
}
