package tracer

import (
	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/scene"
)

// Node is one level of a sample's transport tree. A child is present only
// when its ray was traced; each node owns its children.
type Node struct {
	// Hit is false for a ray that left the scene.
	Hit    bool
	Point  geom.Point
	Normal geom.Vector
	// Surface is a working copy of the hit surface. Its color holds the
	// locally shaded color once the node is traced.
	Surface     scene.Surface
	Transmitted *Node
	Reflected   *Node
	Entering    bool
}

// Reset clears n for reuse, dropping its children.
func (n *Node) Reset() {
	*n = Node{}
}

// Depth returns the number of levels in the tree rooted at n.
func (n *Node) Depth() int {
	d := 0
	for _, c := range []*Node{n.Transmitted, n.Reflected} {
		if c != nil {
			d = max(d, c.Depth())
		}
	}
	return d + 1
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	c := 1
	if n.Transmitted != nil {
		c += n.Transmitted.Count()
	}
	if n.Reflected != nil {
		c += n.Reflected.Count()
	}
	return c
}
