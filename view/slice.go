// Package view draws diagnostic pictures of a scene's spatial index.
package view

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/octree"
	"github.com/jdginn/go-raytracer/scene"
)

type Point2D struct {
	X float64
	Y float64
}

// SliceView draws the leaves and primitives cut by the plane where
// coordinate Axis equals Offset.
type SliceView struct {
	Tree   *octree.Tree
	Axis   int
	Offset float64
	XSize  int
	YSize  int
	// These cache the values needed to scale and translate from the scene to the requested image size
	scale      float64
	xTranslate float64
	yTranslate float64
}

// axes returns the two scene axes that map to image x and y.
func (v *SliceView) axes() (int, int) {
	switch v.Axis {
	case 0:
		return 2, 1
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

func (v *SliceView) project(p geom.Point) Point2D {
	u, w := v.axes()
	return Point2D{X: p.Axis(u), Y: p.Axis(w)}
}

func (v *SliceView) computeScaleAndTranslation() {
	b := v.Tree.Root.Box
	lo, hi := v.project(b.Min), v.project(b.Max)
	v.xTranslate = -lo.X
	v.yTranslate = -lo.Y
	v.scale = math.Min(float64(v.XSize)/(hi.X-lo.X), float64(v.YSize)/(hi.Y-lo.Y))
}

// toImage maps a projected point to pixels with y growing downward.
func (v *SliceView) toImage(p Point2D) Point2D {
	if v.scale == 0 {
		v.computeScaleAndTranslation()
	}
	return Point2D{
		X: (p.X + v.xTranslate) * v.scale,
		Y: float64(v.YSize) - (p.Y+v.yTranslate)*v.scale,
	}
}

func (v *SliceView) cuts(b geom.Box) bool {
	return b.Min.Axis(v.Axis) <= v.Offset && v.Offset <= b.Max.Axis(v.Axis)
}

// Leaves returns the leaves the slicing plane passes through.
func (v *SliceView) Leaves() []*octree.Voxel {
	var leaves []*octree.Voxel
	v.Tree.Walk(func(vox *octree.Voxel) {
		if vox.Leaf() && v.cuts(vox.Box) {
			leaves = append(leaves, vox)
		}
	})
	return leaves
}

func (v *SliceView) rectangle(c *gg.Context, b geom.Box) {
	p0 := v.toImage(v.project(b.Min))
	p1 := v.toImage(v.project(b.Max))
	c.DrawRectangle(math.Min(p0.X, p1.X), math.Min(p0.Y, p1.Y), math.Abs(p1.X-p0.X), math.Abs(p1.Y-p0.Y))
}

// Draw renders the slice. Leaves are shaded by how full they are relative
// to the split threshold.
func (v *SliceView) Draw() image.Image {
	c := gg.NewContext(v.XSize, v.YSize)
	c.SetRGB(1, 1, 1)
	c.Clear()

	threshold := float64(v.Tree.Threshold())
	c.SetLineWidth(1)
	for _, leaf := range v.Leaves() {
		v.rectangle(c, leaf.Box)
		fill := math.Min(1, float64(len(leaf.Prims))/threshold)
		c.SetRGBA(0.2, 0.4, 0.9, 0.6*fill)
		c.FillPreserve()
		c.SetRGB(0.5, 0.5, 0.5)
		c.Stroke()
	}

	c.SetLineWidth(2)
	for _, p := range v.Tree.Primitives() {
		b := p.Bounds()
		if !v.cuts(b) {
			continue
		}
		c.SetRGB(0.8, 0.1, 0.1)
		if s, ok := p.(*scene.Sphere); ok {
			d := s.Center.Axis(v.Axis) - v.Offset
			r := math.Sqrt(math.Max(0, s.Radius*s.Radius-d*d))
			center := v.toImage(v.project(s.Center))
			c.DrawCircle(center.X, center.Y, r*v.scale)
		} else {
			v.rectangle(c, b)
		}
		c.Stroke()
	}
	return c.Image()
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}
