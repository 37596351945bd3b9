package view

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/octree"
	"github.com/jdginn/go-raytracer/scene"
)

func sphereTree() *octree.Tree {
	s := scene.NewSphere(scene.NewSurface(0, 1, 0, 0, 1, geom.Gray(1)), geom.P(0, 0, 0), 1)
	return octree.Build([]scene.Primitive{s}, octree.Options{})
}

func TestScaleView(t *testing.T) {
	assert := assert.New(t)
	view := SliceView{Tree: sphereTree(), Axis: 2, XSize: 100, YSize: 50}
	view.computeScaleAndTranslation()

	// The root is the sphere's bounds padded by 5: a cube of edge 12.
	assert.InDelta(50.0/12, view.scale, 1e-12)
	assert.EqualValues(6, view.xTranslate)
	assert.EqualValues(6, view.yTranslate)

	p := view.toImage(Point2D{X: -6, Y: -6})
	assert.InDelta(0, p.X, 1e-12)
	assert.InDelta(50, p.Y, 1e-12)
}

func TestSliceLeaves(t *testing.T) {
	tests := map[string]struct {
		axis   int
		offset float64
		leaves int
	}{
		"through the middle": {axis: 2, offset: 0, leaves: 8},
		"upper half":         {axis: 2, offset: 3, leaves: 4},
		"side view":          {axis: 0, offset: -2, leaves: 4},
		"outside":            {axis: 1, offset: 10, leaves: 0},
	}
	tree := sphereTree()
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			view := SliceView{Tree: tree, Axis: tc.axis, Offset: tc.offset, XSize: 64, YSize: 64}
			assert.Len(t, view.Leaves(), tc.leaves)
		})
	}
}

func TestDraw(t *testing.T) {
	assert := assert.New(t)
	view := SliceView{Tree: sphereTree(), Axis: 2, XSize: 80, YSize: 60}
	img := view.Draw()
	assert.Equal(80, img.Bounds().Dx())
	assert.Equal(60, img.Bounds().Dy())

	path := filepath.Join(t.TempDir(), "slice.png")
	require.NoError(t, SavePNG(path, img))
	assert.FileExists(path)
}

func TestPlotOccupancy(t *testing.T) {
	assert := assert.New(t)
	img, err := PlotOccupancy(sphereTree().Stats(), 300, 200)
	require.NoError(t, err)
	assert.Equal(300, img.Bounds().Dx())
	assert.Equal(200, img.Bounds().Dy())

	_, err = PlotOccupancy(octree.Stats{}, 300, 200)
	assert.ErrorIs(err, ErrNoLeaves)
}
