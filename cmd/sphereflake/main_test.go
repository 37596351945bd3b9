package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/scene"
)

func TestSphereflakeCounts(t *testing.T) {
	for depth, want := range []int{2, 14, 122, 1094} {
		assert.Len(t, Sphereflake(depth).Primitives, want, "depth %d", depth)
	}
}

func TestSphereflakeGeometry(t *testing.T) {
	assert := assert.New(t)
	s := Sphereflake(1)

	root := s.Primitives[1].(*scene.Sphere)
	for _, p := range s.Primitives[2:] {
		child := p.(*scene.Sphere)
		assert.InDelta(64*scale, child.Radius, 1e-12)
		// Children touch their parent.
		assert.InDelta(root.Radius+child.Radius, child.Center.Distance(root.Center), 1e-9)
	}

	// The first child sits on the equator in the mark direction.
	first := s.Primitives[2].(*scene.Sphere)
	assert.InDelta(0, first.Center.Sub(geom.P(0, -256, -64*(1+scale))).Length(), 1e-9)
}

func TestSphereflakeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sf1.sdf")
	require.NoError(t, scene.SaveFile(path, Sphereflake(1)))
	s, err := scene.LoadFile(path, scene.LoadOptions{})
	require.NoError(t, err)
	assert.Len(t, s.Primitives, 14)
	assert.Equal(t, 1280, s.Params.HRes)
	assert.Equal(t, scene.KindOrthoplane, s.Primitives[0].Kind())
}
