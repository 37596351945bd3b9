package scene

import (
	"path/filepath"
	"testing"

	"github.com/hpinc/go3mf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-raytracer/geom"
)

func write3MF(t *testing.T, model *go3mf.Model) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.3mf")
	w, err := go3mf.CreateWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Encode(model))
	require.NoError(t, w.Close())
	return path
}

func TestImport3MF(t *testing.T) {
	assert := assert.New(t)
	mesh := &go3mf.Mesh{
		Vertices: go3mf.Vertices{Vertex: []go3mf.Point3D{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {2, 0, 0},
		}},
		Triangles: go3mf.Triangles{Triangle: []go3mf.Triangle{
			{V1: 0, V2: 1, V3: 2},
			{V1: 1, V2: 3, V3: 2},
			// collinear
			{V1: 0, V2: 1, V3: 4},
		}},
	}
	model := &go3mf.Model{
		Resources: go3mf.Resources{Objects: []*go3mf.Object{{ID: 1, Name: "panel", Mesh: mesh}}},
		Build:     go3mf.Build{Items: []*go3mf.Item{{ObjectID: 1}}},
	}
	path := write3MF(t, model)

	mirror := NewSurface(0, 0, 1, 0, 1, geom.Black)
	prims, skipped, err := Import3MF(path, MeshImport{
		Scale:     2,
		Offset:    geom.V(10, 0, -1),
		Surface:   plain,
		Materials: map[string]Surface{"panel": mirror},
	})
	require.NoError(t, err)
	assert.Equal(1, skipped)
	require.Len(t, prims, 2)

	tri := prims[0].(*Polygon)
	assert.Equal(mirror, tri.Surface)
	assert.Equal([]geom.Point{geom.P(10, 0, -1), geom.P(12, 0, -1), geom.P(10, 2, -1)}, tri.Vertices())

	h, ok := tri.Intersect(ray(geom.P(10.5, 0.5, 5), geom.V(0, 0, -1)))
	assert.True(ok)
	assert.InDelta(6, h.T, 1e-9)

	b := prims[1].Bounds()
	assert.Equal(geom.P(10, 0, -1), b.Min)
	assert.Equal(geom.P(12, 2, -1), b.Max)
}

func TestImport3MFDefaults(t *testing.T) {
	assert := assert.New(t)
	mesh := &go3mf.Mesh{
		Vertices:  go3mf.Vertices{Vertex: []go3mf.Point3D{{0, 0, 0}, {0, 0, 3}, {0, 3, 0}}},
		Triangles: go3mf.Triangles{Triangle: []go3mf.Triangle{{V1: 0, V2: 1, V3: 2}}},
	}
	path := write3MF(t, &go3mf.Model{
		Resources: go3mf.Resources{Objects: []*go3mf.Object{{ID: 4, Mesh: mesh}}},
		Build:     go3mf.Build{Items: []*go3mf.Item{{ObjectID: 4}}},
	})

	prims, skipped, err := Import3MF(path, MeshImport{Surface: plain})
	require.NoError(t, err)
	assert.Zero(skipped)
	require.Len(t, prims, 1)
	assert.Equal(plain, prims[0].Material())
	assert.Equal(geom.P(0, 3, 0), prims[0].(*Polygon).Vertices()[2])
}

func TestImport3MFMissingFile(t *testing.T) {
	_, _, err := Import3MF(filepath.Join(t.TempDir(), "absent.3mf"), MeshImport{})
	assert.ErrorContains(t, err, "absent.3mf")
}
