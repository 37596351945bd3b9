package scene

import (
	"errors"
	"fmt"

	"github.com/hpinc/go3mf"
	"github.com/jdginn/go-raytracer/geom"
)

// MeshImport controls how a 3MF model becomes polygons.
type MeshImport struct {
	// Scale multiplies every vertex coordinate.
	Scale float64
	// Offset is added to every vertex after scaling.
	Offset geom.Vector
	// Surface is used for objects not listed in Materials.
	Surface Surface
	// Materials maps 3MF object names to surfaces.
	Materials map[string]Surface
}

// Import3MF reads the build items of a 3MF model and returns one triangle
// polygon per mesh face. Degenerate faces are skipped and counted.
func Import3MF(path string, opts MeshImport) ([]Primitive, int, error) {
	var model go3mf.Model
	r, err := go3mf.OpenReader(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	if opts.Scale == 0 {
		opts.Scale = 1
	}

	var (
		prims   []Primitive
		skipped int
	)
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}
		surface := opts.Surface
		if s, ok := opts.Materials[obj.Name]; ok {
			surface = s
		}
		verts := obj.Mesh.Vertices.Vertex
		vertex := func(i int) geom.Point {
			v := verts[i]
			return geom.P(
				float64(v.X())*opts.Scale,
				float64(v.Y())*opts.Scale,
				float64(v.Z())*opts.Scale,
			).Add(opts.Offset)
		}
		for _, t := range obj.Mesh.Triangles.Triangle {
			p, err := NewPolygon(surface, []geom.Point{vertex(int(t.V1)), vertex(int(t.V2)), vertex(int(t.V3))})
			if errors.Is(err, ErrDegenerate) {
				skipped++
				continue
			}
			if err != nil {
				return nil, 0, err
			}
			prims = append(prims, p)
		}
	}
	return prims, skipped, nil
}
