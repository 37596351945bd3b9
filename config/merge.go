package config

import (
	"fmt"
	"log"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/scene"
	"github.com/jdginn/go-raytracer/tracer"
)

var supersampleCodes = map[string]int{
	"none": scene.SupersampleNone,
	"2x2":  scene.Supersample2x2,
	"3x3":  scene.Supersample3x3,
}

var orderCodes = map[string]int{
	"top_down":  0,
	"bottom_up": 1,
}

// Merge copies every non-zero field of o over c.
func (c *RenderConfig) Merge(o RenderConfig) {
	if o.Scene.Path != "" {
		c.Scene.Path = o.Scene.Path
	}
	c.Scene.Meshes = append(c.Scene.Meshes, o.Scene.Meshes...)

	mergeInt(&c.Render.Threshold, o.Render.Threshold)
	mergeInt(&c.Render.MaxDepth, o.Render.MaxDepth)
	mergeString(&c.Render.Supersample, o.Render.Supersample)
	mergeString(&c.Render.Order, o.Render.Order)
	mergeInt(&c.Render.Width, o.Render.Width)
	mergeInt(&c.Render.Height, o.Render.Height)
	mergeInt(&c.Render.Workers, o.Render.Workers)
	mergeInt(&c.Render.MaxPrimitives, o.Render.MaxPrimitives)
	mergeInt(&c.Render.MaxOctreeDepth, o.Render.MaxOctreeDepth)
	if o.Render.Cutoff != 0 {
		c.Render.Cutoff = o.Render.Cutoff
	}
	c.Render.ClampNegativeLight = c.Render.ClampNegativeLight || o.Render.ClampNegativeLight

	mergeString(&c.Output.Format, o.Output.Format)
	mergeString(&c.Output.Path, o.Output.Path)
	mergeInt(&c.Output.Channels, o.Output.Channels)

	c.Display.Interactive = c.Display.Interactive || o.Display.Interactive
	c.Display.Quiet = c.Display.Quiet || o.Display.Quiet
}

func mergeInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ApplyTo overrides the scene header with the configured render and output
// settings.
func (c *RenderConfig) ApplyTo(p *scene.Params) {
	r := c.Render
	if r.Threshold > 0 {
		p.Threshold = r.Threshold
	}
	if r.MaxDepth > 0 {
		p.MaxDepth = r.MaxDepth
	}
	if code, ok := supersampleCodes[r.Supersample]; ok {
		p.Supersample = code
	}
	if code, ok := orderCodes[r.Order]; ok {
		p.Order = code
	}
	if r.Width > 0 {
		p.HRes = r.Width
	}
	if r.Height > 0 {
		p.VRes = r.Height
	}
	if code, ok := c.Output.storage(); ok {
		p.Storage = code
	}
	if c.Display.Interactive {
		p.Display = scene.DisplayInteractive
	}
}

// storage maps the output format and channel count to a storage code.
func (o Output) storage() (int, bool) {
	four := o.Channels == 4
	switch o.Format {
	case "bmp", "png":
		return scene.StorageBMP, true
	case "raw":
		if four {
			return scene.StorageStdout, true
		}
		return scene.StorageRaw, true
	case "raster":
		if four {
			return scene.StorageRaster32, true
		}
		return scene.StorageRaster, true
	}
	return 0, false
}

// TracerOptions returns the tracer tuning carried by the config.
func (c *RenderConfig) TracerOptions() tracer.Options {
	return tracer.Options{
		Threshold:          c.Render.Threshold,
		Cutoff:             c.Render.Cutoff,
		ClampNegativeLight: c.Render.ClampNegativeLight,
		MaxOctreeDepth:     c.Render.MaxOctreeDepth,
		Workers:            c.Render.Workers,
	}
}

// LoadOptions returns the scene loader settings carried by the config.
func (c *RenderConfig) LoadOptions() scene.LoadOptions {
	return scene.LoadOptions{MaxPrimitives: c.Render.MaxPrimitives}
}

func (s Surface) surface() scene.Surface {
	return scene.NewSurface(s.Texture, s.KDiff, s.KSpec, s.KTran, s.N, geom.RGB(s.Color[0], s.Color[1], s.Color[2]))
}

// MeshImport returns the import settings for m.
func (m Mesh) MeshImport() scene.MeshImport {
	return scene.MeshImport{
		Scale:   m.Scale,
		Offset:  geom.V(m.Offset[0], m.Offset[1], m.Offset[2]),
		Surface: m.Surface.surface(),
	}
}

// LoadScene reads the configured scene, appends its meshes and applies the
// render overrides.
func (c *RenderConfig) LoadScene() (*scene.Scene, error) {
	opts := c.LoadOptions()
	s, err := scene.LoadFile(c.Scene.Path, opts)
	if err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", c.Scene.Path, err)
	}

	limit := opts.MaxPrimitives
	if limit <= 0 {
		limit = scene.DefaultMaxPrimitives
	}
	for _, m := range c.Scene.Meshes {
		prims, skipped, err := scene.Import3MF(m.Path, m.MeshImport())
		if err != nil {
			return nil, fmt.Errorf("importing mesh %s: %w", m.Path, err)
		}
		if skipped > 0 {
			log.Printf("%s: skipped %d degenerate triangles", m.Path, skipped)
		}
		if len(s.Primitives)+len(prims) > limit {
			return nil, fmt.Errorf("importing mesh %s: %d primitives: %w",
				m.Path, len(s.Primitives)+len(prims), scene.ErrTooManyPrimitives)
		}
		s.Primitives = append(s.Primitives, prims...)
	}

	c.ApplyTo(&s.Params)
	return s, nil
}
