package scene

import "github.com/jdginn/go-raytracer/geom"

// Display codes.
const (
	DisplayNone        = 0
	DisplayInteractive = 3
	DisplayOff         = 4
)

// Storage codes. Raw, raster and BMP output carry three bytes per pixel;
// the 32-bit formats carry four.
const (
	StorageNone     = 0
	StorageRaw      = 1
	StorageRaster   = 2
	StorageRaster32 = 3
	StorageStdout   = 4
	StorageBMP      = 5
)

// Supersampling codes.
const (
	SupersampleNone = 0
	Supersample2x2  = 1
	Supersample3x3  = 2
)

// DefaultThreshold replaces a zero octree threshold.
const DefaultThreshold = 16

// Params are the global render parameters from a scene header.
type Params struct {
	Display  int
	Storage  int
	// Order 0 renders rows top down; anything else bottom up.
	Order int
	HRes  int
	VRes  int
	// Threshold is the most primitives a leaf voxel holds before it is split.
	Threshold    int
	StartingLine int
	Supersample  int
	NumLines     int
	// FOV is the horizontal view angle in whole degrees.
	FOV             int
	Aspect          float64
	CameraLocation  geom.Point
	CameraDirection geom.Vector
	Ambient         geom.Color
	MaxDepth        int
	Background      geom.Color
}

// BytesPerPixel returns the pixel size of the configured storage format.
func (p Params) BytesPerPixel() int {
	switch p.Storage {
	case StorageRaw, StorageRaster, StorageBMP:
		return 3
	default:
		return 4
	}
}

// OctreeThreshold returns Threshold, or DefaultThreshold when it is unset.
func (p Params) OctreeThreshold() int {
	if p.Threshold <= 0 {
		return DefaultThreshold
	}
	return p.Threshold
}

// normalize clamps out of range codes to their defaults.
func (p *Params) normalize() {
	if p.Display < 0 || p.Display > 4 {
		p.Display = DisplayNone
	}
	if p.Storage < 0 || p.Storage > 5 {
		p.Storage = StorageNone
	}
	if p.Supersample < 0 || p.Supersample > 2 {
		p.Supersample = SupersampleNone
	}
}

// Scene is everything a render needs. It is read-only once loaded.
type Scene struct {
	Params     Params
	Lights     []Light
	Primitives []Primitive
	Textures   Textures
}

// Bounds returns the box holding every primitive.
func (s *Scene) Bounds() geom.Box {
	b := geom.EmptyBox()
	for _, p := range s.Primitives {
		b = b.Extend(p.Bounds())
	}
	return b
}

// CountByKind tallies primitives by kind.
func (s *Scene) CountByKind() map[Kind]int {
	m := make(map[Kind]int)
	for _, p := range s.Primitives {
		m[p.Kind()]++
	}
	return m
}
