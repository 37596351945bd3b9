package scene

import "github.com/jdginn/go-raytracer/geom"

// Kind is the type code a record carries in a scene description.
type Kind int

const (
	KindPointLight  Kind = 0
	KindSphere      Kind = 1
	KindBox         Kind = 2
	KindOrthoplane  Kind = 3
	KindCylinder    Kind = 4
	KindQuadric     Kind = 5
	KindSpotLight   Kind = 6
	KindPolygon     Kind = 7
	KindPlane       Kind = 8
	KindRing        Kind = 9
	KindTexture     Kind = 255
	KindEndOfRecord Kind = -1
)

func (k Kind) String() string {
	switch k {
	case KindPointLight:
		return "point light"
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	case KindOrthoplane:
		return "orthoplane"
	case KindCylinder:
		return "cylinder"
	case KindQuadric:
		return "quadric"
	case KindSpotLight:
		return "spot light"
	case KindPolygon:
		return "polygon"
	case KindPlane:
		return "plane"
	case KindRing:
		return "ring"
	case KindTexture:
		return "texture"
	}
	return "unknown"
}

// IsShape reports whether k is a primitive shape code.
func (k Kind) IsShape() bool {
	switch k {
	case KindSphere, KindBox, KindOrthoplane, KindCylinder, KindQuadric,
		KindPolygon, KindPlane, KindRing:
		return true
	}
	return false
}

// Surface holds the material of a primitive.
type Surface struct {
	// Texture index, counting from 1; 0 means a flat color
	Texture int
	// Diffuse, specular and transmission coefficients, each in [0,1]
	KDiff, KSpec, KTran float64
	// Index of refraction
	N float64
	// Inverse of N, cached at construction
	InvN float64
	// Flat color in [0,1]
	Color geom.Color
}

// NewSurface builds a Surface and caches 1/n.
func NewSurface(texture int, kdiff, kspec, ktran, n float64, color geom.Color) Surface {
	s := Surface{Texture: texture, KDiff: kdiff, KSpec: kspec, KTran: ktran, N: n, Color: color}
	s.InvN = s.inverseN()
	return s
}

func (s Surface) inverseN() float64 {
	if s.N == 0 {
		return 1
	}
	return 1 / s.N
}

// Hit is the intersection of a ray with one primitive.
type Hit struct {
	T      float64
	Point  geom.Point
	Normal geom.Vector
}

// Shading is the local result of shading a hit: the oriented normal, the
// working surface (texture already applied) and the candidate secondary rays.
type Shading struct {
	Point       geom.Point
	Normal      geom.Vector
	Surface     Surface
	Transmitted geom.Ray
	Reflected   geom.Ray
	// HasTransmitted and HasReflected mark which candidate rays exist
	HasTransmitted bool
	HasReflected   bool
	// Entering is the flag the transmitted ray carries onward
	Entering bool
}

// Primitive is the capability set every shape provides.
type Primitive interface {
	// Intersect returns the nearest forward hit of r, if any.
	Intersect(r geom.Ray) (Hit, bool)
	// Shade computes the local shading of a hit found by Intersect.
	Shade(r geom.Ray, h Hit, entering bool, tex Textures) Shading
	// Bounds returns the axis-aligned extents used for indexing.
	Bounds() geom.Box
	// OverlapsBox conservatively reports whether the shape could be hit
	// inside b. False negatives are bugs; false positives only cost time.
	OverlapsBox(b geom.Box) bool
	Kind() Kind
	// Material returns the shape's surface.
	Material() Surface
}
