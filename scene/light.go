package scene

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
)

// Light is a source of direct illumination.
type Light interface {
	// Location is where shadow rays are aimed.
	Location() geom.Point
	// Illumination returns the light reaching a surface with the given
	// normal, where toLight is the unit vector from the surface to the
	// light. Occlusion is the caller's business.
	Illumination(normal, toLight geom.Vector) geom.Color
	Kind() Kind
}

// PointLight radiates Color equally in every direction.
type PointLight struct {
	Position geom.Point
	Color    geom.Color
}

func (l *PointLight) Location() geom.Point { return l.Position }
func (l *PointLight) Kind() Kind           { return KindPointLight }

func (l *PointLight) Illumination(normal, toLight geom.Vector) geom.Color {
	return l.Color.Scale(normal.Dot(toLight))
}

// SpotLight radiates Color in a cone of half-angle FOV radians around Axis,
// falling off with the cosine of the angle from the axis.
type SpotLight struct {
	Position geom.Point
	Axis     geom.Vector
	FOV      float64
	Color    geom.Color
}

func (l *SpotLight) Location() geom.Point { return l.Position }
func (l *SpotLight) Kind() Kind           { return KindSpotLight }

func (l *SpotLight) Illumination(normal, toLight geom.Vector) geom.Color {
	theta := geom.Angle(l.Axis, toLight.Negate())
	if theta > l.FOV || l.FOV <= 0 {
		return geom.Black
	}
	return l.Color.Scale(math.Cos(theta*(math.Pi/2)/l.FOV) * normal.Dot(toLight))
}
