package geom

import (
	"math"

	"github.com/fogleman/pt/pt"
)

const (
	// Sigma replaces a zero length when normalizing so division never traps.
	Sigma = 1e-16
	// Epsilon is the general tolerance for curved-surface root tests.
	Epsilon = 1e-6
	// DegToRad converts degrees to radians.
	DegToRad = math.Pi / 180
)

// Vector is a free direction in space.
type Vector pt.Vector

// V is a shorthand constructor for Vector
func V(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func (a Vector) pt() pt.Vector {
	return pt.Vector(a)
}

func (a Vector) Add(b Vector) Vector {
	return Vector(a.pt().Add(b.pt()))
}

func (a Vector) Sub(b Vector) Vector {
	return Vector(a.pt().Sub(b.pt()))
}

func (a Vector) Scale(s float64) Vector {
	return Vector(a.pt().MulScalar(s))
}

func (a Vector) Dot(b Vector) float64 {
	return a.pt().Dot(b.pt())
}

func (a Vector) Cross(b Vector) Vector {
	return Vector(a.pt().Cross(b.pt()))
}

func (a Vector) Negate() Vector {
	return Vector(a.pt().Negate())
}

func (a Vector) Length() float64 {
	return a.pt().Length()
}

// Normalize returns the unit vector along a together with a's length.
// A zero vector stays zero and reports Sigma as its length.
func (a Vector) Normalize() (Vector, float64) {
	l := a.Length()
	if l == 0 {
		l = Sigma
	}
	return a.Scale(1 / l), l
}

// Unit is Normalize without the length.
func (a Vector) Unit() Vector {
	u, _ := a.Normalize()
	return u
}

// Axis returns the component selected by axis (0=x, 1=y, 2=z).
func (a Vector) Axis(axis int) float64 {
	switch axis {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// NormCross returns the normalized cross product of a and b and the
// length of the raw product; a zero length means a and b are parallel.
func NormCross(a, b Vector) (Vector, float64) {
	c := a.Cross(b)
	if c.Length() == 0 {
		return c, 0
	}
	return c.Normalize()
}

// Reflect mirrors incident about normal: d + n*(-2 n.d).
func Reflect(incident, normal Vector) Vector {
	return incident.Add(normal.Scale(-2 * normal.Dot(incident)))
}

// Rotate turns mark about axis by theta radians.
func Rotate(axis, mark Vector, theta float64) Vector {
	ct := math.Cos(theta)
	st := math.Sin(theta)
	t := 1 - ct
	return Vector{
		X: mark.X*(t*axis.X*axis.X+ct) + mark.Y*(t*axis.X*axis.Y+st*axis.Z) + mark.Z*(t*axis.X*axis.Z-st*axis.Y),
		Y: mark.X*(t*axis.X*axis.Y-st*axis.Z) + mark.Y*(t*axis.Y*axis.Y+ct) + mark.Z*(t*axis.Y*axis.Z+st*axis.X),
		Z: mark.X*(t*axis.X*axis.Z+st*axis.Y) + mark.Y*(t*axis.Y*axis.Z-st*axis.X) + mark.Z*(t*axis.Z*axis.Z+ct),
	}
}

// Angle returns the angle between a and b in radians.
func Angle(a, b Vector) float64 {
	d := a.Length() * b.Length()
	if d == 0 {
		return 0
	}
	c := a.Dot(b) / d
	return math.Acos(math.Max(-1, math.Min(1, c)))
}
