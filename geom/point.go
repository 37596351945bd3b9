package geom

import "github.com/fogleman/pt/pt"

// Point is a position in space. Points subtract to Vectors and are moved by
// Vectors; two Points never add.
type Point pt.Vector

// P is a shorthand constructor for Point
func P(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

func (p Point) pt() pt.Vector {
	return pt.Vector(p)
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector(p.pt().Sub(q.pt()))
}

// Add moves p along v.
func (p Point) Add(v Vector) Point {
	return Point(p.pt().Add(pt.Vector(v)))
}

// Vector returns the position vector of p relative to the origin.
func (p Point) Vector() Vector {
	return Vector(p)
}

func (p Point) Min(q Point) Point {
	return Point(p.pt().Min(q.pt()))
}

func (p Point) Max(q Point) Point {
	return Point(p.pt().Max(q.pt()))
}

// Axis returns the component selected by axis (0=x, 1=y, 2=z).
func (p Point) Axis(axis int) float64 {
	return Vector(p).Axis(axis)
}

// WithAxis returns p with the selected component replaced by v.
func (p Point) WithAxis(axis int, v float64) Point {
	switch axis {
	case 0:
		p.X = v
	case 1:
		p.Y = v
	default:
		p.Z = v
	}
	return p
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}
