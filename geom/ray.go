package geom

// Ray is a half line with a unit direction.
type Ray struct {
	Origin    Point
	Direction Vector
}

// NewRay builds a ray from origin along dir and returns the length of dir
// before normalization. Shadow rays use that length as the distance to the
// light.
func NewRay(origin Point, dir Vector) (Ray, float64) {
	d, l := dir.Normalize()
	return Ray{Origin: origin, Direction: d}, l
}

// RayTo builds a ray from origin through target.
func RayTo(origin, target Point) (Ray, float64) {
	return NewRay(origin, target.Sub(origin))
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Scale(t))
}
