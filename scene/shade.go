package scene

import (
	"math"

	"github.com/jdginn/go-raytracer/geom"
)

// refract bends incident through a surface with outward normal n.
//
// Entering a solid uses 1/ior and keeps the outward normal; leaving it uses
// ior and turns the normal around. The returned normal is the one the node
// keeps and the returned flag is the toggled entering state. When the
// tangential component reaches unit length the ray is totally internally
// reflected and the mirror direction is returned instead.
func refract(incident, n geom.Vector, s Surface, entering bool) (dir, normal geom.Vector, next bool) {
	var eta, ci float64
	if entering {
		eta = s.InvN
		if eta == 0 {
			eta = s.inverseN()
		}
		ci = n.Negate().Dot(incident)
		next = false
	} else {
		eta = s.N
		ci = n.Dot(incident)
		n = n.Negate()
		next = true
	}
	t := n.Scale(ci).Add(incident).Scale(eta)
	q := t.Dot(t)
	if math.Sqrt(q) < 1 {
		return t.Sub(n.Scale(math.Sqrt(1 - q))), n, next
	}
	return geom.Reflect(incident, n), n, next
}

// uvMapper returns texture coordinates for a hit.
type uvMapper func(h Hit) (u, v float64)

// shadeSolid shades a closed surface: mirror reflection, Snell refraction
// with the entering flag toggled, and a texture lookup through mapUV.
func shadeSolid(r geom.Ray, h Hit, s Surface, entering bool, tex Textures, mapUV uvMapper) Shading {
	sh := Shading{
		Point:    h.Point,
		Normal:   h.Normal,
		Surface:  s,
		Entering: entering,
	}
	incident := r.Direction
	if s.KSpec > 0 {
		sh.Reflected, _ = geom.NewRay(h.Point, geom.Reflect(incident, h.Normal))
		sh.HasReflected = true
	}
	if s.KTran > 0 {
		dir, normal, next := refract(incident, h.Normal, s, entering)
		sh.Transmitted, _ = geom.NewRay(h.Point, dir)
		sh.HasTransmitted = true
		sh.Normal = normal
		sh.Entering = next
	}
	applyTexture(&sh, h, tex, mapUV)
	return sh
}

// shadePlanar shades a zero-thickness surface. Light passes straight through
// without bending and the entering flag is left alone.
func shadePlanar(r geom.Ray, h Hit, s Surface, entering bool, tex Textures, mapUV uvMapper) Shading {
	sh := Shading{
		Point:    h.Point,
		Normal:   h.Normal,
		Surface:  s,
		Entering: entering,
	}
	if s.KTran > 0 {
		sh.Transmitted = geom.Ray{Origin: h.Point, Direction: r.Direction}
		sh.HasTransmitted = true
	}
	if s.KSpec > 0 {
		sh.Reflected, _ = geom.NewRay(h.Point, geom.Reflect(r.Direction, h.Normal))
		sh.HasReflected = true
	}
	applyTexture(&sh, h, tex, mapUV)
	return sh
}

func applyTexture(sh *Shading, h Hit, tex Textures, mapUV uvMapper) {
	if mapUV == nil || sh.Surface.KDiff <= 0 || sh.Surface.Texture == 0 {
		return
	}
	u, v := mapUV(h)
	if c, ok := tex.ColorAt(sh.Surface.Texture, u, v); ok {
		sh.Surface.Color = c
	}
}

// crossingTest reports whether (u, v) lies inside the polygon given by us,
// vs using the crossing-number test along the +u axis.
func crossingTest(us, vs []float64, u, v float64) bool {
	n := len(us)
	if n < 3 {
		return false
	}
	crossings := 0
	sign := func(x float64) int {
		if x < 0 {
			return -1
		}
		return 1
	}
	sh := sign(vs[0] - v)
	for a := 0; a < n; a++ {
		b := (a + 1) % n
		ua, va := us[a]-u, vs[a]-v
		ub, vb := us[b]-u, vs[b]-v
		nsh := sign(vb)
		if sh != nsh {
			if ua >= 0 && ub >= 0 {
				crossings++
			} else if ua >= 0 || ub >= 0 {
				if ua-va*(ub-ua)/(vb-va) > 0 {
					crossings++
				}
			}
			sh = nsh
		}
	}
	return crossings%2 == 1
}

// dominantAxis returns the axis along which n has the largest magnitude.
// The crossing test projects onto the two remaining axes.
func dominantAxis(n geom.Vector) int {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	if ax > ay && ax > az {
		return 0
	}
	if ay > az {
		return 1
	}
	return 2
}

// project drops the dominant axis of a point.
func project(p geom.Point, drop int) (u, v float64) {
	switch drop {
	case 0:
		return p.Y, p.Z
	case 1:
		return p.X, p.Z
	default:
		return p.X, p.Y
	}
}

// planeOverlapsBox reports whether the plane n.p + d = 0 passes through b.
func planeOverlapsBox(n geom.Vector, d float64, b geom.Box) bool {
	var lo, hi = math.Inf(1), math.Inf(-1)
	for _, c := range b.Corners() {
		s := n.Dot(c.Vector()) + d
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	return lo <= geom.Epsilon && hi >= -geom.Epsilon
}
