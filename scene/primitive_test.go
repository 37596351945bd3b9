package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

var plain = NewSurface(0, 1, 0, 0, 1, geom.RGB(1, 1, 1))

func ray(o geom.Point, d geom.Vector) geom.Ray {
	r, _ := geom.NewRay(o, d)
	return r
}

func TestSphereIntersectProperty(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(7))
	s := NewSphere(plain, geom.P(1, -2, 3), 2.5)

	for i := 0; i < 2000; i++ {
		o := geom.P(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
		d := geom.V(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
		if d.Length() < 0.1 {
			continue
		}
		r := ray(o, d)
		oc := s.Center.Sub(o)
		tca := oc.Dot(r.Direction)
		perp := math.Sqrt(math.Max(0, oc.Dot(oc)-tca*tca))
		inside := oc.Length() < s.Radius

		if !inside && (math.Abs(perp-s.Radius) < 1e-3 || math.Abs(tca) < 1e-3) {
			continue
		}
		if inside && s.Radius-oc.Length() < 1e-3 {
			continue
		}

		h, ok := s.Intersect(r)
		if inside {
			assert.True(ok, "ray %d starts inside", i)
			// far root: the hit is ahead of the projection of the center
			assert.Greater(h.T, tca-tol)
		} else {
			assert.Equal(tca > 0 && perp < s.Radius, ok, "ray %d", i)
		}
		if ok {
			assert.InDelta(s.Radius, h.Point.Distance(s.Center), 1e-6)
			assert.InDelta(1, h.Normal.Length(), 1e-9)
			assert.Greater(h.T, 0.0)
		}
	}
}

func TestIntersect(t *testing.T) {
	quadric := func(lo, hi geom.Point) Primitive {
		return NewQuadric(plain, [10]float64{1, 0, 0, 0, 1, 0, 0, 1, 0, -4}, lo, hi)
	}
	cyl, err := NewCylinder(plain, geom.P(0, 0, 0), geom.P(0, 10, 0), 1)
	assert.NoError(t, err)
	tri, err := NewPolygon(plain, []geom.Point{geom.P(0, 0, 0), geom.P(1, 0, 0), geom.P(0, 1, 0)})
	assert.NoError(t, err)
	quad, err := NewPlane(plain, geom.P(0, 0, 0), geom.P(1, 0, 0), geom.P(1, 1, 0))
	assert.NoError(t, err)
	ring, err := NewRing(plain, geom.V(0, 0, 2), geom.P(5, 5, 0), 1, 2)
	assert.NoError(t, err)
	floor := NewOrthoplane(plain, geom.V(0, 1, 0), 1, geom.P(-5, -1.1, -5), geom.P(5, -0.9, 5))

	tests := []struct {
		name   string
		prim   Primitive
		ray    geom.Ray
		hit    bool
		t      float64
		normal geom.Vector
	}{
		{"sphere from outside", NewSphere(plain, geom.P(0, 0, 0), 2), ray(geom.P(0, 0, -10), geom.V(0, 0, 1)), true, 8, geom.V(0, 0, -1)},
		{"sphere from inside", NewSphere(plain, geom.P(0, 0, 0), 2), ray(geom.P(0, 0, 0), geom.V(0, 0, 1)), true, 2, geom.V(0, 0, 1)},
		{"sphere behind", NewSphere(plain, geom.P(0, 0, 0), 2), ray(geom.P(0, 0, 10), geom.V(0, 0, 1)), false, 0, geom.Vector{}},
		{"box from outside", NewBox(plain, geom.P(1, 1, 1), geom.P(-1, -1, -1)), ray(geom.P(0, 0, -5), geom.V(0, 0, 1)), true, 4, geom.V(0, 0, -1)},
		{"box from inside", NewBox(plain, geom.P(-1, -1, -1), geom.P(1, 1, 1)), ray(geom.P(0, 0, 0), geom.V(0, 0, 1)), true, 1, geom.V(0, 0, 1)},
		{"box miss", NewBox(plain, geom.P(-1, -1, -1), geom.P(1, 1, 1)), ray(geom.P(3, 0, -5), geom.V(0, 0, 1)), false, 0, geom.Vector{}},
		{"orthoplane from above", floor, ray(geom.P(0, 5, 0), geom.V(0, -1, 0)), true, 6, geom.V(0, 1, 0)},
		{"orthoplane from below", floor, ray(geom.P(0, -5, 0), geom.V(0, 1, 0)), true, 4, geom.V(0, 1, 0)},
		{"orthoplane outside bounds", floor, ray(geom.P(10, 5, 0), geom.V(0, -1, 0)), false, 0, geom.Vector{}},
		{"orthoplane parallel", floor, ray(geom.P(0, -1, -10), geom.V(0, 0, 1)), false, 0, geom.Vector{}},
		{"polygon inside", tri, ray(geom.P(0.2, 0.2, -1), geom.V(0, 0, 1)), true, 1, geom.V(0, 0, 1)},
		{"polygon outside", tri, ray(geom.P(0.8, 0.8, -1), geom.V(0, 0, 1)), false, 0, geom.Vector{}},
		{"plane inside", quad, ray(geom.P(0.5, 0.25, 5), geom.V(0, 0, -1)), true, 5, geom.V(0, 0, 1)},
		{"plane outside", quad, ray(geom.P(1.5, 0.25, 5), geom.V(0, 0, -1)), false, 0, geom.Vector{}},
		{"ring band", ring, ray(geom.P(6.5, 5, 3), geom.V(0, 0, -1)), true, 3, geom.V(0, 0, 1)},
		{"ring hole", ring, ray(geom.P(5, 5, 3), geom.V(0, 0, -1)), false, 0, geom.Vector{}},
		{"ring beyond", ring, ray(geom.P(0, 0, 3), geom.V(0, 0, -1)), false, 0, geom.Vector{}},
		{"cylinder side", cyl, ray(geom.P(-5, 5, 0), geom.V(1, 0, 0)), true, 4, geom.V(-1, 0, 0)},
		{"cylinder above", cyl, ray(geom.P(-5, 12, 0), geom.V(1, 0, 0)), false, 0, geom.Vector{}},
		{"cylinder from inside", cyl, ray(geom.P(0, 5, 0), geom.V(1, 0, 0)), true, 1, geom.V(1, 0, 0)},
		{"cylinder along axis", cyl, ray(geom.P(0, -5, 0), geom.V(0, 1, 0)), false, 0, geom.Vector{}},
		{"quadric near root", quadric(geom.P(-3, -3, -3), geom.P(3, 3, 3)), ray(geom.P(0, 0, -10), geom.V(0, 0, 1)), true, 8, geom.V(0, 0, -1)},
		{"quadric clipped to far root", quadric(geom.P(-3, -3, 0), geom.P(3, 3, 3)), ray(geom.P(0, 0, -10), geom.V(0, 0, 1)), true, 12, geom.V(0, 0, -1)},
		{"quadric clipped away", quadric(geom.P(-3, -3, -3), geom.P(3, 3, -2.5)), ray(geom.P(0, 0, -10), geom.V(0, 0, 1)), false, 0, geom.Vector{}},
		{"quadric miss", quadric(geom.P(-3, -3, -3), geom.P(3, 3, 3)), ray(geom.P(5, 0, -10), geom.V(0, 0, 1)), false, 0, geom.Vector{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			h, ok := tt.prim.Intersect(tt.ray)
			assert.Equal(tt.hit, ok)
			if !tt.hit || !ok {
				return
			}
			assert.InDelta(tt.t, h.T, 1e-6)
			assert.InDelta(tt.normal.X, h.Normal.X, 1e-6)
			assert.InDelta(tt.normal.Y, h.Normal.Y, 1e-6)
			assert.InDelta(tt.normal.Z, h.Normal.Z, 1e-6)
			p := tt.ray.At(h.T)
			assert.InDelta(0, p.Distance(h.Point), 1e-9)
		})
	}
}

func TestOrthoplaneHitsOffGrid(t *testing.T) {
	assert := assert.New(t)
	// -5.3 has no exact binary form, so hit points land a few ULPs off it.
	floor := NewOrthoplane(plain, geom.V(0, 1, 0), 5.3, geom.P(-50, -5.3, -50), geom.P(50, -5.3, 50))
	rng := rand.New(rand.NewSource(7))

	missed := 0
	for i := 0; i < 2000; i++ {
		o := geom.P(rng.Float64()*200-100, rng.Float64()*50+1, rng.Float64()*200-100)
		target := geom.P(rng.Float64()*98-49, -5.3, rng.Float64()*98-49)
		r, _ := geom.RayTo(o, target)
		h, ok := floor.Intersect(r)
		if !ok {
			missed++
			continue
		}
		assert.InDelta(-5.3, h.Point.Y, 1e-9)
		assert.InDelta(target.X, h.Point.X, 1e-6)
		assert.InDelta(target.Z, h.Point.Z, 1e-6)
	}
	assert.Zero(missed)

	_, ok := floor.Intersect(ray(geom.P(60, 0, 0), geom.V(0, -1, 0)))
	assert.False(ok, "outside the in-plane bounds")
}

func TestDegenerateShapes(t *testing.T) {
	assert := assert.New(t)

	_, err := NewPolygon(plain, []geom.Point{geom.P(0, 0, 0), geom.P(1, 0, 0), geom.P(2, 0, 0)})
	assert.ErrorIs(err, ErrDegenerate)
	_, err = NewPolygon(plain, []geom.Point{geom.P(0, 0, 0), geom.P(1, 0, 0)})
	assert.ErrorIs(err, ErrDegenerate)
	_, err = NewCylinder(plain, geom.P(1, 1, 1), geom.P(1, 1, 1), 1)
	assert.ErrorIs(err, ErrDegenerate)
	_, err = NewRing(plain, geom.V(0, 0, 0), geom.P(0, 0, 0), 1, 2)
	assert.ErrorIs(err, ErrDegenerate)
}

func TestOverlapsBox(t *testing.T) {
	unit := func(lo, hi float64) geom.Box {
		return geom.Box{Min: geom.P(lo, lo, lo), Max: geom.P(hi, hi, hi)}
	}
	tri, _ := NewPolygon(plain, []geom.Point{geom.P(0, 0, 0), geom.P(1, 0, 0), geom.P(0, 1, 0)})
	cyl, _ := NewCylinder(plain, geom.P(0, 0, 0), geom.P(0, 10, 0), 1)
	ring, _ := NewRing(plain, geom.V(0, 0, 1), geom.P(0, 0, 0), 1, 2)

	tests := []struct {
		name string
		prim Primitive
		box  geom.Box
		want bool
	}{
		{"sphere shell crosses box", NewSphere(plain, geom.P(0, 0, 0), 1), unit(0.5, 2), true},
		{"box inside sphere", NewSphere(plain, geom.P(0, 0, 0), 1), unit(-0.5, 0.5), false},
		{"box outside sphere", NewSphere(plain, geom.P(0, 0, 0), 1), unit(2, 3), false},
		{"voxel inside solid box", NewBox(plain, geom.P(0, 0, 0), geom.P(1, 1, 1)), unit(0.25, 0.75), false},
		{"voxel across box face", NewBox(plain, geom.P(0, 0, 0), geom.P(1, 1, 1)), unit(0.5, 2), true},
		{"voxel away from box", NewBox(plain, geom.P(0, 0, 0), geom.P(1, 1, 1)), unit(2, 3), false},
		{"polygon through voxel", tri, geom.Box{Min: geom.P(0, 0, -1), Max: geom.P(1, 1, 1)}, true},
		{"polygon plane misses voxel", tri, geom.Box{Min: geom.P(0, 0, 1), Max: geom.P(1, 1, 2)}, false},
		{"polygon bounds miss voxel", tri, geom.Box{Min: geom.P(5, 5, -1), Max: geom.P(6, 6, 1)}, false},
		{"cylinder through voxel", cyl, unit(0.5, 2), true},
		{"cylinder away", cyl, unit(3, 4), false},
		{"ring plane through voxel", ring, unit(-0.5, 0.5), true},
		{"ring above voxel", ring, geom.Box{Min: geom.P(-1, -1, 1), Max: geom.P(1, 1, 2)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prim.OverlapsBox(tt.box))
		})
	}
}

func TestBoundsEncloseHits(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(3))
	cyl, _ := NewCylinder(plain, geom.P(1, 2, 3), geom.P(4, -1, 2), 1.5)
	ring, _ := NewRing(plain, geom.V(1, 1, 0), geom.P(0, 0, 0), 0.5, 3)
	prims := []Primitive{
		NewSphere(plain, geom.P(0, 1, 0), 2),
		NewBox(plain, geom.P(-1, -1, -1), geom.P(2, 2, 2)),
		cyl,
		ring,
	}
	for _, p := range prims {
		b := p.Bounds().Pad(1e-6)
		for i := 0; i < 500; i++ {
			o := geom.P(rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*40-20)
			r, _ := geom.RayTo(o, b.Center())
			if h, ok := p.Intersect(r); ok {
				assert.True(b.Contains(h.Point), "%s hit %v outside %v", p.Kind(), h.Point, b)
			}
		}
	}
}

func TestSphereUV(t *testing.T) {
	assert := assert.New(t)
	uv := func(n geom.Vector) (float64, float64) {
		return sphereUV(Hit{Normal: n})
	}

	u, v := uv(geom.V(0, -1, 0))
	assert.Equal(0.0, u)
	assert.InDelta(0, v, tol)

	u, v = uv(geom.V(1, 0, 0))
	assert.InDelta(0.25, u, tol)
	assert.InDelta(0.5, v, tol)

	u, _ = uv(geom.V(-1, 0, 0))
	assert.InDelta(0.75, u, tol)
}

func TestPlaneUV(t *testing.T) {
	assert := assert.New(t)
	quad, err := NewPlane(plain, geom.P(0, 0, 0), geom.P(1, 0, 0), geom.P(1, 1, 0))
	assert.NoError(err)

	u, v := quad.uv(Hit{Point: geom.P(0.5, 0.25, 0)})
	assert.InDelta(0.25, u, tol)
	assert.InDelta(0.5, v, tol)

	u, v = quad.uv(Hit{Point: geom.P(0, 0, 0)})
	assert.InDelta(0, u, tol)
	assert.InDelta(0, v, tol)
}

func TestKind(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("sphere", KindSphere.String())
	assert.Equal("unknown", Kind(42).String())
	assert.True(KindRing.IsShape())
	assert.False(KindPointLight.IsShape())
	assert.False(KindTexture.IsShape())
}
