package scene

import (
	"testing"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/stretchr/testify/assert"
)

func TestRefract(t *testing.T) {
	glass := NewSurface(0, 0, 0, 1, 1.5, geom.RGB(1, 1, 1))

	t.Run("normal incidence passes straight", func(t *testing.T) {
		assert := assert.New(t)
		dir, n, next := refract(geom.V(0, 0, 1), geom.V(0, 0, -1), glass, true)
		assert.InDelta(0, dir.X, tol)
		assert.InDelta(1, dir.Z, tol)
		assert.Equal(geom.V(0, 0, -1), n)
		assert.False(next)
	})

	t.Run("leaving turns the normal", func(t *testing.T) {
		assert := assert.New(t)
		dir, n, next := refract(geom.V(0, 0, 1), geom.V(0, 0, 1), glass, false)
		assert.InDelta(1, dir.Z, tol)
		assert.Equal(geom.V(0, 0, -1), n)
		assert.True(next)
	})

	t.Run("bends toward the normal entering", func(t *testing.T) {
		assert := assert.New(t)
		in := geom.V(1, 0, 1).Unit()
		dir, _, _ := refract(in, geom.V(0, 0, -1), glass, true)
		assert.InDelta(1, dir.Length(), 1e-9)
		// sin of the refracted angle is sin(45°)/1.5
		assert.InDelta(in.X/1.5, dir.X, 1e-9)
		assert.Greater(dir.Z, in.Z)
	})

	t.Run("total internal reflection mirrors", func(t *testing.T) {
		assert := assert.New(t)
		in := geom.V(1, 0, 0.1).Unit()
		dir, _, next := refract(in, geom.V(0, 0, 1), glass, false)
		assert.InDelta(in.X, dir.X, 1e-9)
		assert.InDelta(-in.Z, dir.Z, 1e-9)
		assert.True(next)
	})
}

func TestShadeSolid(t *testing.T) {
	assert := assert.New(t)
	mirror := NewSurface(0, 0.5, 0.5, 0, 1, geom.RGB(1, 0, 0))
	s := NewSphere(mirror, geom.P(0, 0, 0), 1)
	r := ray(geom.P(0, 0, -5), geom.V(0, 0, 1))

	h, ok := s.Intersect(r)
	assert.True(ok)
	for _, entering := range []bool{true, false} {
		sh := s.Shade(r, h, entering, nil)
		assert.True(sh.HasReflected, "reflects regardless of entering=%v", entering)
		assert.False(sh.HasTransmitted)
		assert.InDelta(-1, sh.Reflected.Direction.Z, tol)
		assert.Equal(entering, sh.Entering)
	}
}

func TestShadePlanar(t *testing.T) {
	assert := assert.New(t)
	pane := NewSurface(0, 0.2, 0.3, 0.5, 1.5, geom.RGB(1, 1, 1))
	quad, err := NewPlane(pane, geom.P(-1, -1, 0), geom.P(1, -1, 0), geom.P(1, 1, 0))
	assert.NoError(err)
	r := ray(geom.P(0, 0, -5), geom.V(0.1, 0, 1))

	h, ok := quad.Intersect(r)
	assert.True(ok)
	for _, entering := range []bool{true, false} {
		sh := quad.Shade(r, h, entering, nil)
		assert.True(sh.HasTransmitted)
		assert.True(sh.HasReflected)
		assert.Equal(r.Direction, sh.Transmitted.Direction)
		assert.InDelta(-r.Direction.Z, sh.Reflected.Direction.Z, tol)
		assert.Equal(entering, sh.Entering)
	}
}

func TestShadeAppliesTexture(t *testing.T) {
	assert := assert.New(t)
	tile := &Tile{HRes: 8, VRes: 8, Odd: geom.RGB(1, 0, 0), Even: geom.RGB(0, 0, 1), Size: 2}
	texs := Textures{tile}

	floor := NewOrthoplane(NewSurface(1, 1, 0, 0, 1, geom.RGB(1, 1, 1)), geom.V(0, 1, 0), 0,
		geom.P(0, -0.1, 0), geom.P(1, 0.1, 1))
	r := ray(geom.P(0.1, 5, 0.1), geom.V(0, -1, 0))
	h, ok := floor.Intersect(r)
	assert.True(ok)
	sh := floor.Shade(r, h, true, texs)
	assert.Equal(geom.RGB(0, 0, 1), sh.Surface.Color)

	r = ray(geom.P(0.3, 5, 0.1), geom.V(0, -1, 0))
	h, _ = floor.Intersect(r)
	sh = floor.Shade(r, h, true, texs)
	assert.Equal(geom.RGB(1, 0, 0), sh.Surface.Color)

	// no diffuse component, no lookup
	flat := NewOrthoplane(NewSurface(1, 0, 1, 0, 1, geom.RGB(1, 1, 1)), geom.V(0, 1, 0), 0,
		geom.P(0, -0.1, 0), geom.P(1, 0.1, 1))
	h, _ = flat.Intersect(r)
	sh = flat.Shade(r, h, true, texs)
	assert.Equal(geom.RGB(1, 1, 1), sh.Surface.Color)
}

func TestCrossingTestSquare(t *testing.T) {
	assert := assert.New(t)
	us := []float64{0, 1, 1, 0}
	vs := []float64{0, 0, 1, 1}
	assert.True(crossingTest(us, vs, 0.5, 0.5))
	assert.False(crossingTest(us, vs, 1.5, 0.5))
	assert.False(crossingTest(us, vs, -0.5, 0.5))
	assert.False(crossingTest(us, vs, 0.5, 1.5))
	assert.False(crossingTest(us[:2], vs[:2], 0.5, 0.5))
}
