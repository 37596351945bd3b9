package scene

import (
	"math/rand/v2"

	"github.com/jdginn/go-raytracer/geom"
	colorful "github.com/lucasb-eyer/go-colorful"
	lin "github.com/sgreben/piecewiselinear"
)

// Palette types for Mandelbrot.
const (
	PaletteRamp      = 0
	PaletteGray      = 1
	PaletteHueCircle = 2
)

const mandelbrotLimit = 255

// Mandelbrot colors a surface by the escape count of the Mandelbrot
// iteration over the square of side Side anchored at (ACorner, BCorner).
type Mandelbrot struct {
	HRes, VRes       int
	Palette          int
	ACorner, BCorner float64
	Side             float64

	gap     float64
	palette [mandelbrotLimit + 1]geom.Color
}

func NewMandelbrot(hres, vres, palette int, acorner, bcorner, side float64) *Mandelbrot {
	m := &Mandelbrot{HRes: hres, VRes: vres, Palette: palette, ACorner: acorner, BCorner: bcorner, Side: side}
	if vres != 0 {
		m.gap = side / float64(vres)
	}
	m.palette = makePalette(palette)
	return m
}

// makePalette builds the 256 entry color table for a palette type. The ramp
// palette's blue channel is drawn from a fixed seed so it is the same on
// every run.
func makePalette(kind int) [mandelbrotLimit + 1]geom.Color {
	var p [mandelbrotLimit + 1]geom.Color
	up := lin.Function{X: []float64{0, mandelbrotLimit}, Y: []float64{0, 1}}
	down := lin.Function{X: []float64{0, mandelbrotLimit}, Y: []float64{1, 0}}
	switch kind {
	case PaletteGray:
		for x := range p {
			g := up.At(float64(x))
			p[x] = geom.RGB(g, g, g)
		}
	case PaletteHueCircle:
		for x := range p {
			c := colorful.Hsv(360*up.At(float64(x)), 1, 1)
			p[x] = geom.RGB(c.R, c.G, c.B)
		}
	default:
		rng := rand.New(rand.NewPCG(1, 0))
		for x := range p {
			p[x] = geom.RGB(up.At(float64(x)), down.At(float64(x)), rng.Float64())
		}
	}
	return p
}

func (m *Mandelbrot) TextureKind() TextureKind { return TextureMandelbrot }

func (m *Mandelbrot) ColorAt(u, v float64) geom.Color {
	ac := u*float64(m.HRes)*m.gap + m.ACorner
	bc := v*float64(m.VRes)*m.gap + m.BCorner
	a, b := ac, bc
	count := 0
	for count <= mandelbrotLimit {
		sa, sb := a*a, b*b
		count++
		if sa+sb > 4 {
			break
		}
		b = (a+a)*b + bc
		a = sa - sb + ac
	}
	return m.palette[count-1]
}
