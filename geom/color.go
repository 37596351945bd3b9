package geom

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Color is a linear RGB triple. Surface colors live in [0,1]; light,
// ambient and background colors are expressed in [0,255].
type Color pt.Color

var Black = Color{}

// RGB is a shorthand constructor for Color
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Gray returns a color with all three channels set to v.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

func (c Color) Add(d Color) Color {
	return Color(pt.Color(c).Add(pt.Color(d)))
}

// Mul multiplies channel by channel.
func (c Color) Mul(d Color) Color {
	return Color(pt.Color(c).Mul(pt.Color(d)))
}

func (c Color) Scale(s float64) Color {
	return Color(pt.Color(c).MulScalar(s))
}

// Clamp limits every channel to [0, max].
func (c Color) Clamp(max float64) Color {
	clamp := func(v float64) float64 {
		return math.Max(0, math.Min(max, v))
	}
	return Color{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B)}
}

// Bytes returns the channels as bytes after clamping to [0,255].
func (c Color) Bytes() (r, g, b byte) {
	k := c.Clamp(255)
	return byte(k.R), byte(k.G), byte(k.B)
}
