package scene

import (
	"github.com/jdginn/go-raytracer/geom"
)

// TextureKind is the sub-type code of a texture record.
type TextureKind int

const (
	TextureImage      TextureKind = 1
	TextureMandelbrot TextureKind = 2
	TextureTile       TextureKind = 3
)

// Texture maps surface coordinates in [0,1]^2 to a color in [0,1].
// Implementations must be safe for concurrent use.
type Texture interface {
	ColorAt(u, v float64) geom.Color
	TextureKind() TextureKind
}

// Textures is the scene's texture table. Surfaces refer to entries by
// 1-based index.
type Textures []Texture

// ColorAt samples texture index at (u, v). It reports false when index does
// not name a texture.
func (ts Textures) ColorAt(index int, u, v float64) (geom.Color, bool) {
	if index < 1 || index > len(ts) || ts[index-1] == nil {
		return geom.Black, false
	}
	return ts[index-1].ColorAt(u, v), true
}

// Tile is a checkerboard of two colors.
type Tile struct {
	HRes, VRes int
	Odd, Even  geom.Color
	Size       float64
}

func (t *Tile) TextureKind() TextureKind { return TextureTile }

func (t *Tile) ColorAt(u, v float64) geom.Color {
	if t.Size == 0 {
		return t.Even
	}
	iu := int(u * float64(t.HRes) / t.Size)
	iv := int(v * float64(t.VRes) / t.Size)
	if (iu^iv)&1 == 1 {
		return t.Odd
	}
	return t.Even
}
