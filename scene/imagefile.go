package scene

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"sync"

	"github.com/jdginn/go-raytracer/geom"
	_ "golang.org/x/image/bmp"
)

// ImageFile samples a raster image read from disk. The file is decoded
// once, on Load or on the first sample, and shared read-only afterwards.
type ImageFile struct {
	// Name is the path as written in the scene description.
	Name string
	// Path is Name resolved against the scene's directory.
	Path string

	once sync.Once
	img  image.Image
	err  error
}

func NewImageFile(path string) *ImageFile {
	return &ImageFile{Name: path, Path: path}
}

func (t *ImageFile) TextureKind() TextureKind { return TextureImage }

// Load decodes the image if it has not been decoded yet.
func (t *ImageFile) Load() error {
	t.once.Do(func() {
		f, err := os.Open(t.Path)
		if err != nil {
			t.err = err
			return
		}
		defer f.Close()
		t.img, _, err = image.Decode(f)
		if err != nil {
			t.err = fmt.Errorf("decoding %s: %w", t.Path, err)
		}
	})
	return t.err
}

// ColorAt samples the nearest pixel. v runs from the bottom row up. An image
// that failed to load is black.
func (t *ImageFile) ColorAt(u, v float64) geom.Color {
	if t.Load() != nil {
		return geom.Black
	}
	b := t.img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return geom.Black
	}
	x := clampInt(int(float64(w)*u), 0, w-1)
	y := clampInt(int(float64(h)*(1-v)), 0, h-1)
	r, g, bl, _ := t.img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return geom.RGB(float64(r)/0xffff, float64(g)/0xffff, float64(bl)/0xffff)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
