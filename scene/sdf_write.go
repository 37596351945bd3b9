package scene

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jdginn/go-raytracer/geom"
)

// SaveFile writes s to path in the scene description format.
func SaveFile(path string, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Save writes the header, then lights, primitives and textures, then the
// -1 sentinel. Load reads the result back to an identical scene.
func Save(w io.Writer, s *Scene) error {
	bw := bufio.NewWriter(w)
	sw := &sdfWriter{w: bw}
	p := s.Params
	sw.line(p.Display, p.Storage, p.Order, p.HRes, p.VRes, p.Threshold,
		p.StartingLine, p.Supersample, p.NumLines, p.FOV, p.Aspect)
	sw.line(p.CameraLocation, p.CameraDirection)
	sw.line(p.Ambient, p.MaxDepth, p.Background)

	for _, l := range s.Lights {
		switch l := l.(type) {
		case *PointLight:
			sw.line(int(KindPointLight), l.Position, l.Color)
		case *SpotLight:
			sw.line(int(KindSpotLight), l.Position, l.Axis, l.FOV, l.Color)
		default:
			return fmt.Errorf("light %T: %w", l, ErrUnknownPrimitive)
		}
	}
	for i, prim := range s.Primitives {
		if err := sw.primitive(prim); err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
	}
	for i, tex := range s.Textures {
		switch t := tex.(type) {
		case *ImageFile:
			sw.line(int(KindTexture), int(TextureImage), t.Name)
		case *Mandelbrot:
			sw.line(int(KindTexture), int(TextureMandelbrot), t.HRes, t.VRes, t.Palette, t.ACorner, t.BCorner, t.Side)
		case *Tile:
			sw.line(int(KindTexture), int(TextureTile), t.HRes, t.VRes, t.Odd, t.Even, t.Size)
		default:
			return fmt.Errorf("texture %d (%T): %w", i+1, tex, ErrUnknownTexture)
		}
	}
	sw.line(int(KindEndOfRecord))
	if sw.err != nil {
		return sw.err
	}
	return bw.Flush()
}

type sdfWriter struct {
	w   *bufio.Writer
	err error
}

func (sw *sdfWriter) primitive(prim Primitive) error {
	switch p := prim.(type) {
	case *Sphere:
		sw.line(int(KindSphere), p.Surface, p.Center, p.Radius)
	case *Box:
		sw.line(int(KindBox), p.Surface, p.Min, p.Max)
	case *Orthoplane:
		sw.line(int(KindOrthoplane), p.Normal, p.Surface, p.D, p.Min, p.Max)
	case *Cylinder:
		sw.line(int(KindCylinder), p.Surface, p.Base, p.End, p.Radius)
	case *Quadric:
		args := []any{int(KindQuadric), p.Surface}
		for _, c := range p.Coefficients() {
			args = append(args, c)
		}
		sw.line(append(args, p.Min, p.Max)...)
	case *Polygon:
		args := []any{int(KindPolygon), p.Surface, len(p.Vertices())}
		for _, v := range p.Vertices() {
			args = append(args, v)
		}
		sw.line(args...)
	case *Plane:
		sw.line(int(KindPlane), p.Surface, p.P0, p.P1, p.P2)
	case *Ring:
		sw.line(int(KindRing), p.Surface, p.Normal, p.Center, p.Inner, p.Outer)
	default:
		return fmt.Errorf("%T: %w", prim, ErrUnknownPrimitive)
	}
	return nil
}

// line writes the fields of one record separated by spaces.
func (sw *sdfWriter) line(fields ...any) {
	if sw.err != nil {
		return
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, format(f))
	}
	_, sw.err = sw.w.WriteString(strings.Join(parts, " ") + "\n")
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func format(f any) string {
	switch v := f.(type) {
	case int:
		return strconv.Itoa(v)
	case float64:
		return ftoa(v)
	case string:
		return v
	case geom.Point:
		return ftoa(v.X) + " " + ftoa(v.Y) + " " + ftoa(v.Z)
	case geom.Vector:
		return ftoa(v.X) + " " + ftoa(v.Y) + " " + ftoa(v.Z)
	case geom.Color:
		return ftoa(v.R) + " " + ftoa(v.G) + " " + ftoa(v.B)
	case Surface:
		return strings.Join([]string{
			strconv.Itoa(v.Texture), ftoa(v.KDiff), ftoa(v.KSpec), ftoa(v.KTran), ftoa(v.N), format(v.Color),
		}, " ")
	}
	panic(fmt.Sprintf("sdf: cannot format %T", f))
}
