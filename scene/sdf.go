package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jdginn/go-raytracer/geom"
)

// DefaultMaxPrimitives bounds the primitives a scene may hold.
const DefaultMaxPrimitives = 12500

// LoadOptions tune Load.
type LoadOptions struct {
	// MaxPrimitives is the largest primitive count accepted; zero means
	// DefaultMaxPrimitives.
	MaxPrimitives int
	// BaseDir resolves relative image texture paths.
	BaseDir string
	// Warnf reports recoverable problems such as an out of range texture
	// index. Defaults to log.Printf.
	Warnf func(format string, args ...any)
}

// LoadFile reads a scene description from path. Relative image texture
// paths are resolved against the file's directory unless opts.BaseDir is set.
func LoadFile(path string, opts LoadOptions) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}
	s, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}

// Load parses a whitespace separated scene description: the header, then
// typed records up to the -1 sentinel.
func Load(r io.Reader, opts LoadOptions) (*Scene, error) {
	if opts.MaxPrimitives <= 0 {
		opts.MaxPrimitives = DefaultMaxPrimitives
	}
	if opts.Warnf == nil {
		opts.Warnf = log.Printf
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	t := &tokens{sc: sc}

	s := &Scene{}
	if err := t.header(&s.Params); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	s.Params.normalize()

	var surfaces []*Surface
	for index := 0; ; index++ {
		code, err := t.int()
		if err != nil {
			return nil, &RecordError{Index: index, Code: -2, Err: err}
		}
		kind := Kind(code)
		if kind == KindEndOfRecord {
			break
		}
		fail := func(err error) error {
			return &RecordError{Index: index, Code: code, Err: err}
		}

		switch kind {
		case KindPointLight, KindSpotLight:
			l, err := t.light(kind)
			if err != nil {
				return nil, fail(err)
			}
			s.Lights = append(s.Lights, l)
			continue
		case KindTexture:
			tex, err := t.texture(opts.BaseDir)
			if err != nil {
				return nil, fail(err)
			}
			s.Textures = append(s.Textures, tex)
			continue
		}

		if !kind.IsShape() {
			return nil, fail(ErrUnknownPrimitive)
		}
		if len(s.Primitives) >= opts.MaxPrimitives {
			return nil, fail(fmt.Errorf("limit is %d: %w", opts.MaxPrimitives, ErrTooManyPrimitives))
		}
		p, surf, err := t.primitive(kind)
		if err != nil {
			return nil, fail(err)
		}
		s.Primitives = append(s.Primitives, p)
		surfaces = append(surfaces, surf)
	}

	for i, surf := range surfaces {
		if surf.Texture < 0 || surf.Texture > len(s.Textures) {
			opts.Warnf("primitive %d: texture index %d is invalid (%d textures); using no texture",
				i, surf.Texture, len(s.Textures))
			surf.Texture = 0
		}
	}
	return s, nil
}

type tokens struct {
	sc  *bufio.Scanner
	err error
}

func (t *tokens) next() (string, error) {
	if t.err != nil {
		return "", t.err
	}
	if !t.sc.Scan() {
		t.err = ErrTruncated
		if err := t.sc.Err(); err != nil {
			t.err = errors.Join(ErrTruncated, err)
		}
		return "", t.err
	}
	return t.sc.Text(), nil
}

func (t *tokens) float() (float64, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrMalformed)
	}
	return f, nil
}

func (t *tokens) int() (int, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrMalformed)
	}
	return i, nil
}

// floats reads len(dst) numbers into dst.
func (t *tokens) floats(dst ...*float64) error {
	for _, d := range dst {
		v, err := t.float()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

func (t *tokens) ints(dst ...*int) error {
	for _, d := range dst {
		v, err := t.int()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

func (t *tokens) point() (geom.Point, error) {
	var p geom.Point
	err := t.floats(&p.X, &p.Y, &p.Z)
	return p, err
}

func (t *tokens) vector() (geom.Vector, error) {
	var v geom.Vector
	err := t.floats(&v.X, &v.Y, &v.Z)
	return v, err
}

func (t *tokens) color() (geom.Color, error) {
	var c geom.Color
	err := t.floats(&c.R, &c.G, &c.B)
	return c, err
}

func (t *tokens) surface() (Surface, error) {
	var (
		tex                    int
		kdiff, kspec, ktran, n float64
	)
	if err := t.ints(&tex); err != nil {
		return Surface{}, err
	}
	if err := t.floats(&kdiff, &kspec, &ktran, &n); err != nil {
		return Surface{}, err
	}
	c, err := t.color()
	if err != nil {
		return Surface{}, err
	}
	return NewSurface(tex, kdiff, kspec, ktran, n, c), nil
}

func (t *tokens) header(p *Params) error {
	if err := t.ints(&p.Display, &p.Storage, &p.Order, &p.HRes, &p.VRes, &p.Threshold,
		&p.StartingLine, &p.Supersample, &p.NumLines, &p.FOV); err != nil {
		return err
	}
	var err error
	if p.Aspect, err = t.float(); err != nil {
		return err
	}
	if p.CameraLocation, err = t.point(); err != nil {
		return err
	}
	if p.CameraDirection, err = t.vector(); err != nil {
		return err
	}
	if p.Ambient, err = t.color(); err != nil {
		return err
	}
	if p.MaxDepth, err = t.int(); err != nil {
		return err
	}
	p.Background, err = t.color()
	return err
}

func (t *tokens) light(kind Kind) (Light, error) {
	loc, err := t.point()
	if err != nil {
		return nil, err
	}
	if kind == KindPointLight {
		c, err := t.color()
		if err != nil {
			return nil, err
		}
		return &PointLight{Position: loc, Color: c}, nil
	}
	axis, err := t.vector()
	if err != nil {
		return nil, err
	}
	fov, err := t.float()
	if err != nil {
		return nil, err
	}
	c, err := t.color()
	if err != nil {
		return nil, err
	}
	return &SpotLight{Position: loc, Axis: axis, FOV: fov, Color: c}, nil
}

// primitive reads one shape record and returns it with a pointer to its
// surface so texture references can be checked once all textures are known.
func (t *tokens) primitive(kind Kind) (Primitive, *Surface, error) {
	// the orthoplane record leads with its normal
	var normal geom.Vector
	if kind == KindOrthoplane {
		var err error
		if normal, err = t.vector(); err != nil {
			return nil, nil, err
		}
	}
	s, err := t.surface()
	if err != nil {
		return nil, nil, err
	}

	switch kind {
	case KindSphere:
		c, err := t.point()
		if err != nil {
			return nil, nil, err
		}
		r, err := t.float()
		if err != nil {
			return nil, nil, err
		}
		p := NewSphere(s, c, r)
		return p, &p.Surface, nil

	case KindBox:
		lo, hi, err := t.pointPair()
		if err != nil {
			return nil, nil, err
		}
		p := NewBox(s, lo, hi)
		return p, &p.Surface, nil

	case KindOrthoplane:
		d, err := t.float()
		if err != nil {
			return nil, nil, err
		}
		lo, hi, err := t.pointPair()
		if err != nil {
			return nil, nil, err
		}
		p := NewOrthoplane(s, normal, d, lo, hi)
		return p, &p.Surface, nil

	case KindCylinder:
		base, end, err := t.pointPair()
		if err != nil {
			return nil, nil, err
		}
		r, err := t.float()
		if err != nil {
			return nil, nil, err
		}
		p, err := NewCylinder(s, base, end, r)
		if err != nil {
			return nil, nil, err
		}
		return p, &p.Surface, nil

	case KindQuadric:
		var coef [10]float64
		for i := range coef {
			if coef[i], err = t.float(); err != nil {
				return nil, nil, err
			}
		}
		lo, hi, err := t.pointPair()
		if err != nil {
			return nil, nil, err
		}
		p := NewQuadric(s, coef, lo, hi)
		return p, &p.Surface, nil

	case KindPolygon:
		n, err := t.int()
		if err != nil {
			return nil, nil, err
		}
		if n < 3 {
			return nil, nil, fmt.Errorf("polygon with %d vertices: %w", n, ErrDegenerate)
		}
		pts := make([]geom.Point, n)
		for i := range pts {
			if pts[i], err = t.point(); err != nil {
				return nil, nil, err
			}
		}
		p, err := NewPolygon(s, pts)
		if err != nil {
			return nil, nil, err
		}
		return p, &p.Surface, nil

	case KindPlane:
		var pts [3]geom.Point
		for i := range pts {
			if pts[i], err = t.point(); err != nil {
				return nil, nil, err
			}
		}
		p, err := NewPlane(s, pts[0], pts[1], pts[2])
		if err != nil {
			return nil, nil, err
		}
		return p, &p.Surface, nil

	case KindRing:
		n, err := t.vector()
		if err != nil {
			return nil, nil, err
		}
		c, err := t.point()
		if err != nil {
			return nil, nil, err
		}
		var inner, outer float64
		if err := t.floats(&inner, &outer); err != nil {
			return nil, nil, err
		}
		p, err := NewRing(s, n, c, inner, outer)
		if err != nil {
			return nil, nil, err
		}
		return p, &p.Surface, nil
	}
	return nil, nil, ErrUnknownPrimitive
}

func (t *tokens) pointPair() (a, b geom.Point, err error) {
	if a, err = t.point(); err != nil {
		return
	}
	b, err = t.point()
	return
}

func (t *tokens) texture(baseDir string) (Texture, error) {
	sub, err := t.int()
	if err != nil {
		return nil, err
	}
	switch TextureKind(sub) {
	case TextureImage:
		name, err := t.next()
		if err != nil {
			return nil, err
		}
		path := name
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		img := NewImageFile(path)
		img.Name = name
		if err := img.Load(); err != nil {
			return nil, err
		}
		return img, nil

	case TextureMandelbrot:
		var hres, vres, palette int
		if err := t.ints(&hres, &vres, &palette); err != nil {
			return nil, err
		}
		var a, b, side float64
		if err := t.floats(&a, &b, &side); err != nil {
			return nil, err
		}
		return NewMandelbrot(hres, vres, palette, a, b, side), nil

	case TextureTile:
		tile := &Tile{}
		if err := t.ints(&tile.HRes, &tile.VRes); err != nil {
			return nil, err
		}
		if tile.Odd, err = t.color(); err != nil {
			return nil, err
		}
		if tile.Even, err = t.color(); err != nil {
			return nil, err
		}
		if tile.Size, err = t.float(); err != nil {
			return nil, err
		}
		return tile, nil
	}
	return nil, fmt.Errorf("sub-type %d: %w", sub, ErrUnknownTexture)
}
