package tracer

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// RowSink receives finished rows in render order.
type RowSink interface {
	WriteRow(r Row) error
}

// RowSinkFunc adapts a function to RowSink.
type RowSinkFunc func(r Row) error

func (f RowSinkFunc) WriteRow(r Row) error {
	return f(r)
}

// MultiSink forwards every row to each sink in turn, stopping at the first
// error.
func MultiSink(sinks ...RowSink) RowSink {
	return RowSinkFunc(func(r Row) error {
		for _, s := range sinks {
			if err := s.WriteRow(r); err != nil {
				return err
			}
		}
		return nil
	})
}

// pixelAt decodes pixel x of a row.
func pixelAt(r Row, x int) color.RGBA {
	p := r.Pixels[x*r.Channels:]
	if r.Channels == 4 {
		p = p[1:]
	}
	return color.RGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
}

// Frame collects rows into an in-memory image.
type Frame struct {
	img *image.RGBA
}

// NewFrame returns an opaque black frame.
func NewFrame(width, height int) *Frame {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return &Frame{img: img}
}

func (f *Frame) WriteRow(r Row) error {
	b := f.img.Bounds()
	if r.ImageY < 0 || r.ImageY >= b.Dy() {
		return fmt.Errorf("image row %d: %w", r.ImageY, ErrRowOutOfRange)
	}
	for x := 0; x < b.Dx() && (x+1)*r.Channels <= len(r.Pixels); x++ {
		f.img.SetRGBA(x, r.ImageY, pixelAt(r, x))
	}
	return nil
}

// Image returns the collected image. Rows never written are black.
func (f *Frame) Image() *image.RGBA {
	return f.img
}

func (f *Frame) WritePNG(w io.Writer) error {
	return png.Encode(w, f.img)
}

func (f *Frame) WriteBMP(w io.Writer) error {
	return bmp.Encode(w, f.img)
}

// WriteFile encodes the frame as "bmp" or "png". An empty format is taken
// from the extension of path; anything but .png is written as BMP.
func (f *Frame) WriteFile(path, format string) error {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := bufio.NewWriter(out)
	if format == "png" {
		err = f.WritePNG(w)
	} else {
		err = f.WriteBMP(w)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// RawWriter streams row pixels unchanged, one row after another.
type RawWriter struct {
	w io.Writer
}

func NewRawWriter(w io.Writer) *RawWriter {
	return &RawWriter{w: w}
}

func (rw *RawWriter) WriteRow(r Row) error {
	_, err := rw.w.Write(r.Pixels)
	return err
}

const rasterMagic = 0x59a66a95

// RasterWriter streams a Sun rasterfile: a 32 byte big-endian header and
// rows padded to an even number of bytes. The header is written with the
// first row.
type RasterWriter struct {
	w             io.Writer
	width, height int
	channels      int
	started       bool
}

func NewRasterWriter(w io.Writer, width, height, channels int) *RasterWriter {
	return &RasterWriter{w: w, width: width, height: height, channels: channels}
}

func (rw *RasterWriter) rowLength() int {
	n := rw.width * rw.channels
	return n + n%2
}

func (rw *RasterWriter) header() [8]uint32 {
	return [8]uint32{
		rasterMagic,
		uint32(rw.width),
		uint32(rw.height),
		uint32(8 * rw.channels),
		uint32(rw.rowLength() * rw.height),
		1, // standard
		0, // no color map
		0,
	}
}

func (rw *RasterWriter) WriteRow(r Row) error {
	if !rw.started {
		if err := binary.Write(rw.w, binary.BigEndian, rw.header()); err != nil {
			return fmt.Errorf("writing raster header: %w", err)
		}
		rw.started = true
	}
	buf := make([]byte, rw.rowLength())
	copy(buf, r.Pixels)
	_, err := rw.w.Write(buf)
	return err
}
