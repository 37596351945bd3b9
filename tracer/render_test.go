package tracer

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/scene"
)

func TestNewCamera(t *testing.T) {
	assert := assert.New(t)

	_, err := NewCamera(scene.Params{HRes: 2, VRes: 2, FOV: 40, CameraDirection: geom.V(0, -3, 0)})
	assert.ErrorIs(err, ErrDegenerateCamera)

	cam, err := NewCamera(blueSphereScene().Params)
	require.NoError(t, err)
	// The right column looks straight down the view axis horizontally.
	assert.InDelta(0, cam.Ray(1, 0).Direction.X, 1e-12)
	assert.Less(cam.Ray(0, 0).Direction.X, 0.0)
	assert.Greater(cam.Ray(1, 0).Direction.Y, cam.Ray(1, 1).Direction.Y)
}

func TestRowMapping(t *testing.T) {
	tests := map[string]struct {
		order     int
		rowCoords []float64
		imageRows []int
	}{
		"top down":  {order: 0, rowCoords: []float64{-1, 0, 1, 2}, imageRows: []int{0, 1, 2, 3}},
		"bottom up": {order: 1, rowCoords: []float64{1, 0, -1, -2}, imageRows: []int{3, 2, 1, 0}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cam := Camera{VRes: 4, Order: tc.order}
			for y := 0; y < 4; y++ {
				assert.Equal(t, tc.rowCoords[y], cam.RowCoord(y))
				assert.Equal(t, tc.imageRows[y], cam.ImageRow(y))
			}
		})
	}
}

func TestRows(t *testing.T) {
	tests := map[string]struct {
		start, lines int
		want         [2]int
	}{
		"everything":   {0, 0, [2]int{0, 10}},
		"window":       {2, 3, [2]int{2, 5}},
		"clipped":      {8, 5, [2]int{8, 10}},
		"negative":     {-3, 0, [2]int{0, 10}},
		"past the end": {12, 2, [2]int{10, 10}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := &scene.Scene{Params: scene.Params{VRes: 10, StartingLine: tc.start, NumLines: tc.lines}}
			start, end := New(s, Options{}).Rows()
			assert.Equal(t, tc.want, [2]int{start, end})
		})
	}
}

func TestRenderDeliversInOrder(t *testing.T) {
	assert := assert.New(t)
	s := mirrorScene()
	s.Params.HRes, s.Params.VRes = 8, 12
	s.Params.StartingLine, s.Params.NumLines = 2, 6
	s.Params.Storage = scene.StorageStdout

	var ys []int
	var progress [][2]int
	sink := RowSinkFunc(func(r Row) error {
		ys = append(ys, r.Y)
		assert.Equal(4, r.Channels)
		assert.Len(r.Pixels, 8*4)
		for x := 0; x < 8; x++ {
			assert.Zero(r.Pixels[4*x], "pad byte")
		}
		return nil
	})
	err := New(s, Options{Workers: 4}).Render(context.Background(), sink, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})
	require.NoError(t, err)
	assert.Equal([]int{2, 3, 4, 5, 6, 7}, ys)
	assert.Len(progress, 6)
	assert.Equal([2]int{6, 6}, progress[5])
}

func TestRenderSinkError(t *testing.T) {
	boom := errors.New("boom")
	s := mirrorScene()
	s.Params.HRes, s.Params.VRes = 4, 8
	err := New(s, Options{Workers: 2}).Render(context.Background(), RowSinkFunc(func(r Row) error {
		if r.Y == 3 {
			return boom
		}
		return nil
	}), nil)
	assert.ErrorIs(t, err, boom)
}

func TestFrame(t *testing.T) {
	assert := assert.New(t)
	f := NewFrame(2, 2)
	require.NoError(t, f.WriteRow(Row{Y: 0, ImageY: 1, Channels: 3, Pixels: []byte{1, 2, 3, 4, 5, 6}}))
	require.NoError(t, f.WriteRow(Row{Y: 1, ImageY: 0, Channels: 4, Pixels: []byte{0, 7, 8, 9, 0, 10, 11, 12}}))
	assert.ErrorIs(f.WriteRow(Row{ImageY: 2, Channels: 3}), ErrRowOutOfRange)

	img := f.Image()
	c := img.RGBAAt(1, 1)
	assert.Equal([3]uint8{6, 5, 4}, [3]uint8{c.R, c.G, c.B})
	c = img.RGBAAt(0, 0)
	assert.Equal([3]uint8{9, 8, 7}, [3]uint8{c.R, c.G, c.B})

	var buf bytes.Buffer
	require.NoError(t, f.WriteBMP(&buf))
	decoded, err := bmp.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ := decoded.At(1, 1).RGBA()
	assert.Equal([3]uint32{6, 5, 4}, [3]uint32{r >> 8, g >> 8, b >> 8})

	buf.Reset()
	require.NoError(t, f.WritePNG(&buf))
	decoded, err = png.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ = decoded.At(0, 0).RGBA()
	assert.Equal([3]uint32{9, 8, 7}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestRasterWriter(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	rw := NewRasterWriter(&buf, 3, 2, 3)
	require.NoError(t, rw.WriteRow(Row{Pixels: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}}))
	require.NoError(t, rw.WriteRow(Row{Pixels: []byte{9, 8, 7, 6, 5, 4, 3, 2, 1}}))

	var h [8]uint32
	require.NoError(t, binary.Read(&buf, binary.BigEndian, &h))
	assert.Equal([8]uint32{rasterMagic, 3, 2, 24, 20, 1, 0, 0}, h)
	assert.Equal([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, buf.Bytes())
}

func TestMultiSink(t *testing.T) {
	assert := assert.New(t)
	var a, b bytes.Buffer
	sink := MultiSink(NewRawWriter(&a), NewRawWriter(&b))
	require.NoError(t, sink.WriteRow(Row{Pixels: []byte{1, 2, 3}}))
	assert.Equal([]byte{1, 2, 3}, a.Bytes())
	assert.Equal([]byte{1, 2, 3}, b.Bytes())
}
