package tracer

import (
	"context"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/scene"
)

// Row is one finished image row.
type Row struct {
	// Y is the render row; rows are delivered in increasing Y.
	Y int
	// ImageY is the top-down image row Y fills.
	ImageY int
	// Pixels holds BGR triples, or 0BGR quads when Channels is 4.
	Pixels   []byte
	Channels int
}

// ProgressFunc is told how many rows of total have been delivered.
type ProgressFunc func(done, total int)

// Rows returns the half-open range of render rows selected by the
// starting line and line count.
func (t *Tracer) Rows() (start, end int) {
	p := t.scene.Params
	start = min(max(p.StartingLine, 0), p.VRes)
	end = p.VRes
	if p.NumLines > 0 {
		end = min(start+p.NumLines, p.VRes)
	}
	return start, end
}

// Render traces every selected row on a bounded pool of workers and hands
// the rows to sink in order. The result does not depend on the number of
// workers. progress may be nil.
func (t *Tracer) Render(ctx context.Context, sink RowSink, progress ProgressFunc) error {
	cam, err := NewCamera(t.scene.Params)
	if err != nil {
		return err
	}
	start, end := t.Rows()
	out := &orderedSink{
		sink:     sink,
		next:     start,
		total:    end - start,
		pending:  make(map[int]Row),
		progress: progress,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.opts.Workers)
	for y := start; y < end; y++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return out.deliver(t.RenderRow(cam, y, &Node{}))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// RenderRow traces row y, reusing root for every sample.
func (t *Tracer) RenderRow(cam Camera, y int, root *Node) Row {
	channels := t.scene.Params.BytesPerPixel()
	row := Row{
		Y:        y,
		ImageY:   cam.ImageRow(y),
		Pixels:   make([]byte, 0, cam.HRes*channels),
		Channels: channels,
	}
	yy := cam.RowCoord(y)
	for x := 0; x < cam.HRes; x++ {
		r, g, b := t.Pixel(cam, root, x, y, yy).Bytes()
		if channels == 4 {
			row.Pixels = append(row.Pixels, 0)
		}
		row.Pixels = append(row.Pixels, b, g, r)
	}
	return row
}

// Pixel returns the color of pixel (x, y) whose screen row is yy, taking
// 1, 4 or 9 samples depending on the supersampling mode. Jitter is seeded
// from the pixel position.
func (t *Tracer) Pixel(cam Camera, root *Node, x, y int, yy float64) geom.Color {
	xp := float64(x)
	switch t.scene.Params.Supersample {
	case scene.Supersample2x2:
		rng := rand.New(rand.NewPCG(uint64(y), uint64(x)))
		var c geom.Color
		for sy := 0; sy < 2; sy++ {
			for sx := 0; sx < 2; sx++ {
				jx := rng.Float64()*0.5 - 0.25
				jy := rng.Float64()*0.5 - 0.25
				r := cam.Ray(xp+0.25+jx+float64(sx)*0.5, yy+0.25+jy+float64(sy)*0.5)
				c = c.Add(t.Sample(root, r))
			}
		}
		return c.Scale(0.25)
	case scene.Supersample3x3:
		rng := rand.New(rand.NewPCG(uint64(y), uint64(x)))
		weights := [3]float64{1, 2, 1}
		var c geom.Color
		for sy := 0; sy < 3; sy++ {
			for sx := 0; sx < 3; sx++ {
				jx := rng.Float64()/3 - 1.0/6
				jy := rng.Float64()/3 - 1.0/6
				r := cam.Ray(xp+1.0/6+jx+float64(sx)/3, yy+1.0/6+jy+float64(sy)/3)
				c = c.Add(t.Sample(root, r).Scale(weights[sx] * weights[sy]))
			}
		}
		return c.Scale(1.0 / 16)
	default:
		return t.Sample(root, cam.Ray(xp, yy))
	}
}

// orderedSink buffers rows finished out of order and forwards them to sink
// in increasing Y. Writes are serialized.
type orderedSink struct {
	mu       sync.Mutex
	sink     RowSink
	next     int
	done     int
	total    int
	pending  map[int]Row
	progress ProgressFunc
}

func (o *orderedSink) deliver(r Row) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending[r.Y] = r
	for {
		row, ok := o.pending[o.next]
		if !ok {
			return nil
		}
		delete(o.pending, o.next)
		if err := o.sink.WriteRow(row); err != nil {
			return err
		}
		o.next++
		o.done++
		if o.progress != nil {
			o.progress(o.done, o.total)
		}
	}
}
