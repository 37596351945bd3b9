package view

import (
	"errors"
	"image"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/jdginn/go-raytracer/octree"
)

var ErrNoLeaves = errors.New("tree has no leaves")

// PlotOccupancy charts how many leaves hold each primitive count.
func PlotOccupancy(stats octree.Stats, X, Y int) (image.Image, error) {
	if len(stats.Occupancy) == 0 {
		return nil, ErrNoLeaves
	}

	p := plot.New()
	p.Title.Text = "Leaf occupancy"
	p.X.Label.Text = "Primitives per leaf"
	p.Y.Label.Text = "Leaves"

	values := make(plotter.Values, len(stats.Occupancy))
	labels := make([]string, len(stats.Occupancy))
	for i, n := range stats.Occupancy {
		values[i] = float64(n)
		labels[i] = strconv.Itoa(i)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(8))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(labels...)

	// At 72 DPI one point is one pixel.
	c := vgimg.NewWith(vgimg.UseWH(vg.Points(float64(X)), vg.Points(float64(Y))), vgimg.UseDPI(72))
	p.Draw(draw.New(c))
	return c.Image(), nil
}
