// Command sphereflake writes the scene description of a sphereflake: a
// sphere ringed by nine smaller spheres, each ringed in turn, standing over
// a floor.
package main

import (
	"fmt"
	"log"
	"math"

	"github.com/alecthomas/kong"

	"github.com/jdginn/go-raytracer/geom"
	"github.com/jdginn/go-raytracer/scene"
)

const (
	// scale is the radius of a child sphere relative to its parent.
	scale = 0.33
	// tilt is the angle between the parent's up axis and its upper ring.
	tilt = 55 * geom.DegToRad
)

var CLI struct {
	Depth  int    `arg:"" optional:"" default:"2" help:"levels of recursion"`
	Output string `short:"o" help:"output file (default sf<depth>.sdf)"`
}

type flake struct {
	depth   int
	surface scene.Surface
	spheres []scene.Primitive
}

func (f *flake) add(center geom.Point, radius float64) {
	f.spheres = append(f.spheres, scene.NewSphere(f.surface, center, radius))
}

// grow adds the children of the sphere at center. bottom is set only for
// the first sphere, which also gets a lower ring of three.
func (f *flake) grow(radius float64, center geom.Point, level int, up, mark geom.Vector, bottom bool) {
	child := radius * scale
	reach := radius + child

	for q := 0; q < 6; q++ {
		dir := geom.Rotate(up, mark, float64(q)*60*geom.DegToRad)
		p := center.Add(dir.Scale(reach))
		f.add(p, child)
		if level < f.depth {
			f.grow(child, p, level+1, dir, up, false)
		}
	}

	side, _ := geom.NormCross(up, mark)
	ring := geom.Rotate(side, mark, tilt)
	f.ring(center, reach, child, level, up, ring)
	if bottom {
		f.ring(center, reach, child, level, up.Negate(), ring.Negate())
	}
}

// ring adds three spheres tilted toward pole.
func (f *flake) ring(center geom.Point, reach, child float64, level int, pole, ring geom.Vector) {
	apex := center.Add(pole.Scale(reach / math.Cos(tilt)))
	for q := 0; q < 3; q++ {
		dir := geom.Rotate(pole, ring, (float64(q)*120+60)*geom.DegToRad)
		p := center.Add(dir.Scale(reach))
		f.add(p, child)
		if level < f.depth {
			f.grow(child, p, level+1, dir, p.Sub(apex).Unit(), false)
		}
	}
}

// Sphereflake returns the full scene for the given recursion depth.
func Sphereflake(depth int) *scene.Scene {
	s := &scene.Scene{
		Params: scene.Params{
			Storage:         scene.StorageBMP,
			Order:           1,
			HRes:            1280,
			VRes:            1280,
			NumLines:        1280,
			FOV:             40,
			Aspect:          1,
			CameraLocation:  geom.P(0, -128, -512),
			CameraDirection: geom.V(0, 0, 1),
			Ambient:         geom.Gray(140),
			MaxDepth:        8,
			Background:      geom.Black,
		},
		Lights: []scene.Light{
			&scene.PointLight{Position: geom.P(-300, 1280, -300), Color: geom.Gray(46)},
		},
	}
	floor := scene.NewSurface(0, 1, 0, 0, 1, geom.RGB(0, 1, 0))
	s.Primitives = append(s.Primitives, scene.NewOrthoplane(floor, geom.V(0, 1, 0), 511,
		geom.P(-1024, -511.1, 0), geom.P(1024, -510.9, 2560)))

	f := &flake{depth: depth, surface: scene.NewSurface(0, 1, 0, 0, 1, geom.RGB(0, 0, 1))}
	center := geom.P(0, -256, 0)
	f.add(center, 64)
	if depth > 0 {
		f.grow(64, center, 1, geom.V(0, 1, 0), geom.V(0, 0, -1), true)
	}
	s.Primitives = append(s.Primitives, f.spheres...)
	return s
}

func main() {
	kong.Parse(&CLI, kong.Description("Generate a sphereflake scene."))
	if CLI.Output == "" {
		CLI.Output = fmt.Sprintf("sf%d.sdf", CLI.Depth)
	}
	s := Sphereflake(CLI.Depth)
	if err := scene.SaveFile(CLI.Output, s); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Number of objects: %d\n", len(s.Primitives))
}
