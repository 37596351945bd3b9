package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/alecthomas/kong"

	"github.com/jdginn/go-raytracer/config"
	"github.com/jdginn/go-raytracer/octree"
	"github.com/jdginn/go-raytracer/scene"
	"github.com/jdginn/go-raytracer/view"
)

var CLI struct {
	Render  RenderCmd  `cmd:"" help:"Render a scene"`
	View    ViewCmd    `cmd:"" help:"Draw a slice through a scene's octree"`
	Stats   StatsCmd   `cmd:"" help:"Report scene and octree statistics"`
	Convert ConvertCmd `cmd:"" help:"Append 3MF meshes to a scene"`
}

type ViewCmd struct {
	Scene     string  `arg:"" name:"scene" help:"scene description file" type:"existingfile"`
	Axis      string  `default:"z" enum:"x,y,z" help:"axis normal to the slice"`
	Offset    float64 `help:"position of the slice along the axis"`
	Size      int     `default:"800" help:"image width and height in pixels"`
	Threshold int     `help:"octree leaf capacity (default from the scene)"`
	Output    string  `short:"o" default:"slice.png" help:"output PNG"`
}

func (c ViewCmd) Run() error {
	s, err := scene.LoadFile(c.Scene, scene.LoadOptions{})
	if err != nil {
		return err
	}
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = s.Params.OctreeThreshold()
	}
	v := view.SliceView{
		Tree:   octree.Build(s.Primitives, octree.Options{Threshold: threshold}),
		Axis:   map[string]int{"x": 0, "y": 1, "z": 2}[c.Axis],
		Offset: c.Offset,
		XSize:  c.Size,
		YSize:  c.Size,
	}
	fmt.Printf("Slice cuts %d leaves\n", len(v.Leaves()))
	return view.SavePNG(c.Output, v.Draw())
}

type StatsCmd struct {
	Scene     string `arg:"" name:"scene" help:"scene description file" type:"existingfile"`
	Threshold int    `help:"octree leaf capacity (default from the scene)"`
	MaxDepth  int    `help:"octree depth limit"`
	Plot      string `help:"write a leaf occupancy chart to this PNG"`
}

func (c StatsCmd) Run() error {
	s, err := scene.LoadFile(c.Scene, scene.LoadOptions{})
	if err != nil {
		return err
	}
	fmt.Printf("Read in %d objects, %d lights, %d textures\n", len(s.Primitives), len(s.Lights), len(s.Textures))
	counts := s.CountByKind()
	kinds := make([]scene.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Printf("  %-10s %d\n", k, counts[k])
	}
	b := s.Bounds()
	fmt.Printf("Bounds: %v to %v\n", b.Min, b.Max)

	threshold := c.Threshold
	if threshold <= 0 {
		threshold = s.Params.OctreeThreshold()
	}
	tree := octree.Build(s.Primitives, octree.Options{Threshold: threshold, MaxDepth: c.MaxDepth})
	st := tree.Stats()
	reportTree(tree, st)
	fmt.Printf("Depth %d, %d empty leaves, %d references\n", st.MaxDepth, st.EmptyLeaves, st.References)
	fmt.Printf("Primitives per non-empty leaf: mean %.2f, stddev %.2f, max %d\n", st.MeanPrims, st.StdDevPrims, st.MaxPrims)

	if c.Plot == "" {
		return nil
	}
	img, err := view.PlotOccupancy(st, 800, 500)
	if err != nil {
		return err
	}
	return view.SavePNG(c.Plot, img)
}

// reportTree prints the build summary and flags a tree too small to hold
// every primitive.
func reportTree(tree *octree.Tree, st octree.Stats) {
	fmt.Printf("Finished building the octree, which contains %d voxels (%d leaves, min half-size %g)\n",
		st.Voxels, st.Leaves, tree.MinHalf())
	if n := len(tree.Primitives()); st.Voxels*tree.Threshold() < n {
		fmt.Printf("Warning: %d voxels at threshold %d cannot separate %d primitives\n", st.Voxels, tree.Threshold(), n)
	}
}

type ConvertCmd struct {
	Scene   string    `arg:"" name:"scene" help:"scene description file" type:"existingfile"`
	Meshes  []string  `arg:"" name:"mesh" help:"3MF files to append"`
	Output  string    `short:"o" required:"" help:"output scene file"`
	Scale   float64   `default:"1" help:"scale applied to mesh vertices"`
	Offset  []float64 `default:"0,0,0" help:"offset added to mesh vertices"`
	KDiff   float64   `default:"1" help:"diffuse coefficient of mesh faces"`
	KSpec   float64   `help:"specular coefficient of mesh faces"`
	Color   []float64 `default:"1,1,1" help:"color of mesh faces, each channel in [0,1]"`
	MaxPrim int       `name:"max-primitives" help:"primitive limit"`
}

func (c ConvertCmd) Run() error {
	if len(c.Offset) != 3 || len(c.Color) != 3 {
		return fmt.Errorf("offset and color need three values")
	}
	cfg := config.RenderConfig{
		Scene:  config.Scene{Path: c.Scene},
		Render: config.Render{MaxPrimitives: c.MaxPrim},
	}
	for _, m := range c.Meshes {
		cfg.Scene.Meshes = append(cfg.Scene.Meshes, config.Mesh{
			Path:   m,
			Scale:  c.Scale,
			Offset: [3]float64{c.Offset[0], c.Offset[1], c.Offset[2]},
			Surface: config.Surface{
				KDiff: c.KDiff,
				KSpec: c.KSpec,
				N:     1,
				Color: [3]float64{c.Color[0], c.Color[1], c.Color[2]},
			},
		})
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("%s", config.FormatValidationErrors(errs))
	}
	s, err := cfg.LoadScene()
	if err != nil {
		return err
	}
	if err := scene.SaveFile(c.Output, s); err != nil {
		return err
	}
	fmt.Printf("Wrote %d objects to %s\n", len(s.Primitives), c.Output)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI, kong.Description("A Whitted ray tracer."))
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
