package octree

import (
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the shape of a built tree.
type Stats struct {
	Voxels      int
	Leaves      int
	EmptyLeaves int
	MaxDepth    int
	// Occupancy statistics over non-empty leaves
	MeanPrims   float64
	StdDevPrims float64
	MaxPrims    int
	// References counts primitive entries summed over all leaves.
	References int
	// Occupancy[i] is the number of leaves holding exactly i primitives.
	Occupancy []int
}

// Stats walks the tree and summarizes it.
func (t *Tree) Stats() Stats {
	var (
		s      Stats
		counts []float64
	)
	t.Walk(func(v *Voxel) {
		s.Voxels++
		if v.Depth > s.MaxDepth {
			s.MaxDepth = v.Depth
		}
		if !v.Leaf() {
			return
		}
		s.Leaves++
		n := len(v.Prims)
		s.References += n
		for len(s.Occupancy) <= n {
			s.Occupancy = append(s.Occupancy, 0)
		}
		s.Occupancy[n]++
		if n == 0 {
			s.EmptyLeaves++
			return
		}
		if n > s.MaxPrims {
			s.MaxPrims = n
		}
		counts = append(counts, float64(n))
	})
	switch {
	case len(counts) > 1:
		s.MeanPrims, s.StdDevPrims = stat.MeanStdDev(counts, nil)
	case len(counts) == 1:
		s.MeanPrims = counts[0]
	}
	return s
}
