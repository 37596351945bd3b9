package experiment

import (
	"math/rand/v2"
	"time"
)

var (
	adjectives = []string{
		"refracted", "polished", "glossy", "matte", "diffuse", "specular",
		"jittered", "supersampled", "recursive", "occluded", "shadowed", "lit",
		"ambient", "tinted", "opaque", "translucent", "clear", "frosted",
		"mirrored", "bent", "scattered", "focused", "blurred", "sharp",
		"tiled", "checkered", "fractal", "nested", "orthogonal", "oblique",
		"grazing", "inverted", "crimson", "cobalt", "amber", "violet",
		"emerald", "ivory", "silver", "golden", "dim", "bright",
	}

	nouns = []string{
		"sphere", "ring", "cylinder", "quadric", "polygon", "plane",
		"box", "voxel", "octant", "ray", "photon", "prism",
		"lens", "mirror", "mandelbrot", "tile", "texel", "pixel",
		"scanline", "horizon", "spotlight", "lamp", "beam", "shadow",
		"caustic", "highlight", "glint", "flake", "marble", "bead",
		"droplet", "crystal", "facet", "normal", "frustum", "viewport",
	}
)

// GenerateRunName returns a random "adjective-noun" pair.
func GenerateRunName() string {
	return adjectives[rand.IntN(len(adjectives))] + "-" + nouns[rand.IntN(len(nouns))]
}

// GenerateRunID appends a UTC timestamp to a run name, giving
// "adjective-noun-YYYYMMDD-HHMMSS".
func GenerateRunID() string {
	return GenerateRunName() + "-" + time.Now().UTC().Format("20060102-150405")
}
