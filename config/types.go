package config

// RenderConfig selects a scene and overrides how it is rendered.
type RenderConfig struct {
	Metadata Metadata `yaml:"metadata"`
	Scene    Scene    `yaml:"scene"`
	Render   Render   `yaml:"render"`
	Output   Output   `yaml:"output"`
	Display  Display  `yaml:"display"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

type Scene struct {
	Path string `yaml:"path"`
	// Meshes are 3MF models appended to the scene as polygons.
	Meshes []Mesh `yaml:"meshes,omitempty"`
}

type Mesh struct {
	Path    string     `yaml:"path"`
	Scale   float64    `yaml:"scale,omitempty"`
	Offset  [3]float64 `yaml:"offset,omitempty"`
	Surface Surface    `yaml:"surface"`
}

type Surface struct {
	Texture int        `yaml:"texture,omitempty"`
	KDiff   float64    `yaml:"kdiff"`
	KSpec   float64    `yaml:"kspec"`
	KTran   float64    `yaml:"ktran"`
	N       float64    `yaml:"n"`
	Color   [3]float64 `yaml:"color"` // each channel in [0,1]
}

// Render overrides scene header values. Zero values leave the header alone.
type Render struct {
	Threshold   int    `yaml:"threshold,omitempty"`
	MaxDepth    int    `yaml:"max_depth,omitempty"`
	Supersample string `yaml:"supersample,omitempty"` // none, 2x2 or 3x3
	Order       string `yaml:"order,omitempty"`       // top_down or bottom_up
	Width       int    `yaml:"width,omitempty"`
	Height      int    `yaml:"height,omitempty"`

	Workers            int     `yaml:"workers,omitempty"`
	MaxPrimitives      int     `yaml:"max_primitives,omitempty"`
	MaxOctreeDepth     int     `yaml:"max_octree_depth,omitempty"`
	Cutoff             float64 `yaml:"cutoff,omitempty"`
	ClampNegativeLight bool    `yaml:"clamp_negative_light,omitempty"`
}

type Output struct {
	Format   string `yaml:"format,omitempty"` // bmp, png, raw or raster
	Path     string `yaml:"path,omitempty"`
	Channels int    `yaml:"channels,omitempty"` // 3 or 4; raw and raster only
}

type Display struct {
	Interactive bool `yaml:"interactive,omitempty"`
	Quiet       bool `yaml:"quiet,omitempty"`
}
