package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolvePaths anchors the scene, mesh and output references to dir, the
// directory the config was read from. Absolute and empty references are
// left as they are.
func (c *RenderConfig) ResolvePaths(dir string) {
	anchor := func(path *string) {
		if *path != "" && !filepath.IsAbs(*path) {
			*path = filepath.Join(dir, *path)
		}
	}
	anchor(&c.Scene.Path)
	for i := range c.Scene.Meshes {
		anchor(&c.Scene.Meshes[i].Path)
	}
	anchor(&c.Output.Path)
}

// CheckInputs reports the scene description and meshes that cannot be read,
// so a render fails before any output file is created.
func (c *RenderConfig) CheckInputs() []ValidationError {
	var errors []ValidationError
	check := func(field, path string) {
		if path == "" {
			return
		}
		info, err := os.Stat(path)
		switch {
		case err != nil:
			errors = append(errors, ValidationError{Field: field, Message: fmt.Sprintf("cannot read %s", path)})
		case info.IsDir():
			errors = append(errors, ValidationError{Field: field, Message: fmt.Sprintf("%s is a directory", path)})
		}
	}
	check("scene.path", c.Scene.Path)
	for i, m := range c.Scene.Meshes {
		check(fmt.Sprintf("scene.meshes.%d.path", i), m.Path)
	}
	return errors
}
