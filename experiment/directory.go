package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	RendersDir    = "renders"
	LatestSymlink = "latest"
)

type RunDir struct {
	Path      string    // Absolute path to the run directory
	ID        string    // Unique run identifier
	Timestamp time.Time // When the run was created
}

// CreateRunDirectory creates a new run directory under root and points
// root/latest at it. An empty root means RendersDir.
func CreateRunDirectory(root string) (*RunDir, error) {
	if root == "" {
		root = RendersDir
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating renders directory: %w", err)
	}

	id := GenerateRunID()
	absPath, err := filepath.Abs(filepath.Join(root, id))
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}
	if err := os.Mkdir(absPath, 0755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	latestPath := filepath.Join(root, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		fmt.Printf("Warning: failed to create latest symlink: %v\n", err)
	}

	return &RunDir{
		Path:      absPath,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}, nil
}

// GetFilePath returns the absolute path for a file in the run directory
func (r *RunDir) GetFilePath(filename string) string {
	return filepath.Join(r.Path, filename)
}

// CopyFile copies srcPath into the run directory under its base name
func (r *RunDir) CopyFile(srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcPath, err)
	}

	destPath := r.GetFilePath(filepath.Base(srcPath))
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}

	return nil
}
