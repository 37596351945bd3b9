package config

import (
	"os/exec"
	"strings"
	"time"
)

const unknownCommit = "unknown"

// MetadataCollector handles collecting metadata for renders
type MetadataCollector struct {
	timestamp time.Time
	gitCommit string
}

// NewMetadataCollector creates a new MetadataCollector with current
// timestamp. Outside a git checkout the commit is recorded as unknown.
func NewMetadataCollector() *MetadataCollector {
	commit, err := getCurrentGitCommit()
	if err != nil || commit == "" {
		commit = unknownCommit
	}
	return &MetadataCollector{
		timestamp: time.Now().UTC(),
		gitCommit: commit,
	}
}

// getCurrentGitCommit gets the current git commit hash
func getCurrentGitCommit() (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// PopulateMetadata fills in the metadata fields of the config
func (mc *MetadataCollector) PopulateMetadata(config *RenderConfig) {
	config.Metadata.Timestamp = mc.timestamp.Format("2006-01-02 15:04:05")
	config.Metadata.GitCommit = mc.gitCommit
}
