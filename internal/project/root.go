package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the file name looked up by FindManifest.
const ManifestName = "pinecheck.toml"

// ErrManifestNotFound is returned when no manifest exists between the start
// directory and the filesystem root.
var ErrManifestNotFound = errors.New("no " + ManifestName + " found")

// FindManifest walks up from startDir to locate pinecheck.toml.
func FindManifest(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrManifestNotFound
}

// FindProjectRoot returns the directory containing pinecheck.toml.
func FindProjectRoot(startDir string) (string, error) {
	manifestPath, err := FindManifest(startDir)
	if err != nil {
		return "", err
	}
	return filepath.Dir(manifestPath), nil
}
