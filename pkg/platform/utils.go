// pkg/platform/utils.go
package platform

import (
	"os/exec"
	"path/filepath"
	"slices"
)

// commandPath returns the absolute path of cmd on PATH, or ""
func commandPath(cmd string) string {
	path, err := exec.LookPath(cmd)
	if err != nil {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// contains reports whether candidates holds path, comparing cleaned paths
func contains(candidates []string, path string) bool {
	clean := filepath.Clean(path)
	return slices.ContainsFunc(candidates, func(c string) bool {
		return filepath.Clean(c) == clean
	})
}
