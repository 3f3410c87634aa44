// pkg/brew/locator.go
package brew

import "os"

// Locator finds the brew executable among a fixed, ordered list of paths.
// Nothing is cached: brew may be installed or removed between calls.
type Locator struct {
	paths []string
}

// NewLocator creates a Locator that probes paths in order
func NewLocator(paths ...string) *Locator {
	return &Locator{paths: append([]string(nil), paths...)}
}

// Paths returns the candidate list
func (l *Locator) Paths() []string {
	return append([]string(nil), l.paths...)
}

// Locate returns the first candidate that is an executable regular file
func (l *Locator) Locate() (string, bool) {
	for _, path := range l.paths {
		if isExecutable(path) {
			return path, true
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}
