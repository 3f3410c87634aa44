// pkg/brew/progress.go
package brew

import "strings"

// Phase maps a literal marker in brew output to a progress fraction
type Phase struct {
	Marker   string
	Fraction float64
}

// PhaseTable is an ordered list of phases. When a line contains several
// markers the earliest phase in the table wins.
type PhaseTable []Phase

// InstallPhases returns the markers `brew install` prints for name.
// They are English, version-dependent strings, so the fractions they yield
// are hints and not a guaranteed non-decreasing sequence.
func InstallPhases(name string) PhaseTable {
	return PhaseTable{
		{Marker: "==> Downloading", Fraction: 0.1},
		{Marker: "==> Fetching dependencies", Fraction: 0.2},
		{Marker: "==> Installing dependencies", Fraction: 0.4},
		{Marker: "==> Installing " + name, Fraction: 0.6},
		{Marker: "==> Summary", Fraction: 0.8},
	}
}

// Match returns the fraction of the first phase whose marker occurs in line
func (t PhaseTable) Match(line string) (float64, bool) {
	for _, phase := range t {
		if strings.Contains(line, phase.Marker) {
			return phase.Fraction, true
		}
	}
	return 0, false
}

// LineReporter returns an onLine callback that reports the fraction of every
// matching line to onProgress
func (t PhaseTable) LineReporter(onProgress func(float64)) func(string) {
	return func(line string) {
		if fraction, ok := t.Match(line); ok {
			onProgress(fraction)
		}
	}
}
