// pkg/core/package.go
package core

import (
	"errors"
	"fmt"
)

// ErrInvalidPackage indicates a package name or kind that cannot be acted on
var ErrInvalidPackage = errors.New("invalid package")

// Kind is the class of package the brew executable manages
type Kind string

const (
	// KindFormula is a regular Homebrew formula
	KindFormula Kind = "formula"
	// KindCask is a Homebrew cask, addressed with --cask
	KindCask Kind = "cask"
)

// Kinds lists every kind in the order refreshes query them
var Kinds = []Kind{KindFormula, KindCask}

// IsValid reports whether k is a known kind
func (k Kind) IsValid() bool {
	return k == KindFormula || k == KindCask
}

// ParseKind converts a string into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidPackage, s)
	}
	return k, nil
}

// InstalledPackage is one row of the local inventory
type InstalledPackage struct {
	ID      string // Opaque identifier assigned when the row is written
	Name    string // Package name as printed by `brew list`
	Version string // First version token printed by `brew list --versions`
	Kind    Kind
}

// Key identifies a package within the inventory; at most one row exists per key
func (p InstalledPackage) Key() string {
	return string(p.Kind) + "/" + p.Name
}
