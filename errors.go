// errors.go
package barrel

import (
	"errors"
	"fmt"

	"github.com/arc-language/barrel/pkg/brew"
	"github.com/arc-language/barrel/pkg/core"
	"github.com/arc-language/barrel/pkg/inventory"
)

var (
	// ErrPackageNotFound indicates the package is not in the catalog
	ErrPackageNotFound = errors.New("package not found")

	// ErrCatalogNotLoaded indicates no catalog fetch has succeeded yet
	ErrCatalogNotLoaded = errors.New("catalog not loaded")

	// ErrInvalidPackage indicates the package name or kind is invalid
	ErrInvalidPackage = core.ErrInvalidPackage

	// ErrExecutableNotFound indicates brew is not at any known location
	ErrExecutableNotFound = brew.ErrExecutableNotFound

	// ErrCommandFailed indicates brew exited with a nonzero status
	ErrCommandFailed = brew.ErrCommandFailed

	// ErrTransport indicates a catalog could not be retrieved
	ErrTransport = brew.ErrTransport

	// ErrDecode indicates a catalog payload could not be decoded
	ErrDecode = brew.ErrDecode

	// ErrSync indicates the refreshed inventory could not be persisted
	ErrSync = inventory.ErrSync
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op, pkg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Package: pkg, Err: err}
}
