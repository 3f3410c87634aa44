// pkg/inventory/errors.go
package inventory

import (
	"errors"
	"fmt"
)

// ErrSync matches any *SyncError
var ErrSync = errors.New("inventory sync failed")

// SyncError is returned when the new inventory could not be persisted. The
// stored inventory is then still the previous generation.
type SyncError struct {
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%v: %v", ErrSync, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrSync) match
func (e *SyncError) Is(target error) bool {
	return target == ErrSync
}
