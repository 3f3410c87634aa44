// pkg/core/interface.go
package core

import "context"

// Runner runs the brew executable to completion and returns its combined output
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// StreamRunner runs the brew executable and hands each output fragment to onLine
// as soon as it is read. Implementations must deliver the fragments of one
// stream in order and may interleave the two streams freely. At minimum they
// may call onLine from two goroutines at once, so callbacks sharing state must
// lock; brew.Runner is stricter and calls onLine from the caller's goroutine.
type StreamRunner interface {
	RunStreaming(ctx context.Context, args []string, onLine func(string)) (string, error)
}

// InventoryStore persists installed packages
type InventoryStore interface {
	// Replace swaps the whole inventory for pkgs in a single transaction
	Replace(ctx context.Context, pkgs []InstalledPackage) error

	// List returns the inventory ordered by name, then version
	List(ctx context.Context) ([]InstalledPackage, error)
}
