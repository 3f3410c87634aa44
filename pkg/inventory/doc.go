// pkg/inventory/doc.go

// Package inventory keeps the persisted inventory in step with what brew
// reports as installed.
//
// A refresh lists formulae and casks concurrently, then replaces the whole
// stored inventory with the result. Refreshes on one Synchronizer are
// serialized, so two refreshes never interleave their writes. Package
// actions (install, uninstall, upgrade) refresh only when brew succeeds.
package inventory
