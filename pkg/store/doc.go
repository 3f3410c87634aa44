// pkg/store/doc.go

// Package store persists the installed-package inventory in SQLite.
//
// The inventory is rewritten wholesale on every refresh: Replace deletes
// every row and inserts the new generation inside one transaction, so a
// reader never sees rows from two generations at once.
package store
