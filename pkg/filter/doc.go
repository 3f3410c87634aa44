// pkg/filter/doc.go

// Package filter narrows the in-memory formula and cask catalogs as a search
// query changes.
//
// Each call to Filter.SetQuery starts a new pass and cancels the one before
// it. A cancelled pass never publishes, so only the results of the most
// recently requested query are ever observable.
package filter
