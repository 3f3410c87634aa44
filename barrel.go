// barrel.go
package barrel

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/arc-language/barrel/pkg/brew"
	"github.com/arc-language/barrel/pkg/core"
	"github.com/arc-language/barrel/pkg/filter"
	"github.com/arc-language/barrel/pkg/inventory"
	"github.com/arc-language/barrel/pkg/logging"
	"github.com/arc-language/barrel/pkg/store"
)

// Re-export types for convenience
type (
	Config           = core.Config
	Kind             = core.Kind
	InstalledPackage = core.InstalledPackage
	Formula          = brew.Formula
	Cask             = brew.Cask
	Catalog          = brew.Catalog
	View             = filter.View
	Ranked           = filter.Ranked
)

// Re-export kind constants
const (
	KindFormula = core.KindFormula
	KindCask    = core.KindCask
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Options configures a Manager
type Options struct {
	Config *Config
	Logger *zerolog.Logger
	// OnFilter receives every published search result; see filter.Options
	OnFilter func(View)
}

// ToolStatus describes the brew installation
type ToolStatus struct {
	Found   bool
	Path    string
	Version string
}

// Entry is the catalog record of one formula or cask
type Entry struct {
	Kind         Kind
	Name         string
	Description  string
	Homepage     string
	Version      string
	URL          string
	Dependencies []string
}

// Manager ties the brew runner, the persisted inventory, the remote
// catalogs and the search filter together
type Manager struct {
	config       *core.Config
	logger       zerolog.Logger
	locator      *brew.Locator
	runner       *brew.Runner
	store        *store.Store
	synchronizer *inventory.Synchronizer
	fetcher      *brew.CatalogFetcher
	filter       *filter.Filter

	mu      sync.RWMutex
	catalog *brew.Catalog
}

// NewManager opens the inventory store and wires every component
func NewManager(opts Options) (*Manager, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	logger := logging.OrDefault(opts.Logger, "barrel")

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, wrap("open inventory", cfg.DatabasePath, err)
	}

	locator := brew.NewLocator(cfg.BrewPaths...)
	runner := brew.NewRunner(locator, opts.Logger)

	m := &Manager{
		config:  cfg,
		logger:  logger,
		locator: locator,
		runner:  runner,
		store:   st,
		synchronizer: inventory.New(inventory.Options{
			Runner:       runner,
			StreamRunner: runner,
			Store:        st,
			Logger:       opts.Logger,
		}),
		fetcher: brew.NewCatalogFetcher(
			brew.NewClientWithTimeout(cfg.HTTPTimeout),
			cfg.FormulaURL,
			cfg.CaskURL,
			opts.Logger,
		),
		filter: filter.New(filter.Options{Publish: opts.OnFilter, Logger: opts.Logger}),
	}

	logger.Debug().
		Strs("brew_paths", cfg.BrewPaths).
		Str("database", cfg.DatabasePath).
		Msg("Manager initialized")

	return m, nil
}

// Config returns the configuration the manager was built with
func (m *Manager) Config() *Config {
	return m.config
}

// CheckTool locates brew and reads its version. A missing brew is reported
// through Found, not as an error.
func (m *Manager) CheckTool(ctx context.Context) (ToolStatus, error) {
	path, ok := m.locator.Locate()
	if !ok {
		return ToolStatus{}, nil
	}

	status := ToolStatus{Found: true, Path: path, Version: brew.UnknownVersion}
	version, err := brew.Version(ctx, m.runner)
	if err != nil {
		return status, wrap("check tool", "", err)
	}
	status.Version = version
	return status, nil
}

// Refresh rebuilds the inventory from `brew list`
func (m *Manager) Refresh(ctx context.Context) error {
	return wrap("refresh", "", m.synchronizer.Refresh(ctx))
}

// Installed returns the stored inventory sorted by name, then version
func (m *Manager) Installed(ctx context.Context) ([]InstalledPackage, error) {
	pkgs, err := m.synchronizer.Installed(ctx)
	if err != nil {
		return nil, wrap("list installed", "", err)
	}
	return pkgs, nil
}

// IsInstalled reports whether the inventory holds name of the given kind
func (m *Manager) IsInstalled(ctx context.Context, name string, kind Kind) (bool, error) {
	_, ok, err := m.store.Get(ctx, name, kind)
	if err != nil {
		return false, wrap("lookup installed", name, err)
	}
	return ok, nil
}

// Install installs a package and refreshes the inventory
func (m *Manager) Install(ctx context.Context, name string, kind Kind) error {
	return wrap("install", name, m.synchronizer.Install(ctx, name, kind))
}

// InstallWithProgress installs a package, reporting progress fractions to
// onProgress. The inventory is not refreshed.
func (m *Manager) InstallWithProgress(ctx context.Context, name string, kind Kind, onProgress func(float64)) error {
	return wrap("install", name, m.synchronizer.InstallWithProgress(ctx, name, kind, onProgress))
}

// Uninstall removes a package and refreshes the inventory
func (m *Manager) Uninstall(ctx context.Context, name string, kind Kind) error {
	return wrap("uninstall", name, m.synchronizer.Uninstall(ctx, name, kind))
}

// Upgrade upgrades a package and refreshes the inventory
func (m *Manager) Upgrade(ctx context.Context, name string, kind Kind) error {
	return wrap("upgrade", name, m.synchronizer.Upgrade(ctx, name, kind))
}

// FetchCatalogs downloads both catalogs. On success the snapshot replaces
// the previous one and the search filter is rerun; on failure the previous
// snapshot is kept.
func (m *Manager) FetchCatalogs(ctx context.Context) (*Catalog, error) {
	catalog, err := m.fetcher.FetchCatalogs(ctx)
	if err != nil {
		return nil, wrap("fetch catalogs", "", err)
	}

	m.mu.Lock()
	m.catalog = catalog
	m.mu.Unlock()

	m.filter.SetCatalog(catalog)
	return catalog, nil
}

// Catalog returns the last successfully fetched catalog, or nil
func (m *Manager) Catalog() *Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog
}

// Lookup finds name in the current catalog. Formulae are checked first.
func (m *Manager) Lookup(name string) (Entry, error) {
	catalog := m.Catalog()
	if catalog == nil {
		return Entry{}, wrap("lookup", name, ErrCatalogNotLoaded)
	}

	if f, ok := catalog.FindFormula(name); ok {
		return Entry{
			Kind:         KindFormula,
			Name:         f.Name,
			Description:  f.Description,
			Homepage:     f.Homepage,
			Version:      f.Versions.Stable,
			Dependencies: f.Dependencies,
		}, nil
	}
	if c, ok := catalog.FindCask(name); ok {
		return Entry{
			Kind:        KindCask,
			Name:        c.Token,
			Description: c.Description,
			Homepage:    c.Homepage,
			Version:     c.Version,
			URL:         c.URL,
		}, nil
	}

	return Entry{}, wrap("lookup", name, ErrPackageNotFound)
}

// Search starts a filter pass for query over the current catalog. Results
// are delivered to Options.OnFilter and through SearchResults.
func (m *Manager) Search(query string) {
	m.filter.SetQuery(query)
}

// WaitSearch blocks until the latest search pass has published
func (m *Manager) WaitSearch(ctx context.Context) error {
	return m.filter.Wait(ctx)
}

// SearchResults returns the most recently published search result
func (m *Manager) SearchResults() View {
	return m.filter.View()
}

// FuzzySearch ranks catalog entries against pattern, best first
func (m *Manager) FuzzySearch(pattern string, limit int) []Ranked {
	return filter.Rank(m.Catalog(), pattern, limit)
}

// Close cancels any search in flight and closes the inventory store
func (m *Manager) Close() error {
	m.filter.Close()
	return m.store.Close()
}
