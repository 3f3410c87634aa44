package barrel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBrewScript emulates brew against two list files in dir
const fakeBrewScript = `#!/bin/sh
STATE=%q
case "$*" in
  "--version") echo "Homebrew 4.3.1"; echo "Homebrew/homebrew-core (git revision 1a2b)";;
  "list --versions") cat "$STATE/formula" 2>/dev/null;;
  "list --cask --versions") cat "$STATE/cask" 2>/dev/null;;
  "install wget") echo "==> Downloading wget"; echo "==> Installing wget"; echo "wget 1.24.5" >> "$STATE/formula";;
  "install --cask firefox") echo "firefox 125.0.1" >> "$STATE/cask";;
  "uninstall wget") : > "$STATE/formula";;
  *) echo "Error: No available formula with the name \"$2\"." >&2; exit 1;;
esac
`

const formulaJSON = `[{"name": "wget", "full_name": "wget", "desc": "Internet file retriever",
 "homepage": "https://www.gnu.org/software/wget/",
 "versions": {"stable": "1.24.5", "head": "HEAD", "bottle": true}, "dependencies": ["libidn2"]}]`

const caskJSON = `[{"token": "firefox", "name": ["Mozilla Firefox"], "desc": "Web browser",
 "homepage": "https://www.mozilla.org/firefox/", "version": "125.0.1",
 "url": "https://download-installer.cdn.mozilla.net/firefox.dmg"}]`

type harness struct {
	manager *Manager
	state   string
	broken  *atomic.Bool
}

func newHarness(t *testing.T, withBrew bool) *harness {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake brew scripts need a POSIX shell")
	}

	dir := t.TempDir()
	state := filepath.Join(dir, "state")
	require.NoError(t, os.MkdirAll(state, 0755))

	brewPath := filepath.Join(dir, "bin", "brew")
	if withBrew {
		require.NoError(t, os.MkdirAll(filepath.Dir(brewPath), 0755))
		require.NoError(t, os.WriteFile(brewPath, []byte(fmt.Sprintf(fakeBrewScript, state)), 0755))
	}

	broken := &atomic.Bool{}
	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if broken.Load() {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/formula.json", serve(formulaJSON))
	mux.HandleFunc("/cask.json", serve(caskJSON))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &Config{
		BrewPaths:    []string{filepath.Join(dir, "missing", "brew"), brewPath},
		FormulaURL:   srv.URL + "/formula.json",
		CaskURL:      srv.URL + "/cask.json",
		DatabasePath: filepath.Join(dir, "data", "inventory.db"),
		HTTPTimeout:  5 * time.Second,
	}
	logger := zerolog.Nop()
	m, err := NewManager(Options{Config: cfg, Logger: &logger})
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	return &harness{manager: m, state: state, broken: broken}
}

func TestManager_CheckTool(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h := newHarness(t, true)
		status, err := h.manager.CheckTool(context.Background())
		require.NoError(t, err)
		assert.True(t, status.Found)
		assert.Equal(t, "4.3.1", status.Version)
		assert.Equal(t, "brew", filepath.Base(status.Path))
	})

	t.Run("missing", func(t *testing.T) {
		h := newHarness(t, false)
		status, err := h.manager.CheckTool(context.Background())
		require.NoError(t, err)
		assert.False(t, status.Found)
	})
}

func TestManager_InstallRefreshesInventory(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()

	require.NoError(t, h.manager.Install(ctx, "wget", KindFormula))
	require.NoError(t, h.manager.Install(ctx, "firefox", KindCask))

	pkgs, err := h.manager.Installed(ctx)
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.Equal(t, "firefox", pkgs[0].Name)
	assert.Equal(t, KindCask, pkgs[0].Kind)
	assert.Equal(t, "wget", pkgs[1].Name)
	assert.Equal(t, "1.24.5", pkgs[1].Version)
	assert.NotEmpty(t, pkgs[1].ID)

	ok, err := h.manager.IsInstalled(ctx, "wget", KindFormula)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.manager.IsInstalled(ctx, "wget", KindCask)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, h.manager.Uninstall(ctx, "wget", KindFormula))
	ok, err = h.manager.IsInstalled(ctx, "wget", KindFormula)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_ActionFailure(t *testing.T) {
	h := newHarness(t, true)

	err := h.manager.Install(context.Background(), "nope", KindFormula)
	require.ErrorIs(t, err, ErrCommandFailed)

	var opErr *Error
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "install", opErr.Op)
	assert.Equal(t, "nope", opErr.Package)
	assert.Contains(t, err.Error(), "No available formula")
}

func TestManager_MissingBrew(t *testing.T) {
	h := newHarness(t, false)
	assert.ErrorIs(t, h.manager.Refresh(context.Background()), ErrExecutableNotFound)
	assert.ErrorIs(t, h.manager.Install(context.Background(), "wget", KindFormula), ErrExecutableNotFound)
}

func TestManager_InstallWithProgress(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()

	var fractions []float64
	require.NoError(t, h.manager.InstallWithProgress(ctx, "wget", KindFormula, func(f float64) {
		fractions = append(fractions, f)
	}))
	assert.Equal(t, []float64{0.01, 0.1, 0.6, 1.0}, fractions)

	// the caller refreshes once progress is done
	ok, err := h.manager.IsInstalled(ctx, "wget", KindFormula)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, h.manager.Refresh(ctx))
	ok, err = h.manager.IsInstalled(ctx, "wget", KindFormula)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestManager_Catalogs(t *testing.T) {
	h := newHarness(t, true)
	ctx := context.Background()

	_, err := h.manager.Lookup("wget")
	assert.ErrorIs(t, err, ErrCatalogNotLoaded)

	catalog, err := h.manager.FetchCatalogs(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog.Formulae, 1)
	assert.Same(t, catalog, h.manager.Catalog())

	entry, err := h.manager.Lookup("wget")
	require.NoError(t, err)
	assert.Equal(t, KindFormula, entry.Kind)
	assert.Equal(t, "1.24.5", entry.Version)
	assert.Equal(t, []string{"libidn2"}, entry.Dependencies)

	entry, err = h.manager.Lookup("firefox")
	require.NoError(t, err)
	assert.Equal(t, KindCask, entry.Kind)

	_, err = h.manager.Lookup("curl")
	assert.ErrorIs(t, err, ErrPackageNotFound)

	t.Run("failed fetch keeps previous snapshot", func(t *testing.T) {
		h.broken.Store(true)
		defer h.broken.Store(false)

		_, err := h.manager.FetchCatalogs(ctx)
		assert.ErrorIs(t, err, ErrTransport)
		assert.Same(t, catalog, h.manager.Catalog())
	})

	t.Run("search", func(t *testing.T) {
		h.manager.Search("FIRE")
		require.NoError(t, h.manager.WaitSearch(ctx))

		view := h.manager.SearchResults()
		assert.Equal(t, "FIRE", view.Query)
		assert.Empty(t, view.Formulae)
		require.Len(t, view.Casks, 1)
		assert.Equal(t, "firefox", view.Casks[0].Token)
	})

	t.Run("fuzzy search", func(t *testing.T) {
		ranked := h.manager.FuzzySearch("wgt", 10)
		require.Len(t, ranked, 1)
		assert.Equal(t, "wget", ranked[0].Name)
	})
}

func TestNewManager_StoreFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	cfg := DefaultConfig()
	cfg.DatabasePath = filepath.Join(blocker, "inventory.db")

	_, err := NewManager(Options{Config: cfg})
	var opErr *Error
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "open inventory", opErr.Op)
}
