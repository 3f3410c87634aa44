package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/barrel/pkg/core"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Replace(context.Background(), []core.InstalledPackage{
		{Name: "wget", Version: "1.21.1", Kind: core.KindFormula},
	}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	pkgs, err := s2.List(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "wget", pkgs[0].Name)
}

func TestReplace_AssignsIDsAndSorts(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	err := s.Replace(ctx, []core.InstalledPackage{
		{Name: "wget", Version: "1.21.1", Kind: core.KindFormula},
		{Name: "firefox", Version: "125.0", Kind: core.KindCask},
		{Name: "jq", Version: "1.7.1", Kind: core.KindFormula},
		{Name: "jq", Version: "1.6", Kind: core.KindCask},
	})
	require.NoError(t, err)

	pkgs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, pkgs, 4)

	var names []string
	ids := map[string]bool{}
	for _, p := range pkgs {
		names = append(names, p.Name+"@"+p.Version)
		assert.NotEmpty(t, p.ID)
		ids[p.ID] = true
	}
	assert.Equal(t, []string{"firefox@125.0", "jq@1.6", "jq@1.7.1", "wget@1.21.1"}, names)
	assert.Len(t, ids, 4, "ids must be unique")
}

func TestReplace_DiscardsPreviousGeneration(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, []core.InstalledPackage{
		{Name: "wget", Version: "1.21.1", Kind: core.KindFormula},
		{Name: "curl", Version: "8.0", Kind: core.KindFormula},
	}))
	require.NoError(t, s.Replace(ctx, []core.InstalledPackage{
		{Name: "wget", Version: "1.24.5", Kind: core.KindFormula},
	}))

	pkgs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "1.24.5", pkgs[0].Version)

	require.NoError(t, s.Replace(ctx, nil))
	pkgs, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, pkgs)
}

func TestReplace_FailureKeepsPreviousGeneration(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	original := []core.InstalledPackage{{Name: "wget", Version: "1.21.1", Kind: core.KindFormula}}
	require.NoError(t, s.Replace(ctx, original))

	// Duplicate (name, kind) violates the unique constraint mid-transaction.
	err := s.Replace(ctx, []core.InstalledPackage{
		{Name: "jq", Version: "1.7.1", Kind: core.KindFormula},
		{Name: "jq", Version: "1.7.2", Kind: core.KindFormula},
	})
	require.Error(t, err)

	pkgs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "wget", pkgs[0].Name)
}

func TestReplace_RejectsEmptyName(t *testing.T) {
	s := createTestStore(t)

	err := s.Replace(context.Background(), []core.InstalledPackage{{Name: "", Version: "1", Kind: core.KindFormula}})
	assert.Error(t, err)
}

func TestReplace_CancelledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Replace(ctx, []core.InstalledPackage{{Name: "wget", Version: "1", Kind: core.KindFormula}})
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, []core.InstalledPackage{
		{ID: "fixed-id", Name: "firefox", Version: "125.0", Kind: core.KindCask},
	}))

	p, ok, err := s.Get(ctx, "firefox", core.KindCask)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fixed-id", p.ID)
	assert.Equal(t, "125.0", p.Version)

	_, ok, err = s.Get(ctx, "firefox", core.KindFormula)
	require.NoError(t, err)
	assert.False(t, ok)
}
