// pkg/inventory/synchronizer.go
package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arc-language/barrel/pkg/brew"
	"github.com/arc-language/barrel/pkg/core"
	"github.com/arc-language/barrel/pkg/logging"
)

// Options contains configuration for the synchronizer
type Options struct {
	Runner       core.Runner
	StreamRunner core.StreamRunner
	Store        core.InventoryStore
	Logger       *zerolog.Logger
}

// Synchronizer rebuilds the stored inventory from brew output
type Synchronizer struct {
	runner   core.Runner
	streamer core.StreamRunner
	store    core.InventoryStore
	logger   zerolog.Logger

	// mu serializes refreshes: each one rewrites the whole store
	mu sync.Mutex
}

// New creates a new synchronizer
func New(opts Options) *Synchronizer {
	return &Synchronizer{
		runner:   opts.Runner,
		streamer: opts.StreamRunner,
		store:    opts.Store,
		logger:   logging.OrDefault(opts.Logger, "inventory"),
	}
}

// Refresh lists installed formulae and casks and replaces the stored
// inventory with exactly what was listed. A failing list command is
// returned as-is and leaves the store untouched; a failing write is
// returned as a *SyncError.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := logging.LogOperationStart(s.logger, "refresh inventory")
	defer done()

	results := make([][]core.InstalledPackage, len(core.Kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range core.Kinds {
		i, kind := i, kind
		g.Go(func() error {
			out, err := s.runner.Run(gctx, brew.ListArgs(kind)...)
			if err != nil {
				return err
			}
			results[i] = brew.ParseList(out, kind)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).Msg("Listing installed packages failed")
		return err
	}

	var pkgs []core.InstalledPackage
	for _, r := range results {
		pkgs = append(pkgs, r...)
	}
	pkgs = dedupe(pkgs)

	if err := s.store.Replace(ctx, pkgs); err != nil {
		s.logger.Error().Err(err).Msg("Persisting inventory failed")
		return &SyncError{Err: err}
	}

	s.logger.Info().Int("packages", len(pkgs)).Msg("Inventory refreshed")
	return nil
}

// Installed returns the stored inventory sorted by name, then version
func (s *Synchronizer) Installed(ctx context.Context) ([]core.InstalledPackage, error) {
	return s.store.List(ctx)
}

// Install runs `brew install` and refreshes on success
func (s *Synchronizer) Install(ctx context.Context, name string, kind core.Kind) error {
	return s.act(ctx, "install", brew.InstallArgs, name, kind)
}

// Uninstall runs `brew uninstall` and refreshes on success
func (s *Synchronizer) Uninstall(ctx context.Context, name string, kind core.Kind) error {
	return s.act(ctx, "uninstall", brew.UninstallArgs, name, kind)
}

// Upgrade runs `brew upgrade` and refreshes on success
func (s *Synchronizer) Upgrade(ctx context.Context, name string, kind core.Kind) error {
	return s.act(ctx, "upgrade", brew.UpgradeArgs, name, kind)
}

func (s *Synchronizer) act(ctx context.Context, verb string, args func(string, core.Kind) []string, name string, kind core.Kind) error {
	if err := validate(name, kind); err != nil {
		return err
	}

	s.logger.Info().Str("action", verb).Str("package", name).Str("kind", string(kind)).Msg("Running package action")

	if _, err := s.runner.Run(ctx, args(name, kind)...); err != nil {
		return err
	}

	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("refreshing after %s %s: %w", verb, name, err)
	}
	return nil
}

// InstallWithProgress installs name while mapping brew output to progress
// fractions. onProgress receives InitialProgress before brew starts, the
// fraction of every line matching an install phase, and CompleteProgress
// after brew exits successfully. The inventory is not refreshed; callers
// do that once they are done with the progress display.
func (s *Synchronizer) InstallWithProgress(ctx context.Context, name string, kind core.Kind, onProgress func(float64)) error {
	if err := validate(name, kind); err != nil {
		return err
	}
	if onProgress == nil {
		onProgress = func(float64) {}
	}

	phases := brew.InstallPhases(name)
	onProgress(brew.InitialProgress)

	if _, err := s.streamer.RunStreaming(ctx, brew.InstallArgs(name, kind), phases.LineReporter(onProgress)); err != nil {
		return err
	}

	onProgress(brew.CompleteProgress)
	return nil
}

func validate(name string, kind core.Kind) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", core.ErrInvalidPackage)
	}
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", core.ErrInvalidPackage, kind)
	}
	return nil
}

// dedupe keeps the first row for every (name, kind)
func dedupe(pkgs []core.InstalledPackage) []core.InstalledPackage {
	seen := make(map[string]bool, len(pkgs))
	out := pkgs[:0]
	for _, p := range pkgs {
		if seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		out = append(out, p)
	}
	return out
}
