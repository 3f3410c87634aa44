// pkg/filter/filter.go
package filter

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/arc-language/barrel/pkg/brew"
	"github.com/arc-language/barrel/pkg/logging"
)

// View is one published filter result. Both lists always belong to the
// same query and catalog snapshot.
type View struct {
	Query    string
	Formulae []brew.Formula
	Casks    []brew.Cask
}

// Options contains configuration for a Filter
type Options struct {
	// Publish is called with every completed pass. It runs while the
	// filter is locked and must not call back into the Filter.
	Publish func(View)
	Logger  *zerolog.Logger
}

// Filter runs cancellable filtering passes over a catalog snapshot
type Filter struct {
	publish func(View)
	logger  zerolog.Logger

	mu      sync.Mutex
	catalog *brew.Catalog
	query   string
	gen     uint64
	cancel  context.CancelFunc
	done    chan struct{}
	view    View
}

// New creates an idle filter with an empty catalog
func New(opts Options) *Filter {
	done := make(chan struct{})
	close(done)
	return &Filter{
		publish: opts.Publish,
		logger:  logging.OrDefault(opts.Logger, "filter"),
		done:    done,
	}
}

// SetCatalog swaps the catalog snapshot and reruns the current query
func (f *Filter) SetCatalog(catalog *brew.Catalog) {
	f.mu.Lock()
	f.catalog = catalog
	query := f.query
	f.mu.Unlock()

	f.SetQuery(query)
}

// SetQuery starts a pass for query, superseding any pass in flight
func (f *Filter) SetQuery(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	f.query = query

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	f.cancel = cancel
	f.done = done

	go f.run(ctx, f.gen, query, f.catalog, done)
}

// View returns the most recently published result
func (f *Filter) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view
}

// Wait blocks until the latest pass has published or been superseded
func (f *Filter) Wait(ctx context.Context) error {
	f.mu.Lock()
	done := f.done
	f.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the pass in flight
func (f *Filter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Filter) run(ctx context.Context, gen uint64, query string, catalog *brew.Catalog, done chan struct{}) {
	defer close(done)

	view, ok := compute(ctx, query, catalog)
	if !ok {
		f.logger.Trace().Str("query", query).Msg("Filter pass cancelled")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// A newer SetQuery may have landed after the last cancellation poll.
	if gen != f.gen {
		return
	}

	f.view = view
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if f.publish != nil {
		f.publish(view)
	}
	f.logger.Debug().
		Str("query", query).
		Int("formulae", len(view.Formulae)).
		Int("casks", len(view.Casks)).
		Msg("Filter published")
}

// compute returns the entries of catalog whose name or token contains query,
// ignoring case, in catalog order. It reports false once ctx is cancelled.
func compute(ctx context.Context, query string, catalog *brew.Catalog) (View, bool) {
	view := View{Query: query}
	if catalog == nil {
		return view, ctx.Err() == nil
	}

	m := newMatcher(query)

	view.Formulae = make([]brew.Formula, 0, len(catalog.Formulae))
	for _, formula := range catalog.Formulae {
		if ctx.Err() != nil {
			return View{}, false
		}
		if m.match(formula.Name) {
			view.Formulae = append(view.Formulae, formula)
		}
	}

	view.Casks = make([]brew.Cask, 0, len(catalog.Casks))
	for _, cask := range catalog.Casks {
		if ctx.Err() != nil {
			return View{}, false
		}
		if m.match(cask.Token) {
			view.Casks = append(view.Casks, cask)
		}
	}

	return view, ctx.Err() == nil
}

// matcher tests case-insensitive containment. Not safe for concurrent use.
type matcher struct {
	fold   cases.Caser
	needle string
}

func newMatcher(query string) *matcher {
	fold := cases.Fold()
	return &matcher{fold: fold, needle: fold.String(query)}
}

func (m *matcher) match(s string) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.fold.String(s), m.needle)
}

// Match reports whether name contains query, ignoring case
func Match(name, query string) bool {
	return newMatcher(query).match(name)
}
