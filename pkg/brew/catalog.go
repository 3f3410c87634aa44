// pkg/brew/catalog.go
package brew

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arc-language/barrel/pkg/logging"
)

// CatalogFetcher retrieves the formula and cask catalogs
type CatalogFetcher struct {
	client     *Client
	formulaURL string
	caskURL    string
	logger     zerolog.Logger
}

// NewCatalogFetcher creates a fetcher for the two catalog endpoints
func NewCatalogFetcher(client *Client, formulaURL, caskURL string, logger *zerolog.Logger) *CatalogFetcher {
	if client == nil {
		client = NewClient()
	}
	return &CatalogFetcher{
		client:     client,
		formulaURL: formulaURL,
		caskURL:    caskURL,
		logger:     logging.OrDefault(logger, "catalog"),
	}
}

// FetchCatalogs retrieves both catalogs concurrently. Both must succeed:
// the first failure cancels the other request and no partial catalog is
// returned. There is no retry.
func (f *CatalogFetcher) FetchCatalogs(ctx context.Context) (*Catalog, error) {
	done := logging.LogOperationStart(f.logger, "fetch catalogs")
	defer done()

	var formulae []Formula
	var casks []Cask

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return f.client.GetJSON(gctx, f.formulaURL, &formulae)
	})
	g.Go(func() error {
		return f.client.GetJSON(gctx, f.caskURL, &casks)
	})

	if err := g.Wait(); err != nil {
		f.logger.Warn().Err(err).Msg("Catalog fetch failed")
		return nil, err
	}

	f.logger.Info().
		Int("formulae", len(formulae)).
		Int("casks", len(casks)).
		Msg("Catalogs fetched")

	return &Catalog{
		Formulae:  formulae,
		Casks:     casks,
		FetchedAt: time.Now(),
	}, nil
}
