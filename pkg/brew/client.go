// pkg/brew/client.go
package brew

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxCatalogBytes caps a catalog body; formula.json is a few tens of MB
const maxCatalogBytes = 256 << 20

// Client downloads the JSON catalogs published by Homebrew
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxBody    int64
}

// NewClient creates a client with a 30 second timeout
func NewClient() *Client {
	return NewClientWithTimeout(30 * time.Second)
}

// NewClientWithTimeout creates a client whose requests give up after timeout.
// Proxies come from the environment.
func NewClientWithTimeout(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		userAgent: DefaultUserAgent,
		maxBody:   maxCatalogBytes,
	}
}

// GetJSON decodes the catalog at url into v. Anything that goes wrong before
// the body is read (request, connection, non-200 status) is a transport
// failure; a body that is not the expected JSON is a decode failure.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.fetch(ctx, url)
	if err != nil {
		return &FetchError{URL: url, Stage: StageTransport, Err: err}
	}
	defer body.Close()

	dec := json.NewDecoder(io.LimitReader(body, c.maxBody))
	if err := dec.Decode(v); err != nil {
		// A body cut short by cancellation is not malformed.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &FetchError{URL: url, Stage: StageTransport, Err: ctxErr}
		}
		return &FetchError{URL: url, Stage: StageDecode, Err: err}
	}
	return nil
}

// fetch returns the body of a 200 response
func (c *Client) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return nil, fmt.Errorf("server answered %s", resp.Status)
	}
	return resp.Body, nil
}
