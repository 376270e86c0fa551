// Package pypi fetches the latest published version of a package from the
// Python Package Index JSON API. It makes exactly one GET per lookup, bounded
// by a short timeout, and never retries.
package pypi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/indaco/pvx/internal/core"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the PyPI JSON API root.
const DefaultBaseURL = "https://pypi.org/pypi"

// ErrNotFound is returned when the index has no such package.
var ErrNotFound = errors.New("package not found")

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

// Client queries a PyPI-compatible JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another index (tests, mirrors).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient returns a Client for pypi.org with a core.TimeoutNetwork timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: core.TimeoutNetwork},
		userAgent:  "pvx",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestVersion returns info.version for the named package.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %q: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query package index for %q: %w", name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("package index returned %s for %q", resp.Status, name)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("failed to read package index response for %q: %w", name, err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("package index returned invalid JSON for %q", name)
	}

	version := gjson.GetBytes(body, "info.version").String()
	if version == "" {
		return "", fmt.Errorf("package index has no version for %q", name)
	}
	return version, nil
}
