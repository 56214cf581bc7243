// Package fetch retrieves raw HTML and binary resources over HTTP with a
// bounded timeout and a fixed identifying user agent.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vnnews/crawler/internal/config"
	"github.com/vnnews/crawler/internal/logger"
)

// Error reports a transport or HTTP failure for a URL. It is distinct
// from content-level failures so the caller can decide to retry or skip.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying transport error, if any.
func (e *Error) Unwrap() error { return e.Err }

// Client fetches pages and resources. All requests share the same timeout
// and identifying headers.
type Client struct {
	http      *http.Client
	userAgent string
	accept    string
	log       logger.Interface
}

// New creates a fetch client from HTTP config.
func New(cfg config.HTTPConfig, log logger.Interface) *Client {
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		accept:    cfg.Accept,
		log:       log,
	}
}

// Get performs a GET with the identifying headers and returns the body.
// Non-2xx responses and transport failures return a *Error.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url, true)
}

// Page fetches an HTML page, trying the fully-headed request first and
// falling back to a bare GET. The first non-empty body wins.
func (c *Client) Page(ctx context.Context, url string) ([]byte, error) {
	body, err := c.get(ctx, url, true)
	if err == nil && len(body) > 0 {
		return body, nil
	}

	if err != nil {
		c.log.Debug("headed fetch failed, retrying bare", "url", url, "error", err)
	}

	bare, bareErr := c.get(ctx, url, false)
	if bareErr == nil && len(bare) > 0 {
		return bare, nil
	}

	if err != nil {
		return nil, err
	}
	if bareErr != nil {
		return nil, bareErr
	}
	return nil, &Error{URL: url, Err: errEmptyBody}
}

// errEmptyBody marks a 2xx response with no content.
var errEmptyBody = fmt.Errorf("empty response body")

// get runs one GET. When headed is false the request carries no custom
// headers, which gets past a few servers that reject unknown bots.
func (c *Client) get(ctx context.Context, url string, headed bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}

	if headed {
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", c.accept)
	}

	resp, doErr := c.http.Do(req)
	if doErr != nil {
		return nil, &Error{URL: url, Err: doErr}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode}
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, &Error{URL: url, Err: readErr}
	}

	return body, nil
}
