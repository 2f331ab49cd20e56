// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests for course pages, optionally authenticated
// with a session cookie.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gaurav-prasanna/hwscrape/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "hwscrape/1.0 (+https://github.com/gaurav-prasanna/hwscrape)"
)

// ErrUnavailable is returned when the server answers with anything but 200.
// Course sites answer 404 for homework numbers that do not exist yet, so
// callers treat it as "no page" rather than a failure.
var ErrUnavailable = errors.New("page unavailable")

// ErrInvalidCookie is returned by ParseCookie for input not of the form
// name=value.
var ErrInvalidCookie = errors.New("cookie must be name=value")

// HTTPFetcher fetches course pages via HTTP.
type HTTPFetcher struct {
	client *http.Client
	cookie *http.Cookie
}

// New creates an HTTPFetcher. cookie may be nil.
func New(cookie *http.Cookie) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: defaultTimeout},
		cookie: cookie,
	}
}

// ParseCookie parses a "name=value" string. The value may itself contain
// '=' characters. An empty string yields a nil cookie.
func ParseCookie(raw string) (*http.Cookie, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCookie, raw)
	}
	return &http.Cookie{Name: name, Value: strings.TrimSpace(value)}, nil
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("X-Request-ID", requestID)
	if f.cookie != nil {
		req.AddCookie(f.cookie)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s [%s]: %w", url, requestID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d for %s [%s]", ErrUnavailable, resp.StatusCode, url, requestID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
		RequestID:  requestID,
	}, nil
}
