// Package upstream provides the shared fetch path for all scrape clients:
// one HTTP client with a browser-like user agent, 429 detection, and an
// optional byte cache in front of upstream GETs.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"RiskRadar/internal/domain/repository"
	"RiskRadar/pkg/cache"
	xhttp "RiskRadar/pkg/http"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Fetcher wraps the HTTP client used by every scrape source.
type Fetcher struct {
	client *xhttp.Client
	store  cache.Store
	ttl    time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCache enables response caching with the given TTL.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(f *Fetcher) {
		f.store = store
		f.ttl = ttl
	}
}

// NewFetcher creates a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	f := &Fetcher{client: xhttp.NewClient(xhttp.WithTimeout(timeout))}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetBytes fetches url and returns the response body. HTTP 429 surfaces as a
// *repository.RateLimitedError; other non-2xx statuses are plain errors.
func (f *Fetcher) GetBytes(ctx context.Context, url string) ([]byte, error) {
	if f.store != nil {
		if b, ok, err := f.store.GetBytes(ctx, cache.Key("fetch", url)); err == nil && ok {
			return b, nil
		}
	}

	resp, err := f.client.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    url,
		Headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &repository.RateLimitedError{URL: url}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if f.store != nil {
		_ = f.store.SetBytes(ctx, cache.Key("fetch", url), body, f.ttl)
	}
	return body, nil
}

// GetDocument fetches url and parses the body as an HTML document.
func (f *Fetcher) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := f.GetBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}
