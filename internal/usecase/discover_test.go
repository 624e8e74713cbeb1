package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"RiskRadar/internal/domain/repository"
)

func testDiscovererConfig() DiscovererConfig {
	return DiscovererConfig{MaxPages: 10, RetryMax: 3, RetryDelay: time.Second}
}

func TestDiscovererWalksPages(t *testing.T) {
	src := &fakeListing{pages: map[int]listingPage{
		1: {symbols: []string{"AAA", "BBB"}, hasNext: true},
		2: {symbols: []string{"BBB", "CCC"}, hasNext: true},
		3: {symbols: []string{"DDD"}, hasNext: false},
	}}
	d := NewDiscoverer(src, testDiscovererConfig(), newFakeMetrics(), nil)
	d.sleep = func(time.Duration) {}

	var pages []int
	got, err := d.Run(context.Background(), func(page, added int) {
		pages = append(pages, page)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"AAA", "BBB", "CCC", "DDD"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !reflect.DeepEqual(pages, []int{1, 2, 3}) {
		t.Fatalf("unexpected page callbacks %v", pages)
	}
}

func TestDiscovererStopsWhenPageAddsNothing(t *testing.T) {
	// Page 2 repeats page 1 while still advertising a next page.
	src := &fakeListing{pages: map[int]listingPage{
		1: {symbols: []string{"AAA", "BBB"}, hasNext: true},
		2: {symbols: []string{"AAA", "BBB"}, hasNext: true},
		3: {symbols: []string{"CCC"}, hasNext: false},
	}}
	d := NewDiscoverer(src, testDiscovererConfig(), newFakeMetrics(), nil)
	d.sleep = func(time.Duration) {}

	got, err := d.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"AAA", "BBB"}) {
		t.Fatalf("expected stop after repeat page, got %v", got)
	}
	if len(src.calls) != 2 {
		t.Fatalf("expected 2 page fetches, got %v", src.calls)
	}
}

func TestDiscovererHonorsMaxPages(t *testing.T) {
	src := &fakeListing{pages: map[int]listingPage{
		1: {symbols: []string{"AAA"}, hasNext: true},
		2: {symbols: []string{"BBB"}, hasNext: true},
		3: {symbols: []string{"CCC"}, hasNext: true},
	}}
	cfg := testDiscovererConfig()
	cfg.MaxPages = 2
	d := NewDiscoverer(src, cfg, newFakeMetrics(), nil)
	d.sleep = func(time.Duration) {}

	got, err := d.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"AAA", "BBB"}) {
		t.Fatalf("expected MaxPages cutoff, got %v", got)
	}
}

func TestDiscovererRetriesRateLimitWithLinearBackoff(t *testing.T) {
	inner := &fakeListing{pages: map[int]listingPage{
		1: {symbols: []string{"AAA"}, hasNext: false},
	}}
	src := &retryListing{inner: inner, failures: 2, err: &repository.RateLimitedError{URL: "u"}}
	d := NewDiscoverer(src, testDiscovererConfig(), newFakeMetrics(), nil)

	var waits []time.Duration
	d.sleep = func(w time.Duration) { waits = append(waits, w) }

	got, err := d.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"AAA"}) {
		t.Fatalf("expected recovery after retries, got %v", got)
	}
	if !reflect.DeepEqual(waits, []time.Duration{time.Second, 2 * time.Second}) {
		t.Fatalf("expected linear backoff, got %v", waits)
	}
}

func TestDiscovererGivesUpAfterRetryMax(t *testing.T) {
	src := &retryListing{
		inner:    &fakeListing{pages: map[int]listingPage{}},
		failures: 10,
		err:      &repository.RateLimitedError{URL: "u"},
	}
	d := NewDiscoverer(src, testDiscovererConfig(), newFakeMetrics(), nil)
	d.sleep = func(time.Duration) {}

	if _, err := d.Run(context.Background(), nil); !repository.IsRateLimited(err) {
		t.Fatalf("expected rate limit error after exhausted retries, got %v", err)
	}
	if src.attempts != 4 {
		t.Fatalf("expected 1 attempt + 3 retries, got %d", src.attempts)
	}
}

func TestDiscovererFatalErrorAborts(t *testing.T) {
	boom := errors.New("parse failed")
	src := &fakeListing{pages: map[int]listingPage{
		1: {err: boom},
	}}
	d := NewDiscoverer(src, testDiscovererConfig(), newFakeMetrics(), nil)
	d.sleep = func(time.Duration) {}

	if _, err := d.Run(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected fatal error, got %v", err)
	}
}
