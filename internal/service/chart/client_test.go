package chart

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"RiskRadar/internal/domain/repository"
	"RiskRadar/internal/service/upstream"
)

func serveJSON(t *testing.T, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotPath
}

func TestDailySeriesDecodesClosesAndVolumes(t *testing.T) {
	srv, gotPath := serveJSON(t, `{
		"chart": {
			"result": [{
				"timestamp": [1, 2, 3, 4],
				"indicators": {"quote": [{
					"close": [100.5, null, 102.25, 103.0],
					"volume": [1000, null, null, 4000]
				}]}
			}],
			"error": null
		}
	}`)

	c := New(upstream.NewFetcher(5*time.Second), srv.URL, "3y", "1d", ".NS")
	series, err := c.DailySeries(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *gotPath != "/ACME.NS?range=3y&interval=1d" {
		t.Fatalf("unexpected request path %q", *gotPath)
	}

	// The null close is dropped; the null volume survives as nil.
	if len(series.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series.Points))
	}
	if series.Points[0].Close != 100.5 || *series.Points[0].Volume != 1000 {
		t.Fatalf("unexpected first point %+v", series.Points[0])
	}
	if series.Points[1].Close != 102.25 || series.Points[1].Volume != nil {
		t.Fatalf("expected nil volume for second point, got %+v", series.Points[1])
	}
	if series.Points[2].Close != 103.0 || *series.Points[2].Volume != 4000 {
		t.Fatalf("unexpected last point %+v", series.Points[2])
	}
}

func TestDailySeriesNoResult(t *testing.T) {
	srv, _ := serveJSON(t, `{"chart": {"result": [], "error": {"code": "Not Found"}}}`)

	c := New(upstream.NewFetcher(5*time.Second), srv.URL, "3y", "1d", "")
	if _, err := c.DailySeries(context.Background(), "GONE"); !errors.Is(err, repository.ErrNoPriceData) {
		t.Fatalf("expected no price data, got %v", err)
	}
}

func TestDailySeriesBadJSON(t *testing.T) {
	srv, _ := serveJSON(t, `<html>captcha</html>`)

	c := New(upstream.NewFetcher(5*time.Second), srv.URL, "3y", "1d", "")
	if _, err := c.DailySeries(context.Background(), "ACME"); err == nil {
		t.Fatalf("expected decode error")
	}
}
