package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"RiskRadar/internal/domain/models"
	"RiskRadar/internal/service/ratelimit"
	"RiskRadar/internal/services/risk"
	"RiskRadar/internal/usecase"
)

type stubListing struct{ symbols []string }

func (s *stubListing) FetchPage(context.Context, int) ([]string, bool, error) {
	return s.symbols, false, nil
}

type stubChart struct{}

func (stubChart) DailySeries(_ context.Context, symbol string) (*models.PriceSeries, error) {
	s := &models.PriceSeries{Symbol: symbol}
	for i := 0; i < 100; i++ {
		s.Points = append(s.Points, models.PricePoint{Close: 100 + float64(i)})
	}
	return s, nil
}

type stubProfile struct{}

func (stubProfile) CompanyProfile(_ context.Context, symbol string) (*models.CompanyProfile, error) {
	return &models.CompanyProfile{Name: symbol + " Ltd", Sector: "Healthcare", Industry: "Pharmaceuticals"}, nil
}

type stubNews struct{}

func (stubNews) Search(context.Context, string) ([]models.NewsItem, error) { return nil, nil }

type stubSearch struct{}

func (stubSearch) Search(context.Context, string) ([]models.SearchResult, error) { return nil, nil }

func testServer(t *testing.T) *echo.Echo {
	t.Helper()
	discoverer := usecase.NewDiscoverer(&stubListing{symbols: []string{"AAA", "BBB"}},
		usecase.DiscovererConfig{MaxPages: 5, RetryMax: 1}, nil, nil)
	filter := usecase.NewTechnicalFilter(stubChart{}, 0.5)
	structural := risk.NewStructuralDetector(risk.StructuralConfig{
		ExtremeMovePct: 18, ExtremeMoveCount: 3,
		BurstVolumeRatio: 6, BurstMovePct: 10, BurstCount: 2,
		PumpWindow: 10, PumpRisePct: 80, DumpWindow: 14, DumpDropPct: 35,
		SpikePct: 22, ReversalWindow: 5, ReversalPct: 18,
		VolRecentWindow: 30, VolBaselineWindow: 120, VolMinReturns: 170,
		VolShiftRatio: 2.2, VolMinRecentPct: 7,
	})
	textual := risk.NewTextualDetector(stubNews{}, stubSearch{}, risk.TextualConfig{
		Keywords: []string{"fraud"}, RecencyDays: 365,
	}, nil)
	enricher := usecase.NewEnricher(stubProfile{}, textual, nil)
	pipeline := usecase.NewPipeline(discoverer, filter, structural, enricher,
		usecase.PipelineConfig{BatchSize: 50}, nil, nil)

	e := echo.New()
	NewScanHandler(pipeline, ratelimit.New(), nil).RegisterRoutes(e)
	return e
}

func TestScanStreamsServerSentEvents(t *testing.T) {
	e := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scan", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event: progress\n") {
		t.Fatalf("missing progress frames: %s", body)
	}
	frames := strings.Split(strings.TrimSpace(body), "\n\n")
	last := frames[len(frames)-1]
	if !strings.HasPrefix(last, "event: result\n") {
		t.Fatalf("result must be the last frame, got %q", last)
	}
	if !strings.Contains(last, `"symbols":["AAA","BBB"]`) {
		t.Fatalf("result payload missing universe: %q", last)
	}
}

func TestScanFiltersQueryParam(t *testing.T) {
	e := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/scan?filters=false", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, `"stage":"filter"`) {
		t.Fatalf("filters=false must skip the filter stage: %s", body)
	}
	if !strings.Contains(body, "event: result\n") {
		t.Fatalf("missing result frame: %s", body)
	}
}

func TestScanRateLimited(t *testing.T) {
	e := testServer(t)

	for i := 0; i < scanBucketCapacity; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan?filters=false", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d should pass, got %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan?filters=false", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 beyond burst, got %d", rec.Code)
	}
}

func TestScanWebSocketMirror(t *testing.T) {
	e := testServer(t)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/scan/ws?filters=false"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	sawResult := false
	for {
		var frame struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			break
		}
		if frame.Type == models.EventResult {
			sawResult = true
		}
	}
	if !sawResult {
		t.Fatalf("expected a result frame on the websocket")
	}
}

func TestHealthz(t *testing.T) {
	e := testServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
