package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"RiskRadar/internal/service/upstream"
)

const resultsBody = `
<html><body>
	<div class="result">
		<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.sebi.gov.in%2Forders%2Facme.html&amp;rut=abc">
			Adjudication Order against Acme
		</a>
		<div class="result__snippet">Order under the Act in the matter of Acme Industries</div>
	</div>
	<div class="result">
		<a class="result__a" href="https://example.com/direct">Direct result</a>
		<div class="result__snippet">plain link</div>
	</div>
	<div class="result">
		<a class="result__a" href="https://example.com/no-title"></a>
	</div>
</body></html>`

func TestSearchExtractsResults(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(resultsBody))
	}))
	defer srv.Close()

	c := New(upstream.NewFetcher(5*time.Second), srv.URL)
	results, err := c.Search(context.Background(), `site:sebi.gov.in "Acme"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != `site:sebi.gov.in "Acme"` {
		t.Fatalf("query not forwarded, got %q", gotQuery)
	}

	// The titleless third block is dropped.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Adjudication Order against Acme" {
		t.Fatalf("unexpected title %q", results[0].Title)
	}
	if results[0].URL != "https://www.sebi.gov.in/orders/acme.html" {
		t.Fatalf("redirect not unwrapped: %q", results[0].URL)
	}
	if results[0].Snippet != "Order under the Act in the matter of Acme Industries" {
		t.Fatalf("unexpected snippet %q", results[0].Snippet)
	}
	if results[1].URL != "https://example.com/direct" {
		t.Fatalf("direct link must pass through: %q", results[1].URL)
	}
}

func TestResolveRedirectPassthroughOnBadURL(t *testing.T) {
	if got := resolveRedirect("://broken"); got != "://broken" {
		t.Fatalf("broken url must pass through, got %q", got)
	}
	if got := resolveRedirect("https://example.com/x"); got != "https://example.com/x" {
		t.Fatalf("plain url must pass through, got %q", got)
	}
}
