package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"RiskRadar/internal/service/upstream"
)

func TestCompanyProfileExtractsLabeledFields(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`
			<html><body>
				<h1>Acme Pharma Ltd</h1>
				<ul>
					<li>Sector: Healthcare</li>
					<li>Industry: Pharmaceuticals</li>
				</ul>
			</body></html>`))
	}))
	defer srv.Close()

	c := New(upstream.NewFetcher(5*time.Second), srv.URL)
	got, err := c.CompanyProfile(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/company/ACME/" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if got.Name != "Acme Pharma Ltd" {
		t.Fatalf("unexpected name %q", got.Name)
	}
	if got.Sector != "Healthcare" || got.Industry != "Pharmaceuticals" {
		t.Fatalf("unexpected labels %+v", got)
	}
}

func TestCompanyProfileTableLayout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`
			<html><body>
				<h1>Zenith Steel</h1>
				<table>
					<tr><td>Sector</td><td>Metals</td></tr>
					<tr><td>Industry</td><td>Iron &amp; Steel</td></tr>
				</table>
			</body></html>`))
	}))
	defer srv.Close()

	c := New(upstream.NewFetcher(5*time.Second), srv.URL)
	got, err := c.CompanyProfile(context.Background(), "ZEN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sector != "Metals" || got.Industry != "Iron & Steel" {
		t.Fatalf("unexpected labels %+v", got)
	}
}

func TestCompanyProfileMissingFieldsStayEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer srv.Close()

	c := New(upstream.NewFetcher(5*time.Second), srv.URL)
	got, err := c.CompanyProfile(context.Background(), "NONE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "" || got.Sector != "" || got.Industry != "" {
		t.Fatalf("expected empty fields, got %+v", got)
	}
}
