// Package profile scrapes company profile pages for display name, sector and
// industry labels.
package profile

import (
	"context"
	"fmt"
	"strings"

	"RiskRadar/internal/domain/models"
	"RiskRadar/internal/domain/repository"
	"RiskRadar/internal/service/upstream"

	"github.com/PuerkitoBio/goquery"
)

// Client implements repository.ProfileSource.
type Client struct {
	fetcher *upstream.Fetcher
	baseURL string
}

// New creates a profile client.
func New(fetcher *upstream.Fetcher, baseURL string) repository.ProfileSource {
	return &Client{fetcher: fetcher, baseURL: baseURL}
}

// CompanyProfile fetches and parses the profile page for symbol. Fields that
// cannot be extracted stay empty; a fetch failure is an error for the caller
// to degrade on.
func (c *Client) CompanyProfile(ctx context.Context, symbol string) (*models.CompanyProfile, error) {
	u := fmt.Sprintf("%s/company/%s/", strings.TrimRight(c.baseURL, "/"), symbol)

	doc, err := c.fetcher.GetDocument(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", symbol, err)
	}

	return &models.CompanyProfile{
		Name:     strings.TrimSpace(doc.Find("h1").First().Text()),
		Sector:   labeledValue(doc, "Sector"),
		Industry: labeledValue(doc, "Industry"),
	}, nil
}

// labeledValue scans label/value shaped elements (list items, table rows,
// definition pairs) for one whose text starts with the label and returns the
// remainder.
func labeledValue(doc *goquery.Document, label string) string {
	var out string
	lower := strings.ToLower(label)

	doc.Find("li, tr, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if !strings.HasPrefix(strings.ToLower(text), lower) {
			return true
		}
		rest := strings.TrimSpace(text[len(label):])
		rest = strings.TrimSpace(strings.TrimLeft(rest, ":-"))
		if rest != "" {
			out = rest
			return false
		}
		return true
	})

	return out
}
