// Package search scrapes a general web search surface.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"RiskRadar/internal/domain/models"
	"RiskRadar/internal/domain/repository"
	"RiskRadar/internal/service/upstream"

	"github.com/PuerkitoBio/goquery"
)

// Client implements repository.SearchSource over an HTML search endpoint.
type Client struct {
	fetcher   *upstream.Fetcher
	searchURL string
}

// New creates a search client. searchURL is the HTML results endpoint; the
// query is passed as its q parameter.
func New(fetcher *upstream.Fetcher, searchURL string) repository.SearchSource {
	return &Client{fetcher: fetcher, searchURL: searchURL}
}

// Search fetches the results page for query and extracts title, snippet and
// target URL per result, in page order.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	sep := "?"
	if strings.Contains(c.searchURL, "?") {
		sep = "&"
	}
	u := c.searchURL + sep + "q=" + url.QueryEscape(query)

	doc, err := c.fetcher.GetDocument(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}

	var results []models.SearchResult
	doc.Find("div.result").Each(func(_ int, s *goquery.Selection) {
		anchor := s.Find("a.result__a").First()
		href, _ := anchor.Attr("href")
		title := strings.TrimSpace(anchor.Text())
		snippet := strings.TrimSpace(s.Find(".result__snippet").Text())
		if title == "" || href == "" {
			return
		}
		results = append(results, models.SearchResult{
			Title:   title,
			Snippet: snippet,
			URL:     resolveRedirect(href),
		})
	})

	return results, nil
}

// resolveRedirect unwraps the uddg redirect parameter some search frontends
// put around result links; anything else passes through untouched.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		if decoded, err := url.QueryUnescape(target); err == nil {
			return decoded
		}
	}
	return href
}
