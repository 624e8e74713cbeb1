// Package news queries an RSS news feed for adverse coverage.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"RiskRadar/internal/domain/models"
	"RiskRadar/internal/domain/repository"
	"RiskRadar/internal/service/upstream"
	"RiskRadar/pkg/util"
)

// Client implements repository.NewsSource over an RSS search feed.
type Client struct {
	fetcher *upstream.Fetcher
	feedURL string
}

// New creates a news client. feedURL is the RSS search endpoint; the query is
// passed as its q parameter.
func New(fetcher *upstream.Fetcher, feedURL string) repository.NewsSource {
	return &Client{fetcher: fetcher, feedURL: feedURL}
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Search fetches the feed for query and returns its items in feed order.
// Items with unparseable dates carry the zero time.
func (c *Client) Search(ctx context.Context, query string) ([]models.NewsItem, error) {
	sep := "?"
	if strings.Contains(c.feedURL, "?") {
		sep = "&"
	}
	u := c.feedURL + sep + "q=" + url.QueryEscape(query)

	body, err := c.fetcher.GetBytes(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("news feed: %w", err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("news feed: decode: %w", err)
	}

	items := make([]models.NewsItem, 0, len(feed.Channel.Items))
	for _, it := range feed.Channel.Items {
		published, _ := util.ParseTime(strings.TrimSpace(it.PubDate))
		items = append(items, models.NewsItem{
			Title:       strings.TrimSpace(it.Title),
			Description: strings.TrimSpace(it.Description),
			Link:        strings.TrimSpace(it.Link),
			Published:   published,
		})
	}
	return items, nil
}
