// Package chart fetches historical daily close/volume series from the chart
// JSON API.
package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"RiskRadar/internal/domain/models"
	"RiskRadar/internal/domain/repository"
	"RiskRadar/internal/service/upstream"
)

// Client implements repository.ChartSource.
type Client struct {
	fetcher  *upstream.Fetcher
	baseURL  string
	rng      string
	interval string
	suffix   string
}

// New creates a chart client. suffix is the exchange suffix appended to the
// raw symbol (e.g. ".NS").
func New(fetcher *upstream.Fetcher, baseURL, rng, interval, suffix string) repository.ChartSource {
	if rng == "" {
		rng = "3y"
	}
	if interval == "" {
		interval = "1d"
	}
	return &Client{fetcher: fetcher, baseURL: baseURL, rng: rng, interval: interval, suffix: suffix}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// DailySeries fetches the full configured range for symbol. Samples without a
// numeric close are dropped; volume stays nil when absent. Returns
// repository.ErrNoPriceData when the API carries no series at all.
func (c *Client) DailySeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	u := fmt.Sprintf("%s/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(symbol+c.suffix), c.rng, c.interval)

	body, err := c.fetcher.GetBytes(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}

	var cr chartResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("chart %s: decode: %w", symbol, err)
	}

	if len(cr.Chart.Result) == 0 || len(cr.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart %s: %w", symbol, repository.ErrNoPriceData)
	}

	quote := cr.Chart.Result[0].Indicators.Quote[0]
	series := &models.PriceSeries{Symbol: symbol}
	for i, cl := range quote.Close {
		if cl == nil {
			continue
		}
		var vol *float64
		if i < len(quote.Volume) {
			vol = quote.Volume[i]
		}
		series.Points = append(series.Points, models.PricePoint{Close: *cl, Volume: vol})
	}

	return series, nil
}
