package risk

import (
	"context"
	"fmt"
	"strings"
	"time"

	"RiskRadar/internal/domain/models"
	"RiskRadar/internal/domain/repository"
	applogger "RiskRadar/pkg/logger"
	"RiskRadar/pkg/util"
)

// Textual signal IDs.
const (
	SignalAdverseNews     = "news-adverse"
	SignalRegulatoryOrder = "regulatory-order"
)

var (
	adjudicationTerms = []string{"adjudication", "adjudicating"}
	orderTerms        = []string{"order", "orders"}
)

// TextualConfig holds the adverse-coverage search parameters.
type TextualConfig struct {
	Keywords        []string
	RecencyDays     int
	RegulatorDomain string
	RegulatorLabel  string
	OrderPhrase     string
}

// TextualDetector queries the news feed and the web search surface for
// adverse coverage of a company. Both checks are best-effort: any fetch or
// parse failure degrades to "not flagged".
type TextualDetector struct {
	news   repository.NewsSource
	search repository.SearchSource
	cfg    TextualConfig
	l      *applogger.Logger
	now    func() time.Time
}

// NewTextualDetector creates a detector over the given sources.
func NewTextualDetector(news repository.NewsSource, search repository.SearchSource, cfg TextualConfig, l *applogger.Logger) *TextualDetector {
	if cfg.RecencyDays <= 0 {
		cfg.RecencyDays = 365
	}
	if cfg.OrderPhrase == "" {
		cfg.OrderPhrase = "adjudication order"
	}
	return &TextualDetector{news: news, search: search, cfg: cfg, l: l, now: time.Now}
}

// Detect runs both textual checks for the company. name may be empty when the
// profile scrape failed; identity matching then relies on the symbol alone.
func (d *TextualDetector) Detect(ctx context.Context, symbol, name string) []models.WarningSignal {
	var signals []models.WarningSignal
	if s := d.adverseNews(ctx, symbol, name); s != nil {
		signals = append(signals, *s)
	}
	if s := d.regulatoryOrder(ctx, symbol, name); s != nil {
		signals = append(signals, *s)
	}
	return signals
}

// adverseNews returns the first recent feed item that contains an adverse
// keyword and survives the identity match.
func (d *TextualDetector) adverseNews(ctx context.Context, symbol, name string) *models.WarningSignal {
	if d.news == nil {
		return nil
	}

	subject := name
	if strings.TrimSpace(subject) == "" {
		subject = symbol
	}
	quoted := make([]string, len(d.cfg.Keywords))
	for i, kw := range d.cfg.Keywords {
		quoted[i] = fmt.Sprintf("%q", kw)
	}
	query := fmt.Sprintf("%q (%s)", subject, strings.Join(quoted, " OR "))

	items, err := d.news.Search(ctx, query)
	if err != nil {
		if d.l != nil {
			d.l.Warn("adverse news check degraded", applogger.String("symbol", symbol), applogger.Error(err))
		}
		return nil
	}

	cutoff := d.now().AddDate(0, 0, -d.cfg.RecencyDays)
	for _, item := range items {
		if item.Published.IsZero() || item.Published.Before(cutoff) {
			continue
		}
		text := util.NormalizeText(item.Title + " " + item.Description)
		if !containsAny(text, d.cfg.Keywords) {
			continue
		}
		if !MatchesCompany(text, symbol, name) {
			continue
		}

		link := item.Link
		label := "News"
		return &models.WarningSignal{
			ID:          SignalAdverseNews,
			Category:    models.CategoryNews,
			Reason:      "Adverse news coverage",
			Details:     fmt.Sprintf("%s (%s)", item.Title, item.Published.Format("02 Jan 2006")),
			SourceURL:   &link,
			SourceLabel: &label,
		}
	}
	return nil
}

// regulatoryOrder returns the first search result that looks like an
// adjudication order on the regulator's domain for this company.
func (d *TextualDetector) regulatoryOrder(ctx context.Context, symbol, name string) *models.WarningSignal {
	if d.search == nil || d.cfg.RegulatorDomain == "" {
		return nil
	}

	identity := name
	if strings.TrimSpace(identity) == "" {
		identity = symbol
	}
	query := fmt.Sprintf("site:%s %q %q", d.cfg.RegulatorDomain, identity, d.cfg.OrderPhrase)

	results, err := d.search.Search(ctx, query)
	if err != nil {
		if d.l != nil {
			d.l.Warn("regulatory check degraded", applogger.String("symbol", symbol), applogger.Error(err))
		}
		return nil
	}

	domain := strings.ToLower(d.cfg.RegulatorDomain)
	for _, res := range results {
		combined := util.NormalizeText(res.Title + " " + res.Snippet + " " + res.URL)
		if !strings.Contains(combined, domain) {
			continue
		}
		if !containsAny(combined, adjudicationTerms) || !containsAny(combined, orderTerms) {
			continue
		}
		if !MatchesCompany(combined, symbol, name) {
			continue
		}

		url := res.URL
		label := d.cfg.RegulatorLabel
		if label == "" {
			label = "Regulator"
		}
		return &models.WarningSignal{
			ID:          SignalRegulatoryOrder,
			Category:    models.CategoryRegulatory,
			Reason:      "Regulatory adjudication order",
			Details:     res.Title,
			SourceURL:   &url,
			SourceLabel: &label,
		}
	}
	return nil
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
