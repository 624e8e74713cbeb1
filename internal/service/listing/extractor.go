package listing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractSymbols parses one listing page into the set of ticker symbols it
// carries plus whether a further page is advertised. Per row, a company
// profile link wins over the first cell's text; rows yielding neither are
// skipped.
func ExtractSymbols(doc *goquery.Document) ([]string, bool) {
	seen := make(map[string]struct{})
	var symbols []string

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("td").Length() == 0 {
			return // header row
		}
		sym := symbolFromLink(row)
		if sym == "" {
			sym = symbolFromFirstCell(row)
		}
		if sym == "" {
			return
		}
		if _, dup := seen[sym]; dup {
			return
		}
		seen[sym] = struct{}{}
		symbols = append(symbols, sym)
	})

	return symbols, hasNextPage(doc)
}

// symbolFromLink extracts the path segment immediately following a literal
// "company" segment of any anchor in the row.
func symbolFromLink(row *goquery.Selection) string {
	var sym string
	row.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		segs := strings.Split(strings.Trim(strings.TrimSpace(href), "/"), "/")
		for i, seg := range segs {
			if seg == "company" && i+1 < len(segs) {
				if s := normalizeSymbol(segs[i+1]); s != "" {
					sym = s
					return false
				}
			}
		}
		return true
	})
	return sym
}

func symbolFromFirstCell(row *goquery.Selection) string {
	return normalizeSymbol(row.Find("td").First().Text())
}

func normalizeSymbol(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// hasNextPage looks for a pagination affordance: a rel="next" link, a "next"
// list item, or an anchor whose text starts with "Next".
func hasNextPage(doc *goquery.Document) bool {
	if doc.Find(`a[rel="next"]`).Length() > 0 {
		return true
	}
	if doc.Find("li.next").Length() > 0 {
		return true
	}
	found := false
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.HasPrefix(strings.TrimSpace(a.Text()), "Next") {
			found = true
			return false
		}
		return true
	})
	return found
}
