package risk

import (
	"strings"

	"RiskRadar/pkg/util"
)

const (
	minSymbolTokenLen = 3
	minNameMatchLen   = 4
)

// MatchesCompany reports whether text actually refers to the company
// identified by symbol and display name. It exists to suppress false
// positives from generic keyword hits: a fraud headline only counts when the
// symbol appears as a bounded token, or the display name appears as a
// substring, checked literally and with all punctuation stripped from both
// sides, so "Tata Motors" still matches "TataMotors".
func MatchesCompany(text, symbol, name string) bool {
	t := util.NormalizeText(text)
	if t == "" {
		return false
	}

	sym := strings.ToLower(strings.TrimSpace(symbol))
	if len(sym) >= minSymbolTokenLen && containsToken(t, sym) {
		return true
	}

	n := util.NormalizeText(name)
	if len(util.StripNonAlnum(n)) >= minNameMatchLen {
		if strings.Contains(t, n) {
			return true
		}
		if strings.Contains(util.StripNonAlnum(t), util.StripNonAlnum(n)) {
			return true
		}
	}

	return false
}

// containsToken reports whether needle occurs in haystack bounded by
// non-alphanumeric characters or string edges.
func containsToken(haystack, needle string) bool {
	for from := 0; from+len(needle) <= len(haystack); {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(needle)
		if (start == 0 || !isAlnum(haystack[start-1])) &&
			(end == len(haystack) || !isAlnum(haystack[end])) {
			return true
		}
		from = start + 1
	}
	return false
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
