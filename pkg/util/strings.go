package util

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// CompactNumber renders a magnitude with a K/M/B suffix, one decimal place,
// trailing ".0" trimmed. Used for volumes in human-readable signal details.
func CompactNumber(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e9:
		return trimDecimal(v/1e9) + "B"
	case abs >= 1e6:
		return trimDecimal(v/1e6) + "M"
	case abs >= 1e3:
		return trimDecimal(v/1e3) + "K"
	default:
		return trimDecimal(v)
	}
}

func trimDecimal(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}

// NormalizeText lowercases and collapses whitespace runs to single spaces.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// StripNonAlnum drops every rune that is not a letter or digit.
func StripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
