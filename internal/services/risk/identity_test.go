package risk

import "testing"

func TestMatchesCompanySymbolToken(t *testing.T) {
	if !MatchesCompany("SEBI fines TATAMOTORS in fraud case", "TATAMOTORS", "Tata Motors Ltd") {
		t.Fatalf("expected symbol token match")
	}
}

func TestMatchesCompanySymbolNotSubstring(t *testing.T) {
	// "art" occurs inside "startup" but never as a bounded token.
	if MatchesCompany("startup wins award", "ART", "") {
		t.Fatalf("embedded symbol must not match")
	}
}

func TestMatchesCompanyShortSymbolIgnored(t *testing.T) {
	if MatchesCompany("ab results announced", "AB", "") {
		t.Fatalf("two-letter symbols must not token match")
	}
}

func TestMatchesCompanyNameSubstring(t *testing.T) {
	if !MatchesCompany("Tata Motors announces buyback", "XYZ", "Tata Motors") {
		t.Fatalf("expected literal name match")
	}
}

func TestMatchesCompanyNameCompacted(t *testing.T) {
	// Punctuation and spacing differ between headline and display name.
	if !MatchesCompany("TataMotors announces buyback", "XYZ", "Tata Motors") {
		t.Fatalf("expected compacted name match")
	}
	// Stripped "L&T" is only two characters, below the name-match minimum.
	if MatchesCompany("L and T update", "XYZ", "L&T") {
		t.Fatalf("short stripped names must not match")
	}
}

func TestMatchesCompanyNoMatch(t *testing.T) {
	if MatchesCompany("quarterly results season begins", "ACME", "Acme Industries") {
		t.Fatalf("generic text must not match")
	}
}

func TestMatchesCompanyEmptyText(t *testing.T) {
	if MatchesCompany("", "ACME", "Acme Industries") {
		t.Fatalf("empty text must not match")
	}
}
