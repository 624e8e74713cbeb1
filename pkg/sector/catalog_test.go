package sector

import "testing"

func TestCategoryFromIndustry(t *testing.T) {
	got, ok := Category("Pharmaceuticals", "")
	if !ok || got != "Pharma" {
		t.Fatalf("expected Pharma, got %q ok=%v", got, ok)
	}
}

func TestCategoryCaseInsensitive(t *testing.T) {
	got, ok := Category("  IT - Software ", "")
	if !ok || got != "IT" {
		t.Fatalf("expected IT, got %q ok=%v", got, ok)
	}
}

func TestCategoryFallsBackToSectorLabel(t *testing.T) {
	got, ok := Category("Unmapped Industry", "Cement")
	if !ok || got != "Cement" {
		t.Fatalf("expected sector fallback, got %q ok=%v", got, ok)
	}
}

func TestCategoryUnknown(t *testing.T) {
	if _, ok := Category("Spacecraft", "Rocketry"); ok {
		t.Fatalf("unknown labels must not map")
	}
}

func TestAllowed(t *testing.T) {
	if !Allowed("Pharmaceuticals") {
		t.Fatalf("pharmaceuticals is on the allow-list")
	}
	if !Allowed("it - software") {
		t.Fatalf("allow-list lookups are case-insensitive")
	}
	if Allowed("Trading") {
		t.Fatalf("trading is mapped but not allowed")
	}
	if Allowed("") {
		t.Fatalf("empty industry is never allowed")
	}
}
