package config

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalYAML = `
environment: test
listing:
  base_url: https://listing.example/screens/low-price/
chart:
  base_url: https://charts.example/v8/finance/chart
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Screener.ATHThreshold != 0.5 {
		t.Fatalf("expected lenient default threshold, got %v", cfg.Screener.ATHThreshold)
	}
	if cfg.Screener.BatchSize != 50 {
		t.Fatalf("unexpected batch size %d", cfg.Screener.BatchSize)
	}
	if cfg.Listing.MaxPages != 100 || cfg.Listing.RetryMax != 3 {
		t.Fatalf("listing defaults not applied: %+v", cfg.Listing)
	}
	if cfg.Screener.Structural.ExtremeMovePct != 18 || cfg.Screener.Structural.VolShiftRatio != 2.2 {
		t.Fatalf("structural defaults not applied: %+v", cfg.Screener.Structural)
	}
	if len(cfg.News.Keywords) == 0 {
		t.Fatalf("keyword defaults not applied")
	}
	if cfg.Screener.SMAWindow != 200 || cfg.Screener.MinWindowSamples != 50 {
		t.Fatalf("filter window defaults not applied: %+v", cfg.Screener)
	}
	if cfg.Screener.Structural.YearCloses != 260 || cfg.Screener.Structural.YearReturns != 252 {
		t.Fatalf("trailing-year window defaults not applied: %+v", cfg.Screener.Structural)
	}
}

func TestLoadStrictPreset(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML+`
screener:
  ath_preset: strict
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Screener.ATHThreshold != 0.7 {
		t.Fatalf("expected strict threshold 0.7, got %v", cfg.Screener.ATHThreshold)
	}
}

func TestLoadExplicitThresholdWins(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML+`
screener:
  ath_threshold: 0.62
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Screener.ATHThreshold != 0.62 {
		t.Fatalf("expected explicit threshold, got %v", cfg.Screener.ATHThreshold)
	}
}

func TestLoadExplicitThresholdBeatsPreset(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML+`
screener:
  ath_preset: strict
  ath_threshold: 0.55
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Screener.ATHThreshold != 0.55 {
		t.Fatalf("explicit ath_threshold should win over preset, got %v", cfg.Screener.ATHThreshold)
	}
}

func TestLoadRejectsUnknownPreset(t *testing.T) {
	if _, err := Load(writeConfig(t, minimalYAML+`
screener:
  ath_preset: aggressive
`)); err == nil {
		t.Fatalf("expected preset validation error")
	}
}

func TestLoadRequiresBaseURLs(t *testing.T) {
	if _, err := Load(writeConfig(t, "environment: test\n")); err == nil {
		t.Fatalf("expected validation error for missing base urls")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("LISTING_BASE_URL", "https://override.example/list/")
	t.Setenv("REDIS_ADDR", "cache.internal:6380")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listing.BaseURL != "https://override.example/list/" {
		t.Fatalf("listing override not applied: %q", cfg.Listing.BaseURL)
	}
	if !cfg.Cache.Redis.Enabled || cfg.Cache.Redis.Host != "cache.internal" || cfg.Cache.Redis.Port != 6380 {
		t.Fatalf("redis override not applied: %+v", cfg.Cache.Redis)
	}
}
