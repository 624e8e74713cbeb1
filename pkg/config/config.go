package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ATH threshold presets observed in production tuning. "lenient" keeps symbols
// trading at half their all-time high; "strict" requires 70%.
var athPresets = map[string]float64{
	"lenient": 0.5,
	"strict":  0.7,
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`
	Cache struct {
		TTL        time.Duration `yaml:"ttl"`
		MaxEntries int           `yaml:"max_entries"`
		Redis      struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Listing struct {
		BaseURL    string        `yaml:"base_url"`
		MaxPages   int           `yaml:"max_pages"`
		PageDelay  time.Duration `yaml:"page_delay"`
		RetryMax   int           `yaml:"retry_max"`
		RetryDelay time.Duration `yaml:"retry_delay"`
	} `yaml:"listing"`
	Chart struct {
		BaseURL     string        `yaml:"base_url"`
		Range       string        `yaml:"range"`
		Interval    string        `yaml:"interval"`
		Suffix      string        `yaml:"suffix"`
		SymbolDelay time.Duration `yaml:"symbol_delay"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"chart"`
	Profile struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"profile"`
	News struct {
		FeedURL     string        `yaml:"feed_url"`
		RecencyDays int           `yaml:"recency_days"`
		Keywords    []string      `yaml:"keywords"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"news"`
	Regulatory struct {
		SearchURL string `yaml:"search_url"`
		Domain    string `yaml:"domain"`
		Label     string `yaml:"label"`
		Phrase    string `yaml:"phrase"`
	} `yaml:"regulatory"`
	Screener struct {
		ATHPreset        string  `yaml:"ath_preset"`
		ATHThreshold     float64 `yaml:"ath_threshold"`
		BatchSize        int     `yaml:"batch_size"`
		SMAWindow        int     `yaml:"sma_window"`
		MinWindowSamples int     `yaml:"min_window_samples"`
		Structural       struct {
			YearCloses        int     `yaml:"year_closes"`
			YearReturns       int     `yaml:"year_returns"`
			ExtremeMovePct    float64 `yaml:"extreme_move_pct"`
			ExtremeMoveCount  int     `yaml:"extreme_move_count"`
			BurstVolumeRatio  float64 `yaml:"burst_volume_ratio"`
			BurstMovePct      float64 `yaml:"burst_move_pct"`
			BurstCount        int     `yaml:"burst_count"`
			PumpWindow        int     `yaml:"pump_window"`
			PumpRisePct       float64 `yaml:"pump_rise_pct"`
			DumpWindow        int     `yaml:"dump_window"`
			DumpDropPct       float64 `yaml:"dump_drop_pct"`
			SpikePct          float64 `yaml:"spike_pct"`
			ReversalWindow    int     `yaml:"reversal_window"`
			ReversalPct       float64 `yaml:"reversal_pct"`
			VolRecentWindow   int     `yaml:"vol_recent_window"`
			VolBaselineWindow int     `yaml:"vol_baseline_window"`
			VolMinReturns     int     `yaml:"vol_min_returns"`
			VolShiftRatio     float64 `yaml:"vol_shift_ratio"`
			VolMinRecentPct   float64 `yaml:"vol_min_recent_pct"`
		} `yaml:"structural"`
	} `yaml:"screener"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("LISTING_BASE_URL"); v != "" {
		c.Listing.BaseURL = v
	}
	if v := os.Getenv("CHART_BASE_URL"); v != "" {
		c.Chart.BaseURL = v
	}
	if v := os.Getenv("PROFILE_BASE_URL"); v != "" {
		c.Profile.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port := v, 6379
		if i := strings.LastIndex(v, ":"); i > 0 {
			host = v[:i]
			port = parsePort(v[i+1:], 6379)
		}
		c.Cache.Redis.Enabled = true
		c.Cache.Redis.Host = host
		c.Cache.Redis.Port = port
	}

	return c, nil
}

func parsePort(s string, def int) int {
	var p int
	if _, err := fmt.Sscanf(s, "%d", &p); err != nil || p <= 0 {
		return def
	}
	return p
}

func (c *Config) applyDefaults() {
	s := &c.Screener
	if s.ATHPreset == "" && s.ATHThreshold == 0 {
		s.ATHPreset = "lenient"
	}
	// An explicit threshold always wins; the preset only fills the gap.
	if s.ATHPreset != "" && s.ATHThreshold == 0 {
		if v, ok := athPresets[s.ATHPreset]; ok {
			s.ATHThreshold = v
		}
	}
	if s.BatchSize <= 0 {
		s.BatchSize = 50
	}
	if s.SMAWindow <= 0 {
		s.SMAWindow = 200
	}
	if s.MinWindowSamples <= 0 {
		s.MinWindowSamples = 50
	}

	st := &s.Structural
	if st.YearCloses <= 0 {
		st.YearCloses = 260
	}
	if st.YearReturns <= 0 {
		st.YearReturns = 252
	}
	if st.ExtremeMovePct == 0 {
		st.ExtremeMovePct = 18
	}
	if st.ExtremeMoveCount == 0 {
		st.ExtremeMoveCount = 3
	}
	if st.BurstVolumeRatio == 0 {
		st.BurstVolumeRatio = 6
	}
	if st.BurstMovePct == 0 {
		st.BurstMovePct = 10
	}
	if st.BurstCount == 0 {
		st.BurstCount = 2
	}
	if st.PumpWindow == 0 {
		st.PumpWindow = 10
	}
	if st.PumpRisePct == 0 {
		st.PumpRisePct = 80
	}
	if st.DumpWindow == 0 {
		st.DumpWindow = 14
	}
	if st.DumpDropPct == 0 {
		st.DumpDropPct = 35
	}
	if st.SpikePct == 0 {
		st.SpikePct = 22
	}
	if st.ReversalWindow == 0 {
		st.ReversalWindow = 5
	}
	if st.ReversalPct == 0 {
		st.ReversalPct = 18
	}
	if st.VolRecentWindow == 0 {
		st.VolRecentWindow = 30
	}
	if st.VolBaselineWindow == 0 {
		st.VolBaselineWindow = 120
	}
	if st.VolMinReturns == 0 {
		st.VolMinReturns = 170
	}
	if st.VolShiftRatio == 0 {
		st.VolShiftRatio = 2.2
	}
	if st.VolMinRecentPct == 0 {
		st.VolMinRecentPct = 7
	}

	if c.Listing.MaxPages <= 0 {
		c.Listing.MaxPages = 100
	}
	if c.Listing.RetryMax <= 0 {
		c.Listing.RetryMax = 3
	}
	if c.News.RecencyDays <= 0 {
		c.News.RecencyDays = 365
	}
	if len(c.News.Keywords) == 0 {
		c.News.Keywords = []string{
			"market manipulation",
			"insider trading",
			"front running",
			"price rigging",
			"pump and dump",
			"fraud",
		}
	}
	if c.Regulatory.Phrase == "" {
		c.Regulatory.Phrase = "adjudication order"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 15 * time.Minute
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = 2000
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Listing.BaseURL == "" {
		return fmt.Errorf("listing.base_url is required")
	}
	if c.Chart.BaseURL == "" {
		return fmt.Errorf("chart.base_url is required")
	}
	if c.Screener.ATHPreset != "" {
		if _, ok := athPresets[c.Screener.ATHPreset]; !ok {
			return fmt.Errorf("screener.ath_preset must be 'strict' or 'lenient', got '%s'", c.Screener.ATHPreset)
		}
	}
	if c.Screener.ATHThreshold <= 0 || c.Screener.ATHThreshold > 1 {
		return fmt.Errorf("screener.ath_threshold must be in (0, 1], got %v", c.Screener.ATHThreshold)
	}
	return nil
}
