package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Default returns the configuration used when no config file is present.
func Default() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    "https://blockstream.info/api",
			PriceURL:   "https://api.coingecko.com/api/v3",
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RetryDelay: 3 * time.Second,
		},
		Cache: CacheConfig{
			Path:        "cache",
			VolatileTTL: 10 * time.Minute,
		},
		Analysis: AnalysisConfig{
			ClusterDepth:        2,
			FlowDepth:           5,
			LargeTxThresholdBTC: 10,
		},
	}
}

// Load reads configuration from a YAML file. Missing fields fall back to
// the defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.API.MaxRetries <= 0 {
		cfg.API.MaxRetries = 3
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 30 * time.Second
	}

	if err := cfg.Analysis.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
