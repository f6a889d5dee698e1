package config

import (
	"fmt"
	"time"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	API      APIConfig      `yaml:"api"`
	Cache    CacheConfig    `yaml:"cache"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// APIConfig holds explorer API settings.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	PriceURL   string        `yaml:"price_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// CacheConfig holds settings for the durable request cache.
type CacheConfig struct {
	Path string `yaml:"path"`
	// VolatileTTL bounds how long address summaries, address transaction
	// lists, and outspend lookups may be served from cache. 0 disables
	// caching for those endpoints entirely.
	VolatileTTL time.Duration `yaml:"volatile_ttl"`
}

// AnalysisConfig holds traversal depths and the block scan threshold.
type AnalysisConfig struct {
	ClusterDepth        int     `yaml:"cluster_depth"`
	FlowDepth           int     `yaml:"flow_depth"`
	LargeTxThresholdBTC float64 `yaml:"large_tx_threshold_btc"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate rejects caller input the traversal engines must never see.
func (c *AnalysisConfig) Validate() error {
	if c.ClusterDepth < 0 {
		return fmt.Errorf("cluster_depth must be non-negative, got %d", c.ClusterDepth)
	}
	if c.FlowDepth < 0 {
		return fmt.Errorf("flow_depth must be non-negative, got %d", c.FlowDepth)
	}
	if c.LargeTxThresholdBTC < 0 {
		return fmt.Errorf("large_tx_threshold_btc must be non-negative, got %f", c.LargeTxThresholdBTC)
	}
	return nil
}
