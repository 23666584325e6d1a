// internal/workers/trip/rank-trip-options/config.go
package ranktripoptions

import (
	"time"

	"trip-ranker/internal/common/camunda"
	"trip-ranker/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// CompleteRetry is the backoff for the complete-job command.
	CompleteRetry *camunda.RetryConfig
	// SlowThreshold is the ranking duration above which a warning is logged.
	SlowThreshold time.Duration
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	cfg := &Config{
		Timeout:       30 * time.Second,
		CompleteRetry: camunda.DefaultRetryConfig,
		SlowThreshold: 500 * time.Millisecond,
	}
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}
