// internal/workers/trip/fetch-flight-offers/config.go
package fetchflightoffers

import (
	"time"

	"trip-ranker/internal/common/camunda"
	"trip-ranker/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// CompleteRetry is the backoff for the complete-job command.
	CompleteRetry *camunda.RetryConfig
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	cfg := &Config{
		Timeout:       20 * time.Second,
		CompleteRetry: camunda.DefaultRetryConfig,
	}
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	return cfg
}
