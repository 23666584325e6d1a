// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default collaborator endpoints for the TBO shared air API.
const (
	DefaultTBOAuthURL   = "http://Sharedapi.tektravels.com/SharedData.svc/rest/Authenticate"
	DefaultTBOSearchURL = "http://airBE.tektravels.com/InternalAirService.svc/rest/Search"
	DefaultTBOClientID  = "ApiIntegrationNew"
	DefaultLLMBaseURL   = "https://api.groq.com/openai/v1"
)

// DefaultLLMModels is the model fallback order used when none is configured.
var DefaultLLMModels = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}

func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// config.<env>.yaml is optional
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	// SERVER_PORT overrides server.port and so on
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env", // tests in test/e2e
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

func overrideEmptyConfig(cfg *Config) {
	setIfEmpty(&cfg.APIs.FlightSearch.Username, "TBO_USERNAME")
	setIfEmpty(&cfg.APIs.FlightSearch.Password, "TBO_PASSWORD")
	setIfEmpty(&cfg.APIs.FlightSearch.EndUserIP, "TBO_IP")
	setIfEmpty(&cfg.APIs.IntentLLM.APIKey, "GROQ_API_KEY")

	setIfEmpty(&cfg.Database.Postgres.User, "DB_USER")
	setIfEmpty(&cfg.Database.Postgres.Password, "DB_PASSWORD")
	setIfEmpty(&cfg.Database.Redis.Password, "REDIS_PASSWORD")

	if cfg.Server.Port == 0 {
		if val := os.Getenv("PORT"); val != "" {
			fmt.Sscanf(val, "%d", &cfg.Server.Port)
		}
		if cfg.Server.Port == 0 {
			cfg.Server.Port = 5000
		}
	}
}

func setIfEmpty(field *string, envKey string) {
	if *field != "" {
		return
	}
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "trip-ranker"
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if cfg.Inventory.Backend == "" {
		cfg.Inventory.Backend = BackendStatic
	}
	if cfg.Inventory.HotelsIndex == "" {
		cfg.Inventory.HotelsIndex = "hotels"
	}
	if cfg.Inventory.ActivitiesIndex == "" {
		cfg.Inventory.ActivitiesIndex = "activities"
	}

	if cfg.Ranking.TopN == 0 {
		cfg.Ranking.TopN = 6
	}

	fs := &cfg.APIs.FlightSearch
	if fs.AuthURL == "" {
		fs.AuthURL = DefaultTBOAuthURL
	}
	if fs.SearchURL == "" {
		fs.SearchURL = DefaultTBOSearchURL
	}
	if fs.ClientID == "" {
		fs.ClientID = DefaultTBOClientID
	}
	if fs.TokenTTL == 0 {
		fs.TokenTTL = 3600000
	}
	if fs.Timeout == 0 {
		fs.Timeout = 15000
	}
	if fs.MaxRetries == 0 {
		fs.MaxRetries = 2
	}
	if fs.TokenCache == "" {
		fs.TokenCache = "memory"
	}

	llm := &cfg.APIs.IntentLLM
	if llm.BaseURL == "" {
		llm.BaseURL = DefaultLLMBaseURL
	}
	if len(llm.Models) == 0 {
		llm.Models = append([]string(nil), DefaultLLMModels...)
	}
	if llm.Timeout == 0 {
		llm.Timeout = 30000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}
}

// validateConfig checks only what the selected backends need.
func validateConfig(cfg *Config) error {
	if cfg.Ranking.TopN < 0 {
		return fmt.Errorf("ranking.top_n must be positive")
	}

	switch cfg.Inventory.Backend {
	case BackendStatic:
	case BackendPostgres:
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	case BackendElasticsearch:
		if cfg.Database.Elasticsearch.GetURL() == "" {
			return fmt.Errorf("database.elasticsearch.addresses or url is required")
		}
	default:
		return fmt.Errorf("inventory.backend %q is not one of static, postgres, elasticsearch", cfg.Inventory.Backend)
	}

	if cfg.Inventory.CacheTTL > 0 && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required when inventory.cache_ttl is set")
	}

	switch cfg.APIs.FlightSearch.TokenCache {
	case "memory":
	case "redis":
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required for the redis token cache")
		}
	default:
		return fmt.Errorf("apis.flight_search.token_cache %q is not one of memory, redis", cfg.APIs.FlightSearch.TokenCache)
	}

	if cfg.APIs.FlightSearch.Enabled {
		if cfg.APIs.FlightSearch.Username == "" || cfg.APIs.FlightSearch.Password == "" {
			return fmt.Errorf("apis.flight_search username and password are required when enabled")
		}
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}

	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled checks if a specific worker is enabled
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
