// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"trip-ranker/internal/api"
	"trip-ranker/internal/common/camunda"
	"trip-ranker/internal/common/config"
	"trip-ranker/internal/common/database"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/common/observability"
	"trip-ranker/internal/flights"
	"trip-ranker/internal/intent"
	"trip-ranker/internal/inventory"
	"trip-ranker/internal/ranking"
	"trip-ranker/internal/search"
	"trip-ranker/pkg/registry"

	eti "trip-ranker/internal/workers/trip/extract-travel-intent"
	ffo "trip-ranker/internal/workers/trip/fetch-flight-offers"
	rto "trip-ranker/internal/workers/trip/rank-trip-options"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	zapLog.Info("Starting trip ranker...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name, log)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(ctx)
	}()

	ctx := context.Background()
	var readyChecks []api.Option

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	if cfg.Inventory.Backend == config.BackendPostgres {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := pg.Ping(ctx); err != nil {
				pg.Close()
				return err
			}
			return nil
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		readyChecks = append(readyChecks, api.WithCheck("postgres", pg.Ping))
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Redis ---
	var rdb *database.RedisClient
	if cfg.Database.Redis.Address != "" {
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			if err := rdb.Ping(ctx); err != nil {
				rdb.Close()
				return err
			}
			return nil
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		readyChecks = append(readyChecks, api.WithCheck("redis", rdb.Ping))
		zapLog.Info("Redis connected successfully")
	}

	// --- Elasticsearch ---
	var esClient *database.ElasticsearchClient
	if cfg.Inventory.Backend == config.BackendElasticsearch {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		readyChecks = append(readyChecks, api.WithCheck("elasticsearch", esClient.Ping))
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Inventory ---
	var store inventory.Store
	switch cfg.Inventory.Backend {
	case config.BackendPostgres:
		store = inventory.NewPostgresStore(pg.GetDB(), log)
	case config.BackendElasticsearch:
		store = inventory.NewElasticsearchStore(esClient.Client, cfg.Inventory.HotelsIndex, cfg.Inventory.ActivitiesIndex, log)
	default:
		store = inventory.NewStaticStore()
	}

	var apiOpts []api.Option
	if cfg.Inventory.CacheTTL > 0 && rdb != nil {
		cached := inventory.NewCachedStore(store, rdb.GetClient(), config.GetDuration(cfg.Inventory.CacheTTL), log)
		store = cached
		apiOpts = append(apiOpts, api.WithInvalidator(cached))
	}
	zapLog.Info("inventory store selected", zap.String("backend", store.Name()))

	// --- Flight source ---
	var fetcher flights.Fetcher
	if cfg.APIs.FlightSearch.Enabled {
		var tokens flights.TokenCache = flights.NewMemoryTokenCache()
		if cfg.APIs.FlightSearch.TokenCache == "redis" && rdb != nil {
			tokens = flights.NewRedisTokenCache(rdb.GetClient(), flights.DefaultTokenKey)
		}
		fetcher = flights.NewTBOClient(flights.TBOConfigFrom(cfg.APIs.FlightSearch), tokens, log)
	}
	flightSource := flights.NewFallbackSource(fetcher, inventory.FallbackFlights(), log)

	// --- Search service ---
	searchOpts := []search.Option{
		search.WithFlightSource(flightSource),
		search.WithObservability(obs),
	}
	if cfg.APIs.IntentLLM.APIKey != "" {
		searchOpts = append(searchOpts, search.WithExtractor(intent.NewLLMExtractor(intent.ConfigFrom(cfg.APIs.IntentLLM), log)))
	} else {
		zapLog.Warn("intent LLM api key not set, text queries will fail")
	}
	engine := ranking.NewEngine(ranking.WithTopN(cfg.Ranking.TopN))
	svc := search.NewService(store, engine, log, searchOpts...)

	// --- Zeebe workers ---
	var jobWorkers []worker.JobWorker
	if cfg.Camunda.BrokerAddress != "" {
		var zeebe *camunda.Client
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClientWithConfig(camunda.ClientConfigFrom(cfg.Camunda))
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer zeebe.Close()
		readyChecks = append(readyChecks, api.WithCheck("zeebe", zeebe.HealthCheck))
		zapLog.Info("Zeebe client connected successfully")

		etiCfg := eti.LoadConfig(config.GetWorkerConfig(cfg, eti.TaskType))
		etiCfg.CompleteRetry = zeebe.Retry()
		ffoCfg := ffo.LoadConfig(config.GetWorkerConfig(cfg, ffo.TaskType))
		ffoCfg.CompleteRetry = zeebe.Retry()
		rtoCfg := rto.LoadConfig(config.GetWorkerConfig(cfg, rto.TaskType))
		rtoCfg.CompleteRetry = zeebe.Retry()

		handlers := map[string]worker.JobHandler{
			eti.TaskType: eti.NewHandler(etiCfg, svc, obs, log).Handle,
			ffo.TaskType: ffo.NewHandler(ffoCfg, svc, obs, log).Handle,
			rto.TaskType: rto.NewHandler(rtoCfg, svc, obs, log).Handle,
		}
		for _, activity := range registry.Trip().Activities {
			handler, ok := handlers[activity.TaskType]
			if !ok {
				zapLog.Warn("no handler for registered activity", zap.String("taskType", activity.TaskType))
				continue
			}
			if w := zeebe.StartWorker(activity.TaskType, config.GetWorkerConfig(cfg, activity.TaskType), handler, log); w != nil {
				jobWorkers = append(jobWorkers, w)
			}
		}
		zapLog.Info("workers registered", zap.Int("count", len(jobWorkers)))
	} else {
		zapLog.Info("camunda broker address not set, running HTTP only")
	}

	// --- HTTP server ---
	apiOpts = append(apiOpts, readyChecks...)
	apiOpts = append(apiOpts, api.WithVersion(cfg.App.Version))
	server := api.NewServer(svc, cfg.Server, log, apiOpts...)
	httpServer := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("http server error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, w := range jobWorkers {
		w.Close()
		w.AwaitClose()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Trip ranker stopped")
}
