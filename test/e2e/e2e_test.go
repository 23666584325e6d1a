// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-ranker/internal/api"
	"trip-ranker/internal/common/camunda/camundatest"
	"trip-ranker/internal/common/config"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/flights"
	"trip-ranker/internal/intent"
	"trip-ranker/internal/inventory"
	"trip-ranker/internal/models"
	"trip-ranker/internal/ranking"
	"trip-ranker/internal/search"
	"trip-ranker/pkg/registry"

	eti "trip-ranker/internal/workers/trip/extract-travel-intent"
	ffo "trip-ranker/internal/workers/trip/fetch-flight-offers"
	rto "trip-ranker/internal/workers/trip/rank-trip-options"
)

const goaIntentJSON = `{"destination":"goa","duration_days":3,"budget":{"max":20000,"constraint_type":"hard"},"interests":["beach"],"month":"December"}`

// ==========================
// Environment
// ==========================

type env struct {
	svc   *search.Service
	cache *inventory.CachedStore
	redis *miniredis.Miniredis
	rdb   *redis.Client
	log   logger.Logger
}

// newLLMServer answers every chat completion with content.
func newLLMServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-e2e",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "llama-3.3-70b-versatile",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := logger.NewTestLogger(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cache := inventory.NewCachedStore(inventory.NewStaticStore(), rdb, time.Minute, log)

	llm := newLLMServer(t, goaIntentJSON)
	extractor := intent.NewLLMExtractor(intent.LLMConfig{
		BaseURL: llm.URL + "/v1",
		APIKey:  "test-key",
		Models:  []string{"llama-3.3-70b-versatile"},
		Timeout: 5 * time.Second,
	}, log)

	source := flights.NewFallbackSource(nil, inventory.FallbackFlights(), log)

	svc := search.NewService(cache, ranking.NewEngine(), log,
		search.WithExtractor(extractor),
		search.WithFlightSource(source),
	)
	return &env{svc: svc, cache: cache, redis: mr, rdb: rdb, log: log}
}

// ==========================
// Zeebe pipeline
// ==========================

// runJob feeds variables to handle and returns the completed variables.
func runJob(t *testing.T, handle func(*camundatest.JobClient, interface{}), vars interface{}) map[string]interface{} {
	t.Helper()
	client := camundatest.NewJobClient()
	handle(client, vars)
	require.Empty(t, client.Thrown(), "job threw a BPMN error")
	require.Empty(t, client.Failed(), "job failed")
	completed := client.Completed()
	require.Len(t, completed, 1)
	return completed[0]
}

func TestRegistryMatchesWorkers(t *testing.T) {
	assert.Equal(t, []string{eti.TaskType, ffo.TaskType, rto.TaskType}, registry.Trip().TaskTypes())
}

func TestTripSearchProcess(t *testing.T) {
	e := newEnv(t)

	extract := eti.NewHandler(eti.LoadConfig(config.WorkerConfig{}), e.svc, nil, e.log)
	fetch := ffo.NewHandler(ffo.LoadConfig(config.WorkerConfig{}), e.svc, nil, e.log)
	rank := rto.NewHandler(rto.LoadConfig(config.WorkerConfig{}), e.svc, nil, e.log)

	process := map[string]interface{}{"text": "three days of beaches in goa under 20k this december"}

	out := runJob(t, func(c *camundatest.JobClient, v interface{}) {
		extract.Handle(c, camundatest.Job(1, eti.TaskType, 3, v))
	}, process)
	process["intent"] = out["intent"]

	out = runJob(t, func(c *camundatest.JobClient, v interface{}) {
		fetch.Handle(c, camundatest.Job(2, ffo.TaskType, 3, v))
	}, process)
	for k, v := range out {
		process[k] = v
	}
	assert.Equal(t, flights.OriginFallback, process["flightSource"])

	out = runJob(t, func(c *camundatest.JobClient, v interface{}) {
		rank.Handle(c, camundatest.Job(3, rto.TaskType, 3, v))
	}, process)

	data, err := json.Marshal(out["result"])
	require.NoError(t, err)
	var result models.RankResult
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, "Goa", result.Query.Destination)
	assert.Equal(t, "₹20000", result.Query.Budget)
	require.NotEmpty(t, result.Trips)
	for i, trip := range result.Trips {
		assert.LessOrEqual(t, trip.TotalCost, 20000.0)
		if i > 0 {
			assert.LessOrEqual(t, trip.Score, result.Trips[i-1].Score)
		}
	}
	require.NotNil(t, result.DestinationInfo)
	assert.True(t, result.DestinationInfo.InSeason)

	assert.True(t, e.redis.Exists(e.cache.CacheKey()), "catalog should be cached after the first load")
}

// ==========================
// HTTP API
// ==========================

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHTTPAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := newEnv(t)

	server := api.NewServer(e.svc, config.ServerConfig{}, e.log,
		api.WithInvalidator(e.cache),
		api.WithCheck("redis", func(ctx context.Context) error {
			return e.rdb.Ping(ctx).Err()
		}),
	)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	t.Run("text query", func(t *testing.T) {
		resp, body := postJSON(t, ts.URL+"/getHolidayOptions", `{"text": "beach break in goa"}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
		assert.NotEmpty(t, body["searchId"])
		assert.Equal(t, "fallback", body["flightSource"])
		assert.NotEmpty(t, body["trips"])
	})

	t.Run("structured query", func(t *testing.T) {
		resp, body := postJSON(t, ts.URL+"/getHolidayOptions", `{"connectivity": {"value": "nearMetro", "constraint_type": "hard"}}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		for _, raw := range body["trips"].([]interface{}) {
			hotel := raw.(map[string]interface{})["hotel"].(map[string]interface{})
			assert.Equal(t, true, hotel["nearMetro"])
		}
	})

	t.Run("refresh drops the cached catalog", func(t *testing.T) {
		require.True(t, e.redis.Exists(e.cache.CacheKey()))

		resp, _ := postJSON(t, ts.URL+"/inventory/refresh", `{}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, e.redis.Exists(e.cache.CacheKey()))
	})

	t.Run("ready", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/ready")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
