// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-ranker/internal/common/camunda/camundatest"
	"trip-ranker/internal/common/config"
	"trip-ranker/internal/common/errors"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/common/metrics"
)

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"broken pipe", true},
		{"rpc error: code = NotFound desc = process not found", false},
		{"permission denied", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableZeebeError(stderrors.New(tt.msg)))
		})
	}
}

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		msg      string
		wantCode errors.ErrorCode
	}{
		{"deadline exceeded", "TIMEOUT_ERROR"},
		{"process not found", "RESOURCE_NOT_FOUND"},
		{"unauthorized", "AUTHENTICATION_ERROR"},
		{"connection refused", "EXTERNAL_SERVICE_ERROR"},
		{"something odd", "EXTERNAL_SERVICE_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := mapZeebeError(stderrors.New(tt.msg), "publish", 2)

			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, tt.wantCode, stdErr.Code)
			assert.Contains(t, stdErr.Details, "after 2 attempts")
		})
	}
}

func TestMapZeebeError_SingleAttempt(t *testing.T) {
	err := mapZeebeError(stderrors.New("process not found"), "complete job", 1)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.NotContains(t, stdErr.Details, "attempts")
}

var fastRetry = &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestExecuteWithRetry(t *testing.T) {
	unavailable := stderrors.New("rpc error: code = Unavailable desc = connection refused")

	tests := []struct {
		name         string
		errs         []error
		wantCalls    int
		wantCode     errors.ErrorCode
		wantAttempts string
	}{
		{
			name:      "first attempt succeeds",
			errs:      nil,
			wantCalls: 1,
		},
		{
			name:      "transient error then success",
			errs:      []error{unavailable, unavailable},
			wantCalls: 3,
		},
		{
			name:         "transient error exhausts retries",
			errs:         []error{unavailable, unavailable, unavailable, unavailable},
			wantCalls:    3,
			wantCode:     "EXTERNAL_SERVICE_ERROR",
			wantAttempts: "after 3 attempts",
		},
		{
			name:      "permanent error is not retried",
			errs:      []error{stderrors.New("rpc error: code = NotFound desc = job not found")},
			wantCalls: 1,
			wantCode:  "RESOURCE_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := ExecuteWithRetry(context.Background(), fastRetry, func(ctx context.Context) error {
				calls++
				if calls <= len(tt.errs) {
					return tt.errs[calls-1]
				}
				return nil
			}, "complete job")

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr), "got %v", err)
			assert.Equal(t, tt.wantCode, stdErr.Code)
			if tt.wantAttempts != "" {
				assert.Contains(t, stdErr.Details, tt.wantAttempts)
			}
		})
	}
}

func TestExecuteWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	slow := &RetryConfig{MaxRetries: 5, BaseDelay: time.Minute, MaxDelay: time.Minute}

	calls := 0
	err := ExecuteWithRetry(ctx, slow, func(ctx context.Context) error {
		calls++
		cancel()
		return stderrors.New("deadline exceeded")
	}, "complete job")

	assert.Equal(t, 1, calls)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr), "got %v", err)
	assert.Equal(t, errors.ErrorCode("TIMEOUT_ERROR"), stdErr.Code)
	assert.Contains(t, stdErr.Details, "cancelled after 1 attempts")
}

func TestCompleteJob(t *testing.T) {
	client := camundatest.NewJobClient()
	client.FailCompletes(1, stderrors.New("connection reset by peer"))

	err := CompleteJob(context.Background(), client, camundatest.Job(5, "rank-trip-options", 3, nil),
		map[string]interface{}{"flightSource": "live"}, fastRetry)

	require.NoError(t, err)
	assert.Equal(t, 2, client.CompleteAttempts())
	completed := client.Completed()
	require.Len(t, completed, 1)
	assert.Equal(t, "live", completed[0]["flightSource"])
}

func TestClientConfigFrom(t *testing.T) {
	cfg := ClientConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", Timeout: 5000})

	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.True(t, cfg.UsePlaintextConnection)
	assert.Equal(t, 5*time.Second, cfg.ConnectionTimeout)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, DefaultRetryConfig, cfg.RetryConfig)
}

// noopJobClient is never called by the handler under test.
type noopJobClient struct{ worker.JobClient }

func TestInstrument(t *testing.T) {
	const taskType = "instrument-test"
	called := false

	handler := Instrument(taskType, func(client worker.JobClient, job entities.Job) {
		called = true
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
	})

	handler(noopJobClient{}, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1}})

	assert.True(t, called)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}

func TestStartWorker_Disabled(t *testing.T) {
	c := &Client{config: ClientConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500"})}

	w := c.StartWorker("rank-trip-options", config.WorkerConfig{Enabled: false}, func(worker.JobClient, entities.Job) {}, logger.NewTestLogger(t))

	assert.Nil(t, w)
}
