// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"trip-ranker/internal/common/config"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/common/metrics"
)

// Instrument wraps a job handler with the active-jobs gauge and duration histogram.
func Instrument(taskType string, handler worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer func() {
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
		}()
		handler(client, job)
	}
}

// StartWorker opens a job worker for taskType. It returns nil when the worker
// is disabled.
func (c *Client) StartWorker(taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}

	jobWorker := c.client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		RequestTimeout(c.config.RequestTimeout).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":         taskType,
		"maxJobsActive":    wcfg.MaxJobsActive,
		"timeoutMs":        wcfg.Timeout,
		"requestTimeoutMs": c.config.RequestTimeout.Milliseconds(),
	})
	return jobWorker
}

// CompleteJob completes job with variables, retrying transient broker errors.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, variables interface{}, retry *RetryConfig) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(variables)
	if err != nil {
		return fmt.Errorf("encode job variables: %w", err)
	}

	return ExecuteWithRetry(ctx, retry, func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	}, "complete job")
}
