// internal/workers/trip/extract-travel-intent/handler.go
package extracttravelintent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"trip-ranker/internal/common/camunda"
	commonerrors "trip-ranker/internal/common/errors"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/common/metrics"
	"trip-ranker/internal/common/observability"
	"trip-ranker/internal/models"
)

const (
	TaskType = "extract-travel-intent"
)

var (
	ErrMissingText = errors.New("MISSING_TEXT")
)

// IntentExtractor is satisfied by search.Service.
type IntentExtractor interface {
	ExtractIntent(ctx context.Context, text string) (models.RawIntent, error)
}

type Handler struct {
	config       *Config
	extractor    IntentExtractor
	obs          *observability.Observability
	errorHandler *commonerrors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, extractor IntentExtractor, obs *observability.Observability, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		extractor:    extractor,
		obs:          obs,
		errorHandler: commonerrors.NewErrorHandler(scoped),
		logger:       scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, start, commonerrors.NewIntentMalformedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, start, err)
		return
	}

	if err := h.completeJob(ctx, client, job, output); err != nil {
		h.recordFailure(ctx, start, err)
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "success")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "success")
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, commonerrors.NewIntentMalformedError(ErrMissingText.Error())
	}

	raw, err := h.extractor.ExtractIntent(ctx, text)
	if err != nil {
		return nil, err
	}

	h.logger.Info("intent extracted", map[string]interface{}{
		"destination": raw.Destination,
		"interests":   len(raw.Interests),
	})
	return &Output{Intent: raw}, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, err error) {
	h.errorHandler.HandleJobError(ctx, client, job, err)
	h.recordFailure(ctx, start, err)
}

func (h *Handler) recordFailure(ctx context.Context, start time.Time, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(commonerrors.Normalize(err).Code)).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "error")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "error")
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	if err := camunda.CompleteJob(ctx, client, job, output, h.config.CompleteRetry); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return err
	}
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
