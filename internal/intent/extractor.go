// internal/intent/extractor.go
package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"trip-ranker/internal/common/config"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/models"
)

var (
	ErrMissingText            = errors.New("MISSING_TEXT")
	ErrIntentExtractionFailed = errors.New("INTENT_EXTRACTION_FAILED")
)

const (
	temperature = 0.2
	maxTokens   = 500
)

// Extractor turns free text into a raw intent.
type Extractor interface {
	Extract(ctx context.Context, text string) (models.RawIntent, error)
}

type LLMConfig struct {
	BaseURL string
	APIKey  string
	Models  []string
	Timeout time.Duration
}

func ConfigFrom(cfg config.IntentLLMConfig) LLMConfig {
	return LLMConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Models:  cfg.Models,
		Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
	}
}

// LLMExtractor asks an OpenAI-compatible chat completion API, trying each
// model in order until one returns a decodable intent.
type LLMExtractor struct {
	client  *openai.Client
	models  []string
	timeout time.Duration
	logger  logger.Logger
}

func NewLLMExtractor(cfg LLMConfig, log logger.Logger) *LLMExtractor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &LLMExtractor{
		client:  openai.NewClientWithConfig(clientCfg),
		models:  cfg.Models,
		timeout: cfg.Timeout,
		logger:  log.WithFields(map[string]interface{}{"component": "intent-extractor"}),
	}
}

func (e *LLMExtractor) Extract(ctx context.Context, text string) (models.RawIntent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.RawIntent{}, ErrMissingText
	}
	if len(e.models) == 0 {
		return models.RawIntent{}, fmt.Errorf("%w: no models configured", ErrIntentExtractionFailed)
	}

	var lastErr error
	for _, model := range e.models {
		raw, err := e.extractWith(ctx, model, text)
		if err == nil {
			e.logger.Info("intent extracted", map[string]interface{}{
				"model":       model,
				"destination": raw.Destination,
				"interests":   len(raw.Interests),
			})
			return raw, nil
		}

		lastErr = err
		e.logger.Warn("intent model failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		if ctx.Err() != nil {
			break
		}
	}

	return models.RawIntent{}, fmt.Errorf("%w: %v", ErrIntentExtractionFailed, lastErr)
}

func (e *LLMExtractor) extractWith(ctx context.Context, model, text string) (models.RawIntent, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(text)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return models.RawIntent{}, err
	}
	if len(resp.Choices) == 0 {
		return models.RawIntent{}, errors.New("no choices in response")
	}

	var raw models.RawIntent
	if err := json.Unmarshal([]byte(stripFences(resp.Choices[0].Message.Content)), &raw); err != nil {
		return models.RawIntent{}, fmt.Errorf("decode intent: %w", err)
	}
	return raw, nil
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
