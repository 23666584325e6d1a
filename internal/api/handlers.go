// internal/api/handlers.go
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	commonerrors "trip-ranker/internal/common/errors"
	"trip-ranker/internal/common/validation"
	"trip-ranker/internal/intent"
	"trip-ranker/internal/models"
)

const (
	maxBodyBytes = 64 << 10
	readyTimeout = 3 * time.Second
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for _, nc := range s.checks {
		if err := nc.check(ctx); err != nil {
			results[nc.name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[nc.name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	c.JSON(status, gin.H{
		"status": state,
		"checks": results,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleHolidayOptions(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read request body"})
		return
	}

	vr, err := validation.Intent.ValidateJSON(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be a JSON object"})
		return
	}
	if !vr.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid intent",
			"details": vr.GetErrorMessages(),
		})
		return
	}

	var envelope struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be a JSON object"})
		return
	}

	ctx := c.Request.Context()
	var raw models.RawIntent
	if envelope.Text != nil {
		text := strings.TrimSpace(*envelope.Text)
		if text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
			return
		}
		raw, err = s.search.ExtractIntent(ctx, text)
		if stderrors.Is(err, intent.ErrMissingText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty"})
			return
		}
		if err != nil {
			s.logger.Error("intent extraction failed", map[string]interface{}{
				"traceId": c.GetString(traceIDKey),
				"error":   err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Intent extraction failed"})
			return
		}
	} else if err := json.Unmarshal(body, &raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid intent", "details": []string{err.Error()}})
		return
	}

	result, err := s.search.Search(ctx, raw)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleRefresh(c *gin.Context) {
	if err := s.invalidator.Invalidate(c.Request.Context()); err != nil {
		s.logger.Warn("inventory refresh failed", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Inventory cache unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

func (s *Server) respondError(c *gin.Context, err error) {
	stdErr := commonerrors.Normalize(err)
	s.logger.Error("search failed", map[string]interface{}{
		"traceId": c.GetString(traceIDKey),
		"code":    string(stdErr.Code),
		"details": stdErr.Details,
	})

	status := http.StatusInternalServerError
	if stdErr.Code == commonerrors.ErrCodeInventoryUnavailable {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": stdErr.Message, "code": stdErr.Code})
}
