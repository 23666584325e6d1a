// internal/flights/source.go
package flights

import (
	"context"

	commonerrors "trip-ranker/internal/common/errors"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/common/metrics"
	"trip-ranker/internal/models"
)

const (
	OriginLive     = "live"
	OriginFallback = "fallback"
)

// Fallback reasons, also used as metric labels.
const (
	reasonDisabled   = "disabled"
	reasonIncomplete = "incomplete_request"
	reasonTimeout    = "timeout"
	reasonError      = "error"
	reasonEmpty      = "empty"
)

// Fetcher searches a live flight API.
type Fetcher interface {
	Search(ctx context.Context, req SearchRequest) ([]models.Flight, error)
}

// FallbackSource answers every lookup: live results when the fetcher has
// them, the static flights otherwise.
type FallbackSource struct {
	fetcher  Fetcher
	fallback []models.Flight
	logger   logger.Logger
}

// NewFallbackSource accepts a nil fetcher, which always falls back.
func NewFallbackSource(fetcher Fetcher, fallback []models.Flight, log logger.Logger) *FallbackSource {
	return &FallbackSource{
		fetcher:  fetcher,
		fallback: fallback,
		logger:   log.WithFields(map[string]interface{}{"component": "flight-source"}),
	}
}

// Fetch never fails. The second value is OriginLive or OriginFallback.
func (s *FallbackSource) Fetch(ctx context.Context, req SearchRequest) ([]models.Flight, string) {
	if s.fetcher == nil {
		return s.useFallback(reasonDisabled, nil)
	}
	if !req.Complete() {
		return s.useFallback(reasonIncomplete, nil)
	}

	flights, err := s.fetcher.Search(ctx, req)
	switch {
	case err != nil && commonerrors.Normalize(err).Code == commonerrors.ErrCodeFlightAPITimeout:
		return s.useFallback(reasonTimeout, err)
	case err != nil:
		return s.useFallback(reasonError, err)
	case len(flights) == 0:
		return s.useFallback(reasonEmpty, nil)
	}
	return flights, OriginLive
}

func (s *FallbackSource) useFallback(reason string, err error) ([]models.Flight, string) {
	fields := map[string]interface{}{"reason": reason}
	if err != nil {
		fields["error"] = err.Error()
	}
	if reason == reasonDisabled || reason == reasonIncomplete {
		s.logger.Debug("flight source unavailable, using fallback inventory", fields)
	} else {
		s.logger.Warn("flight source unavailable, using fallback inventory", fields)
	}
	metrics.FlightSourceFallbacks.WithLabelValues(reason).Inc()

	return append([]models.Flight(nil), s.fallback...), OriginFallback
}
