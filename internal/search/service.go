// internal/search/service.go
package search

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	commonerrors "trip-ranker/internal/common/errors"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/common/metrics"
	"trip-ranker/internal/common/observability"
	"trip-ranker/internal/flights"
	"trip-ranker/internal/intent"
	"trip-ranker/internal/inventory"
	"trip-ranker/internal/models"
	"trip-ranker/internal/ranking"
)

// ErrExtractorDisabled is returned for text queries when no LLM is configured.
var ErrExtractorDisabled = errors.New("intent extractor is not configured")

// FlightSource never fails; it reports where the flights came from.
type FlightSource interface {
	Fetch(ctx context.Context, req flights.SearchRequest) ([]models.Flight, string)
}

// Service runs one holiday search: extraction, inventory, flights and ranking.
// Every dependency except the store and engine may be nil.
type Service struct {
	store     inventory.Store
	flights   FlightSource
	extractor intent.Extractor
	engine    *ranking.Engine
	obs       *observability.Observability
	logger    logger.Logger
}

type Option func(*Service)

func WithFlightSource(src FlightSource) Option {
	return func(s *Service) { s.flights = src }
}

func WithExtractor(e intent.Extractor) Option {
	return func(s *Service) { s.extractor = e }
}

func WithObservability(o *observability.Observability) Option {
	return func(s *Service) { s.obs = o }
}

func NewService(store inventory.Store, engine *ranking.Engine, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		engine: engine,
		logger: log.WithFields(map[string]interface{}{"component": "search"}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractIntent returns intent.ErrMissingText for blank text and a
// StandardError for every other failure.
func (s *Service) ExtractIntent(ctx context.Context, text string) (models.RawIntent, error) {
	if s.extractor == nil {
		return models.RawIntent{}, commonerrors.NewIntentExtractionFailedError(ErrExtractorDisabled)
	}

	ctx, span := s.obs.StartSpan(ctx, "search.extract_intent")
	defer span.End()

	raw, err := s.extractor.Extract(ctx, text)
	if errors.Is(err, intent.ErrMissingText) {
		return models.RawIntent{}, err
	}
	if err != nil {
		return models.RawIntent{}, commonerrors.NewIntentExtractionFailedError(err)
	}
	return raw, nil
}

// FetchFlights asks the flight source, or reports fallback with no flights
// when there is none. A nil slice means the catalog flights should be used.
func (s *Service) FetchFlights(ctx context.Context, raw models.RawIntent) ([]models.Flight, string) {
	if s.flights == nil {
		return nil, flights.OriginFallback
	}
	ctx, span := s.obs.StartSpan(ctx, "search.fetch_flights")
	defer span.End()

	found, origin := s.flights.Fetch(ctx, flights.SearchRequestFromIntent(raw))
	span.SetAttributes(attribute.String("flight.source", origin), attribute.Int("flight.count", len(found)))
	if origin != flights.OriginLive {
		return nil, origin
	}
	return found, origin
}

// Rank loads the catalog and ranks raw. Catalog flights are used when
// flightList is empty.
func (s *Service) Rank(ctx context.Context, raw models.RawIntent, flightList []models.Flight, origin string) (*models.RankResult, error) {
	ctx, span := s.obs.StartSpan(ctx, "search.rank")
	defer span.End()

	cat, err := s.store.Load(ctx)
	if err != nil {
		return nil, commonerrors.NewInventoryUnavailableError(s.store.Name(), err)
	}

	if len(flightList) == 0 {
		flightList = cat.Flights
		if origin == "" || origin == flights.OriginLive {
			origin = flights.OriginFallback
		}
	}

	start := time.Now()
	result := s.engine.Rank(raw, ranking.Inventory{
		Flights:      flightList,
		Hotels:       cat.Hotels,
		Activities:   cat.Activities,
		Destinations: cat.Destinations,
	})
	elapsed := time.Since(start)

	result.SearchID = uuid.NewString()
	result.FlightSource = origin

	metrics.ObserveRanking(result.Stats.Generated, result.Stats.Filtered, len(result.Trips), elapsed.Seconds())
	s.obs.RecordRanking(ctx, len(result.Trips), elapsed)
	span.SetAttributes(
		attribute.Int("ranking.generated", result.Stats.Generated),
		attribute.Int("ranking.returned", len(result.Trips)),
	)

	s.logger.Info("trips ranked", map[string]interface{}{
		"searchId":     result.SearchID,
		"destination":  result.Query.Destination,
		"generated":    result.Stats.Generated,
		"filtered":     result.Stats.Filtered,
		"returned":     len(result.Trips),
		"flightSource": origin,
		"durationMs":   elapsed.Milliseconds(),
	})
	return result, nil
}

// Search fetches flights for raw and ranks it.
func (s *Service) Search(ctx context.Context, raw models.RawIntent) (*models.RankResult, error) {
	found, origin := s.FetchFlights(ctx, raw)
	return s.Rank(ctx, raw, found, origin)
}

// SearchText extracts an intent from text and searches it.
func (s *Service) SearchText(ctx context.Context, text string) (*models.RankResult, error) {
	raw, err := s.ExtractIntent(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, raw)
}
