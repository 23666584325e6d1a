// internal/inventory/postgres.go
package inventory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	commonerrors "trip-ranker/internal/common/errors"
	"trip-ranker/internal/common/logger"
	"trip-ranker/internal/models"
)

const (
	flightsQuery = `
		SELECT airline, price, stops, departure_time, COALESCE(duration, '')
		FROM fallback_flights
		ORDER BY position`

	hotelsQuery = `
		SELECT name, price_per_night, near_metro, rating, amenities, COALESCE(image, '')
		FROM hotels
		ORDER BY position`

	activitiesQuery = `
		SELECT name, location, tags, moods, price, COALESCE(duration, ''), COALESCE(description, '')
		FROM activities
		ORDER BY position`

	destinationsQuery = `
		SELECT name, best_months, weather, COALESCE(timezone, ''), COALESCE(currency, '')
		FROM destinations
		ORDER BY name`
)

// PostgresStore reads the catalog tables. JSON array columns (amenities,
// tags, moods, best_months) may be NULL.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "postgres"}),
	}
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Load(ctx context.Context) (*Catalog, error) {
	flights, err := s.loadFlights(ctx)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("fallback_flights", err)
	}
	hotels, err := s.loadHotels(ctx)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("hotels", err)
	}
	activities, err := s.loadActivities(ctx)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("activities", err)
	}
	destinations, err := s.loadDestinations(ctx)
	if err != nil {
		return nil, commonerrors.NewQueryExecutionFailedError("destinations", err)
	}

	s.logger.Debug("catalog loaded", map[string]interface{}{
		"flights":      len(flights),
		"hotels":       len(hotels),
		"activities":   len(activities),
		"destinations": len(destinations),
	})

	return &Catalog{
		Flights:      flights,
		Hotels:       hotels,
		Activities:   activities,
		Destinations: destinations,
	}, nil
}

func (s *PostgresStore) loadFlights(ctx context.Context) ([]models.Flight, error) {
	rows, err := s.db.QueryContext(ctx, flightsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]models.Flight, 0)
	for rows.Next() {
		var f models.Flight
		if err := rows.Scan(&f.Airline, &f.Price, &f.Stops, &f.Time, &f.Duration); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (s *PostgresStore) loadHotels(ctx context.Context) ([]models.Hotel, error) {
	rows, err := s.db.QueryContext(ctx, hotelsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hotels := make([]models.Hotel, 0)
	for rows.Next() {
		var (
			h         models.Hotel
			amenities []byte
		)
		if err := rows.Scan(&h.Name, &h.PricePerNight, &h.NearMetro, &h.Rating, &amenities, &h.Image); err != nil {
			return nil, err
		}
		if h.Amenities, err = decodeStrings(amenities); err != nil {
			return nil, fmt.Errorf("hotel %q amenities: %w", h.Name, err)
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

func (s *PostgresStore) loadActivities(ctx context.Context) ([]models.Activity, error) {
	rows, err := s.db.QueryContext(ctx, activitiesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]models.Activity, 0)
	for rows.Next() {
		var (
			a           models.Activity
			tags, moods []byte
		)
		if err := rows.Scan(&a.Name, &a.Location, &tags, &moods, &a.Price, &a.Duration, &a.Description); err != nil {
			return nil, err
		}
		if a.Tags, err = decodeStrings(tags); err != nil {
			return nil, fmt.Errorf("activity %q tags: %w", a.Name, err)
		}
		if a.Moods, err = decodeStrings(moods); err != nil {
			return nil, fmt.Errorf("activity %q moods: %w", a.Name, err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *PostgresStore) loadDestinations(ctx context.Context) ([]models.Destination, error) {
	rows, err := s.db.QueryContext(ctx, destinationsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	destinations := make([]models.Destination, 0)
	for rows.Next() {
		var (
			d      models.Destination
			months []byte
		)
		if err := rows.Scan(&d.Name, &months, &d.Weather, &d.Timezone, &d.Currency); err != nil {
			return nil, err
		}
		if d.BestMonths, err = decodeStrings(months); err != nil {
			return nil, fmt.Errorf("destination %q best_months: %w", d.Name, err)
		}
		destinations = append(destinations, d)
	}
	return destinations, rows.Err()
}

func decodeStrings(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
