// internal/workers/trip/fetch-flight-offers/models.go
package fetchflightoffers

import "trip-ranker/internal/models"

type Input struct {
	Intent models.RawIntent `json:"intent"`
}

// Output carries no flights when the live search fell back; the ranking
// worker then uses the catalog flights.
type Output struct {
	Flights      []models.Flight `json:"flights,omitempty"`
	FlightSource string          `json:"flightSource"`
}
