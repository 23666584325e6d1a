// internal/workers/trip/rank-trip-options/models.go
package ranktripoptions

import "trip-ranker/internal/models"

type Input struct {
	Intent       models.RawIntent `json:"intent"`
	Flights      []models.Flight  `json:"flights"`
	FlightSource string           `json:"flightSource"`
}

type Output struct {
	Result *models.RankResult `json:"result"`
}
