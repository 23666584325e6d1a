// internal/workers/trip/extract-travel-intent/models.go
package extracttravelintent

import "trip-ranker/internal/models"

type Input struct {
	Text string `json:"text"`
}

type Output struct {
	Intent models.RawIntent `json:"intent"`
}
