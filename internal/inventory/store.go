// internal/inventory/store.go
package inventory

import (
	"context"

	"trip-ranker/internal/models"
)

// Catalog is everything the ranking engine reads besides live flights.
type Catalog struct {
	Flights      []models.Flight      `json:"flights"`
	Hotels       []models.Hotel       `json:"hotels"`
	Activities   []models.Activity    `json:"activities"`
	Destinations []models.Destination `json:"destinations"`
}

// Store loads a catalog from one backend.
type Store interface {
	Name() string
	Load(ctx context.Context) (*Catalog, error)
}

// StaticStore serves the bundled fixtures.
type StaticStore struct{}

func NewStaticStore() *StaticStore {
	return &StaticStore{}
}

func (s *StaticStore) Name() string { return "static" }

func (s *StaticStore) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Fixtures(), nil
}
