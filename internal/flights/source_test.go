// internal/flights/source_test.go
package flights

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	commonerrors "trip-ranker/internal/common/errors"
	"trip-ranker/internal/common/metrics"
	"trip-ranker/internal/models"
)

type fakeFetcher struct {
	flights []models.Flight
	err     error
	calls   int
}

func (f *fakeFetcher) Search(ctx context.Context, req SearchRequest) ([]models.Flight, error) {
	f.calls++
	return f.flights, f.err
}

var staticFlights = []models.Flight{
	{Airline: "IndiGo", Price: 8500, Time: "10:00"},
	{Airline: "SpiceJet", Price: 6500, Stops: 1, Time: "23:00"},
}

func TestFallbackSource_Fetch(t *testing.T) {
	live := []models.Flight{{Airline: "Vistara", Price: 9900, Time: "09:15"}}

	tests := []struct {
		name        string
		fetcher     *fakeFetcher
		req         SearchRequest
		wantOrigin  string
		wantFlights []models.Flight
		wantCalls   int
		reason      string
	}{
		{
			name:        "live results",
			fetcher:     &fakeFetcher{flights: live},
			req:         goaRequest,
			wantOrigin:  OriginLive,
			wantFlights: live,
			wantCalls:   1,
		},
		{
			name:        "api error",
			fetcher:     &fakeFetcher{err: commonerrors.NewFlightSearchFailedError(errors.New("status 502"))},
			req:         goaRequest,
			wantOrigin:  OriginFallback,
			wantFlights: staticFlights,
			wantCalls:   1,
			reason:      reasonError,
		},
		{
			name:        "api timeout",
			fetcher:     &fakeFetcher{err: commonerrors.NewFlightAPITimeoutError()},
			req:         goaRequest,
			wantOrigin:  OriginFallback,
			wantFlights: staticFlights,
			wantCalls:   1,
			reason:      reasonTimeout,
		},
		{
			name:        "wrapped api timeout",
			fetcher:     &fakeFetcher{err: fmt.Errorf("search: %w", commonerrors.NewFlightAPITimeoutError())},
			req:         goaRequest,
			wantOrigin:  OriginFallback,
			wantFlights: staticFlights,
			wantCalls:   1,
			reason:      reasonTimeout,
		},
		{
			name:        "empty results",
			fetcher:     &fakeFetcher{flights: []models.Flight{}},
			req:         goaRequest,
			wantOrigin:  OriginFallback,
			wantFlights: staticFlights,
			wantCalls:   1,
			reason:      reasonEmpty,
		},
		{
			name:        "incomplete request skips the api",
			fetcher:     &fakeFetcher{flights: live},
			req:         SearchRequest{Destination: "GOI"},
			wantOrigin:  OriginFallback,
			wantFlights: staticFlights,
			wantCalls:   0,
			reason:      reasonIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var before float64
			if tt.reason != "" {
				before = testutil.ToFloat64(metrics.FlightSourceFallbacks.WithLabelValues(tt.reason))
			}

			source := NewFallbackSource(tt.fetcher, staticFlights, newTestLogger(t))
			flights, origin := source.Fetch(context.Background(), tt.req)

			assert.Equal(t, tt.wantOrigin, origin)
			assert.Equal(t, tt.wantFlights, flights)
			assert.Equal(t, tt.wantCalls, tt.fetcher.calls)

			if tt.reason != "" {
				after := testutil.ToFloat64(metrics.FlightSourceFallbacks.WithLabelValues(tt.reason))
				assert.Equal(t, before+1, after)
			}
		})
	}
}

func TestFallbackSource_NilFetcher(t *testing.T) {
	source := NewFallbackSource(nil, staticFlights, newTestLogger(t))

	flights, origin := source.Fetch(context.Background(), goaRequest)
	assert.Equal(t, OriginFallback, origin)
	assert.Equal(t, staticFlights, flights)
}

func TestFallbackSource_ReturnsCopy(t *testing.T) {
	source := NewFallbackSource(&fakeFetcher{err: errors.New("down")}, staticFlights, newTestLogger(t))

	flights, _ := source.Fetch(context.Background(), goaRequest)
	flights[0].Price = 1

	assert.Equal(t, 8500.0, staticFlights[0].Price)
}
