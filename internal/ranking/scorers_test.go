// internal/ranking/scorers_test.go
package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trip-ranker/internal/models"
)

func TestBudgetScore(t *testing.T) {
	tests := []struct {
		name   string
		cost   float64
		budget models.Budget
		want   float64
	}{
		{"no budget", 12000, models.Budget{}, 50},
		{"half the budget", 10000, models.Budget{Max: 20000}, 50},
		{"free", 0, models.Budget{Max: 20000}, 100},
		{"exactly budget", 20000, models.Budget{Max: 20000}, 0},
		{"over budget clamps", 50000, models.Budget{Max: 20000}, 0},
		{"just under", 19900, models.Budget{Max: 20000}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BudgetScore(tt.cost, tt.budget), 1e-9)
		})
	}
}

func TestFlightScore(t *testing.T) {
	tests := []struct {
		name   string
		flight models.Flight
		want   float64
	}{
		{"direct daytime", models.Flight{Stops: 0, Time: "10:00"}, 100},
		{"one stop", models.Flight{Stops: 1, Time: "15:00"}, 60},
		{"two stops", models.Flight{Stops: 2, Time: "12:00"}, 30},
		{"three stops", models.Flight{Stops: 3, Time: "12:00"}, 0},
		{"late night", models.Flight{Stops: 1, Time: "23:00"}, 45},
		{"21:00 is late", models.Flight{Stops: 0, Time: "21:00"}, 85},
		{"05:59 is early", models.Flight{Stops: 0, Time: "05:59"}, 85},
		{"06:00 is fine", models.Flight{Stops: 0, Time: "06:00"}, 100},
		{"meridiem pm", models.Flight{Stops: 0, Time: "11:30 PM"}, 85},
		{"midnight am", models.Flight{Stops: 0, Time: "12:15 AM"}, 85},
		{"noon pm", models.Flight{Stops: 0, Time: "12:00 PM"}, 100},
		{"unparseable time", models.Flight{Stops: 0, Time: "soon"}, 100},
		{"penalty floors at zero", models.Flight{Stops: 4, Time: "02:00"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlightScore(tt.flight))
		})
	}
}

func TestHotelScore(t *testing.T) {
	assert.InDelta(t, 84.0, HotelScore(models.Hotel{Rating: 4.2}), 1e-9)
	assert.Equal(t, 100.0, HotelScore(models.Hotel{Rating: 5}))
	assert.Equal(t, 100.0, HotelScore(models.Hotel{Rating: 7}))
	assert.Equal(t, 0.0, HotelScore(models.Hotel{Rating: -1}))
}

func TestConnectivityScore(t *testing.T) {
	metro := models.Hotel{NearMetro: true}
	far := models.Hotel{NearMetro: false}
	want := models.Connectivity{Value: models.ConnectivityNearMetro, ConstraintType: models.ConstraintSoft}

	assert.Equal(t, 100.0, ConnectivityScore(metro, want))
	assert.Equal(t, 30.0, ConnectivityScore(far, want))
	assert.Equal(t, 50.0, ConnectivityScore(far, models.Connectivity{}))
	assert.Equal(t, 50.0, ConnectivityScore(metro, models.Connectivity{Value: "nearAirport"}))
}

func TestActivityScore(t *testing.T) {
	assert.Equal(t, 50.0, ActivityScore(2, 0))
	assert.Equal(t, 0.0, ActivityScore(0, 2))
	assert.Equal(t, 50.0, ActivityScore(1, 2))
	assert.Equal(t, 100.0, ActivityScore(3, 1))
}

func TestScoreCandidate(t *testing.T) {
	c := models.Candidate{
		Flight:            models.Flight{Stops: 0, Time: "10:00"},
		Hotel:             models.Hotel{Rating: 4.5, NearMetro: true},
		MatchedActivities: 1,
		TotalCost:         15000,
	}
	intent := models.Intent{
		Budget:       models.Budget{Max: 30000, ConstraintType: models.ConstraintSoft},
		Connectivity: models.Connectivity{Value: models.ConnectivityNearMetro, ConstraintType: models.ConstraintSoft},
		Interests:    softInterests("beach", "food"),
	}

	ScoreCandidate(&c, intent)

	assert.InDelta(t, 50.0, c.Scores.Budget, 1e-9)
	assert.Equal(t, 100.0, c.Scores.Flight)
	assert.InDelta(t, 90.0, c.Scores.Hotel, 1e-9)
	assert.Equal(t, 100.0, c.Scores.Connectivity)
	assert.Equal(t, 50.0, c.Scores.Activity)
}

func TestDepartureHour(t *testing.T) {
	tests := []struct {
		in     string
		hour   int
		parsed bool
	}{
		{"07:30", 7, true},
		{"7:30 am", 7, true},
		{"1:05 PM", 13, true},
		{"12:00 AM", 0, true},
		{"24:00", 0, false},
		{"", 0, false},
		{"noon", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			hour, ok := departureHour(tt.in)
			assert.Equal(t, tt.parsed, ok)
			if ok {
				assert.Equal(t, tt.hour, hour)
			}
		})
	}
}
