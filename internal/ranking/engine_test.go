// internal/ranking/engine_test.go
package ranking

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-ranker/internal/inventory"
	"trip-ranker/internal/models"
)

var fixedNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func fixtureInventory() Inventory {
	cat := inventory.Fixtures()
	return Inventory{
		Flights:      cat.Flights,
		Hotels:       cat.Hotels,
		Activities:   cat.Activities,
		Destinations: cat.Destinations,
	}
}

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func tripPairs(trips []models.Trip) []string {
	out := make([]string, 0, len(trips))
	for _, t := range trips {
		out = append(out, t.Flight.Airline+"+"+t.Hotel.Name)
	}
	return out
}

// ==========================
// Scenarios
// ==========================

func TestEngine_EmptyIntentUsesEqualWeights(t *testing.T) {
	result := newTestEngine().Rank(models.RawIntent{}, fixtureInventory())

	assert.Equal(t, 200, result.Status)
	assert.Equal(t, 30, result.TotalOptions)
	require.Len(t, result.Trips, DefaultTopN)

	assert.Equal(t, []string{
		"IndiGo+Luxury Palms Resort",
		"Air India+Luxury Palms Resort",
		"Vistara+Luxury Palms Resort",
		"IndiGo+Heritage Bay Resort",
		"Air India+Heritage Bay Resort",
		"Vistara+Heritage Bay Resort",
	}, tripPairs(result.Trips))
	assert.Equal(t, []int{70, 70, 70, 69, 69, 69}, []int{
		result.Trips[0].Score, result.Trips[1].Score, result.Trips[2].Score,
		result.Trips[3].Score, result.Trips[4].Score, result.Trips[5].Score,
	})

	for _, trip := range result.Trips {
		assert.Equal(t, "Mumbai", trip.Destination)
		assert.Equal(t, 3, trip.Duration)
		assert.Equal(t, 50.0, trip.ScoreBreakdown.Components.Activity)
		assert.InDelta(t, 0.2, trip.ScoreBreakdown.Weights.Budget, 1e-9)
		assert.Len(t, trip.Activities, 2)
	}

	assert.Equal(t, "", result.Query.Destination)
	assert.Equal(t, "Not specified", result.Query.Budget)
	assert.Empty(t, result.Query.Interests)
	assert.Nil(t, result.DestinationInfo)
	assert.Equal(t, models.RankStats{Generated: 30, Filtered: 0}, result.Stats)
}

func TestEngine_EmptyIntentFullRanking(t *testing.T) {
	result := newTestEngine(WithTopN(30)).Rank(models.RawIntent{}, fixtureInventory())
	require.Len(t, result.Trips, 30)

	var beachside *models.Trip
	for i := range result.Trips {
		if result.Trips[i].Flight.Airline == "IndiGo" && result.Trips[i].Hotel.Name == "Beachside Hostel" {
			beachside = &result.Trips[i]
		}
	}
	require.NotNil(t, beachside)
	assert.Equal(t, 12700.0, beachside.TotalCost)
	assert.Equal(t, models.CostBreakdown{Flight: 8500, Hotel: 3600, Activities: 600}, beachside.Breakdown)
	assert.InDelta(t, 66.8, beachside.ScoreBreakdown.FinalScore, 1e-9)
	assert.Equal(t, 67, beachside.Score)
}

func TestEngine_GoaHardBudget(t *testing.T) {
	raw := models.RawIntent{
		Destination:  "GOI",
		DurationDays: days(3),
		Budget:       &models.Budget{Max: 20000, ConstraintType: models.ConstraintHard},
		Interests:    softInterests("adventure"),
		Month:        "December",
	}

	result := newTestEngine().Rank(raw, fixtureInventory())

	assert.Equal(t, 4, result.TotalOptions)
	require.Len(t, result.Trips, 4)
	assert.Equal(t, []string{
		"IndiGo+Beachside Hostel",
		"Go First+Beachside Hostel",
		"SpiceJet+Beachside Hostel",
		"SpiceJet+Budget Traveler's Inn",
	}, tripPairs(result.Trips))
	assert.Equal(t, []int{48, 44, 43, 40}, []int{
		result.Trips[0].Score, result.Trips[1].Score, result.Trips[2].Score, result.Trips[3].Score,
	})

	top := result.Trips[0]
	assert.Equal(t, 19900.0, top.TotalCost)
	assert.InDelta(t, 47.5833333, top.ScoreBreakdown.FinalScore, 1e-6)
	assert.Equal(t, "Goa", top.Destination)
	assert.Len(t, top.Activities, 3)

	w := top.ScoreBreakdown.Weights
	assert.InDelta(t, 0.5, w.Budget, 1e-9)
	assert.InDelta(t, 1.0/6, w.Flight, 1e-9)
	assert.InDelta(t, 0.0, w.Connectivity, 1e-9)

	for _, trip := range result.Trips {
		assert.LessOrEqual(t, trip.TotalCost, 20000.0)
	}

	assert.Equal(t, "Goa", result.Query.Destination)
	assert.Equal(t, "₹20000", result.Query.Budget)
	assert.Equal(t, []string{"adventure"}, result.Query.Interests)
	require.NotNil(t, result.DestinationInfo)
	assert.Equal(t, "Goa", result.DestinationInfo.Name)
	assert.True(t, result.DestinationInfo.InSeason)
	assert.Equal(t, models.RankStats{Generated: 30, Filtered: 26}, result.Stats)
}

func TestEngine_HardBudgetExcludesExpensiveFlight(t *testing.T) {
	inv := fixtureInventory()
	inv.Flights = append(inv.Flights, models.Flight{Airline: "Charter", Price: 25000, Stops: 0, Time: "09:00"})

	raw := models.RawIntent{Budget: &models.Budget{Max: 25000, ConstraintType: models.ConstraintHard}}
	result := newTestEngine(WithTopN(100)).Rank(raw, inv)

	require.NotEmpty(t, result.Trips)
	for _, trip := range result.Trips {
		assert.NotEqual(t, "Charter", trip.Flight.Airline)
		assert.LessOrEqual(t, trip.TotalCost, 25000.0)
	}
}

func TestEngine_HardConnectivityKeepsMetroHotels(t *testing.T) {
	hotels := make([]models.Hotel, 0, 6)
	for i := 0; i < 6; i++ {
		hotels = append(hotels, models.Hotel{Name: fmt.Sprintf("Hotel %d", i), PricePerNight: 2000, Rating: 4, NearMetro: i == 1 || i == 4})
	}
	inv := fixtureInventory()
	inv.Hotels = hotels

	raw := models.RawIntent{Connectivity: &models.Connectivity{Value: "nearMetro", ConstraintType: models.ConstraintHard}}
	result := newTestEngine(WithTopN(100)).Rank(raw, inv)

	assert.Equal(t, 10, result.TotalOptions)
	for _, trip := range result.Trips {
		assert.True(t, trip.Hotel.NearMetro)
		assert.Contains(t, []string{"Hotel 1", "Hotel 4"}, trip.Hotel.Name)
		assert.Equal(t, 100.0, trip.ScoreBreakdown.Components.Connectivity)
	}
}

func TestEngine_FewerStopsRankHigher(t *testing.T) {
	inv := Inventory{
		Flights: []models.Flight{
			{Airline: "TwoStop", Price: 5000, Stops: 2, Time: "12:00"},
			{Airline: "Direct", Price: 5000, Stops: 0, Time: "12:00"},
		},
		Hotels:     []models.Hotel{{Name: "Only", PricePerNight: 1000, Rating: 4}},
		Activities: inventory.Fixtures().Activities,
	}

	result := newTestEngine().Rank(models.RawIntent{}, inv)

	require.Len(t, result.Trips, 2)
	assert.Equal(t, "Direct", result.Trips[0].Flight.Airline)
	assert.Equal(t, 100.0, result.Trips[0].ScoreBreakdown.Components.Flight)
	assert.Equal(t, 30.0, result.Trips[1].ScoreBreakdown.Components.Flight)
	assert.Greater(t, result.Trips[0].ScoreBreakdown.FinalScore, result.Trips[1].ScoreBreakdown.FinalScore)
}

func TestEngine_NoSurvivors(t *testing.T) {
	raw := models.RawIntent{Budget: &models.Budget{Max: 1000, ConstraintType: models.ConstraintHard}}

	result := newTestEngine().Rank(raw, fixtureInventory())

	assert.Equal(t, 200, result.Status)
	assert.Equal(t, 0, result.TotalOptions)
	assert.NotNil(t, result.Trips)
	assert.Empty(t, result.Trips)
}

func TestEngine_EmptyInventory(t *testing.T) {
	result := newTestEngine().Rank(models.RawIntent{Destination: "goa"}, Inventory{})

	assert.Empty(t, result.Trips)
	assert.Equal(t, 0, result.TotalOptions)
	assert.Equal(t, "", result.Query.Destination)
}

// ==========================
// Properties
// ==========================

func TestEngine_Properties(t *testing.T) {
	intents := []models.RawIntent{
		{},
		{Destination: "Jaipur", Interests: softInterests("history", "food")},
		{Destination: "bom", Budget: &models.Budget{Max: 40000, ConstraintType: models.ConstraintOptimize}},
		{Connectivity: &models.Connectivity{Value: "nearMetro", ConstraintType: models.ConstraintSoft}, Mood: "romantic"},
		{Destination: "kochi", DurationDays: days(6), Interests: softInterests("nature")},
	}

	engine := newTestEngine()
	for i, raw := range intents {
		t.Run(fmt.Sprintf("intent_%d", i), func(t *testing.T) {
			inv := fixtureInventory()
			result := engine.Rank(raw, inv)

			expected := result.TotalOptions
			if expected > DefaultTopN {
				expected = DefaultTopN
			}
			assert.Len(t, result.Trips, expected)

			for _, trip := range result.Trips {
				assert.GreaterOrEqual(t, trip.Score, 40)
				assert.LessOrEqual(t, trip.Score, 95)
				assert.InDelta(t, 1.0, trip.ScoreBreakdown.Weights.Sum(), 1e-9)
			}
			assert.True(t, sort.SliceIsSorted(result.Trips, func(a, b int) bool {
				return result.Trips[a].Score > result.Trips[b].Score
			}))

			again := engine.Rank(raw, inv)
			assert.Equal(t, result, again)
		})
	}
}

func TestEngine_ConcurrentRanks(t *testing.T) {
	engine := newTestEngine()
	inv := fixtureInventory()
	raw := models.RawIntent{Destination: "goa", Interests: softInterests("beach")}
	want := engine.Rank(raw, inv)

	var wg sync.WaitGroup
	results := make([]*models.RankResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Rank(raw, inv)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestEngine_TripIDs(t *testing.T) {
	result := newTestEngine().Rank(models.RawIntent{}, fixtureInventory())

	require.NotEmpty(t, result.Trips)
	assert.Equal(t, fmt.Sprintf("trip_IndiGo_LuxuryPalmsResort_%d", fixedNow.UnixMilli()), result.Trips[0].ID)
}

func TestInSeason(t *testing.T) {
	best := []string{"November", "December"}
	assert.True(t, inSeason("december", best))
	assert.True(t, inSeason("Nov", best))
	assert.False(t, inSeason("No", best))
	assert.False(t, inSeason("July", best))
	assert.False(t, inSeason("", best))
}

func TestDisplayName(t *testing.T) {
	dests := inventory.Fixtures().Destinations
	assert.Equal(t, "Goa", displayName("goa", dests))
	assert.Equal(t, "Atlantis", displayName("atlantis", dests))
	assert.Equal(t, PlaceholderDestination, displayName(PlaceholderDestination, dests))
	assert.Equal(t, "", displayName("", dests))
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkEngine_Rank(b *testing.B) {
	engine := NewEngine()
	inv := fixtureInventory()
	raw := models.RawIntent{
		Destination: "goa",
		Budget:      &models.Budget{Max: 30000, ConstraintType: models.ConstraintSoft},
		Interests:   softInterests("adventure", "beach"),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Rank(raw, inv)
	}
}
