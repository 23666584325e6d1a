// internal/ranking/scorers.go
package ranking

import (
	"math"
	"strconv"
	"strings"

	"trip-ranker/internal/models"
)

const (
	neutralScore = 50.0

	lateDepartureHour  = 21
	earlyDepartureHour = 5
	inconvenientTime   = 15.0

	metroSatisfied   = 100.0
	metroUnsatisfied = 30.0
)

// stopScores is indexed by stop count; three or more stops score 0.
var stopScores = []float64{100, 60, 30}

// BudgetScore is 100 for a free trip and reaches 0 at twice the budget.
func BudgetScore(totalCost float64, budget models.Budget) float64 {
	if !budget.HasMax() {
		return neutralScore
	}
	return clamp(100-(totalCost/budget.Max)*100, 0, 100)
}

// FlightScore rewards fewer stops and penalizes departures between 21:00 and 05:59.
func FlightScore(f models.Flight) float64 {
	score := 0.0
	if f.Stops >= 0 && f.Stops < len(stopScores) {
		score = stopScores[f.Stops]
	}
	if hour, ok := departureHour(f.Time); ok && (hour >= lateDepartureHour || hour <= earlyDepartureHour) {
		score -= inconvenientTime
	}
	return clamp(score, 0, 100)
}

func HotelScore(h models.Hotel) float64 {
	return clamp(h.Rating/5*100, 0, 100)
}

func ConnectivityScore(h models.Hotel, conn models.Connectivity) float64 {
	switch conn.Value {
	case "":
		return neutralScore
	case models.ConnectivityNearMetro:
		if h.NearMetro {
			return metroSatisfied
		}
		return metroUnsatisfied
	default:
		return neutralScore
	}
}

// ActivityScore is the share of requested interests covered by matched
// activities, capped at 100. matched counts only activities that match an
// interest, so the placeholder activities of a fallback selection score 0.
func ActivityScore(matched, requested int) float64 {
	if requested <= 0 {
		return neutralScore
	}
	return clamp(float64(matched)/float64(requested)*100, 0, 100)
}

// ScoreCandidate fills c.Scores for the given intent.
func ScoreCandidate(c *models.Candidate, intent models.Intent) {
	c.Scores = models.ComponentScores{
		Budget:       BudgetScore(c.TotalCost, intent.Budget),
		Flight:       FlightScore(c.Flight),
		Hotel:        HotelScore(c.Hotel),
		Connectivity: ConnectivityScore(c.Hotel, intent.Connectivity),
		Activity:     ActivityScore(c.MatchedActivities, len(intent.Interests)),
	}
}

// departureHour reads the hour of "HH:MM" or "HH:MM AM".
func departureHour(t string) (int, bool) {
	t = strings.ToUpper(strings.TrimSpace(t))
	meridiem := ""
	if strings.HasSuffix(t, "AM") || strings.HasSuffix(t, "PM") {
		meridiem = t[len(t)-2:]
		t = strings.TrimSpace(t[:len(t)-2])
	}

	hh, _, found := strings.Cut(t, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}

	switch meridiem {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 12 {
			hour += 12
		}
	}
	return hour, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
