// internal/ranking/engine.go
package ranking

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"trip-ranker/internal/models"
)

// Inventory is the read-only input of one ranking run.
type Inventory struct {
	Flights      []models.Flight
	Hotels       []models.Hotel
	Activities   []models.Activity
	Destinations []models.Destination
}

// Engine runs normalize, weigh, generate, filter, score and rank. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	topN       int
	aliases    AliasTable
	priorities PriorityTable
	now        func() time.Time
}

type Option func(*Engine)

// WithTopN sets how many trips are returned. Values below 1 are ignored.
func WithTopN(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

func WithAliases(a AliasTable) Option {
	return func(e *Engine) { e.aliases = a }
}

func WithPriorities(p PriorityTable) Option {
	return func(e *Engine) { e.priorities = p }
}

// WithClock replaces the clock used for trip ids.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		topN:       DefaultTopN,
		aliases:    DefaultAliases,
		priorities: DefaultPriorities,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Normalize resolves raw against the activity locations of the catalog.
func (e *Engine) Normalize(raw models.RawIntent, activities []models.Activity) models.Intent {
	return NormalizeIntent(raw, e.aliases, Locations(activities))
}

// Rank normalizes raw and ranks it.
func (e *Engine) Rank(raw models.RawIntent, inv Inventory) *models.RankResult {
	return e.RankIntent(e.Normalize(raw, inv.Activities), inv)
}

// RankIntent ranks an already normalized intent. An empty result is valid
// and means no bundle satisfied the hard constraints.
func (e *Engine) RankIntent(intent models.Intent, inv Inventory) *models.RankResult {
	weights := e.priorities.Weights(intent)

	candidates := GenerateCandidates(inv.Flights, inv.Hotels, inv.Activities, intent)
	survivors := FilterCandidates(candidates, intent)
	for i := range survivors {
		ScoreCandidate(&survivors[i], intent)
	}
	ranked, total := RankCandidates(survivors, weights, e.topN)

	stamp := e.now().UnixMilli()
	trips := make([]models.Trip, 0, len(ranked))
	for _, c := range ranked {
		trips = append(trips, e.toTrip(c, intent, weights, inv.Destinations, stamp))
	}

	result := &models.RankResult{
		Status: 200,
		Query: models.QuerySummary{
			Destination: displayName(intent.Destination, inv.Destinations),
			Duration:    intent.DurationDays,
			Budget:      budgetLabel(intent.Budget),
			Interests:   intent.InterestTypes(),
		},
		Trips:        trips,
		TotalOptions: total,
		Stats: models.RankStats{
			Generated: len(candidates),
			Filtered:  len(candidates) - len(survivors),
		},
	}

	if dest, ok := findDestination(intent.Destination, inv.Destinations); ok {
		result.DestinationInfo = &models.DestinationInfo{
			Name:       dest.Name,
			BestMonths: dest.BestMonths,
			Weather:    dest.Weather,
			InSeason:   inSeason(intent.Month, dest.BestMonths),
		}
	}

	return result
}

func (e *Engine) toTrip(c models.Candidate, intent models.Intent, w models.WeightVector, dests []models.Destination, stamp int64) models.Trip {
	return models.Trip{
		ID:          fmt.Sprintf("trip_%s_%s_%d", stripSpaces(c.Flight.Airline), stripSpaces(c.Hotel.Name), stamp),
		Destination: displayName(c.Destination, dests),
		Duration:    intent.DurationDays,
		TotalCost:   math.Round(c.TotalCost),
		Breakdown: models.CostBreakdown{
			Flight:     c.Flight.Price,
			Hotel:      c.HotelCost,
			Activities: c.ActivityCost,
		},
		Score: c.DisplayScore,
		ScoreBreakdown: models.ScoreBreakdown{
			FinalScore:    c.FinalScore,
			DisplayScore:  c.DisplayScore,
			Weights:       w,
			Components:    c.Scores,
			Contributions: Contributions(c.Scores, w),
		},
		Flight:     c.Flight,
		Hotel:      c.Hotel,
		Activities: append([]models.Activity{}, c.Activities...),
	}
}

func budgetLabel(b models.Budget) string {
	if !b.HasMax() {
		return "Not specified"
	}
	return "₹" + strconv.FormatFloat(b.Max, 'f', -1, 64)
}

func findDestination(key string, dests []models.Destination) (models.Destination, bool) {
	if key == "" {
		return models.Destination{}, false
	}
	for _, d := range dests {
		if strings.EqualFold(d.Name, key) {
			return d, true
		}
	}
	return models.Destination{}, false
}

// displayName prefers the catalog spelling of a location key.
func displayName(key string, dests []models.Destination) string {
	if key == "" || key == PlaceholderDestination {
		return key
	}
	if d, ok := findDestination(key, dests); ok {
		return d.Name
	}
	r, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(r)) + key[size:]
}

// inSeason accepts full month names and three-letter abbreviations.
func inSeason(month string, best []string) bool {
	month = strings.ToLower(strings.TrimSpace(month))
	if len(month) < 3 {
		return false
	}
	for _, m := range best {
		if strings.HasPrefix(strings.ToLower(m), month) {
			return true
		}
	}
	return false
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
