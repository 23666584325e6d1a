// internal/models/trip.go
package models

import (
	"encoding/json"
	"strings"
)

// ConstraintType is the declared strength of a preference.
type ConstraintType string

const (
	ConstraintNone     ConstraintType = "none"
	ConstraintSoft     ConstraintType = "soft"
	ConstraintOptimize ConstraintType = "optimize"
	ConstraintHard     ConstraintType = "hard"
)

// ParseConstraintType maps any casing of hard/soft/optimize to its constant.
// Everything else, including the empty string, is none.
func ParseConstraintType(s string) ConstraintType {
	switch ConstraintType(strings.ToLower(strings.TrimSpace(s))) {
	case ConstraintHard:
		return ConstraintHard
	case ConstraintOptimize:
		return ConstraintOptimize
	case ConstraintSoft:
		return ConstraintSoft
	default:
		return ConstraintNone
	}
}

func (c *ConstraintType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*c = ConstraintNone
		return nil
	}
	*c = ParseConstraintType(s)
	return nil
}

type Budget struct {
	Max            float64        `json:"max,omitempty"`
	ConstraintType ConstraintType `json:"constraint_type"`
}

// HasMax reports whether a spending ceiling was given.
func (b Budget) HasMax() bool {
	return b.Max > 0
}

// ConnectivityNearMetro is the only connectivity value the scorers understand.
const ConnectivityNearMetro = "nearMetro"

type Connectivity struct {
	Value          string         `json:"value,omitempty"`
	ConstraintType ConstraintType `json:"constraint_type"`
}

// Interest is one activity preference. A bare JSON string decodes as a soft interest.
type Interest struct {
	Type           string         `json:"type"`
	ConstraintType ConstraintType `json:"constraint_type"`
}

func (i *Interest) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.Type = s
		i.ConstraintType = ConstraintSoft
		return nil
	}

	type plain Interest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = Interest(p)
	return nil
}

// RawIntent is the intent as produced by extraction or posted by a client.
// Every field is optional.
type RawIntent struct {
	Destination   string        `json:"destination,omitempty"`
	DurationDays  *float64      `json:"duration_days,omitempty"`
	Budget        *Budget       `json:"budget,omitempty"`
	Connectivity  *Connectivity `json:"connectivity,omitempty"`
	Interests     []Interest    `json:"interests,omitempty"`
	Mood          string        `json:"mood,omitempty"`
	Origin        string        `json:"origin,omitempty"`
	DepartureDate string        `json:"departure_date,omitempty"`
	Month         string        `json:"month,omitempty"`
}

// Intent is a normalized RawIntent: duration is positive, constraint types are
// canonical and Interests is never nil.
type Intent struct {
	Destination   string       `json:"destination"`
	DurationDays  int          `json:"duration_days"`
	Budget        Budget       `json:"budget"`
	Connectivity  Connectivity `json:"connectivity"`
	Interests     []Interest   `json:"interests"`
	Mood          string       `json:"mood,omitempty"`
	Origin        string       `json:"origin,omitempty"`
	DepartureDate string       `json:"departure_date,omitempty"`
	Month         string       `json:"month,omitempty"`
}

// InterestTypes returns the interest type names in order.
func (i Intent) InterestTypes() []string {
	out := make([]string, 0, len(i.Interests))
	for _, in := range i.Interests {
		out = append(out, in.Type)
	}
	return out
}

type Flight struct {
	Airline  string  `json:"airline"`
	Price    float64 `json:"price"`
	Stops    int     `json:"stops"`
	Time     string  `json:"time"`
	Duration string  `json:"duration,omitempty"`
}

type Hotel struct {
	Name          string   `json:"name"`
	PricePerNight float64  `json:"pricePerNight"`
	NearMetro     bool     `json:"nearMetro"`
	Rating        float64  `json:"rating"`
	Amenities     []string `json:"amenities,omitempty"`
	Image         string   `json:"image,omitempty"`
}

type Activity struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	Moods       []string `json:"moods,omitempty"`
	Price       float64  `json:"price"`
	Duration    string   `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Destination is display metadata for a known location.
type Destination struct {
	Name       string   `json:"name"`
	BestMonths []string `json:"bestMonths"`
	Weather    string   `json:"weather"`
	Timezone   string   `json:"timezone,omitempty"`
	Currency   string   `json:"currency,omitempty"`
}

type WeightVector struct {
	Budget       float64 `json:"budget"`
	Flight       float64 `json:"flight"`
	Hotel        float64 `json:"hotel"`
	Connectivity float64 `json:"connectivity"`
	Activity     float64 `json:"activity"`
}

func (w WeightVector) Sum() float64 {
	return w.Budget + w.Flight + w.Hotel + w.Connectivity + w.Activity
}

type ComponentScores struct {
	Budget       float64 `json:"budget"`
	Flight       float64 `json:"flight"`
	Hotel        float64 `json:"hotel"`
	Connectivity float64 `json:"connectivity"`
	Activity     float64 `json:"activity"`
}

// Candidate is one flight, hotel and activity bundle under evaluation.
type Candidate struct {
	Index             int
	Flight            Flight
	Hotel             Hotel
	Activities        []Activity
	MatchedActivities int
	Destination       string
	HotelCost         float64
	ActivityCost      float64
	TotalCost         float64
	Scores            ComponentScores
	FinalScore        float64
	DisplayScore      int
}

// Contribution is one axis of a trip's weighted score.
type Contribution struct {
	Factor       string  `json:"factor"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

type ScoreBreakdown struct {
	FinalScore    float64         `json:"finalScore"`
	DisplayScore  int             `json:"displayScore"`
	Weights       WeightVector    `json:"weights"`
	Components    ComponentScores `json:"components"`
	Contributions []Contribution  `json:"contributions"`
}

type CostBreakdown struct {
	Flight     float64 `json:"flight"`
	Hotel      float64 `json:"hotel"`
	Activities float64 `json:"activities"`
}

// Trip is a ranked candidate in its response shape.
type Trip struct {
	ID             string         `json:"id"`
	Destination    string         `json:"destination"`
	Duration       int            `json:"duration"`
	TotalCost      float64        `json:"totalCost"`
	Breakdown      CostBreakdown  `json:"breakdown"`
	Score          int            `json:"score"`
	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"`
	Flight         Flight         `json:"flight"`
	Hotel          Hotel          `json:"hotel"`
	Activities     []Activity     `json:"activities"`
}

type QuerySummary struct {
	Destination string   `json:"destination"`
	Duration    int      `json:"duration"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
}

type DestinationInfo struct {
	Name       string   `json:"name"`
	BestMonths []string `json:"bestMonths"`
	Weather    string   `json:"weather"`
	InSeason   bool     `json:"inSeason"`
}

// RankStats counts candidates at each pipeline stage.
type RankStats struct {
	Generated int `json:"generated"`
	Filtered  int `json:"filtered"`
}

// RankResult is the full response of one ranking invocation.
type RankResult struct {
	Status          int              `json:"status"`
	SearchID        string           `json:"searchId,omitempty"`
	Query           QuerySummary     `json:"query"`
	Trips           []Trip           `json:"trips"`
	TotalOptions    int              `json:"totalOptions"`
	DestinationInfo *DestinationInfo `json:"destinationInfo,omitempty"`
	FlightSource    string           `json:"flightSource,omitempty"`
	Stats           RankStats        `json:"-"`
}
