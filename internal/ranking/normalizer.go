// internal/ranking/normalizer.go
package ranking

import (
	"math"
	"strings"

	"trip-ranker/internal/models"
)

// DefaultDurationDays is used when the intent carries no usable duration.
const DefaultDurationDays = 3

// AliasTable maps lower-case airport codes and city synonyms to the canonical
// activity location.
type AliasTable map[string]string

// DefaultAliases covers the airports and alternate names of the bundled cities.
var DefaultAliases = AliasTable{
	"goi":        "goa",
	"bom":        "mumbai",
	"bombay":     "mumbai",
	"del":        "delhi",
	"new delhi":  "delhi",
	"jai":        "jaipur",
	"blr":        "bangalore",
	"bengaluru":  "bangalore",
	"hyd":        "hyderabad",
	"cok":        "kerala",
	"trv":        "kerala",
	"cochin":     "kerala",
	"kochi":      "kerala",
	"ixl":        "ladakh",
	"leh":        "ladakh",
	"leh-ladakh": "ladakh",
	"agr":        "agra",
}

// Resolve lower-cases dest and substitutes its canonical name when known.
func (a AliasTable) Resolve(dest string) string {
	key := strings.ToLower(strings.TrimSpace(dest))
	if canonical, ok := a[key]; ok {
		return canonical
	}
	return key
}

// Locations returns the distinct lower-case activity locations in catalog order.
func Locations(activities []models.Activity) []string {
	seen := make(map[string]bool, len(activities))
	out := make([]string, 0)
	for _, a := range activities {
		loc := strings.ToLower(strings.TrimSpace(a.Location))
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}
	return out
}

// NormalizeIntent fills defaults, canonicalizes constraint types, merges the
// mood into the interests and resolves the destination against the known
// locations. An unknown destination becomes "" so the search spans the whole
// catalog. It never fails.
func NormalizeIntent(raw models.RawIntent, aliases AliasTable, locations []string) models.Intent {
	intent := models.Intent{
		DurationDays:  normalizeDuration(raw.DurationDays),
		Mood:          strings.TrimSpace(raw.Mood),
		Origin:        strings.TrimSpace(raw.Origin),
		DepartureDate: strings.TrimSpace(raw.DepartureDate),
		Month:         strings.TrimSpace(raw.Month),
		Budget:        models.Budget{ConstraintType: models.ConstraintNone},
		Connectivity:  models.Connectivity{ConstraintType: models.ConstraintNone},
	}

	if raw.Budget != nil {
		intent.Budget.ConstraintType = models.ParseConstraintType(string(raw.Budget.ConstraintType))
		if raw.Budget.Max > 0 {
			intent.Budget.Max = raw.Budget.Max
		}
	}

	if raw.Connectivity != nil {
		intent.Connectivity.Value = strings.TrimSpace(raw.Connectivity.Value)
		if strings.EqualFold(intent.Connectivity.Value, models.ConnectivityNearMetro) {
			intent.Connectivity.Value = models.ConnectivityNearMetro
		}
		intent.Connectivity.ConstraintType = models.ParseConstraintType(string(raw.Connectivity.ConstraintType))
	}

	intent.Interests = normalizeInterests(raw.Interests, intent.Mood)
	intent.Destination = resolveDestination(raw.Destination, aliases, locations)

	return intent
}

func normalizeDuration(d *float64) int {
	if d == nil || *d <= 0 || *d != math.Trunc(*d) || *d > math.MaxInt32 {
		return DefaultDurationDays
	}
	return int(*d)
}

func normalizeInterests(raw []models.Interest, mood string) []models.Interest {
	out := make([]models.Interest, 0, len(raw)+1)
	for _, in := range raw {
		typ := strings.TrimSpace(in.Type)
		if typ == "" {
			continue
		}
		out = append(out, models.Interest{
			Type:           typ,
			ConstraintType: models.ParseConstraintType(string(in.ConstraintType)),
		})
	}

	if mood == "" {
		return out
	}
	for _, in := range out {
		if strings.EqualFold(in.Type, mood) {
			return out
		}
	}
	return append(out, models.Interest{Type: mood, ConstraintType: models.ConstraintSoft})
}

func resolveDestination(dest string, aliases AliasTable, locations []string) string {
	canonical := aliases.Resolve(dest)
	if canonical == "" {
		return ""
	}
	for _, loc := range locations {
		if loc == canonical {
			return canonical
		}
	}
	return ""
}
