package radar

import (
	"sort"
	"strings"

	"github.com/fernandomartin18/UbicAir/models"
)

// Filter returns the flights whose id, origin or destination contains the
// query, case-insensitively. A blank or whitespace-only query returns the
// source list untouched. The source is never mutated.
func Filter(flights []models.TelemetryFlight, query string) []models.TelemetryFlight {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return flights
	}

	matched := make([]models.TelemetryFlight, 0, len(flights))
	for _, f := range flights {
		if strings.Contains(strings.ToLower(f.FlightID), term) ||
			strings.Contains(strings.ToLower(f.Origin), term) ||
			strings.Contains(strings.ToLower(f.Destination), term) {
			matched = append(matched, f)
		}
	}
	return matched
}

// SortByProgress returns a copy of the list ordered by descending progress.
func SortByProgress(flights []models.TelemetryFlight) []models.TelemetryFlight {
	sorted := make([]models.TelemetryFlight, len(flights))
	copy(sorted, flights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Progress > sorted[j].Progress
	})
	return sorted
}
