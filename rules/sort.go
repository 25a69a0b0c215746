package rules

import (
	"sort"

	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
)

// DefaultDisplayHorizon is the display cap in minutes.
const DefaultDisplayHorizon = 30

// SortAndCap orders records by MinutesUntil, keeping feed order for ties,
// and drops records later than maxMinutes.
func SortAndCap(records []arrival.Record, maxMinutes int) []arrival.Record {
	out := make([]arrival.Record, 0, len(records))
	for _, r := range records {
		if r.MinutesUntil <= maxMinutes {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MinutesUntil < out[j].MinutesUntil
	})
	return out
}
