package rules

import "github.com/theoremus-urban-solutions/transit-arrivals/arrival"

// DedupeByTrip concatenates lists in order and keeps the first record seen
// for every trip ID. Records without a trip ID are always kept. Callers
// choose precedence by the order of lists.
func DedupeByTrip(lists ...[]arrival.Record) []arrival.Record {
	seen := map[string]struct{}{}
	var out []arrival.Record
	for _, list := range lists {
		for _, r := range list {
			if r.TripID != "" {
				if _, dup := seen[r.TripID]; dup {
					continue
				}
				seen[r.TripID] = struct{}{}
			}
			out = append(out, r)
		}
	}
	return out
}
