package rules

import "github.com/theoremus-urban-solutions/transit-arrivals/arrival"

// Hydrate fills occupancy fields each record lacks from vehicleByTrip.
// Fields a record already carries are kept.
func Hydrate(records []arrival.Record, vehicleByTrip map[string]*arrival.Occupancy) []arrival.Record {
	out := make([]arrival.Record, 0, len(records))
	for _, r := range records {
		if occ, ok := vehicleByTrip[r.TripID]; ok && r.TripID != "" {
			r.Occupancy = r.Occupancy.Merge(occ)
		}
		out = append(out, r)
	}
	return out
}

// LabelStation sets Station on every record.
func LabelStation(records []arrival.Record, station string) []arrival.Record {
	out := make([]arrival.Record, 0, len(records))
	for _, r := range records {
		r.Station = station
		out = append(out, r)
	}
	return out
}
