package arrival

import "time"

// ServiceVariant distinguishes full-stop and skip-stop bus service.
type ServiceVariant string

const (
	VariantUnknown ServiceVariant = ""
	VariantLocal   ServiceVariant = "local"
	VariantLimited ServiceVariant = "limited"
)

// Connection is a secondary ETA at a downstream stop of the same trip.
type Connection struct {
	MinutesUntil int    `json:"minutes"`
	Label        string `json:"label"`
}

// Record is one predicted arrival at a monitored stop.
type Record struct {
	Route        string         `json:"route"`
	MinutesUntil int            `json:"minutes"`
	PredictedAt  time.Time      `json:"arrivalTime"`
	TripID       string         `json:"tripId,omitempty"`
	Station      string         `json:"location,omitempty"`
	Variant      ServiceVariant `json:"serviceVariant,omitempty"`
	Headsign     string         `json:"headsign,omitempty"`
	Occupancy    *Occupancy     `json:"occupancy,omitempty"`
	Connection   *Connection    `json:"connection,omitempty"`
}

// IsLimited reports whether the record was classified as Limited service.
func (r Record) IsLimited() bool {
	return r.Variant == VariantLimited
}

// WithConnection attaches c only when it is strictly later than the primary
// arrival. An inconsistent connection is dropped rather than emitted.
func (r *Record) WithConnection(c Connection) bool {
	if c.MinutesUntil <= r.MinutesUntil {
		r.Connection = nil
		return false
	}
	r.Connection = &c
	return true
}
