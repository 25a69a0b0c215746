package gtfsrt

// Feed is a decoded GTFS-Realtime message.
type Feed struct {
	// Timestamp is the header timestamp in epoch seconds, zero if absent.
	Timestamp   int64
	Vehicles    []VehicleRecord
	TripUpdates []TripUpdateRecord
}

// VehicleRecord is the part of a vehicle-position entity the pipeline uses.
type VehicleRecord struct {
	EntityID string
	TripID   string
	RouteID  string

	// nil when the feed did not send the field. A non-nil zero is a
	// reported EMPTY status or 0 percent.
	OccupancyStatus     *int32
	OccupancyPercentage *int
}

// HasOccupancy reports whether either occupancy field was sent.
func (v VehicleRecord) HasOccupancy() bool {
	return v.OccupancyStatus != nil || v.OccupancyPercentage != nil
}

// TripUpdateRecord is one trip's ordered stop-time predictions.
type TripUpdateRecord struct {
	EntityID    string
	TripID      string
	RouteID     string
	DirectionID *uint32
	StopTimes   []StopTime
}

// StopTime is a single stop-time prediction in epoch seconds.
type StopTime struct {
	StopID    string
	Arrival   *int64
	Departure *int64
	Skipped   bool
}

// PredictedTime returns the arrival time, falling back to the departure
// time. A zero timestamp counts as missing.
func (s StopTime) PredictedTime() (int64, bool) {
	if s.Arrival != nil && *s.Arrival != 0 {
		return *s.Arrival, true
	}
	if s.Departure != nil && *s.Departure != 0 {
		return *s.Departure, true
	}
	return 0, false
}
