package arrival

import "strings"

// Level is a coarse fullness level. Values follow the GTFS-Realtime
// OccupancyStatus vocabulary.
type Level string

const (
	LevelEmpty                   Level = "empty"
	LevelManySeatsAvailable      Level = "manySeatsAvailable"
	LevelFewSeatsAvailable       Level = "fewSeatsAvailable"
	LevelStandingRoomOnly        Level = "standingRoomOnly"
	LevelCrushedStandingRoomOnly Level = "crushedStandingRoomOnly"
	LevelFull                    Level = "full"
	LevelNotAcceptingPassengers  Level = "notAcceptingPassengers"
	LevelNoDataAvailable         Level = "noDataAvailable"
	LevelNotBoardable            Level = "notBoardable"
)

// LevelFromGTFS maps a GTFS-Realtime OccupancyStatus enum value to a Level.
func LevelFromGTFS(code int32) Level {
	switch code {
	case 0:
		return LevelEmpty
	case 1:
		return LevelManySeatsAvailable
	case 2:
		return LevelFewSeatsAvailable
	case 3:
		return LevelStandingRoomOnly
	case 4:
		return LevelCrushedStandingRoomOnly
	case 5:
		return LevelFull
	case 6:
		return LevelNotAcceptingPassengers
	case 8:
		return LevelNotBoardable
	default:
		return LevelNoDataAvailable
	}
}

// LevelFromSIRI maps a SIRI Occupancy value ("seatsAvailable",
// "standingAvailable", "full", ...) to a Level. The second result is false
// for an empty string.
func LevelFromSIRI(s string) (Level, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return "", false
	case v == "empty":
		return LevelEmpty, true
	case strings.HasPrefix(v, "many"):
		return LevelManySeatsAvailable, true
	case strings.Contains(v, "seats"):
		return LevelFewSeatsAvailable, true
	case strings.Contains(v, "crushed"):
		return LevelCrushedStandingRoomOnly, true
	case strings.Contains(v, "standing"):
		return LevelStandingRoomOnly, true
	case v == "full":
		return LevelFull, true
	case strings.HasPrefix(v, "notaccepting"):
		return LevelNotAcceptingPassengers, true
	case v == "notboardable":
		return LevelNotBoardable, true
	default:
		return LevelNoDataAvailable, true
	}
}

// Source names the field of an Occupancy that should be trusted.
type Source int

const (
	SourceNone Source = iota
	SourceStatus
	SourcePercentage
	SourceCount
)

// Occupancy carries up to three independently sourced load readings.
// A nil field was absent upstream; a non-nil field was reported.
type Occupancy struct {
	Status            *Level `json:"status,omitempty"`
	Percentage        *int   `json:"percentage,omitempty"`
	PassengerCount    *int   `json:"passengerCount,omitempty"`
	PassengerCapacity *int   `json:"passengerCapacity,omitempty"`
}

// Reported returns a pointer to v, marking a value as present.
func Reported[T any](v T) *T {
	return &v
}

// Empty reports whether no field was reported at all.
func (o *Occupancy) Empty() bool {
	return o == nil || (o.Status == nil && o.Percentage == nil && o.PassengerCount == nil && o.PassengerCapacity == nil)
}

// Authoritative returns the field to trust. An absolute count against a
// positive capacity beats a percentage, which beats a coarse status. A count
// without a capacity says nothing about how full the vehicle is.
func (o *Occupancy) Authoritative() Source {
	switch {
	case o == nil:
		return SourceNone
	case o.PassengerCount != nil && o.PassengerCapacity != nil && *o.PassengerCapacity > 0:
		return SourceCount
	case o.Percentage != nil:
		return SourcePercentage
	case o.Status != nil:
		return SourceStatus
	default:
		return SourceNone
	}
}

// Merge fills fields absent in o from other and returns the result.
// Fields already reported in o are kept.
func (o *Occupancy) Merge(other *Occupancy) *Occupancy {
	if other.Empty() {
		return o
	}
	var out Occupancy
	if o != nil {
		out = *o
	}
	if out.Status == nil {
		out.Status = other.Status
	}
	if out.Percentage == nil {
		out.Percentage = other.Percentage
	}
	if out.PassengerCount == nil {
		out.PassengerCount = other.PassengerCount
	}
	if out.PassengerCapacity == nil {
		out.PassengerCapacity = other.PassengerCapacity
	}
	return &out
}
