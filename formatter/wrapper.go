package formatter

import (
	"time"

	"github.com/theoremus-urban-solutions/transit-arrivals/aggregator"
	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
	"github.com/theoremus-urban-solutions/transit-arrivals/utils"
)

// ArrivalView is one arrival as served to clients.
type ArrivalView struct {
	Route            string              `json:"route"`
	Minutes          int                 `json:"minutes"`
	ArrivalTime      string              `json:"arrivalTime"`
	TripID           string              `json:"tripId,omitempty"`
	Station          string              `json:"station,omitempty"`
	Location         string              `json:"location,omitempty"`
	ServiceVariant   string              `json:"serviceVariant,omitempty"`
	IsLimited        bool                `json:"isLimited,omitempty"`
	Headsign         string              `json:"headsign,omitempty"`
	Occupancy        *arrival.Occupancy  `json:"occupancy,omitempty"`
	OccupancyDisplay *OccupancyDisplay   `json:"occupancyDisplay,omitempty"`
	Connection       *arrival.Connection `json:"connection,omitempty"`
}

// Payload is the body of a successful arrivals response.
type Payload struct {
	Subway    map[string][]ArrivalView `json:"subway"`
	Buses     map[string][]ArrivalView `json:"buses"`
	Timestamp string                   `json:"timestamp"`
	Warnings  []string                 `json:"warnings,omitempty"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// BuildPayload converts an aggregation result. Every group key of res is
// present in the payload with a non-nil list.
func BuildPayload(res *aggregator.Result) *Payload {
	p := &Payload{
		Subway:    make(map[string][]ArrivalView, len(res.Subway)),
		Buses:     make(map[string][]ArrivalView, len(res.Buses)),
		Timestamp: utils.Iso8601Millis(res.GeneratedAt),
		Warnings:  res.Warnings,
	}
	for key, records := range res.Subway {
		p.Subway[key] = views(records, ModeRail)
	}
	for key, records := range res.Buses {
		p.Buses[key] = views(records, ModeBus)
	}
	return p
}

// NewHealthResponse reports the service as up at now.
func NewHealthResponse(now time.Time) HealthResponse {
	return HealthResponse{Status: "ok", Timestamp: utils.Iso8601Millis(now)}
}

func views(records []arrival.Record, mode Mode) []ArrivalView {
	out := make([]ArrivalView, 0, len(records))
	for _, r := range records {
		out = append(out, view(r, mode))
	}
	return out
}

func view(r arrival.Record, mode Mode) ArrivalView {
	v := ArrivalView{
		Route:          r.Route,
		Minutes:        r.MinutesUntil,
		ArrivalTime:    utils.Iso8601Millis(r.PredictedAt),
		TripID:         r.TripID,
		ServiceVariant: string(r.Variant),
		IsLimited:      r.IsLimited(),
		Headsign:       r.Headsign,
		Connection:     r.Connection,
	}
	// Rail records are grouped by station, bus records by line.
	if mode == ModeRail {
		v.Station = r.Station
	} else {
		v.Location = r.Station
	}
	if display := ClassifyOccupancy(r.Occupancy, mode); display != nil {
		v.Occupancy = r.Occupancy
		v.OccupancyDisplay = display
	}
	return v
}
