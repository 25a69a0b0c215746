package converter

import (
	"math"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
	"github.com/theoremus-urban-solutions/transit-arrivals/route"
	"github.com/theoremus-urban-solutions/transit-arrivals/siri"
	"github.com/theoremus-urban-solutions/transit-arrivals/utils"
)

// limitedMarkers mark skip-stop service in destination text.
var limitedMarkers = []string{"LTD", "LIMITED"}

// BusResult is the output of ExtractBus.
type BusResult struct {
	Arrivals []arrival.Record
	// VehicleByTrip holds the occupancy seen for each trip so records
	// fetched through another call can be hydrated with it.
	VehicleByTrip map[string]*arrival.Occupancy
}

// ExtractBus reads every visit of resp for routeID. Visits on another line
// are skipped. A nil response yields an empty result.
func ExtractBus(resp *siri.Response, routeID string, window Window, now time.Time) BusResult {
	result := BusResult{VehicleByTrip: map[string]*arrival.Occupancy{}}
	id := route.Normalize(routeID)
	window = window.orDefault(BusWindow)

	for _, visit := range resp.Visits() {
		journey := visit.MonitoredVehicleJourney
		if journey == nil || journey.MonitoredCall == nil {
			continue
		}
		if !sameLine(id, journey) {
			continue
		}

		at, ok := bestTime(journey.MonitoredCall)
		if !ok {
			continue
		}
		minutes := utils.MinutesUntil(at, now)
		if !window.Contains(minutes) {
			continue
		}

		headsign := strings.TrimSpace(string(journey.DestinationName))
		rec := arrival.Record{
			Route:        lineName(id, journey),
			MinutesUntil: max(0, minutes),
			PredictedAt:  at.UTC(),
			TripID:       journey.TripID(),
			Variant:      ClassifyVariant(headsign),
			Headsign:     headsign,
			Occupancy:    busOccupancy(journey),
		}
		result.Arrivals = append(result.Arrivals, rec)
		if rec.TripID != "" && rec.Occupancy != nil {
			result.VehicleByTrip[rec.TripID] = rec.Occupancy
		}
	}
	return result
}

// ClassifyVariant returns Limited when headsign carries a limited-service
// marker, Local otherwise.
func ClassifyVariant(headsign string) arrival.ServiceVariant {
	upper := strings.ToUpper(headsign)
	for _, m := range limitedMarkers {
		if strings.Contains(upper, m) {
			return arrival.VariantLimited
		}
	}
	return arrival.VariantLocal
}

func sameLine(id route.Identity, j *siri.MonitoredVehicleJourney) bool {
	if id.Canonical == "" {
		return true
	}
	token := j.LineRef
	if token == "" {
		token = string(j.PublishedLineName)
	}
	return token == "" || id.Matches(token)
}

func lineName(id route.Identity, j *siri.MonitoredVehicleJourney) string {
	if name := strings.TrimSpace(string(j.PublishedLineName)); name != "" {
		return name
	}
	return id.Canonical
}

// bestTime prefers the expected arrival over the aimed one.
func bestTime(call *siri.MonitoredCall) (time.Time, bool) {
	for _, s := range []string{call.ExpectedArrivalTime, call.AimedArrivalTime} {
		if s == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func busOccupancy(j *siri.MonitoredVehicleJourney) *arrival.Occupancy {
	occ := &arrival.Occupancy{}
	if level, ok := arrival.LevelFromSIRI(j.Occupancy); ok {
		occ.Status = arrival.Reported(level)
	}
	if ext := j.MonitoredCall.Extensions; ext != nil && ext.Capacities != nil {
		caps := ext.Capacities
		if caps.EstimatedPassengerCount != nil {
			occ.PassengerCount = arrival.Reported(*caps.EstimatedPassengerCount)
		}
		if caps.EstimatedPassengerCapacity != nil {
			occ.PassengerCapacity = arrival.Reported(*caps.EstimatedPassengerCapacity)
		}
	}
	if occ.Percentage == nil && occ.PassengerCount != nil && occ.PassengerCapacity != nil && *occ.PassengerCapacity > 0 {
		pct := int(math.Round(float64(*occ.PassengerCount) * 100 / float64(*occ.PassengerCapacity)))
		occ.Percentage = arrival.Reported(min(100, pct))
	}
	if occ.Empty() {
		return nil
	}
	return occ
}
