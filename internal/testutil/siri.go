package testutil

import (
	"encoding/json"
	"testing"
	"time"
)

// VisitSpec describes one MonitoredStopVisit. Zero values are omitted from
// the generated JSON.
type VisitSpec struct {
	LineRef           string
	PublishedLineName string
	DestinationName   string
	TripID            string
	Occupancy         string
	StopPointRef      string
	Expected          time.Time
	Aimed             time.Time
	PassengerCount    *int
	PassengerCapacity *int
}

// StopMonitoringJSON renders visits as a Bus Time StopMonitoring document.
func StopMonitoringJSON(t testing.TB, visits ...VisitSpec) []byte {
	t.Helper()

	out := make([]map[string]any, 0, len(visits))
	for _, v := range visits {
		call := map[string]any{"StopPointRef": v.StopPointRef}
		if !v.Expected.IsZero() {
			call["ExpectedArrivalTime"] = v.Expected.Format(time.RFC3339Nano)
		}
		if !v.Aimed.IsZero() {
			call["AimedArrivalTime"] = v.Aimed.Format(time.RFC3339Nano)
		}
		if v.PassengerCount != nil || v.PassengerCapacity != nil {
			caps := map[string]any{}
			if v.PassengerCount != nil {
				caps["EstimatedPassengerCount"] = *v.PassengerCount
			}
			if v.PassengerCapacity != nil {
				caps["EstimatedPassengerCapacity"] = *v.PassengerCapacity
			}
			call["Extensions"] = map[string]any{"Capacities": caps}
		}

		journey := map[string]any{
			"LineRef":       v.LineRef,
			"MonitoredCall": call,
		}
		if v.PublishedLineName != "" {
			journey["PublishedLineName"] = v.PublishedLineName
		}
		if v.DestinationName != "" {
			journey["DestinationName"] = v.DestinationName
		}
		if v.TripID != "" {
			journey["FramedVehicleJourneyRef"] = map[string]any{
				"DataFrameRef":           "2024-01-01",
				"DatedVehicleJourneyRef": v.TripID,
			}
		}
		if v.Occupancy != "" {
			journey["Occupancy"] = v.Occupancy
		}
		out = append(out, map[string]any{"MonitoredVehicleJourney": journey})
	}

	doc := map[string]any{
		"Siri": map[string]any{
			"ServiceDelivery": map[string]any{
				"ResponseTimestamp": time.Now().Format(time.RFC3339),
				"StopMonitoringDelivery": []any{
					map[string]any{"MonitoredStopVisit": out},
				},
			},
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal stop monitoring fixture: %v", err)
	}
	return raw
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
