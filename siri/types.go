package siri

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Response is the top-level SIRI envelope.
type Response struct {
	Siri struct {
		ServiceDelivery ServiceDelivery `json:"ServiceDelivery"`
	} `json:"Siri"`
}

// ServiceDelivery wraps the StopMonitoring deliveries.
type ServiceDelivery struct {
	ResponseTimestamp      string                   `json:"ResponseTimestamp"`
	StopMonitoringDelivery []StopMonitoringDelivery `json:"StopMonitoringDelivery"`
}

// StopMonitoringDelivery holds the visits for one monitoring request.
type StopMonitoringDelivery struct {
	ResponseTimestamp  string              `json:"ResponseTimestamp"`
	ValidUntil         string              `json:"ValidUntil,omitempty"`
	MonitoredStopVisit []MonitoredStopVisit `json:"MonitoredStopVisit"`
	ErrorCondition     *ErrorCondition     `json:"ErrorCondition,omitempty"`
}

// ErrorCondition is how Bus Time reports a rejected request, for example
// an invalid API key, inside an otherwise successful response.
type ErrorCondition struct {
	Description Text `json:"Description,omitempty"`
	OtherError  *struct {
		ErrorText string `json:"ErrorText"`
	} `json:"OtherError,omitempty"`
}

func (e *ErrorCondition) Error() string {
	if e.OtherError != nil && e.OtherError.ErrorText != "" {
		return "siri error: " + e.OtherError.ErrorText
	}
	if e.Description != "" {
		return "siri error: " + string(e.Description)
	}
	return "siri error condition"
}

// MonitoredStopVisit is a single predicted visit at the monitored stop.
type MonitoredStopVisit struct {
	RecordedAtTime          string                   `json:"RecordedAtTime"`
	MonitoredVehicleJourney *MonitoredVehicleJourney `json:"MonitoredVehicleJourney"`
}

// MonitoredVehicleJourney is the journey metadata of a visit.
type MonitoredVehicleJourney struct {
	LineRef                 string                   `json:"LineRef"`
	DirectionRef            string                   `json:"DirectionRef,omitempty"`
	FramedVehicleJourneyRef *FramedVehicleJourneyRef `json:"FramedVehicleJourneyRef,omitempty"`
	PublishedLineName       Text                     `json:"PublishedLineName,omitempty"`
	DestinationName         Text                     `json:"DestinationName,omitempty"`
	Occupancy               string                   `json:"Occupancy,omitempty"`
	VehicleRef              string                   `json:"VehicleRef,omitempty"`
	MonitoredCall           *MonitoredCall           `json:"MonitoredCall,omitempty"`
}

// TripID returns the dated vehicle journey reference, or "".
func (j *MonitoredVehicleJourney) TripID() string {
	if j == nil || j.FramedVehicleJourneyRef == nil {
		return ""
	}
	return j.FramedVehicleJourneyRef.DatedVehicleJourneyRef
}

// FramedVehicleJourneyRef identifies a trip on a service date.
type FramedVehicleJourneyRef struct {
	DataFrameRef           string `json:"DataFrameRef"`
	DatedVehicleJourneyRef string `json:"DatedVehicleJourneyRef"`
}

// MonitoredCall is the prediction for the monitored stop.
type MonitoredCall struct {
	StopPointRef          string          `json:"StopPointRef"`
	StopPointName         Text            `json:"StopPointName,omitempty"`
	AimedArrivalTime      string          `json:"AimedArrivalTime,omitempty"`
	ExpectedArrivalTime   string          `json:"ExpectedArrivalTime,omitempty"`
	ExpectedDepartureTime string          `json:"ExpectedDepartureTime,omitempty"`
	Extensions            *CallExtensions `json:"Extensions,omitempty"`
}

// CallExtensions carries the Bus Time extension block.
type CallExtensions struct {
	Capacities *Capacities `json:"Capacities,omitempty"`
}

// Capacities is the automatic passenger count estimate.
type Capacities struct {
	EstimatedPassengerCount    *int `json:"EstimatedPassengerCount,omitempty"`
	EstimatedPassengerCapacity *int `json:"EstimatedPassengerCapacity,omitempty"`
	DistanceToNextStop         *int `json:"DistanceToNextStop,omitempty"`
}

// Text is a natural-language field that may arrive as "x" or ["x"].
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*t = ""
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var parts []string
		if err := json.Unmarshal(b, &parts); err != nil {
			return fmt.Errorf("siri text array: %w", err)
		}
		*t = Text(strings.Join(parts, " "))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("siri text: %w", err)
	}
	*t = Text(s)
	return nil
}

// Visits returns every visit across all deliveries, in order.
func (r *Response) Visits() []MonitoredStopVisit {
	if r == nil {
		return nil
	}
	var out []MonitoredStopVisit
	for _, d := range r.Siri.ServiceDelivery.StopMonitoringDelivery {
		out = append(out, d.MonitoredStopVisit...)
	}
	return out
}

// Err returns the first delivery error condition, if any.
func (r *Response) Err() error {
	if r == nil {
		return nil
	}
	for _, d := range r.Siri.ServiceDelivery.StopMonitoringDelivery {
		if d.ErrorCondition != nil {
			return d.ErrorCondition
		}
	}
	return nil
}
