package gtfsrt

import (
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// DecodeError reports bytes that are not a valid GTFS-Realtime FeedMessage.
type DecodeError struct {
	Size int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode gtfs-realtime feed (%d bytes): %v", e.Size, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses raw into a Feed. Truncated or malformed input, and input
// missing required fields, return a *DecodeError.
func Decode(raw []byte) (*Feed, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(raw, &fm); err != nil {
		return nil, &DecodeError{Size: len(raw), Err: err}
	}
	return FromMessage(&fm), nil
}

// FromMessage flattens an already decoded FeedMessage.
func FromMessage(fm *gtfsrtpb.FeedMessage) *Feed {
	feed := &Feed{}
	if fm.Header != nil && fm.Header.Timestamp != nil {
		feed.Timestamp = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		if e == nil || e.GetIsDeleted() {
			continue
		}
		if e.Vehicle != nil {
			feed.Vehicles = append(feed.Vehicles, vehicleRecord(e.GetId(), e.Vehicle))
		}
		if e.TripUpdate != nil {
			feed.TripUpdates = append(feed.TripUpdates, tripUpdateRecord(e.GetId(), e.TripUpdate))
		}
	}
	return feed
}

func vehicleRecord(entityID string, v *gtfsrtpb.VehiclePosition) VehicleRecord {
	rec := VehicleRecord{
		EntityID: entityID,
		TripID:   v.GetTrip().GetTripId(),
		RouteID:  v.GetTrip().GetRouteId(),
	}
	if v.OccupancyStatus != nil {
		status := int32(*v.OccupancyStatus)
		rec.OccupancyStatus = &status
	}
	if v.OccupancyPercentage != nil {
		pct := int(*v.OccupancyPercentage)
		rec.OccupancyPercentage = &pct
	}
	return rec
}

func tripUpdateRecord(entityID string, tu *gtfsrtpb.TripUpdate) TripUpdateRecord {
	rec := TripUpdateRecord{
		EntityID: entityID,
		TripID:   tu.GetTrip().GetTripId(),
		RouteID:  tu.GetTrip().GetRouteId(),
	}
	if tu.Trip != nil && tu.Trip.DirectionId != nil {
		dir := *tu.Trip.DirectionId
		rec.DirectionID = &dir
	}

	rec.StopTimes = make([]StopTime, 0, len(tu.StopTimeUpdate))
	for _, stu := range tu.StopTimeUpdate {
		if stu == nil {
			continue
		}
		st := StopTime{
			StopID:  stu.GetStopId(),
			Skipped: stu.GetScheduleRelationship() == gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED,
		}
		if stu.Arrival != nil && stu.Arrival.Time != nil {
			t := *stu.Arrival.Time
			st.Arrival = &t
		}
		if stu.Departure != nil && stu.Departure.Time != nil {
			t := *stu.Departure.Time
			st.Departure = &t
		}
		rec.StopTimes = append(rec.StopTimes, st)
	}
	return rec
}
