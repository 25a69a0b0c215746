// Package testutil builds GTFS-Realtime and SIRI fixtures for tests.
package testutil

import (
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// StopTimeSpec describes one stop-time update. Zero times are left unset.
type StopTimeSpec struct {
	StopID    string
	Arrival   int64
	Departure int64
}

// TripSpec describes a trip-update entity.
type TripSpec struct {
	TripID      string
	RouteID     string
	DirectionID *uint32
	StopTimes   []StopTimeSpec
}

// VehicleSpec describes a vehicle-position entity. Nil occupancy fields are
// left unset.
type VehicleSpec struct {
	TripID              string
	RouteID             string
	OccupancyStatus     *gtfsrtpb.VehiclePosition_OccupancyStatus
	OccupancyPercentage *uint32
}

// FeedBuilder accumulates entities for a FeedMessage.
type FeedBuilder struct {
	timestamp uint64
	entities  []*gtfsrtpb.FeedEntity
}

// NewFeed starts a feed with header timestamp ts.
func NewFeed(ts int64) *FeedBuilder {
	return &FeedBuilder{timestamp: uint64(ts)}
}

// Trip adds a trip-update entity.
func (b *FeedBuilder) Trip(spec TripSpec) *FeedBuilder {
	stus := make([]*gtfsrtpb.TripUpdate_StopTimeUpdate, 0, len(spec.StopTimes))
	for _, st := range spec.StopTimes {
		stu := &gtfsrtpb.TripUpdate_StopTimeUpdate{StopId: proto.String(st.StopID)}
		if st.Arrival != 0 {
			stu.Arrival = &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(st.Arrival)}
		}
		if st.Departure != 0 {
			stu.Departure = &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(st.Departure)}
		}
		stus = append(stus, stu)
	}

	trip := &gtfsrtpb.TripDescriptor{
		TripId:      proto.String(spec.TripID),
		RouteId:     proto.String(spec.RouteID),
		DirectionId: spec.DirectionID,
	}
	b.entities = append(b.entities, &gtfsrtpb.FeedEntity{
		Id: proto.String("tu-" + spec.TripID),
		TripUpdate: &gtfsrtpb.TripUpdate{
			Trip:           trip,
			StopTimeUpdate: stus,
		},
	})
	return b
}

// Vehicle adds a vehicle-position entity.
func (b *FeedBuilder) Vehicle(spec VehicleSpec) *FeedBuilder {
	b.entities = append(b.entities, &gtfsrtpb.FeedEntity{
		Id: proto.String("vp-" + spec.TripID),
		Vehicle: &gtfsrtpb.VehiclePosition{
			Trip: &gtfsrtpb.TripDescriptor{
				TripId:  proto.String(spec.TripID),
				RouteId: proto.String(spec.RouteID),
			},
			OccupancyStatus:     spec.OccupancyStatus,
			OccupancyPercentage: spec.OccupancyPercentage,
		},
	})
	return b
}

// Message returns the assembled FeedMessage.
func (b *FeedBuilder) Message() *gtfsrtpb.FeedMessage {
	return &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(b.timestamp),
		},
		Entity: b.entities,
	}
}

// Bytes marshals the feed, failing the test on error.
func (b *FeedBuilder) Bytes(t testing.TB) []byte {
	t.Helper()
	raw, err := proto.Marshal(b.Message())
	if err != nil {
		t.Fatalf("Failed to marshal feed: %v", err)
	}
	return raw
}

// Status returns a pointer to a GTFS-Realtime occupancy status.
func Status(s gtfsrtpb.VehiclePosition_OccupancyStatus) *gtfsrtpb.VehiclePosition_OccupancyStatus {
	return &s
}

// Direction returns a pointer to a direction_id value.
func Direction(d uint32) *uint32 {
	return &d
}
