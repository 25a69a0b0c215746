package converter

import (
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
	"github.com/theoremus-urban-solutions/transit-arrivals/gtfsrt"
	"github.com/theoremus-urban-solutions/transit-arrivals/internal/testutil"
)

var churchAve = StopMatcher{Tokens: []string{"D28", "N"}, DirectionMarker: "N"}

func decode(t *testing.T, b *testutil.FeedBuilder) *gtfsrt.Feed {
	t.Helper()
	feed, err := gtfsrt.Decode(b.Bytes(t))
	require.NoError(t, err)
	return feed
}

func TestExtractRail_WrongStopYieldsNothing(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	feed := decode(t, testutil.NewFeed(now.Unix()).Trip(testutil.TripSpec{
		TripID:  "Q-1",
		RouteID: "Q",
		StopTimes: []testutil.StopTimeSpec{
			{StopID: "R16N", Arrival: now.Unix() + 600},
		},
	}))

	got := ExtractRail(feed, RailTarget{Route: "Q", Station: "Church Ave", Matcher: churchAve}, now)
	assert.Empty(t, got)
}

func TestExtractRail_ConnectionLookahead(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	feed := decode(t, testutil.NewFeed(now.Unix()).Trip(testutil.TripSpec{
		TripID:  "B-1",
		RouteID: "B",
		StopTimes: []testutil.StopTimeSpec{
			{StopID: "D28N", Arrival: now.Unix() + 300},
			{StopID: "D15N", Arrival: now.Unix() + 900},
		},
	}))

	got := ExtractRail(feed, RailTarget{
		Route:      "B",
		Station:    "Church Ave",
		Matcher:    churchAve,
		Connection: &ConnectionStop{StopID: "D15N", Label: "Rockefeller Ctr"},
	}, now)

	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].MinutesUntil)
	assert.Equal(t, "B", got[0].Route)
	assert.Equal(t, "Church Ave", got[0].Station)
	assert.Equal(t, "B-1", got[0].TripID)
	assert.Equal(t, time.Unix(now.Unix()+300, 0).UTC(), got[0].PredictedAt)
	require.NotNil(t, got[0].Connection)
	assert.Equal(t, arrival.Connection{MinutesUntil: 15, Label: "Rockefeller Ctr"}, *got[0].Connection)
}

func TestExtractRail_ConnectionNotLaterIsDropped(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	feed := decode(t, testutil.NewFeed(now.Unix()).Trip(testutil.TripSpec{
		TripID:  "B-2",
		RouteID: "B",
		StopTimes: []testutil.StopTimeSpec{
			{StopID: "D28N", Arrival: now.Unix() + 300},
			// Same minute as the primary stop: inconsistent upstream data.
			{StopID: "D15N", Arrival: now.Unix() + 310},
		},
	}))

	got := ExtractRail(feed, RailTarget{
		Route:      "B",
		Matcher:    churchAve,
		Connection: &ConnectionStop{StopID: "D15N", Label: "Rockefeller Ctr"},
	}, now)

	require.Len(t, got, 1)
	assert.Nil(t, got[0].Connection)
}

func TestExtractRail_ConnectionOnlySearchesLaterStops(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	feed := decode(t, testutil.NewFeed(now.Unix()).Trip(testutil.TripSpec{
		TripID:  "B-3",
		RouteID: "B",
		StopTimes: []testutil.StopTimeSpec{
			{StopID: "D15N", Arrival: now.Unix() + 1200},
			{StopID: "D28N", Arrival: now.Unix() + 300},
		},
	}))

	got := ExtractRail(feed, RailTarget{
		Route:      "B",
		Matcher:    churchAve,
		Connection: &ConnectionStop{StopID: "D15N", Label: "Rockefeller Ctr"},
	}, now)

	require.Len(t, got, 1)
	assert.Nil(t, got[0].Connection, "a stop already passed cannot be a connection")
}

func TestExtractRail_IntakeWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	b := testutil.NewFeed(now.Unix())
	offsets := []int64{-120, 0, 59 * 60, 60 * 60, 90 * 60}
	for i, off := range offsets {
		b.Trip(testutil.TripSpec{
			TripID:    string(rune('a' + i)),
			RouteID:   "Q",
			StopTimes: []testutil.StopTimeSpec{{StopID: "D28N", Arrival: now.Unix() + off}},
		})
	}

	got := ExtractRail(decode(t, b), RailTarget{Route: "Q", Matcher: churchAve}, now)

	require.Len(t, got, 2)
	for _, rec := range got {
		assert.True(t, RailWindow.Contains(rec.MinutesUntil), "minutes %d outside window", rec.MinutesUntil)
	}
}

func TestExtractRail_DepartureFallbackAndOtherRoutes(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	feed := decode(t, testutil.NewFeed(now.Unix()).
		Trip(testutil.TripSpec{
			TripID:    "Q-dep",
			RouteID:   "Q",
			StopTimes: []testutil.StopTimeSpec{{StopID: "D28N", Departure: now.Unix() + 240}},
		}).
		Trip(testutil.TripSpec{
			TripID:    "B-other",
			RouteID:   "B",
			StopTimes: []testutil.StopTimeSpec{{StopID: "D28N", Arrival: now.Unix() + 120}},
		}))

	got := ExtractRail(feed, RailTarget{Route: "Q", Matcher: churchAve}, now)

	require.Len(t, got, 1)
	assert.Equal(t, "Q-dep", got[0].TripID)
	assert.Equal(t, 4, got[0].MinutesUntil)
}

func TestExtractRail_DuplicateStopMatchesAreKept(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	feed := decode(t, testutil.NewFeed(now.Unix()).Trip(testutil.TripSpec{
		TripID:  "Q-dup",
		RouteID: "Q",
		StopTimes: []testutil.StopTimeSpec{
			{StopID: "D28N", Arrival: now.Unix() + 120},
			{StopID: "D28N", Arrival: now.Unix() + 180},
		},
	}))

	got := ExtractRail(feed, RailTarget{Route: "Q", Matcher: churchAve}, now)
	assert.Len(t, got, 2)
}

func TestExtractRail_OccupancyEmptyIsReported(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	feed := decode(t, testutil.NewFeed(now.Unix()).
		Vehicle(testutil.VehicleSpec{
			TripID:          "Q-occ",
			RouteID:         "Q",
			OccupancyStatus: testutil.Status(gtfsrtpb.VehiclePosition_EMPTY),
		}).
		Vehicle(testutil.VehicleSpec{TripID: "Q-none", RouteID: "Q"}).
		Trip(testutil.TripSpec{
			TripID:    "Q-occ",
			RouteID:   "Q",
			StopTimes: []testutil.StopTimeSpec{{StopID: "D28N", Arrival: now.Unix() + 120}},
		}).
		Trip(testutil.TripSpec{
			TripID:    "Q-none",
			RouteID:   "Q",
			StopTimes: []testutil.StopTimeSpec{{StopID: "D28N", Arrival: now.Unix() + 180}},
		}))

	got := ExtractRail(feed, RailTarget{Route: "Q", Matcher: churchAve}, now)

	require.Len(t, got, 2)
	require.NotNil(t, got[0].Occupancy, "a reported EMPTY must stay distinguishable from no data")
	require.NotNil(t, got[0].Occupancy.Status)
	assert.Equal(t, arrival.LevelEmpty, *got[0].Occupancy.Status)
	assert.Nil(t, got[0].Occupancy.Percentage)
	assert.Nil(t, got[1].Occupancy)
}

func TestExtractRail_DirectionIDFallback(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	feed := decode(t, testutil.NewFeed(now.Unix()).Trip(testutil.TripSpec{
		TripID:      "2-1",
		RouteID:     "2",
		DirectionID: testutil.Direction(1),
		StopTimes:   []testutil.StopTimeSpec{{StopID: "241", Arrival: now.Unix() + 420}},
	}))

	matcher := PatternStop([]string{"241"}, "N", testutil.Direction(1))
	got := ExtractRail(feed, RailTarget{Route: "2", Station: "Winthrop St", Matcher: matcher}, now)

	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].MinutesUntil)
}

func TestExtractRail_NilFeed(t *testing.T) {
	assert.Nil(t, ExtractRail(nil, RailTarget{Route: "Q", Matcher: churchAve}, time.Now()))
}
