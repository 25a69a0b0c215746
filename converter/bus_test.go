package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
	"github.com/theoremus-urban-solutions/transit-arrivals/internal/testutil"
	"github.com/theoremus-urban-solutions/transit-arrivals/siri"
)

func decodeSIRI(t *testing.T, raw []byte) *siri.Response {
	t.Helper()
	var resp siri.Response
	require.NoError(t, json.Unmarshal(raw, &resp))
	return &resp
}

func TestExtractBus_LimitedClassification(t *testing.T) {
	now := time.Now()
	resp := decodeSIRI(t, testutil.StopMonitoringJSON(t, testutil.VisitSpec{
		LineRef:         "MTA NYCT_B41",
		DestinationName: "FLATBUSH AV LTD",
		StopPointRef:    "MTA_303242",
		Expected:        now.Add(7 * time.Minute),
	}))

	got := ExtractBus(resp, "B41", Window{}, now)

	require.Len(t, got.Arrivals, 1)
	assert.Equal(t, 7, got.Arrivals[0].MinutesUntil)
	assert.Equal(t, arrival.VariantLimited, got.Arrivals[0].Variant)
	assert.Equal(t, "FLATBUSH AV LTD", got.Arrivals[0].Headsign)
	assert.Equal(t, "B41", got.Arrivals[0].Route)
}

func TestClassifyVariant(t *testing.T) {
	testCases := []struct {
		headsign string
		want     arrival.ServiceVariant
	}{
		{"FLATBUSH AV LTD", arrival.VariantLimited},
		{"Downtown Bklyn Limited", arrival.VariantLimited},
		{"downtown ltd", arrival.VariantLimited},
		{"DOWNTOWN BKLYN CADMAN PLZ", arrival.VariantLocal},
		{"", arrival.VariantLocal},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, ClassifyVariant(tc.headsign), tc.headsign)
	}
}

func TestExtractBus_WindowAndClamp(t *testing.T) {
	now := time.Now()
	resp := decodeSIRI(t, testutil.StopMonitoringJSON(t,
		testutil.VisitSpec{LineRef: "MTA NYCT_B49", TripID: "skewed", Expected: now.Add(-2 * time.Minute)},
		testutil.VisitSpec{LineRef: "MTA NYCT_B49", TripID: "gone", Expected: now.Add(-3 * time.Minute)},
		testutil.VisitSpec{LineRef: "MTA NYCT_B49", TripID: "late", Expected: now.Add(119 * time.Minute)},
		testutil.VisitSpec{LineRef: "MTA NYCT_B49", TripID: "far", Expected: now.Add(120 * time.Minute)},
	))

	got := ExtractBus(resp, "B49", Window{}, now)

	require.Len(t, got.Arrivals, 2)
	assert.Equal(t, "skewed", got.Arrivals[0].TripID)
	assert.Equal(t, 0, got.Arrivals[0].MinutesUntil, "negative predictions are clamped")
	assert.Equal(t, "late", got.Arrivals[1].TripID)
	for _, rec := range got.Arrivals {
		assert.GreaterOrEqual(t, rec.MinutesUntil, 0)
		assert.Less(t, rec.MinutesUntil, 120)
	}
}

func TestExtractBus_AimedFallback(t *testing.T) {
	now := time.Now()
	resp := decodeSIRI(t, testutil.StopMonitoringJSON(t,
		testutil.VisitSpec{LineRef: "MTA NYCT_B41", TripID: "aimed", Aimed: now.Add(12 * time.Minute)},
		testutil.VisitSpec{LineRef: "MTA NYCT_B41", TripID: "both", Aimed: now.Add(20 * time.Minute), Expected: now.Add(9 * time.Minute)},
		testutil.VisitSpec{LineRef: "MTA NYCT_B41", TripID: "none"},
	))

	got := ExtractBus(resp, "B41", Window{}, now)

	require.Len(t, got.Arrivals, 2)
	assert.Equal(t, 12, got.Arrivals[0].MinutesUntil)
	assert.Equal(t, 9, got.Arrivals[1].MinutesUntil, "expected time wins over aimed time")
}

func TestExtractBus_PassengerLoad(t *testing.T) {
	now := time.Now()
	resp := decodeSIRI(t, testutil.StopMonitoringJSON(t,
		testutil.VisitSpec{
			LineRef:           "MTA NYCT_B41",
			TripID:            "T1",
			Occupancy:         "seatsAvailable",
			Expected:          now.Add(4 * time.Minute),
			PassengerCount:    testutil.Int(31),
			PassengerCapacity: testutil.Int(62),
		},
		testutil.VisitSpec{LineRef: "MTA NYCT_B41", TripID: "T2", Expected: now.Add(6 * time.Minute)},
	))

	got := ExtractBus(resp, "B41", Window{}, now)

	require.Len(t, got.Arrivals, 2)
	occ := got.Arrivals[0].Occupancy
	require.NotNil(t, occ)
	assert.Equal(t, 31, *occ.PassengerCount)
	assert.Equal(t, 62, *occ.PassengerCapacity)
	assert.Equal(t, 50, *occ.Percentage)
	assert.Equal(t, arrival.LevelFewSeatsAvailable, *occ.Status)
	assert.Equal(t, arrival.SourceCount, occ.Authoritative())
	assert.Nil(t, got.Arrivals[1].Occupancy)

	require.Contains(t, got.VehicleByTrip, "T1")
	assert.NotContains(t, got.VehicleByTrip, "T2")
	assert.Same(t, occ, got.VehicleByTrip["T1"])
}

func TestExtractBus_SkipsOtherLines(t *testing.T) {
	now := time.Now()
	resp := decodeSIRI(t, testutil.StopMonitoringJSON(t,
		testutil.VisitSpec{LineRef: "MTA NYCT_B44+", PublishedLineName: "B44-SBS", TripID: "sbs", Expected: now.Add(3 * time.Minute)},
		testutil.VisitSpec{LineRef: "MTA NYCT_B44", PublishedLineName: "B44", TripID: "local", Expected: now.Add(5 * time.Minute)},
	))

	got := ExtractBus(resp, "B44-SBS", Window{}, now)

	require.Len(t, got.Arrivals, 1)
	assert.Equal(t, "sbs", got.Arrivals[0].TripID)
	assert.Equal(t, "B44-SBS", got.Arrivals[0].Route)
}

func TestExtractBus_NilResponse(t *testing.T) {
	got := ExtractBus(nil, "B41", Window{}, time.Now())
	assert.Empty(t, got.Arrivals)
	assert.NotNil(t, got.VehicleByTrip)
}
