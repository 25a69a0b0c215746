package rules

import (
	"reflect"
	"testing"

	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
)

func minutesOf(records []arrival.Record) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.MinutesUntil)
	}
	return out
}

func TestSortAndCap(t *testing.T) {
	in := []arrival.Record{{MinutesUntil: 31}, {MinutesUntil: 2}, {MinutesUntil: 29}}

	got := SortAndCap(in, 30)

	if want := []int{2, 29}; !reflect.DeepEqual(minutesOf(got), want) {
		t.Fatalf("expected %v, got %v", want, minutesOf(got))
	}
	if in[0].MinutesUntil != 31 {
		t.Error("input slice must not be reordered")
	}
	t.Logf("✓ sortAndCap -> %v", minutesOf(got))
}

func TestSortAndCap_NonDecreasingAndStable(t *testing.T) {
	in := []arrival.Record{
		{MinutesUntil: 5, TripID: "a"},
		{MinutesUntil: 3, TripID: "b"},
		{MinutesUntil: 5, TripID: "c"},
		{MinutesUntil: 30, TripID: "d"},
		{MinutesUntil: 0, TripID: "e"},
	}

	got := SortAndCap(in, DefaultDisplayHorizon)

	for i := 1; i < len(got); i++ {
		if got[i].MinutesUntil < got[i-1].MinutesUntil {
			t.Fatalf("output not sorted: %v", minutesOf(got))
		}
	}
	for _, r := range got {
		if r.MinutesUntil > DefaultDisplayHorizon {
			t.Errorf("record %s exceeds cap", r.TripID)
		}
	}
	if got[2].TripID != "a" || got[3].TripID != "c" {
		t.Errorf("ties should keep input order, got %s then %s", got[2].TripID, got[3].TripID)
	}
	if len(got) != 5 {
		t.Errorf("a record exactly at the cap is kept, got %d records", len(got))
	}
}

func TestDedupeByTrip_FirstListWins(t *testing.T) {
	listA := []arrival.Record{{TripID: "T1", Station: "Caton Ave", MinutesUntil: 4}}
	listB := []arrival.Record{
		{TripID: "T1", Station: "Clarkson Ave", MinutesUntil: 6},
		{TripID: "T2", Station: "Clarkson Ave", MinutesUntil: 9},
	}

	got := DedupeByTrip(listA, listB)

	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].TripID != "T1" || got[0].Station != "Caton Ave" {
		t.Errorf("expected the listA instance of T1, got %+v", got[0])
	}
	t.Logf("✓ T1 kept from %s", got[0].Station)
}

func TestDedupeByTrip_IdempotentAndKeepsAnonymous(t *testing.T) {
	in := []arrival.Record{
		{TripID: "T1", MinutesUntil: 1},
		{MinutesUntil: 2},
		{TripID: "T1", MinutesUntil: 3},
		{MinutesUntil: 2},
		{TripID: "T2", MinutesUntil: 4},
	}

	once := DedupeByTrip(in)
	twice := DedupeByTrip(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedupe is not idempotent:\n once=%v\ntwice=%v", once, twice)
	}
	if want := []int{1, 2, 2, 4}; !reflect.DeepEqual(minutesOf(once), want) {
		t.Errorf("expected %v, got %v", want, minutesOf(once))
	}
}

func TestVariantPolicy_Resolve(t *testing.T) {
	local := VariantPolicy{Mode: PolicyRelabel, Variant: arrival.VariantLocal}
	limitedOnly := VariantPolicy{Mode: PolicyFilter, Variant: arrival.VariantLimited}

	testCases := []struct {
		name      string
		policy    VariantPolicy
		raw       arrival.ServiceVariant
		wantFinal arrival.ServiceVariant
		wantKeep  bool
	}{
		{"relabel limited to local", local, arrival.VariantLimited, arrival.VariantLocal, true},
		{"relabel local stays local", local, arrival.VariantLocal, arrival.VariantLocal, true},
		{"filter keeps limited", limitedOnly, arrival.VariantLimited, arrival.VariantLimited, true},
		{"filter drops local", limitedOnly, arrival.VariantLocal, arrival.VariantLocal, false},
		{"no policy passes through", VariantPolicy{}, arrival.VariantLimited, arrival.VariantLimited, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			final, keep := tc.policy.Resolve(tc.raw)
			if final != tc.wantFinal || keep != tc.wantKeep {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tc.raw, final, keep, tc.wantFinal, tc.wantKeep)
			}
		})
	}
}

func TestVariantPolicies_OrderIndependent(t *testing.T) {
	policies := VariantPolicies{
		"Caton Ave":    {Mode: PolicyRelabel, Variant: arrival.VariantLocal},
		"Clarkson Ave": {Mode: PolicyFilter, Variant: arrival.VariantLimited},
	}
	in := []arrival.Record{
		{TripID: "1", Station: "Caton Ave", Variant: arrival.VariantLimited},
		{TripID: "2", Station: "Clarkson Ave", Variant: arrival.VariantLocal},
		{TripID: "3", Station: "Clarkson Ave", Variant: arrival.VariantLimited},
		{TripID: "4", Station: "Elsewhere", Variant: arrival.VariantLimited},
	}
	reversed := []arrival.Record{in[3], in[2], in[1], in[0]}

	byTrip := func(records []arrival.Record) map[string]arrival.ServiceVariant {
		m := map[string]arrival.ServiceVariant{}
		for _, r := range records {
			m[r.TripID] = r.Variant
		}
		return m
	}

	got, gotReversed := byTrip(policies.Apply(in)), byTrip(policies.Apply(reversed))
	want := map[string]arrival.ServiceVariant{
		"1": arrival.VariantLocal,
		"3": arrival.VariantLimited,
		"4": arrival.VariantLimited,
	}
	if !reflect.DeepEqual(got, want) || !reflect.DeepEqual(gotReversed, want) {
		t.Errorf("expected %v for both orders, got %v and %v", want, got, gotReversed)
	}
}

func TestVariantPolicy_Validate(t *testing.T) {
	if err := (VariantPolicy{Mode: PolicyFilter}).Validate(); err == nil {
		t.Error("filter without variant should be rejected")
	}
	if err := (VariantPolicy{Mode: "sometimes", Variant: arrival.VariantLocal}).Validate(); err == nil {
		t.Error("unknown mode should be rejected")
	}
	if err := (VariantPolicy{Mode: PolicyRelabel, Variant: arrival.VariantLocal}).Validate(); err != nil {
		t.Errorf("valid policy rejected: %v", err)
	}
}

func TestFilterByHeadsignDirection(t *testing.T) {
	in := []arrival.Record{
		{TripID: "1", Headsign: "BED STUY FULTON ST"},
		{TripID: "2", Headsign: "Bed-Stuy Restoration Plz"},
		{TripID: "3", Headsign: "FULTON ST via ROGERS"},
		{TripID: "4", Headsign: "KINGS PLAZA"},
		{TripID: "5"},
	}

	got := FilterByHeadsignDirection(in, "Fulton", "bed stuy", "bed-stuy")

	var ids []string
	for _, r := range got {
		ids = append(ids, r.TripID)
	}
	if want := []string{"1", "2", "3"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}

	if all := FilterByHeadsignDirection(in, ""); len(all) != len(in) {
		t.Errorf("empty token should keep all records, got %d", len(all))
	}
}

func TestHydrate(t *testing.T) {
	count := 20
	status := arrival.LevelFull
	vehicleByTrip := map[string]*arrival.Occupancy{
		"T1": {PassengerCount: &count, Status: &status},
	}
	own := arrival.LevelManySeatsAvailable
	in := []arrival.Record{
		{TripID: "T1", Occupancy: &arrival.Occupancy{Status: &own}},
		{TripID: "T2"},
		{},
	}

	got := Hydrate(in, vehicleByTrip)

	occ := got[0].Occupancy
	if occ == nil || occ.PassengerCount == nil || *occ.PassengerCount != 20 {
		t.Fatalf("expected hydrated passenger count, got %+v", occ)
	}
	if *occ.Status != arrival.LevelManySeatsAvailable {
		t.Errorf("hydration must not overwrite a reported status, got %s", *occ.Status)
	}
	if got[1].Occupancy != nil || got[2].Occupancy != nil {
		t.Error("records without matching trips stay untouched")
	}
	if in[0].Occupancy.PassengerCount != nil {
		t.Error("input record was mutated")
	}
}

func TestLabelStation(t *testing.T) {
	got := LabelStation([]arrival.Record{{TripID: "1"}, {TripID: "2", Station: "old"}}, "Caton Ave")
	for _, r := range got {
		if r.Station != "Caton Ave" {
			t.Errorf("record %s has station %q", r.TripID, r.Station)
		}
	}
}
