package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
)

// Band is a coarse fill level used for colouring.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Mode selects the classification rules of a transit mode.
type Mode int

const (
	ModeRail Mode = iota
	ModeBus
)

// OccupancyDisplay is how full a vehicle looks to a rider.
type OccupancyDisplay struct {
	Percent int    `json:"percent"`
	Label   string `json:"label"`
	Band    Band   `json:"band"`
}

// ClassifyOccupancy converts raw occupancy to a display value, or nil when
// there is nothing worth showing. The field shown is the one
// Occupancy.Authoritative picks. Rail feeds report EMPTY for
// every vehicle, so a rail reading that is only EMPTY is suppressed.
func ClassifyOccupancy(occ *arrival.Occupancy, mode Mode) *OccupancyDisplay {
	if occ.Empty() || (mode == ModeRail && suppressedRail(occ)) {
		return nil
	}

	var d OccupancyDisplay
	switch occ.Authoritative() {
	case arrival.SourceCount:
		count, capacity := *occ.PassengerCount, *occ.PassengerCapacity
		d.Percent = min(100, int(math.Floor(float64(count)*100/float64(capacity)+0.5)))
		d.Label = fmt.Sprintf("%d/%d", count, capacity)
	case arrival.SourcePercentage:
		d.Percent = max(0, min(100, *occ.Percentage))
	case arrival.SourceStatus:
		d.Percent, d.Label = statusDisplay(*occ.Status)
	default:
		return nil
	}
	d.Band = bandOf(d.Percent)
	return &d
}

func suppressedRail(occ *arrival.Occupancy) bool {
	return occ.Status != nil && *occ.Status == arrival.LevelEmpty &&
		occ.Percentage == nil && occ.PassengerCount == nil && occ.PassengerCapacity == nil
}

// statusDisplay checks "standing" before "crushed" so that
// crushedStandingRoomOnly reads as Standing.
func statusDisplay(level arrival.Level) (int, string) {
	s := strings.ToLower(string(level))
	switch {
	case strings.Contains(s, "empty"), strings.Contains(s, "many"):
		return 20, "Empty"
	case strings.Contains(s, "few"):
		return 50, "Seats"
	case strings.Contains(s, "standing"):
		return 80, "Standing"
	case strings.Contains(s, "full"), strings.Contains(s, "crushed"):
		return 100, "Full"
	default:
		return 30, ""
	}
}

func bandOf(percent int) Band {
	switch {
	case percent > 80:
		return BandHigh
	case percent > 50:
		return BandMedium
	default:
		return BandLow
	}
}
