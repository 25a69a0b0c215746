package converter

import (
	"time"

	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
	"github.com/theoremus-urban-solutions/transit-arrivals/gtfsrt"
	"github.com/theoremus-urban-solutions/transit-arrivals/route"
	"github.com/theoremus-urban-solutions/transit-arrivals/utils"
)

// ConnectionStop is a downstream stop whose ETA is reported alongside the
// primary arrival.
type ConnectionStop struct {
	StopID string
	Label  string
}

// RailTarget selects one route at one stop of a rail feed.
type RailTarget struct {
	Route      string
	Station    string
	Matcher    StopMatcher
	Connection *ConnectionStop
	// Window defaults to RailWindow.
	Window Window
}

// ExtractRail returns one record per matching stop-time of every trip of
// target.Route in feed. Records come out in feed order.
func ExtractRail(feed *gtfsrt.Feed, target RailTarget, now time.Time) []arrival.Record {
	if feed == nil {
		return nil
	}
	id := route.Normalize(target.Route)
	window := target.Window.orDefault(RailWindow)

	occupancyByTrip := railOccupancy(feed, id)

	var out []arrival.Record
	for _, tu := range feed.TripUpdates {
		if !id.Matches(tu.RouteID) {
			continue
		}
		for i, st := range tu.StopTimes {
			if st.Skipped || !target.Matcher.Match(st.StopID, tu.DirectionID) {
				continue
			}
			ts, ok := st.PredictedTime()
			if !ok {
				continue
			}
			minutes := utils.MinutesUntilUnix(ts, now)
			if !window.Contains(minutes) {
				continue
			}

			rec := arrival.Record{
				Route:        id.Canonical,
				MinutesUntil: minutes,
				PredictedAt:  time.Unix(ts, 0).UTC(),
				TripID:       tu.TripID,
				Station:      target.Station,
			}
			if occ, ok := occupancyByTrip[tu.TripID]; ok {
				rec.Occupancy = occ
			}
			if target.Connection != nil {
				if c, ok := connectionAfter(tu.StopTimes[i+1:], *target.Connection, now); ok {
					rec.WithConnection(c)
				}
			}
			out = append(out, rec)
		}
	}
	return out
}

// railOccupancy maps trip IDs to the occupancy of vehicles on route id.
// A reported EMPTY status is kept: some feeds send it for every vehicle and
// display code needs to tell it apart from no data.
func railOccupancy(feed *gtfsrt.Feed, id route.Identity) map[string]*arrival.Occupancy {
	out := map[string]*arrival.Occupancy{}
	for _, v := range feed.Vehicles {
		if v.TripID == "" || !id.Matches(v.RouteID) || !v.HasOccupancy() {
			continue
		}
		occ := &arrival.Occupancy{}
		if v.OccupancyStatus != nil {
			occ.Status = arrival.Reported(arrival.LevelFromGTFS(*v.OccupancyStatus))
		}
		if v.OccupancyPercentage != nil {
			occ.Percentage = arrival.Reported(*v.OccupancyPercentage)
		}
		out[v.TripID] = occ
	}
	return out
}

// connectionAfter finds stop in the rest of a trip's stop-time list.
func connectionAfter(rest []gtfsrt.StopTime, stop ConnectionStop, now time.Time) (arrival.Connection, bool) {
	for _, st := range rest {
		if st.StopID != stop.StopID {
			continue
		}
		ts, ok := st.PredictedTime()
		if !ok {
			return arrival.Connection{}, false
		}
		return arrival.Connection{
			MinutesUntil: utils.MinutesUntilUnix(ts, now),
			Label:        stop.Label,
		}, true
	}
	return arrival.Connection{}, false
}
