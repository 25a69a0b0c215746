package converter

import "strings"

// StopMatcher decides whether a stop ID reported in a trip update is the
// monitored stop.
//
// Feeds of the same network spell stop IDs differently, so two modes
// exist. Exact mode compares StopID. Pattern mode, used whenever Tokens is
// non-empty, requires every token to appear in the stop ID and the
// direction predicate to hold: the stop ID contains DirectionMarker, or
// the trip's direction_id equals DirectionID.
type StopMatcher struct {
	StopID          string
	Tokens          []string
	DirectionMarker string
	DirectionID     *uint32
}

// ExactStop matches stopID only.
func ExactStop(stopID string) StopMatcher {
	return StopMatcher{StopID: stopID}
}

// PatternStop matches stop IDs containing every token and satisfying the
// direction predicate.
func PatternStop(tokens []string, marker string, directionID *uint32) StopMatcher {
	return StopMatcher{Tokens: tokens, DirectionMarker: marker, DirectionID: directionID}
}

// IsPattern reports whether the matcher runs in pattern mode.
func (m StopMatcher) IsPattern() bool {
	return len(m.Tokens) > 0
}

// Match reports whether stopID, on a trip with direction tripDirection,
// is the monitored stop.
func (m StopMatcher) Match(stopID string, tripDirection *uint32) bool {
	if stopID == "" {
		return false
	}
	if !m.IsPattern() {
		return m.StopID != "" && stopID == m.StopID
	}

	for _, tok := range m.Tokens {
		if !strings.Contains(stopID, tok) {
			return false
		}
	}
	return m.directionHolds(stopID, tripDirection)
}

func (m StopMatcher) directionHolds(stopID string, tripDirection *uint32) bool {
	if m.DirectionMarker == "" && m.DirectionID == nil {
		return true
	}
	if m.DirectionMarker != "" && strings.Contains(stopID, m.DirectionMarker) {
		return true
	}
	return m.DirectionID != nil && tripDirection != nil && *tripDirection == *m.DirectionID
}
