// Package converter turns decoded upstream feeds into arrival records.
//
// ExtractRail reads a GTFS-Realtime feed for one route at one stop and
// looks ahead on each trip for an optional connection stop. ExtractBus
// reads a SIRI StopMonitoring response and classifies Local and Limited
// service. Neither function sorts or de-duplicates; that belongs to the
// rules package.
package converter
