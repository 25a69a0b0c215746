// Package gtfsrt decodes GTFS-Realtime protobuf feeds into flat vehicle and
// trip-update records.
//
// Decoding is a pure transformation: Decode never performs I/O. Client
// pairs a binary fetch with Decode for callers that want both.
package gtfsrt
