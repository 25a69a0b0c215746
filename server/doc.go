// Package server is the HTTP boundary in front of the aggregation service.
//
// Routes:
//   - GET /api/arrivals: the aggregate payload, or 500 when every upstream failed
//   - GET /health: liveness
//
// An optional static directory is served for every other path.
package server
