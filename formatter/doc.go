// Package formatter turns aggregation results into the JSON payload served
// to dashboard clients.
//
// This package is organized into:
// - wrapper.go: payload, health and error envelopes
// - occupancy.go: occupancy display classification
// - json.go: JSON serialization
package formatter
