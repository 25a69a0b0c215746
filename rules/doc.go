// Package rules holds the stateless post-processing applied to extracted
// arrival lists: sorting and capping, trip de-duplication, per-stop
// service-variant policies, headsign direction filtering and occupancy
// hydration.
//
// Every function returns a new slice and leaves its input untouched.
package rules
