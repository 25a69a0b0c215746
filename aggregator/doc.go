// Package aggregator runs every configured rail and bus target of a
// request concurrently and folds the results into station and line groups.
//
// A failing target never fails the call: its group comes back empty and a
// warning token names it. GetAllArrivals returns ErrAllTargetsFailed only
// when every target it attempted failed.
package aggregator
