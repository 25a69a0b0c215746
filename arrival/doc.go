// Package arrival defines the normalized arrival record shared by the rail
// and bus pipelines.
//
// Records are built per request, filtered, serialized and then discarded.
// Optional upstream values are pointers: nil means the upstream never sent
// the field, a non-nil pointer means it was reported, even when the value
// is zero.
package arrival
