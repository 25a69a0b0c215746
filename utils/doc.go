// Package utils provides internal time helpers shared by the decoders,
// extractors and the HTTP boundary.
// This package is not intended to be imported by external code.
package utils
