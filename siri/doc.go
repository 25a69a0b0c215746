// Package siri models the SIRI StopMonitoring JSON documents served by MTA
// Bus Time and builds the requests that fetch them.
//
// Only the fields the arrival pipeline reads are modelled. Fields MTA
// serves either as a plain string or as a one-element array decode into
// Text.
package siri
