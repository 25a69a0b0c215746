package utils

import (
	"math"
	"time"
)

// Iso8601Millis formats t in UTC with millisecond precision.
func Iso8601Millis(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// RoundMinutes converts a duration to whole minutes, rounding halves up
// (towards positive infinity), so 2m30s is 3 and -2m30s is -2.
func RoundMinutes(d time.Duration) int {
	return int(math.Floor(d.Minutes() + 0.5))
}

// MinutesUntilUnix returns the rounded minutes from now until the epoch
// second ts.
func MinutesUntilUnix(ts int64, now time.Time) int {
	return RoundMinutes(time.Unix(ts, 0).Sub(now.Truncate(time.Second)))
}

// MinutesUntil returns the rounded minutes from now until t.
func MinutesUntil(t, now time.Time) int {
	return RoundMinutes(t.Sub(now))
}
