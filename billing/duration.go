package billing

import (
	"fmt"
	"time"
)

// Elapsed returns the number of whole seconds between start and end,
// truncated. A negative span yields 0.
func Elapsed(start, end time.Time) int64 {
	if end.Before(start) {
		return 0
	}
	return int64(end.Sub(start) / time.Second)
}

// LiveElapsed is the elapsed time of a still-running entry measured against
// the supplied clock. Display only, never persisted.
func LiveElapsed(start, now time.Time) int64 {
	return Elapsed(start, now)
}

// FormatDuration renders seconds as zero-padded HH:MM:SS.
// Hours are not wrapped at 24.
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "00:00:00"
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
