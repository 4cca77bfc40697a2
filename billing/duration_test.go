package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedTruncatesToWholeSeconds(t *testing.T) {
	start := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	end := start.Add(90*time.Second + 900*time.Millisecond)

	assert.Equal(t, int64(90), Elapsed(start, end))
}

func TestElapsedNegativeSpanIsZero(t *testing.T) {
	start := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(0), Elapsed(start, start.Add(-time.Minute)))
}

func TestLiveElapsedAgainstNow(t *testing.T) {
	start := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	now := start.Add(2 * time.Hour)

	assert.Equal(t, int64(7200), LiveElapsed(start, now))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "01:01:01", FormatDuration(3661))
	assert.Equal(t, "00:00:00", FormatDuration(0))
}

func TestFormatDurationHoursUnbounded(t *testing.T) {
	// 30 hours must not wrap at 24
	assert.Equal(t, "30:00:05", FormatDuration(30*3600+5))
}
