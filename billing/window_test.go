package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekWindowMidweek(t *testing.T) {
	// Wednesday
	now := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

	w, ok := WindowFor(ViewWeek, now)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, 2024, w.End.Year())
	assert.Equal(t, time.June, w.End.Month())
	assert.Equal(t, 16, w.End.Day())
	assert.Equal(t, 23, w.End.Hour())
	assert.Equal(t, 59, w.End.Minute())
	assert.Equal(t, 59, w.End.Second())
}

func TestWeekWindowOnSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday
	now := time.Date(2024, 6, 16, 8, 0, 0, 0, time.UTC)

	w, ok := WindowFor(ViewWeek, now)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, 16, w.End.Day())
}

func TestWeekWindowOnMonday(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	w, ok := WindowFor(ViewWeek, now)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), w.Start)
}

func TestYearWindow(t *testing.T) {
	now := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

	w, ok := WindowFor(ViewYear, now)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.December, w.End.Month())
	assert.Equal(t, 31, w.End.Day())
	assert.Equal(t, 23, w.End.Hour())
}

func TestTotalViewHasNoWindow(t *testing.T) {
	_, ok := WindowFor(ViewTotal, time.Now())

	assert.False(t, ok)
}
