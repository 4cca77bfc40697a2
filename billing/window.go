package billing

import "time"

type View string

const (
	ViewWeek  View = "week"
	ViewYear  View = "year"
	ViewTotal View = "total"
)

// Window is a [Start, End] filter over entry start times.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor returns the date window for a view relative to now.
// The week window runs Monday 00:00:00 through Sunday 23:59:59 of the week
// containing now, the year window covers the current calendar year, and the
// total view applies no filter (ok is false).
func WindowFor(view View, now time.Time) (w Window, ok bool) {
	switch view {
	case ViewWeek:
		diff := 1 - int(now.Weekday())
		if now.Weekday() == time.Sunday {
			diff = -6
		}
		monday := DayFloor(now).AddDate(0, 0, diff)
		return Window{Start: monday, End: DayCeil(monday.AddDate(0, 0, 6))}, true
	case ViewYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), time.December, 31, 23, 59, 59, int(999*time.Millisecond), now.Location())
		return Window{Start: start, End: end}, true
	}
	return Window{}, false
}

// DayFloor truncates t to 00:00:00 of its calendar day.
func DayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayCeil moves t to 23:59:59.999 of its calendar day.
func DayCeil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
