package timeblock

import "time"

// The calendar shows four week-aligned weeks ahead. WindowEnd anchors at the
// Sunday midnight of the current week and adds 28 days, so the horizon moves
// forward one week at a time rather than sliding continuously.
func WindowEnd(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sunday := midnight.AddDate(0, 0, -int(midnight.Weekday()))
	return sunday.AddDate(0, 0, 28)
}

// InWindow reports whether a new block may be created at start: not yet
// passed, and before the window end.
func InWindow(start, now time.Time) bool {
	return !start.Before(now) && start.Before(WindowEnd(now))
}

// OnCalendar reports whether an existing block's start shows on the visible
// calendar, which is what the access and availability checks count.
func OnCalendar(start, now time.Time) bool {
	return start.After(now) && start.Before(WindowEnd(now))
}
