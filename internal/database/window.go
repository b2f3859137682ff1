package database

import "time"

// Window is one of the four fixed time ranges a report can cover. The
// set is closed: queries select one of these predicates, never a
// dynamically built time clause.
type Window int

const (
	// WindowThisMonth covers the current calendar month, from the 1st.
	WindowThisMonth Window = iota
	// WindowLast30Days covers the trailing 30 days, inclusive of today.
	WindowLast30Days
	// WindowToday covers the current server-local date.
	WindowToday
	// WindowAllTime applies no time filter.
	WindowAllTime
)

// Valid reports whether w is one of the four defined windows.
func (w Window) Valid() bool {
	return w >= WindowThisMonth && w <= WindowAllTime
}

// Label returns the human label shown in report headers.
func (w Window) Label() string {
	switch w {
	case WindowThisMonth:
		return "Diesen Monat"
	case WindowLast30Days:
		return "Letzte 30 Tage"
	case WindowToday:
		return "Heute"
	default:
		return "Gesamt"
	}
}

// Start returns the inclusive lower bound of the window relative to
// now, in now's location. The second return value is false for
// WindowAllTime, which has no bound. Bounds use date granularity.
func (w Window) Start(now time.Time) (time.Time, bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch w {
	case WindowThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case WindowLast30Days:
		return midnight.AddDate(0, 0, -30), true
	case WindowToday:
		return midnight, true
	default:
		return time.Time{}, false
	}
}

// End returns the exclusive upper bound of the window relative to now.
// The calendar windows are closed above so a future-dated timestamp
// does not count as the current day or month. The trailing 30 days are
// open above, as is all-time; those return false.
func (w Window) End(now time.Time) (time.Time, bool) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch w {
	case WindowThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0), true
	case WindowToday:
		return midnight.AddDate(0, 0, 1), true
	default:
		return time.Time{}, false
	}
}
