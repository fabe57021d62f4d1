package domain

import "time"

// MonthSelection is the (year, month) pair the user is browsing.
type MonthSelection struct {
	Year  int
	Month time.Month
}

// CurrentMonth returns the selection for the present calendar month.
func CurrentMonth() MonthSelection {
	now := time.Now()
	return MonthSelection{Year: now.Year(), Month: now.Month()}
}

// Previous returns the selection one month earlier, rolling the year back
// across January.
func (m MonthSelection) Previous() MonthSelection {
	// Day 1 of month-1; time.Date normalizes January-1 to December of the
	// previous year.
	t := time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return MonthSelection{Year: t.Year(), Month: t.Month()}
}

// Window returns the inclusive month window for the selection.
func (m MonthSelection) Window() MonthWindow {
	return WindowFor(m.Year, m.Month)
}

// DateForDay returns a timestamp inside the selected month at the given
// day-of-month, clamped to the month's last day so a day 31 source never
// spills into the following month.
func (m MonthSelection) DateForDay(day int) time.Time {
	if last := daysIn(m.Year, m.Month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.Local)
}

// MonthWindow is an inclusive [start, end] range covering one calendar
// month: day 1 at 00:00:00 through the last day at 23:59:59.
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

// WindowFor computes the window for (year, month). The end bound is day 0
// of the following month, which resolves to the last calendar day of the
// requested month, leap years included.
func WindowFor(year int, month time.Month) MonthWindow {
	return MonthWindow{
		Start: time.Date(year, month, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(year, month+1, 0, 23, 59, 59, 0, time.Local),
	}
}

// Contains reports whether t falls inside the window. A zero time is never
// contained, so records with an absent date are excluded from any
// time-scoped result set.
func (w MonthWindow) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
