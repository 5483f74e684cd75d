package models

import "time"

const DayLayout = "2006-01-02"

// DayOf strips the time of day from t, keeping t's calendar date in its own
// location. The result is midnight UTC so day arithmetic never sees DST.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders the calendar date of t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return DayOf(t).Format(DayLayout)
}

// ParseDay parses YYYY-MM-DD into midnight UTC.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}
