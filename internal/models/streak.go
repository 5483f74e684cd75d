package models

type StreakStatus string

const (
	StreakActive StreakStatus = "active"
	StreakBroken StreakStatus = "broken"
	StreakNone   StreakStatus = "none"
)

// StreakSnapshot is derived from record days and never stored.
type StreakSnapshot struct {
	CurrentStreak int          `json:"currentStreak"`
	LongestStreak int          `json:"longestStreak"`
	LastRecordDay *string      `json:"lastRecordDate"`
	Status        StreakStatus `json:"streakStatus"`
}

// RecordedOn reports whether the most recent record day equals day.
func (s StreakSnapshot) RecordedOn(day string) bool {
	return s.LastRecordDay != nil && *s.LastRecordDay == day
}

// StreakStats is the streak snapshot plus record counters for the stats view.
type StreakStats struct {
	StreakSnapshot
	TotalRecords     int      `json:"totalRecords"`
	UniqueDays       int      `json:"uniqueDays"`
	ThisWeekRecords  int      `json:"thisWeekRecords"`
	ThisMonthRecords int      `json:"thisMonthRecords"`
	RecordDates      []string `json:"recordDates"`
}
