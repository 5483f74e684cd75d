// Package streak derives consecutive-day activity streaks from record days.
package streak

import (
	"sort"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
)

const day = 24 * time.Hour

// Compute builds a StreakSnapshot from the days a user recorded something.
// The calendar date of each entry is used as-is; now decides what "today"
// is through its Location. Days after today are ignored.
func Compute(days []time.Time, now time.Time) models.StreakSnapshot {
	today := models.DayOf(now)

	unique := dedupe(days, today)
	if len(unique) == 0 {
		return models.StreakSnapshot{Status: models.StreakNone}
	}

	last := unique[0].Format(models.DayLayout)
	snap := models.StreakSnapshot{
		LastRecordDay: &last,
		LongestStreak: longestRun(unique),
		Status:        models.StreakBroken,
	}

	if gap := daysBetween(unique[0], today); gap <= 1 {
		snap.Status = models.StreakActive
		snap.CurrentStreak = 1
		for i := 1; i < len(unique); i++ {
			if daysBetween(unique[i], unique[i-1]) != 1 {
				break
			}
			snap.CurrentStreak++
		}
	}

	if snap.CurrentStreak > snap.LongestStreak {
		snap.LongestStreak = snap.CurrentStreak
	}
	return snap
}

// dedupe collapses days to distinct dates, newest first.
func dedupe(days []time.Time, today time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(days))
	out := make([]time.Time, 0, len(days))
	for _, d := range days {
		d = models.DayOf(d)
		if d.After(today) {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}

// longestRun scans newest-first distinct days for the longest chain of 1-day gaps.
func longestRun(desc []time.Time) int {
	longest, run := 1, 1
	for i := 1; i < len(desc); i++ {
		if daysBetween(desc[i], desc[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier) / day)
}
