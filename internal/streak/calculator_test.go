package streak

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Dias221467/Reminder_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seoul = mustLoad("Asia/Seoul")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func daysAgo(now time.Time, n int) time.Time {
	return models.DayOf(now).AddDate(0, 0, -n)
}

func TestCompute_Empty(t *testing.T) {
	snap := Compute(nil, time.Now())

	assert.Equal(t, 0, snap.CurrentStreak)
	assert.Equal(t, 0, snap.LongestStreak)
	assert.Nil(t, snap.LastRecordDay)
	assert.Equal(t, models.StreakNone, snap.Status)
}

func TestCompute_GapAfterYesterday(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, seoul)
	snap := Compute([]time.Time{daysAgo(now, 0), daysAgo(now, 1), daysAgo(now, 3)}, now)

	assert.Equal(t, 2, snap.CurrentStreak)
	assert.Equal(t, models.StreakActive, snap.Status)
	require.NotNil(t, snap.LastRecordDay)
	assert.Equal(t, "2024-03-10", *snap.LastRecordDay)
}

func TestCompute_TodayYesterdayAndTwoDaysAgo(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, seoul)
	snap := Compute([]time.Time{daysAgo(now, 0), daysAgo(now, 1), daysAgo(now, 2)}, now)

	assert.Equal(t, 3, snap.CurrentStreak)
	assert.Equal(t, 3, snap.LongestStreak)
	assert.Equal(t, models.StreakActive, snap.Status)
}

func TestCompute_TodayAndThreeDaysAgo(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, seoul)
	snap := Compute([]time.Time{daysAgo(now, 0), daysAgo(now, 3)}, now)

	assert.Equal(t, 1, snap.CurrentStreak)
	assert.Equal(t, 1, snap.LongestStreak)
	assert.Equal(t, models.StreakActive, snap.Status)
}

func TestCompute_Broken(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, seoul)
	snap := Compute([]time.Time{daysAgo(now, 2), daysAgo(now, 3)}, now)

	assert.Equal(t, 0, snap.CurrentStreak)
	assert.Equal(t, 2, snap.LongestStreak)
	assert.Equal(t, models.StreakBroken, snap.Status)
	require.NotNil(t, snap.LastRecordDay)
	assert.Equal(t, "2024-03-08", *snap.LastRecordDay)
}

func TestCompute_OnlyYesterdayIsActive(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 30, 0, 0, seoul)
	snap := Compute([]time.Time{daysAgo(now, 1)}, now)

	assert.Equal(t, 1, snap.CurrentStreak)
	assert.Equal(t, models.StreakActive, snap.Status)
}

func TestCompute_DuplicatesAndIntraDayTimes(t *testing.T) {
	now := time.Date(2024, 3, 10, 23, 59, 0, 0, seoul)
	days := []time.Time{
		time.Date(2024, 3, 10, 0, 1, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
	}
	snap := Compute(days, now)

	assert.Equal(t, 2, snap.CurrentStreak)
	assert.Equal(t, 2, snap.LongestStreak)
}

func TestCompute_AcrossDSTChange(t *testing.T) {
	ny := mustLoad("America/New_York")
	now := time.Date(2024, 3, 11, 9, 0, 0, 0, ny)
	days := []time.Time{
		time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	}
	snap := Compute(days, now)

	assert.Equal(t, 3, snap.CurrentStreak)
}

func TestCompute_LongestFromHistory(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, seoul)
	days := []time.Time{daysAgo(now, 0)}
	for i := 10; i < 15; i++ {
		days = append(days, daysAgo(now, i))
	}
	snap := Compute(days, now)

	assert.Equal(t, 1, snap.CurrentStreak)
	assert.Equal(t, 5, snap.LongestStreak)
}

func TestCompute_FutureDaysIgnored(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, seoul)
	snap := Compute([]time.Time{daysAgo(now, -1), daysAgo(now, 0)}, now)

	assert.Equal(t, 1, snap.CurrentStreak)
	require.NotNil(t, snap.LastRecordDay)
	assert.Equal(t, "2024-03-10", *snap.LastRecordDay)
}

func TestCompute_RandomHistoriesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, seoul)

	for i := 0; i < 500; i++ {
		n := rng.Intn(40)
		days := make([]time.Time, n)
		for j := range days {
			days[j] = daysAgo(now, rng.Intn(60))
		}
		snap := Compute(days, now)

		assert.GreaterOrEqual(t, snap.LongestStreak, snap.CurrentStreak)
		if snap.LastRecordDay == nil {
			assert.Equal(t, models.StreakNone, snap.Status)
			continue
		}
		last, err := models.ParseDay(*snap.LastRecordDay)
		require.NoError(t, err)
		if gap := models.DayOf(now).Sub(last) / (24 * time.Hour); gap > 1 {
			assert.Equal(t, 0, snap.CurrentStreak)
			assert.Equal(t, models.StreakBroken, snap.Status)
		} else {
			assert.Positive(t, snap.CurrentStreak)
		}
	}
}
