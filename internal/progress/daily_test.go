package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(date time.Time, minutes int) DailyRecord {
	return DailyRecord{Date: date, MinutesStudied: minutes, SessionsCompleted: minutes / 25}
}

func TestDailyRecord_Apply(t *testing.T) {
	r := DailyRecord{Date: day(2025, 3, 3), MinutesStudied: 30, SessionsCompleted: 1}
	r = r.Apply(DailyDelta{Minutes: 25, Sessions: 1})
	r = r.Apply(DailyDelta{Minutes: -10, Sessions: -1})
	assert.Equal(t, 55, r.MinutesStudied)
	assert.Equal(t, 2, r.SessionsCompleted)
	assert.Equal(t, "2025-03-03", r.Key())
}

func TestStreak(t *testing.T) {
	today := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		days []DailyRecord
		want int
	}{
		{"no history", nil, 0},
		{"only today", []DailyRecord{rec(day(2025, 3, 10), 30)}, 1},
		{
			"three days through today",
			[]DailyRecord{rec(day(2025, 3, 8), 30), rec(day(2025, 3, 9), 10), rec(day(2025, 3, 10), 60)},
			3,
		},
		{
			"today not started yet",
			[]DailyRecord{rec(day(2025, 3, 8), 30), rec(day(2025, 3, 9), 10)},
			2,
		},
		{
			"gap breaks streak",
			[]DailyRecord{rec(day(2025, 3, 6), 30), rec(day(2025, 3, 8), 30), rec(day(2025, 3, 9), 30), rec(day(2025, 3, 10), 30)},
			3,
		},
		{
			"zero-minute day breaks streak",
			[]DailyRecord{rec(day(2025, 3, 8), 30), rec(day(2025, 3, 9), 0), rec(day(2025, 3, 10), 30)},
			1,
		},
		{
			"nothing since the day before yesterday",
			[]DailyRecord{rec(day(2025, 3, 7), 30), rec(day(2025, 3, 8), 30)},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.days, today); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMissed(t *testing.T) {
	days := []DailyRecord{
		rec(day(2025, 3, 3), 180),
		rec(day(2025, 3, 4), 100),
		rec(day(2025, 3, 5), 240),
		// 3/6 has no record
		rec(day(2025, 3, 7), 150),
	}

	got := Missed(days, 180, day(2025, 3, 3), time.Date(2025, 3, 7, 20, 0, 0, 0, time.UTC))
	// 0 + 80 + 0 + 180 + 30
	assert.Equal(t, 290, got)

	assert.Equal(t, 0, Missed(days, 0, day(2025, 3, 3), day(2025, 3, 7)))
	assert.Equal(t, 0, Missed(days, 180, day(2025, 3, 8), day(2025, 3, 7)), "empty window")
}

func TestRollupWeekly(t *testing.T) {
	days := []DailyRecord{
		rec(day(2025, 3, 12), 50), // Wed, week 11
		rec(day(2025, 3, 3), 100), // Mon, week 10
		rec(day(2025, 3, 9), 25),  // Sun, week 10
		rec(day(2025, 3, 5), 0),   // Wed, week 10
	}

	got := RollupWeekly(days)
	require.Len(t, got, 2)

	assert.Equal(t, 10, got[0].Week)
	assert.Equal(t, 2025, got[0].Year)
	assert.True(t, got[0].WeekStart.Equal(day(2025, 3, 3)))
	assert.Equal(t, 125, got[0].MinutesStudied)
	assert.Equal(t, 5, got[0].SessionsCompleted)
	assert.Equal(t, 2, got[0].DaysStudied)

	assert.Equal(t, 11, got[1].Week)
	assert.True(t, got[1].WeekStart.Equal(day(2025, 3, 10)))
	assert.Equal(t, 50, got[1].MinutesStudied)
}
