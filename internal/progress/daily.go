package progress

import (
	"sort"
	"time"

	"github.com/riyaagrawal02/clivra/internal/study"
)

const dayLayout = "2006-01-02"

// DailyDelta is the increment a finished study session adds to a day.
type DailyDelta struct {
	Date     time.Time
	Minutes  int
	Sessions int
}

// DailyRecord is the total study done on one calendar day.
type DailyRecord struct {
	Date              time.Time
	MinutesStudied    int
	SessionsCompleted int
}

// Key returns the record's calendar date as YYYY-MM-DD.
func (r DailyRecord) Key() string {
	return r.Date.Format(dayLayout)
}

// DayKey formats t as the YYYY-MM-DD key used for daily records.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// Apply adds a delta to the record.
func (r DailyRecord) Apply(d DailyDelta) DailyRecord {
	r.MinutesStudied += max(d.Minutes, 0)
	r.SessionsCompleted += max(d.Sessions, 0)
	return r
}

// WeeklyRecord totals daily records over one ISO week.
type WeeklyRecord struct {
	Year              int
	Week              int
	WeekStart         time.Time
	MinutesStudied    int
	SessionsCompleted int
	DaysStudied       int
}

// RollupWeekly groups daily records by ISO week, oldest week first.
func RollupWeekly(days []DailyRecord) []WeeklyRecord {
	byWeek := make(map[[2]int]*WeeklyRecord)
	for _, d := range days {
		year, week := d.Date.ISOWeek()
		key := [2]int{year, week}
		w, ok := byWeek[key]
		if !ok {
			w = &WeeklyRecord{Year: year, Week: week, WeekStart: weekStart(d.Date)}
			byWeek[key] = w
		}
		w.MinutesStudied += d.MinutesStudied
		w.SessionsCompleted += d.SessionsCompleted
		if d.MinutesStudied > 0 {
			w.DaysStudied++
		}
	}

	out := make([]WeeklyRecord, 0, len(byWeek))
	for _, w := range byWeek {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Week < out[j].Week
	})
	return out
}

// weekStart returns the Monday starting t's ISO week.
func weekStart(t time.Time) time.Time {
	day := study.StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Streak counts consecutive study days ending today. A day with no study yet
// today does not break the streak; counting then starts from yesterday.
func Streak(days []DailyRecord, today time.Time) int {
	studied := make(map[string]bool, len(days))
	for _, d := range days {
		if d.MinutesStudied > 0 {
			studied[d.Key()] = true
		}
	}

	cursor := study.StartOfDay(today)
	if !studied[DayKey(cursor)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	streak := 0
	for studied[DayKey(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// Missed sums the minutes each day in [from, to] fell short of dailyTarget.
// Days with no record count as fully missed.
func Missed(days []DailyRecord, dailyTarget int, from, to time.Time) int {
	if dailyTarget <= 0 {
		return 0
	}
	minutes := make(map[string]int, len(days))
	for _, d := range days {
		minutes[d.Key()] += d.MinutesStudied
	}

	missed := 0
	end := study.StartOfDay(to)
	for day := study.StartOfDay(from); !day.After(end); day = day.AddDate(0, 0, 1) {
		missed += max(dailyTarget-minutes[DayKey(day)], 0)
	}
	return missed
}
