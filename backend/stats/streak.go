package stats

import (
	"sort"
	"time"
)

// StudyStreak returns the number of consecutive UTC calendar days,
// ending today or yesterday, on which at least one problem was
// completed. Multiple completions on the same day count once. A streak
// is broken (returns 0) when the most recent completion day is more
// than one day before today.
func StudyStreak(completions []time.Time, today time.Time) int {
	if len(completions) == 0 {
		return 0
	}

	unique := make(map[time.Time]struct{}, len(completions))
	for _, t := range completions {
		unique[utcDay(t)] = struct{}{}
	}

	days := make([]time.Time, 0, len(unique))
	for d := range unique {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	todayUTC := utcDay(today)
	if !days[0].Equal(todayUTC) && !days[0].Equal(todayUTC.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	last := days[0]
	for _, d := range days[1:] {
		if last.Sub(d) != 24*time.Hour {
			break
		}
		streak++
		last = d
	}

	return streak
}

// utcDay truncates a timestamp to the start of its UTC calendar day.
func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
