package stats

import (
	"time"

	"github.com/Dharshan209/StudyTracker/backend/models"
)

// DayCount summarizes one calendar day on the monthly view.
type DayCount struct {
	Count     int `json:"count"`
	Completed int `json:"completed"`
}

// MonthlyCalendar buckets every plan entry due within the given month
// into per-day counts, keyed "YYYY-MM-DD". Completion is matched by
// title.
func MonthlyCalendar(plans []models.Plan, completedTitles map[string]bool, year int, month time.Month, loc *time.Location) map[string]DayCount {
	startOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	monthly := make(map[string]DayCount)
	for _, plan := range plans {
		for _, entry := range plan.Entries {
			due := entry.DueDate.In(loc)
			if due.Before(startOfMonth) || !due.Before(endOfMonth) {
				continue
			}

			key := due.Format("2006-01-02")
			day := monthly[key]
			day.Count++
			if completedTitles[entry.Title] {
				day.Completed++
			}
			monthly[key] = day
		}
	}

	return monthly
}
