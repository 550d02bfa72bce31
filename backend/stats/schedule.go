package stats

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Dharshan209/StudyTracker/backend/models"
)

// ScheduledProblem is a plan entry due on a particular day, annotated
// with its completion state.
type ScheduledProblem struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Difficulty    string    `json:"difficulty"`
	DueDate       time.Time `json:"dueDate"`
	EstimatedTime int       `json:"estimatedTime"`
	PlanID        uint      `json:"planId"`
	IsCompleted   bool      `json:"isCompleted"`
}

// ProblemsForDate collects every plan entry whose due date falls on the
// same calendar day as date (in date's location). Completion is matched
// by title across all plans. The synthetic ID disambiguates duplicate
// titles scheduled by different plans on the same day.
func ProblemsForDate(plans []models.Plan, completedTitles map[string]bool, date time.Time) []ScheduledProblem {
	problems := make([]ScheduledProblem, 0)

	for _, plan := range plans {
		for _, entry := range plan.Entries {
			if !sameCalendarDay(entry.DueDate.In(date.Location()), date) {
				continue
			}
			problems = append(problems, ScheduledProblem{
				ID: fmt.Sprintf("%d-%s-%d-%d",
					plan.ID, url.QueryEscape(entry.Title), entry.DueDate.Unix(), len(problems)),
				Title:         entry.Title,
				Difficulty:    entry.Difficulty,
				DueDate:       entry.DueDate,
				EstimatedTime: entry.EstimatedTime,
				PlanID:        plan.ID,
				IsCompleted:   completedTitles[entry.Title],
			})
		}
	}

	return problems
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
