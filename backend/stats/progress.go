package stats

import (
	"math"
	"time"

	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/models"
)

// PlanProgress is the per-plan completion summary shown on the
// dashboard.
type PlanProgress struct {
	PlanID         uint      `json:"planId"`
	PlanName       string    `json:"planName"`
	StartDate      time.Time `json:"startDate"`
	TotalProblems  int       `json:"totalProblems"`
	CompletedCount int       `json:"completedCount"`
	Progress       int       `json:"progress"` // whole-number percentage
	DaysRemaining  int       `json:"daysRemaining"`
}

// PlanProgressAll computes completion counts and percentages for every
// plan. Completions are grouped by their plan back-reference; records
// without one are ignored here (the global solved count still includes
// them).
func PlanProgressAll(plans []models.Plan, completions []models.CompletionRecord, today time.Time) []PlanProgress {
	completedByPlan := make(map[uint]int)
	for _, rec := range completions {
		if rec.PlanID != nil {
			completedByPlan[*rec.PlanID]++
		}
	}

	result := make([]PlanProgress, 0, len(plans))
	for _, plan := range plans {
		total := len(plan.Entries)
		completed := completedByPlan[plan.ID]

		progress := 0
		if total > 0 {
			progress = int(math.Round(float64(completed) / float64(total) * 100))
		}

		result = append(result, PlanProgress{
			PlanID:         plan.ID,
			PlanName:       plan.PlanName,
			StartDate:      plan.StartDate,
			TotalProblems:  total,
			CompletedCount: completed,
			Progress:       progress,
			DaysRemaining:  DaysRemaining(plan.StartDate, total, today),
		})
	}

	return result
}

// DaysRemaining reports how many days are left in a plan whose nominal
// length is one problem per day. Never negative.
func DaysRemaining(startDate time.Time, totalProblems int, today time.Time) int {
	if totalProblems == 0 || startDate.IsZero() {
		return 0
	}

	endDate := startDate.AddDate(0, 0, totalProblems)
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	diff := endDate.Sub(midnight)
	if diff < 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// ActivePlanID picks the plan to highlight as active, or nil when the
// user has no plans. Ties keep the earlier element of the input order.
func ActivePlanID(plans []models.Plan, strategy string) *uint {
	if len(plans) == 0 {
		return nil
	}

	key := func(p models.Plan) time.Time {
		if strategy == config.ActivePlanByLastTouched {
			return p.UpdatedAt
		}
		return p.StartDate
	}

	best := plans[0]
	for _, p := range plans[1:] {
		if key(p).After(key(best)) {
			best = p
		}
	}
	return &best.ID
}
