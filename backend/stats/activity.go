package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dharshan209/StudyTracker/backend/models"
)

const recentActivityLimit = 5

// Activity is one entry in the recent-activity feed.
type Activity struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"` // started, solved
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	TimeAgo string    `json:"timeAgo"`
}

// RecentActivity merges plan-started and problem-solved events into a
// single reverse-chronological feed capped at five entries. Ties keep
// input order.
func RecentActivity(plans []models.Plan, completions []models.CompletionRecord, now time.Time) []Activity {
	combined := make([]Activity, 0, len(plans)+len(completions))

	for _, plan := range plans {
		if plan.StartDate.IsZero() {
			continue
		}
		name := plan.PlanName
		if name == "" {
			name = "Unnamed Plan"
		}
		combined = append(combined, Activity{
			ID:    fmt.Sprintf("plan-%d", plan.ID),
			Type:  "started",
			Title: name + " started",
			Date:  plan.StartDate,
		})
	}

	for _, rec := range completions {
		if !rec.Completed || rec.CompletedAt.IsZero() {
			continue
		}
		combined = append(combined, Activity{
			ID:    "problem-" + rec.Title,
			Type:  "solved",
			Title: rec.Title + " solved",
			Date:  rec.CompletedAt,
		})
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Date.After(combined[j].Date)
	})

	if len(combined) > recentActivityLimit {
		combined = combined[:recentActivityLimit]
	}

	for i := range combined {
		combined[i].TimeAgo = TimeAgo(now, combined[i].Date)
	}

	return combined
}

// TimeAgo renders a human-relative label like "3 hours ago". Buckets
// use the divisor thresholds 31536000/2592000/86400/3600/60 seconds.
func TimeAgo(now, t time.Time) string {
	seconds := now.Sub(t).Seconds()

	if interval := seconds / 31536000; interval > 1 {
		return fmt.Sprintf("%d years ago", int(interval))
	}
	if interval := seconds / 2592000; interval > 1 {
		return fmt.Sprintf("%d months ago", int(interval))
	}
	if interval := seconds / 86400; interval > 1 {
		return fmt.Sprintf("%d days ago", int(interval))
	}
	if interval := seconds / 3600; interval > 1 {
		return fmt.Sprintf("%d hours ago", int(interval))
	}
	if interval := seconds / 60; interval > 1 {
		return fmt.Sprintf("%d minutes ago", int(interval))
	}
	return fmt.Sprintf("%d seconds ago", int(seconds))
}
