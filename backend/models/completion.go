package models

import (
	"time"

	"gorm.io/gorm"
)

// CompletionRecord marks a problem title as solved for a user. Its
// existence is the sole source of truth for "done"; un-marking deletes
// the row. Titles are matched across all of the user's plans, so two
// plans scheduling the same title share completion state.
type CompletionRecord struct {
	gorm.Model
	UserID      uint   `gorm:"uniqueIndex:idx_user_title"`
	Title       string `gorm:"uniqueIndex:idx_user_title"`
	Completed   bool
	CompletedAt time.Time
	PlanID      *uint // back-reference for per-plan grouping, optional
}

// TimeEntry accumulates study minutes per user per calendar day.
type TimeEntry struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex:idx_user_day"`
	Date         string `gorm:"uniqueIndex:idx_user_day"` // YYYY-MM-DD
	TotalMinutes int
}
