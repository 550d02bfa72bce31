package models

import (
	"time"

	"gorm.io/gorm"
)

// PlanTemplate is a catalog study plan. Importing one snapshots its
// entries into a user-owned Plan with concrete due dates.
type PlanTemplate struct {
	gorm.Model
	Title       string `gorm:"unique;not null"`
	Description string
	Entries     []TemplateEntry
}

type TemplateEntry struct {
	gorm.Model
	PlanTemplateID uint
	DayNumber      int    // 1-based offset from the plan's start date
	ProblemTitle   string
}

// Plan is a user's imported, dated instance of a PlanTemplate.
type Plan struct {
	gorm.Model
	UserID      uint `gorm:"index"`
	TemplateID  uint
	PlanName    string
	StartDate   time.Time
	ScheduledAt time.Time
	Entries     []ProblemEntry
}

type ProblemEntry struct {
	gorm.Model
	PlanID        uint   `gorm:"index"`
	EntryKey      string // opaque key, e.g. "day3" or "problem_<uuid>"
	Title         string
	Difficulty    string // Easy, Medium, Hard
	DueDate       time.Time
	EstimatedTime int    // minutes
	Status        string `gorm:"default:pending"`
}
