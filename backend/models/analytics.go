package models

import "gorm.io/gorm"

// DailyRollup is written once per day by the background rollup job.
type DailyRollup struct {
	gorm.Model
	Date           string `gorm:"unique"` // YYYY-MM-DD, UTC
	ActiveUsers    int
	ProblemsSolved int
}

type Subscription struct {
	gorm.Model
	UserID       uint `gorm:"index"`
	PlanName     string
	GatewaySubID string
	Status       string // created, active, cancelled
}
