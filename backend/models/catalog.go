package models

import "gorm.io/gorm"

// Resource is the study material attached to a problem, keyed by the
// problem's title.
type Resource struct {
	gorm.Model
	Title      string `gorm:"uniqueIndex;not null"`
	Notes      string
	ArticleURL string
	VideoURL   string
}

// CatalogProblem is a browsable problem in the shared catalog. Company
// and topic tags are stored as comma-separated lists.
type CatalogProblem struct {
	gorm.Model
	Title      string `gorm:"uniqueIndex;not null"`
	Difficulty string // Easy, Medium, Hard
	Companies  string
	Topics     string
	Link       string
}
