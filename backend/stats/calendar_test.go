package stats

import (
	"testing"
	"time"

	"github.com/Dharshan209/StudyTracker/backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMonthlyCalendarBucketsByDay(t *testing.T) {
	plan := models.Plan{Model: gorm.Model{ID: 1}, Entries: []models.ProblemEntry{
		{Title: "A", DueDate: day(2024, time.January, 5)},
		{Title: "B", DueDate: day(2024, time.January, 5)},
		{Title: "C", DueDate: day(2024, time.January, 20)},
		{Title: "D", DueDate: day(2024, time.February, 1)}, // outside the month
	}}
	completed := map[string]bool{"A": true}

	monthly := MonthlyCalendar([]models.Plan{plan}, completed, 2024, time.January, time.UTC)

	assert.Len(t, monthly, 2)
	assert.Equal(t, DayCount{Count: 2, Completed: 1}, monthly["2024-01-05"])
	assert.Equal(t, DayCount{Count: 1, Completed: 0}, monthly["2024-01-20"])
}

func TestMonthlyCalendarIncludesLastDayOfMonth(t *testing.T) {
	plan := models.Plan{Model: gorm.Model{ID: 1}, Entries: []models.ProblemEntry{
		{Title: "A", DueDate: time.Date(2024, time.January, 31, 23, 0, 0, 0, time.UTC)},
	}}

	monthly := MonthlyCalendar([]models.Plan{plan}, nil, 2024, time.January, time.UTC)
	assert.Equal(t, 1, monthly["2024-01-31"].Count)
}

func TestMonthlyCalendarEmptyMonth(t *testing.T) {
	monthly := MonthlyCalendar(nil, nil, 2024, time.March, time.UTC)
	assert.Empty(t, monthly)
}
