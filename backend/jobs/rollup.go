package jobs

import (
	"errors"
	"log"
	"time"

	"github.com/Dharshan209/StudyTracker/backend/models"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// StartScheduler runs the daily rollup shortly after UTC midnight and
// once at startup to catch up the current day.
func StartScheduler(db *gorm.DB, logger *log.Logger) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)

	_, err := s.Every(1).Day().At("00:05").Do(func() {
		if err := Rollup(db, time.Now().UTC()); err != nil {
			logger.Printf("daily rollup failed: %v", err)
		}
	})
	if err != nil {
		logger.Printf("could not schedule daily rollup: %v", err)
	}

	s.StartAsync()

	if err := Rollup(db, time.Now().UTC()); err != nil {
		logger.Printf("startup rollup failed: %v", err)
	}

	return s
}

// Rollup aggregates the given UTC day's completions into a DailyRollup
// row: how many problems were solved and by how many distinct users.
func Rollup(db *gorm.DB, now time.Time) error {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)
	date := dayStart.Format("2006-01-02")

	var solved int64
	if err := db.Model(&models.CompletionRecord{}).
		Where("completed_at >= ? AND completed_at < ?", dayStart, dayEnd).
		Count(&solved).Error; err != nil {
		return err
	}

	var active int64
	if err := db.Model(&models.CompletionRecord{}).
		Where("completed_at >= ? AND completed_at < ?", dayStart, dayEnd).
		Distinct("user_id").
		Count(&active).Error; err != nil {
		return err
	}

	var rollup models.DailyRollup
	err := db.Where("date = ?", date).First(&rollup).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rollup = models.DailyRollup{
			Date:           date,
			ActiveUsers:    int(active),
			ProblemsSolved: int(solved),
		}
		return db.Create(&rollup).Error
	case err != nil:
		return err
	default:
		rollup.ActiveUsers = int(active)
		rollup.ProblemsSolved = int(solved)
		return db.Save(&rollup).Error
	}
}
