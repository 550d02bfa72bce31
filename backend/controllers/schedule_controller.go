package controllers

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/models"
	"github.com/Dharshan209/StudyTracker/backend/stats"
	"github.com/Dharshan209/StudyTracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ScheduleController struct {
	DB  *gorm.DB
	Cfg *config.Config

	// inflight guards concurrent toggles on the same (user, title)
	// key. A second toggle while one is outstanding is rejected, so a
	// rapid double-toggle cannot produce a lost update.
	mu       sync.Mutex
	inflight map[string]bool
}

func NewScheduleController(db *gorm.DB, cfg *config.Config) *ScheduleController {
	return &ScheduleController{
		DB:       db,
		Cfg:      cfg,
		inflight: make(map[string]bool),
	}
}

// GetSchedule returns the problems due on a given date (query param
// "date", YYYY-MM-DD, defaults to today) annotated with completion
// state.
func (sc *ScheduleController) GetSchedule(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		date, err = time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return utils.BadRequest(c, "date must be YYYY-MM-DD")
		}
	}

	var plans []models.Plan
	if err := sc.DB.Preload("Entries").Where("user_id = ?", userID).Find(&plans).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch your schedule")
	}

	completedTitles, err := sc.completedTitles(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch your schedule")
	}

	return utils.Success(c, fiber.StatusOK, stats.ProblemsForDate(plans, completedTitles, date))
}

type ToggleInput struct {
	Title  string `json:"title"`
	PlanID uint   `json:"planId"`
}

// ToggleCompletion flips the completion state of a problem title:
// absent record -> created, present record -> deleted. The operation is
// its own inverse.
func (sc *ScheduleController) ToggleCompletion(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input ToggleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return utils.ValidationError(c, map[string]string{"title": "title must not be empty"})
	}
	if input.PlanID == 0 {
		return utils.ValidationError(c, map[string]string{"planId": "planId is required"})
	}

	key := fmt.Sprintf("%d:%s", userID, title)
	if !sc.acquire(key) {
		return utils.Conflict(c, "A toggle for this problem is already in progress")
	}
	defer sc.release(key)

	var record models.CompletionRecord
	err = sc.DB.Where("user_id = ? AND title = ?", userID, title).First(&record).Error

	switch {
	case err == nil:
		// Hard delete so the (user, title) key can be reused.
		if err := sc.DB.Unscoped().Delete(&record).Error; err != nil {
			return utils.InternalServerError(c, "Error updating problem status")
		}
		return utils.Success(c, fiber.StatusOK, fiber.Map{"title": title, "isCompleted": false})

	case errors.Is(err, gorm.ErrRecordNotFound):
		planID := input.PlanID
		record = models.CompletionRecord{
			UserID:      userID,
			Title:       title,
			Completed:   true,
			CompletedAt: time.Now(),
			PlanID:      &planID,
		}
		if err := sc.DB.Create(&record).Error; err != nil {
			return utils.InternalServerError(c, "Error updating problem status")
		}
		return utils.Success(c, fiber.StatusOK, fiber.Map{"title": title, "isCompleted": true})

	default:
		return utils.InternalServerError(c, "Error updating problem status")
	}
}

func (sc *ScheduleController) completedTitles(userID uint) (map[string]bool, error) {
	var records []models.CompletionRecord
	if err := sc.DB.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	titles := make(map[string]bool, len(records))
	for _, rec := range records {
		titles[rec.Title] = true
	}
	return titles, nil
}

func (sc *ScheduleController) acquire(key string) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.inflight[key] {
		return false
	}
	sc.inflight[key] = true
	return true
}

func (sc *ScheduleController) release(key string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.inflight, key)
}
