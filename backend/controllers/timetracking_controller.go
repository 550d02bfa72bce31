package controllers

import (
	"errors"
	"time"

	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/models"
	"github.com/Dharshan209/StudyTracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TimeTrackingController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTimeTrackingController(db *gorm.DB, cfg *config.Config) *TimeTrackingController {
	return &TimeTrackingController{DB: db, Cfg: cfg}
}

// GetToday returns the minutes studied today.
func (tc *TimeTrackingController) GetToday(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	today := time.Now().Format("2006-01-02")

	var entry models.TimeEntry
	err = tc.DB.Where("user_id = ? AND date = ?", userID, today).First(&entry).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not load time tracking")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"date":         today,
		"totalMinutes": entry.TotalMinutes,
	})
}

type SessionInput struct {
	Minutes int `json:"minutes"`
}

// AddSession accumulates a finished study session into today's total.
// Sessions under a minute are not recorded.
func (tc *TimeTrackingController) AddSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input SessionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Minutes < 1 {
		return utils.ValidationError(c, map[string]string{"minutes": "session must be at least 1 minute"})
	}

	today := time.Now().Format("2006-01-02")

	var entry models.TimeEntry
	err = tc.DB.Where("user_id = ? AND date = ?", userID, today).First(&entry).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.TimeEntry{
			UserID:       userID,
			Date:         today,
			TotalMinutes: input.Minutes,
		}
		if err := tc.DB.Create(&entry).Error; err != nil {
			return utils.InternalServerError(c, "Could not save session")
		}
	case err != nil:
		return utils.InternalServerError(c, "Could not save session")
	default:
		entry.TotalMinutes += input.Minutes
		if err := tc.DB.Save(&entry).Error; err != nil {
			return utils.InternalServerError(c, "Could not save session")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"date":         today,
		"totalMinutes": entry.TotalMinutes,
	})
}
