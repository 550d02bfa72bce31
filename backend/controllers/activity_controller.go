package controllers

import (
	"time"

	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/models"
	"github.com/Dharshan209/StudyTracker/backend/stats"
	"github.com/Dharshan209/StudyTracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ActivityController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewActivityController(db *gorm.DB, cfg *config.Config) *ActivityController {
	return &ActivityController{DB: db, Cfg: cfg}
}

// GetRecent returns the five most recent events (plans started,
// problems solved) with relative time labels.
func (ac *ActivityController) GetRecent(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var plans []models.Plan
	if err := ac.DB.Where("user_id = ?", userID).Find(&plans).Error; err != nil {
		return utils.InternalServerError(c, "Could not load your recent activity")
	}

	var completions []models.CompletionRecord
	if err := ac.DB.Where("user_id = ?", userID).Find(&completions).Error; err != nil {
		return utils.InternalServerError(c, "Could not load your recent activity")
	}

	return utils.Success(c, fiber.StatusOK, stats.RecentActivity(plans, completions, time.Now()))
}
