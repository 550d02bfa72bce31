package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/models"
	"github.com/Dharshan209/StudyTracker/backend/stats"
	"github.com/Dharshan209/StudyTracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlansController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPlansController(db *gorm.DB, cfg *config.Config) *PlansController {
	return &PlansController{DB: db, Cfg: cfg}
}

type ImportPlanInput struct {
	TemplateID uint   `json:"templateId"`
	StartDate  string `json:"startDate"` // YYYY-MM-DD
}

// ImportPlan snapshots a catalog template into a user-owned plan. The
// entry for day N is due startDate + (N-1) days. Re-importing the same
// template replaces the previous import.
func (pc *PlansController) ImportPlan(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input ImportPlanInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	startDate, err := time.ParseInLocation("2006-01-02", input.StartDate, time.Local)
	if err != nil {
		return utils.ValidationError(c, map[string]string{"startDate": "startDate must be YYYY-MM-DD"})
	}

	var tpl models.PlanTemplate
	if err := pc.DB.Preload("Entries").First(&tpl, input.TemplateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Could not find the specified study plan")
		}
		return utils.InternalServerError(c, "Could not load plan")
	}

	if len(tpl.Entries) == 0 {
		return utils.ValidationError(c, map[string]string{"content": "Plan data is missing content or is empty"})
	}

	plan := models.Plan{
		UserID:      userID,
		TemplateID:  tpl.ID,
		PlanName:    tpl.Title,
		StartDate:   startDate,
		ScheduledAt: time.Now(),
	}
	for _, entry := range tpl.Entries {
		plan.Entries = append(plan.Entries, models.ProblemEntry{
			EntryKey:      "day" + strconv.Itoa(entry.DayNumber),
			Title:         entry.ProblemTitle,
			Difficulty:    "Medium",
			DueDate:       startDate.AddDate(0, 0, entry.DayNumber-1),
			EstimatedTime: 30,
			Status:        "pending",
		})
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Plan
		err := tx.Where("user_id = ? AND template_id = ?", userID, tpl.ID).First(&existing).Error
		replacing := err == nil
		if replacing {
			if err := tx.Where("plan_id = ?", existing.ID).Unscoped().Delete(&models.ProblemEntry{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		if replacing {
			// Completions tagged with the replaced plan follow it, so
			// progress survives a re-import.
			return tx.Model(&models.CompletionRecord{}).
				Where("user_id = ? AND plan_id = ?", userID, existing.ID).
				Update("plan_id", plan.ID).Error
		}
		return nil
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not import plan")
	}

	return utils.Created(c, fiber.Map{
		"planId":    plan.ID,
		"planName":  plan.PlanName,
		"startDate": plan.StartDate,
		"problems":  len(plan.Entries),
	})
}

// GetPlans lists the user's plans with completion progress and marks
// the active one.
func (pc *PlansController) GetPlans(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var plans []models.Plan
	if err := pc.DB.Preload("Entries").Where("user_id = ?", userID).Find(&plans).Error; err != nil {
		return utils.InternalServerError(c, "Could not load your plan progress")
	}

	var completions []models.CompletionRecord
	if err := pc.DB.Where("user_id = ?", userID).Find(&completions).Error; err != nil {
		return utils.InternalServerError(c, "Could not load your plan progress")
	}

	progress := stats.PlanProgressAll(plans, completions, time.Now())

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"plans":        progress,
		"activePlanId": stats.ActivePlanID(plans, pc.Cfg.ActivePlanStrategy),
	})
}

type AddProblemInput struct {
	Title         string `json:"title"`
	Difficulty    string `json:"difficulty"`
	DueDate       string `json:"dueDate"` // YYYY-MM-DD, defaults to today
	EstimatedTime int    `json:"estimatedTime"`
}

// AddProblem appends an ad-hoc problem entry to one of the user's
// plans. Validation happens before any write.
func (pc *PlansController) AddProblem(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	planID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid plan ID")
	}

	var input AddProblemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return utils.ValidationError(c, map[string]string{"title": "title must not be empty"})
	}

	dueDate := time.Now()
	if input.DueDate != "" {
		dueDate, err = time.ParseInLocation("2006-01-02", input.DueDate, time.Local)
		if err != nil {
			return utils.ValidationError(c, map[string]string{"dueDate": "dueDate must be YYYY-MM-DD"})
		}
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = "Medium"
	}
	estimated := input.EstimatedTime
	if estimated == 0 {
		estimated = 30
	}

	var plan models.Plan
	if err := pc.DB.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Plan not found")
		}
		return utils.InternalServerError(c, "Could not load plan")
	}

	entry := models.ProblemEntry{
		PlanID:        plan.ID,
		EntryKey:      "problem_" + uuid.NewString(),
		Title:         title,
		Difficulty:    difficulty,
		DueDate:       dueDate,
		EstimatedTime: estimated,
		Status:        "pending",
	}

	if err := pc.DB.Create(&entry).Error; err != nil {
		return utils.InternalServerError(c, "Failed to add problem")
	}

	return utils.Created(c, fiber.Map{
		"entryKey":   entry.EntryKey,
		"title":      entry.Title,
		"difficulty": entry.Difficulty,
		"dueDate":    entry.DueDate,
		"planId":     entry.PlanID,
	})
}
