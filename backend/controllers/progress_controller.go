package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/models"
	"github.com/Dharshan209/StudyTracker/backend/stats"
	"github.com/Dharshan209/StudyTracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetProgress returns the dashboard stat summary: solved count, active
// plan count, study streak and today's study minutes.
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var completions []models.CompletionRecord
	if err := pc.DB.Where("user_id = ? AND completed = ?", userID, true).Find(&completions).Error; err != nil {
		return utils.InternalServerError(c, "Could not load progress")
	}

	var planCount int64
	pc.DB.Model(&models.Plan{}).Where("user_id = ?", userID).Count(&planCount)

	dates := make([]time.Time, 0, len(completions))
	for _, rec := range completions {
		if !rec.CompletedAt.IsZero() {
			dates = append(dates, rec.CompletedAt)
		}
	}

	var today models.TimeEntry
	pc.DB.Where("user_id = ? AND date = ?", userID, time.Now().Format("2006-01-02")).First(&today)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"problemsSolvedCount": len(completions),
		"activePlansCount":    planCount,
		"studyStreak":         stats.StudyStreak(dates, time.Now()),
		"todayMinutes":        today.TotalMinutes,
	})
}

// GetPlanProgress returns the per-plan completion breakdown.
func (pc *ProgressController) GetPlanProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	plans, completions, err := pc.loadPlansAndCompletions(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load your plan progress")
	}

	return utils.Success(c, fiber.StatusOK, stats.PlanProgressAll(plans, completions, time.Now()))
}

// GetCalendar returns per-day due/completed counts for a month (query
// params "month" 1-12 and "year", defaulting to the current month).
func (pc *ProgressController) GetCalendar(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	now := time.Now()
	year := now.Year()
	month := int(now.Month())
	if raw := c.Query("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			return utils.BadRequest(c, "Invalid year")
		}
	}
	if raw := c.Query("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil || month < 1 || month > 12 {
			return utils.BadRequest(c, "Invalid month")
		}
	}

	plans, completions, err := pc.loadPlansAndCompletions(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load calendar data")
	}

	completedTitles := make(map[string]bool, len(completions))
	for _, rec := range completions {
		completedTitles[rec.Title] = true
	}

	calendar := stats.MonthlyCalendar(plans, completedTitles, year, time.Month(month), time.Local)
	return utils.Success(c, fiber.StatusOK, calendar)
}

// ExportProgress writes the per-plan progress table as an xlsx
// workbook.
func (pc *ProgressController) ExportProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	plans, completions, err := pc.loadPlansAndCompletions(userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not load your plan progress")
	}

	progress := stats.PlanProgressAll(plans, completions, time.Now())

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Progress"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Plan", "Total Problems", "Completed", "Progress %", "Days Remaining"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, p := range progress {
		values := []interface{}{p.PlanName, p.TotalProblems, p.CompletedCount, p.Progress, p.DaysRemaining}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return utils.InternalServerError(c, "Could not build export")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "progress.xlsx"))
	return c.Send(buf.Bytes())
}

func (pc *ProgressController) loadPlansAndCompletions(userID uint) ([]models.Plan, []models.CompletionRecord, error) {
	var plans []models.Plan
	if err := pc.DB.Preload("Entries").Where("user_id = ?", userID).Find(&plans).Error; err != nil {
		return nil, nil, err
	}

	var completions []models.CompletionRecord
	if err := pc.DB.Where("user_id = ?", userID).Find(&completions).Error; err != nil {
		return nil, nil, err
	}

	return plans, completions, nil
}
