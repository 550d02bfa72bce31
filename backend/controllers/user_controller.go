package controllers

import (
	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/models"
	"github.com/Dharshan209/StudyTracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// GetProfile returns the authenticated user's profile.
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var planCount int64
	uc.DB.Model(&models.Plan{}).Where("user_id = ?", userID).Count(&planCount)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":               user.ID,
		"username":         user.Username,
		"email":            user.Email,
		"role":             user.Role,
		"phone_number":     user.PhoneNumber,
		"github_profile":   user.GithubProfile,
		"leetcode_profile": user.LeetcodeProfile,
		"created_at":       user.CreatedAt,
		"plan_count":       planCount,
	})
}

// UpdateProfile updates the authenticated user's profile fields.
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input struct {
		PhoneNumber     string `json:"phone_number"`
		GithubProfile   string `json:"github_profile"`
		LeetcodeProfile string `json:"leetcode_profile"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	user.PhoneNumber = input.PhoneNumber
	user.GithubProfile = input.GithubProfile
	user.LeetcodeProfile = input.LeetcodeProfile

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update profile")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"phone_number":     user.PhoneNumber,
		"github_profile":   user.GithubProfile,
		"leetcode_profile": user.LeetcodeProfile,
	})
}
