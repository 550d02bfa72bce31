package controllers

import (
	"errors"
	"net/url"
	"strings"

	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/models"
	"github.com/Dharshan209/StudyTracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ResourcesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewResourcesController(db *gorm.DB, cfg *config.Config) *ResourcesController {
	return &ResourcesController{DB: db, Cfg: cfg}
}

// GetResource returns the study material for a problem title. The
// title is the lookup key, so a problem without material is a 404.
func (rc *ResourcesController) GetResource(c *fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil || strings.TrimSpace(title) == "" {
		return utils.BadRequest(c, "Invalid resource title")
	}

	var resource models.Resource
	if err := rc.DB.Where("title = ?", title).First(&resource).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Resource not found for \""+title+"\"")
		}
		return utils.InternalServerError(c, "Failed to fetch resource data")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"title":      resource.Title,
		"notes":      resource.Notes,
		"articleUrl": resource.ArticleURL,
		"videoUrl":   resource.VideoURL,
	})
}

// CreateResource upserts the study material for a title. Admin only.
func (rc *ResourcesController) CreateResource(c *fiber.Ctx) error {
	var input struct {
		Title      string `json:"title"`
		Notes      string `json:"notes"`
		ArticleURL string `json:"articleUrl"`
		VideoURL   string `json:"videoUrl"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return utils.ValidationError(c, map[string]string{"title": "title is required"})
	}

	var resource models.Resource
	err := rc.DB.Where("title = ?", title).First(&resource).Error
	switch {
	case err == nil:
		resource.Notes = input.Notes
		resource.ArticleURL = input.ArticleURL
		resource.VideoURL = input.VideoURL
		if err := rc.DB.Save(&resource).Error; err != nil {
			return utils.InternalServerError(c, "Could not save resource")
		}
		return utils.Success(c, fiber.StatusOK, fiber.Map{"title": resource.Title})

	case errors.Is(err, gorm.ErrRecordNotFound):
		resource = models.Resource{
			Title:      title,
			Notes:      input.Notes,
			ArticleURL: input.ArticleURL,
			VideoURL:   input.VideoURL,
		}
		if err := rc.DB.Create(&resource).Error; err != nil {
			return utils.InternalServerError(c, "Could not save resource")
		}
		return utils.Created(c, fiber.Map{"title": resource.Title})

	default:
		return utils.InternalServerError(c, "Could not save resource")
	}
}
