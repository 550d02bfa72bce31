package controllers

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/models"
	"github.com/Dharshan209/StudyTracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CatalogController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCatalogController(db *gorm.DB, cfg *config.Config) *CatalogController {
	return &CatalogController{DB: db, Cfg: cfg}
}

// GetTemplates lists all catalog study plans.
func (cc *CatalogController) GetTemplates(c *fiber.Ctx) error {
	var templates []models.PlanTemplate
	if err := cc.DB.Preload("Entries").Find(&templates).Error; err != nil {
		return utils.InternalServerError(c, "Could not load plan catalog")
	}

	result := make([]fiber.Map, 0, len(templates))
	for _, tpl := range templates {
		result = append(result, fiber.Map{
			"id":          tpl.ID,
			"title":       tpl.Title,
			"description": tpl.Description,
			"days":        len(tpl.Entries),
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// GetTemplate returns a single catalog plan with its day-to-problem
// content.
func (cc *CatalogController) GetTemplate(c *fiber.Ctx) error {
	templateID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid plan ID")
	}

	var tpl models.PlanTemplate
	if err := cc.DB.Preload("Entries").First(&tpl, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Plan not found")
		}
		return utils.InternalServerError(c, "Could not load plan")
	}

	content := make(map[string]string, len(tpl.Entries))
	for _, entry := range tpl.Entries {
		content["day"+strconv.Itoa(entry.DayNumber)] = entry.ProblemTitle
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":          tpl.ID,
		"title":       tpl.Title,
		"description": tpl.Description,
		"content":     content,
	})
}

var difficultyOrder = map[string]int{"Easy": 1, "Medium": 2, "Hard": 3}

func splitTags(raw string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func matchesCompany(companies []string, filter string) bool {
	for _, company := range companies {
		if company == filter {
			return true
		}
		// The Meta tab also covers problems tagged before the rename.
		if filter == "Meta" && company == "Facebook" {
			return true
		}
	}
	return false
}

func matchesSearch(title string, topics []string, term string) bool {
	if strings.Contains(strings.ToLower(title), term) {
		return true
	}
	for _, topic := range topics {
		if strings.Contains(strings.ToLower(topic), term) {
			return true
		}
	}
	return false
}

// GetProblems lists the problem catalog, optionally narrowed by
// company tab and a case-insensitive search over titles and topics.
// sortBy is "difficulty" (the default) or "title".
func (cc *CatalogController) GetProblems(c *fiber.Ctx) error {
	var problems []models.CatalogProblem
	if err := cc.DB.Find(&problems).Error; err != nil {
		return utils.InternalServerError(c, "Could not load problem catalog")
	}

	company := c.Query("company", "All")
	term := strings.ToLower(strings.TrimSpace(c.Query("search")))
	sortBy := c.Query("sortBy", "difficulty")

	result := make([]fiber.Map, 0, len(problems))
	for _, problem := range problems {
		companies := splitTags(problem.Companies)
		topics := splitTags(problem.Topics)

		if company != "All" && !matchesCompany(companies, company) {
			continue
		}
		if term != "" && !matchesSearch(problem.Title, topics, term) {
			continue
		}

		result = append(result, fiber.Map{
			"id":         problem.ID,
			"title":      problem.Title,
			"difficulty": problem.Difficulty,
			"company":    companies,
			"topics":     topics,
			"link":       problem.Link,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if sortBy == "difficulty" {
			return difficultyOrder[result[i]["difficulty"].(string)] < difficultyOrder[result[j]["difficulty"].(string)]
		}
		return result[i]["title"].(string) < result[j]["title"].(string)
	})

	return utils.Success(c, fiber.StatusOK, result)
}

// CreateProblem adds a problem to the catalog. Admin only.
func (cc *CatalogController) CreateProblem(c *fiber.Ctx) error {
	var input struct {
		Title      string   `json:"title"`
		Difficulty string   `json:"difficulty"`
		Company    []string `json:"company"`
		Topics     []string `json:"topics"`
		Link       string   `json:"link"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return utils.ValidationError(c, map[string]string{"title": "title is required"})
	}
	if _, ok := difficultyOrder[input.Difficulty]; !ok {
		return utils.ValidationError(c, map[string]string{"difficulty": "difficulty must be Easy, Medium or Hard"})
	}

	problem := models.CatalogProblem{
		Title:      title,
		Difficulty: input.Difficulty,
		Companies:  strings.Join(input.Company, ","),
		Topics:     strings.Join(input.Topics, ","),
		Link:       input.Link,
	}
	if err := cc.DB.Create(&problem).Error; err != nil {
		return utils.InternalServerError(c, "Could not create problem")
	}

	return utils.Created(c, fiber.Map{
		"id":    problem.ID,
		"title": problem.Title,
	})
}

var dayNumberPattern = regexp.MustCompile(`\d+`)

// CreateTemplate adds a catalog plan. Admin only. Content keys carry a
// day number ("day1", "day2", ...); keys without one are skipped.
func (cc *CatalogController) CreateTemplate(c *fiber.Ctx) error {
	var input struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Content     map[string]string `json:"content"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title == "" {
		return utils.ValidationError(c, map[string]string{"title": "title is required"})
	}
	if len(input.Content) == 0 {
		return utils.ValidationError(c, map[string]string{"content": "content must not be empty"})
	}

	tpl := models.PlanTemplate{
		Title:       input.Title,
		Description: input.Description,
	}
	for dayKey, problemTitle := range input.Content {
		match := dayNumberPattern.FindString(dayKey)
		if match == "" {
			continue
		}
		dayNumber, _ := strconv.Atoi(match)
		tpl.Entries = append(tpl.Entries, models.TemplateEntry{
			DayNumber:    dayNumber,
			ProblemTitle: problemTitle,
		})
	}

	if err := cc.DB.Create(&tpl).Error; err != nil {
		return utils.InternalServerError(c, "Could not create plan")
	}

	return utils.Created(c, fiber.Map{
		"id":    tpl.ID,
		"title": tpl.Title,
		"days":  len(tpl.Entries),
	})
}
