package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTemplate(t *testing.T, title string, content map[string]string) uint {
	t.Helper()

	resp := doRequest("POST", "/api/admin/catalog/plans", map[string]interface{}{
		"title":   title,
		"content": content,
	}, adminToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := decodeEnvelope(t, resp)
	id, ok := data["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

func importPlan(t *testing.T, token string, templateID uint, startDate string) uint {
	t.Helper()

	resp := doRequest("POST", "/api/plans/import", map[string]interface{}{
		"templateId": templateID,
		"startDate":  startDate,
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := decodeEnvelope(t, resp)
	id, ok := data["planId"].(float64)
	require.True(t, ok)
	return uint(id)
}

func TestCreateTemplateForbiddenForUser(t *testing.T) {
	resp := doRequest("POST", "/api/admin/catalog/plans", map[string]interface{}{
		"title":   "Sneaky Plan",
		"content": map[string]string{"day1": "Two Sum"},
	}, userToken)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCatalogListsTemplates(t *testing.T) {
	createTemplate(t, "Catalog Visible", map[string]string{"day1": "Two Sum"})

	resp := doRequest("GET", "/api/catalog/plans", nil, userToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	list := decodeEnvelopeList(t, resp)
	found := false
	for _, item := range list {
		entry := item.(map[string]interface{})
		if entry["title"] == "Catalog Visible" {
			found = true
			assert.Equal(t, float64(1), entry["days"])
		}
	}
	assert.True(t, found)
}

func TestImportUnknownTemplate(t *testing.T) {
	resp := doRequest("POST", "/api/plans/import", map[string]interface{}{
		"templateId": 999999,
		"startDate":  "2024-01-01",
	}, userToken)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestImportPlanRoundTrip(t *testing.T) {
	templateID := createTemplate(t, "RoundTrip Plan", map[string]string{
		"day1": "Two Sum",
		"day2": "Valid Parentheses",
	})
	planID := importPlan(t, userToken, templateID, "2030-03-10")

	// day1 is due on the start date, day2 one day later, each carrying
	// the originating plan.
	for date, title := range map[string]string{
		"2030-03-10": "Two Sum",
		"2030-03-11": "Valid Parentheses",
	} {
		resp := doRequest("GET", "/api/schedule?date="+date, nil, userToken)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		list := decodeEnvelopeList(t, resp)
		require.Len(t, list, 1, "date %s", date)
		problem := list[0].(map[string]interface{})
		assert.Equal(t, title, problem["title"])
		assert.Equal(t, float64(planID), problem["planId"])
		assert.Equal(t, false, problem["isCompleted"])
	}
}

func TestReimportReplacesPlan(t *testing.T) {
	templateID := createTemplate(t, "Reimport Plan", map[string]string{"day1": "3Sum"})
	first := importPlan(t, userToken, templateID, "2030-04-01")
	second := importPlan(t, userToken, templateID, "2030-05-01")
	assert.NotEqual(t, first, second)

	resp := doRequest("GET", "/api/schedule?date=2030-04-01", nil, userToken)
	assert.Empty(t, decodeEnvelopeList(t, resp))

	resp = doRequest("GET", "/api/schedule?date=2030-05-01", nil, userToken)
	assert.Len(t, decodeEnvelopeList(t, resp), 1)
}

func TestReimportKeepsPlanCompletions(t *testing.T) {
	templateID := createTemplate(t, "Reimport Completions", map[string]string{
		"day1": "Merge Intervals",
		"day2": "Word Break",
	})
	first := importPlan(t, userToken, templateID, "2031-01-01")

	resp := doRequest("POST", "/api/schedule/toggle", map[string]interface{}{
		"title":  "Merge Intervals",
		"planId": first,
	}, userToken)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	second := importPlan(t, userToken, templateID, "2031-02-01")
	require.NotEqual(t, first, second)

	// The completion follows the replacement plan, so its progress and
	// the schedule's title join agree.
	resp = doRequest("GET", "/api/plans", nil, userToken)
	data := decodeEnvelope(t, resp)
	plans, _ := data["plans"].([]interface{})
	found := false
	for _, item := range plans {
		plan := item.(map[string]interface{})
		if plan["planId"] == float64(second) {
			found = true
			assert.Equal(t, float64(1), plan["completedCount"])
		}
	}
	assert.True(t, found)

	resp = doRequest("GET", "/api/schedule?date=2031-02-01", nil, userToken)
	list := decodeEnvelopeList(t, resp)
	require.Len(t, list, 1)
	problem := list[0].(map[string]interface{})
	assert.Equal(t, "Merge Intervals", problem["title"])
	assert.Equal(t, true, problem["isCompleted"])

	resp = doRequest("POST", "/api/schedule/toggle", map[string]interface{}{
		"title":  "Merge Intervals",
		"planId": second,
	}, userToken)
	resp.Body.Close()
}

func TestGetPlansActivePlanNullWithoutPlans(t *testing.T) {
	token := registerUser("noplans", "noplans@example.com")

	resp := doRequest("GET", "/api/plans", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeEnvelope(t, resp)
	plans, _ := data["plans"].([]interface{})
	assert.Empty(t, plans)
	assert.Nil(t, data["activePlanId"])
}

func TestAddProblemEmptyTitle(t *testing.T) {
	templateID := createTemplate(t, "AddProblem Plan", map[string]string{"day1": "Two Sum"})
	planID := importPlan(t, userToken, templateID, "2030-06-01")

	resp := doRequest("POST", fmt.Sprintf("/api/plans/%d/problems", planID), map[string]interface{}{
		"title": "   ",
	}, userToken)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAddProblemDefaults(t *testing.T) {
	templateID := createTemplate(t, "AddProblem Defaults", map[string]string{"day1": "Two Sum"})
	planID := importPlan(t, userToken, templateID, "2030-07-01")

	resp := doRequest("POST", fmt.Sprintf("/api/plans/%d/problems", planID), map[string]interface{}{
		"title":   "Course Schedule",
		"dueDate": "2030-07-02",
	}, userToken)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := decodeEnvelope(t, resp)
	assert.Equal(t, "Medium", data["difficulty"])
	assert.Contains(t, data["entryKey"], "problem_")

	resp = doRequest("GET", "/api/schedule?date=2030-07-02", nil, userToken)
	list := decodeEnvelopeList(t, resp)
	require.Len(t, list, 1)
	problem := list[0].(map[string]interface{})
	assert.Equal(t, "Course Schedule", problem["title"])
	assert.Equal(t, float64(30), problem["estimatedTime"])
}

func TestAddProblemToForeignPlanIsNotFound(t *testing.T) {
	templateID := createTemplate(t, "Foreign Plan", map[string]string{"day1": "Two Sum"})
	planID := importPlan(t, userToken, templateID, "2030-08-01")

	resp := doRequest("POST", fmt.Sprintf("/api/plans/%d/problems", planID), map[string]interface{}{
		"title": "Not Yours",
	}, statsToken)
	resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetPlansReportsProgress(t *testing.T) {
	templateID := createTemplate(t, "Progress Plan", map[string]string{
		"day1": "Climbing Stairs",
		"day2": "Coin Change",
	})
	planID := importPlan(t, userToken, templateID, "2030-09-01")

	resp := doRequest("POST", "/api/schedule/toggle", map[string]interface{}{
		"title":  "Climbing Stairs",
		"planId": planID,
	}, userToken)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest("GET", "/api/plans", nil, userToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeEnvelope(t, resp)
	assert.NotNil(t, data["activePlanId"])
	plans, _ := data["plans"].([]interface{})

	found := false
	for _, item := range plans {
		plan := item.(map[string]interface{})
		if plan["planId"] == float64(planID) {
			found = true
			assert.Equal(t, float64(2), plan["totalProblems"])
			assert.Equal(t, float64(1), plan["completedCount"])
			assert.Equal(t, float64(50), plan["progress"])
		}
	}
	assert.True(t, found)

	// Untoggle to leave no completion state behind for other tests.
	resp = doRequest("POST", "/api/schedule/toggle", map[string]interface{}{
		"title":  "Climbing Stairs",
		"planId": planID,
	}, userToken)
	resp.Body.Close()
}
