package controllers_test

import (
	"io"
	"testing"
	"time"

	"github.com/Dharshan209/StudyTracker/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsUserID(t *testing.T) uint {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("username = ?", "statsuser").First(&user).Error)
	return user.ID
}

func TestProgressOverviewStreak(t *testing.T) {
	userID := statsUserID(t)
	now := time.Now().UTC()

	records := []models.CompletionRecord{
		{UserID: userID, Title: "Streak Day 0", Completed: true, CompletedAt: now},
		{UserID: userID, Title: "Streak Day 1", Completed: true, CompletedAt: now.AddDate(0, 0, -1)},
	}
	for i := range records {
		require.NoError(t, db.Create(&records[i]).Error)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("user_id = ?", userID).Delete(&models.CompletionRecord{})
	})

	resp := doRequest("GET", "/api/progress", nil, statsToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeEnvelope(t, resp)
	assert.Equal(t, float64(2), data["problemsSolvedCount"])
	assert.Equal(t, float64(2), data["studyStreak"])
}

func TestProgressOverviewBrokenStreak(t *testing.T) {
	userID := statsUserID(t)

	stale := models.CompletionRecord{
		UserID:      userID,
		Title:       "Long Ago",
		Completed:   true,
		CompletedAt: time.Now().UTC().AddDate(0, 0, -5),
	}
	require.NoError(t, db.Create(&stale).Error)
	t.Cleanup(func() {
		db.Unscoped().Where("user_id = ?", userID).Delete(&models.CompletionRecord{})
	})

	resp := doRequest("GET", "/api/progress", nil, statsToken)
	data := decodeEnvelope(t, resp)
	assert.Equal(t, float64(0), data["studyStreak"])
}

func TestCalendarCountsDueAndCompleted(t *testing.T) {
	templateID := createTemplate(t, "Calendar Plan", map[string]string{
		"day1": "Calendar A",
		"day2": "Calendar B",
	})
	planID := importPlan(t, statsToken, templateID, "2031-01-10")

	resp := doRequest("POST", "/api/schedule/toggle", map[string]interface{}{
		"title":  "Calendar A",
		"planId": planID,
	}, statsToken)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest("GET", "/api/progress/calendar?month=1&year=2031", nil, statsToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeEnvelope(t, resp)
	day10, _ := data["2031-01-10"].(map[string]interface{})
	require.NotNil(t, day10)
	assert.Equal(t, float64(1), day10["count"])
	assert.Equal(t, float64(1), day10["completed"])

	day11, _ := data["2031-01-11"].(map[string]interface{})
	require.NotNil(t, day11)
	assert.Equal(t, float64(0), day11["completed"])

	// Clean up the completion so streak tests stay deterministic.
	resp = doRequest("POST", "/api/schedule/toggle", map[string]interface{}{
		"title":  "Calendar A",
		"planId": planID,
	}, statsToken)
	resp.Body.Close()
}

func TestExportProgressIsWorkbook(t *testing.T) {
	resp := doRequest("GET", "/api/progress/export", nil, statsToken)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Greater(t, len(body), 4)
	// xlsx is a ZIP container.
	assert.Equal(t, []byte{'P', 'K'}, body[:2])
}

func TestRecentActivityFeed(t *testing.T) {
	templateID := createTemplate(t, "Activity Plan", map[string]string{"day1": "Activity A"})
	planID := importPlan(t, statsToken, templateID, "2031-02-01")

	resp := doRequest("POST", "/api/schedule/toggle", map[string]interface{}{
		"title":  "Activity A",
		"planId": planID,
	}, statsToken)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest("GET", "/api/activity/recent", nil, statsToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	list := decodeEnvelopeList(t, resp)
	require.NotEmpty(t, list)
	assert.LessOrEqual(t, len(list), 5)

	types := make(map[string]bool)
	for _, item := range list {
		act := item.(map[string]interface{})
		types[act["type"].(string)] = true
		assert.NotEmpty(t, act["timeAgo"])
	}
	assert.True(t, types["solved"])

	resp = doRequest("POST", "/api/schedule/toggle", map[string]interface{}{
		"title":  "Activity A",
		"planId": planID,
	}, statsToken)
	resp.Body.Close()
}
