package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGuardTestApp(t *testing.T) (*fiber.App, *ScheduleController, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{JWTSecret: "guardsecret"}
	sc := NewScheduleController(db, cfg)

	app := fiber.New()
	app.Post("/toggle", sc.ToggleCompletion)

	token, err := utils.GenerateJWTToken(1, cfg)
	require.NoError(t, err)

	return app, sc, token
}

func postToggle(t *testing.T, app *fiber.App, token, title string) *http.Response {
	t.Helper()

	body := []byte(`{"title":"` + title + `","planId":1}`)
	req := httptest.NewRequest("POST", "/toggle", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestToggleRejectedWhileKeyHeld(t *testing.T) {
	app, sc, token := newGuardTestApp(t)

	// Hold the key the way an outstanding toggle for the same user and
	// title would.
	require.True(t, sc.acquire("1:Two Sum"))
	defer sc.release("1:Two Sum")

	resp := postToggle(t, app, token, "Two Sum")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// A different title uses a different key and is unaffected.
	resp = postToggle(t, app, token, "Valid Parentheses")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestToggleSucceedsAfterKeyReleased(t *testing.T) {
	app, sc, token := newGuardTestApp(t)

	require.True(t, sc.acquire("1:Two Sum"))
	resp := postToggle(t, app, token, "Two Sum")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	sc.release("1:Two Sum")
	resp = postToggle(t, app, token, "Two Sum")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAcquireIsExclusivePerKey(t *testing.T) {
	_, sc, _ := newGuardTestApp(t)

	assert.True(t, sc.acquire("1:Two Sum"))
	assert.False(t, sc.acquire("1:Two Sum"))
	assert.True(t, sc.acquire("2:Two Sum"))

	sc.release("1:Two Sum")
	assert.True(t, sc.acquire("1:Two Sum"))
}
