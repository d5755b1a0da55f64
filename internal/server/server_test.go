package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newFlowServer wires a full server against an in-memory database so requests
// exercise handlers, services, and repositories together.
func newFlowServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		JWTSecret:           "flow-test-secret",
		FeedbackRequireSwap: true,
	}

	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// signupUser registers an account and returns its token and user ID.
func signupUser(t *testing.T, app *fiber.App, name, email string) (string, uint) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "Password123!x",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	require.NotZero(t, body.User.ID)
	return body.Token, body.User.ID
}

func createSkill(t *testing.T, app *fiber.App, token, name, category string) uint {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/skills", token, fiber.Map{
		"name":     name,
		"category": category,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var skill models.Skill
	decodeBody(t, resp, &skill)
	return skill.ID
}

func addUserSkill(t *testing.T, app *fiber.App, token string, skillID uint, skillType string) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/users/me/skills", token, fiber.Map{
		"skill_id":    skillID,
		"skill_type":  skillType,
		"proficiency": "intermediate",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSwapLifecycle_EndToEnd(t *testing.T) {
	s, app := newFlowServer(t)

	aliceToken, aliceID := signupUser(t, app, "Alice", "alice@example.com")
	bobToken, bobID := signupUser(t, app, "Bob", "bob@example.com")
	adminToken, adminID := signupUser(t, app, "Admin", "admin@example.com")

	// Promote the third account to admin directly in the database.
	require.NoError(t, s.db.Model(&models.User{}).
		Where("id = ?", adminID).
		Update("role", models.RoleAdmin).Error)

	guitarID := createSkill(t, app, aliceToken, "Guitar", "music")
	spanishID := createSkill(t, app, aliceToken, "Spanish", "language")

	addUserSkill(t, app, bobToken, guitarID, "offered")
	addUserSkill(t, app, aliceToken, spanishID, "offered")

	// Alice asks Bob to teach guitar in exchange for Spanish lessons.
	resp := doJSON(t, app, http.MethodPost, "/api/swaps", aliceToken, fiber.Map{
		"provider_id":        bobID,
		"requested_skill_id": guitarID,
		"offered_skill_id":   spanishID,
		"message":            "Trade lessons?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var swap models.SwapRequest
	decodeBody(t, resp, &swap)
	require.NotZero(t, swap.ID)
	assert.Equal(t, models.SwapStatusPending, swap.Status)
	assert.Equal(t, aliceID, swap.RequesterID)

	// A second pending request to the same provider is rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/swaps", aliceToken, fiber.Map{
		"provider_id":        bobID,
		"requested_skill_id": guitarID,
		"offered_skill_id":   spanishID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// The request shows up in Bob's received box.
	resp = doJSON(t, app, http.MethodGet, "/api/swaps?box=received", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inbox struct {
		Swaps []models.SwapRequest `json:"swaps"`
	}
	decodeBody(t, resp, &inbox)
	require.Len(t, inbox.Swaps, 1)

	swapPath := fmt.Sprintf("/api/swaps/%d/status", swap.ID)

	// Only the provider may accept.
	resp = doJSON(t, app, http.MethodPatch, swapPath, aliceToken, fiber.Map{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPatch, swapPath, bobToken, fiber.Map{"status": "accepted"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &swap)
	assert.Equal(t, models.SwapStatusAccepted, swap.Status)

	// Either party can mark an accepted swap completed.
	resp = doJSON(t, app, http.MethodPatch, swapPath, aliceToken, fiber.Map{"status": "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &swap)
	assert.Equal(t, models.SwapStatusCompleted, swap.Status)
	assert.NotNil(t, swap.CompletedAt)

	// Alice leaves feedback for Bob against the completed swap.
	resp = doJSON(t, app, http.MethodPost, "/api/feedback", aliceToken, fiber.Map{
		"to_user_id":      bobID,
		"swap_request_id": swap.ID,
		"rating":          5,
		"comment":         "Great teacher",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// A second entry for the same swap and rater is rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/feedback", aliceToken, fiber.Map{
		"to_user_id":      bobID,
		"swap_request_id": swap.ID,
		"rating":          4,
		"comment":         "Changed my mind",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// The feedback is publicly visible on Bob's profile.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/profiles/%d/feedback", bobID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fbPage struct {
		Feedback []models.Feedback `json:"feedback"`
		Rating   struct {
			Average float64 `json:"average_rating"`
			Count   int64   `json:"rating_count"`
		} `json:"rating"`
	}
	decodeBody(t, resp, &fbPage)
	require.Len(t, fbPage.Feedback, 1)
	assert.Equal(t, 5.0, fbPage.Rating.Average)
	assert.Equal(t, int64(1), fbPage.Rating.Count)

	// Admin stats reflect the activity.
	resp = doJSON(t, app, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		TotalUsers    int64            `json:"total_users"`
		TotalSwaps    int64            `json:"total_swaps"`
		SwapsByStatus map[string]int64 `json:"swaps_by_status"`
	}
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalSwaps)
	assert.Equal(t, int64(1), stats.SwapsByStatus["completed"])

	// Regular users cannot reach admin routes.
	resp = doJSON(t, app, http.MethodGet, "/api/admin/stats", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// Admin bans Bob; his still-valid token stops working immediately.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/ban", bobID), adminToken, fiber.Map{
		"reason": "spam",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var banned models.User
	decodeBody(t, resp, &banned)
	assert.True(t, banned.IsBanned)

	resp = doJSON(t, app, http.MethodGet, "/api/swaps", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// Unban restores access.
	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/unban", bobID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/swaps", bobToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSwapRejectAndCancel_EndToEnd(t *testing.T) {
	_, app := newFlowServer(t)

	aliceToken, _ := signupUser(t, app, "Alice", "alice@example.com")
	bobToken, bobID := signupUser(t, app, "Bob", "bob@example.com")

	guitarID := createSkill(t, app, aliceToken, "Guitar", "music")
	spanishID := createSkill(t, app, aliceToken, "Spanish", "language")
	addUserSkill(t, app, bobToken, guitarID, "offered")
	addUserSkill(t, app, aliceToken, spanishID, "offered")

	newSwap := func() models.SwapRequest {
		resp := doJSON(t, app, http.MethodPost, "/api/swaps", aliceToken, fiber.Map{
			"provider_id":        bobID,
			"requested_skill_id": guitarID,
			"offered_skill_id":   spanishID,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var swap models.SwapRequest
		decodeBody(t, resp, &swap)
		return swap
	}

	// Provider rejects.
	swap := newSwap()
	resp := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/swaps/%d/status", swap.ID), bobToken,
		fiber.Map{"status": "rejected"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &swap)
	assert.Equal(t, models.SwapStatusRejected, swap.Status)

	// Rejection clears the pending slot; a fresh request goes through and the
	// requester cancels it with a reason.
	swap = newSwap()
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/swaps/%d/status", swap.ID), aliceToken,
		fiber.Map{"status": "cancelled", "reason": "found another teacher"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &swap)
	assert.Equal(t, models.SwapStatusCancelled, swap.Status)
	assert.Equal(t, "found another teacher", swap.CancelledReason)

	// A cancelled swap cannot be completed.
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/swaps/%d/status", swap.ID), aliceToken,
		fiber.Map{"status": "completed"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()

	// Requester deletes their own pending request.
	swap = newSwap()
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/swaps/%d", swap.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/swaps/%d", swap.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestBrowseProfiles_RatingsBehindFlag(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		JWTSecret:    "flow-test-secret",
		FeatureFlags: "browse_ratings=on",
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)

	signupUser(t, app, "Alice", "alice@example.com")

	resp := doJSON(t, app, http.MethodGet, "/api/profiles", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]json.RawMessage
	decodeBody(t, resp, &body)
	assert.Contains(t, body, "ratings")
}

func TestProfileVisibility_EndToEnd(t *testing.T) {
	_, app := newFlowServer(t)

	aliceToken, aliceID := signupUser(t, app, "Alice", "alice@example.com")
	_, bobID := signupUser(t, app, "Bob", "bob@example.com")

	// Alice goes private.
	resp := doJSON(t, app, http.MethodPut, "/api/users/me", aliceToken, fiber.Map{
		"is_public": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Anonymous browse no longer lists her.
	resp = doJSON(t, app, http.MethodGet, "/api/profiles", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Users []models.User `json:"users"`
	}
	decodeBody(t, resp, &page)
	require.Len(t, page.Users, 1)
	assert.Equal(t, bobID, page.Users[0].ID)

	// Her profile is hidden from others but still visible to herself.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/profiles/%d", aliceID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/profiles/%d", aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}
