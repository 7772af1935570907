package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"FoodLoop-Backend/entities"
	"FoodLoop-Backend/internal/api/handlers"
	"FoodLoop-Backend/internal/api/routes"
	"FoodLoop-Backend/internal/middleware"
	"FoodLoop-Backend/internal/utils"
	"FoodLoop-Backend/pkg/jwt"
	"FoodLoop-Backend/pkg/ledger"
	"FoodLoop-Backend/pkg/location"
	"FoodLoop-Backend/pkg/notification"
	"FoodLoop-Backend/pkg/reward"
	"FoodLoop-Backend/pkg/user"
	"FoodLoop-Backend/pkg/verification"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp wires the auth-facing slice of the application against an
// in-memory database. Report and collection flows are covered by their
// service tests; here the interest is routing, auth and response envelopes.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Report{},
		&entities.Reward{},
		&entities.Transaction{},
		&entities.CollectedWaste{},
		&entities.Notification{},
	))

	utils.InitValidator()
	app := fiber.New()

	jwtService := jwt.NewJWTService()
	ledgerService := ledger.NewLedgerService(db, ledger.NewLedgerRepository(db))
	notificationService := notification.NewNotificationService(notification.NewNotificationRepository(db))
	userService := user.NewUserService(user.NewUserRepository(db), ledgerService, jwtService)
	rewardService := reward.NewRewardService(reward.NewRewardRepository(db), ledgerService)
	verificationService := verification.NewVerificationServiceWithBaseURL("http://unused")
	locationService := location.NewLocationServiceWithBaseURL("test-key", "http://unused")

	config := routes.Config{
		App:                 app,
		UserHandler:         handlers.NewUserHandler(userService, utils.Validate),
		RewardHandler:       handlers.NewRewardHandler(rewardService, ledgerService, utils.Validate),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
		VerificationHandler: handlers.NewVerificationHandler(verificationService, utils.Validate),
		LocationHandler:     handlers.NewLocationHandler(locationService),
		Middleware:          middleware.NewMiddleware(),
		JWTService:          jwtService,
	}
	config.App.Use(config.Middleware.CORSMiddleware())
	config.GuestRoute()
	config.User()
	config.Rewards()
	config.Notifications()

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope))
	}
	return resp, envelope
}

func TestPing(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/ping", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pong", body["message"])
}

func TestRegisterLoginMe(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/users/register", "", fiber.Map{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, true, body["status"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/users/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	token := data["token"].(string)
	require.NotEmpty(t, token)

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := body["data"].(map[string]any)
	require.Equal(t, "alice@example.com", me["email"])
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/users/register", "", fiber.Map{
		"email":    "not-an-email",
		"name":     "Alice",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, false, body["status"])
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/rewards/balance", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/rewards/balance", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBalanceAndTransactionsEndpoints(t *testing.T) {
	app := setupApp(t)

	_, body := doJSON(t, app, http.MethodPost, "/api/v1/users/register", "", fiber.Map{
		"email":    "alice@example.com",
		"name":     "Alice",
		"password": "supersecret",
	})
	data := body["data"].(map[string]any)
	token := data["token"].(string)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/rewards/balance", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	balance := body["data"].(map[string]any)
	require.EqualValues(t, 0, balance["balance"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/rewards/transactions", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["status"])
}

func TestInitDemoUser(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/init", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	require.Equal(t, "shashank@gmail.com", data["email"])

	// Calling again returns the same account
	resp, body = doJSON(t, app, http.MethodGet, "/init", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	again := body["data"].(map[string]any)
	require.Equal(t, data["id"], again["id"])
}
