package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aluna-health/aluna/internal/db"
	"github.com/aluna-health/aluna/internal/notify"
	"github.com/aluna-health/aluna/internal/services"
)

func newTestApp(t *testing.T) (*fiber.App, *db.Repositories, *notify.MemoryDelivery) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "aluna-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repos := db.NewRepositories(database)
	tuning := services.DefaultCycleTuning()
	delivery := notify.NewMemoryDelivery()

	forecasts := services.NewForecastService(repos.Users, repos.DailyLogs, nil, time.UTC, tuning)
	delays := services.NewDelayService(repos.Users, repos.DailyLogs, repos.DelayRecords, nil, time.UTC)
	reminders := services.NewReminderService(delivery, nil, time.UTC, tuning)

	handler := NewHandler(repos, forecasts, delays, reminders, "test-secret-key", time.UTC, nil)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, repos, delivery
}

func jsonRequest(t *testing.T, method string, target string, body interface{}, authCookie string) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}
	return request
}

func registerTestUser(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    email,
		"password": password,
	}, "")
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("auth cookie is missing in register response")
	return ""
}

func decodeJSONBody(t *testing.T, response *http.Response, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) *http.Response {
	t.Helper()
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}
