package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/veldwijk/crewplan/internal/db"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	tempDir := t.TempDir()
	databasePath := filepath.Join(tempDir, "crewplan-test.db")

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

	handler := NewHandler(database, "test-secret-key", time.UTC, filepath.Join(tempDir, "attachments"), false)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func jsonRequest(t *testing.T, method string, path string, payload interface{}, authCookie string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}
	return request
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload interface{}, authCookie string, expectedStatus int) map[string]interface{} {
	t.Helper()

	response, err := app.Test(jsonRequest(t, method, path, payload, authCookie), -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body: %v", method, path, err)
	}
	if response.StatusCode != expectedStatus {
		t.Fatalf("%s %s expected status %d, got %d (body: %s)", method, path, expectedStatus, response.StatusCode, body)
	}

	if len(body) == 0 {
		return nil
	}
	decoded := map[string]interface{}{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		// Some endpoints return arrays; callers that care decode themselves.
		return nil
	}
	return decoded
}

func doJSONList(t *testing.T, app *fiber.App, method string, path string, payload interface{}, authCookie string, expectedStatus int) []map[string]interface{} {
	t.Helper()

	response, err := app.Test(jsonRequest(t, method, path, payload, authCookie), -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body: %v", method, path, err)
	}
	if response.StatusCode != expectedStatus {
		t.Fatalf("%s %s expected status %d, got %d (body: %s)", method, path, expectedStatus, response.StatusCode, body)
	}

	decoded := []map[string]interface{}{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("%s %s decode list body: %v (body: %s)", method, path, err, body)
	}
	return decoded
}

func memberRolePath(memberID float64) string {
	return fmt.Sprintf("/api/company/members/%d/role", int(memberID))
}

func authCookieFromResponse(t *testing.T, response *http.Response) string {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return fmt.Sprintf("%s=%s", cookie.Name, cookie.Value)
		}
	}
	t.Fatal("auth cookie not set on response")
	return ""
}

// registerOwner creates a fresh company and returns the owner's session
// cookie together with the company join code.
func registerOwner(t *testing.T, app *fiber.App, email string, companyName string) (string, string) {
	t.Helper()

	payload := map[string]interface{}{
		"name":         "Owner " + companyName,
		"email":        email,
		"password":     "Sterk3wachtwoord",
		"age":          35,
		"company_name": companyName,
	}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", payload, ""), -1)
	if err != nil {
		t.Fatalf("register owner: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("register owner expected 201, got %d (body: %s)", response.StatusCode, body)
	}

	cookie := authCookieFromResponse(t, response)

	company := doJSON(t, app, http.MethodGet, "/api/company", nil, cookie, http.StatusOK)
	code, ok := company["code"].(string)
	if !ok || code == "" {
		t.Fatalf("company response missing join code: %v", company)
	}
	return cookie, code
}

func registerEmployee(t *testing.T, app *fiber.App, email string, companyCode string, age int) string {
	t.Helper()

	payload := map[string]interface{}{
		"name":         "Employee " + email,
		"email":        email,
		"password":     "Sterk3wachtwoord",
		"age":          age,
		"company_code": companyCode,
	}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/register", payload, ""), -1)
	if err != nil {
		t.Fatalf("register employee: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("register employee expected 201, got %d (body: %s)", response.StatusCode, body)
	}
	return authCookieFromResponse(t, response)
}

func login(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	payload := map[string]string{"email": email, "password": password}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", payload, ""), -1)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("login expected 200, got %d (body: %s)", response.StatusCode, body)
	}
	return authCookieFromResponse(t, response)
}
