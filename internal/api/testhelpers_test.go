package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sonali689/rebate-portal/internal/config"
	"github.com/sonali689/rebate-portal/internal/db"
)

const testAdminEmail = "warden@hostel.test"

// captureNotifier records dispatched codes instead of sending mail.
type captureNotifier struct {
	mu    sync.Mutex
	codes map[string]string
}

func (notifier *captureNotifier) Dispatch(to string, code string, purpose string) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if notifier.codes == nil {
		notifier.codes = map[string]string{}
	}
	notifier.codes[to] = code
}

func (notifier *captureNotifier) codeFor(t *testing.T, email string) string {
	t.Helper()
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	code, found := notifier.codes[email]
	if !found {
		t.Fatalf("no code was dispatched to %s", email)
	}
	return code
}

func newTestApp(t *testing.T) (*fiber.App, *captureNotifier) {
	t.Helper()

	workDir := t.TempDir()
	database, err := db.OpenSQLite(filepath.Join(workDir, "api-test.db"))
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

	cfg := config.Config{
		SecretKey:      "api-test-secret",
		AccessTokenTTL: 30 * time.Minute,
		OTPTTL:         10 * time.Minute,
		AdminEmails:    []string{testAdminEmail},
		UploadDir:      filepath.Join(workDir, "uploads"),
	}

	notifier := &captureNotifier{}
	handler := NewHandler(database, cfg, notifier)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, notifier
}

func jsonRequest(t *testing.T, method string, target string, payload any, token string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return request
}

func doJSON(t *testing.T, app *fiber.App, request *http.Request, wantStatus int) map[string]any {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d (body: %s)", request.Method, request.URL.Path, response.StatusCode, wantStatus, raw)
	}

	decoded := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response body %q: %v", raw, err)
		}
	}
	return decoded
}

func doJSONList(t *testing.T, app *fiber.App, request *http.Request, wantStatus int) []map[string]any {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if response.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d (body: %s)", request.Method, request.URL.Path, response.StatusCode, wantStatus, raw)
	}

	decoded := []map[string]any{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
	return decoded
}

// loginStudent walks the full register + verify flow and returns a token.
func loginStudent(t *testing.T, app *fiber.App, notifier *captureNotifier, email string, rollNumber string) string {
	t.Helper()

	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"name":        "Test Student",
		"email":       email,
		"roll_number": rollNumber,
		"hostel":      "Hall 6",
		"room_number": "A-10",
	}, ""), fiber.StatusOK)

	return verifyCode(t, app, notifier, email)
}

func loginAdmin(t *testing.T, app *fiber.App, notifier *captureNotifier) string {
	t.Helper()

	doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email": testAdminEmail,
	}, ""), fiber.StatusOK)

	return verifyCode(t, app, notifier, testAdminEmail)
}

func verifyCode(t *testing.T, app *fiber.App, notifier *captureNotifier, email string) string {
	t.Helper()

	body := doJSON(t, app, jsonRequest(t, fiber.MethodPost, "/api/auth/verify-otp", fiber.Map{
		"email":    email,
		"otp_code": notifier.codeFor(t, email),
	}, ""), fiber.StatusOK)

	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("no access token in response %v", body)
	}
	return token
}
