package webserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/svera/camposanto/internal/index"
	"github.com/svera/camposanto/internal/webserver"
	"github.com/svera/camposanto/internal/webserver/infrastructure"
	"gorm.io/gorm"
)

const newAdminPassword = "new-admin-password"

func TestGET(t *testing.T) {
	var cases = []struct {
		name           string
		url            string
		expectedStatus int
	}{
		{"Health check is public", "/healthz", http.StatusOK},
		{"Server returns not found if the user tries to access a non-existent URL", "/xx", http.StatusNotFound},
		{"Burial records require a session", "/burial-records", http.StatusUnauthorized},
		{"Unknown public code is not found", "/public/grave/unknown", http.StatusNotFound},
		{"Public search is available without a session", "/public/search?q=garcia", http.StatusOK},
	}

	db := infrastructure.Connect("file::memory:")
	app := bootstrapApp(db, &infrastructure.NoEmail{}, afero.NewMemMapFs())

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, tcase.url, nil)

			response, err := app.Test(req)
			if err != nil {
				t.Errorf("Unexpected error: %v", err.Error())
			}
			if response.StatusCode != tcase.expectedStatus {
				t.Errorf("Wrong status code received, expected %d, got %d", tcase.expectedStatus, response.StatusCode)
			}
		})
	}
}

func bootstrapApp(db *gorm.DB, sender webserver.Sender, appFs afero.Fs) *fiber.App {
	webserverConfig := webserver.Config{
		Version:                 "test",
		FQDN:                    "localhost:3000",
		JwtSecret:               []byte("secret"),
		SessionTimeout:          24 * time.Hour,
		InvitationTimeout:       72 * time.Hour,
		RecoveryTimeout:         2 * time.Hour,
		MinPasswordLength:       8,
		TemporaryPasswordLength: 12,
		SearchMaxResults:        20,
		PhotosDir:               "photos",
		PhotoMaxWidth:           800,
		DefaultLanguage:         "en",
	}

	indexFile, err := bleve.NewMemOnly(index.Mapping())
	if err != nil {
		log.Fatal(err)
	}

	controllers, _ := webserver.SetupControllers(webserverConfig, db, index.NewBleve(indexFile), sender, appFs)
	return webserver.New(webserverConfig, controllers)
}

func request(app *fiber.App, method, url, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	return app.Test(req, -1)
}

func mustRequest(t *testing.T, app *fiber.App, method, url, token string, body any, expectedStatus int) *http.Response {
	t.Helper()

	response, err := request(app, method, url, token, body)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err.Error())
	}
	mustReturnStatus(response, expectedStatus, t)
	return response
}

func mustReturnStatus(response *http.Response, expectedStatus int, t *testing.T) {
	t.Helper()

	if response.StatusCode != expectedStatus {
		t.Errorf("Expected status %d, received %d", expectedStatus, response.StatusCode)
	}
}

func decode(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("Unexpected error decoding response: %v", err)
	}
}

type session struct {
	Token              string    `json:"token"`
	ExpiresAt          time.Time `json:"expires_at"`
	MustChangePassword bool      `json:"must_change_password"`
}

func signIn(t *testing.T, app *fiber.App, email, password string) session {
	t.Helper()

	response := mustRequest(t, app, http.MethodPost, "/sessions", "", fiber.Map{"email": email, "password": password}, http.StatusOK)

	var s session
	decode(t, response, &s)
	return s
}

// operatorToken signs in as the seeded admin and replaces its initial
// password, which is required before managing records
func operatorToken(t *testing.T, app *fiber.App) string {
	t.Helper()

	s := signIn(t, app, infrastructure.DefaultAdminEmail, infrastructure.DefaultAdminPassword)
	response := mustRequest(t, app, http.MethodPost, "/users/me/password", s.Token, fiber.Map{
		"current_password": infrastructure.DefaultAdminPassword,
		"new_password":     newAdminPassword,
	}, http.StatusOK)

	decode(t, response, &s)
	return s.Token
}

type apiError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Field   string            `json:"field"`
	Errors  map[string]string `json:"errors"`
}

func mustReturnError(t *testing.T, response *http.Response, expectedStatus int, expectedError string) apiError {
	t.Helper()

	mustReturnStatus(response, expectedStatus, t)

	var body apiError
	decode(t, response, &body)
	if body.Error != expectedError {
		t.Errorf("Wrong error, expected '%s', got '%s'", expectedError, body.Error)
	}
	return body
}

type recordView struct {
	ID                   string `json:"id"`
	FullName             string `json:"full_name"`
	HasPhoto             bool   `json:"has_photo"`
	IsPubliclySearchable bool   `json:"is_publicly_searchable"`
	Contacts             []struct {
		Slot   string `json:"slot"`
		Email  string `json:"email"`
		Linked bool   `json:"linked"`
	} `json:"contacts"`
}

func createRecord(t *testing.T, app *fiber.App, token string, fields fiber.Map) recordView {
	t.Helper()

	response := mustRequest(t, app, http.MethodPost, "/burial-records", token, fields, http.StatusCreated)

	var record recordView
	decode(t, response, &record)
	return record
}
