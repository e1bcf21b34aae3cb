package webserver_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/svera/camposanto/internal/webserver/infrastructure"
)

func TestSignIn(t *testing.T) {
	db := infrastructure.Connect("file::memory:")
	app := bootstrapApp(db, &infrastructure.NoEmail{}, afero.NewMemMapFs())

	t.Run("Wrong credentials are rejected", func(t *testing.T) {
		var cases = []struct {
			name     string
			email    string
			password string
		}{
			{"Wrong password", infrastructure.DefaultAdminEmail, "wrong"},
			{"Unknown email", "nobody@example.com", infrastructure.DefaultAdminPassword},
			{"No credentials", "", ""},
		}

		for _, tcase := range cases {
			t.Run(tcase.name, func(t *testing.T) {
				response := mustRequest(t, app, http.MethodPost, "/sessions", "", fiber.Map{"email": tcase.email, "password": tcase.password}, http.StatusUnauthorized)
				body := mustReturnError(t, response, http.StatusUnauthorized, "unauthorized")
				if body.Message != "Wrong email or password" {
					t.Errorf("Wrong message, expected 'Wrong email or password', got '%s'", body.Message)
				}
			})
		}
	})

	t.Run("Error messages follow the Accept-Language header", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"email":"nobody@example.com","password":"x"}`))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err.Error())
		}
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderAcceptLanguage, "es-ES,es;q=0.9")

		response, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err.Error())
		}
		body := mustReturnError(t, response, http.StatusUnauthorized, "unauthorized")
		if body.Message != "Correo electrónico o contraseña incorrectos" {
			t.Errorf("Wrong message, expected 'Correo electrónico o contraseña incorrectos', got '%s'", body.Message)
		}
	})

	t.Run("Seeded admin must change the password before managing records", func(t *testing.T) {
		s := signIn(t, app, infrastructure.DefaultAdminEmail, infrastructure.DefaultAdminPassword)
		if !s.MustChangePassword {
			t.Error("Expected seeded admin to be forced to change the password")
		}

		response := mustRequest(t, app, http.MethodGet, "/burial-records", s.Token, nil, http.StatusForbidden)
		mustReturnError(t, response, http.StatusForbidden, "forbidden")

		response = mustRequest(t, app, http.MethodPost, "/users/me/password", s.Token, fiber.Map{
			"current_password": "wrong",
			"new_password":     newAdminPassword,
		}, http.StatusUnauthorized)
		mustReturnError(t, response, http.StatusUnauthorized, "unauthorized")

		response = mustRequest(t, app, http.MethodPost, "/users/me/password", s.Token, fiber.Map{
			"current_password": infrastructure.DefaultAdminPassword,
			"new_password":     "short",
		}, http.StatusBadRequest)
		body := mustReturnError(t, response, http.StatusBadRequest, "validation")
		if _, ok := body.Errors["new_password"]; !ok {
			t.Errorf("Expected an error for field 'new_password', got %v", body.Errors)
		}

		response = mustRequest(t, app, http.MethodPost, "/users/me/password", s.Token, fiber.Map{
			"current_password": infrastructure.DefaultAdminPassword,
			"new_password":     newAdminPassword,
		}, http.StatusOK)

		var renewed session
		decode(t, response, &renewed)
		if renewed.MustChangePassword {
			t.Error("Expected forced password change flag to be cleared")
		}

		mustRequest(t, app, http.MethodGet, "/burial-records", renewed.Token, nil, http.StatusOK)

		if s := signIn(t, app, infrastructure.DefaultAdminEmail, newAdminPassword); s.MustChangePassword {
			t.Error("Expected forced password change flag to be cleared on new sessions")
		}
	})

	t.Run("Invalid tokens are rejected", func(t *testing.T) {
		response := mustRequest(t, app, http.MethodGet, "/burial-records", "not-a-token", nil, http.StatusUnauthorized)
		mustReturnError(t, response, http.StatusUnauthorized, "unauthorized")
	})
}
