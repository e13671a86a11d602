package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "segredo-de-teste"

func authApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(NewAuthMiddleware(secret))
	app.Get("/quem", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		return c.SendString(userID)
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("erro ao assinar token: %v", err)
	}
	return signed
}

func TestAuthMissingToken(t *testing.T) {
	app := authApp(testSecret)

	req := httptest.NewRequest("GET", "/quem", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	app := authApp(testSecret)

	req := httptest.NewRequest("GET", "/quem", nil)
	req.Header.Set("Authorization", "Bearer nao-e-um-jwt")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestAuthWrongSecret(t *testing.T) {
	app := authApp(testSecret)
	signed := signToken(t, "outro-segredo", jwt.MapClaims{"sub": "user-1"})

	req := httptest.NewRequest("GET", "/quem", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestAuthValidTokenExposesUserID(t *testing.T) {
	app := authApp(testSecret)
	signed := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/quem", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status: %d", resp.StatusCode)
	}

	body := make([]byte, 32)
	n, _ := resp.Body.Read(body)
	if got := string(body[:n]); got != "user-1" {
		t.Fatalf("user_id: %q", got)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	app := authApp(testSecret)
	signed := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/quem", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestAuthDisabledWithoutSecret(t *testing.T) {
	app := authApp("")

	req := httptest.NewRequest("GET", "/quem", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}
