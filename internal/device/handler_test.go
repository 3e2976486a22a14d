package device

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRegisterAndAccessProtectedRoute(t *testing.T) {
	h := NewHandler("test-secret")
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(Middleware("test-secret"))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, err := GetDeviceIDFromCtx(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(id)
	})

	res, err := app.Test(httptest.NewRequest("POST", "/api/v1/devices", nil))
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	var body struct {
		DeviceID string `json:"deviceId"`
		Token    string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.DeviceID == "" || body.Token == "" {
		t.Fatalf("expected device id and token, got %+v", body)
	}

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	res2, err := app.Test(req)
	if err != nil {
		t.Fatalf("whoami request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with token, got %d", res2.StatusCode)
	}

	res3, _ := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	if res3.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res3.StatusCode)
	}
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	signed, err := NewHandler("other").IssueToken("dev-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	app := fiber.New()
	app.Use(Middleware("test-secret"))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign token, got %d", res.StatusCode)
	}
}

func TestGetDeviceIDFromCtx_MissingToken(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		if _, err := GetDeviceIDFromCtx(c); err == nil {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.SendStatus(fiber.StatusUnauthorized)
	})
	res, _ := app.Test(httptest.NewRequest("GET", "/x", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
}
