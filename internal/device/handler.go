package device

import (
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	claimDeviceID = "device_id"
	tokenLifetime = 30 * 24 * time.Hour
)

// Handler hands out device tokens. A device token identifies one browsing
// session and one favorites set.
type Handler struct {
	secret []byte
	now    func() time.Time
}

func NewHandler(secret string) *Handler {
	return &Handler{secret: []byte(secret), now: time.Now}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/devices", h.register)
}

func (h *Handler) register(c *fiber.Ctx) error {
	deviceID := uuid.NewString()
	signed, err := h.IssueToken(deviceID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"deviceId": deviceID,
		"token":    signed,
	})
}

// IssueToken signs a token carrying deviceID.
func (h *Handler) IssueToken(deviceID string) (string, error) {
	claims := jwt.MapClaims{
		claimDeviceID: deviceID,
		"exp":         h.now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

// Middleware rejects requests without a valid device token.
func Middleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	})
}

// GetDeviceIDFromCtx reads the device id placed in Locals by Middleware.
func GetDeviceIDFromCtx(c *fiber.Ctx) (string, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	id, ok := claims[claimDeviceID].(string)
	if !ok || id == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}
