package favorite

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/eatery-backend/internal/device"
)

// Handler exposes the raw favorite entries of a device so they can be
// exported from one device and imported on another.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/favorites/entries", h.getEntries)
	app.Post("/api/v1/favorites/entries", h.addEntry)
}

func (h *Handler) addEntry(c *fiber.Ctx) error {
	payload := new(Favorite)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	deviceID, err := device.GetDeviceIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.AddFavorite(deviceID, *payload); err != nil {
		switch {
		case errors.Is(err, ErrInvalidFavorite):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
		case errors.Is(err, ErrAlreadyFavorite):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "restaurant already in favorites"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(payload)
}

func (h *Handler) getEntries(c *fiber.Ctx) error {
	deviceID, err := device.GetDeviceIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	favs, err := h.service.GetFavorites(deviceID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(favs)
}
