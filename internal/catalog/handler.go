package catalog

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/eatery-backend/internal/device"
	"github.com/wichananm65/eatery-backend/internal/directory"
	"github.com/wichananm65/eatery-backend/internal/favorite"
	"github.com/wichananm65/eatery-backend/internal/interface/presenter"
	"github.com/wichananm65/eatery-backend/internal/restaurant"
)

type Handler struct {
	sessions  *Sessions
	presenter *presenter.RestaurantPresenter
}

func NewHandler(sessions *Sessions) *Handler {
	return &Handler{sessions: sessions, presenter: presenter.NewRestaurantPresenter()}
}

type scrollRequest struct {
	Offset         float64 `json:"offset"`
	ContentHeight  float64 `json:"contentHeight"`
	ViewportHeight float64 `json:"viewportHeight"`
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/restaurants", h.getRestaurants)
	app.Post("/api/v1/restaurants/next", h.nextPage)
	app.Post("/api/v1/restaurants/scroll", h.scroll)
	app.Get("/api/v1/restaurants/:id", h.getRestaurant)
	app.Post("/api/v1/restaurants/:id/favorite", h.toggleFavorite)

	app.Get("/api/v1/favorites", h.getFavorites)
	app.Delete("/api/v1/favorites/:id", h.unfavorite)

	app.Get("/api/v1/layout/grid", h.gridLayout)
	app.Post("/api/v1/layout/grid/items/:index/select", h.selectGridItem)
	app.Post("/api/v1/layout/grid/items/:index/favorite", h.favoriteGridItem)
	app.Post("/api/v1/layout/list/items/:index/select", h.selectListItem)
	app.Delete("/api/v1/layout/list/items/:index", h.unfavoriteListItem)

	app.Delete("/api/v1/session", h.dropSession)
}

func (h *Handler) session(c *fiber.Ctx) (*Session, error) {
	deviceID, err := device.GetDeviceIDFromCtx(c)
	if err != nil {
		return nil, err
	}
	return h.sessions.Get(deviceID), nil
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
}

// fetchError translates directory failures into gateway responses.
func fetchError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, directory.ErrNoConnectivity):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "restaurant directory unreachable"})
	case errors.Is(err, directory.ErrBadStatus), errors.Is(err, directory.ErrDecodeFailure):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func (h *Handler) renderGrid(c *fiber.Ctx, sess *Session, records []restaurant.Restaurant, extra fiber.Map) error {
	diff := sess.Grid.Update(records)
	body := fiber.Map{
		"restaurants": sess.Grid.Items(),
		"diff":        diff,
		"nextOffset":  sess.Restaurants.NextOffset(),
		"exhausted":   sess.Restaurants.Exhausted(),
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(body)
}

func (h *Handler) getRestaurants(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}
	if err := sess.Restaurants.SyncFavorites(); err != nil {
		log.Printf("catalog: favorite sync failed: %v", err)
	}
	return h.renderGrid(c, sess, sess.Restaurants.Search(c.Query("q")), nil)
}

func (h *Handler) nextPage(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}

	if c.Query("lat") != "" || c.Query("lon") != "" {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
		if errLat != nil || errLon != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid lat/lon"})
		}
		sess.Restaurants.MoveTo(restaurant.Origin{Lat: lat, Lon: lon})
	}

	loaded, err := sess.Restaurants.LoadNextPage(c.UserContext())
	if err != nil {
		return fetchError(c, err)
	}
	return h.renderGrid(c, sess, sess.Restaurants.Restaurants(), fiber.Map{"loaded": loaded})
}

func (h *Handler) scroll(c *fiber.Ctx) error {
	payload := new(scrollRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}

	fired, err := sess.Grid.Scrolled(c.UserContext(), payload.Offset, payload.ContentHeight, payload.ViewportHeight)
	if err != nil {
		return fetchError(c, err)
	}
	return h.renderGrid(c, sess, sess.Restaurants.Restaurants(), fiber.Map{"fetched": fired})
}

func (h *Handler) getRestaurant(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}
	rec, ok := sess.Restaurants.Record(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "restaurant not found"})
	}
	return c.JSON(h.presenter.ToResponse(rec))
}

func (h *Handler) toggleFavorite(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}
	rec, err := sess.Restaurants.ToggleFavorite(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrUnknownRestaurant) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "restaurant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.presenter.ToResponse(rec))
}

func (h *Handler) getFavorites(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}
	records, err := sess.Favorites.Restaurants(c.UserContext(), c.QueryBool("backfill"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	diff := sess.List.Update(records)
	return c.JSON(fiber.Map{
		"favorites":     sess.List.Items(),
		"diff":          diff,
		"rowHeight":     presenter.FavoriteRowHeight,
		"contentHeight": sess.List.ContentHeight(),
	})
}

func (h *Handler) unfavorite(c *fiber.Ctx) error {
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}
	id := c.Params("id")
	if err := sess.Favorites.Unfavorite(id); err != nil {
		return favoriteError(c, err)
	}
	return c.JSON(fiber.Map{"message": "removed", "id": id})
}

func favoriteError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, favorite.ErrNotFavorite):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "restaurant not in favorites"})
	case errors.Is(err, favorite.ErrAlreadyFavorite):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "restaurant already in favorites"})
	case errors.Is(err, favorite.ErrInvalidFavorite):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}

func (h *Handler) gridLayout(c *fiber.Ctx) error {
	width, err := strconv.ParseFloat(c.Query("width"), 64)
	if err != nil || !presenter.ValidWidth(width) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid width"})
	}
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}
	return c.JSON(sess.Grid.SizeForItems(width))
}

func itemIndex(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("index"))
}

func (h *Handler) selectGridItem(c *fiber.Ctx) error {
	index, err := itemIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid index"})
	}
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := sess.Grid.Select(index)
	switch {
	case errors.Is(err, presenter.ErrIndexOutOfRange), errors.Is(err, ErrUnknownRestaurant):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "item not found"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	rec, _ := sess.Restaurants.Record(id)
	return c.JSON(h.presenter.ToResponse(rec))
}

func (h *Handler) favoriteGridItem(c *fiber.Ctx) error {
	index, err := itemIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid index"})
	}
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := sess.Grid.ToggleFavorite(index)
	switch {
	case errors.Is(err, presenter.ErrIndexOutOfRange), errors.Is(err, ErrUnknownRestaurant):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "item not found"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	rec, _ := sess.Restaurants.Record(id)
	return c.JSON(h.presenter.ToResponse(rec))
}

func (h *Handler) selectListItem(c *fiber.Ctx) error {
	index, err := itemIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid index"})
	}
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := sess.List.Select(index)
	if errors.Is(err, presenter.ErrIndexOutOfRange) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "item not found"})
	}
	if err != nil {
		return favoriteError(c, err)
	}
	return c.JSON(fiber.Map{"id": id})
}

func (h *Handler) unfavoriteListItem(c *fiber.Ctx) error {
	index, err := itemIndex(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid index"})
	}
	sess, err := h.session(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := sess.List.Unfavorite(index)
	if errors.Is(err, presenter.ErrIndexOutOfRange) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "item not found"})
	}
	if err != nil {
		return favoriteError(c, err)
	}
	return c.JSON(fiber.Map{"message": "removed", "id": id})
}

func (h *Handler) dropSession(c *fiber.Ctx) error {
	deviceID, err := device.GetDeviceIDFromCtx(c)
	if err != nil {
		return unauthorized(c)
	}
	h.sessions.Drop(deviceID)
	return c.JSON(fiber.Map{"message": "session cleared"})
}
