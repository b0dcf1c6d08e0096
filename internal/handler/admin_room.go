package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-booking/internal/booking"
	"github.com/iliyamo/cinema-room-booking/internal/config"
	"github.com/iliyamo/cinema-room-booking/internal/middleware"
	"github.com/iliyamo/cinema-room-booking/internal/model"
	"github.com/iliyamo/cinema-room-booking/internal/repository"
)

// AdminHandler serves the back-office: room and consumable management,
// the full booking list and the dashboard stats.
type AdminHandler struct {
	Cfg         config.Config
	Rooms       *repository.RoomRepo
	Bookings    *repository.BookingRepo
	Consumables *repository.ConsumableRepo
	Cache       *middleware.CacheInvalidator
}

func NewAdminHandler(cfg config.Config, rooms *repository.RoomRepo, bookings *repository.BookingRepo, cons *repository.ConsumableRepo, cache *middleware.CacheInvalidator) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Rooms: rooms, Bookings: bookings, Consumables: cons, Cache: cache}
}

type roomReq struct {
	Name              string   `json:"name"`
	Description       *string  `json:"description"`
	Capacity          int      `json:"capacity"`
	PricePerHourCents int64    `json:"pricePerHourCents"`
	IsAvailable       *bool    `json:"isAvailable"`
	Equipment         []string `json:"equipment"`
	ImageURL          *string  `json:"imageUrl"`
}

func (r roomReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name required"
	}
	if r.Capacity < 1 {
		return "capacity must be positive"
	}
	if r.PricePerHourCents < 0 {
		return "pricePerHourCents must be non-negative"
	}
	return ""
}

// ListRooms handles GET /v1/admin/rooms. Unlike the public list it
// includes unavailable rooms; same search and pagination knobs.
func (h *AdminHandler) ListRooms(c echo.Context) error {
	rooms, err := h.Rooms.ListAll(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	query := strings.TrimSpace(c.QueryParam("q"))
	filtered := booking.Filter(rooms, func(r *model.Room) bool {
		return booking.MatchText(query, r.Name)
	})
	out := make([]roomDTO, 0, len(filtered))
	for _, r := range filtered {
		out = append(out, toRoomDTO(r))
	}
	page := booking.Paginate(out, queryInt(c, "page", 1), pageSize(c))
	return c.JSON(http.StatusOK, pageResult(page))
}

// CreateRoom handles POST /v1/admin/rooms.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	m := &model.Room{
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		Capacity:          req.Capacity,
		PricePerHourCents: req.PricePerHourCents,
		IsAvailable:       req.IsAvailable == nil || *req.IsAvailable,
		Equipment:         req.Equipment,
		ImageURL:          req.ImageURL,
	}
	ctx := c.Request().Context()
	if err := h.Rooms.Create(ctx, m); err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "rooms")
	return c.JSON(http.StatusCreated, toRoomDTO(m))
}

// UpdateRoom handles PUT /v1/admin/rooms/:id.
func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	m, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	m.Name = strings.TrimSpace(req.Name)
	m.Description = req.Description
	m.Capacity = req.Capacity
	m.PricePerHourCents = req.PricePerHourCents
	m.Equipment = req.Equipment
	m.ImageURL = req.ImageURL
	if req.IsAvailable != nil {
		m.IsAvailable = *req.IsAvailable
	}
	if err := h.Rooms.Update(ctx, m); err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "rooms")
	return c.JSON(http.StatusOK, toRoomDTO(m))
}

// DeleteRoom handles DELETE /v1/admin/rooms/:id. Rooms with pending or
// confirmed bookings cannot be removed (409).
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx := c.Request().Context()
	if err := h.Rooms.Delete(ctx, id); err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "rooms")
	return c.NoContent(http.StatusNoContent)
}
