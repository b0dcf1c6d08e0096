package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-booking/internal/booking"
	"github.com/iliyamo/cinema-room-booking/internal/config"
	"github.com/iliyamo/cinema-room-booking/internal/model"
	"github.com/iliyamo/cinema-room-booking/internal/repository"
)

// defaultPageSize caps public list responses; clients can lower it but
// not raise it past maxPageSize.
const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// PublicHandler serves the unauthenticated catalogue: rooms,
// consumables, formulas and availability lookups.
type PublicHandler struct {
	Cfg         config.Config
	Rooms       *repository.RoomRepo
	Bookings    *repository.BookingRepo
	Consumables *repository.ConsumableRepo
	Formulas    *repository.FormulaRepo
}

func NewPublicHandler(cfg config.Config, rooms *repository.RoomRepo, bookings *repository.BookingRepo, cons *repository.ConsumableRepo, formulas *repository.FormulaRepo) *PublicHandler {
	return &PublicHandler{Cfg: cfg, Rooms: rooms, Bookings: bookings, Consumables: cons, Formulas: formulas}
}

// pageSize clamps the requested page size into [1, maxPageSize].
func pageSize(c echo.Context) int {
	size := queryInt(c, "pageSize", defaultPageSize)
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return size
}

// ListRooms handles GET /v1/rooms. Supports free-text search over name,
// description and equipment (q), a minimum capacity filter (capacity),
// an equipment filter matching one listed item and pagination (page,
// pageSize). Unavailable rooms are hidden.
func (h *PublicHandler) ListRooms(c echo.Context) error {
	rooms, err := h.Rooms.ListAll(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}

	query := strings.TrimSpace(c.QueryParam("q"))
	equipment := strings.TrimSpace(c.QueryParam("equipment"))
	minCap := queryInt(c, "capacity", 0)

	filtered := booking.Filter(rooms,
		func(r *model.Room) bool { return r.IsAvailable },
		func(r *model.Room) bool { return minCap <= 0 || r.Capacity >= minCap },
		func(r *model.Room) bool { return booking.MatchText(equipment, r.Equipment...) },
		func(r *model.Room) bool {
			fields := append([]string{r.Name}, r.Equipment...)
			if r.Description != nil {
				fields = append(fields, *r.Description)
			}
			return booking.MatchText(query, fields...)
		},
	)

	out := make([]roomDTO, 0, len(filtered))
	for _, r := range filtered {
		out = append(out, toRoomDTO(r))
	}
	page := booking.Paginate(out, queryInt(c, "page", 1), pageSize(c))
	return c.JSON(http.StatusOK, pageResult(page))
}

// GetRoom handles GET /v1/rooms/:id.
func (h *PublicHandler) GetRoom(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toRoomDTO(room))
}

// ListConsumables handles GET /v1/consumables. Optional category
// filter; unavailable items are listed but flagged so menus can grey
// them out.
func (h *PublicHandler) ListConsumables(c echo.Context) error {
	items, err := h.Consumables.ListAll(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	category := strings.TrimSpace(c.QueryParam("category"))
	if category != "" && !model.ValidCategory(category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}

	filtered := booking.Filter(items, func(m *model.Consumable) bool {
		return category == "" || m.Category == category
	})
	out := make([]consumableDTO, 0, len(filtered))
	for _, m := range filtered {
		out = append(out, toConsumableDTO(m))
	}
	page := booking.Paginate(out, queryInt(c, "page", 1), pageSize(c))
	return c.JSON(http.StatusOK, pageResult(page))
}

// ListFormulas handles GET /v1/formulas.
func (h *PublicHandler) ListFormulas(c echo.Context) error {
	items, err := h.Formulas.ListAll(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	out := make([]formulaDTO, 0, len(items))
	for _, m := range items {
		out = append(out, toFormulaDTO(m))
	}
	page := booking.Paginate(out, queryInt(c, "page", 1), pageSize(c))
	return c.JSON(http.StatusOK, pageResult(page))
}
