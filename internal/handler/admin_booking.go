package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-booking/internal/booking"
	"github.com/iliyamo/cinema-room-booking/internal/model"
)

// ListBookings handles GET /v1/admin/bookings. Filters compose with
// AND semantics: status, roomId, date and a free-text query over
// reference and date. Results are newest first, paginated.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return repoError(c, err)
	}

	status := booking.Status(strings.ToLower(strings.TrimSpace(c.QueryParam("status"))))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	roomID, _ := strconv.ParseUint(c.QueryParam("roomId"), 10, 64)
	date := strings.TrimSpace(c.QueryParam("date"))
	query := strings.TrimSpace(c.QueryParam("q"))

	filtered := booking.Filter(items,
		func(b *model.Booking) bool { return status == "" || b.Status == string(status) },
		func(b *model.Booking) bool { return roomID == 0 || b.RoomID == roomID },
		func(b *model.Booking) bool { return date == "" || b.Date == date },
		func(b *model.Booking) bool { return booking.MatchText(query, b.Reference, b.Date) },
	)

	out := make([]bookingDTO, 0, len(filtered))
	for _, b := range filtered {
		lines, err := h.Bookings.Lines(ctx, b.ID)
		if err != nil {
			return repoError(c, err)
		}
		out = append(out, toBookingDTO(b, lines))
	}
	page := booking.Paginate(out, queryInt(c, "page", 1), pageSize(c))
	return c.JSON(http.StatusOK, pageResult(page))
}

// GetBooking handles GET /v1/admin/bookings/:id.
func (h *AdminHandler) GetBooking(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	lines, err := h.Bookings.Lines(ctx, b.ID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingDTO(b, lines))
}

// UpdateBookingStatus handles PATCH /v1/admin/bookings/:id/status.
// Transitions follow the status machine: pending bookings can be
// confirmed or cancelled, confirmed ones completed or cancelled;
// anything else is a 409.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	next := booking.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	if !next.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx := c.Request().Context()
	// userID 0 skips the ownership check: admins act on any booking
	b, err := h.Bookings.UpdateStatus(ctx, id, 0, next)
	if err != nil {
		return repoError(c, err)
	}
	lines, err := h.Bookings.Lines(ctx, b.ID)
	if err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "availability")
	return c.JSON(http.StatusOK, toBookingDTO(b, lines))
}

// DeleteBooking handles DELETE /v1/admin/bookings/:id. Hard delete,
// admin only; customers cancel instead.
func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	if err := h.Bookings.Delete(ctx, id); err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "availability")
	return c.NoContent(http.StatusNoContent)
}

// roomStatDTO is one per-room row of the stats payload. Occupancy is
// today's booked minutes over the opening-hours window, 0..1.
type roomStatDTO struct {
	RoomID       uint64  `json:"roomId"`
	RoomName     string  `json:"roomName"`
	Bookings     int64   `json:"bookings"`
	MinutesToday int64   `json:"minutesToday"`
	Occupancy    float64 `json:"occupancy"`
}

// Stats handles GET /v1/admin/stats: booking counts and revenue by
// status plus bookings and today's occupancy per room.
func (h *AdminHandler) Stats(c echo.Context) error {
	byStatus, byRoom, err := h.Bookings.Stats(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	var revenue int64
	for _, s := range byStatus {
		revenue += s.RevenueCents
	}
	openMinutes := (h.Cfg.CloseHour - h.Cfg.OpenHour) * 60
	rooms := make([]roomStatDTO, 0, len(byRoom))
	for _, r := range byRoom {
		rs := roomStatDTO{RoomID: r.RoomID, RoomName: r.RoomName, Bookings: r.Bookings, MinutesToday: r.MinutesToday}
		if openMinutes > 0 {
			rs.Occupancy = math.Round(float64(r.MinutesToday)/float64(openMinutes)*100) / 100
		}
		rooms = append(rooms, rs)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"byStatus":     byStatus,
		"byRoom":       rooms,
		"revenueCents": revenue,
		"revenue":      booking.FormatCents(revenue),
	})
}
