package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-booking/internal/booking"
)

// slotDTO is one bookable interval of a room's day grid.
type slotDTO struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// RoomSlots handles GET /v1/rooms/:id/slots?date=YYYY-MM-DD. It lays
// the day out as a grid of fixed-step slots between the opening hours
// and marks each against the room's existing bookings. An optional
// interval query overrides the default step. The grid is advisory:
// customers may book any start/end inside opening hours, and the
// final check runs in the booking transaction anyway.
func (h *PublicHandler) RoomSlots(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	date := c.QueryParam("date")
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	interval := queryInt(c, "interval", h.Cfg.SlotMinutes)
	if interval < 15 || interval > 240 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "interval must be between 15 and 240 minutes"})
	}
	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, id); err != nil {
		return repoError(c, err)
	}

	starts, err := booking.GenerateTimeSlots(h.Cfg.OpenHour, h.Cfg.CloseHour, interval)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "slot grid misconfigured"})
	}
	existing, err := h.Bookings.BookedSlotsForDate(ctx, id, date)
	if err != nil {
		return repoError(c, err)
	}

	out := make([]slotDTO, 0, len(starts))
	for _, start := range starts {
		s, _ := booking.ParseClock(start)
		e := s + booking.Clock(interval)
		avail := booking.CheckSlot(existing, booking.Slot{Date: date, Start: s, End: e})
		out = append(out, slotDTO{Start: s.String(), End: e.String(), Available: avail.Available})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "slots": out})
}

// CheckAvailability handles GET /v1/rooms/:id/availability with date,
// start and end query parameters. It runs the optimistic overlap check
// against the room's bookings for that date and, when the slot is
// taken, names the conflicting booking by reference.
func (h *PublicHandler) CheckAvailability(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	date := c.QueryParam("date")
	if !validDate(date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	start, err := booking.ParseClock(c.QueryParam("start"))
	if err != nil {
		return repoError(c, err)
	}
	end, err := booking.ParseClock(c.QueryParam("end"))
	if err != nil {
		return repoError(c, err)
	}
	if end <= start {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be after start"})
	}

	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, id); err != nil {
		return repoError(c, err)
	}
	existing, err := h.Bookings.BookedSlotsForDate(ctx, id, date)
	if err != nil {
		return repoError(c, err)
	}

	avail := booking.CheckSlot(existing, booking.Slot{Date: date, Start: start, End: end})
	resp := echo.Map{"available": avail.Available}
	if avail.Conflict != nil {
		resp["conflict"] = echo.Map{
			"reference": avail.Conflict.Reference,
			"start":     avail.Conflict.Slot.Start.String(),
			"end":       avail.Conflict.Slot.End.String(),
		}
	}
	return c.JSON(http.StatusOK, resp)
}
