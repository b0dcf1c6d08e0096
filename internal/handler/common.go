// Package handler exposes the HTTP layer: public catalogue browsing,
// customer booking endpoints and the admin back-office. Handlers bind
// and validate input, call repositories and translate sentinel errors
// into HTTP responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-booking/internal/booking"
	"github.com/iliyamo/cinema-room-booking/internal/repository"
)

// pathID parses the numeric ":id" path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

// queryInt parses an optional integer query parameter with a default.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

// repoError maps repository and domain sentinel errors onto HTTP
// responses. Anything unrecognized is a 500.
func repoError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrConsumableNotFound),
		errors.Is(err, repository.ErrFormulaNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, booking.ErrSlotConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrImmutable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "completed bookings cannot be modified"})
	case errors.Is(err, booking.ErrInvalidTimeFormat),
		errors.Is(err, booking.ErrInvalidRange),
		errors.Is(err, booking.ErrInvalidDuration),
		errors.Is(err, booking.ErrIncompleteSlot),
		errors.Is(err, booking.ErrUnknownConsumable),
		errors.Is(err, booking.ErrInvalidQuantity),
		errors.Is(err, booking.ErrGuestCount),
		errors.Is(err, booking.ErrBadTransition):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// validDate reports whether s is a real ISO "YYYY-MM-DD" calendar
// date. Shape-only checking would let "2026-02-30" through to the
// INSERT and surface as a 500 instead of a 400.
func validDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
