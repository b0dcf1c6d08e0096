package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-booking/internal/booking"
	"github.com/iliyamo/cinema-room-booking/internal/config"
	"github.com/iliyamo/cinema-room-booking/internal/middleware"
	"github.com/iliyamo/cinema-room-booking/internal/model"
	"github.com/iliyamo/cinema-room-booking/internal/queue"
	"github.com/iliyamo/cinema-room-booking/internal/repository"
	"github.com/iliyamo/cinema-room-booking/internal/service"
	"github.com/iliyamo/cinema-room-booking/internal/utils"
)

// CustomerHandler serves authenticated booking endpoints: quoting,
// creating, listing, editing and cancelling the caller's bookings.
type CustomerHandler struct {
	Cfg         config.Config
	Rooms       *repository.RoomRepo
	Bookings    *repository.BookingRepo
	Consumables *repository.ConsumableRepo
	Formulas    *repository.FormulaRepo
	Publisher   *service.Publisher
	Cache       *middleware.CacheInvalidator
}

func NewCustomerHandler(cfg config.Config, rooms *repository.RoomRepo, bookings *repository.BookingRepo, cons *repository.ConsumableRepo, formulas *repository.FormulaRepo, pub *service.Publisher, cache *middleware.CacheInvalidator) *CustomerHandler {
	return &CustomerHandler{
		Cfg:         cfg,
		Rooms:       rooms,
		Bookings:    bookings,
		Consumables: cons,
		Formulas:    formulas,
		Publisher:   pub,
		Cache:       cache,
	}
}

type selectionReq struct {
	ConsumableID uint64 `json:"consumableId"`
	Quantity     int    `json:"quantity"`
}

type bookingReq struct {
	RoomID          uint64         `json:"roomId"`
	FormulaID       *uint64        `json:"formulaId"`
	Date            string         `json:"date"`
	StartTime       string         `json:"startTime"`
	EndTime         string         `json:"endTime"`
	NumberOfGuests  int            `json:"numberOfGuests"`
	SpecialRequests *string        `json:"specialRequests"`
	Consumables     []selectionReq `json:"consumables"`
}

func (r bookingReq) selections() []booking.Selection {
	out := make([]booking.Selection, 0, len(r.Consumables))
	for _, s := range r.Consumables {
		out = append(out, booking.Selection{ConsumableID: s.ConsumableID, Quantity: s.Quantity})
	}
	return out
}

// priceBasis resolves how the room is charged: flat formula price when
// a formula is referenced, hourly rate otherwise.
func (h *CustomerHandler) priceBasis(ctx context.Context, room *model.Room, formulaID *uint64) (booking.PriceBasis, error) {
	if formulaID == nil {
		return booking.Hourly(room.PricePerHourCents), nil
	}
	f, err := h.Formulas.GetByID(ctx, *formulaID)
	if err != nil {
		return booking.PriceBasis{}, err
	}
	return booking.Formula(f.BasePriceCents), nil
}

// Quote handles POST /v1/bookings/quote: price a candidate booking
// without persisting anything.
func (h *CustomerHandler) Quote(c echo.Context) error {
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 || !validDate(req.Date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId and date required"})
	}
	ctx := c.Request().Context()

	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return repoError(c, err)
	}
	basis, err := h.priceBasis(ctx, room, req.FormulaID)
	if err != nil {
		return repoError(c, err)
	}
	start, err := booking.ParseClock(req.StartTime)
	if err != nil {
		return repoError(c, err)
	}
	end, err := booking.ParseClock(req.EndTime)
	if err != nil {
		return repoError(c, err)
	}
	cat, err := h.Consumables.Catalogue(ctx)
	if err != nil {
		return repoError(c, err)
	}

	quote, err := booking.ComputeQuote(basis, start, end, req.selections(), cat)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toQuoteDTO(quote))
}

// Create handles POST /v1/bookings. The request is walked through the
// draft state machine so every guard (slot completeness, optimistic
// availability, guest capacity, quote validity) runs in order, then the
// submitter persists it with the authoritative conflict check inside
// the transaction. The total is always the server-side quote.
func (h *CustomerHandler) Create(c echo.Context) error {
	u, ok := middleware.UserFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 || !validDate(req.Date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId and date required"})
	}
	ctx := c.Request().Context()

	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return repoError(c, err)
	}
	if !room.IsAvailable {
		return c.JSON(http.StatusConflict, echo.Map{"error": "room is not open for booking"})
	}
	basis, err := h.priceBasis(ctx, room, req.FormulaID)
	if err != nil {
		return repoError(c, err)
	}
	existing, err := h.Bookings.BookedSlotsForDate(ctx, req.RoomID, req.Date)
	if err != nil {
		return repoError(c, err)
	}
	cat, err := h.Consumables.Catalogue(ctx)
	if err != nil {
		return repoError(c, err)
	}

	var created *model.Booking
	submit := booking.SubmitterFunc(func(ctx context.Context, dr booking.DraftRoom, slot booking.Slot, guests int, items []booking.Selection, special string, quote booking.Quote) (booking.SubmitResult, error) {
		lines := make([]model.BookingConsumable, 0, len(quote.Lines))
		for _, l := range quote.Lines {
			lines = append(lines, model.BookingConsumable{
				ConsumableID:   l.ConsumableID,
				Quantity:       l.Quantity,
				UnitPriceCents: l.UnitCents,
			})
		}
		var specialPtr *string
		if s := strings.TrimSpace(special); s != "" {
			specialPtr = &s
		}
		m, err := h.Bookings.Create(ctx, repository.CreateInput{
			Reference:       utils.NewBookingReference(),
			RoomID:          dr.ID,
			UserID:          u.ID,
			FormulaID:       req.FormulaID,
			Date:            slot.Date,
			StartTime:       slot.Start.String(),
			EndTime:         slot.End.String(),
			NumberOfGuests:  guests,
			TotalPriceCents: quote.TotalCents,
			SpecialRequests: specialPtr,
			Lines:           lines,
		})
		if err != nil {
			return booking.SubmitResult{}, err
		}
		created = m
		return booking.SubmitResult{BookingID: m.ID, Reference: m.Reference, TotalCents: m.TotalPriceCents}, nil
	})

	draft := booking.NewDraft(booking.DraftRoom{ID: room.ID, Capacity: room.Capacity, Basis: basis}, existing, cat, submit)
	special := ""
	if req.SpecialRequests != nil {
		special = *req.SpecialRequests
	}
	steps := []func() error{
		func() error { return draft.SelectSlot(req.Date, req.StartTime, req.EndTime) },
		draft.Next,
		func() error { return draft.SetDetails(req.NumberOfGuests, special) },
		func() error { return draft.SetConsumables(req.selections()) },
		draft.Next,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return repoError(c, err)
		}
	}
	if _, err := draft.Submit(ctx); err != nil {
		return repoError(c, err)
	}

	lines, err := h.Bookings.Lines(ctx, created.ID)
	if err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "availability")
	h.Publisher.BookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID:       created.ID,
		Reference:       created.Reference,
		UserID:          created.UserID,
		RoomID:          created.RoomID,
		RoomName:        room.Name,
		Date:            created.Date,
		StartTime:       created.StartTime,
		EndTime:         created.EndTime,
		NumberOfGuests:  created.NumberOfGuests,
		TotalPriceCents: created.TotalPriceCents,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, toBookingDTO(created, lines))
}

// ListMine handles GET /v1/my-bookings with optional status filter,
// free-text search over reference and date, and pagination.
func (h *CustomerHandler) ListMine(c echo.Context) error {
	u, ok := middleware.UserFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	items, err := h.Bookings.ListByUser(ctx, u.ID)
	if err != nil {
		return repoError(c, err)
	}

	status := booking.Status(strings.ToLower(strings.TrimSpace(c.QueryParam("status"))))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	query := strings.TrimSpace(c.QueryParam("q"))

	filtered := booking.Filter(items,
		func(b *model.Booking) bool { return status == "" || b.Status == string(status) },
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

// GetMine handles GET /v1/bookings/:id for the booking's owner.
func (h *CustomerHandler) GetMine(c echo.Context) error {
	u, ok := middleware.UserFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.GetByIDForUser(ctx, id, u.ID)
	if err != nil {
		return repoError(c, err)
	}
	lines, err := h.Bookings.Lines(ctx, b.ID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingDTO(b, lines))
}

// Update handles PATCH /v1/bookings/:id. The slot, guest count and
// consumable lines can change while the booking is pending or
// confirmed; the total is recomputed server-side and the overlap check
// reruns with the booking itself excluded.
func (h *CustomerHandler) Update(c echo.Context) error {
	u, ok := middleware.UserFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx := c.Request().Context()

	current, err := h.Bookings.GetByIDForUser(ctx, id, u.ID)
	if err != nil {
		return repoError(c, err)
	}

	// unset fields inherit the current values
	if req.Date == "" {
		req.Date = current.Date
	}
	if req.StartTime == "" {
		req.StartTime = current.StartTime
	}
	if req.EndTime == "" {
		req.EndTime = current.EndTime
	}
	if req.NumberOfGuests == 0 {
		req.NumberOfGuests = current.NumberOfGuests
	}
	if req.SpecialRequests == nil {
		req.SpecialRequests = current.SpecialRequests
	}
	if !validDate(req.Date) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	room, err := h.Rooms.GetByID(ctx, current.RoomID)
	if err != nil {
		return repoError(c, err)
	}
	if req.NumberOfGuests < 1 || req.NumberOfGuests > room.Capacity {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest count exceeds room capacity"})
	}
	basis, err := h.priceBasis(ctx, room, current.FormulaID)
	if err != nil {
		return repoError(c, err)
	}
	start, err := booking.ParseClock(req.StartTime)
	if err != nil {
		return repoError(c, err)
	}
	end, err := booking.ParseClock(req.EndTime)
	if err != nil {
		return repoError(c, err)
	}
	cat, err := h.Consumables.Catalogue(ctx)
	if err != nil {
		return repoError(c, err)
	}

	var sels []booking.Selection
	if req.Consumables != nil {
		sels = req.selections()
	} else {
		currentLines, err := h.Bookings.Lines(ctx, id)
		if err != nil {
			return repoError(c, err)
		}
		for _, l := range currentLines {
			sels = append(sels, booking.Selection{ConsumableID: l.ConsumableID, Quantity: l.Quantity})
		}
	}

	quote, err := booking.ComputeQuote(basis, start, end, sels, cat)
	if err != nil {
		return repoError(c, err)
	}
	lines := make([]model.BookingConsumable, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, model.BookingConsumable{
			ConsumableID:   l.ConsumableID,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitCents,
		})
	}

	updated, err := h.Bookings.UpdateForUser(ctx, id, u.ID, repository.UpdateInput{
		Date:            req.Date,
		StartTime:       start.String(),
		EndTime:         end.String(),
		NumberOfGuests:  req.NumberOfGuests,
		TotalPriceCents: quote.TotalCents,
		SpecialRequests: req.SpecialRequests,
		Lines:           lines,
	})
	if err != nil {
		return repoError(c, err)
	}
	newLines, err := h.Bookings.Lines(ctx, updated.ID)
	if err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "availability")
	return c.JSON(http.StatusOK, toBookingDTO(updated, newLines))
}

// Cancel handles POST /v1/bookings/:id/cancel. Pending and confirmed
// bookings can be cancelled; cancellation is terminal.
func (h *CustomerHandler) Cancel(c echo.Context) error {
	u, ok := middleware.UserFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()

	b, err := h.Bookings.UpdateStatus(ctx, id, u.ID, booking.StatusCancelled)
	if err != nil {
		return repoError(c, err)
	}
	lines, err := h.Bookings.Lines(ctx, b.ID)
	if err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "availability")
	h.Publisher.BookingCancelled(ctx, queue.BookingCancelledEvent{
		BookingID:   b.ID,
		Reference:   b.Reference,
		UserID:      b.UserID,
		RoomID:      b.RoomID,
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, toBookingDTO(b, lines))
}
