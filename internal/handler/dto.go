package handler

import (
	"time"

	"github.com/iliyamo/cinema-room-booking/internal/booking"
	"github.com/iliyamo/cinema-room-booking/internal/model"
)

// Response DTOs. Domain resources serialize with camelCase keys;
// amounts appear both as integer cents and as a display string so
// clients never re-implement currency formatting.

type roomDTO struct {
	ID                uint64   `json:"id"`
	Name              string   `json:"name"`
	Description       *string  `json:"description,omitempty"`
	Capacity          int      `json:"capacity"`
	PricePerHourCents int64    `json:"pricePerHourCents"`
	PricePerHour      string   `json:"pricePerHour"`
	IsAvailable       bool     `json:"isAvailable"`
	Rating            float64  `json:"rating"`
	Equipment         []string `json:"equipment"`
	ImageURL          *string  `json:"imageUrl,omitempty"`
}

func toRoomDTO(m *model.Room) roomDTO {
	return roomDTO{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Capacity:          m.Capacity,
		PricePerHourCents: m.PricePerHourCents,
		PricePerHour:      booking.FormatCents(m.PricePerHourCents),
		IsAvailable:       m.IsAvailable,
		Rating:            m.Rating,
		Equipment:         m.Equipment,
		ImageURL:          m.ImageURL,
	}
}

type consumableDTO struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	PriceCents  int64   `json:"priceCents"`
	Price       string  `json:"price"`
	Category    string  `json:"category"`
	IsAvailable bool    `json:"isAvailable"`
}

func toConsumableDTO(m *model.Consumable) consumableDTO {
	return consumableDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		PriceCents:  m.PriceCents,
		Price:       booking.FormatCents(m.PriceCents),
		Category:    m.Category,
		IsAvailable: m.IsAvailable,
	}
}

type formulaDTO struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Seats          int    `json:"seats"`
	BasePriceCents int64  `json:"basePriceCents"`
	BasePrice      string `json:"basePrice"`
	Color          string `json:"color,omitempty"`
	Icon           string `json:"icon,omitempty"`
}

func toFormulaDTO(m *model.Formula) formulaDTO {
	return formulaDTO{
		ID:             m.ID,
		Name:           m.Name,
		Seats:          m.Seats,
		BasePriceCents: m.BasePriceCents,
		BasePrice:      booking.FormatCents(m.BasePriceCents),
		Color:          m.Color,
		Icon:           m.Icon,
	}
}

type bookingLineDTO struct {
	ConsumableID   uint64 `json:"consumableId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type bookingDTO struct {
	ID              uint64           `json:"id"`
	Reference       string           `json:"reference"`
	RoomID          uint64           `json:"roomId"`
	UserID          uint64           `json:"userId"`
	FormulaID       *uint64          `json:"formulaId,omitempty"`
	Date            string           `json:"date"`
	StartTime       string           `json:"startTime"`
	EndTime         string           `json:"endTime"`
	Duration        string           `json:"duration"`
	NumberOfGuests  int              `json:"numberOfGuests"`
	Status          string           `json:"status"`
	TotalPriceCents int64            `json:"totalPriceCents"`
	TotalPrice      string           `json:"totalPrice"`
	SpecialRequests *string          `json:"specialRequests,omitempty"`
	Consumables     []bookingLineDTO `json:"consumables"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func toBookingDTO(m *model.Booking, lines []model.BookingConsumable) bookingDTO {
	dur := ""
	if d, err := booking.CalculateDuration(m.StartTime, m.EndTime); err == nil {
		dur = d.String()
	}
	out := bookingDTO{
		ID:              m.ID,
		Reference:       m.Reference,
		RoomID:          m.RoomID,
		UserID:          m.UserID,
		FormulaID:       m.FormulaID,
		Date:            m.Date,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		Duration:        dur,
		NumberOfGuests:  m.NumberOfGuests,
		Status:          m.Status,
		TotalPriceCents: m.TotalPriceCents,
		TotalPrice:      booking.FormatCents(m.TotalPriceCents),
		SpecialRequests: m.SpecialRequests,
		Consumables:     make([]bookingLineDTO, 0, len(lines)),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, l := range lines {
		out.Consumables = append(out.Consumables, bookingLineDTO{
			ConsumableID:   l.ConsumableID,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
	}
	return out
}

type quoteLineDTO struct {
	ConsumableID uint64 `json:"consumableId"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	UnitCents    int64  `json:"unitCents"`
	TotalCents   int64  `json:"totalCents"`
}

type quoteDTO struct {
	Minutes    int            `json:"minutes"`
	Duration   string         `json:"duration"`
	RoomCents  int64          `json:"roomCents"`
	Lines      []quoteLineDTO `json:"lines"`
	TotalCents int64          `json:"totalCents"`
	Total      string         `json:"total"`
}

func toQuoteDTO(q booking.Quote) quoteDTO {
	out := quoteDTO{
		Minutes:    q.Minutes,
		Duration:   booking.Duration{Hours: q.Minutes / 60, Minutes: q.Minutes % 60}.String(),
		RoomCents:  q.RoomCents,
		Lines:      make([]quoteLineDTO, 0, len(q.Lines)),
		TotalCents: q.TotalCents,
		Total:      q.Total(),
	}
	for _, l := range q.Lines {
		out.Lines = append(out.Lines, quoteLineDTO{
			ConsumableID: l.ConsumableID,
			Name:         l.Name,
			Quantity:     l.Quantity,
			UnitCents:    l.UnitCents,
			TotalCents:   l.TotalCents,
		})
	}
	return out
}
