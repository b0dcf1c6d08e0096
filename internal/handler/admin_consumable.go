package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-booking/internal/model"
)

type consumableReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"priceCents"`
	Category    string  `json:"category"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (r consumableReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name required"
	}
	if r.PriceCents < 0 {
		return "priceCents must be non-negative"
	}
	if !model.ValidCategory(r.Category) {
		return "unknown category"
	}
	return ""
}

// ListConsumables handles GET /v1/admin/consumables: the full list,
// unavailable items included, without pagination. The catalogue is
// small and the back-office edits it in place.
func (h *AdminHandler) ListConsumables(c echo.Context) error {
	items, err := h.Consumables.ListAll(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	out := make([]consumableDTO, 0, len(items))
	for _, m := range items {
		out = append(out, toConsumableDTO(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateConsumable handles POST /v1/admin/consumables.
func (h *AdminHandler) CreateConsumable(c echo.Context) error {
	var req consumableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	m := &model.Consumable{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Category:    req.Category,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}
	ctx := c.Request().Context()
	if err := h.Consumables.Create(ctx, m); err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "consumables")
	return c.JSON(http.StatusCreated, toConsumableDTO(m))
}

// UpdateConsumable handles PUT /v1/admin/consumables/:id. Price edits
// never rewrite existing bookings: lines capture the unit price at
// booking time.
func (h *AdminHandler) UpdateConsumable(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid consumable id"})
	}
	var req consumableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	ctx := c.Request().Context()
	m, err := h.Consumables.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err)
	}
	m.Name = strings.TrimSpace(req.Name)
	m.Description = req.Description
	m.PriceCents = req.PriceCents
	m.Category = req.Category
	if req.IsAvailable != nil {
		m.IsAvailable = *req.IsAvailable
	}
	if err := h.Consumables.Update(ctx, m); err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "consumables")
	return c.JSON(http.StatusOK, toConsumableDTO(m))
}

// DeleteConsumable handles DELETE /v1/admin/consumables/:id. Items
// referenced by booking lines cannot be removed (409); mark them
// unavailable instead.
func (h *AdminHandler) DeleteConsumable(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid consumable id"})
	}
	ctx := c.Request().Context()
	if err := h.Consumables.Delete(ctx, id); err != nil {
		return repoError(c, err)
	}
	h.Cache.Bump(ctx, "consumables")
	return c.NoContent(http.StatusNoContent)
}
