package booking

import "fmt"

// CatalogueItem is a purchasable add-on as seen by the price
// calculator: its unit price in cents and whether it can currently be
// ordered.
type CatalogueItem struct {
	ID          uint64
	Name        string
	PriceCents  int64
	IsAvailable bool
}

// Catalogue indexes consumables by ID for quote computation. It is
// read-only reference data loaded from the consumables table.
type Catalogue map[uint64]CatalogueItem

// Selection pairs a consumable with an ordered quantity.
type Selection struct {
	ConsumableID uint64
	Quantity     int
}

// PriceBasis tells the calculator how the room itself is charged:
// either by the hour at RateCents, or as a formula bundle with a flat
// FormulaCents base price (hourly rate ignored).
type PriceBasis struct {
	RateCents    int64
	FormulaCents int64
	Formula      bool
}

// Hourly returns a basis charging rateCents per hour.
func Hourly(rateCents int64) PriceBasis { return PriceBasis{RateCents: rateCents} }

// Formula returns a basis charging a flat bundle price regardless of
// duration.
func Formula(baseCents int64) PriceBasis { return PriceBasis{FormulaCents: baseCents, Formula: true} }

// QuoteLine is one consumable line of a quote.
type QuoteLine struct {
	ConsumableID uint64
	Name         string
	Quantity     int
	UnitCents    int64
	TotalCents   int64
}

// Quote is the priced breakdown of a candidate booking. All amounts
// are integer cents; TotalCents = RoomCents + sum of line totals.
type Quote struct {
	Minutes    int
	RoomCents  int64
	Lines      []QuoteLine
	TotalCents int64
}

// Total renders the quote total as a currency string.
func (q Quote) Total() string { return FormatCents(q.TotalCents) }

// ComputeQuote prices a candidate slot. The room cost is the
// fractional-hours product rounded to the nearest cent
// (minutes * rate / 60), or the formula base price when the basis is
// formula-backed. Each selection must reference a known consumable
// with a positive quantity. The result does not depend on selection
// order beyond the order of the Lines slice, which mirrors the input.
func ComputeQuote(basis PriceBasis, start, end Clock, items []Selection, cat Catalogue) (Quote, error) {
	minutes := int(end) - int(start)
	if minutes <= 0 {
		return Quote{}, fmt.Errorf("%w: %s to %s", ErrInvalidDuration, start, end)
	}
	var room int64
	if basis.Formula {
		room = basis.FormulaCents
	} else {
		// round half up on the scaled product to keep cents exact
		room = (basis.RateCents*int64(minutes) + 30) / 60
	}
	q := Quote{Minutes: minutes, RoomCents: room, TotalCents: room}
	for _, sel := range items {
		if sel.Quantity <= 0 {
			return Quote{}, fmt.Errorf("%w: consumable %d quantity %d", ErrInvalidQuantity, sel.ConsumableID, sel.Quantity)
		}
		item, ok := cat[sel.ConsumableID]
		if !ok {
			return Quote{}, fmt.Errorf("%w: id %d", ErrUnknownConsumable, sel.ConsumableID)
		}
		line := QuoteLine{
			ConsumableID: sel.ConsumableID,
			Name:         item.Name,
			Quantity:     sel.Quantity,
			UnitCents:    item.PriceCents,
			TotalCents:   item.PriceCents * int64(sel.Quantity),
		}
		q.Lines = append(q.Lines, line)
		q.TotalCents += line.TotalCents
	}
	return q, nil
}
