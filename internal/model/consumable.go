package model

import "time"

// Consumable is a purchasable add-on (food, drink or bundle) offered
// with a booking. This is near-static reference data, rarely mutated
// and seeded by migration.
type Consumable struct {
	ID          uint64    // consumables.id
	Name        string    // consumables.name
	Description *string   // consumables.description (nullable)
	PriceCents  int64     // consumables.price_cents
	Category    string    // consumables.category (popcorn|boissons|snacks|menus)
	IsAvailable bool      // consumables.is_available
	CreatedAt   time.Time // consumables.created_at
	UpdatedAt   time.Time // consumables.updated_at
}

// ConsumableCategories lists the accepted category values in display
// order. The vocabulary comes from the menu (French labels kept).
var ConsumableCategories = []string{"popcorn", "boissons", "snacks", "menus"}

// ValidCategory reports whether c is a known consumable category.
func ValidCategory(c string) bool {
	for _, k := range ConsumableCategories {
		if c == k {
			return true
		}
	}
	return false
}
