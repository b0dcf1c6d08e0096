package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-room-booking/internal/booking"
	"github.com/iliyamo/cinema-room-booking/internal/model"
)

// ConsumableRepo provides CRUD access to the consumable catalogue.
// Mostly read traffic; mutation happens through the admin back-office.
type ConsumableRepo struct {
	db *sql.DB
}

// NewConsumableRepo constructs a ConsumableRepo with the given DB handle.
func NewConsumableRepo(db *sql.DB) *ConsumableRepo { return &ConsumableRepo{db: db} }

const consumableColumns = `id, name, description, price_cents, category, is_available, created_at, updated_at`

func scanConsumable(row interface{ Scan(dest ...any) error }) (*model.Consumable, error) {
	var (
		m    model.Consumable
		desc sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Name, &desc, &m.PriceCents, &m.Category,
		&m.IsAvailable, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		m.Description = &d
	}
	return &m, nil
}

// ListAll returns the full catalogue grouped by category then name.
func (r *ConsumableRepo) ListAll(ctx context.Context) ([]*model.Consumable, error) {
	const q = `SELECT ` + consumableColumns + ` FROM consumables ORDER BY category, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Consumable, 0)
	for rows.Next() {
		m, err := scanConsumable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Catalogue loads the available consumables shaped for the price
// calculator. Unavailable items are left out so quoting them fails
// with ErrUnknownConsumable upstream.
func (r *ConsumableRepo) Catalogue(ctx context.Context) (booking.Catalogue, error) {
	items, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	cat := make(booking.Catalogue, len(items))
	for _, it := range items {
		if !it.IsAvailable {
			continue
		}
		cat[it.ID] = booking.CatalogueItem{
			ID:          it.ID,
			Name:        it.Name,
			PriceCents:  it.PriceCents,
			IsAvailable: true,
		}
	}
	return cat, nil
}

// GetByID retrieves one consumable; ErrConsumableNotFound when missing.
func (r *ConsumableRepo) GetByID(ctx context.Context, id uint64) (*model.Consumable, error) {
	m, err := scanConsumable(r.db.QueryRowContext(ctx,
		`SELECT `+consumableColumns+` FROM consumables WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConsumableNotFound
		}
		return nil, err
	}
	return m, nil
}

// Create inserts a consumable and reads the row back.
func (r *ConsumableRepo) Create(ctx context.Context, m *model.Consumable) error {
	const q = `INSERT INTO consumables (name, description, price_cents, category, is_available)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Description, m.PriceCents, m.Category, m.IsAvailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*m = *got
	return nil
}

// Update rewrites a consumable's fields.
func (r *ConsumableRepo) Update(ctx context.Context, m *model.Consumable) error {
	const q = `UPDATE consumables
	           SET name = ?, description = ?, price_cents = ?, category = ?, is_available = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Description, m.PriceCents, m.Category, m.IsAvailable, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConsumableNotFound
	}
	return nil
}

// Delete removes a consumable. Booking lines keep their captured unit
// price, so history survives; the FK on booking_consumables restricts
// the delete while lines reference it, which surfaces as ErrConflict.
func (r *ConsumableRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM consumables WHERE id = ?`, id)
	if err != nil {
		if isFKViolation(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConsumableNotFound
	}
	return nil
}
