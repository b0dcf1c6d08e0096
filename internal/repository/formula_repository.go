package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-room-booking/internal/model"
)

// FormulaRepo reads the formula bundles. Formulas are seeded
// configuration; there is no write surface beyond migrations.
type FormulaRepo struct {
	db *sql.DB
}

// NewFormulaRepo constructs a FormulaRepo with the given DB handle.
func NewFormulaRepo(db *sql.DB) *FormulaRepo { return &FormulaRepo{db: db} }

// ListAll returns every formula ordered by seat count.
func (r *FormulaRepo) ListAll(ctx context.Context) ([]*model.Formula, error) {
	const q = `SELECT id, name, seats, base_price_cents, color, icon FROM formulas ORDER BY seats, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Formula, 0)
	for rows.Next() {
		var m model.Formula
		if err := rows.Scan(&m.ID, &m.Name, &m.Seats, &m.BasePriceCents, &m.Color, &m.Icon); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// GetByID retrieves one formula; ErrFormulaNotFound when missing.
func (r *FormulaRepo) GetByID(ctx context.Context, id uint64) (*model.Formula, error) {
	const q = `SELECT id, name, seats, base_price_cents, color, icon FROM formulas WHERE id = ?`
	var m model.Formula
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Name, &m.Seats, &m.BasePriceCents, &m.Color, &m.Icon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFormulaNotFound
		}
		return nil, err
	}
	return &m, nil
}

// isDuplicate reports a MySQL unique-key violation (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isFKViolation reports a MySQL foreign-key restriction (error 1451).
func isFKViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1451")
}
