package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/cinema-room-booking/internal/model"
)

// RoomRepo provides CRUD operations for rentable rooms. Equipment is
// persisted as a comma-separated set in a single column; the repo
// joins and splits it at the boundary so callers only see []string.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span several repositories.
func (r *RoomRepo) DB() *sql.DB { return r.db }

const roomColumns = `id, name, description, capacity, price_per_hour_cents, is_available, rating, equipment, image_url, created_at, updated_at`

func scanRoom(row interface{ Scan(dest ...any) error }) (*model.Room, error) {
	var (
		m         model.Room
		desc      sql.NullString
		equipment string
		image     sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Name, &desc, &m.Capacity, &m.PricePerHourCents,
		&m.IsAvailable, &m.Rating, &equipment, &image, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		m.Description = &d
	}
	if image.Valid {
		u := image.String
		m.ImageURL = &u
	}
	m.Equipment = splitEquipment(equipment)
	return &m, nil
}

func splitEquipment(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinEquipment(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}

// Create inserts a new room and reads back the row to populate
// timestamps and defaults.
func (r *RoomRepo) Create(ctx context.Context, m *model.Room) error {
	const q = `INSERT INTO rooms (name, description, capacity, price_per_hour_cents, is_available, rating, equipment, image_url)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Description, m.Capacity, m.PricePerHourCents,
		m.IsAvailable, m.Rating, joinEquipment(m.Equipment), m.ImageURL)
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

// GetByID retrieves a room by its ID. ErrRoomNotFound is returned
// when no row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	m, err := scanRoom(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListAll returns every room ordered by name. Filtering and
// pagination are applied in memory by the handlers through the booking
// package helpers: the catalogue is small and the filter semantics
// (case-insensitive multi-field search intersected with exact filters)
// live in one tested place.
func (r *RoomRepo) ListAll(ctx context.Context) ([]*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Room, 0)
	for rows.Next() {
		m, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable fields of a room. Returns
// ErrRoomNotFound when no row was touched.
func (r *RoomRepo) Update(ctx context.Context, m *model.Room) error {
	const q = `UPDATE rooms
	           SET name = ?, description = ?, capacity = ?, price_per_hour_cents = ?,
	               is_available = ?, rating = ?, equipment = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Description, m.Capacity, m.PricePerHourCents,
		m.IsAvailable, m.Rating, joinEquipment(m.Equipment), m.ImageURL, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Delete removes a room unless pending or confirmed bookings still
// reference it, in which case ErrConflict is returned. The existence
// check and the delete run in one transaction so a booking created in
// between cannot be orphaned.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var active int
	const check = `SELECT COUNT(*) FROM bookings WHERE room_id = ? AND status IN ('pending','confirmed') FOR UPDATE`
	if err := tx.QueryRowContext(ctx, check, id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrConflict
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
