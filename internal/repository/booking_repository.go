package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cinema-room-booking/internal/booking"
	"github.com/iliyamo/cinema-room-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings and their
// consumable lines. The overlap invariant (no two pending/confirmed
// bookings of one room may intersect, half-open intervals) is enforced
// here, inside the write transactions, with the same rule the pure
// checker in the booking package applies. The client-side check is a
// UX fast path; this one is the authority.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for cross-repo transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// bookingColumns uses DATE_FORMAT so the calendar date round-trips as
// the ISO string clients sent, independent of driver time parsing.
const bookingColumns = `id, reference, room_id, user_id, formula_id, DATE_FORMAT(date, '%Y-%m-%d'),
	start_time, end_time, number_of_guests, status, total_price_cents, special_requests, created_at, updated_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*model.Booking, error) {
	var (
		m       model.Booking
		formula sql.NullInt64
		special sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Reference, &m.RoomID, &m.UserID, &formula, &m.Date,
		&m.StartTime, &m.EndTime, &m.NumberOfGuests, &m.Status, &m.TotalPriceCents,
		&special, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if formula.Valid {
		f := uint64(formula.Int64)
		m.FormulaID = &f
	}
	if special.Valid {
		s := special.String
		m.SpecialRequests = &s
	}
	return &m, nil
}

// BookedSlotsForDate returns the slot intervals of every booking for
// the room on the given date, in start order, shaped for the pure
// availability checker. All statuses are included; the checker itself
// skips the non-blocking ones.
func (r *BookingRepo) BookedSlotsForDate(ctx context.Context, roomID uint64, date string) ([]booking.BookedSlot, error) {
	const q = `SELECT reference, start_time, end_time, status
	           FROM bookings WHERE room_id = ? AND date = ? ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, roomID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]booking.BookedSlot, 0)
	for rows.Next() {
		var ref, start, end, status string
		if err := rows.Scan(&ref, &start, &end, &status); err != nil {
			return nil, err
		}
		s, err := booking.ParseClock(start)
		if err != nil {
			return nil, err
		}
		e, err := booking.ParseClock(end)
		if err != nil {
			return nil, err
		}
		out = append(out, booking.BookedSlot{
			Reference: ref,
			Slot:      booking.Slot{Date: date, Start: s, End: e},
			Status:    booking.Status(status),
		})
	}
	return out, rows.Err()
}

// conflictTx runs the authoritative half-open overlap check inside tx,
// locking the matching rows so two concurrent submissions for the same
// room serialize. excludeID skips the booking being edited (0 on
// create). start_time/end_time are zero-padded "HH:MM" strings, so
// lexicographic comparison in SQL matches the clock comparison in Go.
func (r *BookingRepo) conflictTx(ctx context.Context, tx *sql.Tx, roomID uint64, date, start, end string, excludeID uint64) (bool, error) {
	const q = `SELECT id FROM bookings
	           WHERE room_id = ? AND date = ? AND id <> ?
	             AND status IN ('pending','confirmed')
	             AND start_time < ? AND end_time > ?
	           LIMIT 1 FOR UPDATE`
	var id uint64
	err := tx.QueryRowContext(ctx, q, roomID, date, excludeID, end, start).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateInput gathers everything needed to persist a submitted draft.
// TotalPriceCents and the line unit prices are the server-computed
// quote; whatever the client claimed was discarded upstream.
type CreateInput struct {
	Reference       string
	RoomID          uint64
	UserID          uint64
	FormulaID       *uint64
	Date            string
	StartTime       string
	EndTime         string
	NumberOfGuests  int
	TotalPriceCents int64
	SpecialRequests *string
	Lines           []model.BookingConsumable
}

// Create inserts a booking with its consumable lines after re-running
// the overlap check under lock. It returns ErrConflict when the slot
// was taken between the optimistic pre-check and the commit. New
// bookings start in status pending.
func (r *BookingRepo) Create(ctx context.Context, in CreateInput) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	taken, err := r.conflictTx(ctx, tx, in.RoomID, in.Date, in.StartTime, in.EndTime, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	const ins = `INSERT INTO bookings
	             (reference, room_id, user_id, formula_id, date, start_time, end_time, number_of_guests, status, total_price_cents, special_requests)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'pending', ?, ?)`
	res, err := tx.ExecContext(ctx, ins, in.Reference, in.RoomID, in.UserID, in.FormulaID,
		in.Date, in.StartTime, in.EndTime, in.NumberOfGuests, in.TotalPriceCents, in.SpecialRequests)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := r.insertLinesTx(ctx, tx, uint64(id), in.Lines); err != nil {
		return nil, err
	}

	m, err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return m, nil
}

func (r *BookingRepo) insertLinesTx(ctx context.Context, tx *sql.Tx, bookingID uint64, lines []model.BookingConsumable) error {
	if len(lines) == 0 {
		return nil
	}
	query := `INSERT INTO booking_consumables (booking_id, consumable_id, quantity, unit_price_cents) VALUES `
	args := make([]any, 0, len(lines)*4)
	for i, l := range lines {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, bookingID, l.ConsumableID, l.Quantity, l.UnitPriceCents)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// Lines returns the consumable lines of a booking in insertion order.
func (r *BookingRepo) Lines(ctx context.Context, bookingID uint64) ([]model.BookingConsumable, error) {
	const q = `SELECT id, booking_id, consumable_id, quantity, unit_price_cents
	           FROM booking_consumables WHERE booking_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BookingConsumable, 0)
	for rows.Next() {
		var l model.BookingConsumable
		if err := rows.Scan(&l.ID, &l.BookingID, &l.ConsumableID, &l.Quantity, &l.UnitPriceCents); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetByID retrieves a booking regardless of owner. ErrBookingNotFound
// when no row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	m, err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return m, nil
}

// GetByIDForUser retrieves a booking and enforces ownership:
// ErrBookingNotFound when missing, ErrForbidden when it belongs to
// someone else.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrForbidden
	}
	return m, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	return r.queryBookings(ctx, q, userID)
}

// ListAll returns every booking, newest first, for the admin list.
// Search, status/date filters and pagination run in memory through the
// booking package, which keeps one tested definition of the filter and
// page-retention semantics.
func (r *BookingRepo) ListAll(ctx context.Context) ([]*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC, id DESC`
	return r.queryBookings(ctx, q)
}

func (r *BookingRepo) queryBookings(ctx context.Context, query string, args ...any) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Booking, 0)
	for rows.Next() {
		m, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateInput carries an owner edit: a possibly new slot, guest count,
// special requests and the re-priced consumable lines.
type UpdateInput struct {
	Date            string
	StartTime       string
	EndTime         string
	NumberOfGuests  int
	TotalPriceCents int64
	SpecialRequests *string
	Lines           []model.BookingConsumable
}

// UpdateForUser rewrites a booking owned by userID. Completed
// bookings are immutable (ErrImmutable) and cancelled ones cannot be
// revived (ErrConflict). The overlap check runs again with the edited
// booking excluded, so shrinking or moving within one's own slot works.
// Consumable lines are replaced wholesale.
func (r *BookingRepo) UpdateForUser(ctx context.Context, id, userID uint64, in UpdateInput) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ownerID uint64
	var status string
	var roomID uint64
	err = tx.QueryRowContext(ctx, `SELECT user_id, status, room_id FROM bookings WHERE id = ? FOR UPDATE`, id).
		Scan(&ownerID, &status, &roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrForbidden
	}
	switch booking.Status(status) {
	case booking.StatusCompleted:
		return nil, ErrImmutable
	case booking.StatusCancelled:
		return nil, ErrConflict
	}

	taken, err := r.conflictTx(ctx, tx, roomID, in.Date, in.StartTime, in.EndTime, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	const upd = `UPDATE bookings
	             SET date = ?, start_time = ?, end_time = ?, number_of_guests = ?,
	                 total_price_cents = ?, special_requests = ?, updated_at = CURRENT_TIMESTAMP
	             WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, in.Date, in.StartTime, in.EndTime,
		in.NumberOfGuests, in.TotalPriceCents, in.SpecialRequests, id); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_consumables WHERE booking_id = ?`, id); err != nil {
		return nil, err
	}
	if err := r.insertLinesTx(ctx, tx, id, in.Lines); err != nil {
		return nil, err
	}

	m, err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return m, nil
}

// UpdateStatus transitions a booking to next after validating the move
// against the canonical status machine. ErrImmutable for completed
// bookings, ErrConflict for any other illegal transition. When userID
// is non-zero the booking must belong to that user (owner
// cancellation); admins pass 0 to skip the ownership check.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, userID uint64, next booking.Status) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var ownerID uint64
	var status string
	err = tx.QueryRowContext(ctx, `SELECT user_id, status FROM bookings WHERE id = ? FOR UPDATE`, id).
		Scan(&ownerID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if userID != 0 && ownerID != userID {
		return nil, ErrForbidden
	}
	cur := booking.Status(status)
	if cur == booking.StatusCompleted {
		return nil, ErrImmutable
	}
	if _, err := cur.Transition(next); err != nil {
		return nil, ErrConflict
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(next), id); err != nil {
		return nil, err
	}
	m, err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return m, nil
}

// Delete removes a booking outright; its consumable lines cascade via
// foreign key. Admin-only operation.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// StatusCount is one row of the per-status stats aggregate.
type StatusCount struct {
	Status       string `json:"status"`
	Count        int64  `json:"count"`
	RevenueCents int64  `json:"revenueCents"`
}

// RoomCount is one row of the per-room stats aggregate. MinutesToday
// sums the blocking bookings of the current date so callers can turn
// it into an occupancy ratio against the opening hours.
type RoomCount struct {
	RoomID       uint64 `json:"roomId"`
	RoomName     string `json:"roomName"`
	Bookings     int64  `json:"bookings"`
	MinutesToday int64  `json:"minutesToday"`
}

// Stats aggregates the admin dashboard numbers: booking counts and
// revenue grouped by status, and booking counts plus today's booked
// minutes per room. Revenue only counts confirmed and completed
// bookings.
func (r *BookingRepo) Stats(ctx context.Context) ([]StatusCount, []RoomCount, error) {
	const byStatus = `SELECT status, COUNT(*),
	                  COALESCE(SUM(CASE WHEN status IN ('confirmed','completed') THEN total_price_cents ELSE 0 END), 0)
	                  FROM bookings GROUP BY status ORDER BY status`
	rows, err := r.db.QueryContext(ctx, byStatus)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	statuses := make([]StatusCount, 0)
	for rows.Next() {
		var s StatusCount
		if err := rows.Scan(&s.Status, &s.Count, &s.RevenueCents); err != nil {
			return nil, nil, err
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	const byRoom = `SELECT r.id, r.name, COUNT(b.id),
	                COALESCE(SUM(CASE WHEN b.date = CURDATE() AND b.status IN ('pending','confirmed','completed')
	                             THEN TIME_TO_SEC(b.end_time) - TIME_TO_SEC(b.start_time)
	                             ELSE 0 END), 0) DIV 60
	                FROM rooms r LEFT JOIN bookings b ON b.room_id = r.id
	                GROUP BY r.id, r.name ORDER BY r.name`
	rrows, err := r.db.QueryContext(ctx, byRoom)
	if err != nil {
		return nil, nil, err
	}
	defer rrows.Close()
	rooms := make([]RoomCount, 0)
	for rrows.Next() {
		var rc RoomCount
		if err := rrows.Scan(&rc.RoomID, &rc.RoomName, &rc.Bookings, &rc.MinutesToday); err != nil {
			return nil, nil, err
		}
		rooms = append(rooms, rc)
	}
	return statuses, rooms, rrows.Err()
}

// CompletePast marks confirmed bookings whose slot has fully elapsed
// as completed. now is passed in so the sweep is testable; the caller
// uses UTC wall time. Returns the number of bookings completed.
func (r *BookingRepo) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	const q = `UPDATE bookings SET status = 'completed', updated_at = CURRENT_TIMESTAMP
	           WHERE status = 'confirmed'
	             AND (date < ? OR (date = ? AND end_time <= ?))`
	day := now.Format("2006-01-02")
	clock := now.Format("15:04")
	res, err := r.db.ExecContext(ctx, q, day, day, clock)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
