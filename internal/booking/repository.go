package booking

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrOverlap         = errors.New("overlapping booking exists")
)

const bookingColumns = `id, user_id, gym_id, membership_id, start_date, end_date, price_cents,
	status, payment_status, cancelled_at, cancelled_by, cancellation_reason,
	created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateBooking re-checks for an overlapping pending/confirmed booking at
// the same gym and inserts in the same transaction, returning ErrOverlap
// when the user already holds a clashing booking.
func (r *repository) CreateBooking(ctx context.Context, b *Booking) (*BookingWithDetails, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	overlapQuery := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE user_id = $1
			  AND gym_id = $2
			  AND status IN ('pending', 'confirmed')
			  AND start_date <= $4
			  AND end_date >= $3
		)
	`

	var overlaps bool
	if err := tx.GetContext(ctx, &overlaps, overlapQuery, b.UserID, b.GymID, b.StartDate, b.EndDate); err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrOverlap
	}

	query := `
		WITH inserted AS (
			INSERT INTO bookings (user_id, gym_id, membership_id, start_date, end_date, price_cents, status, payment_status)
			VALUES ($1, $2, $3, $4, $5, $6, 'pending', 'unpaid')
			RETURNING *
		)
		SELECT
			i.id, i.user_id, i.gym_id, i.membership_id, i.start_date, i.end_date, i.price_cents,
			i.status, i.payment_status, i.cancelled_at, i.cancelled_by, i.cancellation_reason,
			i.created_at, i.updated_at,
			g.name AS gym_name,
			g.location AS gym_location,
			u.name AS user_name,
			u.email AS user_email
		FROM inserted i
		JOIN gyms g ON i.gym_id = g.id
		JOIN users u ON i.user_id = u.id
	`

	var created BookingWithDetails
	err = tx.GetContext(ctx, &created, query,
		b.UserID, b.GymID, b.MembershipID, b.StartDate, b.EndDate, b.PriceCents)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &booking, nil
}

// GetBookingWithGymOwner returns the booking together with the owning
// gym's owner_id, for ownership checks on status updates.
func (r *repository) GetBookingWithGymOwner(ctx context.Context, id int) (*Booking, int, error) {
	query := `
		SELECT
			b.id, b.user_id, b.gym_id, b.membership_id, b.start_date, b.end_date, b.price_cents,
			b.status, b.payment_status, b.cancelled_at, b.cancelled_by, b.cancellation_reason,
			b.created_at, b.updated_at,
			g.owner_id AS gym_owner_id
		FROM bookings b
		JOIN gyms g ON b.gym_id = g.id
		WHERE b.id = $1
	`

	var row struct {
		Booking
		GymOwnerID int `db:"gym_owner_id"`
	}
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrBookingNotFound
		}
		return nil, 0, err
	}

	return &row.Booking, row.GymOwnerID, nil
}

func (r *repository) MarkCancelled(ctx context.Context, id, cancelledBy int, reason string) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_at = NOW(), cancelled_by = $2, cancellation_reason = $3, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
		RETURNING ` + bookingColumns

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id, cancelledBy, reason)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status, paymentStatus *string) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = COALESCE($2, status),
		    payment_status = COALESCE($3, payment_status),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bookingColumns

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id, status, paymentStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID, page, limit int) ([]Booking, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	` + pageClause(page, limit)

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *repository) GetBookingsByGym(ctx context.Context, gymID, page, limit int) ([]BookingWithDetails, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings WHERE gym_id = $1`, gymID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			b.id, b.user_id, b.gym_id, b.membership_id, b.start_date, b.end_date, b.price_cents,
			b.status, b.payment_status, b.cancelled_at, b.cancelled_by, b.cancellation_reason,
			b.created_at, b.updated_at,
			g.name AS gym_name,
			g.location AS gym_location,
			u.name AS user_name,
			u.email AS user_email
		FROM bookings b
		JOIN gyms g ON b.gym_id = g.id
		JOIN users u ON b.user_id = u.id
		WHERE b.gym_id = $1
		ORDER BY b.start_date DESC, b.created_at DESC
	` + pageClause(page, limit)

	var bookings []BookingWithDetails
	if err := r.db.SelectContext(ctx, &bookings, query, gymID); err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func pageClause(page, limit int) string {
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}
	return ` LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa(offset)
}
