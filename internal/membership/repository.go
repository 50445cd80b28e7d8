package membership

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrDuplicateActive    = errors.New("user already has an active membership at this gym")
)

const membershipColumns = `id, user_id, gym_id, type, status, price_cents, payment_status,
	payment_method, transaction_id, start_date, end_date, cancelled_at,
	created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateMembership(ctx context.Context, m *Membership) (*Membership, error) {
	query := `
		INSERT INTO memberships (user_id, gym_id, type, status, price_cents, payment_status, payment_method, start_date, end_date)
		VALUES ($1, $2, $3, 'pending', $4, 'pending', $5, $6, $7)
		RETURNING ` + membershipColumns

	var created Membership
	err := r.db.GetContext(ctx, &created, query,
		m.UserID, m.GymID, m.Type, m.PriceCents, m.PaymentMethod, m.StartDate, m.EndDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateActive
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1`

	var m Membership
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) HasActiveMembership(ctx context.Context, userID, gymID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM memberships
			WHERE user_id = $1
			  AND gym_id = $2
			  AND status = 'active'
			  AND end_date > NOW()
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, gymID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// ExpireLapsed flips active memberships whose end date has passed to
// expired. The one-active-per-gym index keys on status alone, so a lapsed
// row left at active would otherwise block buying and activating a new one.
func (r *repository) ExpireLapsed(ctx context.Context, userID, gymID int) error {
	query := `
		UPDATE memberships
		SET status = 'expired', updated_at = NOW()
		WHERE user_id = $1 AND gym_id = $2 AND status = 'active' AND end_date <= NOW()
	`

	_, err := r.db.ExecContext(ctx, query, userID, gymID)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status, paymentStatus, transactionID *string) (*Membership, error) {
	query := `
		UPDATE memberships
		SET status = COALESCE($2, status),
		    payment_status = COALESCE($3, payment_status),
		    transaction_id = COALESCE($4, transaction_id),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + membershipColumns

	var m Membership
	err := r.db.GetContext(ctx, &m, query, id, status, paymentStatus, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateActive
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) MarkCancelled(ctx context.Context, id int) (*Membership, error) {
	query := `
		UPDATE memberships
		SET status = 'cancelled', cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'active')
		RETURNING ` + membershipColumns

	var m Membership
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var memberships []Membership
	err := r.db.SelectContext(ctx, &memberships, query, userID)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *repository) ListExpiringByUser(ctx context.Context, userID int) ([]Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE user_id = $1
		  AND status = 'active'
		  AND end_date > NOW()
		  AND end_date <= NOW() + INTERVAL '7 days'
		ORDER BY end_date ASC
	`

	var memberships []Membership
	err := r.db.SelectContext(ctx, &memberships, query, userID)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}
