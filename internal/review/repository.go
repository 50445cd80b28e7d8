package review

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrDuplicate      = errors.New("user already reviewed this gym")
)

const reviewColumns = `id, user_id, gym_id, rating, comment, is_active, created_at, updated_at`

// refreshGymRating recomputes the gym's aggregate from its active reviews.
// It runs inside the same transaction as the triggering write so the
// stored aggregate never drifts from the review rows it summarizes.
const refreshGymRating = `
	UPDATE gyms g
	SET rating = COALESCE((
	        SELECT ROUND(AVG(r.rating)::numeric, 1)
	        FROM reviews r
	        WHERE r.gym_id = g.id AND r.is_active
	    ), 0),
	    total_reviews = (
	        SELECT COUNT(*)
	        FROM reviews r
	        WHERE r.gym_id = g.id AND r.is_active
	    ),
	    updated_at = NOW()
	WHERE g.id = $1
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReview(ctx context.Context, userID, gymID, rating int, comment string) (*Review, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO reviews (user_id, gym_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + reviewColumns

	var review Review
	err = tx.GetContext(ctx, &review, query, userID, gymID, rating, comment)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, refreshGymRating, gymID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var review Review
	err := r.db.GetContext(ctx, &review, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	return &review, nil
}

func (r *repository) UpdateReview(ctx context.Context, id, rating int, comment string) (*Review, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $1 AND is_active
		RETURNING ` + reviewColumns

	var review Review
	err = tx.GetContext(ctx, &review, query, id, rating, comment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, refreshGymRating, review.GymID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *repository) SoftDeleteReview(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var gymID int
	err = tx.GetContext(ctx, &gymID, `
		UPDATE reviews
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active
		RETURNING gym_id
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReviewNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, refreshGymRating, gymID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) ListByGym(ctx context.Context, gymID, page, limit int) ([]ReviewWithAuthor, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reviews WHERE gym_id = $1 AND is_active`, gymID)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * limit
	}

	query := `
		SELECT
			r.id, r.user_id, r.gym_id, r.rating, r.comment, r.is_active, r.created_at, r.updated_at,
			u.name AS user_name
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.gym_id = $1 AND r.is_active
		ORDER BY r.created_at DESC
		LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa(offset)

	var reviews []ReviewWithAuthor
	if err := r.db.SelectContext(ctx, &reviews, query, gymID); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
