package gym

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrGymNotFound = errors.New("gym not found")

const gymColumns = `id, owner_id, name, description, location, facilities, image_urls,
	monthly_price_cents, yearly_price_cents, rating, total_reviews,
	is_verified, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateGym(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error) {
	query := `
		INSERT INTO gyms (owner_id, name, description, location, facilities, image_urls, monthly_price_cents, yearly_price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + gymColumns

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query,
		ownerID, req.Name, req.Description, req.Location,
		pq.StringArray(req.Facilities), pq.StringArray(req.ImageURLs),
		req.MonthlyPriceCents, req.YearlyPriceCents,
	)
	if err != nil {
		return nil, err
	}

	return &gym, nil
}

func (r *repository) ListGyms(ctx context.Context, filter ListFilter) ([]Gym, int, error) {
	where := ` WHERE is_active`
	args := []interface{}{}

	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		where += ` AND location ILIKE $1`
	}
	if filter.VerifiedOnly {
		where += ` AND is_verified`
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM gyms`+where, args...); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	query := `SELECT ` + gymColumns + ` FROM gyms` + where +
		` ORDER BY rating DESC, created_at DESC` +
		` LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa(offset)

	var gyms []Gym
	if err := r.db.SelectContext(ctx, &gyms, query, args...); err != nil {
		return nil, 0, err
	}

	return gyms, total, nil
}

func (r *repository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE id = $1`

	var gym Gym
	err := r.db.GetContext(ctx, &gym, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	return &gym, nil
}

func (r *repository) UpdateGym(ctx context.Context, gym *Gym) (*Gym, error) {
	query := `
		UPDATE gyms
		SET name = $2, description = $3, location = $4, facilities = $5, image_urls = $6,
		    monthly_price_cents = $7, yearly_price_cents = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + gymColumns

	var updated Gym
	err := r.db.GetContext(ctx, &updated, query,
		gym.ID, gym.Name, gym.Description, gym.Location,
		gym.Facilities, gym.ImageURLs,
		gym.MonthlyPriceCents, gym.YearlyPriceCents,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	return &updated, nil
}

func (r *repository) SetVerified(ctx context.Context, id int, verified bool) error {
	return r.setFlag(ctx, id, "is_verified", verified)
}

func (r *repository) SetActive(ctx context.Context, id int, active bool) error {
	return r.setFlag(ctx, id, "is_active", active)
}

func (r *repository) setFlag(ctx context.Context, id int, column string, value bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE gyms SET `+column+` = $2, updated_at = NOW() WHERE id = $1`, id, value)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrGymNotFound
	}

	return nil
}
