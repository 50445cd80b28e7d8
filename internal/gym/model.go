package gym

import (
	"time"

	"github.com/lib/pq"
)

type Gym struct {
	ID                int            `db:"id" json:"id"`
	OwnerID           int            `db:"owner_id" json:"owner_id"`
	Name              string         `db:"name" json:"name"`
	Description       string         `db:"description" json:"description"`
	Location          string         `db:"location" json:"location"`
	Facilities        pq.StringArray `db:"facilities" json:"facilities"`
	ImageURLs         pq.StringArray `db:"image_urls" json:"image_urls"`
	MonthlyPriceCents int64          `db:"monthly_price_cents" json:"monthly_price_cents"`
	YearlyPriceCents  *int64         `db:"yearly_price_cents" json:"yearly_price_cents,omitempty"`
	Rating            float64        `db:"rating" json:"rating"`
	TotalReviews      int            `db:"total_reviews" json:"total_reviews"`
	IsVerified        bool           `db:"is_verified" json:"is_verified"`
	IsActive          bool           `db:"is_active" json:"is_active"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

type CreateGymRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description"`
	Location          string   `json:"location" binding:"required"`
	Facilities        []string `json:"facilities"`
	ImageURLs         []string `json:"image_urls"`
	MonthlyPriceCents int64    `json:"monthly_price_cents" binding:"required,min=0"`
	YearlyPriceCents  *int64   `json:"yearly_price_cents,omitempty"`
}

type UpdateGymRequest struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Location          *string  `json:"location,omitempty"`
	Facilities        []string `json:"facilities,omitempty"`
	ImageURLs         []string `json:"image_urls,omitempty"`
	MonthlyPriceCents *int64   `json:"monthly_price_cents,omitempty"`
	YearlyPriceCents  *int64   `json:"yearly_price_cents,omitempty"`
}

type ListFilter struct {
	Location     string
	VerifiedOnly bool
	Page         int
	Limit        int
}
