package membership

import (
	"time"

	"github.com/prataprai7/gymbooking-sub000/internal/state"
)

const (
	TypeMonthly = "monthly"
	TypeYearly  = "yearly"

	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Transitions is the membership lifecycle, sharing the same table
// mechanism as bookings. cancelled and expired are terminal.
var Transitions = state.Table{
	StatusPending:   {StatusActive, StatusCancelled},
	StatusActive:    {StatusCancelled, StatusExpired},
	StatusCancelled: {},
	StatusExpired:   {},
}

// ExpiryWindow is how close to the end date a membership counts as
// expiring soon.
const ExpiryWindow = 7 * 24 * time.Hour

type Membership struct {
	ID            int        `db:"id" json:"id"`
	UserID        int        `db:"user_id" json:"user_id"`
	GymID         int        `db:"gym_id" json:"gym_id"`
	Type          string     `db:"type" json:"type"`
	Status        string     `db:"status" json:"status"`
	PriceCents    int64      `db:"price_cents" json:"price_cents"`
	PaymentStatus string     `db:"payment_status" json:"payment_status"`
	PaymentMethod string     `db:"payment_method" json:"payment_method"`
	TransactionID *string    `db:"transaction_id" json:"transaction_id,omitempty"`
	StartDate     time.Time  `db:"start_date" json:"start_date"`
	EndDate       time.Time  `db:"end_date" json:"end_date"`
	CancelledAt   *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	ExpiringSoon bool `db:"-" json:"expiring_soon"`
}

// IsExpiringSoon reports whether the membership ends within the next
// seven days. A membership already past its end date does not count.
func (m *Membership) IsExpiringSoon(now time.Time) bool {
	remaining := m.EndDate.Sub(now)
	return remaining > 0 && remaining <= ExpiryWindow
}

type CreateMembershipRequest struct {
	GymID         int    `json:"gym_id" binding:"required"`
	Type          string `json:"type" binding:"required,oneof=monthly yearly"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type UpdateStatusRequest struct {
	Status        *string `json:"status,omitempty" binding:"omitempty,oneof=pending active cancelled expired"`
	PaymentStatus *string `json:"payment_status,omitempty"`
	TransactionID *string `json:"transaction_id,omitempty"`
}
