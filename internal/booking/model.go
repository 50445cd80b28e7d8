package booking

import (
	"time"

	"github.com/prataprai7/gymbooking-sub000/internal/state"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Transitions is the booking lifecycle. cancelled and completed are
// terminal; in particular a cancelled booking can never return to
// confirmed.
var Transitions = state.Table{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// CancellationWindow is how far ahead of the start a member may still cancel.
const CancellationWindow = 24 * time.Hour

type Booking struct {
	ID                 int        `db:"id" json:"id"`
	UserID             int        `db:"user_id" json:"user_id"`
	GymID              int        `db:"gym_id" json:"gym_id"`
	MembershipID       *int       `db:"membership_id" json:"membership_id,omitempty"`
	StartDate          time.Time  `db:"start_date" json:"start_date"`
	EndDate            time.Time  `db:"end_date" json:"end_date"`
	PriceCents         int64      `db:"price_cents" json:"price_cents"`
	Status             string     `db:"status" json:"status"`
	PaymentStatus      string     `db:"payment_status" json:"payment_status"`
	CancelledAt        *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancelledBy        *int       `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CancellationReason *string    `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`

	StartsSoon bool `db:"-" json:"starts_soon"`
}

type BookingWithDetails struct {
	Booking
	GymName     string `db:"gym_name" json:"gym_name"`
	GymLocation string `db:"gym_location" json:"gym_location"`
	UserName    string `db:"user_name" json:"user_name"`
	UserEmail   string `db:"user_email" json:"user_email"`
}

// IsStartingSoon reports whether the booking begins within the next 7 days.
func (b *Booking) IsStartingSoon(now time.Time) bool {
	until := b.StartDate.Sub(now)
	return until > 0 && until <= 7*24*time.Hour
}

type CreateBookingRequest struct {
	GymID        int    `json:"gym_id" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	MembershipID *int   `json:"membership_id,omitempty"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status        *string `json:"status,omitempty" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	PaymentStatus *string `json:"payment_status,omitempty"`
}
