package booking

import "context"

type Repository interface {
	CreateBooking(ctx context.Context, b *Booking) (*BookingWithDetails, error)
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	GetBookingWithGymOwner(ctx context.Context, id int) (*Booking, int, error)
	MarkCancelled(ctx context.Context, id, cancelledBy int, reason string) (*Booking, error)
	UpdateStatus(ctx context.Context, id int, status, paymentStatus *string) (*Booking, error)
	GetUserBookings(ctx context.Context, userID, page, limit int) ([]Booking, int, error)
	GetBookingsByGym(ctx context.Context, gymID, page, limit int) ([]BookingWithDetails, int, error)
}
