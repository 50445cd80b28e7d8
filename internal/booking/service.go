package booking

import (
	"context"
	"errors"
	"time"

	"github.com/prataprai7/gymbooking-sub000/internal/apperr"
	"github.com/prataprai7/gymbooking-sub000/internal/auth"
	"github.com/prataprai7/gymbooking-sub000/internal/email"
	"github.com/prataprai7/gymbooking-sub000/internal/gym"
	"github.com/prataprai7/gymbooking-sub000/internal/metrics"
	"github.com/prataprai7/gymbooking-sub000/internal/user"
)

type Service interface {
	CreateBooking(ctx context.Context, userID int, req CreateBookingRequest) (*BookingWithDetails, error)
	CancelBooking(ctx context.Context, bookingID, userID int, reason string) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID, actorID int, actorRole string, req UpdateStatusRequest) (*Booking, error)
	GetBooking(ctx context.Context, bookingID, actorID int, actorRole string) (*Booking, error)
	GetUserBookings(ctx context.Context, userID, page, limit int) ([]Booking, int, error)
	GetBookingsByGym(ctx context.Context, gymID, actorID int, actorRole string, page, limit int) ([]BookingWithDetails, int, error)
}

type service struct {
	repo         Repository
	gymRepo      gym.Repository
	userRepo     user.Repository
	emailService *email.Service
	now          func() time.Time
}

func NewService(repo Repository, gymRepo gym.Repository, userRepo user.Repository, emailService *email.Service) Service {
	return &service{
		repo:         repo,
		gymRepo:      gymRepo,
		userRepo:     userRepo,
		emailService: emailService,
		now:          time.Now,
	}
}

func (s *service) CreateBooking(ctx context.Context, userID int, req CreateBookingRequest) (*BookingWithDetails, error) {
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return nil, apperr.Validation("start_date must be RFC3339")
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return nil, apperr.Validation("end_date must be RFC3339")
	}
	if !end.After(start) {
		return nil, apperr.Validation("end_date must be after start_date")
	}

	g, err := s.gymRepo.GetGymByID(ctx, req.GymID)
	if err != nil {
		if errors.Is(err, gym.ErrGymNotFound) {
			return nil, apperr.NotFound("gym not found")
		}
		return nil, apperr.Internal(err)
	}
	if !g.IsActive {
		return nil, apperr.Validation("gym is not active")
	}

	booking := &Booking{
		UserID:       userID,
		GymID:        req.GymID,
		MembershipID: req.MembershipID,
		StartDate:    start,
		EndDate:      end,
		PriceCents:   g.MonthlyPriceCents,
	}

	created, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		if errors.Is(err, ErrOverlap) {
			return nil, apperr.Conflict("you already have a booking at this gym for an overlapping period")
		}
		return nil, apperr.Internal(err)
	}

	metrics.RecordBooking(created.Status)

	if s.emailService != nil {
		s.emailService.SendBookingConfirmation(
			ctx,
			created.UserEmail,
			created.UserName,
			created.GymName,
			created.StartDate,
			created.EndDate,
		)
	}

	return created, nil
}

func (s *service) CancelBooking(ctx context.Context, bookingID, userID int, reason string) (*Booking, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, apperr.Internal(err)
	}

	if booking.UserID != userID {
		// Do not leak other users' bookings.
		return nil, apperr.NotFound("booking not found")
	}

	if !Transitions.Can(booking.Status, StatusCancelled) {
		return nil, apperr.InvalidTransition("booking", booking.Status, StatusCancelled)
	}

	if booking.StartDate.Sub(s.now()) < CancellationWindow {
		return nil, apperr.PolicyViolation("bookings can only be cancelled at least 24 hours before the start time")
	}

	cancelled, err := s.repo.MarkCancelled(ctx, bookingID, userID, reason)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, apperr.InvalidTransition("booking", booking.Status, StatusCancelled)
		}
		return nil, apperr.Internal(err)
	}

	metrics.RecordBookingCancellation()

	if s.emailService != nil {
		if u, err := s.userRepo.FindByID(ctx, userID); err == nil {
			s.emailService.SendBookingCancellation(ctx, u.Email, u.Name, cancelled.StartDate)
		}
	}

	return cancelled, nil
}

// UpdateBookingStatus lets the gym's owner or an admin move a booking
// through the lifecycle. Transitions outside the table are rejected,
// including reviving a cancelled booking.
func (s *service) UpdateBookingStatus(ctx context.Context, bookingID, actorID int, actorRole string, req UpdateStatusRequest) (*Booking, error) {
	booking, gymOwnerID, err := s.repo.GetBookingWithGymOwner(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, apperr.Internal(err)
	}

	if gymOwnerID != actorID && actorRole != auth.RoleAdmin {
		return nil, apperr.Authorization("only the gym owner or an admin can update booking status")
	}

	if req.Status == nil && req.PaymentStatus == nil {
		return nil, apperr.Validation("nothing to update")
	}

	if req.Status != nil && *req.Status != booking.Status {
		if !Transitions.Can(booking.Status, *req.Status) {
			return nil, apperr.InvalidTransition("booking", booking.Status, *req.Status)
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, bookingID, req.Status, req.PaymentStatus)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return updated, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, actorID int, actorRole string) (*Booking, error) {
	booking, gymOwnerID, err := s.repo.GetBookingWithGymOwner(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, apperr.NotFound("booking not found")
		}
		return nil, apperr.Internal(err)
	}

	if booking.UserID != actorID && gymOwnerID != actorID && actorRole != auth.RoleAdmin {
		return nil, apperr.NotFound("booking not found")
	}

	return booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID, page, limit int) ([]Booking, int, error) {
	bookings, total, err := s.repo.GetUserBookings(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	now := s.now()
	for i := range bookings {
		bookings[i].StartsSoon = bookings[i].IsStartingSoon(now)
	}

	return bookings, total, nil
}

func (s *service) GetBookingsByGym(ctx context.Context, gymID, actorID int, actorRole string, page, limit int) ([]BookingWithDetails, int, error) {
	g, err := s.gymRepo.GetGymByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, gym.ErrGymNotFound) {
			return nil, 0, apperr.NotFound("gym not found")
		}
		return nil, 0, apperr.Internal(err)
	}

	if g.OwnerID != actorID && actorRole != auth.RoleAdmin {
		return nil, 0, apperr.Authorization("only the gym owner or an admin can list a gym's bookings")
	}

	bookings, total, err := s.repo.GetBookingsByGym(ctx, gymID, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	now := s.now()
	for i := range bookings {
		bookings[i].StartsSoon = bookings[i].IsStartingSoon(now)
	}

	return bookings, total, nil
}
