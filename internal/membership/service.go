package membership

import (
	"context"
	"errors"
	"time"

	"github.com/prataprai7/gymbooking-sub000/internal/apperr"
	"github.com/prataprai7/gymbooking-sub000/internal/email"
	"github.com/prataprai7/gymbooking-sub000/internal/gym"
	"github.com/prataprai7/gymbooking-sub000/internal/metrics"
	"github.com/prataprai7/gymbooking-sub000/internal/user"
)

type Service interface {
	CreateMembership(ctx context.Context, userID int, req CreateMembershipRequest) (*Membership, error)
	UpdateMembershipStatus(ctx context.Context, membershipID, userID int, req UpdateStatusRequest) (*Membership, error)
	CancelMembership(ctx context.Context, membershipID, userID int) (*Membership, error)
	ListMyMemberships(ctx context.Context, userID int) ([]Membership, error)
	ListExpiring(ctx context.Context, userID int) ([]Membership, error)
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

// PlanPrice derives the membership price from the gym's rates. A gym
// without an explicit yearly rate charges ten monthly rates for a year
// (two months free).
func PlanPrice(g *gym.Gym, membershipType string) int64 {
	if membershipType == TypeYearly {
		if g.YearlyPriceCents != nil {
			return *g.YearlyPriceCents
		}
		return g.MonthlyPriceCents * 10
	}
	return g.MonthlyPriceCents
}

// PlanEnd computes the membership end from its start and type.
func PlanEnd(start time.Time, membershipType string) time.Time {
	if membershipType == TypeYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

func (s *service) CreateMembership(ctx context.Context, userID int, req CreateMembershipRequest) (*Membership, error) {
	g, err := s.gymRepo.GetGymByID(ctx, req.GymID)
	if err != nil {
		if errors.Is(err, gym.ErrGymNotFound) {
			return nil, apperr.NotFound("gym not found")
		}
		return nil, apperr.Internal(err)
	}

	if err := s.repo.ExpireLapsed(ctx, userID, req.GymID); err != nil {
		return nil, apperr.Internal(err)
	}

	hasActive, err := s.repo.HasActiveMembership(ctx, userID, req.GymID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if hasActive {
		return nil, apperr.Conflict("you already have an active membership at this gym")
	}

	start := s.now()
	m := &Membership{
		UserID:        userID,
		GymID:         req.GymID,
		Type:          req.Type,
		PriceCents:    PlanPrice(g, req.Type),
		PaymentMethod: req.PaymentMethod,
		StartDate:     start,
		EndDate:       PlanEnd(start, req.Type),
	}

	created, err := s.repo.CreateMembership(ctx, m)
	if err != nil {
		if errors.Is(err, ErrDuplicateActive) {
			return nil, apperr.Conflict("you already have an active membership at this gym")
		}
		return nil, apperr.Internal(err)
	}

	metrics.RecordMembership(created.Type)

	if s.emailService != nil {
		if u, err := s.userRepo.FindByID(ctx, userID); err == nil {
			s.emailService.SendMembershipReceipt(ctx, u.Email, u.Name, g.Name, created.Type, created.PriceCents, created.EndDate)
		}
	}

	created.ExpiringSoon = created.IsExpiringSoon(s.now())
	return created, nil
}

func (s *service) UpdateMembershipStatus(ctx context.Context, membershipID, userID int, req UpdateStatusRequest) (*Membership, error) {
	m, err := s.getOwned(ctx, membershipID, userID)
	if err != nil {
		return nil, err
	}

	if req.Status == nil && req.PaymentStatus == nil && req.TransactionID == nil {
		return nil, apperr.Validation("nothing to update")
	}

	if req.Status != nil && *req.Status != m.Status {
		if !Transitions.Can(m.Status, *req.Status) {
			return nil, apperr.InvalidTransition("membership", m.Status, *req.Status)
		}
	}

	updated, err := s.repo.UpdateStatus(ctx, membershipID, req.Status, req.PaymentStatus, req.TransactionID)
	if err != nil {
		if errors.Is(err, ErrDuplicateActive) {
			return nil, apperr.Conflict("you already have an active membership at this gym")
		}
		return nil, apperr.Internal(err)
	}

	updated.ExpiringSoon = updated.IsExpiringSoon(s.now())
	return updated, nil
}

func (s *service) CancelMembership(ctx context.Context, membershipID, userID int) (*Membership, error) {
	m, err := s.getOwned(ctx, membershipID, userID)
	if err != nil {
		return nil, err
	}

	if !Transitions.Can(m.Status, StatusCancelled) {
		return nil, apperr.InvalidTransition("membership", m.Status, StatusCancelled)
	}

	cancelled, err := s.repo.MarkCancelled(ctx, membershipID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return nil, apperr.InvalidTransition("membership", m.Status, StatusCancelled)
		}
		return nil, apperr.Internal(err)
	}

	return cancelled, nil
}

func (s *service) ListMyMemberships(ctx context.Context, userID int) ([]Membership, error) {
	memberships, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := s.now()
	for i := range memberships {
		memberships[i].ExpiringSoon = memberships[i].IsExpiringSoon(now)
	}

	return memberships, nil
}

func (s *service) ListExpiring(ctx context.Context, userID int) ([]Membership, error) {
	memberships, err := s.repo.ListExpiringByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	for i := range memberships {
		memberships[i].ExpiringSoon = true
	}

	// There is no background sweeper; pulling the expiring list is what
	// triggers the renewal reminders.
	if s.emailService != nil && len(memberships) > 0 {
		if u, err := s.userRepo.FindByID(ctx, userID); err == nil {
			for i := range memberships {
				gymName := ""
				if g, err := s.gymRepo.GetGymByID(ctx, memberships[i].GymID); err == nil {
					gymName = g.Name
				}
				s.emailService.SendExpiryReminder(ctx, u.Email, u.Name, gymName, memberships[i].EndDate)
			}
		}
	}

	return memberships, nil
}

func (s *service) getOwned(ctx context.Context, membershipID, userID int) (*Membership, error) {
	m, err := s.repo.GetByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return nil, apperr.NotFound("membership not found")
		}
		return nil, apperr.Internal(err)
	}

	if m.UserID != userID {
		return nil, apperr.NotFound("membership not found")
	}

	return m, nil
}
