package gym

import (
	"context"
	"errors"

	"github.com/prataprai7/gymbooking-sub000/internal/apperr"
	"github.com/prataprai7/gymbooking-sub000/internal/auth"
)

type Service interface {
	CreateGym(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error)
	ListGyms(ctx context.Context, filter ListFilter) ([]Gym, int, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
	UpdateGym(ctx context.Context, gymID, actorID int, actorRole string, req UpdateGymRequest) (*Gym, error)
	SetVerified(ctx context.Context, gymID int, verified bool) error
	SetActive(ctx context.Context, gymID int, active bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateGym(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error) {
	if req.YearlyPriceCents != nil && *req.YearlyPriceCents < 0 {
		return nil, apperr.Validation("yearly price cannot be negative")
	}

	gym, err := s.repo.CreateGym(ctx, ownerID, req)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return gym, nil
}

func (s *service) ListGyms(ctx context.Context, filter ListFilter) ([]Gym, int, error) {
	gyms, total, err := s.repo.ListGyms(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return gyms, total, nil
}

func (s *service) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	gym, err := s.repo.GetGymByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrGymNotFound) {
			return nil, apperr.NotFound("gym not found")
		}
		return nil, apperr.Internal(err)
	}
	return gym, nil
}

// UpdateGym applies only the provided fields. Only the gym's owner or an
// admin may update it.
func (s *service) UpdateGym(ctx context.Context, gymID, actorID int, actorRole string, req UpdateGymRequest) (*Gym, error) {
	gym, err := s.GetGymByID(ctx, gymID)
	if err != nil {
		return nil, err
	}

	if gym.OwnerID != actorID && actorRole != auth.RoleAdmin {
		return nil, apperr.Authorization("only the gym owner or an admin can update this gym")
	}

	if req.Name != nil {
		gym.Name = *req.Name
	}
	if req.Description != nil {
		gym.Description = *req.Description
	}
	if req.Location != nil {
		gym.Location = *req.Location
	}
	if req.Facilities != nil {
		gym.Facilities = req.Facilities
	}
	if req.ImageURLs != nil {
		gym.ImageURLs = req.ImageURLs
	}
	if req.MonthlyPriceCents != nil {
		if *req.MonthlyPriceCents < 0 {
			return nil, apperr.Validation("monthly price cannot be negative")
		}
		gym.MonthlyPriceCents = *req.MonthlyPriceCents
	}
	if req.YearlyPriceCents != nil {
		if *req.YearlyPriceCents < 0 {
			return nil, apperr.Validation("yearly price cannot be negative")
		}
		gym.YearlyPriceCents = req.YearlyPriceCents
	}

	updated, err := s.repo.UpdateGym(ctx, gym)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return updated, nil
}

func (s *service) SetVerified(ctx context.Context, gymID int, verified bool) error {
	if err := s.repo.SetVerified(ctx, gymID, verified); err != nil {
		if errors.Is(err, ErrGymNotFound) {
			return apperr.NotFound("gym not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *service) SetActive(ctx context.Context, gymID int, active bool) error {
	if err := s.repo.SetActive(ctx, gymID, active); err != nil {
		if errors.Is(err, ErrGymNotFound) {
			return apperr.NotFound("gym not found")
		}
		return apperr.Internal(err)
	}
	return nil
}
