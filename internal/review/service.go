package review

import (
	"context"
	"errors"

	"github.com/prataprai7/gymbooking-sub000/internal/apperr"
	"github.com/prataprai7/gymbooking-sub000/internal/auth"
	"github.com/prataprai7/gymbooking-sub000/internal/gym"
	"github.com/prataprai7/gymbooking-sub000/internal/metrics"
)

type Service interface {
	AddReview(ctx context.Context, userID int, req CreateReviewRequest) (*Review, error)
	UpdateReview(ctx context.Context, reviewID, userID int, req UpdateReviewRequest) (*Review, error)
	DeleteReview(ctx context.Context, reviewID, actorID int, actorRole string) error
	ListGymReviews(ctx context.Context, gymID, page, limit int) ([]ReviewWithAuthor, int, error)
}

type service struct {
	repo    Repository
	gymRepo gym.Repository
}

func NewService(repo Repository, gymRepo gym.Repository) Service {
	return &service{
		repo:    repo,
		gymRepo: gymRepo,
	}
}

func (s *service) AddReview(ctx context.Context, userID int, req CreateReviewRequest) (*Review, error) {
	if _, err := s.gymRepo.GetGymByID(ctx, req.GymID); err != nil {
		if errors.Is(err, gym.ErrGymNotFound) {
			return nil, apperr.NotFound("gym not found")
		}
		return nil, apperr.Internal(err)
	}

	review, err := s.repo.CreateReview(ctx, userID, req.GymID, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, apperr.Conflict("you have already reviewed this gym")
		}
		return nil, apperr.Internal(err)
	}

	metrics.RecordReviewWrite("create")
	return review, nil
}

func (s *service) UpdateReview(ctx context.Context, reviewID, userID int, req UpdateReviewRequest) (*Review, error) {
	current, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, apperr.Internal(err)
	}

	if current.UserID != userID {
		return nil, apperr.NotFound("review not found")
	}
	if !current.IsActive {
		return nil, apperr.NotFound("review not found")
	}

	rating := current.Rating
	if req.Rating != nil {
		rating = *req.Rating
	}
	comment := current.Comment
	if req.Comment != nil {
		comment = *req.Comment
	}

	updated, err := s.repo.UpdateReview(ctx, reviewID, rating, comment)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, apperr.Internal(err)
	}

	metrics.RecordReviewWrite("update")
	return updated, nil
}

// DeleteReview soft-deletes a review. The author or an admin may delete.
func (s *service) DeleteReview(ctx context.Context, reviewID, actorID int, actorRole string) error {
	current, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return apperr.NotFound("review not found")
		}
		return apperr.Internal(err)
	}

	if current.UserID != actorID && actorRole != auth.RoleAdmin {
		return apperr.Authorization("only the review author or an admin can delete a review")
	}
	if !current.IsActive {
		return apperr.NotFound("review not found")
	}

	if err := s.repo.SoftDeleteReview(ctx, reviewID); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return apperr.NotFound("review not found")
		}
		return apperr.Internal(err)
	}

	metrics.RecordReviewWrite("delete")
	return nil
}

func (s *service) ListGymReviews(ctx context.Context, gymID, page, limit int) ([]ReviewWithAuthor, int, error) {
	if _, err := s.gymRepo.GetGymByID(ctx, gymID); err != nil {
		if errors.Is(err, gym.ErrGymNotFound) {
			return nil, 0, apperr.NotFound("gym not found")
		}
		return nil, 0, apperr.Internal(err)
	}

	reviews, total, err := s.repo.ListByGym(ctx, gymID, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return reviews, total, nil
}
