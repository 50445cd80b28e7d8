package review

import "context"

type Repository interface {
	CreateReview(ctx context.Context, userID, gymID, rating int, comment string) (*Review, error)
	GetByID(ctx context.Context, id int) (*Review, error)
	UpdateReview(ctx context.Context, id, rating int, comment string) (*Review, error)
	SoftDeleteReview(ctx context.Context, id int) error
	ListByGym(ctx context.Context, gymID, page, limit int) ([]ReviewWithAuthor, int, error)
}
