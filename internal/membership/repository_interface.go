package membership

import "context"

type Repository interface {
	CreateMembership(ctx context.Context, m *Membership) (*Membership, error)
	GetByID(ctx context.Context, id int) (*Membership, error)
	HasActiveMembership(ctx context.Context, userID, gymID int) (bool, error)
	ExpireLapsed(ctx context.Context, userID, gymID int) error
	UpdateStatus(ctx context.Context, id int, status, paymentStatus, transactionID *string) (*Membership, error)
	MarkCancelled(ctx context.Context, id int) (*Membership, error)
	ListByUser(ctx context.Context, userID int) ([]Membership, error)
	ListExpiringByUser(ctx context.Context, userID int) ([]Membership, error)
}
