package user

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, phone, passwordHash, role string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int, name, phone string) (*User, error)
	SetActive(ctx context.Context, id int, active bool) error
}
