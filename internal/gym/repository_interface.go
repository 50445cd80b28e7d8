package gym

import "context"

type Repository interface {
	CreateGym(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error)
	ListGyms(ctx context.Context, filter ListFilter) ([]Gym, int, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
	UpdateGym(ctx context.Context, gym *Gym) (*Gym, error)
	SetVerified(ctx context.Context, id int, verified bool) error
	SetActive(ctx context.Context, id int, active bool) error
}
