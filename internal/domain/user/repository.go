package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ListActive(ctx context.Context) ([]User, error)
	UpdateTotalLeaves(ctx context.Context, id string, totalLeaves float64) error
	UpdateUsedLeaves(ctx context.Context, id string, usedLeaves float64) error
}
