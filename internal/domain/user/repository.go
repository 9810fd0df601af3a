package user

import (
	"context"

	"riwijobs/internal/common"
)

type Repository interface {
	Create(ctx context.Context, u User) (*User, error)
	Update(ctx context.Context, u User) (*User, error)
	Delete(ctx context.Context, id common.UUID) error
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	CountByRole(ctx context.Context) (map[Role]int, error)
	ListRecent(ctx context.Context, limit int) ([]User, error)
}
