package vacancy

import (
	"context"

	"riwijobs/internal/common"
)

type Repository interface {
	Create(ctx context.Context, v Vacancy) (*Vacancy, error)
	Update(ctx context.Context, v Vacancy) (*Vacancy, error)
	Delete(ctx context.Context, id common.UUID) error
	GetByID(ctx context.Context, id common.UUID) (*Vacancy, error)
	List(ctx context.Context, filters Filters) ([]Vacancy, error)
	ListByCreator(ctx context.Context, creatorID common.UUID) ([]Vacancy, error)
	ListRecent(ctx context.Context, limit int) ([]Vacancy, error)
	CountByStatus(ctx context.Context) (total, active int, err error)
}
