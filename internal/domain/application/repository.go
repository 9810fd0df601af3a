package application

import (
	"context"

	"riwijobs/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	ListByUser(ctx context.Context, userID common.UUID) ([]Application, error)
	ListByVacancy(ctx context.Context, vacancyID common.UUID) ([]Application, error)
	ListByVacancyCreator(ctx context.Context, creatorID common.UUID) ([]Application, error)
	ListRecent(ctx context.Context, limit int) ([]Application, error)
	CountByUser(ctx context.Context, userID common.UUID) (int, error)
	CountByVacancy(ctx context.Context, vacancyID common.UUID) (int, error)
	ExistsByVacancyAndUser(ctx context.Context, vacancyID, userID common.UUID) (bool, error)
	CountDistinct(ctx context.Context) (total, vacancies, users int, err error)
	ListPopularVacancies(ctx context.Context, limit int) ([]PopularVacancy, error)
}
