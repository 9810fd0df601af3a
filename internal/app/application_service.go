package app

import (
	"context"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/analytics"
	"riwijobs/internal/domain/application"
	"riwijobs/internal/domain/eligibility"
	"riwijobs/internal/domain/user"
	"riwijobs/internal/domain/vacancy"
)

type ApplicationService struct {
	repo      application.Repository
	vacancies vacancy.Repository
	analytics analytics.Repository
}

func NewApplicationService(repo application.Repository, vacancies vacancy.Repository, analyticsRepo analytics.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, vacancies: vacancies, analytics: analyticsRepo}
}

// Apply is the authoritative side of the apply rules. The console already
// ran the same rule engine as a pre-flight; here the rules are re-evaluated
// against fresh repository counts, and the unique index on
// (user_id, vacancy_id) settles the duplicate race the counts cannot see.
func (s *ApplicationService) Apply(ctx context.Context, vacancyID, userID common.UUID) (*application.Application, error) {
	vac, err := s.vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeNotFound, eligibility.ReasonNotFound.Message(), err)
		}
		return nil, err
	}
	mine, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.CountByVacancy(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	vac.Applications = make([]application.Application, current)
	decision := eligibility.CanApply(vac, mine)
	if !decision.Allowed {
		code := common.CodeValidation
		if decision.Reason == eligibility.ReasonAlreadyApplied {
			code = common.CodeConflict
		}
		return nil, common.NewError(code, decision.Reason.Message(), nil)
	}
	created, err := s.repo.Create(ctx, application.Application{UserID: userID, VacancyID: vacancyID})
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.created", UserID: &userID, Payload: map[string]string{"application_id": created.ID.String(), "vacancy_id": vacancyID.String()}})
	return created, nil
}

// Get applies the same visibility rules as List: admins see any application,
// gestores only those on their own vacancies, coders only their own.
func (s *ApplicationService) Get(ctx context.Context, actorID common.UUID, actorRole user.Role, id common.UUID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch actorRole {
	case user.RoleAdmin:
	case user.RoleGestor:
		vac, err := s.vacancies.GetByID(ctx, app.VacancyID)
		if err != nil {
			return nil, err
		}
		if vac.CreatedBy != actorID {
			return nil, common.NewError(common.CodeForbidden, "application belongs to another manager's vacancy", nil)
		}
	case user.RoleCoder:
		if app.UserID != actorID {
			return nil, common.NewError(common.CodeForbidden, "application belongs to another user", nil)
		}
	default:
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	return app, nil
}

// List scopes by role: admins see everything, gestores the applications to
// their own vacancies, coders their own applications.
func (s *ApplicationService) List(ctx context.Context, actorID common.UUID, actorRole user.Role) ([]application.Application, error) {
	switch actorRole {
	case user.RoleAdmin:
		return s.repo.List(ctx)
	case user.RoleGestor:
		return s.repo.ListByVacancyCreator(ctx, actorID)
	case user.RoleCoder:
		return s.repo.ListByUser(ctx, actorID)
	default:
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
}

// Delete removes an application: admins may delete any, coders only their
// own (a withdrawal).
func (s *ApplicationService) Delete(ctx context.Context, actorID common.UUID, actorRole user.Role, id common.UUID) error {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch actorRole {
	case user.RoleAdmin:
	case user.RoleCoder:
		if app.UserID != actorID {
			return common.NewError(common.CodeForbidden, "application belongs to another user", nil)
		}
	default:
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.deleted", UserID: &actorID, Payload: map[string]string{"application_id": id.String()}})
	return nil
}

func (s *ApplicationService) VacancyStats(ctx context.Context, vacancyID common.UUID) (*vacancy.SlotStats, error) {
	vac, err := s.vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.CountByVacancy(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	available := vac.MaxApplicants - current
	if available < 0 {
		available = 0
	}
	return &vacancy.SlotStats{
		VacancyID:           vac.ID,
		Title:               vac.Title,
		Company:             vac.Company,
		MaxApplicants:       vac.MaxApplicants,
		CurrentApplications: current,
		AvailableSlots:      available,
		IsFullyBooked:       available == 0,
		IsActive:            vac.IsActive,
	}, nil
}

func (s *ApplicationService) UserStats(ctx context.Context, userID common.UUID) (*application.UserStats, error) {
	mine, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent := mine
	if len(recent) > 5 {
		recent = recent[:5]
	}
	return &application.UserStats{
		UserID:             userID,
		TotalApplications:  len(mine),
		ActiveApplications: len(mine),
		RecentApplications: recent,
	}, nil
}

func (s *ApplicationService) PopularVacancies(ctx context.Context) ([]application.PopularVacancy, error) {
	return s.repo.ListPopularVacancies(ctx, 5)
}

func (s *ApplicationService) DashboardStats(ctx context.Context) (*application.Stats, error) {
	total, vacancies, users, err := s.repo.CountDistinct(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.ListRecent(ctx, 5)
	if err != nil {
		return nil, err
	}
	popular, err := s.repo.ListPopularVacancies(ctx, 5)
	if err != nil {
		return nil, err
	}
	return &application.Stats{
		TotalApplications:         total,
		VacanciesWithApplications: vacancies,
		UsersWithApplications:     users,
		RecentApplications:        recent,
		MostPopularVacancies:      popular,
	}, nil
}
