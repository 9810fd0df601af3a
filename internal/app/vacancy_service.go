package app

import (
	"context"
	"fmt"
	"strings"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/analytics"
	"riwijobs/internal/domain/application"
	"riwijobs/internal/domain/user"
	"riwijobs/internal/domain/vacancy"
)

type VacancyService struct {
	repo         vacancy.Repository
	applications application.Repository
	analytics    analytics.Repository
}

func NewVacancyService(repo vacancy.Repository, applications application.Repository, analyticsRepo analytics.Repository) *VacancyService {
	return &VacancyService{repo: repo, applications: applications, analytics: analyticsRepo}
}

type VacancyInput struct {
	Title         string
	Description   string
	Technologies  string
	Seniority     string
	SoftSkills    string
	Location      string
	Modality      string
	SalaryRange   string
	Company       string
	MaxApplicants int
}

func validateVacancyInput(input VacancyInput) (vacancy.Modality, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(input.Technologies) == "" {
		fields["technologies"] = "technologies are required"
	}
	if strings.TrimSpace(input.Seniority) == "" {
		fields["seniority"] = "seniority is required"
	}
	if strings.TrimSpace(input.Location) == "" {
		fields["location"] = "location is required"
	}
	if strings.TrimSpace(input.SalaryRange) == "" {
		fields["salaryRange"] = "salary range is required"
	}
	if strings.TrimSpace(input.Company) == "" {
		fields["company"] = "company is required"
	}
	if input.MaxApplicants <= 0 {
		fields["maxApplicants"] = "maxApplicants must be a positive integer"
	}
	modality, ok := vacancy.ParseModality(input.Modality)
	if !ok {
		fields["modality"] = "modality must be remote, onsite, or hybrid"
	}
	if len(fields) > 0 {
		return "", common.NewValidationError("invalid vacancy", fields)
	}
	return modality, nil
}

func (s *VacancyService) Create(ctx context.Context, creatorID common.UUID, input VacancyInput) (*vacancy.Vacancy, error) {
	modality, err := validateVacancyInput(input)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, vacancy.Vacancy{
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		Technologies:  input.Technologies,
		Seniority:     input.Seniority,
		SoftSkills:    input.SoftSkills,
		Location:      input.Location,
		Modality:      modality,
		SalaryRange:   input.SalaryRange,
		Company:       input.Company,
		CreatedBy:     creatorID,
		MaxApplicants: input.MaxApplicants,
		IsActive:      true,
	})
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "vacancy.created", UserID: &creatorID, Payload: map[string]string{"vacancy_id": created.ID.String()}})
	return created, nil
}

func (s *VacancyService) Update(ctx context.Context, actorID common.UUID, actorRole user.Role, vacancyID common.UUID, input VacancyInput) (*vacancy.Vacancy, error) {
	current, err := s.ownedVacancy(ctx, actorID, actorRole, vacancyID)
	if err != nil {
		return nil, err
	}
	modality, err := validateVacancyInput(input)
	if err != nil {
		return nil, err
	}
	current.Title = strings.TrimSpace(input.Title)
	current.Description = input.Description
	current.Technologies = input.Technologies
	current.Seniority = input.Seniority
	current.SoftSkills = input.SoftSkills
	current.Location = input.Location
	current.Modality = modality
	current.SalaryRange = input.SalaryRange
	current.Company = input.Company
	current.MaxApplicants = input.MaxApplicants
	updated, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "vacancy.updated", UserID: &actorID, Payload: map[string]string{"vacancy_id": vacancyID.String()}})
	return updated, nil
}

func (s *VacancyService) ToggleActive(ctx context.Context, actorID common.UUID, actorRole user.Role, vacancyID common.UUID) (*vacancy.Vacancy, error) {
	current, err := s.ownedVacancy(ctx, actorID, actorRole, vacancyID)
	if err != nil {
		return nil, err
	}
	current.IsActive = !current.IsActive
	updated, err := s.repo.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "vacancy.toggled", UserID: &actorID, Payload: map[string]string{"vacancy_id": vacancyID.String(), "is_active": fmt.Sprintf("%t", updated.IsActive)}})
	return updated, nil
}

func (s *VacancyService) Delete(ctx context.Context, actorID common.UUID, actorRole user.Role, vacancyID common.UUID) error {
	if _, err := s.ownedVacancy(ctx, actorID, actorRole, vacancyID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, vacancyID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "vacancy.deleted", UserID: &actorID, Payload: map[string]string{"vacancy_id": vacancyID.String()}})
	return nil
}

// Get returns the vacancy with its denormalized applications list so callers
// can compute capacity from current data.
func (s *VacancyService) Get(ctx context.Context, id common.UUID) (*vacancy.Vacancy, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByVacancy(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Applications = apps
	return item, nil
}

func (s *VacancyService) List(ctx context.Context, filters vacancy.Filters) ([]vacancy.Vacancy, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	for i := range items {
		apps, err := s.applications.ListByVacancy(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Applications = apps
	}
	return items, nil
}

func (s *VacancyService) ListByCreator(ctx context.Context, creatorID common.UUID) ([]vacancy.Vacancy, error) {
	return s.repo.ListByCreator(ctx, creatorID)
}

// ListWithAvailableSlots backs the explore page: active vacancies that still
// accept applications.
func (s *VacancyService) ListWithAvailableSlots(ctx context.Context) ([]vacancy.Vacancy, error) {
	active := true
	return s.List(ctx, vacancy.Filters{IsActive: &active, HasAvailableSlots: true})
}

func (s *VacancyService) SlotStats(ctx context.Context, id common.UUID) (*vacancy.SlotStats, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current, err := s.applications.CountByVacancy(ctx, id)
	if err != nil {
		return nil, err
	}
	available := item.MaxApplicants - current
	if available < 0 {
		available = 0
	}
	return &vacancy.SlotStats{
		VacancyID:           item.ID,
		Title:               item.Title,
		Company:             item.Company,
		MaxApplicants:       item.MaxApplicants,
		CurrentApplications: current,
		AvailableSlots:      available,
		IsFullyBooked:       available == 0,
		IsActive:            item.IsActive,
	}, nil
}

func (s *VacancyService) Stats(ctx context.Context) (*vacancy.Stats, error) {
	total, active, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.ListRecent(ctx, 5)
	if err != nil {
		return nil, err
	}
	withSlots := 0
	for i := range recent {
		apps, err := s.applications.ListByVacancy(ctx, recent[i].ID)
		if err != nil {
			return nil, err
		}
		recent[i].Applications = apps
	}
	openFilter := true
	open, err := s.repo.List(ctx, vacancy.Filters{IsActive: &openFilter, HasAvailableSlots: true, Limit: 100})
	if err != nil {
		return nil, err
	}
	withSlots = len(open)
	return &vacancy.Stats{
		TotalVacancies:              total,
		ActiveVacancies:             active,
		InactiveVacancies:           total - active,
		VacanciesWithAvailableSlots: withSlots,
		MostRecentVacancies:         recent,
	}, nil
}

func (s *VacancyService) ownedVacancy(ctx context.Context, actorID common.UUID, actorRole user.Role, vacancyID common.UUID) (*vacancy.Vacancy, error) {
	current, err := s.repo.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if actorRole != user.RoleAdmin && current.CreatedBy != actorID {
		return nil, common.NewError(common.CodeForbidden, "vacancy belongs to another manager", nil)
	}
	return current, nil
}
