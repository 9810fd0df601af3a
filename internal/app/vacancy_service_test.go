package app

import (
	"context"
	"errors"
	"testing"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/application"
	"riwijobs/internal/domain/user"
	"riwijobs/internal/domain/vacancy"
)

func newVacancyService() (*VacancyService, *fakeVacancyRepo, *fakeApplicationRepo) {
	vacancies := newFakeVacancyRepo()
	apps := newFakeApplicationRepo()
	service := NewVacancyService(vacancies, apps, &fakeAnalyticsRepo{})
	return service, vacancies, apps
}

func validInput() VacancyInput {
	return VacancyInput{
		Title:         "Backend Developer",
		Description:   "Build APIs",
		Technologies:  "go,postgres",
		Seniority:     "mid",
		Location:      "Medellin",
		Modality:      "remote",
		SalaryRange:   "3000-4000",
		Company:       "Riwi",
		MaxApplicants: 5,
	}
}

func TestVacancyCreateDefaultsToActive(t *testing.T) {
	service, _, _ := newVacancyService()
	creator := common.NewUUID()

	created, err := service.Create(context.Background(), creator, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.IsActive {
		t.Fatal("expected new vacancy to be active")
	}
	if created.CreatedBy != creator {
		t.Fatalf("expected creator %s, got %s", creator, created.CreatedBy)
	}
	if created.Modality != vacancy.ModalityRemote {
		t.Fatalf("expected remote modality, got %s", created.Modality)
	}
}

func TestVacancyCreateValidation(t *testing.T) {
	service, _, _ := newVacancyService()

	cases := []struct {
		name   string
		mutate func(*VacancyInput)
		field  string
	}{
		{"missing title", func(in *VacancyInput) { in.Title = "  " }, "title"},
		{"missing company", func(in *VacancyInput) { in.Company = "" }, "company"},
		{"bad modality", func(in *VacancyInput) { in.Modality = "freelance" }, "modality"},
		{"zero capacity", func(in *VacancyInput) { in.MaxApplicants = 0 }, "maxApplicants"},
		{"negative capacity", func(in *VacancyInput) { in.MaxApplicants = -2 }, "maxApplicants"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := service.Create(context.Background(), common.NewUUID(), input)
			if !common.Is(err, common.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var appErr *common.Error
			if !errors.As(err, &appErr) {
				t.Fatalf("expected *common.Error, got %T", err)
			}
			if _, ok := appErr.Fields[tc.field]; !ok {
				t.Fatalf("expected field %q in %v", tc.field, appErr.Fields)
			}
		})
	}
}

func TestVacancyUpdateOwnership(t *testing.T) {
	service, _, _ := newVacancyService()
	owner := common.NewUUID()
	created, err := service.Create(context.Background(), owner, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	input := validInput()
	input.Title = "Senior Backend Developer"

	if _, err := service.Update(context.Background(), common.NewUUID(), user.RoleGestor, created.ID, input); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for another gestor, got %v", err)
	}
	updated, err := service.Update(context.Background(), owner, user.RoleGestor, created.ID, input)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Senior Backend Developer" {
		t.Fatalf("unexpected title %q", updated.Title)
	}

	input.Company = "Riwi Labs"
	updated, err = service.Update(context.Background(), common.NewUUID(), user.RoleAdmin, created.ID, input)
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Company != "Riwi Labs" {
		t.Fatalf("unexpected company %q", updated.Company)
	}
}

func TestVacancyToggleActive(t *testing.T) {
	service, _, _ := newVacancyService()
	owner := common.NewUUID()
	created, err := service.Create(context.Background(), owner, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	toggled, err := service.ToggleActive(context.Background(), owner, user.RoleGestor, created.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.IsActive {
		t.Fatal("expected vacancy to be deactivated")
	}
	toggled, err = service.ToggleActive(context.Background(), owner, user.RoleGestor, created.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if !toggled.IsActive {
		t.Fatal("expected vacancy to be reactivated")
	}
}

func TestVacancyDeleteOwnership(t *testing.T) {
	service, vacancies, _ := newVacancyService()
	owner := common.NewUUID()
	created, err := service.Create(context.Background(), owner, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := service.Delete(context.Background(), common.NewUUID(), user.RoleGestor, created.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := service.Delete(context.Background(), owner, user.RoleGestor, created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(vacancies.items) != 0 {
		t.Fatalf("expected no vacancies left, got %d", len(vacancies.items))
	}
}

func TestVacancySlotStats(t *testing.T) {
	service, vacancies, apps := newVacancyService()
	vac := vacancies.add(activeVacancy(3))

	for i := 0; i < 2; i++ {
		seed := application.Application{VacancyID: vac.ID, UserID: common.NewUUID()}
		if _, err := apps.Create(context.Background(), seed); err != nil {
			t.Fatalf("seed application %d: %v", i, err)
		}
	}

	stats, err := service.SlotStats(context.Background(), vac.ID)
	if err != nil {
		t.Fatalf("slot stats: %v", err)
	}
	if stats.CurrentApplications != 2 || stats.AvailableSlots != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.IsFullyBooked {
		t.Fatal("expected slots remaining")
	}
}

func TestVacancyGetUnknown(t *testing.T) {
	service, _, _ := newVacancyService()
	if _, err := service.Get(context.Background(), common.NewUUID()); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
