package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/vacancy"
)

func vacancyRows(vacancies ...vacancy.Vacancy) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "description", "technologies", "seniority", "soft_skills", "location", "modality", "salary_range", "company", "created_by", "max_applicants", "is_active", "created_at"})
	for _, v := range vacancies {
		rows.AddRow(string(v.ID), v.Title, v.Description, v.Technologies, v.Seniority, v.SoftSkills, v.Location, string(v.Modality), v.SalaryRange, v.Company, string(v.CreatedBy), v.MaxApplicants, v.IsActive, v.CreatedAt)
	}
	return rows
}

func testVacancy() vacancy.Vacancy {
	return vacancy.Vacancy{
		ID:            common.NewUUID(),
		Title:         "Backend Developer",
		Description:   "Build APIs",
		Technologies:  "go,postgres",
		Seniority:     "mid",
		Location:      "Medellin",
		Modality:      vacancy.ModalityRemote,
		SalaryRange:   "3000-4000",
		Company:       "Riwi",
		CreatedBy:     common.NewUUID(),
		MaxApplicants: 5,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestVacancyRepositoryListNoFilters(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	v := testVacancy()
	mock.ExpectQuery(`SELECT .+ FROM vacancies WHERE 1=1 ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(50, 0).
		WillReturnRows(vacancyRows(v))

	repo := NewVacancyRepository(db)
	items, err := repo.List(context.Background(), vacancy.Filters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Title != v.Title {
		t.Fatalf("unexpected result: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestVacancyRepositoryListWithFilters(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	active := true
	mock.ExpectQuery(`SELECT .+ FROM vacancies WHERE 1=1 AND company ILIKE \$1 AND modality = \$2 AND is_active = \$3 AND max_applicants > \(SELECT COUNT\(\*\) FROM applications a WHERE a\.vacancy_id = vacancies\.id\) ORDER BY created_at DESC LIMIT \$4 OFFSET \$5`).
		WithArgs("%Riwi%", "remote", true, 10, 20).
		WillReturnRows(vacancyRows())

	repo := NewVacancyRepository(db)
	_, err = repo.List(context.Background(), vacancy.Filters{
		Company:           "Riwi",
		Modality:          vacancy.ModalityRemote,
		IsActive:          &active,
		HasAvailableSlots: true,
		Limit:             10,
		Offset:            20,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestVacancyRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM vacancies WHERE id = \$1`).
		WillReturnRows(vacancyRows())

	repo := NewVacancyRepository(db)
	_, err = repo.GetByID(context.Background(), common.NewUUID())
	if common.CodeOf(err) != common.CodeNotFound {
		t.Fatalf("code = %s, want not_found", common.CodeOf(err))
	}
}

func TestVacancyRepositoryCountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(\*\) FILTER \(WHERE is_active\) FROM vacancies`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "active"}).AddRow(7, 4))

	repo := NewVacancyRepository(db)
	total, active, err := repo.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if total != 7 || active != 4 {
		t.Fatalf("got total=%d active=%d, want 7/4", total, active)
	}
}
