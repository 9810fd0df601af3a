package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/application"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestApplicationCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	userID := common.NewUUID()
	vacancyID := common.NewUUID()
	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(sqlmock.AnyArg(), userID, vacancyID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), testApplication(userID, vacancyID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("expected generated id")
	}
	if created.AppliedAt.IsZero() {
		t.Fatal("expected applied_at to be set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestApplicationCreateDuplicateMapsToConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	userID := common.NewUUID()
	vacancyID := common.NewUUID()
	mock.ExpectExec(`INSERT INTO applications`).
		WithArgs(sqlmock.AnyArg(), userID, vacancyID, sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "applications_user_vacancy_key"})

	_, err := repo.Create(context.Background(), testApplication(userID, vacancyID))
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestApplicationCountByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	userID := common.NewUUID()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM applications WHERE user_id`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
}

func TestApplicationExistsByVacancyAndUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	userID := common.NewUUID()
	vacancyID := common.NewUUID()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(vacancyID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByVacancyAndUser(context.Background(), vacancyID, userID)
	if err != nil {
		t.Fatalf("ExistsByVacancyAndUser: %v", err)
	}
	if !exists {
		t.Fatal("expected exists")
	}
}

func TestApplicationDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	id := common.NewUUID()
	mock.ExpectExec(`DELETE FROM applications WHERE id`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id)
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func testApplication(userID, vacancyID common.UUID) application.Application {
	return application.Application{UserID: userID, VacancyID: vacancyID}
}
