package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/application"
	"riwijobs/internal/domain/user"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// joined selects applications together with the denormalized user and
// vacancy summary the lists render.
const applicationJoined = `SELECT a.id, a.user_id, a.vacancy_id, a.applied_at,
	u.name, u.email, u.role,
	v.title, v.company, v.is_active
	FROM applications a
	JOIN users u ON u.id = a.user_id
	JOIN vacancies v ON v.id = a.vacancy_id`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	app.AppliedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, user_id, vacancy_id, applied_at)
		VALUES ($1, $2, $3, $4)`,
		app.ID, app.UserID, app.VacancyID, app.AppliedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied to this vacancy", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, applicationJoined+` WHERE a.id = $1`, id)
	app, err := scanApplication(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return app, nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	return r.query(ctx, applicationJoined+` ORDER BY a.applied_at DESC`)
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID common.UUID) ([]application.Application, error) {
	return r.query(ctx, applicationJoined+` WHERE a.user_id = $1 ORDER BY a.applied_at DESC`, userID)
}

func (r *ApplicationRepository) ListByVacancy(ctx context.Context, vacancyID common.UUID) ([]application.Application, error) {
	return r.query(ctx, applicationJoined+` WHERE a.vacancy_id = $1 ORDER BY a.applied_at DESC`, vacancyID)
}

func (r *ApplicationRepository) ListByVacancyCreator(ctx context.Context, creatorID common.UUID) ([]application.Application, error) {
	return r.query(ctx, applicationJoined+` WHERE v.created_by = $1 ORDER BY a.applied_at DESC`, creatorID)
}

func (r *ApplicationRepository) ListRecent(ctx context.Context, limit int) ([]application.Application, error) {
	return r.query(ctx, applicationJoined+` ORDER BY a.applied_at DESC LIMIT $1`, limit)
}

func (r *ApplicationRepository) CountByUser(ctx context.Context, userID common.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications WHERE user_id = $1`, userID)
}

func (r *ApplicationRepository) CountByVacancy(ctx context.Context, vacancyID common.UUID) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM applications WHERE vacancy_id = $1`, vacancyID)
}

func (r *ApplicationRepository) ExistsByVacancyAndUser(ctx context.Context, vacancyID, userID common.UUID) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE vacancy_id = $1 AND user_id = $2)`, vacancyID, userID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, common.NewError(common.CodeInternal, "failed to check application", err)
	}
	return exists, nil
}

func (r *ApplicationRepository) CountDistinct(ctx context.Context) (int, int, int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT vacancy_id), COUNT(DISTINCT user_id) FROM applications`)
	var total, vacancies, users int
	if err := row.Scan(&total, &vacancies, &users); err != nil {
		return 0, 0, 0, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	return total, vacancies, users, nil
}

func (r *ApplicationRepository) ListPopularVacancies(ctx context.Context, limit int) ([]application.PopularVacancy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT v.id, v.title, v.company, COUNT(a.id) AS applications_count
		FROM vacancies v
		JOIN applications a ON a.vacancy_id = v.id
		GROUP BY v.id, v.title, v.company
		ORDER BY applications_count DESC, v.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list popular vacancies", err)
	}
	defer rows.Close()
	var items []application.PopularVacancy
	for rows.Next() {
		var item application.PopularVacancy
		if err := rows.Scan(&item.VacancyID, &item.Title, &item.Company, &item.ApplicationsCount); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan popular vacancy", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *ApplicationRepository) query(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, *app)
	}
	return items, nil
}

func (r *ApplicationRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	return count, nil
}

func scanApplication(scan func(...any) error) (*application.Application, error) {
	var app application.Application
	var applicant struct {
		name, email, role string
	}
	var summary application.VacancySummary
	if err := scan(&app.ID, &app.UserID, &app.VacancyID, &app.AppliedAt,
		&applicant.name, &applicant.email, &applicant.role,
		&summary.Title, &summary.Company, &summary.IsActive); err != nil {
		return nil, err
	}
	app.User = &user.User{ID: app.UserID, Name: applicant.name, Email: applicant.email, Role: user.Role(applicant.role)}
	summary.ID = app.VacancyID
	app.Vacancy = &summary
	return &app, nil
}
