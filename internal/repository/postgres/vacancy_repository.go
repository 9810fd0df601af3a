package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/vacancy"
)

type VacancyRepository struct {
	db *sql.DB
}

func NewVacancyRepository(db *sql.DB) *VacancyRepository {
	return &VacancyRepository{db: db}
}

const vacancyColumns = `id, title, description, technologies, seniority, soft_skills, location, modality, salary_range, company, created_by, max_applicants, is_active, created_at`

func (r *VacancyRepository) Create(ctx context.Context, v vacancy.Vacancy) (*vacancy.Vacancy, error) {
	v.ID = common.NewUUID()
	v.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO vacancies (id, title, description, technologies, seniority, soft_skills, location, modality, salary_range, company, created_by, max_applicants, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		v.ID, v.Title, v.Description, v.Technologies, v.Seniority, v.SoftSkills, v.Location, v.Modality, v.SalaryRange, v.Company, v.CreatedBy, v.MaxApplicants, v.IsActive, v.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create vacancy", err)
	}
	return &v, nil
}

func (r *VacancyRepository) Update(ctx context.Context, v vacancy.Vacancy) (*vacancy.Vacancy, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE vacancies SET title = $1, description = $2, technologies = $3, seniority = $4, soft_skills = $5, location = $6, modality = $7, salary_range = $8, company = $9, max_applicants = $10, is_active = $11
		WHERE id = $12`,
		v.Title, v.Description, v.Technologies, v.Seniority, v.SoftSkills, v.Location, v.Modality, v.SalaryRange, v.Company, v.MaxApplicants, v.IsActive, v.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update vacancy", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "vacancy not found", sql.ErrNoRows)
	}
	return &v, nil
}

func (r *VacancyRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete vacancy", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "vacancy not found", sql.ErrNoRows)
	}
	return nil
}

func (r *VacancyRepository) GetByID(ctx context.Context, id common.UUID) (*vacancy.Vacancy, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vacancyColumns+` FROM vacancies WHERE id = $1`, id)
	var v vacancy.Vacancy
	if err := scanVacancy(row.Scan, &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "vacancy not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load vacancy", err)
	}
	return &v, nil
}

// List applies the explore filters. hasAvailableSlots and the technologies
// tag filter are evaluated in SQL so pagination stays correct.
func (r *VacancyRepository) List(ctx context.Context, filters vacancy.Filters) ([]vacancy.Vacancy, error) {
	conditions := []string{"1=1"}
	args := []any{}
	arg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Company != "" {
		conditions = append(conditions, "company ILIKE "+arg("%"+filters.Company+"%"))
	}
	if filters.Location != "" {
		conditions = append(conditions, "location ILIKE "+arg("%"+filters.Location+"%"))
	}
	if filters.Modality != "" {
		conditions = append(conditions, "modality = "+arg(filters.Modality))
	}
	if filters.IsActive != nil {
		conditions = append(conditions, "is_active = "+arg(*filters.IsActive))
	}
	if filters.HasAvailableSlots {
		conditions = append(conditions, "max_applicants > (SELECT COUNT(*) FROM applications a WHERE a.vacancy_id = vacancies.id)")
	}
	if len(filters.Technologies) > 0 {
		conditions = append(conditions, "string_to_array(lower(technologies), ',') && "+arg(pq.Array(lowerAll(filters.Technologies))))
	}

	limit := filters.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `SELECT ` + vacancyColumns + ` FROM vacancies WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(filters.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list vacancies", err)
	}
	defer rows.Close()
	return collectVacancies(rows)
}

func (r *VacancyRepository) ListByCreator(ctx context.Context, creatorID common.UUID) ([]vacancy.Vacancy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+vacancyColumns+` FROM vacancies WHERE created_by = $1 ORDER BY created_at DESC`, creatorID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list vacancies", err)
	}
	defer rows.Close()
	return collectVacancies(rows)
}

func (r *VacancyRepository) ListRecent(ctx context.Context, limit int) ([]vacancy.Vacancy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+vacancyColumns+` FROM vacancies ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list recent vacancies", err)
	}
	defer rows.Close()
	return collectVacancies(rows)
}

func (r *VacancyRepository) CountByStatus(ctx context.Context) (int, int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM vacancies`)
	var total, active int
	if err := row.Scan(&total, &active); err != nil {
		return 0, 0, common.NewError(common.CodeInternal, "failed to count vacancies", err)
	}
	return total, active, nil
}

func scanVacancy(scan func(...any) error, v *vacancy.Vacancy) error {
	return scan(&v.ID, &v.Title, &v.Description, &v.Technologies, &v.Seniority, &v.SoftSkills, &v.Location, &v.Modality, &v.SalaryRange, &v.Company, &v.CreatedBy, &v.MaxApplicants, &v.IsActive, &v.CreatedAt)
}

func collectVacancies(rows *sql.Rows) ([]vacancy.Vacancy, error) {
	var items []vacancy.Vacancy
	for rows.Next() {
		var v vacancy.Vacancy
		if err := scanVacancy(rows.Scan, &v); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan vacancy", err)
		}
		items = append(items, v)
	}
	return items, nil
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = strings.ToLower(strings.TrimSpace(value))
	}
	return out
}
