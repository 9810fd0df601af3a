package application

import (
	"time"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/user"
)

// Application joins one user to one vacancy. The (UserID, VacancyID) pair is
// unique; the database index is the authority, services only pre-check.
type Application struct {
	ID        common.UUID     `json:"id"`
	UserID    common.UUID     `json:"userId"`
	VacancyID common.UUID     `json:"vacancyId"`
	AppliedAt time.Time       `json:"appliedAt"`
	User      *user.User      `json:"user,omitempty"`
	Vacancy   *VacancySummary `json:"vacancy,omitempty"`
}

// VacancySummary is the denormalized slice of a vacancy carried on an
// application for list rendering.
type VacancySummary struct {
	ID       common.UUID `json:"id"`
	Title    string      `json:"title"`
	Company  string      `json:"company"`
	IsActive bool        `json:"isActive"`
}

type PopularVacancy struct {
	VacancyID         common.UUID `json:"vacancyId"`
	Title             string      `json:"title"`
	Company           string      `json:"company"`
	ApplicationsCount int         `json:"applicationsCount"`
}

type Stats struct {
	TotalApplications         int              `json:"totalApplications"`
	VacanciesWithApplications int              `json:"vacanciesWithApplications"`
	UsersWithApplications     int              `json:"usersWithApplications"`
	RecentApplications        []Application    `json:"recentApplications"`
	MostPopularVacancies      []PopularVacancy `json:"mostPopularVacancies"`
}

type UserStats struct {
	UserID             common.UUID   `json:"userId"`
	TotalApplications  int           `json:"totalApplications"`
	ActiveApplications int           `json:"activeApplications"`
	RecentApplications []Application `json:"recentApplications"`
}
