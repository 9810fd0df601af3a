package vacancy

import (
	"strings"
	"time"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/application"
)

type Modality string

const (
	ModalityRemote Modality = "remote"
	ModalityOnSite Modality = "onsite"
	ModalityHybrid Modality = "hybrid"
)

// ParseModality normalizes a modality value. Legacy clients send upper-case values.
func ParseModality(value string) (Modality, bool) {
	switch Modality(strings.ToLower(strings.TrimSpace(value))) {
	case ModalityRemote:
		return ModalityRemote, true
	case ModalityOnSite:
		return ModalityOnSite, true
	case ModalityHybrid:
		return ModalityHybrid, true
	default:
		return "", false
	}
}

type Vacancy struct {
	ID            common.UUID               `json:"id"`
	Title         string                    `json:"title"`
	Description   string                    `json:"description"`
	Technologies  string                    `json:"technologies"`
	Seniority     string                    `json:"seniority"`
	SoftSkills    string                    `json:"softSkills,omitempty"`
	Location      string                    `json:"location"`
	Modality      Modality                  `json:"modality"`
	SalaryRange   string                    `json:"salaryRange"`
	Company       string                    `json:"company"`
	CreatedBy     common.UUID               `json:"createdBy"`
	MaxApplicants int                       `json:"maxApplicants"`
	IsActive      bool                      `json:"isActive"`
	CreatedAt     time.Time                 `json:"createdAt"`
	Applications  []application.Application `json:"applications,omitempty"`
}

// TechnologyList splits the comma-joined technologies field into tags.
func (v Vacancy) TechnologyList() []string {
	parts := strings.Split(v.Technologies, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

type Filters struct {
	Company           string
	Location          string
	Modality          Modality
	IsActive          *bool
	HasAvailableSlots bool
	Technologies      []string
	Limit             int
	Offset            int
}

type Stats struct {
	TotalVacancies              int       `json:"totalVacancies"`
	ActiveVacancies             int       `json:"activeVacancies"`
	InactiveVacancies           int       `json:"inactiveVacancies"`
	VacanciesWithAvailableSlots int       `json:"vacanciesWithAvailableSlots"`
	MostRecentVacancies         []Vacancy `json:"mostRecentVacancies"`
}

type SlotStats struct {
	VacancyID           common.UUID `json:"vacancyId"`
	Title               string      `json:"title"`
	Company             string      `json:"company"`
	MaxApplicants       int         `json:"maxApplicants"`
	CurrentApplications int         `json:"currentApplications"`
	AvailableSlots      int         `json:"availableSlots"`
	IsFullyBooked       bool        `json:"isFullyBooked"`
	IsActive            bool        `json:"isActive"`
}
