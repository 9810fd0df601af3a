package eligibility

import (
	"testing"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/application"
	"riwijobs/internal/domain/vacancy"
)

func makeVacancy(id common.UUID, maxApplicants, applied int, active bool) *vacancy.Vacancy {
	apps := make([]application.Application, applied)
	for i := range apps {
		apps[i] = application.Application{ID: common.NewUUID(), VacancyID: id, UserID: common.NewUUID()}
	}
	return &vacancy.Vacancy{
		ID:            id,
		Title:         "Backend Developer",
		MaxApplicants: maxApplicants,
		IsActive:      active,
		Applications:  apps,
	}
}

func makeApplications(n int, vacancyIDs ...common.UUID) []application.Application {
	apps := make([]application.Application, 0, n)
	for i := 0; i < n; i++ {
		app := application.Application{ID: common.NewUUID(), UserID: common.UUID("user-1")}
		if i < len(vacancyIDs) {
			app.VacancyID = vacancyIDs[i]
		} else {
			app.VacancyID = common.NewUUID()
		}
		apps = append(apps, app)
	}
	return apps
}

func TestCanApplyNilVacancy(t *testing.T) {
	decision := CanApply(nil, nil)
	if decision.Allowed {
		t.Fatal("expected not allowed for nil vacancy")
	}
	if decision.Reason != ReasonNotFound {
		t.Fatalf("expected not_found, got %s", decision.Reason)
	}
}

func TestCanApplyOpenVacancy(t *testing.T) {
	// Scenario A: 1 slot left, one unrelated prior application.
	v := makeVacancy(common.NewUUID(), 5, 4, true)
	mine := makeApplications(1)
	decision := CanApply(v, mine)
	if !decision.Allowed {
		t.Fatalf("expected allowed, got reason %s", decision.Reason)
	}
	if decision.Reason != ReasonNone {
		t.Fatalf("expected empty reason, got %s", decision.Reason)
	}
	if got := AvailableSlots(v); got != 1 {
		t.Fatalf("expected 1 available slot, got %d", got)
	}
}

func TestCanApplyAlreadyApplied(t *testing.T) {
	// Scenario B: same vacancy already in the candidate's applications.
	v := makeVacancy(common.NewUUID(), 5, 4, true)
	mine := makeApplications(1, v.ID)
	decision := CanApply(v, mine)
	if decision.Allowed {
		t.Fatal("expected not allowed")
	}
	if decision.Reason != ReasonAlreadyApplied {
		t.Fatalf("expected already_applied, got %s", decision.Reason)
	}
}

func TestCanApplyNoSlots(t *testing.T) {
	// Scenario C: fully booked vacancy, candidate with no applications.
	v := makeVacancy(common.NewUUID(), 3, 3, true)
	if got := AvailableSlots(v); got != 0 {
		t.Fatalf("expected 0 available slots, got %d", got)
	}
	decision := CanApply(v, nil)
	if decision.Allowed {
		t.Fatal("expected not allowed")
	}
	if decision.Reason != ReasonNoSlots {
		t.Fatalf("expected no_slots, got %s", decision.Reason)
	}
}

func TestCanApplyLimitReached(t *testing.T) {
	// Scenario D: candidate at the 3-application ceiling, distinct vacancy.
	v := makeVacancy(common.NewUUID(), 10, 0, true)
	mine := makeApplications(3)
	decision := CanApply(v, mine)
	if decision.Allowed {
		t.Fatal("expected not allowed")
	}
	if decision.Reason != ReasonLimitReached {
		t.Fatalf("expected limit_reached, got %s", decision.Reason)
	}
}

func TestCanApplyInactiveVacancy(t *testing.T) {
	// Scenario E: inactive vacancy with free slots, candidate with quota.
	v := makeVacancy(common.NewUUID(), 5, 1, false)
	decision := CanApply(v, nil)
	if decision.Allowed {
		t.Fatal("expected not allowed")
	}
	if decision.Reason != ReasonVacancyInactive {
		t.Fatalf("expected vacancy_inactive, got %s", decision.Reason)
	}
}

func TestCanApplyReasonPriority(t *testing.T) {
	// When several reasons hold at once the most specific one wins.
	tests := []struct {
		name     string
		vacancy  func() *vacancy.Vacancy
		mine     func(v *vacancy.Vacancy) []application.Application
		expected Reason
	}{
		{
			name:    "already applied beats limit, inactive and full",
			vacancy: func() *vacancy.Vacancy { return makeVacancy(common.NewUUID(), 2, 5, false) },
			mine: func(v *vacancy.Vacancy) []application.Application {
				return makeApplications(3, v.ID)
			},
			expected: ReasonAlreadyApplied,
		},
		{
			name:    "limit beats inactive and full",
			vacancy: func() *vacancy.Vacancy { return makeVacancy(common.NewUUID(), 2, 5, false) },
			mine: func(v *vacancy.Vacancy) []application.Application {
				return makeApplications(3)
			},
			expected: ReasonLimitReached,
		},
		{
			name:    "inactive beats full",
			vacancy: func() *vacancy.Vacancy { return makeVacancy(common.NewUUID(), 2, 5, false) },
			mine: func(v *vacancy.Vacancy) []application.Application {
				return nil
			},
			expected: ReasonVacancyInactive,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.vacancy()
			decision := CanApply(v, tc.mine(v))
			if decision.Allowed {
				t.Fatal("expected not allowed")
			}
			if decision.Reason != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, decision.Reason)
			}
		})
	}
}

func TestCanApplyIdempotent(t *testing.T) {
	v := makeVacancy(common.NewUUID(), 5, 4, true)
	mine := makeApplications(2)
	first := CanApply(v, mine)
	second := CanApply(v, mine)
	if first != second {
		t.Fatalf("expected identical decisions, got %+v and %+v", first, second)
	}
}

func TestAvailableSlotsNeverNegative(t *testing.T) {
	// Overcommitted vacancy: the stale denormalized list exceeds capacity.
	v := makeVacancy(common.NewUUID(), 2, 7, true)
	if got := AvailableSlots(v); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if !IsFullyBooked(v) {
		t.Fatal("expected fully booked")
	}
	if AvailableSlots(nil) != 0 {
		t.Fatal("expected 0 for nil vacancy")
	}
}

func TestRemainingQuota(t *testing.T) {
	tests := []struct {
		applications int
		expected     int
	}{
		{0, 3},
		{1, 2},
		{3, 0},
		{5, 0},
	}
	for _, tc := range tests {
		if got := RemainingQuota(makeApplications(tc.applications)); got != tc.expected {
			t.Fatalf("quota with %d applications: expected %d, got %d", tc.applications, tc.expected, got)
		}
	}
}

func TestReasonMessages(t *testing.T) {
	for _, reason := range []Reason{ReasonNotFound, ReasonAlreadyApplied, ReasonLimitReached, ReasonVacancyInactive, ReasonNoSlots} {
		if reason.Message() == "" {
			t.Fatalf("missing message for reason %s", reason)
		}
	}
}
