// Package eligibility decides whether a candidate may apply to a vacancy and
// how much capacity a vacancy has left. Every function here is pure: no I/O,
// no caching, deterministic for a given input. The console evaluates these
// rules before calling the API to give specific feedback without a round
// trip; the API services re-evaluate them against fresh repository counts,
// and the database unique index settles whatever races remain.
package eligibility

import (
	"riwijobs/internal/domain/application"
	"riwijobs/internal/domain/vacancy"
)

// MaxActiveApplications is the ceiling on concurrently active applications
// per candidate.
const MaxActiveApplications = 3

type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNotFound        Reason = "not_found"
	ReasonAlreadyApplied  Reason = "already_applied"
	ReasonLimitReached    Reason = "limit_reached"
	ReasonVacancyInactive Reason = "vacancy_inactive"
	ReasonNoSlots         Reason = "no_slots"
)

var reasonMessages = map[Reason]string{
	ReasonNotFound:        "vacancy not found",
	ReasonAlreadyApplied:  "you already applied to this vacancy",
	ReasonLimitReached:    "you already have 3 active applications",
	ReasonVacancyInactive: "this vacancy is no longer active",
	ReasonNoSlots:         "this vacancy has no available slots",
}

func (r Reason) Message() string {
	return reasonMessages[r]
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

// CanApply evaluates the apply rules in fixed priority order, so the reason
// reported is always the most specific blocking cause. "Not allowed" is a
// normal outcome, not an error.
func CanApply(v *vacancy.Vacancy, mine []application.Application) Decision {
	if v == nil {
		return Decision{Reason: ReasonNotFound}
	}
	for _, app := range mine {
		if app.VacancyID == v.ID {
			return Decision{Reason: ReasonAlreadyApplied}
		}
	}
	if len(mine) >= MaxActiveApplications {
		return Decision{Reason: ReasonLimitReached}
	}
	if !v.IsActive {
		return Decision{Reason: ReasonVacancyInactive}
	}
	if AvailableSlots(v) <= 0 {
		return Decision{Reason: ReasonNoSlots}
	}
	return Decision{Allowed: true}
}

// AvailableSlots reports the remaining capacity of a vacancy, clamped at 0.
// The denormalized applications list can overcount when the cached copy is
// stale; the UI must never see a negative count.
func AvailableSlots(v *vacancy.Vacancy) int {
	if v == nil {
		return 0
	}
	slots := v.MaxApplicants - len(v.Applications)
	if slots < 0 {
		return 0
	}
	return slots
}

func IsFullyBooked(v *vacancy.Vacancy) bool {
	return AvailableSlots(v) <= 0
}

// RemainingQuota reports how many more applications the candidate may still
// submit, clamped at 0.
func RemainingQuota(mine []application.Application) int {
	quota := MaxActiveApplications - len(mine)
	if quota < 0 {
		return 0
	}
	return quota
}
