package cli

import (
	"context"
	"fmt"
	"strings"

	"riwijobs/internal/client/api"
	"riwijobs/internal/domain/eligibility"
)

// vacanciesView is the management screen for gestors and admins.
func (a *App) vacanciesView(ctx context.Context) error {
	items, err := a.client.ListVacancies(ctx, api.VacancyFilters{})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n== Vacancy management ==")
	for i, v := range items {
		fmt.Fprintf(a.out, "%2d. %-30s %-20s active=%-5t slots=%d/%d\n",
			i+1, v.Title, v.Company, v.IsActive, eligibility.AvailableSlots(&v), v.MaxApplicants)
	}
	fmt.Fprintln(a.out, "Actions: new, toggle <#>, delete <#>, stats <#> (empty to go back)")
	line, err := promptLine(a.reader, a.out, "vacancies>")
	if err != nil || line == "" {
		return err
	}
	parts := strings.Fields(line)
	action := strings.ToLower(parts[0])

	if action == "new" {
		return a.createVacancy(ctx)
	}

	if len(parts) < 2 {
		fmt.Fprintln(a.out, "! missing vacancy number")
		return nil
	}
	index := 0
	if _, err := fmt.Sscanf(parts[1], "%d", &index); err != nil || index < 1 || index > len(items) {
		fmt.Fprintln(a.out, "! pick a number from the list")
		return nil
	}
	picked := items[index-1]

	switch action {
	case "toggle":
		updated, err := a.client.ToggleVacancy(ctx, string(picked.ID))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s is now active=%t\n", updated.Title, updated.IsActive)
	case "delete":
		if !confirm(a.reader, a.out, "Delete "+picked.Title+"?") {
			return nil
		}
		if err := a.client.DeleteVacancy(ctx, string(picked.ID)); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Vacancy deleted")
	case "stats":
		stats, err := a.client.VacancySlotStats(ctx, string(picked.ID))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s: %d/%d filled, %d available, fully booked=%t\n",
			stats.Title, stats.CurrentApplications, stats.MaxApplicants, stats.AvailableSlots, stats.IsFullyBooked)
	default:
		fmt.Fprintln(a.out, "Unknown action:", action)
	}
	return nil
}

func (a *App) createVacancy(ctx context.Context) error {
	var input api.VacancyInput
	var err error
	if input.Title, err = promptLine(a.reader, a.out, "Title"); err != nil {
		return err
	}
	if input.Company, err = promptLine(a.reader, a.out, "Company"); err != nil {
		return err
	}
	if input.Description, err = promptLine(a.reader, a.out, "Description"); err != nil {
		return err
	}
	if input.Technologies, err = promptLine(a.reader, a.out, "Technologies (comma separated)"); err != nil {
		return err
	}
	if input.Seniority, err = promptLine(a.reader, a.out, "Seniority"); err != nil {
		return err
	}
	if input.Location, err = promptLine(a.reader, a.out, "Location"); err != nil {
		return err
	}
	if input.Modality, err = promptLine(a.reader, a.out, "Modality (remote/onsite/hybrid)"); err != nil {
		return err
	}
	if input.SalaryRange, err = promptLine(a.reader, a.out, "Salary range"); err != nil {
		return err
	}
	if input.MaxApplicants, err = promptInt(a.reader, a.out, "Max applicants"); err != nil {
		return err
	}
	created, err := a.client.CreateVacancy(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Vacancy %s created (active)\n", created.Title)
	return nil
}
