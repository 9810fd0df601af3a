package cli

import (
	"context"
	"fmt"
	"sync"

	"riwijobs/internal/client/api"
	"riwijobs/internal/domain/application"
	"riwijobs/internal/domain/eligibility"
	"riwijobs/internal/domain/vacancy"
)

// exploreView is the coder's browse-and-apply screen. The vacancy list and
// the coder's own applications load in parallel; the apply rules run locally
// before the request so a blocked attempt gets a specific reason without a
// round trip. The API re-checks everything, so a stale local pass still gets
// a correct rejection.
func (a *App) exploreView(ctx context.Context) error {
	var (
		wg             sync.WaitGroup
		vacancies      []vacancy.Vacancy
		mine           []application.Application
		vacErr, appErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		vacancies, vacErr = a.client.ListVacancies(ctx, api.VacancyFilters{HasAvailableSlots: true})
	}()
	go func() {
		defer wg.Done()
		mine, appErr = a.client.ListApplications(ctx)
	}()
	wg.Wait()
	if vacErr != nil {
		return vacErr
	}
	if appErr != nil {
		return appErr
	}

	fmt.Fprintln(a.out, "\n== Explore vacancies ==")
	a.printQuotaBanner(mine)
	if len(vacancies) == 0 {
		fmt.Fprintln(a.out, "No open vacancies right now")
		return nil
	}
	for i, v := range vacancies {
		decision := eligibility.CanApply(&v, mine)
		status := "can apply"
		if !decision.Allowed {
			status = decision.Reason.Message()
		}
		fmt.Fprintf(a.out, "%2d. %-30s %-20s %-10s slots=%d (%s)\n",
			i+1, v.Title, v.Company, v.Modality, eligibility.AvailableSlots(&v), status)
	}

	choice, err := promptLine(a.reader, a.out, "Apply to # (empty to go back)")
	if err != nil || choice == "" {
		return err
	}
	index := 0
	if _, err := fmt.Sscanf(choice, "%d", &index); err != nil || index < 1 || index > len(vacancies) {
		fmt.Fprintln(a.out, "! pick a number from the list")
		return nil
	}
	picked := vacancies[index-1]

	decision := eligibility.CanApply(&picked, mine)
	if !decision.Allowed {
		fmt.Fprintln(a.out, "!", decision.Reason.Message())
		return nil
	}
	created, err := a.client.Apply(ctx, string(picked.ID))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Applied to %s at %s\n", picked.Title, picked.Company)
	a.printQuotaBanner(append(mine, *created))
	return nil
}
