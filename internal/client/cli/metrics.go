package cli

import (
	"context"
	"fmt"
	"sync"

	"riwijobs/internal/domain/analytics"
	"riwijobs/internal/domain/application"
	"riwijobs/internal/domain/user"
	"riwijobs/internal/domain/vacancy"
)

// metricsView renders the aggregate statistics panels. Panels load in
// parallel and fail independently: one backend hiccup blanks a single panel
// instead of the whole screen.
func (a *App) metricsView(ctx context.Context) error {
	var (
		wg        sync.WaitGroup
		userStats *user.Stats
		vacStats  *vacancy.Stats
		appStats  *application.Stats
		popular   []application.PopularVacancy
		activity  []analytics.Event

		userErr, vacErr, appErr, popErr, actErr error
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		userStats, userErr = a.client.UserStats(ctx)
	}()
	go func() {
		defer wg.Done()
		vacStats, vacErr = a.client.VacancyStats(ctx)
	}()
	go func() {
		defer wg.Done()
		appStats, appErr = a.client.DashboardStats(ctx)
	}()
	go func() {
		defer wg.Done()
		popular, popErr = a.client.PopularVacancies(ctx)
	}()
	go func() {
		defer wg.Done()
		activity, actErr = a.client.RecentActivity(ctx, 10)
	}()
	wg.Wait()

	fmt.Fprintln(a.out, "\n== Metrics ==")

	fmt.Fprintln(a.out, "[Users]")
	if userErr != nil {
		fmt.Fprintln(a.out, "  unavailable:", userErr.Error())
	} else {
		fmt.Fprintf(a.out, "  %d total", userStats.TotalUsers)
		for role, count := range userStats.UsersByRole {
			fmt.Fprintf(a.out, ", %d %s", count, role)
		}
		fmt.Fprintln(a.out)
	}

	fmt.Fprintln(a.out, "[Vacancies]")
	if vacErr != nil {
		fmt.Fprintln(a.out, "  unavailable:", vacErr.Error())
	} else {
		fmt.Fprintf(a.out, "  %d total, %d active, %d with open slots\n",
			vacStats.TotalVacancies, vacStats.ActiveVacancies, vacStats.VacanciesWithAvailableSlots)
	}

	fmt.Fprintln(a.out, "[Applications]")
	if appErr != nil {
		fmt.Fprintln(a.out, "  unavailable:", appErr.Error())
	} else {
		fmt.Fprintf(a.out, "  %d total across %d vacancies from %d candidates\n",
			appStats.TotalApplications, appStats.VacanciesWithApplications, appStats.UsersWithApplications)
	}

	fmt.Fprintln(a.out, "[Popular vacancies]")
	if popErr != nil {
		fmt.Fprintln(a.out, "  unavailable:", popErr.Error())
	} else if len(popular) == 0 {
		fmt.Fprintln(a.out, "  no applications yet")
	} else {
		for _, item := range popular {
			fmt.Fprintf(a.out, "  %-30s %-20s %d applications\n", item.Title, item.Company, item.ApplicationsCount)
		}
	}

	fmt.Fprintln(a.out, "[Recent activity]")
	if actErr != nil {
		fmt.Fprintln(a.out, "  unavailable:", actErr.Error())
	} else if len(activity) == 0 {
		fmt.Fprintln(a.out, "  no recent activity")
	} else {
		for _, event := range activity {
			fmt.Fprintf(a.out, "  %s %s\n", event.CreatedAt.Format("2006-01-02 15:04"), event.Name)
		}
	}
	return nil
}
