package cli

import (
	"context"
	"fmt"

	"riwijobs/internal/domain/application"
	"riwijobs/internal/domain/eligibility"
	"riwijobs/internal/domain/user"
)

// dashboardView picks the renderer by role. Each role sees a different
// landing summary.
func (a *App) dashboardView(ctx context.Context) error {
	renderers := map[user.Role]func(context.Context) error{
		user.RoleAdmin:  a.adminDashboard,
		user.RoleGestor: a.gestorDashboard,
		user.RoleCoder:  a.coderDashboard,
	}
	render, ok := renderers[a.role()]
	if !ok {
		return fmt.Errorf("no dashboard for role %q", a.current.Role)
	}
	return render(ctx)
}

func (a *App) adminDashboard(ctx context.Context) error {
	stats, err := a.client.DashboardStats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n== Admin dashboard ==")
	fmt.Fprintf(a.out, "Applications: %d total, %d vacancies with applicants, %d active candidates\n",
		stats.TotalApplications, stats.VacanciesWithApplications, stats.UsersWithApplications)
	if len(stats.MostPopularVacancies) > 0 {
		fmt.Fprintln(a.out, "Most popular vacancies:")
		for _, item := range stats.MostPopularVacancies {
			fmt.Fprintf(a.out, "  %-30s %-20s %d applications\n", item.Title, item.Company, item.ApplicationsCount)
		}
	}
	return nil
}

func (a *App) gestorDashboard(ctx context.Context) error {
	stats, err := a.client.VacancyStats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n== Vacancy overview ==")
	fmt.Fprintf(a.out, "Vacancies: %d total, %d active, %d inactive, %d with open slots\n",
		stats.TotalVacancies, stats.ActiveVacancies, stats.InactiveVacancies, stats.VacanciesWithAvailableSlots)
	if len(stats.MostRecentVacancies) > 0 {
		fmt.Fprintln(a.out, "Most recent:")
		for _, v := range stats.MostRecentVacancies {
			fmt.Fprintf(a.out, "  %-30s %-20s active=%t\n", v.Title, v.Company, v.IsActive)
		}
	}
	return nil
}

func (a *App) coderDashboard(ctx context.Context) error {
	mine, err := a.client.ListApplications(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n== My dashboard ==")
	a.printQuotaBanner(mine)
	if len(mine) == 0 {
		fmt.Fprintln(a.out, "No applications yet, try the explore screen")
		return nil
	}
	fmt.Fprintln(a.out, "My applications:")
	for _, app := range mine {
		title, company := "(vacancy removed)", ""
		if app.Vacancy != nil {
			title, company = app.Vacancy.Title, app.Vacancy.Company
		}
		fmt.Fprintf(a.out, "  %-30s %-20s applied %s\n", title, company, app.AppliedAt.Format("2006-01-02"))
	}
	return nil
}

func (a *App) printQuotaBanner(mine []application.Application) {
	fmt.Fprintf(a.out, "You have %d of %d application slots left\n",
		eligibility.RemainingQuota(mine), eligibility.MaxActiveApplications)
}
