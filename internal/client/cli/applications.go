package cli

import (
	"context"
	"fmt"
)

// applicationsView lists what the API scopes to the caller: coders see their
// own applications, admins see everything.
func (a *App) applicationsView(ctx context.Context) error {
	items, err := a.client.ListApplications(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n== Applications ==")
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No applications")
		return nil
	}
	for i, app := range items {
		title, company := "(vacancy removed)", ""
		if app.Vacancy != nil {
			title, company = app.Vacancy.Title, app.Vacancy.Company
		}
		applicant := ""
		if app.User != nil {
			applicant = app.User.Email
		}
		fmt.Fprintf(a.out, "%2d. %-30s %-20s %-25s applied %s\n",
			i+1, title, company, applicant, app.AppliedAt.Format("2006-01-02 15:04"))
	}

	choice, err := promptLine(a.reader, a.out, "Withdraw # (empty to go back)")
	if err != nil || choice == "" {
		return err
	}
	index := 0
	if _, err := fmt.Sscanf(choice, "%d", &index); err != nil || index < 1 || index > len(items) {
		fmt.Fprintln(a.out, "! pick a number from the list")
		return nil
	}
	picked := items[index-1]
	if !confirm(a.reader, a.out, "Withdraw this application?") {
		return nil
	}
	if err := a.client.Withdraw(ctx, string(picked.ID)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Application withdrawn")
	return nil
}
