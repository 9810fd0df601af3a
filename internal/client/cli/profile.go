package cli

import (
	"context"
	"fmt"

	"riwijobs/internal/domain/user"
)

func (a *App) profileView(ctx context.Context) error {
	fmt.Fprintln(a.out, "\n== Profile ==")
	fmt.Fprintf(a.out, "Name:  %s\n", a.current.Name)
	fmt.Fprintf(a.out, "Email: %s\n", a.current.Email)
	fmt.Fprintf(a.out, "Role:  %s\n", a.current.Role)
	fmt.Fprintf(a.out, "Session expires: %s\n", a.current.ExpiresAt.Format("2006-01-02 15:04"))

	if a.role() == user.RoleCoder {
		stats, err := a.client.UserApplicationStats(ctx, a.current.UserID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Applications: %d total, %d active\n", stats.TotalApplications, stats.ActiveApplications)
	}
	return nil
}
