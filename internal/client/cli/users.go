package cli

import (
	"context"
	"fmt"
	"strings"

	"riwijobs/internal/client/api"
)

// usersView is the admin account-management screen.
func (a *App) usersView(ctx context.Context) error {
	items, err := a.client.ListUsers(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n== Users ==")
	for i, u := range items {
		marker := ""
		if string(u.ID) == a.current.UserID {
			marker = " (you)"
		}
		fmt.Fprintf(a.out, "%2d. %-25s %-30s %-8s%s\n", i+1, u.Name, u.Email, u.Role, marker)
	}
	fmt.Fprintln(a.out, "Actions: new, role <#>, delete <#> (empty to go back)")
	line, err := promptLine(a.reader, a.out, "users>")
	if err != nil || line == "" {
		return err
	}
	parts := strings.Fields(line)
	action := strings.ToLower(parts[0])

	if action == "new" {
		return a.createUser(ctx)
	}

	if len(parts) < 2 {
		fmt.Fprintln(a.out, "! missing user number")
		return nil
	}
	index := 0
	if _, err := fmt.Sscanf(parts[1], "%d", &index); err != nil || index < 1 || index > len(items) {
		fmt.Fprintln(a.out, "! pick a number from the list")
		return nil
	}
	picked := items[index-1]

	switch action {
	case "role":
		role, err := promptLine(a.reader, a.out, "New role (admin/gestor/coder)")
		if err != nil {
			return err
		}
		updated, err := a.client.UpdateUser(ctx, string(picked.ID), api.UserInput{Role: role})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s is now %s\n", updated.Email, updated.Role)
	case "delete":
		if !confirm(a.reader, a.out, "Delete "+picked.Email+"?") {
			return nil
		}
		if err := a.client.DeleteUser(ctx, string(picked.ID)); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "User deleted")
	default:
		fmt.Fprintln(a.out, "Unknown action:", action)
	}
	return nil
}

func (a *App) createUser(ctx context.Context) error {
	var input api.UserInput
	var err error
	if input.Name, err = promptLine(a.reader, a.out, "Name"); err != nil {
		return err
	}
	if input.Email, err = promptLine(a.reader, a.out, "Email"); err != nil {
		return err
	}
	if input.Password, err = promptPassword(a.reader, a.out, "Password"); err != nil {
		return err
	}
	if input.Role, err = promptLine(a.reader, a.out, "Role (admin/gestor/coder)"); err != nil {
		return err
	}
	created, err := a.client.CreateUser(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "User %s created as %s\n", created.Email, created.Role)
	return nil
}
