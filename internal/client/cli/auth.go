package cli

import (
	"context"
	"fmt"
)

func (a *App) loginView(ctx context.Context) error {
	email, err := promptLine(a.reader, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.reader, a.out, "Password")
	if err != nil {
		return err
	}
	sess, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.current = sess
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", sess.Name, sess.Role)
	return nil
}

func (a *App) registerView(ctx context.Context) error {
	name, err := promptLine(a.reader, a.out, "Name")
	if err != nil {
		return err
	}
	email, err := promptLine(a.reader, a.out, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(a.reader, a.out, "Password")
	if err != nil {
		return err
	}
	created, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account created for %s, you can sign in now\n", created.Email)
	return nil
}

func (a *App) logoutView(context.Context) error {
	if err := a.client.Logout(); err != nil {
		return err
	}
	a.current = nil
	fmt.Fprintln(a.out, "Signed out")
	return nil
}
