package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"riwijobs/internal/client/api"
	"riwijobs/internal/client/nav"
	"riwijobs/internal/client/session"
	"riwijobs/internal/domain/user"
)

// App is the interactive console. It keeps the current session in memory and
// mirrors changes to the session store, so a restart resumes where the user
// left off.
type App struct {
	client   *api.Client
	sessions *session.Store
	reader   *bufio.Reader
	out      io.Writer
	current  *session.Session
}

func NewApp(client *api.Client, sessions *session.Store, in io.Reader, out io.Writer) *App {
	return &App{
		client:   client,
		sessions: sessions,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

func (a *App) isLoggedIn() bool {
	return a.current != nil && !a.current.Expired()
}

func (a *App) role() user.Role {
	if a.current == nil {
		return ""
	}
	role, _ := user.ParseRole(a.current.Role)
	return role
}

// Run is the console loop. Stored sessions are picked up on start; an expired
// one is dropped so the first prompt is the login.
func (a *App) Run(ctx context.Context) error {
	if stored, err := a.sessions.Load(); err == nil && stored != nil {
		if stored.Expired() {
			_ = a.sessions.Clear()
		} else {
			a.current = stored
			fmt.Fprintf(a.out, "Welcome back, %s (%s)\n", stored.Name, stored.Role)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !a.isLoggedIn() {
			if done, err := a.anonymousPrompt(ctx); done {
				return err
			}
			continue
		}
		if done, err := a.menuPrompt(ctx); done {
			return err
		}
	}
}

func (a *App) anonymousPrompt(ctx context.Context) (bool, error) {
	fmt.Fprintln(a.out, "\nCommands: login, register, exit")
	cmd, err := promptLine(a.reader, a.out, "riwijobs>")
	if err != nil {
		return true, ignoreEOF(err)
	}
	switch strings.ToLower(cmd) {
	case "login":
		a.runView(ctx, a.loginView)
	case "register":
		a.runView(ctx, a.registerView)
	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return true, nil
	case "":
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}
	return false, nil
}

func (a *App) menuPrompt(ctx context.Context) (bool, error) {
	routes := nav.RoutesFor(a.role())
	names := make([]string, 0, len(routes)+2)
	for _, route := range routes {
		names = append(names, string(route))
	}
	names = append(names, "logout", "exit")
	fmt.Fprintln(a.out, "\nCommands:", strings.Join(names, ", "))
	cmd, err := promptLine(a.reader, a.out, fmt.Sprintf("riwijobs(%s)>", a.current.Role))
	if err != nil {
		return true, ignoreEOF(err)
	}
	switch strings.ToLower(cmd) {
	case "logout":
		a.runView(ctx, a.logoutView)
	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return true, nil
	case "":
	default:
		a.openRoute(ctx, nav.Route(strings.ToLower(cmd)))
	}
	return false, nil
}

// openRoute guards navigation by role before rendering, so a coder typing
// "users" gets a permission notice instead of an API round trip.
func (a *App) openRoute(ctx context.Context, route nav.Route) {
	views := map[nav.Route]func(context.Context) error{
		nav.RouteDashboard:    a.dashboardView,
		nav.RouteExplore:      a.exploreView,
		nav.RouteApplications: a.applicationsView,
		nav.RouteVacancies:    a.vacanciesView,
		nav.RouteUsers:        a.usersView,
		nav.RouteMetrics:      a.metricsView,
		nav.RouteProfile:      a.profileView,
	}
	view, ok := views[route]
	if !ok {
		fmt.Fprintln(a.out, "Unknown command:", string(route))
		return
	}
	if err := nav.Resolve(route, a.role()); err != nil {
		fmt.Fprintln(a.out, "!", err.Error())
		return
	}
	a.runView(ctx, view)
}

// runView renders a view and translates transport-level failures into
// console notices. A session-expired error drops back to the login prompt.
func (a *App) runView(ctx context.Context, view func(context.Context) error) {
	err := view(ctx)
	switch {
	case err == nil:
	case errors.Is(err, api.ErrSessionExpired):
		a.current = nil
		fmt.Fprintln(a.out, "! your session has expired, please sign in again")
	case errors.Is(err, api.ErrPermissionDenied):
		fmt.Fprintln(a.out, "!", api.ErrPermissionDenied.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(a.out, "! request cancelled")
	default:
		fmt.Fprintln(a.out, "!", err.Error())
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
