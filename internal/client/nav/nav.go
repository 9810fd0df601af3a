package nav

import (
	"riwijobs/internal/common"
	"riwijobs/internal/domain/user"
)

// Route names a console screen.
type Route string

const (
	RouteDashboard    Route = "dashboard"
	RouteExplore      Route = "explore"
	RouteApplications Route = "applications"
	RouteVacancies    Route = "vacancies"
	RouteUsers        Route = "users"
	RouteMetrics      Route = "metrics"
	RouteProfile      Route = "profile"
)

// allowed is the single source of truth for which roles may open which
// screen. Screens absent from the map are open to every signed-in role.
var allowed = map[Route][]user.Role{
	RouteExplore:      {user.RoleCoder},
	RouteApplications: {user.RoleAdmin, user.RoleCoder},
	RouteVacancies:    {user.RoleAdmin, user.RoleGestor},
	RouteUsers:        {user.RoleAdmin},
	RouteMetrics:      {user.RoleAdmin, user.RoleGestor},
}

// Resolve reports whether role may open route. The error is user-facing.
func Resolve(route Route, role user.Role) error {
	roles, restricted := allowed[route]
	if !restricted {
		return nil
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return common.NewError(common.CodeForbidden, "this section is not available for your role", nil)
}

// RoutesFor lists the screens role may open, in menu order.
func RoutesFor(role user.Role) []Route {
	order := []Route{RouteDashboard, RouteExplore, RouteApplications, RouteVacancies, RouteUsers, RouteMetrics, RouteProfile}
	var routes []Route
	for _, route := range order {
		if Resolve(route, role) == nil {
			routes = append(routes, route)
		}
	}
	return routes
}
