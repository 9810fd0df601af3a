package http

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"riwijobs/internal/domain/user"
	"riwijobs/internal/http/handlers"
	httpmw "riwijobs/internal/http/middleware"
	"riwijobs/internal/observability"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	VacancyHandler     *handlers.VacancyHandler
	ApplicationHandler *handlers.ApplicationHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Logger             *zap.Logger
	Metrics            *observability.Metrics
	APIKey             string
	RequestTimeout     time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 1 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging(r.deps.Logger), httpmw.BodyLimit(maxBodyBytes), httpmw.Recover(r.deps.Logger), httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.Metrics.Handler().ServeHTTP(w, req)
			return
		}

		if strings.HasPrefix(path, "/auth/") || strings.HasPrefix(path, "/users") || strings.HasPrefix(path, "/vacancies") || strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/analytics") {
			keyed := httpmw.APIKey(r.deps.APIKey)(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleKeyed(w, req)
			}))
			keyed.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleKeyed(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/auth/login":
		r.deps.AuthHandler.Login(w, req)
		return
	case req.Method == http.MethodPost && path == "/auth/register":
		r.deps.AuthHandler.Register(w, req)
		return
	}

	protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.handleProtected(w, req)
	}))
	protected.ServeHTTP(w, req)
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/users":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.List)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/users":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/users/stats/overview":
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.Stats)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/users/"):
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.Get)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/users/"):
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/users/"):
		httpmw.RequireRole(user.RoleAdmin)(http.HandlerFunc(r.deps.UserHandler.Delete)).ServeHTTP(w, req)
		return

	case req.Method == http.MethodGet && path == "/vacancies":
		r.deps.VacancyHandler.List(w, req)
		return
	case req.Method == http.MethodPost && path == "/vacancies":
		httpmw.RequireRole(user.RoleAdmin, user.RoleGestor)(http.HandlerFunc(r.deps.VacancyHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/vacancies/available/slots":
		r.deps.VacancyHandler.ListAvailableSlots(w, req)
		return
	case req.Method == http.MethodGet && path == "/vacancies/stats/general/overview":
		httpmw.RequireRole(user.RoleAdmin, user.RoleGestor)(http.HandlerFunc(r.deps.VacancyHandler.Stats)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/vacancies/stats/"):
		httpmw.RequireRole(user.RoleAdmin, user.RoleGestor)(http.HandlerFunc(r.deps.VacancyHandler.SlotStats)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/vacancies/") && strings.HasSuffix(path, "/toggle-active"):
		httpmw.RequireRole(user.RoleAdmin, user.RoleGestor)(http.HandlerFunc(r.deps.VacancyHandler.ToggleActive)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/vacancies/"):
		httpmw.RequireRole(user.RoleAdmin, user.RoleGestor)(http.HandlerFunc(r.deps.VacancyHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/vacancies/"):
		httpmw.RequireRole(user.RoleAdmin, user.RoleGestor)(http.HandlerFunc(r.deps.VacancyHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/vacancies/"):
		r.deps.VacancyHandler.Get(w, req)
		return

	case req.Method == http.MethodPost && path == "/applications":
		httpmw.RequireRole(user.RoleCoder)(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/stats/dashboard":
		httpmw.RequireRole(user.RoleAdmin, user.RoleGestor)(http.HandlerFunc(r.deps.ApplicationHandler.DashboardStats)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications/stats/popular/vacancies":
		httpmw.RequireRole(user.RoleAdmin, user.RoleGestor)(http.HandlerFunc(r.deps.ApplicationHandler.PopularVacancies)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/stats/user/"):
		r.deps.ApplicationHandler.UserStats(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/vacancy/") && strings.HasSuffix(path, "/stats"):
		httpmw.RequireRole(user.RoleAdmin, user.RoleGestor)(http.HandlerFunc(r.deps.ApplicationHandler.VacancyStats)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Get(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Delete(w, req)
		return

	case req.Method == http.MethodGet && path == "/analytics/recent":
		httpmw.RequireRole(user.RoleAdmin, user.RoleGestor)(http.HandlerFunc(r.deps.AnalyticsHandler.Recent)).ServeHTTP(w, req)
		return
	}

	http.NotFound(w, req)
}
