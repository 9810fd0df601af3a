package handlers

import (
	"net/http"
	"time"

	"riwijobs/internal/app"
	"riwijobs/internal/common"
	"riwijobs/internal/domain/user"
	"riwijobs/internal/http/middleware"
	"riwijobs/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type applyRequest struct {
	VacancyID string `json:"vacancyId"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actorID, _, err := actorFromContext(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		key := "apply:" + string(actorID)
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "too many application attempts, slow down", nil))
			return
		}
	}
	var req applyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	vacancyID, err := common.ParseUUID(req.VacancyID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid application", map[string]string{"vacancyId": "invalid uuid"}))
		return
	}
	created, err := h.applications.Apply(r.Context(), vacancyID, actorID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, role, err := actorFromContext(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applications.List(r.Context(), actorID, role)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, role, err := actorFromContext(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applications.Get(r.Context(), actorID, role, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, role, err := actorFromContext(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.Delete(r.Context(), actorID, role, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// VacancyStats serves GET /applications/vacancy/{id}/stats.
func (h *ApplicationHandler) VacancyStats(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	stats, err := h.applications.VacancyStats(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

// UserStats serves GET /applications/stats/user/{id}. Admins may look up any
// user, everyone else only themselves.
func (h *ApplicationHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	actorID, role, err := actorFromContext(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	id, err := idFromPath(r, 3)
	if err != nil {
		response.Error(w, err)
		return
	}
	if role != user.RoleAdmin && actorID != id {
		response.Error(w, common.NewError(common.CodeForbidden, "you can only view your own application stats", nil))
		return
	}
	stats, err := h.applications.UserStats(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *ApplicationHandler) PopularVacancies(w http.ResponseWriter, r *http.Request) {
	items, err := h.applications.PopularVacancies(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicationHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.applications.DashboardStats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
