package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"riwijobs/internal/app"
	"riwijobs/internal/domain/vacancy"
	"riwijobs/internal/http/middleware"
	"riwijobs/internal/http/response"
)

type VacancyHandler struct {
	vacancies *app.VacancyService
}

func NewVacancyHandler(vacancies *app.VacancyService) *VacancyHandler {
	return &VacancyHandler{vacancies: vacancies}
}

type vacancyRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Technologies  string `json:"technologies"`
	Seniority     string `json:"seniority"`
	SoftSkills    string `json:"softSkills"`
	Location      string `json:"location"`
	Modality      string `json:"modality"`
	SalaryRange   string `json:"salaryRange"`
	Company       string `json:"company"`
	MaxApplicants int    `json:"maxApplicants"`
}

func (req vacancyRequest) toInput() app.VacancyInput {
	return app.VacancyInput{
		Title:         req.Title,
		Description:   req.Description,
		Technologies:  req.Technologies,
		Seniority:     req.Seniority,
		SoftSkills:    req.SoftSkills,
		Location:      req.Location,
		Modality:      req.Modality,
		SalaryRange:   req.SalaryRange,
		Company:       req.Company,
		MaxApplicants: req.MaxApplicants,
	}
}

func (h *VacancyHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := vacancy.Filters{
		Company:  query.Get("company"),
		Location: query.Get("location"),
	}
	if value := query.Get("modality"); value != "" {
		modality, ok := vacancy.ParseModality(value)
		if !ok {
			response.Error(w, vacancyFilterError("modality", "modality must be remote, onsite, or hybrid"))
			return
		}
		filters.Modality = modality
	}
	if value := query.Get("isActive"); value != "" {
		isActive, err := strconv.ParseBool(value)
		if err != nil {
			response.Error(w, vacancyFilterError("isActive", "isActive must be a boolean"))
			return
		}
		filters.IsActive = &isActive
	}
	if value := query.Get("hasAvailableSlots"); value != "" {
		hasSlots, err := strconv.ParseBool(value)
		if err != nil {
			response.Error(w, vacancyFilterError("hasAvailableSlots", "hasAvailableSlots must be a boolean"))
			return
		}
		filters.HasAvailableSlots = hasSlots
	}
	if value := query.Get("technologies"); value != "" {
		filters.Technologies = strings.Split(value, ",")
	}
	if value := query.Get("limit"); value != "" {
		if limit, err := strconv.Atoi(value); err == nil {
			filters.Limit = limit
		}
	}
	if value := query.Get("page"); value != "" {
		if page, err := strconv.Atoi(value); err == nil && page > 1 && filters.Limit > 0 {
			filters.Offset = (page - 1) * filters.Limit
		}
	}
	items, err := h.vacancies.List(r.Context(), filters)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *VacancyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.vacancies.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *VacancyHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req vacancyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.vacancies.Create(r.Context(), actorID, req.toInput())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *VacancyHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req vacancyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.vacancies.Update(r.Context(), actorID, role, id, req.toInput())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *VacancyHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
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
	updated, err := h.vacancies.ToggleActive(r.Context(), actorID, role, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *VacancyHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.vacancies.Delete(r.Context(), actorID, role, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "vacancy deleted"})
}

func (h *VacancyHandler) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	items, err := h.vacancies.ListWithAvailableSlots(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *VacancyHandler) SlotStats(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	stats, err := h.vacancies.SlotStats(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *VacancyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.vacancies.Stats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
