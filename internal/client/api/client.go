package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"riwijobs/internal/client/session"
	"riwijobs/internal/domain/analytics"
	"riwijobs/internal/domain/application"
	"riwijobs/internal/domain/user"
	"riwijobs/internal/domain/vacancy"
)

// Sentinel errors the console layer branches on. ErrSessionExpired also means
// the stored session has already been cleared.
var (
	ErrSessionExpired   = errors.New("session expired, sign in again")
	ErrPermissionDenied = errors.New("you do not have permission for this action")
)

// APIError carries the error payload of a non-2xx response that is neither a
// 401 nor a 403.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

// Client talks to the job-board API. Every request carries the gateway key in
// x-api-key; authenticated requests add the bearer token from the session
// store. A 401 clears the stored session so the next screen is the login.
type Client struct {
	baseURL    string
	apiKey     string
	sessions   *session.Store
	httpClient *http.Client
}

func New(baseURL, apiKey string, sessions *session.Store, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		sessions:   sessions,
		httpClient: httpClient,
	}
}

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, payload, target any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	if sess, err := c.sessions.Load(); err == nil && sess != nil && sess.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		_ = c.sessions.Clear()
		return ErrSessionExpired
	case resp.StatusCode == http.StatusForbidden:
		return ErrPermissionDenied
	case resp.StatusCode >= 400:
		return mapAPIError(resp.StatusCode, data)
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapAPIError(status int, data []byte) error {
	var parsed errorResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		message := strings.TrimSpace(string(data))
		if message == "" {
			message = http.StatusText(status)
		}
		return &APIError{Status: status, Message: message}
	}
	return &APIError{Status: status, Code: parsed.Error, Message: parsed.Message, Fields: parsed.Fields}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        user.User `json:"user"`
}

// Login authenticates and persists the resulting session.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var parsed loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &parsed); err != nil {
		return nil, err
	}
	sess := &session.Session{
		AccessToken: parsed.AccessToken,
		ExpiresAt:   parsed.ExpiresAt,
		UserID:      string(parsed.User.ID),
		Name:        parsed.User.Name,
		Email:       parsed.User.Email,
		Role:        string(parsed.User.Role),
	}
	if err := c.sessions.Save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register signs up a coder account. Other roles are created by an admin from
// the user management screen.
func (c *Client) Register(ctx context.Context, name, email, password string) (*user.User, error) {
	var created user.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Logout drops the local session. The API holds no server-side session state.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var items []user.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*user.User, error) {
	var item user.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

type UserInput struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

func (c *Client) CreateUser(ctx context.Context, input UserInput) (*user.User, error) {
	var created user.User
	if err := c.do(ctx, http.MethodPost, "/users", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, input UserInput) (*user.User, error) {
	var updated user.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) UserStats(ctx context.Context) (*user.Stats, error) {
	var stats user.Stats
	if err := c.do(ctx, http.MethodGet, "/users/stats/overview", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// VacancyFilters mirrors the query parameters of GET /vacancies.
type VacancyFilters struct {
	Company           string
	Location          string
	Modality          string
	IsActive          *bool
	HasAvailableSlots bool
	Technologies      []string
	Limit             int
	Page              int
}

func (f VacancyFilters) encode() string {
	values := url.Values{}
	if f.Company != "" {
		values.Set("company", f.Company)
	}
	if f.Location != "" {
		values.Set("location", f.Location)
	}
	if f.Modality != "" {
		values.Set("modality", f.Modality)
	}
	if f.IsActive != nil {
		values.Set("isActive", strconv.FormatBool(*f.IsActive))
	}
	if f.HasAvailableSlots {
		values.Set("hasAvailableSlots", "true")
	}
	if len(f.Technologies) > 0 {
		values.Set("technologies", strings.Join(f.Technologies, ","))
	}
	if f.Limit > 0 {
		values.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Page > 0 {
		values.Set("page", strconv.Itoa(f.Page))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func (c *Client) ListVacancies(ctx context.Context, filters VacancyFilters) ([]vacancy.Vacancy, error) {
	var items []vacancy.Vacancy
	if err := c.do(ctx, http.MethodGet, "/vacancies"+filters.encode(), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetVacancy(ctx context.Context, id string) (*vacancy.Vacancy, error) {
	var item vacancy.Vacancy
	if err := c.do(ctx, http.MethodGet, "/vacancies/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

type VacancyInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Technologies  string `json:"technologies"`
	Seniority     string `json:"seniority"`
	SoftSkills    string `json:"softSkills,omitempty"`
	Location      string `json:"location"`
	Modality      string `json:"modality"`
	SalaryRange   string `json:"salaryRange"`
	Company       string `json:"company"`
	MaxApplicants int    `json:"maxApplicants"`
}

func (c *Client) CreateVacancy(ctx context.Context, input VacancyInput) (*vacancy.Vacancy, error) {
	var created vacancy.Vacancy
	if err := c.do(ctx, http.MethodPost, "/vacancies", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateVacancy(ctx context.Context, id string, input VacancyInput) (*vacancy.Vacancy, error) {
	var updated vacancy.Vacancy
	if err := c.do(ctx, http.MethodPatch, "/vacancies/"+url.PathEscape(id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) ToggleVacancy(ctx context.Context, id string) (*vacancy.Vacancy, error) {
	var updated vacancy.Vacancy
	if err := c.do(ctx, http.MethodPatch, "/vacancies/"+url.PathEscape(id)+"/toggle-active", nil, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteVacancy(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/vacancies/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListVacanciesWithSlots(ctx context.Context) ([]vacancy.Vacancy, error) {
	var items []vacancy.Vacancy
	if err := c.do(ctx, http.MethodGet, "/vacancies/available/slots", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) VacancySlotStats(ctx context.Context, id string) (*vacancy.SlotStats, error) {
	var stats vacancy.SlotStats
	if err := c.do(ctx, http.MethodGet, "/vacancies/stats/"+url.PathEscape(id), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) VacancyStats(ctx context.Context) (*vacancy.Stats, error) {
	var stats vacancy.Stats
	if err := c.do(ctx, http.MethodGet, "/vacancies/stats/general/overview", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

type applyRequest struct {
	VacancyID string `json:"vacancyId"`
}

func (c *Client) Apply(ctx context.Context, vacancyID string) (*application.Application, error) {
	var created application.Application
	if err := c.do(ctx, http.MethodPost, "/applications", applyRequest{VacancyID: vacancyID}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListApplications(ctx context.Context) ([]application.Application, error) {
	var items []application.Application
	if err := c.do(ctx, http.MethodGet, "/applications", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (*application.Application, error) {
	var item application.Application
	if err := c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Withdraw removes an application. The API lets coders withdraw their own and
// admins remove any.
func (c *Client) Withdraw(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ApplicationVacancyStats(ctx context.Context, vacancyID string) (*vacancy.SlotStats, error) {
	var stats vacancy.SlotStats
	if err := c.do(ctx, http.MethodGet, "/applications/vacancy/"+url.PathEscape(vacancyID)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) UserApplicationStats(ctx context.Context, userID string) (*application.UserStats, error) {
	var stats application.UserStats
	if err := c.do(ctx, http.MethodGet, "/applications/stats/user/"+url.PathEscape(userID), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) PopularVacancies(ctx context.Context) ([]application.PopularVacancy, error) {
	var items []application.PopularVacancy
	if err := c.do(ctx, http.MethodGet, "/applications/stats/popular/vacancies", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) RecentActivity(ctx context.Context, limit int) ([]analytics.Event, error) {
	path := "/analytics/recent"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var items []analytics.Event
	if err := c.do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) DashboardStats(ctx context.Context) (*application.Stats, error) {
	var stats application.Stats
	if err := c.do(ctx, http.MethodGet, "/applications/stats/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
