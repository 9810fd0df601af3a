package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/user"
	"riwijobs/internal/security"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKey(t *testing.T) {
	var called bool
	handler := APIKey("secret-key")(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/vacancies", nil)
	req.Header.Set("x-api-key", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key status = %d, want 401", rec.Code)
	}
	if called {
		t.Fatal("handler must not run with a wrong key")
	}

	req = httptest.NewRequest(http.MethodGet, "/vacancies", nil)
	req.Header.Set("x-api-key", "secret-key")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("valid key status = %d, called = %t", rec.Code, called)
	}
}

func TestAuthenticatePutsIdentityInContext(t *testing.T) {
	provider := security.NewJWTProvider("test-secret")
	userID := common.NewUUID()
	token, _, err := provider.Generate(userID, "coder", time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotID common.UUID
	var gotRole user.Role
	handler := NewAuthMiddleware(provider).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		gotRole, _ = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != userID {
		t.Errorf("user id = %s, want %s", gotID, userID)
	}
	if gotRole != user.RoleCoder {
		t.Errorf("role = %s, want coder", gotRole)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	provider := security.NewJWTProvider("test-secret")
	handler := NewAuthMiddleware(provider).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not-a-jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/applications", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	provider := security.NewJWTProvider("test-secret")
	token, _, err := provider.Generate(common.NewUUID(), "coder", time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	serve := func(roles ...user.Role) int {
		var called bool
		handler := NewAuthMiddleware(provider).Authenticate(RequireRole(roles...)(okHandler(&called)))
		req := httptest.NewRequest(http.MethodGet, "/vacancies", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := serve(user.RoleCoder); code != http.StatusOK {
		t.Errorf("allowed role status = %d, want 200", code)
	}
	if code := serve(user.RoleAdmin, user.RoleGestor); code != http.StatusForbidden {
		t.Errorf("forbidden role status = %d, want 403", code)
	}
}
