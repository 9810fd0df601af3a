package app

import (
	"context"
	"strings"
	"time"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/analytics"
	"riwijobs/internal/domain/user"
	"riwijobs/internal/security"
)

type AuthService struct {
	users     user.Repository
	analytics analytics.Repository
	jwt       *security.JWTProvider
	tokenTTL  time.Duration
}

func NewAuthService(users user.Repository, analyticsRepo analytics.Repository, jwt *security.JWTProvider, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, analytics: analyticsRepo, jwt: jwt, tokenTTL: tokenTTL}
}

type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        user.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, common.NewValidationError("invalid credentials", map[string]string{"email": "email and password are required"})
	}
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, err
	}
	if !security.CheckPassword(account.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	token, expiresAt, err := s.jwt.Generate(account.ID, string(account.Role), s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "auth.login", UserID: &account.ID})
	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt, User: *account}, nil
}

// Register creates a coder account. Privileged roles are assigned only by an
// admin through the user management endpoints, so an explicit role other than
// coder is rejected rather than honored.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role user.Role) (*user.User, error) {
	fields := map[string]string{}
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		fields["name"] = "name is required"
	}
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if trimmed := strings.TrimSpace(string(role)); trimmed != "" {
		if parsed, ok := user.ParseRole(trimmed); !ok || parsed != user.RoleCoder {
			fields["role"] = "registration creates coder accounts; other roles are assigned by an admin"
		}
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{Name: name, Email: email, Role: user.RoleCoder, PasswordHash: hash})
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.registered", UserID: &created.ID, Payload: map[string]string{"role": string(created.Role)}})
	return created, nil
}
