package app

import (
	"context"
	"strings"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/analytics"
	"riwijobs/internal/domain/user"
	"riwijobs/internal/security"
)

type UserService struct {
	users     user.Repository
	analytics analytics.Repository
}

func NewUserService(users user.Repository, analyticsRepo analytics.Repository) *UserService {
	return &UserService{users: users, analytics: analyticsRepo}
}

type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, actorID common.UUID, name, email, password string, role user.Role) (*user.User, error) {
	normalized, ok := user.ParseRole(string(role))
	if !ok {
		return nil, common.NewValidationError("invalid role", map[string]string{"role": "role must be admin, gestor, or coder"})
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, common.NewValidationError("invalid user", map[string]string{"name": "name and email are required"})
	}
	if len(password) < 6 {
		return nil, common.NewValidationError("invalid user", map[string]string{"password": "password must be at least 6 characters"})
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Role:         normalized,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.created", UserID: &actorID, Payload: map[string]string{"created_id": created.ID.String(), "role": string(created.Role)}})
	return created, nil
}

// Update applies a partial update. Role changes are admin territory and a
// user can never change their own role.
func (s *UserService) Update(ctx context.Context, actorID, targetID common.UUID, update UserUpdate) (*user.User, error) {
	current, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, common.NewValidationError("invalid user", map[string]string{"name": "name cannot be empty"})
		}
		current.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if !strings.Contains(email, "@") {
			return nil, common.NewValidationError("invalid user", map[string]string{"email": "a valid email is required"})
		}
		current.Email = email
	}
	if update.Password != nil {
		if len(*update.Password) < 6 {
			return nil, common.NewValidationError("invalid user", map[string]string{"password": "password must be at least 6 characters"})
		}
		hash, err := security.HashPassword(*update.Password)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
		}
		current.PasswordHash = hash
	}
	if update.Role != nil {
		normalized, ok := user.ParseRole(*update.Role)
		if !ok {
			return nil, common.NewValidationError("invalid role", map[string]string{"role": "role must be admin, gestor, or coder"})
		}
		if actorID == targetID && normalized != current.Role {
			return nil, common.NewError(common.CodeForbidden, "you cannot change your own role", nil)
		}
		current.Role = normalized
	}
	updated, err := s.users.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.updated", UserID: &actorID, Payload: map[string]string{"target_id": targetID.String()}})
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actorID, targetID common.UUID) error {
	if actorID == targetID {
		return common.NewError(common.CodeForbidden, "you cannot delete your own account", nil)
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.deleted", UserID: &actorID, Payload: map[string]string{"target_id": targetID.String()}})
	return nil
}

func (s *UserService) Stats(ctx context.Context) (*user.Stats, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.users.ListRecent(ctx, 5)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, count := range byRole {
		total += count
	}
	return &user.Stats{TotalUsers: total, UsersByRole: byRole, RecentUsers: recent}, nil
}
