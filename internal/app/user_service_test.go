package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/user"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	items map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, common.NewError(common.CodeConflict, "email already registered", nil)
		}
	}
	u.ID = common.NewUUID()
	u.CreatedAt = time.Now().UTC()
	r.items[u.ID] = &u
	return &u, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	r.items[u.ID] = &u
	return &u, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copied := *item
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if strings.EqualFold(item.Email, email) {
			copied := *item
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []user.User
	for _, item := range r.items {
		items = append(items, *item)
	}
	return items, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context) (map[user.Role]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[user.Role]int)
	for _, item := range r.items {
		counts[item.Role]++
	}
	return counts, nil
}

func (r *fakeUserRepo) ListRecent(ctx context.Context, limit int) ([]user.User, error) {
	return r.List(ctx)
}

func TestUserUpdateRejectsSelfRoleChange(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo, &fakeAnalyticsRepo{})

	admin, err := service.Create(context.Background(), common.NewUUID(), "Admin", "admin@riwi.io", "secret1", user.RoleAdmin)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	role := "coder"
	_, err = service.Update(context.Background(), admin.ID, admin.ID, UserUpdate{Role: &role})
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// Another admin may change it.
	otherAdmin := common.NewUUID()
	updated, err := service.Update(context.Background(), otherAdmin, admin.ID, UserUpdate{Role: &role})
	if err != nil {
		t.Fatalf("update by other admin: %v", err)
	}
	if updated.Role != user.RoleCoder {
		t.Fatalf("expected coder role, got %s", updated.Role)
	}
}

func TestUserCreateNormalizesRole(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo, &fakeAnalyticsRepo{})

	// Legacy clients send upper-case role values.
	created, err := service.Create(context.Background(), common.NewUUID(), "Ana", "ana@riwi.io", "secret1", user.Role("GESTOR"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Role != user.RoleGestor {
		t.Fatalf("expected gestor, got %s", created.Role)
	}
}

func TestUserDeleteRejectsSelf(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo, &fakeAnalyticsRepo{})

	admin, err := service.Create(context.Background(), common.NewUUID(), "Admin", "admin@riwi.io", "secret1", user.RoleAdmin)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := service.Delete(context.Background(), admin.ID, admin.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUserStats(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo, &fakeAnalyticsRepo{})
	actor := common.NewUUID()

	for i, role := range []user.Role{user.RoleAdmin, user.RoleCoder, user.RoleCoder} {
		email := string(rune('a'+i)) + "@riwi.io"
		if _, err := service.Create(context.Background(), actor, "User", email, "secret1", role); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	stats, err := service.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 3 {
		t.Fatalf("expected 3 users, got %d", stats.TotalUsers)
	}
	if stats.UsersByRole[user.RoleCoder] != 2 {
		t.Fatalf("expected 2 coders, got %d", stats.UsersByRole[user.RoleCoder])
	}
}
