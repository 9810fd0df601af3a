package app

import (
	"context"
	"testing"
	"time"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/user"
)

func newAuthService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(repo, &fakeAnalyticsRepo{}, nil, time.Hour)
}

func TestRegisterCreatesCoder(t *testing.T) {
	repo := newFakeUserRepo()
	service := newAuthService(repo)

	created, err := service.Register(context.Background(), "Ana", "ana@riwi.io", "secret1", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Role != user.RoleCoder {
		t.Fatalf("expected coder, got %s", created.Role)
	}

	// An explicit coder role, in any casing, is accepted.
	created, err = service.Register(context.Background(), "Luis", "luis@riwi.io", "secret1", user.Role("CODER"))
	if err != nil {
		t.Fatalf("register with explicit role: %v", err)
	}
	if created.Role != user.RoleCoder {
		t.Fatalf("expected coder, got %s", created.Role)
	}
}

func TestRegisterRejectsPrivilegedRoles(t *testing.T) {
	repo := newFakeUserRepo()
	service := newAuthService(repo)

	for _, role := range []user.Role{user.RoleAdmin, user.RoleGestor, user.Role("superuser")} {
		_, err := service.Register(context.Background(), "Mallory", "mallory@riwi.io", "secret1", role)
		if !common.Is(err, common.CodeValidation) {
			t.Fatalf("role %q: expected validation error, got %v", role, err)
		}
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected no accounts created, got %d", len(repo.items))
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	service := newAuthService(repo)

	if _, err := service.Register(context.Background(), "Ana", "ana@riwi.io", "secret1", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := service.Register(context.Background(), "Ana Again", "ANA@riwi.io", "secret1", "")
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
