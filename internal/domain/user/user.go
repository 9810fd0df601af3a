package user

import (
	"strings"
	"time"

	"riwijobs/internal/common"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleGestor Role = "gestor"
	RoleCoder  Role = "coder"
)

// ParseRole normalizes a role value. Legacy clients send upper-case values.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleGestor:
		return RoleGestor, true
	case RoleCoder:
		return RoleCoder, true
	default:
		return "", false
	}
}

type User struct {
	ID           common.UUID `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         Role        `json:"role"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
}

type Stats struct {
	TotalUsers  int          `json:"totalUsers"`
	UsersByRole map[Role]int `json:"usersByRole"`
	RecentUsers []User       `json:"recentUsers"`
}
