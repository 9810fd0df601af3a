package analytics

import (
	"context"
	"time"

	"riwijobs/internal/common"
)

// Event is a best-effort audit record. Services never fail an operation
// because an event could not be written.
type Event struct {
	ID        common.UUID       `json:"id"`
	Name      string            `json:"name"`
	UserID    *common.UUID      `json:"userId,omitempty"`
	Payload   map[string]string `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

type Repository interface {
	Create(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
