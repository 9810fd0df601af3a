package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"riwijobs/internal/common"
	"riwijobs/internal/domain/analytics"
)

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Create(ctx context.Context, event analytics.Event) error {
	event.ID = common.NewUUID()
	event.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to encode event payload", err)
	}
	var userID any
	if event.UserID != nil {
		userID = *event.UserID
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO analytics_events (id, name, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		event.ID, event.Name, userID, payload, event.CreatedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to create event", err)
	}
	return nil
}

func (r *AnalyticsRepository) ListRecent(ctx context.Context, limit int) ([]analytics.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, user_id, payload, created_at FROM analytics_events ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list events", err)
	}
	defer rows.Close()
	var items []analytics.Event
	for rows.Next() {
		var event analytics.Event
		var userID sql.NullString
		var payload []byte
		if err := rows.Scan(&event.ID, &event.Name, &userID, &payload, &event.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan event", err)
		}
		if userID.Valid {
			id := common.UUID(userID.String)
			event.UserID = &id
		}
		if len(payload) > 0 {
			_ = json.Unmarshal(payload, &event.Payload)
		}
		items = append(items, event)
	}
	return items, nil
}
