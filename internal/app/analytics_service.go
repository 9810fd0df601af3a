package app

import (
	"context"

	"riwijobs/internal/domain/analytics"
)

type AnalyticsService struct {
	events analytics.Repository
}

func NewAnalyticsService(events analytics.Repository) *AnalyticsService {
	return &AnalyticsService{events: events}
}

// RecentActivity returns the newest audit events for the activity feed.
func (s *AnalyticsService) RecentActivity(ctx context.Context, limit int) ([]analytics.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.events.ListRecent(ctx, limit)
}
