package worker

import (
	"context"

	"github.com/spec-kit/task-tracker/internal/events"
	"github.com/spec-kit/task-tracker/internal/service"
)

// StartCacheInvalidator subscribes the dashboard cache to every mutation
// event so the next summary read recomputes from a fresh snapshot.
func StartCacheInvalidator(dispatcher events.Dispatcher, dashboard *service.DashboardService) {
	if dispatcher == nil || dashboard == nil {
		return
	}
	handler := func(ctx context.Context, _ events.Event) error {
		dashboard.InvalidateCache(ctx)
		return nil
	}
	for _, eventType := range events.MutationEvents {
		dispatcher.Subscribe(eventType, handler)
	}
}
