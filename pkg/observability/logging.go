package observability

import (
	"context"
	"log/slog"

	"github.com/var1d/folio/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that write one structured line per
// event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnThemeChange: func(ctx context.Context, e *domain.ThemeEvent) {
			logger.InfoContext(ctx, "theme_change", "from", e.From, "to", e.To)
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition",
				"session_id", e.SessionID,
				"from", e.From,
				"to", e.To,
			)
		},
		OnNotificationAdd: func(ctx context.Context, e *domain.NotificationEvent) {
			logger.InfoContext(ctx, "notification_add",
				"session_id", e.SessionID,
				"id", e.Notification.ID,
				"severity", e.Notification.Severity,
			)
		},
		OnNotificationRemove: func(ctx context.Context, e *domain.NotificationEvent) {
			logger.InfoContext(ctx, "notification_remove",
				"session_id", e.SessionID,
				"id", e.Notification.ID,
				"cause", e.Cause,
			)
		},
		OnDelivery: func(ctx context.Context, e *domain.DeliveryEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "delivery",
					"session_id", e.SessionID,
					"duration", e.Duration,
					"err", e.Err,
				)
				return
			}
			logger.InfoContext(ctx, "delivery", "session_id", e.SessionID, "duration", e.Duration)
		},
	}
}
