package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventThemeChange        EventType = "theme_change"
	EventTransition         EventType = "transition"
	EventNotificationAdd    EventType = "notification_add"
	EventNotificationRemove EventType = "notification_remove"
	EventDelivery           EventType = "delivery"
)

// RemovalCause tells why a notification left the queue.
type RemovalCause string

const (
	RemovedManually RemovalCause = "manual"
	RemovedExpired  RemovalCause = "expired"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// ThemeEvent represents a display mode change.
type ThemeEvent struct {
	EventBase
	From ThemeMode `json:"from"`
	To   ThemeMode `json:"to"`
}

// TransitionEvent represents a submission status change.
type TransitionEvent struct {
	EventBase
	From SubmissionStatus `json:"from"`
	To   SubmissionStatus `json:"to"`
}

// NotificationEvent represents a queue insert or removal.
type NotificationEvent struct {
	EventBase
	Notification Notification `json:"notification"`
	Cause        RemovalCause `json:"cause,omitempty"` // Only set on removal
}

// DeliveryEvent represents one resolved Sender call.
type DeliveryEvent struct {
	EventBase
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for observability.
// Every hook is optional.
type LifecycleHooks struct {
	OnThemeChange        func(context.Context, *ThemeEvent)
	OnTransition         func(context.Context, *TransitionEvent)
	OnNotificationAdd    func(context.Context, *NotificationEvent)
	OnNotificationRemove func(context.Context, *NotificationEvent)
	OnDelivery           func(context.Context, *DeliveryEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnThemeChange:        chain(h.OnThemeChange, other.OnThemeChange),
		OnTransition:         chain(h.OnTransition, other.OnTransition),
		OnNotificationAdd:    chain(h.OnNotificationAdd, other.OnNotificationAdd),
		OnNotificationRemove: chain(h.OnNotificationRemove, other.OnNotificationRemove),
		OnDelivery:           chain(h.OnDelivery, other.OnDelivery),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
