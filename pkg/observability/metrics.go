package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/var1d/folio/pkg/domain"
)

const namespace = "folio"

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	gatherer prometheus.Gatherer

	ThemeChanges  *prometheus.CounterVec
	Transitions   *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	Removals      *prometheus.CounterVec
	Deliveries    *prometheus.CounterVec
	DeliveryTime  prometheus.Histogram
	Active        prometheus.Gauge
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ThemeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theme_changes_total",
			Help:      "Display mode writes, by resulting mode.",
		}, []string{"mode"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submission_transitions_total",
			Help:      "Contact submission status changes.",
		}, []string{"from", "to"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications queued, by severity.",
		}, []string{"severity"}),
		Removals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_removals_total",
			Help:      "Notifications removed, by cause.",
		}, []string{"cause"}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Resolved Sender calls, by outcome.",
		}, []string{"outcome"}),
		DeliveryTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "delivery_duration_seconds",
			Help:      "Duration of Sender calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 1.5, 2, 5, 10},
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notifications_active",
			Help:      "Notifications currently listed across all queues.",
		}),
	}

	reg.MustRegister(
		m.ThemeChanges,
		m.Transitions,
		m.Notifications,
		m.Removals,
		m.Deliveries,
		m.DeliveryTime,
		m.Active,
	)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnThemeChange: func(_ context.Context, e *domain.ThemeEvent) {
			m.ThemeChanges.WithLabelValues(e.To.String()).Inc()
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(string(e.From), string(e.To)).Inc()
		},
		OnNotificationAdd: func(_ context.Context, e *domain.NotificationEvent) {
			m.Notifications.WithLabelValues(string(e.Notification.Severity)).Inc()
			m.Active.Inc()
		},
		OnNotificationRemove: func(_ context.Context, e *domain.NotificationEvent) {
			m.Removals.WithLabelValues(string(e.Cause)).Inc()
			m.Active.Dec()
		},
		OnDelivery: func(_ context.Context, e *domain.DeliveryEvent) {
			outcome := "success"
			if e.Err != nil {
				outcome = "failure"
			}
			m.Deliveries.WithLabelValues(outcome).Inc()
			m.DeliveryTime.Observe(e.Duration.Seconds())
		},
	}
}

// Handler serves the registry the collectors were registered on, or the
// default gatherer when that registry cannot be gathered.
func (m *Metrics) Handler() http.Handler {
	if m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
