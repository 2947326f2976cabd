package observability_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/observability"
	"github.com/var1d/folio/pkg/scheduler"
	"github.com/var1d/folio/pkg/theme"
)

func TestMetrics_ThemeChanges(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	store := theme.NewStore(theme.WithLifecycleHooks(m.Hooks()))

	store.Toggle()
	store.Toggle()
	store.Toggle()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ThemeChanges.WithLabelValues("neon")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ThemeChanges.WithLabelValues("dark")))
}

func TestMetrics_SessionLifecycle(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	clock := scheduler.NewManual()
	sess := contact.New(
		contact.WithScheduler(clock),
		contact.WithLifecycleHooks(m.Hooks()),
	)
	defer sess.Close()

	// Invalid submit.
	sess.Submit(context.Background())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Active))

	require.NoError(t, sess.SetFields(domain.FormFields{Name: "a", Email: "b", Message: "c"}))
	require.Equal(t, contact.SubmitAccepted, sess.Submit(context.Background()))
	sess.Wait()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("idle", "sending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("sending", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Deliveries.WithLabelValues("success")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.DeliveryTime))

	clock.Advance(time.Minute)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("success", "idle")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Removals.WithLabelValues("expired")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Active))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	m.Hooks().OnDelivery(context.Background(), &domain.DeliveryEvent{Err: errors.New("x")})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `folio_deliveries_total{outcome="failure"} 1`)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo, logging.FormatText)
	hooks := observability.LoggingHooks(logger)

	hooks.OnTransition(context.Background(), &domain.TransitionEvent{
		EventBase: domain.EventBase{SessionID: "s1"},
		From:      domain.StatusIdle,
		To:        domain.StatusSending,
	})
	hooks.OnDelivery(context.Background(), &domain.DeliveryEvent{Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "msg=transition")
	assert.Contains(t, out, "session_id=s1")
	assert.Contains(t, out, "to=sending")
	assert.Contains(t, out, "err=boom")
}
