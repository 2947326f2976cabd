package folio_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/var1d/folio"
	"github.com/var1d/folio/pkg/adapters/memory"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/ports"
	"github.com/var1d/folio/pkg/scheduler"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(folio.Version))
}

func TestApp_Defaults(t *testing.T) {
	app := folio.New()
	defer app.Shutdown(context.Background())

	assert.Equal(t, domain.ThemeDark, app.Theme.Get())
	assert.Zero(t, app.Sessions.Len())
	assert.NotNil(t, app.Logger())
}

func TestApp_InitialTheme(t *testing.T) {
	app := folio.New(folio.WithInitialTheme(domain.ThemeNeon))
	defer app.Shutdown(context.Background())

	assert.Equal(t, domain.ThemeNeon, app.Theme.Get())
}

func TestApp_HooksReachEveryContainer(t *testing.T) {
	var themes, transitions, added atomic.Int32
	hooks := domain.LifecycleHooks{
		OnThemeChange: func(context.Context, *domain.ThemeEvent) { themes.Add(1) },
		OnTransition:  func(context.Context, *domain.TransitionEvent) { transitions.Add(1) },
	}
	more := domain.LifecycleHooks{
		OnNotificationAdd: func(context.Context, *domain.NotificationEvent) { added.Add(1) },
	}

	app := folio.New(
		folio.WithLifecycleHooks(hooks),
		folio.WithLifecycleHooks(more),
		folio.WithSessionOptions(contact.WithScheduler(scheduler.NewManual())),
	)
	defer app.Shutdown(context.Background())

	app.Theme.Toggle()

	sess, err := app.Open("")
	require.NoError(t, err)
	require.NoError(t, sess.SetFields(domain.FormFields{Name: "Ada", Email: "a@b.c", Message: "hi"}))
	require.Equal(t, contact.SubmitAccepted, sess.Submit(context.Background()))
	sess.Wait()

	assert.EqualValues(t, 1, themes.Load())
	assert.EqualValues(t, 2, transitions.Load(), "idle->sending, sending->success")
	assert.EqualValues(t, 1, added.Load())
}

func TestApp_LockerGuardsSubmit(t *testing.T) {
	locker := memory.NewLocker()
	app := folio.New(
		folio.WithLocker(locker),
		folio.WithSessionOptions(
			contact.WithScheduler(scheduler.NewManual()),
			contact.WithSender(ports.SenderFunc(func(ctx context.Context, _ domain.FormFields) error {
				<-ctx.Done()
				return ctx.Err()
			})),
		),
	)

	sess, err := app.Open("s1")
	require.NoError(t, err)
	require.NoError(t, sess.SetFields(domain.FormFields{Name: "Ada", Email: "a@b.c", Message: "hi"}))

	unlock, err := locker.TryLock(context.Background(), "contact:s1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, contact.SubmitIgnored, sess.Submit(context.Background()))
	require.NoError(t, unlock(context.Background()))

	assert.Equal(t, contact.SubmitAccepted, sess.Submit(context.Background()))

	require.NoError(t, app.Shutdown(context.Background()))
	assert.Equal(t, domain.StatusIdle, sess.Status())

	_, err = app.Open("s2")
	assert.True(t, errors.Is(err, domain.ErrSessionClosed))
}

func TestApp_ShutdownHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	app := folio.New(folio.WithSessionOptions(
		contact.WithScheduler(scheduler.NewManual()),
		contact.WithSender(ports.SenderFunc(func(context.Context, domain.FormFields) error {
			<-release
			return nil
		})),
	))

	sess, err := app.Open("s1")
	require.NoError(t, err)
	require.NoError(t, sess.SetFields(domain.FormFields{Name: "Ada", Email: "a@b.c", Message: "hi"}))
	require.Equal(t, contact.SubmitAccepted, sess.Submit(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, app.Shutdown(ctx), context.DeadlineExceeded)
}
