package folio

import (
	"context"
	"log/slog"

	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/ports"
	"github.com/var1d/folio/pkg/session"
	"github.com/var1d/folio/pkg/theme"
)

// App is the high-level entry point for folio.
// It owns the display-mode store and the registry of contact sessions, and
// wires shared hooks and logging into both.
type App struct {
	Theme    *theme.Store
	Sessions *session.Manager

	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	locker      ports.DistributedLocker
	initialMode domain.ThemeMode
	sessionOpts []contact.Option
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithLifecycleHooks registers observability hooks on every container.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = a.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithLocker guards submissions with a distributed lock.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(a *App) {
		a.locker = locker
	}
}

// WithInitialTheme overrides the starting display mode (default: dark).
func WithInitialTheme(mode domain.ThemeMode) Option {
	return func(a *App) {
		a.initialMode = mode
	}
}

// WithSessionOptions appends options applied to every contact session.
func WithSessionOptions(opts ...contact.Option) Option {
	return func(a *App) {
		a.sessionOpts = append(a.sessionOpts, opts...)
	}
}

// New builds an App. Nothing is persisted: every App starts in its initial
// display mode with no sessions.
func New(opts ...Option) *App {
	a := &App{
		logger:      logging.NewNop(),
		initialMode: domain.ThemeDark,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.Theme = theme.NewStore(
		theme.WithInitialMode(a.initialMode),
		theme.WithLogger(a.logger),
		theme.WithLifecycleHooks(a.hooks),
	)

	sessionOpts := []contact.Option{
		contact.WithLogger(a.logger),
		contact.WithLifecycleHooks(a.hooks),
	}
	sessionOpts = append(sessionOpts, a.sessionOpts...)

	managerOpts := []session.Option{
		session.WithLogger(a.logger),
		session.WithSessionOptions(sessionOpts...),
	}
	if a.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(a.locker))
	}
	a.Sessions = session.NewManager(managerOpts...)

	return a
}

// Open returns the live session for id, creating it when needed.
// An empty id generates one.
func (a *App) Open(id string) (*contact.Session, error) {
	return a.Sessions.Open(id)
}

// Logger returns the logger shared by the App's containers.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Shutdown cancels in-flight deliveries, closes every session and drops the
// theme observers. It honours ctx while waiting for deliveries to stop.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Sessions.Shutdown(ctx)
	a.Theme.Close()
	if err != nil {
		a.logger.Warn("Shutdown interrupted before deliveries stopped", "err", err)
	}
	return err
}
