package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/var1d/folio"
	"github.com/var1d/folio/internal/config"
	"github.com/var1d/folio/pkg/adapters/memory"
	"github.com/var1d/folio/pkg/adapters/redis"
	"github.com/var1d/folio/pkg/adapters/simulated"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/content"
	"github.com/var1d/folio/pkg/observability"
	"github.com/var1d/folio/pkg/ports"
)

// Stack is everything a host command needs, built from the configuration.
type Stack struct {
	App     *folio.App
	Content *content.Client
	Metrics *observability.Metrics
	Locker  ports.DistributedLocker

	closeLocker func() error
	logger      *slog.Logger
}

// StackOptions selects optional parts of the stack.
type StackOptions struct {
	// Registerer enables Prometheus metrics when set.
	Registerer prometheus.Registerer
	// Debug logs every lifecycle event.
	Debug bool
}

// BuildStack wires the app with its sender, submission guard, hooks and
// content client. A configured Redis address must answer a ping.
func BuildStack(ctx context.Context, cfg config.Config, logger *slog.Logger, opts StackOptions) (*Stack, error) {
	s := &Stack{logger: logger}

	if cfg.Redis.Addr != "" {
		var redisOpts []redis.Option
		if cfg.Redis.Prefix != "" {
			redisOpts = append(redisOpts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		locker := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redisOpts...)
		if err := locker.Ping(ctx); err != nil {
			_ = locker.Close()
			return nil, fmt.Errorf("redis unavailable at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("Using Redis submission guard", "addr", cfg.Redis.Addr)
		s.Locker, s.closeLocker = locker, locker.Close
	} else {
		s.Locker = memory.NewLocker()
	}

	senderOpts := []simulated.Option{
		simulated.WithDelay(cfg.Contact.SendDelay),
		simulated.WithLogger(logger),
	}
	if cfg.Contact.FailWith != "" {
		senderOpts = append(senderOpts, simulated.WithFailure(cfg.Contact.FailWith))
	}

	appOpts := []folio.Option{
		folio.WithLogger(logger),
		folio.WithLocker(s.Locker),
		folio.WithSessionOptions(
			contact.WithSender(simulated.New(senderOpts...)),
			contact.WithResetDelay(cfg.Contact.ResetDelay),
			contact.WithSendTimeout(cfg.Contact.SendTimeout),
			contact.WithNotificationTTL(cfg.Notify.TTL),
		),
	}
	if opts.Registerer != nil {
		s.Metrics = observability.NewMetrics(opts.Registerer)
		appOpts = append(appOpts, folio.WithLifecycleHooks(s.Metrics.Hooks()))
	}
	if opts.Debug {
		appOpts = append(appOpts, folio.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	s.App = folio.New(appOpts...)

	s.Content = content.NewClient(
		content.WithUser(cfg.Content.GitHubUser),
		content.WithTag(cfg.Content.DevToTag),
		content.WithTimeout(cfg.Content.Timeout),
		content.WithLogger(logger),
	)

	return s, nil
}

// Close shuts the app down and releases the guard's connection.
func (s *Stack) Close(ctx context.Context) error {
	err := s.App.Shutdown(ctx)
	if s.closeLocker != nil {
		err = errors.Join(err, s.closeLocker())
	}
	return err
}
