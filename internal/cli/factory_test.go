package cli_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/var1d/folio/internal/cli"
	"github.com/var1d/folio/internal/config"
	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/adapters/memory"
	"github.com/var1d/folio/pkg/adapters/redis"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Contact.SendDelay = 0
	return cfg
}

func fill(t *testing.T, sess *contact.Session) {
	t.Helper()
	require.NoError(t, sess.SetFields(domain.FormFields{Name: "Ada", Email: "a@b.c", Message: "hi"}))
}

func TestBuildStack_Defaults(t *testing.T) {
	cfg := testConfig(t)

	stack, err := cli.BuildStack(context.Background(), cfg, logging.NewNop(), cli.StackOptions{})
	require.NoError(t, err)
	defer stack.Close(context.Background())

	assert.IsType(t, &memory.Locker{}, stack.Locker)
	assert.Nil(t, stack.Metrics)
	assert.NotNil(t, stack.Content)

	sess, err := stack.App.Open("s1")
	require.NoError(t, err)
	fill(t, sess)
	require.Equal(t, contact.SubmitAccepted, sess.Submit(context.Background()))
	sess.Wait()
	assert.Equal(t, domain.StatusSuccess, sess.Status())
}

func TestBuildStack_ConfiguredFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Contact.FailWith = "smtp relay refused"

	stack, err := cli.BuildStack(context.Background(), cfg, logging.NewNop(), cli.StackOptions{})
	require.NoError(t, err)
	defer stack.Close(context.Background())

	sess, err := stack.App.Open("s1")
	require.NoError(t, err)
	fill(t, sess)
	sess.Submit(context.Background())
	sess.Wait()

	assert.Equal(t, domain.StatusError, sess.Status())
	list := sess.Queue().List()
	require.Len(t, list, 1)
	assert.Contains(t, list[0].Message, "smtp relay refused")
}

func TestBuildStack_Metrics(t *testing.T) {
	cfg := testConfig(t)
	reg := prometheus.NewRegistry()

	stack, err := cli.BuildStack(context.Background(), cfg, logging.NewNop(), cli.StackOptions{Registerer: reg, Debug: true})
	require.NoError(t, err)
	defer stack.Close(context.Background())
	require.NotNil(t, stack.Metrics)

	stack.App.Theme.Toggle()

	expected := `
# HELP folio_theme_changes_total Display mode writes, by resulting mode.
# TYPE folio_theme_changes_total counter
folio_theme_changes_total{mode="neon"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "folio_theme_changes_total"))
}

func TestBuildStack_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Prefix = "site:"

	stack, err := cli.BuildStack(context.Background(), cfg, logging.NewNop(), cli.StackOptions{})
	require.NoError(t, err)
	defer stack.Close(context.Background())
	assert.IsType(t, &redis.Locker{}, stack.Locker)

	unlock, err := stack.Locker.TryLock(context.Background(), "contact:s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("site:lock:contact:s1"))

	sess, err := stack.App.Open("s1")
	require.NoError(t, err)
	fill(t, sess)
	assert.Equal(t, contact.SubmitIgnored, sess.Submit(context.Background()))

	require.NoError(t, unlock(context.Background()))
	assert.Equal(t, contact.SubmitAccepted, sess.Submit(context.Background()))
}

func TestBuildStack_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.Redis.Addr = addr

	_, err := cli.BuildStack(context.Background(), cfg, logging.NewNop(), cli.StackOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis unavailable")
}
