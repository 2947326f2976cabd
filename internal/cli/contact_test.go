package cli_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/var1d/folio/internal/cli"
	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/runner"
)

func TestRunContact_Headless(t *testing.T) {
	stack, err := cli.BuildStack(context.Background(), testConfig(t), logging.NewNop(), cli.StackOptions{})
	require.NoError(t, err)
	defer stack.Close(context.Background())

	var out bytes.Buffer
	in := strings.NewReader("submit\nname Ada\nemail ada@example.com\nmessage Hi\nsubmit\n")
	require.NoError(t, cli.RunContact(context.Background(), stack, cli.ContactOptions{SessionID: "cli"}, in, &out))

	assert.Contains(t, out.String(), "⚠ [1] all fields are required")
	assert.Contains(t, out.String(), "✓ [2] "+contact.MsgDelivered)
	assert.NotContains(t, out.String(), "> ")
}

func TestRunContact_InteractiveShowsBanner(t *testing.T) {
	stack, err := cli.BuildStack(context.Background(), testConfig(t), logging.NewNop(), cli.StackOptions{})
	require.NoError(t, err)
	defer stack.Close(context.Background())

	var out bytes.Buffer
	opts := cli.ContactOptions{SessionID: "cli", Interactive: true}
	require.NoError(t, cli.RunContact(context.Background(), stack, opts, strings.NewReader("submit\nquit\n"), &out))

	assert.Contains(t, out.String(), "/ _| ___ | (_) ___")
	assert.Contains(t, out.String(), "--- folio contact (type help) ---")
	assert.Contains(t, out.String(), "⚠ [1] all fields are required")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunContact_InterruptEndsConsole(t *testing.T) {
	stack, err := cli.BuildStack(context.Background(), testConfig(t), logging.NewNop(), cli.StackOptions{})
	require.NoError(t, err)
	defer stack.Close(context.Background())

	signals := runner.NewSignalManager()
	defer signals.Stop()
	signals.Interrupt()

	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	opts := cli.ContactOptions{SessionID: "cli", Signals: signals}
	require.NoError(t, cli.RunContact(context.Background(), stack, opts, pr, &out))
	assert.Empty(t, out.String())
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, cli.HandleExecutionError(nil))
	assert.NoError(t, cli.HandleExecutionError(context.Canceled))
	assert.EqualError(t, cli.HandleExecutionError(assert.AnError), assert.AnError.Error())
}
