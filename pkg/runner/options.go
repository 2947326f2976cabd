package runner

import (
	"io"
	"log/slog"

	"github.com/var1d/folio/pkg/theme"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInput sets the line source (default: os.Stdin).
func WithInput(r io.Reader) Option {
	return func(rn *Runner) {
		rn.Input = r
	}
}

// WithOutput sets where the console writes (default: os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(rn *Runner) {
		rn.Output = w
	}
}

// WithHeadless suppresses the header and the prompt, for piped input.
func WithHeadless(headless bool) Option {
	return func(rn *Runner) {
		rn.Headless = headless
	}
}

// WithRenderer configures the help renderer (e.g. markdown to ANSI).
func WithRenderer(renderer ContentRenderer) Option {
	return func(rn *Runner) {
		rn.Renderer = renderer
	}
}

// WithToastRenderer configures how a notification is printed.
func WithToastRenderer(renderer ToastRenderer) Option {
	return func(rn *Runner) {
		rn.Toasts = renderer
	}
}

// WithTheme enables the theme command and prints mode changes.
func WithTheme(store *theme.Store) Option {
	return func(rn *Runner) {
		rn.Theme = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		rn.Logger = logger
	}
}

// WithMaxInputSize overrides the per-line size limit.
func WithMaxInputSize(n int) Option {
	return func(rn *Runner) {
		rn.MaxInputSize = n
	}
}

// WithSignals lets Ctrl+C end the console. Without it only ctx does.
func WithSignals(sm *SignalManager) Option {
	return func(rn *Runner) {
		rn.Signals = sm
	}
}
