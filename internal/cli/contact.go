package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/var1d/folio/internal/presentation/tui"
	"github.com/var1d/folio/pkg/runner"
	"github.com/var1d/folio/pkg/theme"
)

// ContactOptions configures the contact console.
type ContactOptions struct {
	SessionID   string
	Interactive bool // attached to a terminal: banner, prompt, colours
	Plain       bool // no colours even when interactive
	// Signals lets Ctrl+C end the console; nil leaves that to ctx.
	Signals *runner.SignalManager
}

// RunContact drives one contact session of stack from in to out.
func RunContact(ctx context.Context, stack *Stack, opts ContactOptions, in io.Reader, out io.Writer) error {
	app := stack.App
	sess, err := app.Open(opts.SessionID)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	app.Logger().Info("Session active", "session_id", sess.ID())

	runnerOpts := []runner.Option{
		runner.WithInput(in),
		runner.WithOutput(out),
		runner.WithTheme(app.Theme),
		runner.WithLogger(app.Logger()),
		runner.WithHeadless(!opts.Interactive),
		runner.WithSignals(opts.Signals),
	}

	if opts.Interactive && !opts.Plain {
		palettes := theme.DefaultPalettes()
		tui.PrintBanner(out, palettes[app.Theme.Get()])

		runnerOpts = append(runnerOpts, runner.WithToastRenderer(tui.NewToaster(app.Theme, palettes).Render))
		if render, err := tui.NewRenderer(app.Theme.Get()); err != nil {
			app.Logger().Warn("Markdown help disabled", "err", err)
		} else {
			runnerOpts = append(runnerOpts, runner.WithRenderer(render))
		}
	}

	return HandleExecutionError(runner.NewRunner(runnerOpts...).Run(ctx, sess))
}
