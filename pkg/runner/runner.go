package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/theme"
)

// HelpText is the markdown command reference shown by the help command.
const HelpText = `# Contact console

| command | effect |
|---|---|
| ` + "`name <value>`" + ` | set your name |
| ` + "`email <value>`" + ` | set your email |
| ` + "`message <value>`" + ` | set the message |
| ` + "`submit`" + ` | send the form |
| ` + "`status`" + ` | show status and fields |
| ` + "`list`" + ` | show notifications |
| ` + "`dismiss <id>`" + ` | remove a notification |
| ` + "`theme [dark\\|neon]`" + ` | toggle or set the display mode |
| ` + "`quit`" + ` | leave |
`

// ContentRenderer transforms text before it is printed.
// This allows markdown rendering without coupling the console to a terminal library.
type ContentRenderer func(string) (string, error)

// ToastRenderer formats one notification for the console.
type ToastRenderer func(domain.Notification) string

// PlainToast renders "<icon> [id] message" without colour.
func PlainToast(n domain.Notification) string {
	return fmt.Sprintf("%s [%d] %s", n.Severity.Icon(), n.ID, n.Message)
}

// Runner drives a contact session from line input.
type Runner struct {
	Input        io.Reader
	Output       io.Writer
	Headless     bool
	Renderer     ContentRenderer
	Toasts       ToastRenderer
	Theme        *theme.Store
	Logger       *slog.Logger
	MaxInputSize int
	Signals      *SignalManager
}

// NewRunner creates a Runner reading stdin and writing stdout unless
// configured otherwise.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:        os.Stdin,
		Output:       os.Stdout,
		Toasts:       PlainToast,
		Logger:       logging.NewNop(),
		MaxInputSize: MaxInputSize(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MsgInterruptWhileSending is printed when Ctrl+C arrives during a delivery.
const MsgInterruptWhileSending = "delivery in progress, press Ctrl+C again to leave"

// Run executes the console loop until quit, EOF, ctx ends or a signal
// arrives through Signals.
// At EOF it waits for an in-flight delivery so its outcome is printed,
// unless the EOF came from Ctrl+C. A first Ctrl+C during a delivery only
// warns; the second one leaves.
func (r *Runner) Run(ctx context.Context, sess *contact.Session) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	out := &lockedWriter{w: r.Output}

	if !r.Headless {
		fmt.Fprintln(out, "--- folio contact (type help) ---")
	}

	defer r.watch(out, sess)()

	stop := make(chan struct{})
	defer close(stop)
	lines := pump(r.Input, stop)
	warned := false
	for {
		if !r.Headless {
			fmt.Fprint(out, "> ")
		}

		var interrupt <-chan struct{}
		if r.Signals != nil {
			interrupt = r.Signals.Context().Done()
		}

		select {
		case <-ctx.Done():
			r.Logger.Info("Console interrupted", "session_id", sess.ID())
			return nil
		case <-interrupt:
			if !warned && sess.Status() == domain.StatusSending {
				warned = true
				fmt.Fprintln(out, MsgInterruptWhileSending)
				r.Signals.Reset()
				continue
			}
			r.Logger.Info("Console interrupted", "session_id", sess.ID())
			return nil
		case res, ok := <-lines:
			if !ok {
				if r.interrupted() {
					r.Logger.Info("Console interrupted", "session_id", sess.ID())
					return nil
				}
				sess.Wait()
				return nil
			}
			if res.err != nil {
				if r.interrupted() {
					return nil
				}
				return fmt.Errorf("input error: %w", res.err)
			}

			line, err := SanitizeInput(res.text, r.MaxInputSize)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			if quit := r.dispatch(ctx, out, sess, strings.TrimSpace(line)); quit {
				if !r.Headless {
					fmt.Fprintln(out, "Bye!")
				}
				return nil
			}
		}
	}
}

// interrupted reports whether a signal accompanies the end of input.
func (r *Runner) interrupted() bool {
	return r.Signals != nil && r.Signals.CheckRace()
}

// watch prints status changes, new notifications and mode changes.
// It returns the function that stops watching.
func (r *Runner) watch(out io.Writer, sess *contact.Session) func() {
	var mu sync.Mutex
	last := sess.Snapshot()
	unsubSession := sess.Subscribe(func(snap domain.SessionSnapshot) {
		mu.Lock()
		diff := domain.Diff(&last, &snap)
		last = snap
		mu.Unlock()
		if diff == nil {
			return
		}
		if diff.Status != nil {
			fmt.Fprintf(out, "status: %s\n", *diff.Status)
		}
		if diff.Notifications != nil {
			for _, n := range diff.Notifications.Added {
				fmt.Fprintln(out, r.Toasts(n))
			}
		}
	})

	unsubTheme := func() {}
	if r.Theme != nil {
		unsubTheme = r.Theme.Subscribe(func(mode domain.ThemeMode) {
			fmt.Fprintf(out, "theme: %s\n", mode)
		})
	}

	return func() {
		unsubSession()
		unsubTheme()
	}
}

// dispatch runs one command line and reports whether the console should end.
func (r *Runner) dispatch(ctx context.Context, out io.Writer, sess *contact.Session, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return true
	case "help", "?":
		r.help(out)
	case "submit":
		if res := sess.Submit(ctx); res == contact.SubmitIgnored {
			r.Logger.Debug("Submit ignored", "session_id", sess.ID(), "status", sess.Status())
		}
	case "status":
		snap := sess.Snapshot()
		fmt.Fprintf(out, "status: %s\n", snap.Status)
		for _, f := range domain.Fields {
			fmt.Fprintf(out, "  %-8s %s\n", f, snap.Fields.Get(f))
		}
	case "list":
		list := sess.Queue().List()
		if len(list) == 0 {
			fmt.Fprintln(out, "no notifications")
		}
		for _, n := range list {
			fmt.Fprintln(out, r.Toasts(n))
		}
	case "dismiss":
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			fmt.Fprintf(out, "error: dismiss needs a notification id\n")
			return false
		}
		if !sess.Queue().Remove(id) {
			fmt.Fprintf(out, "no notification %d\n", id)
		}
	case "theme":
		r.theme(out, arg)
	default:
		field, err := domain.ParseField(cmd)
		if err != nil {
			fmt.Fprintf(out, "error: unknown command (type help): %v\n", err)
			return false
		}
		if err := sess.UpdateField(field, arg); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return false
}

func (r *Runner) theme(out io.Writer, arg string) {
	if r.Theme == nil {
		fmt.Fprintln(out, "error: theme is not available")
		return
	}
	if arg == "" {
		r.Theme.Toggle()
		return
	}
	mode, err := domain.ParseThemeMode(arg)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	r.Theme.Set(mode)
}

func (r *Runner) help(out io.Writer) {
	text := HelpText
	if r.Renderer != nil {
		if rendered, err := r.Renderer(text); err == nil {
			text = rendered
		}
	}
	fmt.Fprintln(out, strings.TrimSpace(text))
}
