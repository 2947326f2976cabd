/*
Package runner implements the interactive line console for a contact session.

It is the bridge between a contact.Session (and optionally the theme store)
and a text terminal: lines are read from the input, sanitized, and turned into
field edits, submissions and notification dismissals, while status changes and
new notifications are printed as they happen.

# Commands

	name <value>      set the name field (likewise email, message)
	submit            send the form
	status            show status and fields
	list              show pending notifications
	dismiss <id>      remove a notification
	theme [mode]      toggle the display mode, or set it
	help              show the command reference
	quit              leave the console

# Usage

	r := runner.NewRunner(
		runner.WithInput(os.Stdin),
		runner.WithOutput(os.Stdout),
		runner.WithTheme(app.Theme),
	)

	if err := r.Run(ctx, sess); err != nil {
		log.Fatal(err)
	}
*/
package runner
