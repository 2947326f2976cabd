package folio_test

import (
	"context"
	"fmt"
	"time"

	"github.com/var1d/folio"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/scheduler"
)

// ExampleNew walks one contact submission from empty form to reset, on a
// virtual clock.
func ExampleNew() {
	clock := scheduler.NewManual()
	app := folio.New(folio.WithSessionOptions(contact.WithScheduler(clock)))
	defer app.Shutdown(context.Background())

	sess, err := app.Open("visitor-1")
	if err != nil {
		panic(err)
	}

	// An incomplete form is rejected with one error notification.
	fmt.Println(sess.Submit(context.Background()))

	sess.UpdateField(domain.FieldName, "Ada")
	sess.UpdateField(domain.FieldEmail, "ada@example.com")
	sess.UpdateField(domain.FieldMessage, "Hello!")

	fmt.Println(sess.Submit(context.Background()))
	sess.Wait()
	fmt.Println(sess.Status())

	for _, n := range sess.Queue().List() {
		fmt.Println(n.Severity.Icon(), n.Message)
	}

	clock.Advance(3 * time.Second)
	fmt.Println(sess.Status())

	clock.Advance(time.Second)
	fmt.Println(sess.Queue().Len())

	// Output:
	// invalid
	// accepted
	// success
	// ⚠ all fields are required (missing: name, email, message)
	// ✓ message sent successfully! 🚀
	// idle
	// 0
}

// ExampleApp_themeToggle shows the display-mode toggle.
func ExampleApp_themeToggle() {
	app := folio.New()
	defer app.Shutdown(context.Background())

	app.Theme.Subscribe(func(mode domain.ThemeMode) {
		fmt.Println("now", mode)
	})

	app.Theme.Toggle()
	app.Theme.Toggle()

	// Output:
	// now neon
	// now dark
}
