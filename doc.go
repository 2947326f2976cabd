/*
Package folio is the interaction core of a personal portfolio site.

It owns three cooperating state containers: a global display-mode store
(dark or neon), contact-form sessions that submit through an asynchronous
Sender, and a per-session queue of transient notifications that expire on
their own. Hosts (the HTTP server, the MCP server, the terminal console) drive
these containers and render their snapshots.

# Concept

Every container serialises its own mutations and notifies observers
synchronously, after the change and before the mutating call returns. Time
goes through a ports.Scheduler, so tests can replace the runtime clock with a
virtual one and delivery goes through a ports.Sender, so real transport is
pluggable.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/var1d/folio"
		"github.com/var1d/folio/pkg/domain"
	)

	func main() {
		app := folio.New()
		defer app.Shutdown(context.Background())

		sess, _ := app.Open("visitor-1")
		sess.UpdateField(domain.FieldName, "Ada")
		sess.UpdateField(domain.FieldEmail, "ada@example.com")
		sess.UpdateField(domain.FieldMessage, "Hello!")

		sess.Submit(context.Background())
		sess.Wait()

		for _, n := range sess.Queue().List() {
			fmt.Println(n.Severity.Icon(), n.Message)
		}
	}
*/
package folio
