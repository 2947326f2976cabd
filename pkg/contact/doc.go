/*
Package contact implements the contact-form submission workflow.

A Session owns the form fields, a submission status and a notification queue.
Submit validates the fields, moves the status to Sending and hands delivery to
a ports.Sender on its own goroutine. The outcome moves the status to Success
(fields cleared) or Error (fields kept, retry allowed), and a scheduled reset
brings it back to Idle.

	sess := contact.New(contact.WithSender(simulated.New()))
	defer sess.Close()

	_ = sess.UpdateField(domain.FieldName, "Ada")
	...
	switch sess.Submit(ctx) {
	case contact.SubmitInvalid:
		// an error notification is listed; status unchanged
	case contact.SubmitIgnored:
		// already sending or just succeeded
	case contact.SubmitUnavailable:
		// the submission lock failed; an error notification is listed
	}
*/
package contact
