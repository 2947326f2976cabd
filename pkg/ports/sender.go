package ports

import (
	"context"

	"github.com/var1d/folio/pkg/domain"
)

// Sender delivers a submitted contact form.
// A nil error means the message was accepted; any error is a delivery failure
// whose text is shown to the user. Implementations must honour ctx so that a
// session teardown or timeout can abandon a stuck delivery.
type Sender interface {
	Send(ctx context.Context, fields domain.FormFields) error
}

// SenderFunc adapts an ordinary function to the Sender interface.
type SenderFunc func(ctx context.Context, fields domain.FormFields) error

// Send calls f(ctx, fields).
func (f SenderFunc) Send(ctx context.Context, fields domain.FormFields) error {
	return f(ctx, fields)
}
