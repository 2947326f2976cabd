package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the registry.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionClosed is returned when an operation targets a torn-down session.
var ErrSessionClosed = errors.New("session closed")

// ErrUnknownField is returned when a form field name is not recognised.
var ErrUnknownField = errors.New("unknown field")

// ErrUnknownTheme is returned when a theme mode name is not recognised.
var ErrUnknownTheme = errors.New("unknown theme")

// ErrIllegalTransition is returned when a status change is not in the transition table.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrLockHeld is returned when a submission lock is already owned by someone else.
var ErrLockHeld = errors.New("lock held")

// MsgFieldsRequired is the notification text for an incomplete form.
const MsgFieldsRequired = "all fields are required"

// ValidationError reports required fields that were left blank.
type ValidationError struct {
	Missing []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s (missing: %s)", MsgFieldsRequired, strings.Join(names, ", "))
}

// DeliveryError wraps a Sender rejection or timeout.
type DeliveryError struct {
	Reason error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed: %v", e.Reason)
}

func (e *DeliveryError) Unwrap() error {
	return e.Reason
}
