package domain

import (
	"fmt"
	"slices"
)

// SubmissionStatus is the state of the contact form submission machine.
type SubmissionStatus string

const (
	StatusIdle    SubmissionStatus = "idle"    // Ready to accept a submission
	StatusSending SubmissionStatus = "sending" // Delivery in flight
	StatusSuccess SubmissionStatus = "success" // Delivered, waiting for the auto-reset
	StatusError   SubmissionStatus = "error"   // Delivery failed, retry allowed
)

// Statuses lists every status in declaration order.
var Statuses = []SubmissionStatus{StatusIdle, StatusSending, StatusSuccess, StatusError}

// transitions is the complete set of legal status changes.
// Anything not listed here is rejected by Transition.
var transitions = map[SubmissionStatus][]SubmissionStatus{
	StatusIdle:    {StatusSending},
	StatusSending: {StatusSuccess, StatusError, StatusIdle},
	StatusSuccess: {StatusIdle},
	StatusError:   {StatusSending, StatusIdle},
}

// Valid reports whether s is a declared status.
func (s SubmissionStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// AcceptsSubmit reports whether a new submission may start from s.
// Sending and Success guard against duplicate or overlapping submissions.
func (s SubmissionStatus) AcceptsSubmit() bool {
	return CanTransition(s, StatusSending)
}

// Busy reports whether a trigger for submission should appear disabled.
func (s SubmissionStatus) Busy() bool {
	return !s.AcceptsSubmit()
}

// Next returns the statuses reachable from s in one step.
func (s SubmissionStatus) Next() []SubmissionStatus {
	return slices.Clone(transitions[s])
}

// CanTransition reports whether from -> to is a legal transition.
func CanTransition(from, to SubmissionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to and returns the new status.
func Transition(from, to SubmissionStatus) (SubmissionStatus, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return to, nil
}
