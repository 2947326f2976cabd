package domain

import (
	"fmt"
	"strings"
	"time"
)

// Severity classifies a notification for rendering.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// ParseSeverity converts a wire name into a Severity. Empty input means Info.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case "", SeverityInfo:
		return SeverityInfo, nil
	case SeveritySuccess:
		return SeveritySuccess, nil
	case SeverityError:
		return SeverityError, nil
	}
	return SeverityInfo, fmt.Errorf("unknown severity %q", s)
}

// Icon returns the glyph shown next to a notification of this severity.
func (s Severity) Icon() string {
	switch s {
	case SeverityError:
		return "⚠"
	case SeveritySuccess:
		return "✓"
	default:
		return "ℹ"
	}
}

// Notification is a transient user-facing message.
type Notification struct {
	// ID is unique within the owning queue for its whole lifetime.
	ID uint64 `json:"id"`

	// Message is the human-readable text.
	Message string `json:"message"`

	// Severity selects the icon and colour.
	Severity Severity `json:"severity"`

	// CreatedAt is when the notification was queued.
	CreatedAt time.Time `json:"created_at"`
}
