package graph

import (
	"fmt"
	"strings"

	"github.com/var1d/folio/pkg/domain"
)

// Overlay marks where a session currently is in the submission machine.
type Overlay struct {
	Current domain.SubmissionStatus
}

// edgeLabels names the event behind each legal transition.
var edgeLabels = map[[2]domain.SubmissionStatus]string{
	{domain.StatusIdle, domain.StatusSending}:    "submit",
	{domain.StatusSending, domain.StatusSuccess}: "delivered",
	{domain.StatusSending, domain.StatusError}:   "failed / timeout",
	{domain.StatusSending, domain.StatusIdle}:    "closed",
	{domain.StatusSuccess, domain.StatusIdle}:    "reset",
	{domain.StatusError, domain.StatusSending}:   "retry",
	{domain.StatusError, domain.StatusIdle}:      "reset",
}

// GenerateMermaid produces a Mermaid flowchart of the submission status
// machine. It applies semantic styling:
// - Idle (entry): ((Circle))
// - Sending: [[Subroutine]]
// - Outcomes: [Rectangle]
// The overlay, if provided, highlights the current status.
func GenerateMermaid(overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, status := range domain.Statuses {
		opener, closer := "[", "]"
		switch status {
		case domain.StatusIdle:
			opener, closer = "((", "))"
		case domain.StatusSending:
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", status, opener, status, closer))

		for _, next := range status.Next() {
			arrow := "-->"
			if label, ok := edgeLabels[[2]domain.SubmissionStatus{status, next}]; ok {
				arrow = fmt.Sprintf("-- \"%s\" -->", label)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", status, arrow, next))
		}
	}

	if overlay != nil && overlay.Current.Valid() {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark backgrounds.
		sb.WriteString("    classDef current fill:#00f5ff,stroke:#ff2bd6,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", overlay.Current))
	}

	return sb.String()
}
