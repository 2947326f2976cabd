package domain

// SessionSnapshot is the read model of one contact session, as observed by
// the presentation layer.
type SessionSnapshot struct {
	SessionID     string           `json:"session_id"`
	Status        SubmissionStatus `json:"status"`
	Fields        FormFields       `json:"fields"`
	Notifications []Notification   `json:"notifications"`
}
