package domain

// SnapshotDiff represents the changes between two session snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// Status is set when the submission status changed.
	Status *SubmissionStatus `json:"status,omitempty"`

	// Fields contains only the form fields whose value changed.
	Fields map[Field]string `json:"fields,omitempty"`

	// Notifications lists queue entries added or removed.
	Notifications *NotificationDelta `json:"notifications,omitempty"`
}

// NotificationDelta represents changes to the notification queue.
type NotificationDelta struct {
	Added   []Notification `json:"added,omitempty"`
	Removed []uint64       `json:"removed,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *SessionSnapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{
		SessionID: newSnap.SessionID,
	}

	if oldSnap == nil || oldSnap.Status != newSnap.Status {
		status := newSnap.Status
		diff.Status = &status
	}

	diff.Fields = diffFields(oldSnap, newSnap)
	diff.Notifications = diffNotifications(oldSnap, newSnap)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffFields(oldSnap, newSnap *SessionSnapshot) map[Field]string {
	delta := make(map[Field]string)
	for _, f := range Fields {
		newVal := newSnap.Fields.Get(f)
		if oldSnap == nil {
			if newVal != "" {
				delta[f] = newVal
			}
			continue
		}
		if oldSnap.Fields.Get(f) != newVal {
			delta[f] = newVal
		}
	}

	if len(delta) == 0 {
		return nil
	}
	return delta
}

// diffNotifications compares by ID; queue entries are immutable once added.
func diffNotifications(oldSnap, newSnap *SessionSnapshot) *NotificationDelta {
	seen := make(map[uint64]bool)
	if oldSnap != nil {
		for _, n := range oldSnap.Notifications {
			seen[n.ID] = true
		}
	}

	delta := &NotificationDelta{}
	current := make(map[uint64]bool, len(newSnap.Notifications))
	for _, n := range newSnap.Notifications {
		current[n.ID] = true
		if !seen[n.ID] {
			delta.Added = append(delta.Added, n)
		}
	}
	if oldSnap != nil {
		for _, n := range oldSnap.Notifications {
			if !current[n.ID] {
				delta.Removed = append(delta.Removed, n.ID)
			}
		}
	}

	if len(delta.Added) == 0 && len(delta.Removed) == 0 {
		return nil
	}
	return delta
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.Status == nil &&
		len(d.Fields) == 0 &&
		d.Notifications == nil
}
