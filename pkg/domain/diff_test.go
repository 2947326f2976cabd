package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	idle := StatusIdle
	success := StatusSuccess
	note := Notification{ID: 1, Message: "sent", Severity: SeveritySuccess}

	tests := []struct {
		name     string
		old      *SessionSnapshot
		new      *SessionSnapshot
		wantDiff *SnapshotDiff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &SessionSnapshot{
				SessionID: "sess-1",
				Status:    StatusIdle,
				Fields:    FormFields{Name: "Alice"},
			},
			wantDiff: &SnapshotDiff{
				SessionID: "sess-1",
				Status:    &idle,
				Fields:    map[Field]string{FieldName: "Alice"},
			},
		},
		{
			name:     "No Changes",
			old:      &SessionSnapshot{SessionID: "sess-1", Status: StatusIdle},
			new:      &SessionSnapshot{SessionID: "sess-1", Status: StatusIdle},
			wantDiff: nil,
		},
		{
			name: "Success Clears Fields And Adds Notification",
			old: &SessionSnapshot{
				SessionID: "sess-1",
				Status:    StatusSending,
				Fields:    FormFields{Name: "Alice", Email: "a@example.com", Message: "hi"},
			},
			new: &SessionSnapshot{
				SessionID:     "sess-1",
				Status:        StatusSuccess,
				Notifications: []Notification{note},
			},
			wantDiff: &SnapshotDiff{
				SessionID: "sess-1",
				Status:    &success,
				Fields:    map[Field]string{FieldName: "", FieldEmail: "", FieldMessage: ""},
				Notifications: &NotificationDelta{
					Added: []Notification{note},
				},
			},
		},
		{
			name: "Notification Expired",
			old: &SessionSnapshot{
				SessionID:     "sess-1",
				Status:        StatusIdle,
				Notifications: []Notification{note},
			},
			new: &SessionSnapshot{
				SessionID: "sess-1",
				Status:    StatusIdle,
			},
			wantDiff: &SnapshotDiff{
				SessionID:     "sess-1",
				Notifications: &NotificationDelta{Removed: []uint64{1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.wantDiff) {
				gotJSON, _ := json.Marshal(got)
				wantJSON, _ := json.Marshal(tt.wantDiff)
				t.Errorf("Diff() mismatch\ngot:  %s\nwant: %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestDiff_JSONOmitsUnchanged(t *testing.T) {
	diff := Diff(
		&SessionSnapshot{SessionID: "s", Status: StatusIdle},
		&SessionSnapshot{SessionID: "s", Status: StatusSending},
	)
	data, err := json.Marshal(diff)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); strings.Contains(got, "fields") || strings.Contains(got, "notifications") {
		t.Errorf("expected only status in payload, got %s", got)
	}
}
