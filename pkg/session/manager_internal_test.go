package session

import (
	"fmt"
	"testing"
)

func TestManager_NoLeakAfterClose(t *testing.T) {
	mgr := NewManager()
	count := 1000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		if _, err := mgr.Open(sid); err != nil {
			t.Fatalf("open %s: %v", sid, err)
		}
		if err := mgr.Close(sid); err != nil {
			t.Fatalf("close %s: %v", sid, err)
		}
	}

	if n := len(mgr.sessions); n != 0 {
		t.Errorf("expected 0 sessions remaining, got %d", n)
	}
}
