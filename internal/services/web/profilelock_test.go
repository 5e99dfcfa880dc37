package web

import (
	"testing"
	"time"
)

func TestProfileLocksSerializeOneProfile(t *testing.T) {
	t.Parallel()

	locks := newProfileLocks()
	release := locks.lock("p1")

	acquired := make(chan func())
	go func() {
		acquired <- locks.lock("p1")
	}()
	select {
	case <-acquired:
		t.Fatal("second lock on p1 acquired while the first was held")
	case <-time.After(20 * time.Millisecond):
	}

	other := locks.lock("p2")
	other()

	release()
	select {
	case second := <-acquired:
		second()
	case <-time.After(time.Second):
		t.Fatal("second lock on p1 not acquired after release")
	}
	if got := locks.size(); got != 0 {
		t.Fatalf("size() = %d, want 0", got)
	}
}
