package quiz

import "testing"

func TestMailboxPutTake(t *testing.T) {
	var mb Mailbox[string]

	if _, ok := mb.Take(1); ok {
		t.Fatal("empty mailbox returned a value")
	}

	mb.Put(1, "hello")
	v, ok := mb.Take(1)
	if !ok || v != "hello" {
		t.Fatalf("Take(1) = %q, %v", v, ok)
	}

	// Slot must be empty after a successful take.
	if _, ok := mb.Take(1); ok {
		t.Fatal("value taken twice")
	}
}

func TestMailboxDropsStaleValue(t *testing.T) {
	var mb Mailbox[string]

	mb.Put(1, "stale")
	if _, ok := mb.Take(2); ok {
		t.Fatal("stale value was delivered")
	}
	// The stale value must also be gone.
	if _, ok := mb.Take(1); ok {
		t.Fatal("stale value survived a mismatched take")
	}
}

func TestMailboxOverwrite(t *testing.T) {
	var mb Mailbox[int]

	mb.Put(1, 10)
	mb.Put(2, 20)
	if _, ok := mb.Take(1); ok {
		t.Fatal("overwritten value was delivered")
	}
	mb.Put(3, 30)
	if v, ok := mb.Take(3); !ok || v != 30 {
		t.Fatalf("Take(3) = %d, %v", v, ok)
	}
}

func TestMailboxClear(t *testing.T) {
	var mb Mailbox[string]
	mb.Put(5, "pending")
	mb.Clear()
	if _, ok := mb.Take(5); ok {
		t.Fatal("cleared value was delivered")
	}
}
