package quiz

import "sync"

// Mailbox is a single-slot holder for the result of one in-flight AI
// call. The producing goroutine stamps the value with the question
// sequence it was requested for; the owning loop takes it back only while
// that sequence is still current, so stale results are dropped silently.
type Mailbox[T any] struct {
	mu   sync.Mutex
	seq  int
	val  T
	full bool
}

// Put stores a value stamped with seq, replacing any previous value.
func (m *Mailbox[T]) Put(seq int, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq = seq
	m.val = v
	m.full = true
}

// Take returns the stored value when its stamp matches seq. A mismatched
// stamp means the caller has moved past the point the value applies to;
// the slot is cleared either way.
func (m *Mailbox[T]) Take(seq int) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if !m.full {
		return zero, false
	}
	v, ok := m.val, m.seq == seq
	m.val = zero
	m.full = false
	if !ok {
		return zero, false
	}
	return v, true
}

// Clear drops any pending value.
func (m *Mailbox[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	m.val = zero
	m.full = false
}
