package logs

import (
	"strings"
	"sync"

	"github.com/charliek/ktail/internal/domain"
)

// History is a fixed-size circular buffer retaining the most recent log
// messages for retrospective search. When full, the oldest entry is evicted
// before the newest is appended.
type History struct {
	mu       sync.RWMutex
	entries  []domain.LogMessage
	head     int // next write position
	count    int // current number of entries
	capacity int // max entries
}

// NewHistory creates a history buffer with the given capacity
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1000
	}
	return &History{
		entries:  make([]domain.LogMessage, capacity),
		capacity: capacity,
	}
}

// Append adds a new message, evicting the oldest entry when at capacity
func (h *History) Append(msg domain.LogMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.head] = msg
	h.head = (h.head + 1) % h.capacity

	if h.count < h.capacity {
		h.count++
	}
}

// Entries returns a snapshot of all retained messages in insertion order
func (h *History) Entries() []domain.LogMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snapshotLocked()
}

func (h *History) snapshotLocked() []domain.LogMessage {
	if h.count == 0 {
		return nil
	}

	result := make([]domain.LogMessage, h.count)

	// Oldest entry sits at head once the buffer has wrapped.
	start := 0
	if h.count == h.capacity {
		start = h.head
	}

	for i := 0; i < h.count; i++ {
		idx := (start + i) % h.capacity
		result[i] = h.entries[idx]
	}

	return result
}

// Search returns, in insertion order, every retained message whose text
// contains the query, matched case-insensitively. An empty query returns the
// full retained history. The result is a copy; appends that happen after
// Search returns never mutate it.
func (h *History) Search(query string) []domain.LogMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snapshot := h.snapshotLocked()
	if query == "" {
		return snapshot
	}

	q := strings.ToLower(query)
	result := make([]domain.LogMessage, 0, len(snapshot))
	for _, msg := range snapshot {
		if strings.Contains(strings.ToLower(msg.Text), q) {
			result = append(result, msg)
		}
	}
	return result
}

// Count returns the current number of retained messages
func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Capacity returns the maximum capacity of the buffer
func (h *History) Capacity() int {
	return h.capacity
}
