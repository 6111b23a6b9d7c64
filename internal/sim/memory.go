package sim

import (
	"math/rand"
	"sync"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/catalog"
)

// DefaultMemoryCapacity is the bounded size of the repeat-user buffer.
const DefaultMemoryCapacity = 100

// Entry pairs a user with a product they left in an abandoned cart.
type Entry struct {
	UserID  string
	Product catalog.Product
}

// Memory is a fixed-capacity recency buffer of abandoned-cart entries.
// The single simulation loop is its only writer today, but it is guarded
// by a mutex so a parallel driver stays correct.
type Memory struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
}

// NewMemory creates a buffer holding at most capacity entries; a
// non-positive capacity falls back to DefaultMemoryCapacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &Memory{capacity: capacity}
}

// Add appends an entry, evicting the oldest when at capacity.
func (m *Memory) Add(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) == m.capacity {
		copy(m.entries, m.entries[1:])
		m.entries[len(m.entries)-1] = e
		return
	}
	m.entries = append(m.entries, e)
}

// Sample returns a uniformly random entry, or false if the buffer is empty.
func (m *Memory) Sample(rng *rand.Rand) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) == 0 {
		return Entry{}, false
	}
	return m.entries[rng.Intn(len(m.entries))], true
}

// Len returns the number of buffered entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
