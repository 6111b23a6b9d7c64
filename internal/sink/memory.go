package sink

import (
	"context"
	"sync"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
)

// Memory collects events in memory. It backs driver tests and ad hoc
// inspection; FailNext lets tests inject delivery errors.
type Memory struct {
	mu       sync.Mutex
	events   []event.Event
	failNext error
}

func NewMemory() *Memory {
	return &Memory{}
}

// FailNext makes the next delivery attempt return err.
func (m *Memory) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

func (m *Memory) Publish(_ context.Context, e event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.events = append(m.events, e)
	return nil
}

func (m *Memory) Deliver(_ context.Context, events []event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.events = append(m.events, events...)
	return nil
}

func (m *Memory) Close() error { return nil }

// Events returns a copy of everything delivered so far.
func (m *Memory) Events() []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *Memory) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}
