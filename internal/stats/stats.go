// Package stats aggregates per-run generation summaries.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
)

// Collector counts sessions and events as they are generated.
type Collector struct {
	mu       sync.Mutex
	start    time.Time
	sessions int
	counts   map[event.Type]int
}

func NewCollector(start time.Time) *Collector {
	return &Collector{start: start, counts: make(map[event.Type]int)}
}

// RecordSession counts one session and its events.
func (c *Collector) RecordSession(events []event.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions++
	for _, e := range events {
		c.counts[e.Type]++
	}
}

// Summary captures the aggregated run at a point in time.
type Summary struct {
	Sessions     int                `json:"sessions"`
	Events       int                `json:"events"`
	ByType       map[event.Type]int `json:"by_type"`
	Elapsed      time.Duration      `json:"elapsed_ns"`
	EventsPerSec float64            `json:"events_per_sec"`
}

// Summary snapshots the collector as of now.
func (c *Collector) Summary(now time.Time) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	byType := make(map[event.Type]int, len(c.counts))
	for t, n := range c.counts {
		total += n
		byType[t] = n
	}

	elapsed := now.Sub(c.start)
	perSec := 0.0
	if elapsed > 0 {
		perSec = float64(total) / elapsed.Seconds()
	}

	return Summary{
		Sessions:     c.sessions,
		Events:       total,
		ByType:       byType,
		Elapsed:      elapsed,
		EventsPerSec: perSec,
	}
}

// WriteText prints a human-readable summary.
func (s Summary) WriteText(w io.Writer) {
	fmt.Fprintf(w, "Sessions:  %d\n", s.Sessions)
	fmt.Fprintf(w, "Events:    %d (%.1f/s over %v)\n", s.Events, s.EventsPerSec, s.Elapsed.Round(time.Millisecond))

	types := make([]event.Type, 0, len(s.ByType))
	for t := range s.ByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Fprintf(w, "  %-20s %d\n", t, s.ByType[t])
	}
}

// WriteJSON prints the summary as a single JSON object.
func (s Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
