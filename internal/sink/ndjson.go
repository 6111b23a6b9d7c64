package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
)

// NDJSON writes one JSON object per line to an underlying writer. It
// serves as both the file and stdout sink.
type NDJSON struct {
	mu     sync.Mutex
	buf    *bufio.Writer
	closer io.Closer // nil when the writer is not owned (stdout)
}

// NewNDJSON wraps an arbitrary writer; the caller keeps ownership of w.
func NewNDJSON(w io.Writer) *NDJSON {
	return &NDJSON{buf: bufio.NewWriter(w)}
}

// Stdout returns an NDJSON sink writing to standard output.
func Stdout() *NDJSON {
	return NewNDJSON(os.Stdout)
}

// OpenFile creates (or truncates) path and returns an NDJSON sink that
// owns the file handle.
func OpenFile(path string) (*NDJSON, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening sink file: %w", err)
	}
	return &NDJSON{buf: bufio.NewWriter(f), closer: f}, nil
}

// Publish writes a single event as one JSON line and flushes it, so
// streaming output is visible immediately.
func (n *NDJSON) Publish(_ context.Context, e event.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.write(e); err != nil {
		return err
	}
	return n.buf.Flush()
}

// Deliver writes a batch of events, one JSON line each.
func (n *NDJSON) Deliver(_ context.Context, events []event.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range events {
		if err := n.write(e); err != nil {
			return err
		}
	}
	return n.buf.Flush()
}

func (n *NDJSON) write(e event.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event %s: %w", e.ID, err)
	}
	if _, err := n.buf.Write(data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	if err := n.buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Close flushes buffered events and closes the file when one is owned.
func (n *NDJSON) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.buf.Flush(); err != nil {
		return fmt.Errorf("flushing sink: %w", err)
	}
	if n.closer != nil {
		return n.closer.Close()
	}
	return nil
}
