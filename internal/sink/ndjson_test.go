package sink

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
)

func sampleEvent(id string, kind event.Type) event.Event {
	e := event.Event{
		ID:        id,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UserID:    "user-1",
		SessionID: "session-1",
		Type:      kind,
		ProductID: "SKU-LAP-0001",
		Source:    "google",
	}
	if kind.HasPrice() {
		e.SalePrice = 99.99
	}
	if kind.Acquisition() {
		e.Quantity = 1
	}
	return e
}

func TestNDJSON_PublishWritesOneLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewNDJSON(&buf)

	require.NoError(t, s.Publish(context.Background(), sampleEvent("evt-1", event.TypeProductView)))
	require.NoError(t, s.Publish(context.Background(), sampleEvent("evt-2", event.TypeAddToCart)))
	require.NoError(t, s.Close())

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 2)

	var parsed event.Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &parsed))
	assert.Equal(t, "evt-1", parsed.ID)
	assert.Equal(t, event.TypeProductView, parsed.Type)

	// Field omission is part of the wire contract.
	assert.NotContains(t, lines[0], "sale_price")
	assert.Contains(t, lines[1], "sale_price")
}

func TestNDJSON_DeliverBatch(t *testing.T) {
	var buf bytes.Buffer
	s := NewNDJSON(&buf)

	batch := []event.Event{
		sampleEvent("evt-1", event.TypeProductView),
		sampleEvent("evt-2", event.TypePurchase),
		sampleEvent("evt-3", event.TypeReturnItem),
	}
	require.NoError(t, s.Deliver(context.Background(), batch))

	scanner := bufio.NewScanner(&buf)
	count := 0
	for scanner.Scan() {
		var parsed event.Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &parsed))
		count++
	}
	assert.Equal(t, 3, count)
}

func TestOpenFile_WritesAndCloses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")
	s, err := OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, s.Publish(context.Background(), sampleEvent("evt-1", event.TypeProductView)))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event_id":"evt-1"`)
}

func TestOpenFile_BadPath(t *testing.T) {
	_, err := OpenFile("/nonexistent-dir/events.ndjson")
	assert.Error(t, err)
}

func TestMemory_CollectsAndFails(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Publish(context.Background(), sampleEvent("evt-1", event.TypeProductView)))

	m.FailNext(assert.AnError)
	assert.Error(t, m.Publish(context.Background(), sampleEvent("evt-2", event.TypeProductView)))

	// Failure is one-shot.
	require.NoError(t, m.Publish(context.Background(), sampleEvent("evt-3", event.TypeProductView)))
	events := m.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, "evt-3", events[1].ID)
}
