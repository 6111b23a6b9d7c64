package sink

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/config"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
)

func TestNewKafka_Configuration(t *testing.T) {
	k := NewKafka([]string{"kafka-1:9092", "kafka-2:9092"}, "clickstream")

	assert.Equal(t, "clickstream", k.writer.Topic)
	assert.Equal(t, "kafka-1:9092,kafka-2:9092", k.writer.Addr.String())
	require.NoError(t, k.Close())
}

func TestMessage_KeyedByUser(t *testing.T) {
	e := sampleEvent("evt-1", event.TypePurchase)

	msg, err := message(e)
	require.NoError(t, err)
	assert.Equal(t, []byte("user-1"), msg.Key)

	var parsed event.Event
	require.NoError(t, json.Unmarshal(msg.Value, &parsed))
	assert.Equal(t, e.ID, parsed.ID)
	assert.Equal(t, e.SalePrice, parsed.SalePrice)
}

func TestOpen_SelectsSink(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Sink
		wantErr bool
	}{
		{"stdout", config.Sink{Kind: "stdout"}, false},
		{"kafka", config.Sink{Kind: "kafka", Brokers: []string{"localhost:9092"}, Topic: "t"}, false},
		{"unknown", config.Sink{Kind: "smoke-signals"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, s.Close())
		})
	}
}
