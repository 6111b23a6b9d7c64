package event

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestMarshal_OmitsAbsentFields(t *testing.T) {
	e := Event{
		ID:        "evt-1",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UserID:    "user-7",
		SessionID: "session-1",
		Type:      TypeProductView,
		ProductID: "SKU-LAP-A1B2",
		OnSale:    false,
		Source:    "google",
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := string(data)
	for _, absent := range []string{"sale_price", "quantity", "rating"} {
		if strings.Contains(s, absent) {
			t.Errorf("product_view should omit %q, got %s", absent, s)
		}
	}
	// on_sale is not optional and must survive even when false.
	if !strings.Contains(s, `"on_sale":false`) {
		t.Errorf("expected on_sale:false in wire form, got %s", s)
	}
}

func TestMarshal_IncludesPresentFields(t *testing.T) {
	e := Event{
		ID:        "evt-2",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UserID:    "user-7",
		SessionID: "session-1",
		Type:      TypePurchase,
		ProductID: "SKU-LAP-A1B2",
		OnSale:    true,
		SalePrice: 799.99,
		Quantity:  2,
		Source:    "email",
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := string(data)
	for _, want := range []string{`"sale_price":799.99`, `"quantity":2`, `"event_type":"purchase"`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in wire form, got %s", want, s)
		}
	}
	if strings.Contains(s, "rating") {
		t.Errorf("purchase should omit rating, got %s", s)
	}
}

func TestMarshal_ReturnQuantity(t *testing.T) {
	e := Event{Type: TypeReturnItem, Quantity: -1, SalePrice: 10}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"quantity":-1`) {
		t.Errorf("expected quantity:-1, got %s", data)
	}
}

// Re-serializing a parsed event must reproduce the wire form byte for byte.
func TestRoundTrip(t *testing.T) {
	events := []Event{
		{
			ID: "evt-a", Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
			UserID: "user-1", SessionID: "session-a", Type: TypeProductView,
			ProductID: "SKU-TVS-0001", Source: "direct",
		},
		{
			ID: "evt-b", Timestamp: time.Date(2025, 1, 2, 3, 14, 5, 0, time.UTC),
			UserID: "user-1", SessionID: "session-a", Type: TypePurchase,
			ProductID: "SKU-TVS-0001", OnSale: true, SalePrice: 123.45,
			Quantity: 3, Source: "direct",
		},
		{
			ID: "evt-c", Timestamp: time.Date(2025, 1, 2, 3, 15, 5, 0, time.UTC),
			UserID: "user-1", SessionID: "session-a", Type: TypeSubmitReview,
			ProductID: "SKU-TVS-0001", Rating: 4, Source: "direct",
		},
	}

	for _, e := range events {
		first, err := json.Marshal(e)
		if err != nil {
			t.Fatalf("%s: marshal: %v", e.Type, err)
		}
		var parsed Event
		if err := json.Unmarshal(first, &parsed); err != nil {
			t.Fatalf("%s: unmarshal: %v", e.Type, err)
		}
		second, err := json.Marshal(parsed)
		if err != nil {
			t.Fatalf("%s: re-marshal: %v", e.Type, err)
		}
		if string(first) != string(second) {
			t.Errorf("%s: round trip changed wire form:\n first: %s\nsecond: %s", e.Type, first, second)
		}
		if !parsed.Timestamp.Equal(e.Timestamp) {
			t.Errorf("%s: timestamp changed: %v != %v", e.Type, parsed.Timestamp, e.Timestamp)
		}
	}
}

func TestTypeHelpers(t *testing.T) {
	tests := []struct {
		typ         Type
		hasPrice    bool
		acquisition bool
	}{
		{TypeProductView, false, false},
		{TypeAddToCart, true, true},
		{TypeAddToCartFailure, false, false},
		{TypePurchase, true, true},
		{TypeSubmitReview, false, false},
		{TypeReturnItem, true, false},
	}
	for _, tt := range tests {
		if got := tt.typ.HasPrice(); got != tt.hasPrice {
			t.Errorf("%s.HasPrice() = %v, want %v", tt.typ, got, tt.hasPrice)
		}
		if got := tt.typ.Acquisition(); got != tt.acquisition {
			t.Errorf("%s.Acquisition() = %v, want %v", tt.typ, got, tt.acquisition)
		}
	}
}
