// Package event defines the clickstream event record and its wire contract.
package event

import "time"

// Type identifies the kind of clickstream event.
type Type string

const (
	TypeProductView      Type = "product_view"
	TypeAddToCart        Type = "add_to_cart"
	TypeAddToCartFailure Type = "add_to_cart_failure"
	TypePurchase         Type = "purchase"
	TypeSubmitReview     Type = "submit_review"
	TypeReturnItem       Type = "return_item"
)

// Sources are the traffic channels a session can arrive from.
var Sources = []string{"google", "facebook", "email", "direct", "organic_search"}

// Event is a single clickstream record, serialized as one JSON object.
//
// SalePrice, Quantity and Rating are meaningful only for some event types
// and are omitted from the wire form otherwise. Present values are never
// zero (prices are positive, quantity is in 1..3 or exactly -1, rating is
// in 1..5), so omitempty implements the absence rule exactly.
type Event struct {
	ID        string    `json:"event_id"`
	Timestamp time.Time `json:"event_timestamp"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Type      Type      `json:"event_type"`
	ProductID string    `json:"product_id"`
	OnSale    bool      `json:"on_sale"`
	SalePrice float64   `json:"sale_price,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	Source    string    `json:"source"`
}

// HasPrice reports whether events of this type carry a sale_price.
func (t Type) HasPrice() bool {
	switch t {
	case TypeAddToCart, TypePurchase, TypeReturnItem:
		return true
	}
	return false
}

// Acquisition reports whether events of this type carry a positive quantity.
func (t Type) Acquisition() bool {
	return t == TypeAddToCart || t == TypePurchase
}
