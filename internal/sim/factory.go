package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/catalog"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
)

// Sale discounts scale the regular price by a uniform factor in this range.
const (
	saleFactorMin = 0.70
	saleFactorMax = 0.90
)

// Factory constructs single event records. It has no side effects and is
// deterministic given its random source.
type Factory struct {
	rng        *rand.Rand
	probOnSale float64
	maxQty     int
}

func NewFactory(rng *rand.Rand, probOnSale float64, maxQuantity int) *Factory {
	return &Factory{rng: rng, probOnSale: probOnSale, maxQty: maxQuantity}
}

// New builds one event for the given product and kind. Price, quantity and
// rating fields are populated only where meaningful for the event type.
func (f *Factory) New(sessionID, userID, source string, kind event.Type, p catalog.Product, ts time.Time) event.Event {
	e := event.Event{
		ID:        "evt-" + uuid.NewString(),
		Timestamp: ts,
		UserID:    userID,
		SessionID: sessionID,
		Type:      kind,
		ProductID: p.ID,
		OnSale:    f.rng.Float64() < f.probOnSale,
		Source:    source,
	}

	if kind.HasPrice() {
		if e.OnSale {
			factor := saleFactorMin + f.rng.Float64()*(saleFactorMax-saleFactorMin)
			e.SalePrice = math.Round(p.RegularPrice*factor*100) / 100
		} else {
			e.SalePrice = p.RegularPrice
		}
	}

	switch {
	case kind.Acquisition():
		e.Quantity = 1 + f.rng.Intn(f.maxQty)
	case kind == event.TypeReturnItem:
		e.Quantity = -1
	}

	if kind == event.TypeSubmitReview {
		e.Rating = 1 + f.rng.Intn(5)
	}

	return e
}
