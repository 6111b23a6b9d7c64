// Package sim implements the stateful user-session simulator: the logic
// that turns one session-start trigger into a plausible ordered sequence
// of dependent clickstream events.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/catalog"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
)

// Simulator generates complete user journeys against a read-only catalog.
// It is not safe for concurrent use; each generation loop owns one.
type Simulator struct {
	catalog *catalog.Catalog
	memory  *Memory // nil when repeat users are not modeled
	params  Params
	rng     *rand.Rand
	factory *Factory
}

// New creates a Simulator. memory may be nil; then every session belongs
// to a fresh user and no abandonment is recorded.
func New(cat *catalog.Catalog, memory *Memory, params Params, rng *rand.Rand) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulator params: %w", err)
	}
	if cat.Len() == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return &Simulator{
		catalog: cat,
		memory:  memory,
		params:  params,
		rng:     rng,
		factory: NewFactory(rng, params.ProbOnSale, params.MaxQuantity),
	}, nil
}

// Session simulates one user journey starting at start and returns its
// events in emission order. A session always produces at least one event.
func (s *Simulator) Session(start time.Time) []event.Event {
	sessionID := "session-" + uuid.NewString()
	source := s.params.Sources[s.rng.Intn(len(s.params.Sources))]
	userID := fmt.Sprintf("user-%d", 1+s.rng.Intn(s.params.UserPool))

	// A returning user may come back for a previously abandoned product,
	// either buying it outright or browsing again.
	if s.memory != nil && s.memory.Len() > 0 && s.rng.Float64() < s.params.ProbRepeatUser {
		if entry, ok := s.memory.Sample(s.rng); ok {
			userID = entry.UserID
			if s.rng.Float64() < s.params.ProbRepeatPurchase {
				return []event.Event{
					s.factory.New(sessionID, userID, source, event.TypePurchase, entry.Product, start),
				}
			}
		}
	}

	var events []event.Event
	var cart []catalog.Product

	views := s.params.MinViews + s.rng.Intn(s.params.MaxViews-s.params.MinViews+1)
	viewTS := start
	for i := 0; i < views; i++ {
		p := s.catalog.Sample(s.rng)
		if i > 0 && s.params.Stagger {
			// Views advance by a fresh 10-60s increment each, so view
			// timestamps are non-decreasing within the session.
			viewTS = viewTS.Add(s.randDuration(s.params.ViewStepMin, s.params.ViewStepMax))
		}
		ts := viewTS
		events = append(events, s.factory.New(sessionID, userID, source, event.TypeProductView, p, ts))

		if s.rng.Float64() < s.params.ProbAddToCart {
			switch {
			case p.InStock:
				cart = append(cart, p)
				events = append(events, s.factory.New(sessionID, userID, source, event.TypeAddToCart, p, ts))
			case s.params.OutOfStockEvents:
				events = append(events, s.factory.New(sessionID, userID, source, event.TypeAddToCartFailure, p, ts))
			}
		}
	}

	// An abandoned (or even purchased-from) cart seeds a future repeat
	// session, whether or not checkout happens below.
	if s.memory != nil && len(cart) > 0 {
		s.memory.Add(Entry{UserID: userID, Product: cart[s.rng.Intn(len(cart))]})
	}

	var purchased []catalog.Product
	if len(cart) > 0 && s.rng.Float64() < s.params.ProbCheckout {
		count := 1 + s.rng.Intn(len(cart))
		for _, idx := range s.rng.Perm(len(cart))[:count] {
			item := cart[idx]
			ts := start
			if s.params.Stagger {
				ts = start.Add(s.randDuration(s.params.PurchaseDelay[0], s.params.PurchaseDelay[1]))
			}
			purchased = append(purchased, item)
			events = append(events, s.factory.New(sessionID, userID, source, event.TypePurchase, item, ts))
		}
	}

	if len(purchased) > 0 && s.params.ProbReview > 0 && s.rng.Float64() < s.params.ProbReview {
		item := purchased[s.rng.Intn(len(purchased))]
		events = append(events, s.factory.New(sessionID, userID, source, event.TypeSubmitReview, item, start))
	}

	for _, item := range purchased {
		if s.rng.Float64() < s.params.ProbReturnItem {
			ts := start
			if s.params.Stagger {
				ts = start.Add(s.randDuration(s.params.ReturnDelay[0], s.params.ReturnDelay[1]))
			}
			events = append(events, s.factory.New(sessionID, userID, source, event.TypeReturnItem, item, ts))
		}
	}

	return events
}

// randDuration returns a uniform duration in [min, max].
func (s *Simulator) randDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(s.rng.Int63n(int64(max-min)+1))
}
