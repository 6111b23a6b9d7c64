package sim

import (
	"fmt"
	"time"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
)

// Default behavior probabilities, shared by both generator variants.
const (
	DefaultProbAddToCart      = 0.40
	DefaultProbCheckout       = 0.30
	DefaultProbReturnItem     = 0.08
	DefaultProbRepeatUser     = 0.25
	DefaultProbRepeatPurchase = 0.50
	DefaultProbOnSale         = 0.25
	DefaultProbReview         = 0.25
)

// Params controls a Simulator. The backfill and streaming variants differ
// only in parameter values, never in code paths: out-of-stock handling,
// quantity range, and timestamp staggering are all switches here.
type Params struct {
	ProbAddToCart      float64
	ProbCheckout       float64
	ProbReturnItem     float64
	ProbRepeatUser     float64
	ProbRepeatPurchase float64
	ProbOnSale         float64
	ProbReview         float64

	// MinViews..MaxViews product views per browsing session.
	MinViews int
	MaxViews int

	// MaxQuantity bounds acquisition quantities: U[1, MaxQuantity].
	MaxQuantity int

	// UserPool is the number of distinct new-user identities.
	UserPool int

	Sources []string

	// OutOfStockEvents emits an explicit add_to_cart_failure for
	// out-of-stock cart attempts instead of silently dropping them.
	OutOfStockEvents bool

	// Stagger offsets event timestamps from the session start; when off,
	// every event carries the trigger timestamp.
	Stagger       bool
	ViewStepMin   time.Duration
	ViewStepMax   time.Duration
	PurchaseDelay [2]time.Duration
	ReturnDelay   [2]time.Duration
}

// BackfillParams returns the historical-generation defaults: staggered
// timestamps, quantities up to 3, silent out-of-stock drops, no reviews.
func BackfillParams() Params {
	return Params{
		ProbAddToCart:      DefaultProbAddToCart,
		ProbCheckout:       DefaultProbCheckout,
		ProbReturnItem:     DefaultProbReturnItem,
		ProbOnSale:         DefaultProbOnSale,
		MinViews:           1,
		MaxViews:           10,
		MaxQuantity:        3,
		UserPool:           250,
		Sources:            event.Sources,
		OutOfStockEvents:   false,
		Stagger:            true,
		ViewStepMin:        10 * time.Second,
		ViewStepMax:        60 * time.Second,
		PurchaseDelay:      [2]time.Duration{5 * time.Minute, 15 * time.Minute},
		ReturnDelay:        [2]time.Duration{24 * time.Hour, 5 * 24 * time.Hour},
	}
}

// StreamParams returns the live-stream defaults: trigger timestamps,
// quantity fixed to 1, explicit out-of-stock failures, repeat users and
// reviews enabled.
func StreamParams() Params {
	return Params{
		ProbAddToCart:      DefaultProbAddToCart,
		ProbCheckout:       DefaultProbCheckout,
		ProbReturnItem:     DefaultProbReturnItem,
		ProbRepeatUser:     DefaultProbRepeatUser,
		ProbRepeatPurchase: DefaultProbRepeatPurchase,
		ProbOnSale:         DefaultProbOnSale,
		ProbReview:         DefaultProbReview,
		MinViews:           1,
		MaxViews:           10,
		MaxQuantity:        1,
		UserPool:           500,
		Sources:            event.Sources,
		OutOfStockEvents:   true,
		Stagger:            false,
	}
}

// Validate checks that the parameter set is internally consistent.
func (p Params) Validate() error {
	probs := map[string]float64{
		"add_to_cart":     p.ProbAddToCart,
		"checkout":        p.ProbCheckout,
		"return_item":     p.ProbReturnItem,
		"repeat_user":     p.ProbRepeatUser,
		"repeat_purchase": p.ProbRepeatPurchase,
		"on_sale":         p.ProbOnSale,
		"review":          p.ProbReview,
	}
	for name, v := range probs {
		if v < 0 || v > 1 {
			return fmt.Errorf("probability %s must be in [0, 1], got %v", name, v)
		}
	}
	if p.MinViews < 1 || p.MaxViews < p.MinViews {
		return fmt.Errorf("view range [%d, %d] is invalid", p.MinViews, p.MaxViews)
	}
	if p.MaxQuantity < 1 {
		return fmt.Errorf("max quantity must be >= 1, got %d", p.MaxQuantity)
	}
	if p.UserPool < 1 {
		return fmt.Errorf("user pool must be >= 1, got %d", p.UserPool)
	}
	if len(p.Sources) == 0 {
		return fmt.Errorf("at least one traffic source is required")
	}
	return nil
}
