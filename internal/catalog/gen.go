package catalog

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// priceRange bounds the regular price of a category.
type priceRange struct {
	min, max float64
}

// categories maps each product category to a plausible price range.
var categories = map[string]priceRange{
	"Laptops":                         {600, 3500},
	"Desktop Computers":               {800, 4000},
	"Monitors":                        {180, 2000},
	"PC Gaming Accessories":           {40, 500},
	"Printers & Scanners":             {80, 800},
	"Smartphones":                     {300, 1800},
	"Tablets":                         {200, 1500},
	"Smartwatches & Fitness Trackers": {150, 900},
	"Headphones":                      {30, 600},
	"Portable Bluetooth Speakers":     {40, 450},
	"TVs":                             {250, 6000},
	"Sound Bars & Home Theater Audio": {150, 1500},
	"Streaming Media Players":         {30, 200},
	"Digital Cameras":                 {400, 4500},
	"Drones":                          {300, 2500},
	"Video Game Consoles & VR":        {200, 800},
	"Smart Home & Security":           {30, 700},
	"Vacuums & Floor Care":            {100, 1000},
}

// tier is a product performance archetype: what share of the catalog it
// covers and which review-count and rating ranges it draws from.
type tier struct {
	name      string
	share     float64
	reviewMin int
	reviewMax int
	ratingMin float64
	ratingMax float64
}

var tiers = []tier{
	{"bestseller", 0.10, 1000, 7500, 4.3, 4.9},
	{"bad_product", 0.05, 800, 4000, 2.5, 3.5},
	{"average", 0.65, 50, 800, 3.6, 4.6},
	{"new_or_niche", 0.20, 0, 50, 3.0, 4.9},
}

const inStockRate = 0.90

var modelSuffixes = []string{"Pro", "Max", "Ultra", "SE", "Series X", "G"}

// Generate produces n synthetic products with a realistic mix of
// categories, price points and performance tiers.
func Generate(n int, rng *rand.Rand) []Product {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	// Map iteration order is random; sort so a seeded rng stays reproducible.
	sort.Strings(names)

	faker := gofakeit.New(rng.Int63())

	// Pre-assign tiers so the catalog matches the configured shares, then
	// shuffle so tiers are not clustered.
	assigned := make([]tier, 0, n)
	for _, t := range tiers {
		count := int(float64(n) * t.share)
		for i := 0; i < count; i++ {
			assigned = append(assigned, t)
		}
	}
	for len(assigned) < n {
		assigned = append(assigned, tiers[2]) // fill rounding gaps with "average"
	}
	rng.Shuffle(len(assigned), func(i, j int) {
		assigned[i], assigned[j] = assigned[j], assigned[i]
	})

	products := make([]Product, 0, n)
	for i := 0; i < n; i++ {
		t := assigned[i]
		category := names[rng.Intn(len(names))]
		pr := categories[category]

		products = append(products, Product{
			ID:           productID(category, rng),
			Name:         productName(category, faker, rng),
			Category:     category,
			RegularPrice: round2(pr.min + rng.Float64()*(pr.max-pr.min)),
			AvgRating:    round1(t.ratingMin + rng.Float64()*(t.ratingMax-t.ratingMin)),
			ReviewCount:  t.reviewMin + rng.Intn(t.reviewMax-t.reviewMin+1),
			InStock:      rng.Float64() < inStockRate,
		})
	}
	return products
}

// productID builds a SKU-style id like "SKU-LAP-3F9A".
func productID(category string, rng *rand.Rand) string {
	prefix := strings.ToUpper(category[:3])
	const hex = "0123456789ABCDEF"
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = hex[rng.Intn(len(hex))]
	}
	return fmt.Sprintf("SKU-%s-%s", prefix, suffix)
}

// productName builds a plausible product name for the category.
func productName(category string, faker *gofakeit.Faker, rng *rand.Rand) string {
	brand := strings.Fields(faker.Company())[0]
	suffix := modelSuffixes[rng.Intn(len(modelSuffixes))]
	number := 100 + rng.Intn(8901)

	switch category {
	case "Laptops", "Smartphones", "Desktop Computers", "Tablets":
		return fmt.Sprintf("%s %s %d", brand, suffix, number)
	case "Headphones":
		return fmt.Sprintf("%s SoundCore %d", brand, number)
	case "TVs":
		return fmt.Sprintf("%s Vision-Max %d-inch 4K TV", brand, 40+rng.Intn(46))
	default:
		kinds := []string{"System", "Kit", "Device"}
		return fmt.Sprintf("%s %s %s", brand, suffix, kinds[rng.Intn(len(kinds))])
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
