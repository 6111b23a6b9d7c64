// Package catalog provides the product catalog: loading it from CSV,
// sampling products for simulated sessions, and generating synthetic
// catalogs for new environments.
package catalog

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

// Product is one catalog row. Products are immutable once loaded and
// shared read-only across all simulated sessions.
type Product struct {
	ID           string
	Name         string
	Category     string
	RegularPrice float64
	AvgRating    float64
	ReviewCount  int
	InStock      bool
}

// csvHeader is the canonical column order of a catalog file.
var csvHeader = []string{
	"product_id", "product_name", "category",
	"regular_price", "avg_rating", "review_count", "in_stock",
}

// Catalog is a loaded, read-only product catalog.
type Catalog struct {
	products []Product
	ids      map[string]struct{}
}

// New builds a catalog from a product slice.
func New(products []Product) *Catalog {
	ids := make(map[string]struct{}, len(products))
	for _, p := range products {
		ids[p.ID] = struct{}{}
	}
	return &Catalog{products: products, ids: ids}
}

// Load reads a catalog CSV file. The first row must be the header.
// Any missing file, unknown column, or malformed row is an error; the
// caller is expected to abort the run.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("catalog %s must have a header row and at least one product", path)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}
	for _, name := range csvHeader {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("catalog %s is missing column %q", path, name)
		}
	}

	products := make([]Product, 0, len(records)-1)
	for i, rec := range records[1:] {
		p, err := parseRow(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("catalog %s row %d: %w", path, i+2, err)
		}
		products = append(products, p)
	}

	return New(products), nil
}

func parseRow(cols map[string]int, rec []string) (Product, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(rec) {
			return ""
		}
		return rec[idx]
	}

	price, err := strconv.ParseFloat(field("regular_price"), 64)
	if err != nil {
		return Product{}, fmt.Errorf("bad regular_price %q", field("regular_price"))
	}
	rating, err := strconv.ParseFloat(field("avg_rating"), 64)
	if err != nil {
		return Product{}, fmt.Errorf("bad avg_rating %q", field("avg_rating"))
	}
	reviews, err := strconv.Atoi(field("review_count"))
	if err != nil {
		return Product{}, fmt.Errorf("bad review_count %q", field("review_count"))
	}
	// ParseBool accepts both "true" and the "True" spelling older catalog
	// files use.
	inStock, err := strconv.ParseBool(field("in_stock"))
	if err != nil {
		return Product{}, fmt.Errorf("bad in_stock %q", field("in_stock"))
	}

	return Product{
		ID:           field("product_id"),
		Name:         field("product_name"),
		Category:     field("category"),
		RegularPrice: price,
		AvgRating:    rating,
		ReviewCount:  reviews,
		InStock:      inStock,
	}, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns the underlying product slice. Callers must not modify it.
func (c *Catalog) Products() []Product { return c.products }

// Contains reports whether a product id is part of the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.ids[id]
	return ok
}

// Sample returns a uniformly random product.
func (c *Catalog) Sample(rng *rand.Rand) Product {
	return c.products[rng.Intn(len(c.products))]
}

// WriteCSV writes products to a catalog CSV file.
func WriteCSV(path string, products []Product) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating catalog file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing catalog header: %w", err)
	}
	for _, p := range products {
		rec := []string{
			p.ID, p.Name, p.Category,
			strconv.FormatFloat(p.RegularPrice, 'f', 2, 64),
			strconv.FormatFloat(p.AvgRating, 'f', 1, 64),
			strconv.Itoa(p.ReviewCount),
			strconv.FormatBool(p.InStock),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing catalog row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing catalog file: %w", err)
	}
	return nil
}
