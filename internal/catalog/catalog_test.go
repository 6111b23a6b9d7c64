package catalog

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Valid(t *testing.T) {
	content := `product_id,product_name,category,regular_price,avg_rating,review_count,in_stock
SKU-LAP-0001,Acme Pro 900,Laptops,1299.99,4.5,321,true
SKU-HEA-0002,Acme SoundCore 200,Headphones,59.90,3.9,87,false
`
	cat := loadFromString(t, content)

	if cat.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", cat.Len())
	}
	p := cat.Products()[0]
	if p.ID != "SKU-LAP-0001" {
		t.Errorf("expected id SKU-LAP-0001, got %q", p.ID)
	}
	if p.RegularPrice != 1299.99 {
		t.Errorf("expected price 1299.99, got %v", p.RegularPrice)
	}
	if p.ReviewCount != 321 {
		t.Errorf("expected 321 reviews, got %d", p.ReviewCount)
	}
	if !p.InStock {
		t.Error("expected first product in stock")
	}
	if cat.Products()[1].InStock {
		t.Error("expected second product out of stock")
	}
	if !cat.Contains("SKU-HEA-0002") {
		t.Error("expected catalog to contain SKU-HEA-0002")
	}
	if cat.Contains("SKU-MISSING") {
		t.Error("did not expect catalog to contain SKU-MISSING")
	}
}

func TestLoad_PythonStyleBooleans(t *testing.T) {
	// Catalogs written by the original tooling spell booleans "True"/"False".
	content := `product_id,product_name,category,regular_price,avg_rating,review_count,in_stock
SKU-TVS-0001,Acme Vision,TVs,499.00,4.1,12,True
SKU-TVS-0002,Acme Vision II,TVs,599.00,4.2,3,False
`
	cat := loadFromString(t, content)
	if !cat.Products()[0].InStock {
		t.Error(`expected "True" to parse as in stock`)
	}
	if cat.Products()[1].InStock {
		t.Error(`expected "False" to parse as out of stock`)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load("/nonexistent/products.csv"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	content := `product_id,product_name,category,regular_price
SKU-1,Thing,Laptops,10.00
`
	tmp := writeTempCatalog(t, content)
	if _, err := Load(tmp); err == nil {
		t.Error("expected error for missing columns")
	}
}

func TestLoad_MalformedRow(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"bad price", `SKU-1,Thing,Laptops,not-a-price,4.0,10,true`},
		{"bad rating", `SKU-1,Thing,Laptops,10.00,abc,10,true`},
		{"bad reviews", `SKU-1,Thing,Laptops,10.00,4.0,many,true`},
		{"bad stock flag", `SKU-1,Thing,Laptops,10.00,4.0,10,maybe`},
	}
	header := "product_id,product_name,category,regular_price,avg_rating,review_count,in_stock\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := writeTempCatalog(t, header+tt.row+"\n")
			if _, err := Load(tmp); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	tmp := writeTempCatalog(t, "product_id,product_name,category,regular_price,avg_rating,review_count,in_stock\n")
	if _, err := Load(tmp); err == nil {
		t.Error("expected error for catalog with no products")
	}
}

func TestSample_IsFromCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	products := Generate(50, rng)
	cat := New(products)

	for i := 0; i < 200; i++ {
		p := cat.Sample(rng)
		if !cat.Contains(p.ID) {
			t.Fatalf("sampled product %q not in catalog", p.ID)
		}
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := Generate(25, rng)

	path := filepath.Join(t.TempDir(), "products.csv")
	if err := WriteCSV(path, products); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("loading written catalog: %v", err)
	}
	if cat.Len() != len(products) {
		t.Fatalf("expected %d products, got %d", len(products), cat.Len())
	}
	for i, p := range cat.Products() {
		want := products[i]
		if p.ID != want.ID || p.Name != want.Name || p.Category != want.Category {
			t.Errorf("product %d changed identity: %+v != %+v", i, p, want)
		}
		if p.RegularPrice != want.RegularPrice || p.InStock != want.InStock {
			t.Errorf("product %d changed attributes: %+v != %+v", i, p, want)
		}
	}
}

// Helpers

func loadFromString(t *testing.T, content string) *Catalog {
	t.Helper()
	cat, err := Load(writeTempCatalog(t, content))
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return cat
}

func writeTempCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp catalog: %v", err)
	}
	return path
}
