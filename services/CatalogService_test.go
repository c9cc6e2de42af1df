package services

import (
	"testing"

	"github.com/Doneddie/kampala-closet/entities"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() []entities.Product {
	return []entities.Product{
		{Id: "1", Name: "Red Dress", Description: "A flowing evening dress", Category: "dresses", Price: dec("49.99")},
		{Id: "2", Name: "Blue Top", Category: "tops", Price: dec("19.99")},
		{Id: "3", Name: "Leather Belt", Description: "Classic brown leather", Category: "accessories", Price: dec("15.00")},
		{Id: "4", Name: "Denim Jacket", Description: "Light denim jacket", Category: "outerwear", Price: dec("75.50")},
	}
}

func wideOpen() entities.FilterCriteria {
	return entities.FilterCriteria{
		Category: entities.CategoryAll,
		PriceMin: decimal.Zero,
		PriceMax: dec("1000000"),
	}
}

func ids(prods []entities.Product) []string {
	out := make([]string, 0, len(prods))
	for _, p := range prods {
		out = append(out, p.Id)
	}
	return out
}

func equalIds(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterProductsIdentity(t *testing.T) {
	got := FilterProducts(testCatalog(), wideOpen())
	if !equalIds(ids(got), "1", "2", "3", "4") {
		t.Fatalf("identity filter changed the collection: %v", ids(got))
	}
}

func TestFilterProductsSearch(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"matches name case-insensitive", "DRESS", []string{"1"}},
		{"matches description", "leather", []string{"3"}},
		{"substring anywhere", "jack", []string{"4"}},
		{"no match", "sneakers", []string{}},
		{"empty term matches all", "", []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := wideOpen()
			c.Search = tt.term
			got := ids(FilterProducts(testCatalog(), c))
			if !equalIds(got, tt.want...) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterProductsMissingDescription(t *testing.T) {
	// "Blue Top" has no description; the term only fails, it never panics
	c := wideOpen()
	c.Search = "cotton"
	got := FilterProducts(testCatalog(), c)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestFilterProductsCategory(t *testing.T) {
	c := wideOpen()
	c.Category = "tops"
	got := ids(FilterProducts(testCatalog(), c))
	if !equalIds(got, "2") {
		t.Fatalf("expected [2], got %v", got)
	}

	// exact, case-sensitive match only
	c.Category = "Tops"
	if got := FilterProducts(testCatalog(), c); len(got) != 0 {
		t.Fatalf("category match must be case-sensitive, got %v", ids(got))
	}
}

func TestFilterProductsPriceRange(t *testing.T) {
	t.Run("bounds are inclusive", func(t *testing.T) {
		c := wideOpen()
		c.PriceMin = dec("19.99")
		c.PriceMax = dec("49.99")
		got := ids(FilterProducts(testCatalog(), c))
		if !equalIds(got, "1", "2") {
			t.Fatalf("expected [1 2], got %v", got)
		}
	})
	t.Run("range outside all prices", func(t *testing.T) {
		c := wideOpen()
		c.PriceMin = dec("500")
		c.PriceMax = dec("900")
		if got := FilterProducts(testCatalog(), c); len(got) != 0 {
			t.Fatalf("expected empty, got %v", ids(got))
		}
	})
	t.Run("inverted range yields empty, no error", func(t *testing.T) {
		c := wideOpen()
		c.PriceMin = dec("100")
		c.PriceMax = dec("10")
		if got := FilterProducts(testCatalog(), c); len(got) != 0 {
			t.Fatalf("expected empty, got %v", ids(got))
		}
	})
}

func TestFilterProductsPreservesOrder(t *testing.T) {
	c := wideOpen()
	c.PriceMax = dec("20")
	got := ids(FilterProducts(testCatalog(), c))
	if !equalIds(got, "2", "3") {
		t.Fatalf("expected stable subsequence [2 3], got %v", got)
	}
}

func TestFilterProductsEmptyCollection(t *testing.T) {
	if got := FilterProducts(nil, wideOpen()); len(got) != 0 {
		t.Fatalf("expected empty, got %v", ids(got))
	}
}

func TestFilterProductsScenario(t *testing.T) {
	products := []entities.Product{
		{Id: "1", Name: "Red Dress", Category: "dresses", Price: dec("49.99")},
		{Id: "2", Name: "Blue Top", Category: "tops", Price: dec("19.99")},
	}
	c := entities.FilterCriteria{
		Search:   "dress",
		Category: entities.CategoryAll,
		PriceMin: decimal.Zero,
		PriceMax: dec("100"),
	}
	got := ids(FilterProducts(products, c))
	if !equalIds(got, "1") {
		t.Fatalf("expected [1], got %v", got)
	}
}

func TestCategoryFacets(t *testing.T) {
	facets := CategoryFacets(testCatalog())
	counts := map[string]int{}
	for _, f := range facets {
		counts[f.Id] = f.Count
	}
	if counts[entities.CategoryAll] != 4 {
		t.Fatalf("all facet should count the full collection, got %d", counts[entities.CategoryAll])
	}
	if counts["dresses"] != 1 || counts["tops"] != 1 || counts["accessories"] != 1 || counts["outerwear"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if counts["shoes"] != 0 || counts["bottoms"] != 0 {
		t.Fatalf("empty categories must count zero: %v", counts)
	}

	sum := 0
	for _, f := range facets {
		if f.Id != entities.CategoryAll {
			sum = sum + f.Count
		}
	}
	if sum != 4 {
		t.Fatalf("per-category counts should sum to the collection size, got %d", sum)
	}
}

func TestCategoryFacetsEmpty(t *testing.T) {
	for _, f := range CategoryFacets(nil) {
		if f.Count != 0 {
			t.Fatalf("facet %s should be zero on an empty catalog, got %d", f.Id, f.Count)
		}
	}
}
