package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func fixtureCatalog() []Product {
	return []Product{
		{ID: 1, Name: "Bamboo Cutlery Set", Price: decimal.NewFromInt(899), Description: "Reusable cutlery for zero-waste lunches"},
		{ID: 2, Name: "Solar-Powered Phone Charger", Price: decimal.NewFromInt(2499), Description: "Charges anywhere the sun shines"},
		{ID: 3, Name: "Organic Cotton Tote", Price: decimal.NewFromInt(450), Description: "Sturdy tote made from organic cotton"},
		{ID: 4, Name: "Beeswax Food Wraps", Price: decimal.NewFromInt(1250), Description: "A bamboo-free cling film alternative"},
	}
}

func TestSearchMatchesNameAndDescription(t *testing.T) {
	t.Parallel()
	products := fixtureCatalog()

	got := Search(products, "bamboo")
	if len(got) != 2 {
		t.Fatalf("expected 2 bamboo matches, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 4 {
		t.Fatalf("unexpected matches %+v", got)
	}

	if got := Search(products, "BAMBOO CUTLERY"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("search should be case-insensitive, got %+v", got)
	}

	if got := Search(products, ""); len(got) != len(products) {
		t.Fatalf("empty query should pass all products, got %d", len(got))
	}

	if got := Search(products, "hydraulic press"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestSearchScenarioOnlyBambooCutlery(t *testing.T) {
	t.Parallel()

	products := []Product{
		{ID: 1, Name: "Bamboo Cutlery Set", Price: decimal.NewFromInt(899), Description: "Reusable cutlery"},
		{ID: 2, Name: "Solar-Powered Phone Charger", Price: decimal.NewFromInt(2499), Description: "Portable charger"},
	}

	got := Search(products, "bamboo")
	if len(got) != 1 || got[0].Name != "Bamboo Cutlery Set" {
		t.Fatalf("expected only the cutlery set, got %+v", got)
	}
}

func TestFilterByPriceRangeInclusiveBounds(t *testing.T) {
	t.Parallel()
	products := fixtureCatalog()

	min := decimal.NewFromInt(899)
	max := decimal.NewFromInt(1250)
	got := FilterByPriceRange(products, &min, &max)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
		t.Fatalf("bounds must be inclusive, got %+v", got)
	}

	if got := FilterByPriceRange(products, nil, nil); len(got) != len(products) {
		t.Fatalf("absent bounds mean unbounded, got %d", len(got))
	}

	onlyMin := decimal.NewFromInt(1000)
	if got := FilterByPriceRange(products, &onlyMin, nil); len(got) != 2 {
		t.Fatalf("expected 2 products at or above 1000, got %+v", got)
	}
}

func TestSortByCriteria(t *testing.T) {
	t.Parallel()
	products := fixtureCatalog()

	asc := SortBy(products, SortPriceAsc)
	if asc[0].ID != 3 || asc[len(asc)-1].ID != 2 {
		t.Fatalf("unexpected price-asc order %+v", asc)
	}

	desc := SortBy(products, SortPriceDesc)
	if desc[0].ID != 2 || desc[len(desc)-1].ID != 3 {
		t.Fatalf("unexpected price-desc order %+v", desc)
	}

	name := SortBy(products, SortNameAsc)
	if name[0].Name != "Bamboo Cutlery Set" || name[len(name)-1].Name != "Solar-Powered Phone Charger" {
		t.Fatalf("unexpected name-asc order %+v", name)
	}

	unsorted := SortBy(products, SortUnsorted)
	for i := range products {
		if unsorted[i].ID != products[i].ID {
			t.Fatalf("unsorted must keep original order, got %+v", unsorted)
		}
	}

	// SortBy must not mutate its input.
	if products[0].ID != 1 {
		t.Fatalf("input slice was mutated: %+v", products)
	}
}

func TestBrowseComposesStages(t *testing.T) {
	t.Parallel()
	products := fixtureCatalog()

	min := decimal.NewFromInt(1000)
	max := decimal.NewFromInt(3000)
	got := Browse(products, BrowseQuery{
		MinPrice: &min,
		MaxPrice: &max,
		Sort:     SortPriceDesc,
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 in-range products, got %+v", got)
	}
	if got[0].ID != 2 || got[1].ID != 4 {
		t.Fatalf("expected descending price order within range, got %+v", got)
	}

	// Search narrows before the price filter runs.
	got = Browse(products, BrowseQuery{Search: "bamboo", MinPrice: &min, MaxPrice: &max, Sort: SortPriceDesc})
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("expected only the wraps after composed stages, got %+v", got)
	}
}

func TestParseSortCriterion(t *testing.T) {
	t.Parallel()

	if ParseSortCriterion("price-desc") != SortPriceDesc {
		t.Fatal("known criterion should parse")
	}
	if ParseSortCriterion("by-vibes") != SortUnsorted {
		t.Fatal("unknown criterion should fall back to original order")
	}
	if ParseSortCriterion("  name-asc  ") != SortNameAsc {
		t.Fatal("criterion should be trimmed")
	}
}
