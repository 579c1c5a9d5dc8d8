package catalog

import "testing"

func TestSuggestProductsRequiresTwoCharacters(t *testing.T) {
	if got := SuggestProducts(testProducts(), "m", 5); got != nil {
		t.Fatalf("one-character query must return nothing, got %d", len(got))
	}
	if got := SuggestProducts(testProducts(), "  ", 5); got != nil {
		t.Fatal("whitespace query must return nothing")
	}
}

func TestSuggestProductsLimit(t *testing.T) {
	got := SuggestProducts(testProducts(), "mouse", 1)
	if len(got) != 1 {
		t.Fatalf("expected limit of 1 to apply, got %d", len(got))
	}
}

func TestSuggestProductsLabelIncludesBrand(t *testing.T) {
	got := SuggestProducts(testProducts(), "chair", 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Label != "Office Chair (ErgoMax)" {
		t.Fatalf("unexpected label %q", got[0].Label)
	}
}

func TestSuggestCarsMatchesEngineType(t *testing.T) {
	got := SuggestCars(testCars(), "electric", 10)
	if len(got) != 1 || got[0].ID != "Nissan-Leaf-2019" {
		t.Fatalf("expected the Leaf via engine type, got %v", got)
	}
}

func TestSuggestPropertiesMatchesCounty(t *testing.T) {
	got := SuggestProperties(testProperties(), "nairobi", 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 Nairobi matches, got %d", len(got))
	}
}
