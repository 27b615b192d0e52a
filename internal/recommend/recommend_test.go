package recommend

import (
	"testing"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
)

func TestRecommendEmptyCart(t *testing.T) {
	if got := Recommend(nil); got != nil {
		t.Fatalf("expected nil for empty cart, got %+v", got)
	}
	if got := Recommend([]cart.Line{}); got != nil {
		t.Fatalf("expected nil for zero lines, got %+v", got)
	}
}

func TestRecommendBaseline(t *testing.T) {
	recs := Recommend([]cart.Line{
		{ID: "l1", ProductID: "p1", Category: "books", UnitPrice: 15, Quantity: 1},
	})
	if len(recs) != 1 {
		t.Fatalf("expected only the frequently-bought suggestion, got %+v", recs)
	}
	if recs[0].Kind != KindFrequentlyBoughtTogether || recs[0].ProductID != "p1" {
		t.Fatalf("unexpected suggestion: %+v", recs[0])
	}
	if recs[0].Confidence != 0.85 {
		t.Fatalf("expected confidence 0.85, got %v", recs[0].Confidence)
	}
}

func TestRecommendCrossSellForElectronics(t *testing.T) {
	recs := Recommend([]cart.Line{
		{ID: "l1", ProductID: "p1", Category: "books", UnitPrice: 15, Quantity: 1},
		{ID: "l2", ProductID: "p2", Category: "Audio", UnitPrice: 60, Quantity: 1},
	})
	if len(recs) != 2 {
		t.Fatalf("expected 2 suggestions, got %+v", recs)
	}
	if recs[1].Kind != KindCrossSell {
		t.Fatalf("expected cross-sell second, got %+v", recs[1])
	}
	if recs[1].ProductID != "p2" {
		t.Fatalf("expected cross-sell anchored on electronics line, got %s", recs[1].ProductID)
	}
}

func TestRecommendUpsellAboveMeanPrice(t *testing.T) {
	recs := Recommend([]cart.Line{
		{ID: "l1", ProductID: "p1", Category: "electronics", UnitPrice: 250, Quantity: 1},
		{ID: "l2", ProductID: "p2", Category: "gaming", UnitPrice: 150, Quantity: 1},
	})
	if len(recs) != 3 {
		t.Fatalf("expected all 3 suggestions, got %+v", recs)
	}
	for i, rec := range recs {
		if rec.Priority != i+1 {
			t.Fatalf("expected ascending priority, got %+v", recs)
		}
	}
	upsell := recs[2]
	if upsell.Kind != KindUpsell || upsell.DiscountPct != 10 {
		t.Fatalf("unexpected upsell: %+v", upsell)
	}
}

func TestRecommendNoUpsellAtBoundary(t *testing.T) {
	// Mean exactly at the threshold does not qualify.
	recs := Recommend([]cart.Line{
		{ID: "l1", ProductID: "p1", Category: "books", UnitPrice: 100, Quantity: 1},
	})
	for _, rec := range recs {
		if rec.Kind == KindUpsell {
			t.Fatalf("expected no upsell at mean price 100, got %+v", recs)
		}
	}
}

func TestRecommendIsPure(t *testing.T) {
	lines := []cart.Line{
		{ID: "l1", ProductID: "p1", Category: "electronics", UnitPrice: 250, Quantity: 1},
	}
	first := Recommend(lines)
	second := Recommend(lines)
	if len(first) != len(second) {
		t.Fatalf("expected deterministic output, got %d then %d", len(first), len(second))
	}
	if lines[0].UnitPrice != 250 {
		t.Fatalf("expected input untouched")
	}
}
