package recommend

import (
	"sort"
	"strings"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cart"
)

// Kind tags a recommendation variant.
type Kind string

const (
	KindFrequentlyBoughtTogether Kind = "frequently_bought_together"
	KindCrossSell                Kind = "cross_sell"
	KindUpsell                   Kind = "upsell"
)

// Recommendation is ephemeral: produced fresh per call, never persisted.
type Recommendation struct {
	Kind        Kind    `json:"kind"`
	ProductID   string  `json:"product_id"`
	Confidence  float64 `json:"confidence"`
	Reason      string  `json:"reason"`
	DiscountPct float64 `json:"discount_pct,omitempty"`
	Priority    int     `json:"priority"`
}

// upsellMeanPrice is the mean unit price above which a premium upgrade
// suggestion is added.
const upsellMeanPrice = 100.0

var electronicsCategories = map[string]struct{}{
	"electronics": {},
	"computers":   {},
	"audio":       {},
	"phones":      {},
	"cameras":     {},
	"gaming":      {},
}

// Recommend ranks suggestions for the given cart lines. Output is ordered
// by ascending priority with ties kept in insertion order. No side effects.
func Recommend(lines []cart.Line) []Recommendation {
	if len(lines) == 0 {
		return nil
	}

	recs := []Recommendation{{
		Kind:       KindFrequentlyBoughtTogether,
		ProductID:  lines[0].ProductID,
		Confidence: 0.85,
		Reason:     "customers who bought these items also bought",
		Priority:   1,
	}}

	if hasElectronics(lines) {
		recs = append(recs, Recommendation{
			Kind:       KindCrossSell,
			ProductID:  firstElectronics(lines).ProductID,
			Confidence: 0.7,
			Reason:     "popular accessories for items in your cart",
			Priority:   2,
		})
	}

	if meanUnitPrice(lines) > upsellMeanPrice {
		recs = append(recs, Recommendation{
			Kind:        KindUpsell,
			ProductID:   lines[0].ProductID,
			Confidence:  0.6,
			Reason:      "premium upgrade available for your selection",
			DiscountPct: 10,
			Priority:    3,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority < recs[j].Priority
	})
	return recs
}

func isElectronics(line cart.Line) bool {
	_, ok := electronicsCategories[strings.ToLower(strings.TrimSpace(line.Category))]
	return ok
}

func hasElectronics(lines []cart.Line) bool {
	for _, line := range lines {
		if isElectronics(line) {
			return true
		}
	}
	return false
}

func firstElectronics(lines []cart.Line) cart.Line {
	for _, line := range lines {
		if isElectronics(line) {
			return line
		}
	}
	return cart.Line{}
}

func meanUnitPrice(lines []cart.Line) float64 {
	var total float64
	for _, line := range lines {
		total += line.UnitPrice
	}
	return total / float64(len(lines))
}
