package cart

import (
	"math"
	"time"
)

// Line is one product line inside a cart, a saved snapshot, or an
// abandonment record. Containers own their lines exclusively; capturing a
// cart copies the slice.
type Line struct {
	ID            string            `json:"id"`
	ProductID     string            `json:"product_id"`
	Name          string            `json:"name"`
	UnitPrice     float64           `json:"unit_price"`
	OriginalPrice *float64          `json:"original_price,omitempty"`
	Quantity      int               `json:"quantity"`
	Variant       map[string]string `json:"variant,omitempty"`
	Category      string            `json:"category,omitempty"`
	Brand         string            `json:"brand,omitempty"`
	Available     bool              `json:"available"`
	AddedAt       time.Time         `json:"added_at"`
}

// TotalValue sums unit price times quantity across lines, rounded to cents.
func TotalValue(lines []Line) float64 {
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return math.Round(total*100) / 100
}

// TotalQuantity sums quantities across lines.
func TotalQuantity(lines []Line) int {
	var total int
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

// Clone deep-copies a line slice so containers never share line instances.
func Clone(lines []Line) []Line {
	if lines == nil {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	for i, line := range lines {
		if line.Variant != nil {
			variant := make(map[string]string, len(line.Variant))
			for k, v := range line.Variant {
				variant[k] = v
			}
			out[i].Variant = variant
		}
		if line.OriginalPrice != nil {
			price := *line.OriginalPrice
			out[i].OriginalPrice = &price
		}
	}
	return out
}
