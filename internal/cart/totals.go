package cart

import "fmt"

// ShippingCents is the flat shipping fee applied to any non-empty cart.
const ShippingCents int64 = 500

// Totals carries the cart summary amounts in cents alongside their display
// strings.
type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TotalCents    int64 `json:"total_cents"`

	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

// ComputeTotals derives subtotal, shipping and grand total from the lines.
// An empty cart yields nil so the summary payload omits the totals block
// instead of showing zeros.
func ComputeTotals(lines []Line) *Totals {
	if len(lines) == 0 {
		return nil
	}

	var subtotal int64
	for _, l := range lines {
		subtotal += l.UnitPriceCents * int64(l.Quantity)
	}

	total := subtotal + ShippingCents
	return &Totals{
		SubtotalCents: subtotal,
		ShippingCents: ShippingCents,
		TotalCents:    total,
		Subtotal:      FormatCents(subtotal),
		Shipping:      FormatCents(ShippingCents),
		Total:         FormatCents(total),
	}
}

// FormatCents renders an amount of cents as "$12.34".
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
