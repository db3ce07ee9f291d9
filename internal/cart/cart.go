// Package cart owns the per-user shopping cart: variation-keyed line items,
// quantity stepping, badge counts, totals and the checkout flow.
package cart

import "fmt"

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// noVariation stands in for a size or color that was never picked, e.g. an
// add from the listing page rather than the detail page.
const noVariation = "N/A"

// Line is one cart row for a specific product variation. Title, price and
// image are a snapshot taken when the line was created; they are not
// re-synced if the catalog changes later.
type Line struct {
	ProductID      int64  `json:"product_id"`
	VariationKey   string `json:"variation_key"`
	Title          string `json:"title"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Image          string `json:"image"`
	Size           string `json:"size"`
	Color          string `json:"color"`
	Quantity       int    `json:"quantity"`
}

// VariationKey builds the composite key that distinguishes otherwise equal
// products: two lines differing in product, size or color are distinct.
func VariationKey(productID int64, size, color string) string {
	if size == "" {
		size = noVariation
	}
	if color == "" {
		color = noVariation
	}
	return fmt.Sprintf("%d-%s-%s", productID, size, color)
}

// Badge is the cart badge value: the sum of quantities across all lines,
// not the number of distinct lines.
func Badge(lines []Line) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

func findLine(lines []Line, key string) int {
	for i := range lines {
		if lines[i].VariationKey == key {
			return i
		}
	}
	return -1
}
