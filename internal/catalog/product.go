package catalog

// Product mirrors the upstream store API document shape.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int64   `json:"count"`
}

// Categories returns the distinct category set in order of first appearance.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, 8)
	out := make([]string, 0, 8)

	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// FilterByCategory keeps products in the given category, preserving order.
// An empty category (the "all" selection) returns the input unchanged.
func FilterByCategory(products []Product, category string) []Product {
	if category == "" {
		return products
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
