package catalog

// Variations are the selectable options on the product detail view. The
// upstream API carries no variation data, so every product shares this
// fixed set.
type Variations struct {
	Sizes  []string      `json:"sizes"`
	Colors []ColorOption `json:"colors"`
}

type ColorOption struct {
	Name      string `json:"name"`
	Hex       string `json:"hex"`
	Available bool   `json:"available"`
}

func DefaultVariations() Variations {
	return Variations{
		Sizes: []string{"S", "M", "L", "XL"},
		Colors: []ColorOption{
			{Name: "Red", Hex: "#E53935", Available: true},
			{Name: "Blue", Hex: "#1E88E5", Available: true},
			{Name: "Green", Hex: "#4CAF50", Available: false},
			{Name: "Black", Hex: "#333333", Available: true},
		},
	}
}
