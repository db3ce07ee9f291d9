package cart

import "testing"

func TestComputeTotals(t *testing.T) {
	lines := []Line{
		{UnitPriceCents: 999, Quantity: 2},
		{UnitPriceCents: 2500, Quantity: 1},
	}

	totals := ComputeTotals(lines)
	if totals == nil {
		t.Fatalf("totals nil for non-empty cart")
	}

	if totals.SubtotalCents != 4498 {
		t.Fatalf("subtotal=%d, want 4498", totals.SubtotalCents)
	}
	if totals.ShippingCents != 500 {
		t.Fatalf("shipping=%d, want 500", totals.ShippingCents)
	}
	if totals.TotalCents != 4998 {
		t.Fatalf("total=%d, want 4998", totals.TotalCents)
	}

	if totals.Subtotal != "$44.98" || totals.Shipping != "$5.00" || totals.Total != "$49.98" {
		t.Fatalf("rendered totals: %q %q %q", totals.Subtotal, totals.Shipping, totals.Total)
	}
}

func TestComputeTotals_EmptyCartIsHidden(t *testing.T) {
	if got := ComputeTotals(nil); got != nil {
		t.Fatalf("expected nil totals, got %+v", got)
	}
	if got := ComputeTotals([]Line{}); got != nil {
		t.Fatalf("expected nil totals, got %+v", got)
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{500, "$5.00"},
		{999, "$9.99"},
		{123456, "$1234.56"},
	}
	for _, c := range cases {
		if got := FormatCents(c.cents); got != c.want {
			t.Errorf("FormatCents(%d)=%q, want %q", c.cents, got, c.want)
		}
	}
}
