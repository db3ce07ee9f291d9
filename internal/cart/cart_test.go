package cart

import (
	"context"
	"testing"

	"Storefront/internal/kv"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(kv.NewMemStore(nil), nil)
}

func redShirtM(qty int) Line {
	return Line{
		ProductID:      1,
		VariationKey:   VariationKey(1, "M", "Red"),
		Title:          "Shirt",
		UnitPriceCents: 999,
		Size:           "M",
		Color:          "Red",
		Quantity:       qty,
	}
}

func TestVariationKey(t *testing.T) {
	if got := VariationKey(1, "M", "Red"); got != "1-M-Red" {
		t.Fatalf("key=%q", got)
	}
	if got := VariationKey(7, "", ""); got != "7-N/A-N/A" {
		t.Fatalf("default key=%q", got)
	}
}

func TestAdd_MergesSameVariation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, "u1", redShirtM(1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	lines, err := s.Add(ctx, "u1", redShirtM(1))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("expected single line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("quantity=%d, want 2", lines[0].Quantity)
	}
	if Badge(lines) != 2 {
		t.Fatalf("badge=%d, want 2", Badge(lines))
	}
}

func TestAdd_DistinctVariationsAreDistinctLines(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _ = s.Add(ctx, "u1", redShirtM(1))

	blue := redShirtM(1)
	blue.Color = "Blue"
	blue.VariationKey = VariationKey(1, "M", "Blue")

	lines, err := s.Add(ctx, "u1", blue)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}

func TestAdd_MergeDoesNotClampToMax(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _ = s.Add(ctx, "u1", redShirtM(8))
	lines, err := s.Add(ctx, "u1", redShirtM(8))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Merging bypasses the cap; only the stepper enforces it.
	if lines[0].Quantity != 16 {
		t.Fatalf("quantity=%d, want 16", lines[0].Quantity)
	}
}

func TestStep_Bounds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := VariationKey(1, "M", "Red")

	_, _ = s.Add(ctx, "u1", redShirtM(1))

	// Decrement at the floor is a no-op.
	lines, err := s.Step(ctx, "u1", key, -1)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if lines[0].Quantity != MinQuantity {
		t.Fatalf("quantity=%d, want %d", lines[0].Quantity, MinQuantity)
	}

	for i := 0; i < 20; i++ {
		lines, err = s.Step(ctx, "u1", key, 1)
		if err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if lines[0].Quantity != MaxQuantity {
		t.Fatalf("quantity=%d, want %d", lines[0].Quantity, MaxQuantity)
	}
}

func TestStep_UnknownKeyIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _ = s.Add(ctx, "u1", redShirtM(3))
	lines, err := s.Step(ctx, "u1", "999-L-Green", 1)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 3 {
		t.Fatalf("cart changed: %+v", lines)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := VariationKey(1, "M", "Red")

	_, _ = s.Add(ctx, "u1", redShirtM(2))

	lines, err := s.Remove(ctx, "u1", key)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}

	// Removing again leaves the store unchanged.
	lines, err = s.Remove(ctx, "u1", key)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestScenario_AddStepRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := VariationKey(1, "M", "Red")

	lines, _ := s.Add(ctx, "u1", redShirtM(1))
	if Badge(lines) != 1 {
		t.Fatalf("badge=%d, want 1", Badge(lines))
	}

	lines, _ = s.Add(ctx, "u1", redShirtM(1))
	if len(lines) != 1 || lines[0].Quantity != 2 || Badge(lines) != 2 {
		t.Fatalf("after second add: %+v", lines)
	}

	lines, _ = s.Step(ctx, "u1", key, -1)
	if lines[0].Quantity != 1 {
		t.Fatalf("after decrement: quantity=%d", lines[0].Quantity)
	}
	lines, _ = s.Step(ctx, "u1", key, -1)
	if lines[0].Quantity != 1 {
		t.Fatalf("second decrement not a no-op: quantity=%d", lines[0].Quantity)
	}

	lines, _ = s.Remove(ctx, "u1", key)
	if len(lines) != 0 || Badge(lines) != 0 {
		t.Fatalf("after remove: %+v", lines)
	}
	if ComputeTotals(lines) != nil {
		t.Fatalf("expected totals hidden for empty cart")
	}
}

func TestLines_CorruptEntryIsEmptyCart(t *testing.T) {
	kvs := kv.NewMemStore(nil)
	s := NewStore(kvs, nil)
	ctx := context.Background()

	// A string blob does not parse as a line slice.
	if err := kvs.Write(ctx, "shoppingCart:u1", "garbage"); err != nil {
		t.Fatalf("write: %v", err)
	}

	if lines := s.Lines(ctx, "u1"); len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestLines_MigratesLegacyKey(t *testing.T) {
	kvs := kv.NewMemStore(nil)
	s := NewStore(kvs, nil)
	ctx := context.Background()

	legacy := []Line{redShirtM(2)}
	if err := kvs.Write(ctx, "cart:u1", legacy); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := s.Lines(ctx, "u1")
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("migrated cart: %+v", lines)
	}

	// Canonical key now holds the cart; legacy is gone.
	var canonical []Line
	if !kvs.Read(ctx, "shoppingCart:u1", &canonical) || len(canonical) != 1 {
		t.Fatalf("canonical key not written: %+v", canonical)
	}
	var stale []Line
	if kvs.Read(ctx, "cart:u1", &stale) {
		t.Fatalf("legacy key not deleted")
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _ = s.Add(ctx, "u1", redShirtM(1))

	if lines := s.Lines(ctx, "u2"); len(lines) != 0 {
		t.Fatalf("u2 sees u1's cart: %+v", lines)
	}
}
