package cart

import (
	"context"

	"go.uber.org/zap"

	"Storefront/internal/kv"
)

const (
	cartKeyPrefix = "shoppingCart:"

	// legacyKeyPrefix is the storage namespace an earlier version wrote
	// carts under. It is read once per user and migrated forward.
	legacyKeyPrefix = "cart:"
)

// Store persists one cart per user through the KV adapter. Reads are
// contained: a missing, unreadable or corrupt entry comes back as an empty
// cart. Read-modify-write is not transactional; two concurrent writers for
// the same user can overwrite each other, which matches the single-owner
// usage this store is built for.
type Store struct {
	KV  kv.Store
	Log *zap.Logger
}

func NewStore(kvs kv.Store, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{KV: kvs, Log: log}
}

// Lines returns the user's cart. When the canonical key is absent it tries
// the legacy namespace once, migrating anything found.
func (s *Store) Lines(ctx context.Context, userID string) []Line {
	var lines []Line
	if s.KV.Read(ctx, cartKeyPrefix+userID, &lines) {
		return lines
	}

	if s.KV.Read(ctx, legacyKeyPrefix+userID, &lines) && len(lines) > 0 {
		s.Log.Info("migrating legacy cart", zap.String("user_id", userID))
		if err := s.save(ctx, userID, lines); err == nil {
			_ = s.KV.Delete(ctx, legacyKeyPrefix+userID)
		}
		return lines
	}

	return []Line{}
}

// Add merges the line into the cart. An existing line for the same
// variation key has its quantity incremented without clamping to
// MaxQuantity; only the quantity stepper enforces the cap.
func (s *Store) Add(ctx context.Context, userID string, line Line) ([]Line, error) {
	lines := s.Lines(ctx, userID)

	if i := findLine(lines, line.VariationKey); i >= 0 {
		lines[i].Quantity += line.Quantity
	} else {
		lines = append(lines, line)
	}

	if err := s.save(ctx, userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Step adjusts a line's quantity by delta (+1 or -1). A step that would
// leave [MinQuantity, MaxQuantity] is a no-op, as is a key with no line.
func (s *Store) Step(ctx context.Context, userID, key string, delta int) ([]Line, error) {
	lines := s.Lines(ctx, userID)

	i := findLine(lines, key)
	if i < 0 {
		return lines, nil
	}

	next := lines[i].Quantity + delta
	if next < MinQuantity || next > MaxQuantity {
		return lines, nil
	}

	lines[i].Quantity = next
	if err := s.save(ctx, userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove deletes the line with the given variation key. Unknown keys leave
// the cart unchanged.
func (s *Store) Remove(ctx context.Context, userID, key string) ([]Line, error) {
	lines := s.Lines(ctx, userID)

	i := findLine(lines, key)
	if i < 0 {
		return lines, nil
	}

	lines = append(lines[:i], lines[i+1:]...)
	if err := s.save(ctx, userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Clear empties the cart. Used only by checkout.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.save(ctx, userID, []Line{})
}

func (s *Store) save(ctx context.Context, userID string, lines []Line) error {
	return s.KV.Write(ctx, cartKeyPrefix+userID, lines)
}
