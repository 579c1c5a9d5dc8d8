package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/imarket-ke/imarket-backend/pkg/logger"
)

// Fixed keys for per-session account state. Carts use the per-shop keys
// from enums.Shop.CartKey.
const (
	KeyUserProfile       = "userProfile"
	KeyUserOrders        = "userOrders"
	KeyUserActivities    = "userActivities"
	KeyUserNotifications = "userNotifications"
	KeyProductReviews    = "newProductReviews"
)

// ErrNotFound is returned when a session has no value under a key.
var ErrNotFound = errors.New("storage: key not found")

// Store persists JSON blobs scoped to a session id. Every value is the
// full serialized state for its key; writers replace, never merge.
type Store interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID, key string) error
	Clear(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
	Close() error
}

// Load reads and decodes the value under key. A missing key returns the
// default; a corrupt value is discarded, logged, and also returns the
// default so a bad blob never wedges a session.
func Load[T any](ctx context.Context, s Store, logg *logger.Logger, sessionID, key string, def T) (T, error) {
	raw, err := s.Get(ctx, sessionID, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return def, nil
		}
		return def, err
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		if logg != nil {
			lctx := logg.WithFields(ctx, map[string]any{"key": key, "session_id": sessionID})
			logg.Warn(lctx, "discarding corrupt stored value")
		}
		return def, nil
	}
	return value, nil
}

// Save encodes value and replaces whatever the session held under key.
func Save[T any](ctx context.Context, s Store, sessionID, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, sessionID, key, raw)
}
