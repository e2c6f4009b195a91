package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/sse"
)

// EnsureDefaultFlags creates any missing default feature flags.
// Called at startup so new flags ship enabled/disabled per their defaults
// without touching flags an admin already changed.
func (s *Store) EnsureDefaultFlags(ctx context.Context) error {
	for _, flag := range domain.DefaultFeatureFlags() {
		_, err := s.Flags.Get(ctx, flag.Key)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("check flag %s: %w", flag.Key, err)
		}
		if err := s.Flags.Create(ctx, flag.Key, flag); err != nil {
			return fmt.Errorf("create default flag %s: %w", flag.Key, err)
		}
	}
	return nil
}

// GetFlag retrieves a feature flag by key.
func (s *Store) GetFlag(ctx context.Context, key string) (*domain.FeatureFlag, error) {
	return s.Flags.Get(ctx, key)
}

// FlagEnabled reports whether a flag is on. Unknown flags are off.
func (s *Store) FlagEnabled(ctx context.Context, key string) bool {
	flag, err := s.Flags.Get(ctx, key)
	if err != nil {
		return false
	}
	return flag.Enabled
}

// ListFlags returns all feature flags.
func (s *Store) ListFlags(ctx context.Context) ([]*domain.FeatureFlag, error) {
	return s.Flags.ListAll(ctx)
}

// SetFlag toggles a feature flag and broadcasts the change so clients can
// update affected surfaces without a reload.
func (s *Store) SetFlag(ctx context.Context, key string, enabled bool) (*domain.FeatureFlag, error) {
	flag, err := s.Flags.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	flag.Enabled = enabled
	flag.UpdatedAt = time.Now()

	if err := s.Flags.Update(ctx, key, flag); err != nil {
		return nil, fmt.Errorf("update flag %s: %w", key, err)
	}

	s.eventEmitter.Emit(sse.NewEvent(sse.EventFlagUpdated, flag))
	return flag, nil
}
