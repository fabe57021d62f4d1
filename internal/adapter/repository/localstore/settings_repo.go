package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/igwlord/nebula/internal/domain"
)

const settingsKey = keyPrefix + "settings"

// settingsRepository stores the settings document as a single JSON object
// entry.
type settingsRepository struct {
	store *Store
}

// NewSettingsRepository creates the guest-mode settings repository.
func NewSettingsRepository(store *Store) domain.SettingsRepository {
	return &settingsRepository{store: store}
}

func (r *settingsRepository) Load(_ context.Context, _ string) (*domain.Settings, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	raw, ok, err := r.store.get(settingsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	var s domain.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}

func (r *settingsRepository) Save(_ context.Context, _ string, s *domain.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.put(settingsKey, raw)
}
