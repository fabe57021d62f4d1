package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/igwlord/nebula/internal/domain"
)

// settingsDocKey is the fixed key of the singleton settings document under
// an owner's settings sub-path.
const settingsDocKey = "main"

// settingsRepository implements domain.SettingsRepository as one JSONB
// document per owner.
type settingsRepository struct {
	db      *DB
	project string
}

// NewSettingsRepository creates a settings repository scoped to one project.
func NewSettingsRepository(db *DB, project string) domain.SettingsRepository {
	return &settingsRepository{db: db, project: project}
}

func (r *settingsRepository) Load(ctx context.Context, owner string) (*domain.Settings, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT doc FROM settings
		WHERE project = $1 AND owner_id = $2 AND doc_key = $3
	`, r.project, owner, settingsDocKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	var s domain.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}

func (r *settingsRepository) Save(ctx context.Context, owner string, s *domain.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (project, owner_id, doc_key, doc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project, owner_id, doc_key) DO UPDATE SET doc = EXCLUDED.doc
	`, r.project, owner, settingsDocKey, raw)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
