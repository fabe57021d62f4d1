// Package settings manages the per-owner preferences document.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/igwlord/nebula/internal/domain"
)

// Service loads and updates the singleton settings document.
type Service struct {
	Repo  domain.SettingsRepository
	Owner string
}

// NewService creates a Service bound to one owner scope.
func NewService(repo domain.SettingsRepository, owner string) *Service {
	return &Service{Repo: repo, Owner: owner}
}

// Get returns the stored settings, falling back to the defaults when no
// document was saved yet.
func (s *Service) Get(ctx context.Context) (*domain.Settings, error) {
	stored, err := s.Repo.Load(ctx, s.Owner)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Update merges patch into the current settings and persists the result,
// returning the merged document.
func (s *Service) Update(ctx context.Context, patch *domain.Settings) (*domain.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	current.Merge(patch)
	if err := s.Repo.Save(ctx, s.Owner, current); err != nil {
		return nil, err
	}
	return current, nil
}

// MoveWidget moves the named dashboard widget to position, persisting the
// new layout. Unknown widgets and out-of-range positions are rejected.
func (s *Service) MoveWidget(ctx context.Context, widget string, position int) (*domain.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	layout := current.DashboardLayout
	from := -1
	for i, w := range layout {
		if w == widget {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("unknown dashboard widget %q", widget)
	}
	if position < 0 || position >= len(layout) {
		return nil, fmt.Errorf("widget position %d out of range", position)
	}
	if position == from {
		return current, nil
	}

	moved := make([]string, 0, len(layout))
	moved = append(moved, layout[:from]...)
	moved = append(moved, layout[from+1:]...)
	moved = append(moved[:position], append([]string{widget}, moved[position:]...)...)
	current.DashboardLayout = moved

	if err := s.Repo.Save(ctx, s.Owner, current); err != nil {
		return nil, err
	}
	return current, nil
}
