// Package carryforward copies a month-scoped collection from the previous
// calendar month into the selected one.
package carryforward

import (
	"context"
	"fmt"

	"github.com/igwlord/nebula/internal/domain"
)

// Service duplicates last month's records into the selected month.
type Service struct {
	Repo  domain.RecordRepository
	Owner string
}

// NewService creates a Service bound to one owner scope.
func NewService(repo domain.RecordRepository, owner string) *Service {
	return &Service{Repo: repo, Owner: owner}
}

// CopyFromPreviousMonth clones every record the previous month's window
// contains into target, returning how many were copied. Copies get fresh
// identities, dates rebased onto the target month with the day-of-month
// clamped to its last day, and orders appended after the full collection's
// current maximum. An empty source month copies nothing and is not an
// error. The operation is additive; it never overwrites or dedupes.
func (s *Service) CopyFromPreviousMonth(ctx context.Context, kind domain.Kind, target domain.MonthSelection) (int, error) {
	if !kind.TimeScoped() {
		return 0, fmt.Errorf("%s is not a month-scoped collection", kind)
	}

	prevWindow := target.Previous().Window()
	source, err := s.Repo.List(ctx, s.Owner, kind, &prevWindow)
	if err != nil {
		return 0, fmt.Errorf("failed to read previous month: %w", err)
	}
	if len(source) == 0 {
		return 0, nil
	}

	// Orders append after the whole collection, not the target month's view.
	all, err := s.Repo.List(ctx, s.Owner, kind, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to read collection: %w", err)
	}
	maxOrder := -1
	for _, rec := range all {
		if rec.Order > maxOrder {
			maxOrder = rec.Order
		}
	}

	copies := make([]*domain.Record, len(source))
	for i, src := range source {
		c := src.Clone()
		c.Date = target.DateForDay(src.Date.Day())
		c.Order = maxOrder + 1 + i
		copies[i] = c
	}
	if err := s.Repo.CreateBatch(ctx, s.Owner, kind, copies); err != nil {
		return 0, fmt.Errorf("failed to copy records: %w", err)
	}
	return len(copies), nil
}
