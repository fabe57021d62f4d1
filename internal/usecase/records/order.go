package records

import (
	"context"

	"github.com/igwlord/nebula/internal/domain"
)

// Reconciler applies manual reorders optimistically: the caller's view is
// rearranged first, the backend is updated second, and a persistence
// failure hands back the pre-move snapshot wrapped in a ReorderError.
type Reconciler struct {
	Repo  domain.RecordRepository
	Owner string
}

// NewReconciler creates a Reconciler bound to one owner scope.
func NewReconciler(repo domain.RecordRepository, owner string) *Reconciler {
	return &Reconciler{Repo: repo, Owner: owner}
}

// MoveItem moves the record at index from to index to and persists the
// resulting sequence. Out-of-range indexes and from == to are no-ops.
// On success the returned slice carries dense orders 0..n-1; on failure
// it is the original snapshot and the error is a *domain.ReorderError.
func (r *Reconciler) MoveItem(ctx context.Context, kind domain.Kind, records []*domain.Record, from, to int) ([]*domain.Record, error) {
	n := len(records)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return records, nil
	}

	moved := splice(records, from, to)
	ids := make([]string, n)
	for i, rec := range moved {
		ids[i] = rec.ID
	}

	if err := r.Repo.BatchReorder(ctx, r.Owner, kind, ids); err != nil {
		return records, &domain.ReorderError{Err: err}
	}
	for i, rec := range moved {
		rec.Order = i
	}
	return moved, nil
}

// MoveUp moves the record at index one position toward the front.
func (r *Reconciler) MoveUp(ctx context.Context, kind domain.Kind, records []*domain.Record, index int) ([]*domain.Record, error) {
	return r.MoveItem(ctx, kind, records, index, index-1)
}

// MoveDown moves the record at index one position toward the back.
func (r *Reconciler) MoveDown(ctx context.Context, kind domain.Kind, records []*domain.Record, index int) ([]*domain.Record, error) {
	return r.MoveItem(ctx, kind, records, index, index+1)
}

// splice returns a copy of records with the element at from reinserted at
// to. Record pointers are shared; only the slice is new.
func splice(records []*domain.Record, from, to int) []*domain.Record {
	out := make([]*domain.Record, 0, len(records))
	out = append(out, records[:from]...)
	out = append(out, records[from+1:]...)
	out = append(out[:to], append([]*domain.Record{records[from]}, out[to:]...)...)
	return out
}
