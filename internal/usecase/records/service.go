// Package records implements the collection views: loading, watching and
// mutating the five record collections through whichever backend is
// active, plus the optimistic drag reorder.
package records

import (
	"context"
	"log"
	"time"

	"github.com/igwlord/nebula/internal/domain"
)

// Input carries raw form values for one record. Amount fields arrive as
// display strings and are coerced to whole currency units before
// validation; a string that cannot be coerced counts as zero and is then
// rejected by validation wherever zero is not allowed.
type Input struct {
	Description    string
	Amount         string
	Category       string
	Type           string
	TargetAmount   string
	CurrentAmount  string
	MonthlyPayment string
	PaidAmount     string
}

// Service handles collection reads and the save pipeline.
type Service struct {
	Repo  domain.RecordRepository
	Owner string

	// Now is the clock used to bucket new records into the selected month.
	// Overridable in tests.
	Now func() time.Time
}

// NewService creates a Service bound to one owner scope.
func NewService(repo domain.RecordRepository, owner string) *Service {
	return &Service{Repo: repo, Owner: owner, Now: time.Now}
}

// window returns the month window to read with: the selection's window for
// time-scoped kinds, nil for collections that are always shown in full.
func window(kind domain.Kind, sel domain.MonthSelection) *domain.MonthWindow {
	if !kind.TimeScoped() {
		return nil
	}
	w := sel.Window()
	return &w
}

// List returns the ordered records visible under the month selection. A
// read failure degrades to an empty list so a broken backend renders as
// empty collections rather than a dead session; the failure is logged.
func (s *Service) List(ctx context.Context, kind domain.Kind, sel domain.MonthSelection) []*domain.Record {
	recs, err := s.Repo.List(ctx, s.Owner, kind, window(kind, sel))
	if err != nil {
		log.Printf("records: list %s failed: %v", kind, err)
		return nil
	}
	return recs
}

// Watch streams ordered snapshots of the collection under the month
// selection until ctx is canceled.
func (s *Service) Watch(ctx context.Context, kind domain.Kind, sel domain.MonthSelection) (<-chan []*domain.Record, error) {
	return s.Repo.Watch(ctx, s.Owner, kind, window(kind, sel))
}

// Create runs the save pipeline and persists a new record. Time-scoped
// records are dated inside the selected month, on today's day-of-month
// clamped to that month's last day. Validation failures are returned to
// the caller; nothing is silently dropped.
func (s *Service) Create(ctx context.Context, kind domain.Kind, sel domain.MonthSelection, in Input) (*domain.Record, error) {
	rec := buildRecord(in)
	if kind.TimeScoped() {
		rec.Date = sel.DateForDay(s.Now().Day())
	} else {
		rec.Date = s.Now()
	}
	if err := rec.Validate(kind); err != nil {
		return nil, err
	}
	id, err := s.Repo.Create(ctx, s.Owner, kind, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	return rec, nil
}

// Update runs the save pipeline against an existing record. The record's
// id, date and order are preserved; only the form-editable fields change.
func (s *Service) Update(ctx context.Context, kind domain.Kind, existing *domain.Record, in Input) (*domain.Record, error) {
	rec := buildRecord(in)
	rec.ID = existing.ID
	rec.Date = existing.Date
	rec.Order = existing.Order
	if err := rec.Validate(kind); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, s.Owner, kind, existing.ID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a record. The backend renumbers the survivors.
func (s *Service) Delete(ctx context.Context, kind domain.Kind, id string) error {
	return s.Repo.Delete(ctx, s.Owner, kind, id)
}

func buildRecord(in Input) *domain.Record {
	return &domain.Record{
		Description:    domain.SanitizeText(in.Description),
		Category:       domain.SanitizeText(in.Category),
		Type:           domain.SanitizeText(in.Type),
		Amount:         ParseAmount(in.Amount),
		TargetAmount:   ParseAmount(in.TargetAmount),
		CurrentAmount:  ParseAmount(in.CurrentAmount),
		MonthlyPayment: ParseAmount(in.MonthlyPayment),
		PaidAmount:     ParseAmount(in.PaidAmount),
	}
}
