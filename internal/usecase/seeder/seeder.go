// Package seeder populates a fresh guest-mode store with sample records so
// the first session has something to show.
package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/igwlord/nebula/internal/domain"
)

// Seeder writes sample data into empty guest collections.
type Seeder struct {
	Repo domain.RecordRepository

	// Now decides which month the sample incomes and expenses land in.
	// Overridable in tests.
	Now func() time.Time
}

// NewSeeder creates a Seeder for the guest owner scope.
func NewSeeder(repo domain.RecordRepository) *Seeder {
	return &Seeder{Repo: repo, Now: time.Now}
}

// Seed fills each sample collection that is still empty. Collections the
// user already wrote to are left alone, so seeding is safe to run on
// every guest session start.
func (s *Seeder) Seed(ctx context.Context) error {
	now := s.Now()
	sel := domain.MonthSelection{Year: now.Year(), Month: now.Month()}

	for kind, samples := range sampleData(sel, now) {
		existing, err := s.Repo.List(ctx, domain.GuestOwner, kind, nil)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", kind, err)
		}
		if len(existing) > 0 {
			continue
		}
		if err := s.Repo.CreateBatch(ctx, domain.GuestOwner, kind, samples); err != nil {
			return fmt.Errorf("failed to seed %s: %w", kind, err)
		}
	}
	return nil
}

func sampleData(sel domain.MonthSelection, now time.Time) map[domain.Kind][]*domain.Record {
	return map[domain.Kind][]*domain.Record{
		domain.KindIncome: {
			{Description: "Salario", Amount: 500000, Category: "Trabajo", Date: sel.DateForDay(1), Order: 0},
			{Description: "Freelance", Amount: 150000, Category: "Trabajo Extra", Date: sel.DateForDay(15), Order: 1},
		},
		domain.KindExpense: {
			{Description: "Supermercado", Amount: 80000, Category: "Alimentación", Date: sel.DateForDay(5), Order: 0},
			{Description: "Transporte", Amount: 35000, Category: "Movilidad", Date: sel.DateForDay(10), Order: 1},
			{Description: "Servicios", Amount: 120000, Category: "Hogar", Date: sel.DateForDay(20), Order: 2},
		},
		domain.KindGoal: {
			{Description: "Vacaciones", TargetAmount: 1000000, CurrentAmount: 350000, Date: now, Order: 0},
			{Description: "Fondo de Emergencia", TargetAmount: 2000000, CurrentAmount: 800000, Date: now, Order: 1},
		},
		domain.KindDebt: {
			{Description: "Tarjeta de Crédito", Amount: 300000, MonthlyPayment: 50000, PaidAmount: 150000, Date: now, Order: 0},
		},
		domain.KindInvestment: {
			{Description: "Plazo Fijo", Type: "Renta Fija", Amount: 500000, Date: now, Order: 0},
			{Description: "FCI Renta Variable", Type: "Renta Variable", Amount: 300000, Date: now, Order: 1},
		},
	}
}
