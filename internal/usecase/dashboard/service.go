// Package dashboard computes the summary widgets over the month's
// collections.
package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/igwlord/nebula/internal/domain"
)

// CategoryTotal is one bar of the expenses-by-category chart.
type CategoryTotal struct {
	Category string
	Total    int64
}

// GoalProgress reports one goal's completion.
type GoalProgress struct {
	Description string
	Current     int64
	Target      int64
	Percent     int
}

// DebtProgress aggregates payment progress across all debts.
type DebtProgress struct {
	TotalPaid int64
	TotalDebt int64
	Percent   int
}

// Summary holds every widget's data for one month selection. Totals are in
// base currency units; display conversion happens at render time.
type Summary struct {
	NetTotal      int64
	MonthlyFlow   int64
	TotalExpenses int64
	ExpenseCount  int
	TopExpenses   []*domain.Record
	ByCategory    []CategoryTotal
	Investments   int64
	Goals         []GoalProgress
	Debts         DebtProgress
}

// fallbackCategory buckets uncategorized expenses in the chart.
const fallbackCategory = "Varios"

// Service computes dashboard summaries.
type Service struct {
	Repo  domain.RecordRepository
	Owner string
}

// NewService creates a Service bound to one owner scope.
func NewService(repo domain.RecordRepository, owner string) *Service {
	return &Service{Repo: repo, Owner: owner}
}

// Summarize reads the five collections under the month selection and
// computes every widget. Incomes and expenses are restricted to the
// selected month; debts, investments and goals always count in full.
func (s *Service) Summarize(ctx context.Context, sel domain.MonthSelection) (*Summary, error) {
	window := sel.Window()

	incomes, err := s.Repo.List(ctx, s.Owner, domain.KindIncome, &window)
	if err != nil {
		return nil, fmt.Errorf("failed to read incomes: %w", err)
	}
	expenses, err := s.Repo.List(ctx, s.Owner, domain.KindExpense, &window)
	if err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}
	debts, err := s.Repo.List(ctx, s.Owner, domain.KindDebt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read debts: %w", err)
	}
	investments, err := s.Repo.List(ctx, s.Owner, domain.KindInvestment, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read investments: %w", err)
	}
	goals, err := s.Repo.List(ctx, s.Owner, domain.KindGoal, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read goals: %w", err)
	}

	totalIncomes := sumAmounts(incomes)
	totalExpenses := sumAmounts(expenses)
	totalDebts := sumAmounts(debts)
	totalInvestments := sumAmounts(investments)

	sum := &Summary{
		NetTotal:      totalIncomes + totalInvestments - totalExpenses - totalDebts,
		MonthlyFlow:   totalIncomes - totalExpenses,
		TotalExpenses: totalExpenses,
		ExpenseCount:  len(expenses),
		TopExpenses:   topExpenses(expenses, 3),
		ByCategory:    byCategory(expenses),
		Investments:   totalInvestments,
		Debts:         debtProgress(debts),
	}
	for _, g := range goals {
		if g.TargetAmount <= 0 || g.CurrentAmount < 0 {
			continue
		}
		sum.Goals = append(sum.Goals, GoalProgress{
			Description: g.Description,
			Current:     g.CurrentAmount,
			Target:      g.TargetAmount,
			Percent:     percent(g.CurrentAmount, g.TargetAmount),
		})
	}
	return sum, nil
}

// Convert applies the display-currency conversion: base currency amounts
// pass through untouched, anything else is multiplied by the exchange
// rate. A negative rate counts as zero.
func Convert(amount int64, settings *domain.Settings) decimal.Decimal {
	d := decimal.NewFromInt(amount)
	if settings.Currency == "ARS" {
		return d
	}
	rate := settings.ExchangeRate
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return d.Mul(rate)
}

func sumAmounts(recs []*domain.Record) int64 {
	var total int64
	for _, r := range recs {
		total += r.Amount
	}
	return total
}

func topExpenses(expenses []*domain.Record, n int) []*domain.Record {
	sorted := make([]*domain.Record, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func byCategory(expenses []*domain.Record) []CategoryTotal {
	totals := make(map[string]int64)
	for _, e := range expenses {
		category := e.Category
		if category == "" {
			category = fallbackCategory
		}
		totals[category] += e.Amount
	}
	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func debtProgress(debts []*domain.Record) DebtProgress {
	var paid, total int64
	for _, d := range debts {
		paid += d.PaidAmount
		total += d.Amount
	}
	return DebtProgress{TotalPaid: paid, TotalDebt: total, Percent: percent(paid, total)}
}

// percent rounds current/target to a whole percentage, capped at 100.
func percent(current, target int64) int {
	if target <= 0 {
		return 0
	}
	p := int((current*100 + target/2) / target)
	if p > 100 {
		p = 100
	}
	return p
}
