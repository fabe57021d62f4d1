package domain

import "github.com/shopspring/decimal"

// Settings is the singleton per-owner preferences document. It is created
// lazily on first save and read once at session start.
type Settings struct {
	Theme           string           `json:"theme"`
	Currency        string           `json:"currency"`
	ExchangeRate    decimal.Decimal  `json:"dolarMep"`
	DashboardLayout []string         `json:"dashboardLayout"`
	Budgets         map[string]int64 `json:"budgets,omitempty"`
	Habits          map[string]bool  `json:"habits,omitempty"`
}

// DefaultSettings mirrors the defaults applied when no settings document
// exists yet.
func DefaultSettings() *Settings {
	return &Settings{
		Theme:           "dark",
		Currency:        "ARS",
		ExchangeRate:    decimal.NewFromInt(1000),
		DashboardLayout: []string{"netTotal", "monthlyFlow", "monthExpenses", "goals"},
	}
}

// Merge copies the non-empty fields of patch into s, matching the
// merge-on-save semantics of the settings document.
func (s *Settings) Merge(patch *Settings) {
	if patch.Theme != "" {
		s.Theme = patch.Theme
	}
	if patch.Currency != "" {
		s.Currency = patch.Currency
	}
	if !patch.ExchangeRate.IsZero() {
		s.ExchangeRate = patch.ExchangeRate
	}
	if patch.DashboardLayout != nil {
		s.DashboardLayout = patch.DashboardLayout
	}
	if patch.Budgets != nil {
		s.Budgets = patch.Budgets
	}
	if patch.Habits != nil {
		s.Habits = patch.Habits
	}
}
