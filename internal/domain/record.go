package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Kind identifies one of the five record collections.
type Kind string

const (
	KindIncome     Kind = "incomes"
	KindExpense    Kind = "expenses"
	KindDebt       Kind = "debts"
	KindInvestment Kind = "investments"
	KindGoal       Kind = "goals"
)

// Kinds returns every collection kind in display order.
func Kinds() []Kind {
	return []Kind{KindIncome, KindExpense, KindDebt, KindInvestment, KindGoal}
}

// ParseKind maps a collection name to its Kind.
func ParseKind(name string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	switch k {
	case KindIncome, KindExpense, KindDebt, KindInvestment, KindGoal:
		return k, true
	}
	return "", false
}

// TimeScoped reports whether records of this kind are filtered by the
// selected calendar month. Debts, investments and goals are always shown
// in full regardless of the selected month.
func (k Kind) TimeScoped() bool {
	return k == KindIncome || k == KindExpense
}

// MaxTextLen is the hard cap applied to free-text fields before saving.
const MaxTextLen = 1000

// MaxAmount bounds every currency field.
const MaxAmount int64 = 999_999_999_999

// GuestOwner is the owner scope used when no authenticated identity exists.
const GuestOwner = "guest-user"

// Record is a single entry in one of the five collections. The kind decides
// which currency fields are meaningful: Amount for incomes, expenses and
// investments, TargetAmount/CurrentAmount for goals, and
// Amount/MonthlyPayment/PaidAmount for debts. Amounts are whole currency
// units stored as int64.
type Record struct {
	ID             string    `json:"id"`
	Description    string    `json:"description"`
	Amount         int64     `json:"amount,omitempty"`
	Category       string    `json:"category,omitempty"`
	Type           string    `json:"type,omitempty"`
	TargetAmount   int64     `json:"targetAmount,omitempty"`
	CurrentAmount  int64     `json:"currentAmount,omitempty"`
	MonthlyPayment int64     `json:"monthlyPayment,omitempty"`
	PaidAmount     int64     `json:"paidAmount,omitempty"`
	Date           time.Time `json:"date"`
	Order          int       `json:"order"`
}

// Clone returns a copy of the record with a cleared identity, used by the
// carry-forward operation. Date and Order are set by the caller.
func (r *Record) Clone() *Record {
	c := *r
	c.ID = ""
	return &c
}

// SanitizeText trims surrounding whitespace and caps the length of a
// free-text field.
func SanitizeText(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > MaxTextLen {
		s = string([]rune(s)[:MaxTextLen])
	}
	return s
}

// Validate checks the record against the save rules for its kind. Text
// fields are expected to be sanitized already. CurrentAmount (goals) and
// PaidAmount (debts) may be zero; every other currency field must be
// strictly positive. Returns a *ValidationError naming the offending field.
func (r *Record) Validate(kind Kind) error {
	if r.Description == "" {
		return &ValidationError{Field: "description", Reason: "is required"}
	}
	for _, f := range []struct {
		name  string
		value int64
	}{
		{"amount", r.Amount},
		{"targetAmount", r.TargetAmount},
		{"currentAmount", r.CurrentAmount},
		{"monthlyPayment", r.MonthlyPayment},
		{"paidAmount", r.PaidAmount},
	} {
		if f.value < 0 {
			return &ValidationError{Field: f.name, Reason: "must not be negative"}
		}
		if f.value > MaxAmount {
			return &ValidationError{Field: f.name, Reason: "is out of range"}
		}
	}

	switch kind {
	case KindIncome, KindExpense, KindInvestment:
		if r.Amount == 0 {
			return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
		}
	case KindGoal:
		if r.TargetAmount == 0 {
			return &ValidationError{Field: "targetAmount", Reason: "must be greater than zero"}
		}
	case KindDebt:
		if r.Amount == 0 {
			return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
		}
		if r.MonthlyPayment == 0 {
			return &ValidationError{Field: "monthlyPayment", Reason: "must be greater than zero"}
		}
	}
	return nil
}
