package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_RequiredAmounts(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		rec       Record
		wantField string
	}{
		{
			name:      "expense with zero amount rejected",
			kind:      KindExpense,
			rec:       Record{Description: "Supermercado"},
			wantField: "amount",
		},
		{
			name:      "income with zero amount rejected",
			kind:      KindIncome,
			rec:       Record{Description: "Salario"},
			wantField: "amount",
		},
		{
			name:      "goal with zero target rejected",
			kind:      KindGoal,
			rec:       Record{Description: "Vacaciones", CurrentAmount: 350},
			wantField: "targetAmount",
		},
		{
			name:      "debt with zero monthly payment rejected",
			kind:      KindDebt,
			rec:       Record{Description: "Tarjeta", Amount: 300000},
			wantField: "monthlyPayment",
		},
		{
			name:      "missing description rejected",
			kind:      KindExpense,
			rec:       Record{Amount: 100},
			wantField: "description",
		},
		{
			name:      "negative amount rejected",
			kind:      KindExpense,
			rec:       Record{Description: "x", Amount: -5},
			wantField: "amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate(tt.kind)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestValidate_ZeroTolerantFields(t *testing.T) {
	goal := Record{Description: "Vacaciones", TargetAmount: 1000, CurrentAmount: 0}
	assert.NoError(t, goal.Validate(KindGoal))

	debt := Record{Description: "Tarjeta", Amount: 300000, MonthlyPayment: 50000, PaidAmount: 0}
	assert.NoError(t, debt.Validate(KindDebt))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Salario", SanitizeText("  Salario \n"))
	assert.Equal(t, "", SanitizeText("   "))

	long := strings.Repeat("a", MaxTextLen+50)
	assert.Len(t, SanitizeText(long), MaxTextLen)
}

func TestClone_ClearsIdentity(t *testing.T) {
	src := &Record{ID: "abc", Description: "Alquiler", Amount: 120000, Order: 3}
	c := src.Clone()
	assert.Empty(t, c.ID)
	assert.Equal(t, src.Description, c.Description)
	assert.Equal(t, src.Amount, c.Amount)
	assert.Equal(t, "abc", src.ID)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind(" Expenses ")
	require.True(t, ok)
	assert.Equal(t, KindExpense, k)

	_, ok = ParseKind("widgets")
	assert.False(t, ok)

	assert.True(t, KindIncome.TimeScoped())
	assert.True(t, KindExpense.TimeScoped())
	assert.False(t, KindDebt.TimeScoped())
	assert.False(t, KindInvestment.TimeScoped())
	assert.False(t, KindGoal.TimeScoped())
}
