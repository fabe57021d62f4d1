package statement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatement = `
RESUMEN DE CUENTA - TARJETA DE CRÉDITO
=======================================

Período: 01/06/2024 - 30/06/2024
Fecha de corte: 30/06/2024
Fecha de vencimiento: 25/07/2024

RESUMEN DE MOVIMIENTOS
Saldo anterior: $125,450.00
Nuevos cargos del período: $45,780.50
Pagos recibidos: $0.00
Otros cargos: $1,200.00

TOTAL A PAGAR: $172,430.50
PAGO MÍNIMO: $8,621.53

Límite de crédito: $500,000.00
Crédito disponible: $327,569.50
`

func TestParse_FullStatement(t *testing.T) {
	s := Parse(sampleStatement)

	require.True(t, s.Detected())
	assert.True(t, s.TotalDue.Equal(decimal.RequireFromString("172430.50")))
	assert.True(t, s.MinimumPayment.Equal(decimal.RequireFromString("8621.53")))
	assert.True(t, s.CreditLimit.Equal(decimal.RequireFromString("500000.00")))
	assert.True(t, s.PreviousBalance.Equal(decimal.RequireFromString("125450.00")))
	assert.True(t, s.NewCharges.Equal(decimal.RequireFromString("45780.50")))

	require.NotNil(t, s.DueDate)
	assert.Equal(t, time.Date(2024, time.July, 25, 0, 0, 0, 0, time.Local), *s.DueDate)
	require.NotNil(t, s.CutoffDate)
	assert.Equal(t, time.Date(2024, time.June, 30, 0, 0, 0, 0, time.Local), *s.CutoffDate)
}

func TestParse_AlternatePhrasings(t *testing.T) {
	s := Parse(`
Nuevo saldo: 98.765,43
Cuota mínima: $ 1.234
Vence: 5-8-2024
`)

	require.True(t, s.Detected())
	assert.True(t, s.TotalDue.Equal(decimal.RequireFromString("98765.43")))
	assert.True(t, s.MinimumPayment.Equal(decimal.RequireFromString("1234")))
	require.NotNil(t, s.DueDate)
	assert.Equal(t, time.Date(2024, time.August, 5, 0, 0, 0, 0, time.Local), *s.DueDate)
	assert.Nil(t, s.CreditLimit)
}

func TestParse_NothingDetected(t *testing.T) {
	s := Parse("texto sin información de resumen")

	assert.False(t, s.Detected())
	assert.Nil(t, s.MinimumPayment)
	assert.Nil(t, s.DueDate)
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"172,430.50", "172430.50"},
		{"172.430,50", "172430.50"},
		{"500,000.00", "500000.00"},
		{"1.234", "1234"},
		{"1,234", "1234"},
		{"89", "89"},
	}
	for _, tc := range cases {
		d, ok := parseMoney(tc.in)
		require.True(t, ok, "input %q", tc.in)
		assert.True(t, d.Equal(decimal.RequireFromString(tc.want)), "input %q got %s", tc.in, d)
	}

	_, ok := parseMoney(",")
	assert.False(t, ok)
}
