package statement

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the fields extracted from a statement's recognized text.
// Nil means the field was not detected.
type Summary struct {
	TotalDue        *decimal.Decimal
	MinimumPayment  *decimal.Decimal
	CreditLimit     *decimal.Decimal
	PreviousBalance *decimal.Decimal
	NewCharges      *decimal.Decimal
	DueDate         *time.Time
	CutoffDate      *time.Time
}

// Detected reports whether the main figure was found.
func (s *Summary) Detected() bool {
	return s.TotalDue != nil
}

// Statements come in Spanish; each field has a few phrasings banks use.
var (
	totalDuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total\s+a\s+pagar[:\s]*\$?\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)total\s+general[:\s]*\$?\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)nuevo\s+saldo[:\s]*\$?\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)saldo\s+actual[:\s]*\$?\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)importe\s+total[:\s]*\$?\s*([\d.,]+)`),
	}
	minimumPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)pago\s+m[íi]nimo[:\s]*\$?\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)cuota\s+m[íi]nima[:\s]*\$?\s*([\d.,]+)`),
	}
	creditLimitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)l[íi]mite\s+de\s+cr[ée]dito[:\s]*\$?\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)l[íi]mite\s+autorizado[:\s]*\$?\s*([\d.,]+)`),
	}
	previousBalancePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)saldo\s+anterior[:\s]*\$?\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)saldo\s+previo[:\s]*\$?\s*([\d.,]+)`),
	}
	newChargesPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)nuevos\s+cargos(?:\s+del\s+per[íi]odo)?[:\s]*\$?\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)compras\s+del\s+per[íi]odo[:\s]*\$?\s*([\d.,]+)`),
	}
	dueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)fecha\s+de\s+vencimiento[:\s]*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
		regexp.MustCompile(`(?i)vence[:\s]*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
		regexp.MustCompile(`(?i)fecha\s+l[íi]mite[:\s]*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
	}
	cutoffDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)fecha\s+de\s+corte[:\s]*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
	}
)

// Parse extracts the summary fields from recognized statement text. For
// each field the first matching pattern wins; absent fields stay nil.
func Parse(text string) *Summary {
	s := &Summary{}
	s.TotalDue = firstMoney(text, totalDuePatterns)
	s.MinimumPayment = firstMoney(text, minimumPatterns)
	s.CreditLimit = firstMoney(text, creditLimitPatterns)
	s.PreviousBalance = firstMoney(text, previousBalancePatterns)
	s.NewCharges = firstMoney(text, newChargesPatterns)
	s.DueDate = firstDate(text, dueDatePatterns)
	s.CutoffDate = firstDate(text, cutoffDatePatterns)
	return s
}

func firstMoney(text string, patterns []*regexp.Regexp) *decimal.Decimal {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if d, ok := parseMoney(m[1]); ok {
				return &d
			}
		}
	}
	return nil
}

func firstDate(text string, patterns []*regexp.Regexp) *time.Time {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if t, ok := parseDate(m[1]); ok {
				return &t
			}
		}
	}
	return nil
}

// parseMoney reads an amount that may use either separator convention:
// "172,430.50" and "172.430,50" both mean the same figure. A trailing
// group of exactly two digits after the last separator is the decimal
// part; everything else is grouping.
func parseMoney(raw string) (decimal.Decimal, bool) {
	s := strings.Trim(raw, ".,")
	if s == "" {
		return decimal.Decimal{}, false
	}

	lastSep := strings.LastIndexAny(s, ".,")
	if lastSep >= 0 && len(s)-lastSep-1 == 2 {
		intPart := strings.Map(dropSeparators, s[:lastSep])
		s = intPart + "." + s[lastSep+1:]
	} else {
		s = strings.Map(dropSeparators, s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func dropSeparators(r rune) rune {
	if r == '.' || r == ',' {
		return -1
	}
	return r
}

// parseDate reads dd/mm/yyyy with either separator and a 2 or 4 digit
// year.
func parseDate(raw string) (time.Time, bool) {
	normalized := strings.ReplaceAll(raw, "-", "/")
	for _, layout := range []string{"2/1/2006", "2/1/06"} {
		if t, err := time.ParseInLocation(layout, normalized, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
