// Package export writes the collections to a spreadsheet, one sheet per
// collection.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/igwlord/nebula/internal/domain"
)

// DefaultFilename is the suggested name for the exported workbook.
const DefaultFilename = "Nebula_Datos.xlsx"

// sheetNames maps each collection to its sheet, in workbook order.
var sheetNames = map[domain.Kind]string{
	domain.KindIncome:     "Ingresos",
	domain.KindExpense:    "Gastos",
	domain.KindDebt:       "Deudas",
	domain.KindInvestment: "Inversiones",
	domain.KindGoal:       "Metas",
}

var headers = []string{"Descripción", "Monto", "Fecha", "Categoría", "Cuota Mensual", "Monto Pagado"}

// Service builds XLSX exports of the owner's data.
type Service struct {
	Repo  domain.RecordRepository
	Owner string
}

// NewService creates a Service bound to one owner scope.
func NewService(repo domain.RecordRepository, owner string) *Service {
	return &Service{Repo: repo, Owner: owner}
}

// Write exports the five collections as seen under the month selection:
// month-scoped collections export the selected month, the rest export in
// full. The workbook is streamed to w.
func (s *Service) Write(ctx context.Context, sel domain.MonthSelection, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, kind := range domain.Kinds() {
		var window *domain.MonthWindow
		if kind.TimeScoped() {
			mw := sel.Window()
			window = &mw
		}
		recs, err := s.Repo.List(ctx, s.Owner, kind, window)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", kind, err)
		}

		sheet := sheetNames[kind]
		index, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		if err := fillSheet(f, sheet, recs); err != nil {
			return err
		}
	}

	// Drop the default sheet excelize opens with.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func fillSheet(f *excelize.File, sheet string, recs []*domain.Record) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for idx, rec := range recs {
		row := idx + 2
		date := ""
		if !rec.Date.IsZero() {
			date = rec.Date.Format("02/01/2006")
		}
		values := []interface{}{
			rec.Description,
			cellAmount(rec.Amount),
			date,
			rec.Category,
			cellAmount(rec.MonthlyPayment),
			cellAmount(rec.PaidAmount),
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "F", 14)
}

// cellAmount leaves zero amounts as empty cells, matching the export's
// historical layout.
func cellAmount(v int64) interface{} {
	if v == 0 {
		return ""
	}
	return v
}
