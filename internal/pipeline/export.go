package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"pumpquote/internal"
)

// ExportQuotesToXLSX writes computed quotes to a workbook, one row per quote.
// Absent amounts come out as empty cells, not zeros.
func ExportQuotesToXLSX(rows []internal.QuoteExportRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"model", "power", "erp_code", "brand",
		"customer_type", "payment_method", "billing_route", "payout_mode",
		"scenario", "invoice_amount", "commission_amount", "note",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, row.Model)
		set(2, row.Power)
		set(3, row.ERPCode)
		set(4, row.Brand)
		set(5, row.Customer)
		set(6, row.Payment)
		set(7, row.Billing)
		set(8, row.Payout)
		set(9, row.Label)
		set(10, derefMoney(row.InvoiceAmount))
		set(11, derefMoney(row.CommissionAmount))
		set(12, row.Note)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// BuildExportRow flattens a row + scenario + result for the export sheet.
func BuildExportRow(row internal.ProductRow, in internal.ScenarioInput, res internal.ScenarioResult) internal.QuoteExportRow {
	return internal.QuoteExportRow{
		Model:            row.Model,
		Power:            row.Power,
		ERPCode:          row.ERPCode,
		Brand:            row.Brand,
		Customer:         string(in.Customer),
		Payment:          string(in.Payment),
		Billing:          string(in.Billing),
		Payout:           string(in.Payout),
		Label:            res.Label,
		InvoiceAmount:    res.InvoiceAmount,
		CommissionAmount: res.CommissionAmount,
		Note:             res.Note,
	}
}

func derefMoney(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
