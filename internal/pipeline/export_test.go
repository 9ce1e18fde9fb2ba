package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"pumpquote/internal"
	"pumpquote/internal/util"
)

func TestExportQuotesToXLSX(t *testing.T) {
	row := pumpRow()
	in := internal.ScenarioInput{
		Customer: internal.CustomerEngineer,
		Payment:  internal.PaymentCash,
		Billing:  internal.BillEndCustomer,
		Payout:   internal.PayoutServiceInvoice,
	}
	res := Quote(row, in)

	out := filepath.Join(t.TempDir(), "quote.xlsx")
	if err := ExportQuotesToXLSX([]internal.QuoteExportRow{BuildExportRow(row, in, res)}, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	model, _ := f.GetCellValue(sheet, "A2")
	if model != "Aqua 9" {
		t.Fatalf("model=%q", model)
	}
	invoice, _ := f.GetCellValue(sheet, "J2")
	if invoice != "450" {
		t.Fatalf("invoice=%q", invoice)
	}
	commission, _ := f.GetCellValue(sheet, "K2")
	if commission != "60" {
		t.Fatalf("commission=%q", commission)
	}
}

func TestExportAbsentAmountsStayEmpty(t *testing.T) {
	row := internal.ProductRow{Model: "Aqua 9", Power: "9 kW", RetailCash: util.FloatPtr(450)}
	in := internal.ScenarioInput{Customer: internal.CustomerPlumber, Billing: internal.BillProfessional}
	res := Quote(row, in)

	out := filepath.Join(t.TempDir(), "quote.xlsx")
	if err := ExportQuotesToXLSX([]internal.QuoteExportRow{BuildExportRow(row, in, res)}, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	invoice, _ := f.GetCellValue(sheet, "J2")
	if invoice != "" {
		t.Fatalf("absent invoice rendered as %q", invoice)
	}
}
