package pipeline

import (
	"testing"

	"pumpquote/internal"
)

func sheetTable(dataRows ...[]string) internal.RawTable {
	rows := [][]string{
		{"Τιμοκατάλογος Αντλιών Θερμότητας"},
		{},
		append([]string{}, sheetHeaders...),
	}
	rows = append(rows, dataRows...)
	return internal.RawTable{Sheet: "Φύλλο1", Rows: rows}
}

func TestBuildCatalog(t *testing.T) {
	table := sheetTable(
		[]string{"Aquarea", "HP-0001", "Aqua 9", "9 kW", "450,00", "420,00", "60,00", "45,00"},
		[]string{"Aquarea", "HP-0002", "Aqua 12", "12 kW", "520", "490", "", "48"},
	)
	catalog, err := BuildCatalog(table, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog.Rows) != 2 {
		t.Fatalf("rows=%d", len(catalog.Rows))
	}

	first := catalog.Rows[0]
	if first.Model != "Aqua 9" || first.ERPCode != "HP-0001" || first.Brand != "Aquarea" || first.Power != "9 kW" {
		t.Fatalf("row: %+v", first)
	}
	if first.RetailCash == nil || *first.RetailCash != 450 {
		t.Fatalf("retail: %v", first.RetailCash)
	}
	if first.CommissionHand == nil || *first.CommissionHand != 45 {
		t.Fatalf("commission hand: %v", first.CommissionHand)
	}

	second := catalog.Rows[1]
	if second.CommissionInvoice != nil {
		t.Fatalf("empty commission cell must coerce to nil, got %v", *second.CommissionInvoice)
	}
}

func TestBuildCatalogDropsRowsWithoutModel(t *testing.T) {
	table := sheetTable(
		[]string{"Aquarea", "HP-0001", "Aqua 9", "9 kW", "450", "420", "", ""},
		[]string{"", "HP-9999", "", "", "100", "90", "", ""}, // no model
		[]string{"", "", "", "", "", "", "", ""},             // structurally empty
		[]string{"Aquarea", "HP-0002", "Aqua 12", "12 kW", "520", "490", "", ""},
	)
	catalog, err := BuildCatalog(table, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog.Rows) != 2 {
		t.Fatalf("rows=%d", len(catalog.Rows))
	}
	for _, r := range catalog.Rows {
		if r.Model == "" {
			t.Fatal("catalog row with absent model")
		}
	}
}

func TestBuildCatalogUnparsableMoneyBecomesNil(t *testing.T) {
	table := sheetTable(
		[]string{"Aquarea", "HP-0001", "Aqua 9", "9 kW", "κατόπιν συνεννόησης", "420", "—", "45"},
	)
	catalog, err := BuildCatalog(table, 2)
	if err != nil {
		t.Fatal(err)
	}
	row := catalog.Rows[0]
	if row.RetailCash != nil {
		t.Fatalf("retail must be nil, got %v", *row.RetailCash)
	}
	if row.CommissionInvoice != nil {
		t.Fatalf("commission must be nil, got %v", *row.CommissionInvoice)
	}
	if row.ProProgram == nil || *row.ProProgram != 420 {
		t.Fatalf("program: %v", row.ProProgram)
	}
}

func TestBuildCatalogDropsEmptyColumns(t *testing.T) {
	// A spacer column between model and power, empty for every data row.
	rows := [][]string{
		{"Κωδικός ERP", "Μοντέλο", "", "Ισχύς", "Ιδιώτης Μετρητοίς", "Επαγγελματίες Προγράμματα"},
		{"HP-0001", "Aqua 9", "", "9 kW", "450", "420"},
	}
	catalog, err := BuildCatalog(internal.RawTable{Sheet: "s", Rows: rows}, 0)
	if err != nil {
		t.Fatal(err)
	}
	row := catalog.Rows[0]
	if row.Power != "9 kW" {
		t.Fatalf("power=%q, spacer column not dropped cleanly", row.Power)
	}
	if row.RetailCash == nil || *row.RetailCash != 450 {
		t.Fatalf("retail: %v", row.RetailCash)
	}
}

func TestCatalogLabels(t *testing.T) {
	table := sheetTable(
		[]string{"Aquarea", "HP-0001", "Aqua 9", "9 kW", "450", "420", "", ""},
	)
	catalog, err := BuildCatalog(table, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := catalog.Labels()[0]; got != "Aqua 9 | 9 kW | ERP: HP-0001" {
		t.Fatalf("label=%q", got)
	}
}

func TestRowLabelWithoutERP(t *testing.T) {
	row := internal.ProductRow{Model: "Aqua 9", Power: "9 kW"}
	if got := row.Label(); got != "Aqua 9 | 9 kW" {
		t.Fatalf("label=%q", got)
	}
}

func TestBuildCatalogHeaderOutOfRange(t *testing.T) {
	table := internal.RawTable{Sheet: "s", Rows: [][]string{{"a"}}}
	if _, err := BuildCatalog(table, 5); err == nil {
		t.Fatal("expected error")
	}
}
