package pipeline

import (
	"fmt"
	"strings"

	"pumpquote/internal"
	"pumpquote/internal/util"
)

// Catalog is the selectable product list derived from one sheet. Rebuilt from
// scratch on every load; nothing is persisted.
type Catalog struct {
	Sheet     string
	HeaderRow int
	Columns   internal.ColumnMap
	Rows      []internal.ProductRow
}

// BuildCatalog resolves columns at headerIdx and turns the rows below it into
// ProductRows. Rows and columns that are entirely empty are dropped first;
// rows without a model value are excluded. Monetary cells that fail to parse
// become nil, never zero.
func BuildCatalog(table internal.RawTable, headerIdx int) (Catalog, error) {
	if headerIdx < 0 || headerIdx >= len(table.Rows) {
		return Catalog{}, fmt.Errorf("header row %d out of range (sheet has %d rows)", headerIdx, len(table.Rows))
	}

	headers, data := cleanRegion(table.Rows[headerIdx:])

	cols, err := ResolveColumns(headers)
	if err != nil {
		return Catalog{}, err
	}

	modelCol := cols[internal.FieldModel]
	rows := make([]internal.ProductRow, 0, len(data))
	for _, dr := range data {
		model := strings.TrimSpace(cellAt(dr.cells, modelCol.Index))
		if model == "" {
			continue
		}
		row := internal.ProductRow{
			SheetRow: headerIdx + dr.offset + 1,
			Model:    model,
			Brand:    textField(dr.cells, cols, internal.FieldBrand),
			ERPCode:  textField(dr.cells, cols, internal.FieldERPCode),
			Power:    textField(dr.cells, cols, internal.FieldPower),
		}
		row.RetailCash = moneyField(dr.cells, cols, internal.FieldRetailCash)
		row.ProProgram = moneyField(dr.cells, cols, internal.FieldProProgram)
		row.CommissionInvoice = moneyField(dr.cells, cols, internal.FieldCommissionInvoice)
		row.CommissionHand = moneyField(dr.cells, cols, internal.FieldCommissionHand)
		rows = append(rows, row)
	}

	return Catalog{Sheet: table.Sheet, HeaderRow: headerIdx, Columns: cols, Rows: rows}, nil
}

type dataRow struct {
	offset int // row offset from the header row, 1-based for the first data row
	cells  []string
}

// cleanRegion drops columns that are empty across all data rows and rows that
// are empty across all kept columns, preserving order. The header row is
// remapped with the same column selection so resolved indices stay valid.
func cleanRegion(region [][]string) ([]string, []dataRow) {
	headers := region[0]
	width := len(headers)
	for _, row := range region[1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	keep := make([]bool, width)
	for _, row := range region[1:] {
		for j := 0; j < width; j++ {
			if strings.TrimSpace(cellAt(row, j)) != "" {
				keep[j] = true
			}
		}
	}
	if len(region) == 1 {
		for j := 0; j < width; j++ {
			keep[j] = strings.TrimSpace(cellAt(headers, j)) != ""
		}
	}

	remap := func(row []string) []string {
		out := make([]string, 0, width)
		for j := 0; j < width; j++ {
			if keep[j] {
				out = append(out, cellAt(row, j))
			}
		}
		return out
	}

	outHeaders := remap(headers)
	outData := make([]dataRow, 0, len(region)-1)
	for i, row := range region[1:] {
		cells := remap(row)
		empty := true
		for _, c := range cells {
			if strings.TrimSpace(c) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		outData = append(outData, dataRow{offset: i + 1, cells: cells})
	}

	return outHeaders, outData
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func textField(cells []string, cols internal.ColumnMap, field internal.CanonicalField) string {
	rc, ok := cols[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(cellAt(cells, rc.Index))
}

func moneyField(cells []string, cols internal.ColumnMap, field internal.CanonicalField) *float64 {
	rc, ok := cols[field]
	if !ok {
		return nil
	}
	return util.ParseMoney(cellAt(cells, rc.Index))
}

// Labels renders the selection list shown to the operator.
func (c Catalog) Labels() []string {
	out := make([]string, 0, len(c.Rows))
	for _, r := range c.Rows {
		out = append(out, r.Label())
	}
	return out
}
