package pipeline

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func mkXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	if _, err := f.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func priceListRows() [][]any {
	return [][]any{
		{"Τιμοκατάλογος αντλίες 2026"},
		{"Κωδικός ERP", "Μοντέλο", "Ισχύς", "Ιδιώτης Μετρητοίς", "Επαγγελματίες Προγράμματα"},
		{"HP-0001", "Aqua 9", "9 kW", 450.0, 420.0},
		{"HP-0002", "Aqua 12", "12 kW", 520.0, 490.0},
	}
}

func TestParseXLSX(t *testing.T) {
	blob := mkXLSX(t, priceListRows())
	table, err := ParseXLSX(blob, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 4 {
		t.Fatalf("rows=%d", len(table.Rows))
	}
	if table.Rows[1][0] != "Κωδικός ERP" {
		t.Fatalf("header cell=%q", table.Rows[1][0])
	}
}

func TestParseHTMLTable(t *testing.T) {
	html := `<html><body><p>Νέος τιμοκατάλογος</p><table>
<tr><th>Κωδικός ERP</th><th>Μοντέλο</th><th>Ισχύς</th><th>Ιδιώτης Μετρητοίς</th><th>Επαγγελματίες Προγράμματα</th></tr>
<tr><td>HP-0001</td><td>Aqua 9</td><td>9 kW</td><td>450,00</td><td>420,00</td></tr>
</table></body></html>`
	table, err := ParseHTMLTable(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	catalog, err := BuildCatalogFromTable(table, LoadOptions{ScanLimit: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog.Rows) != 1 {
		t.Fatalf("rows=%d", len(catalog.Rows))
	}
	row := catalog.Rows[0]
	if row.RetailCash == nil || *row.RetailCash != 450 {
		t.Fatalf("retail: %v", row.RetailCash)
	}
}

func TestLoadCatalogFromXLSXFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "pricelist.xlsx")
	if err := os.WriteFile(path, mkXLSX(t, priceListRows()), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(path, LoadOptions{ScanLimit: 20})
	if err != nil {
		t.Fatal(err)
	}
	if catalog.HeaderRow != 1 {
		t.Fatalf("headerRow=%d", catalog.HeaderRow)
	}
	if len(catalog.Rows) != 2 {
		t.Fatalf("rows=%d", len(catalog.Rows))
	}
}

func TestLoadCatalogHeaderOverride(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "pricelist.xlsx")
	if err := os.WriteFile(path, mkXLSX(t, priceListRows()), 0o644); err != nil {
		t.Fatal(err)
	}

	// 1-based override pointing at the real header row.
	catalog, err := LoadCatalog(path, LoadOptions{HeaderRow: 2})
	if err != nil {
		t.Fatal(err)
	}
	if catalog.HeaderRow != 1 {
		t.Fatalf("headerRow=%d", catalog.HeaderRow)
	}
}

func mkRawEmail(t *testing.T, subject, attachmentName string, attachment []byte) []byte {
	t.Helper()
	var b strings.Builder
	b.WriteString("From: supplier@example.com\r\n")
	b.WriteString("To: sales@example.com\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/mixed; boundary=\"b1\"\r\n\r\n")
	b.WriteString("--b1\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString("attached\r\n")
	b.WriteString("--b1\r\n")
	b.WriteString("Content-Type: application/octet-stream; name=\"" + attachmentName + "\"\r\n")
	b.WriteString("Content-Disposition: attachment; filename=\"" + attachmentName + "\"\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	b.WriteString(base64.StdEncoding.EncodeToString(attachment))
	b.WriteString("\r\n--b1--\r\n")
	return []byte(b.String())
}

func TestExtractPriceListFromEmailRaw(t *testing.T) {
	blob := mkXLSX(t, priceListRows())
	raw := mkRawEmail(t, "Pricelist pumps 2026", "pricelist.xlsx", blob)

	att, err := ExtractPriceListFromEmailRaw(raw)
	if err != nil {
		t.Fatal(err)
	}
	if att == nil {
		t.Fatal("no attachment found")
	}
	if att.FileName != "pricelist.xlsx" {
		t.Fatalf("name=%q", att.FileName)
	}

	// The extracted sheet must quote identically to loading the file directly.
	table, err := ParseXLSX(att.Content, "")
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := BuildCatalogFromTable(table, LoadOptions{ScanLimit: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog.Rows) != 2 {
		t.Fatalf("rows=%d", len(catalog.Rows))
	}
}

func TestExtractPriceListNoSpreadsheet(t *testing.T) {
	raw := mkRawEmail(t, "Invoice", "notes.txt", []byte("hello"))
	att, err := ExtractPriceListFromEmailRaw(raw)
	if err != nil {
		t.Fatal(err)
	}
	if att != nil {
		t.Fatalf("att=%+v", att)
	}
}
