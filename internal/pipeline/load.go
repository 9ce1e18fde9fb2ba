package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	"github.com/xuri/excelize/v2"

	"pumpquote/internal"
)

// ParseXLSX reads one worksheet into a RawTable. An empty sheet name selects
// the first sheet of the workbook.
func ParseXLSX(blob []byte, sheet string) (internal.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return internal.RawTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return internal.RawTable{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return internal.RawTable{Sheet: sheet, Rows: rows}, nil
}

// ListSheets returns the worksheet names of a workbook, in file order.
func ListSheets(blob []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// ParseHTMLTable reads the first <table> of an HTML document into a RawTable.
// Some suppliers paste the price list into the mail body instead of attaching
// the workbook.
func ParseHTMLTable(r io.Reader) (internal.RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return internal.RawTable{}, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return internal.RawTable{}, fmt.Errorf("no <table> found in html input")
	}

	rows := make([][]string, 0)
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := make([]string, 0)
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		rows = append(rows, cells)
	})

	return internal.RawTable{Sheet: "html", Rows: rows}, nil
}

// PriceListAttachment is a spreadsheet pulled out of a raw MIME message.
type PriceListAttachment struct {
	FileName string
	Content  []byte
	Subject  string
}

// ExtractPriceListFromEmailRaw finds the first spreadsheet attachment of a raw
// RFC 5322 message. Messages without one are not an error here; the caller
// decides based on the nil return.
func ExtractPriceListFromEmailRaw(raw []byte) (*PriceListAttachment, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse mime: %w", err)
	}

	for _, att := range env.Attachments {
		name := strings.TrimSpace(att.FileName)
		lower := strings.ToLower(name)
		if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls") {
			return &PriceListAttachment{
				FileName: name,
				Content:  att.Content,
				Subject:  env.GetHeader("Subject"),
			}, nil
		}
	}
	return nil, nil
}

// AttachmentNames lists the attachment file names of a raw message, for the
// price-list detection heuristic.
func AttachmentNames(raw []byte) ([]string, string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("parse mime: %w", err)
	}
	names := make([]string, 0, len(env.Attachments))
	for _, att := range env.Attachments {
		names = append(names, strings.TrimSpace(att.FileName))
	}
	return names, env.GetHeader("Subject"), nil
}

// LoadTable reads a RawTable from a file on disk. inputType selects the
// loader: "xlsx" (default by extension) or "html".
func LoadTable(path, inputType, sheet string) (internal.RawTable, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return internal.RawTable{}, err
	}

	switch resolveInputType(path, inputType) {
	case "xlsx":
		return ParseXLSX(blob, sheet)
	case "html":
		return ParseHTMLTable(bytes.NewReader(blob))
	default:
		return internal.RawTable{}, fmt.Errorf("unsupported input type: %s", inputType)
	}
}

func resolveInputType(path, inputType string) string {
	t := strings.ToLower(strings.TrimSpace(inputType))
	if t != "" {
		return t
	}
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return "html"
	}
	return "xlsx"
}
