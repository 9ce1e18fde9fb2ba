package pipeline

import (
	"fmt"
	"strings"

	"pumpquote/internal"
	"pumpquote/internal/util"
)

// fieldAliases lists the known header spellings per canonical field, best
// variant first. Sheets come from several sources and revisions, so the lists
// mix Greek (with and without diacritics) and English.
var fieldAliases = map[internal.CanonicalField][]string{
	internal.FieldBrand:             {"Μάρκα", "Μαρκα", "Brand"},
	internal.FieldERPCode:           {"Κωδικός ERP", "Κωδ. ERP", "ERP"},
	internal.FieldModel:             {"Μοντέλο", "Model", "Μοντελο"},
	internal.FieldPower:             {"Ισχύς", "kW", "ΙΣΧΥΣ"},
	internal.FieldRetailCash:        {"Ιδιώτης Μετρητοίς", "Λιανική Μετρητοίς", "Retail"},
	internal.FieldProProgram:        {"Υδραυλικοί - Μηχανικοί Προγράμματα", "Επαγγελματίες Προγράμματα", "Program"},
	internal.FieldCommissionInvoice: {"Προμήθεια με παροχής με ΦΠΑ", "Προμήθεια παροχής (με ΦΠΑ)"},
	internal.FieldCommissionHand:    {"Προμήθεια χέρι", "Προμήθεια στο χέρι"},
}

// resolveOrder keeps ColumnMap construction and error reporting deterministic.
var resolveOrder = []internal.CanonicalField{
	internal.FieldBrand,
	internal.FieldERPCode,
	internal.FieldModel,
	internal.FieldPower,
	internal.FieldRetailCash,
	internal.FieldProProgram,
	internal.FieldCommissionInvoice,
	internal.FieldCommissionHand,
}

// MissingColumnsError reports the required canonical fields that could not be
// bound to any header.
type MissingColumnsError struct {
	Fields []internal.CanonicalField
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, string(f))
	}
	return "unresolved required columns: " + strings.Join(names, ", ")
}

// ResolveColumns binds canonical fields to the actual headers of the chosen
// header row. Per field: an exact normalized match first (alias order, then
// header order), then a substring match (header order, then alias order).
// Exact matching never produces false positives; the substring pass picks up
// abbreviated or decorated headers. Optional fields may stay unbound.
func ResolveColumns(headers []string) (internal.ColumnMap, error) {
	normHeaders := make([]string, len(headers))
	for i, h := range headers {
		normHeaders[i] = util.Normalize(h)
	}

	out := internal.ColumnMap{}
	for _, field := range resolveOrder {
		if idx := matchField(normHeaders, fieldAliases[field]); idx >= 0 {
			out[field] = internal.ResolvedColumn{Index: idx, Header: headers[idx]}
		}
	}

	missing := make([]internal.CanonicalField, 0)
	for _, field := range internal.RequiredFields() {
		if _, ok := out[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Fields: missing}
	}

	return out, nil
}

func matchField(normHeaders []string, aliases []string) int {
	normAliases := make([]string, len(aliases))
	for i, a := range aliases {
		normAliases[i] = util.Normalize(a)
	}

	for _, alias := range normAliases {
		for i, h := range normHeaders {
			if h != "" && h == alias {
				return i
			}
		}
	}

	for i, h := range normHeaders {
		if h == "" {
			continue
		}
		for _, alias := range normAliases {
			if strings.Contains(h, alias) {
				return i
			}
		}
	}

	return -1
}

// DescribeColumns renders the resolved bindings for display, unresolved
// optional fields included.
func DescribeColumns(cols internal.ColumnMap) string {
	var b strings.Builder
	for _, field := range resolveOrder {
		if rc, ok := cols[field]; ok {
			fmt.Fprintf(&b, "%-20s -> %q (column %d)\n", field, rc.Header, rc.Index+1)
		} else {
			fmt.Fprintf(&b, "%-20s -> (unresolved)\n", field)
		}
	}
	return b.String()
}
