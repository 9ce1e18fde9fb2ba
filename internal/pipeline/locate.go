package pipeline

import (
	"errors"
	"strings"

	"pumpquote/internal"
	"pumpquote/internal/util"
)

// ErrHeaderNotFound means no row within the scan bound carried both header
// markers. Fatal for the upload; the operator can retry with --headerRow.
var ErrHeaderNotFound = errors.New("header row not found within scan limit")

// LocateHeaderRow finds the zero-based index of the most likely header row.
// Sheets arrive with a varying number of title and merged rows on top, so the
// scan is content-based: a row qualifies when it has a cell equal to a known
// "model" header variant and a cell containing "erp". The first qualifying row
// within the scan limit wins.
func LocateHeaderRow(rows [][]string, limit int) (int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > len(rows) {
		limit = len(rows)
	}

	modelVariants := make([]string, 0)
	for _, alias := range fieldAliases[internal.FieldModel] {
		modelVariants = append(modelVariants, util.Normalize(alias))
	}

	for i := 0; i < limit; i++ {
		hasModel := false
		hasERP := false
		for _, cell := range rows[i] {
			norm := util.Normalize(cell)
			if norm == "" {
				continue
			}
			for _, variant := range modelVariants {
				if norm == variant {
					hasModel = true
					break
				}
			}
			if strings.Contains(norm, "erp") {
				hasERP = true
			}
		}
		if hasModel && hasERP {
			return i, nil
		}
	}

	return -1, ErrHeaderNotFound
}
