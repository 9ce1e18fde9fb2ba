package pipeline

import (
	"pumpquote/internal"
)

// LoadOptions control one catalog build. HeaderRow overrides the header
// heuristic when > 0 (1-based, as the operator sees rows); 0 means auto.
type LoadOptions struct {
	InputType string
	Sheet     string
	HeaderRow int
	ScanLimit int
}

// LoadCatalog runs the full ingestion pipeline for one file: read the table,
// locate (or accept) the header row, resolve columns, filter and coerce rows.
// Fatal conditions (header not found, required columns unresolved) abort
// before any catalog is produced; there is no partial output.
func LoadCatalog(path string, opts LoadOptions) (Catalog, error) {
	table, err := LoadTable(path, opts.InputType, opts.Sheet)
	if err != nil {
		return Catalog{}, err
	}
	return BuildCatalogFromTable(table, opts)
}

// BuildCatalogFromTable is LoadCatalog minus the file read, for callers that
// already hold the raw table (mail watcher, tests).
func BuildCatalogFromTable(table internal.RawTable, opts LoadOptions) (Catalog, error) {
	headerIdx := opts.HeaderRow - 1
	if opts.HeaderRow <= 0 {
		var err error
		headerIdx, err = LocateHeaderRow(table.Rows, opts.ScanLimit)
		if err != nil {
			return Catalog{}, err
		}
	}
	return BuildCatalog(table, headerIdx)
}
