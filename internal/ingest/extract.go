package ingest

import (
	"encoding/json"
	"strings"
	"time"

	"ppetrack/internal/domain"
)

// rawBlob is the original spreadsheet row serialized for audit.
type rawBlob = json.RawMessage

// Record is one extracted spreadsheet row: coerced field values keyed by
// target name, plus the opaque raw row when the mapping asks for it.
// Records are built once per physical row and discarded after expansion.
type Record struct {
	Kind   RowKind
	Fields map[string]any
	Raw    rawBlob
}

// Str returns a string field, or "" when absent.
func (r Record) Str(key string) string {
	s, _ := r.Fields[key].(string)
	return s
}

// Int returns an integer field, or nil when absent or uncoercible.
func (r Record) Int(key string) *int {
	if n, ok := r.Fields[key].(int); ok {
		return &n
	}
	return nil
}

// Date returns a date field, or nil when absent or uncoercible.
func (r Record) Date(key string) *time.Time {
	if t, ok := r.Fields[key].(time.Time); ok {
		return &t
	}
	return nil
}

// Item returns an item field, or ItemUnknown when absent.
func (r Record) Item(key string) domain.Item {
	if item, ok := r.Fields[key].(domain.Item); ok {
		return item
	}
	return domain.ItemUnknown
}

// Extract applies a sheet mapping to the resolved sheet's rows, yielding
// one Record per non-blank data row. Rows where every mapped cell is
// blank are sheet padding or totals rows and are skipped. Each column is
// coerced independently: one bad cell degrades to a missing field and
// never blocks its siblings. Extraction is restartable by re-resolving
// the same path.
func Extract(sheet ResolvedSheet, c *Collector) []Record {
	m := sheet.Mapping
	if len(sheet.Rows) <= m.HeaderRow {
		return nil
	}
	header := sheet.Rows[m.HeaderRow]
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[name] = i
	}

	var records []Record
	for _, row := range sheet.Rows[m.HeaderRow+1:] {
		if blankRow(row, m, colIdx) {
			continue
		}
		rec := Record{Kind: m.Kind, Fields: make(map[string]any, len(m.Columns))}
		for _, cm := range m.Columns {
			raw := cellValue(row, colIdx, cm.Source)
			if cm.Coerce != nil {
				rec.Fields[cm.Target] = cm.Coerce(raw, c)
			} else {
				rec.Fields[cm.Target] = raw
			}
		}
		if m.IncludeRaw {
			rec.Raw = rawRow(header, row)
		}
		records = append(records, rec)
	}
	return records
}

// cellValue looks up one cell by source column name. Blank cells become
// nil so coercers see the same absent-value shape regardless of whether
// the sheet stored an empty string or nothing at all.
func cellValue(row []string, colIdx map[string]int, source string) any {
	i, ok := colIdx[source]
	if !ok || i >= len(row) {
		return nil
	}
	if strings.TrimSpace(row[i]) == "" {
		return nil
	}
	return row[i]
}

func blankRow(row []string, m SheetMapping, colIdx map[string]int) bool {
	for _, cm := range m.Columns {
		if cellValue(row, colIdx, cm.Source) != nil {
			return false
		}
	}
	return true
}

func rawRow(header, row []string) rawBlob {
	m := make(map[string]string, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		if i < len(row) {
			m[name] = row[i]
		} else {
			m[name] = ""
		}
	}
	blob, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return blob
}
