package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"ppetrack/internal/domain"
	"ppetrack/internal/port"
)

// ResolveKind discriminates the expected, catalogued ways resolution can
// fail. Callers pattern-match on it instead of catching a hierarchy.
type ResolveKind int

const (
	// ResolveNoMapping means no catalogued layout matches the file at all.
	ResolveNoMapping ResolveKind = iota
	// ResolveSheetNameMismatch means no tab name matched any locator.
	ResolveSheetNameMismatch
	// ResolvePartialFile means some but not all of a family's expected
	// sheets are present.
	ResolvePartialFile
	// ResolveColumnMismatch means a matched sheet's header is missing
	// required columns.
	ResolveColumnMismatch
	// ResolveCSVError means the CSV could not be read or decoded.
	ResolveCSVError
	// ResolveBadWorkbook means the xlsx file is corrupt or unreadable.
	ResolveBadWorkbook
)

func (k ResolveKind) String() string {
	switch k {
	case ResolveNoMapping:
		return "no mapping for file"
	case ResolveSheetNameMismatch:
		return "sheet name mismatch"
	case ResolvePartialFile:
		return "partial file"
	case ResolveColumnMismatch:
		return "column name mismatch"
	case ResolveCSVError:
		return "csv import error"
	case ResolveBadWorkbook:
		return "unreadable workbook"
	default:
		return fmt.Sprintf("ResolveKind(%d)", int(k))
	}
}

// ResolveError is a typed, file-level resolution failure. It carries
// enough structure (expected vs found names, rename suggestions) to
// render an actionable message; it is terminal for the import attempt
// and never retried automatically.
type ResolveError struct {
	Kind       ResolveKind
	File       string
	Sheet      string
	Expected   []string
	Found      []string
	Missing    []string
	Suggestion string
	Err        error
}

func (e *ResolveError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.File)
	if e.Sheet != "" {
		fmt.Fprintf(&b, " (sheet %q)", e.Sheet)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing %s", strings.Join(e.Missing, ", "))
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (%s)", e.Suggestion)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ResolveError) Unwrap() error { return e.Err }

// ResolvedSheet is one validated (mapping, physical sheet) pair with its
// rows already loaded.
type ResolvedSheet struct {
	Mapping SheetMapping
	Sheet   string
	Rows    [][]string
}

// Resolver identifies which catalogued layout an arbitrary uploaded file
// matches. The suggester is injected so rename hints do not tie the
// resolver to one similarity algorithm.
type Resolver struct {
	catalog *Catalog
	suggest port.Suggester
}

// NewResolver creates a Resolver over the given catalog.
func NewResolver(catalog *Catalog, suggest port.Suggester) *Resolver {
	return &Resolver{catalog: catalog, suggest: suggest}
}

// Resolve determines the data file family of path and returns the full
// validated set of (mapping, sheet) pairs for it. All failures are
// *ResolveError values; use errors.As and switch on Kind.
func (r *Resolver) Resolve(path string) ([]ResolvedSheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return r.resolveWorkbook(path)
	case ".csv":
		return r.resolveCSV(path)
	default:
		return nil, &ResolveError{Kind: ResolveNoMapping, File: path, Err: domain.ErrUnsupportedFile}
	}
}

func (r *Resolver) resolveWorkbook(path string) ([]ResolvedSheet, error) {
	wb, err := OpenWorkbook(path)
	if err != nil {
		return nil, &ResolveError{Kind: ResolveBadWorkbook, File: path, Err: err}
	}
	defer wb.Close()

	tabs := wb.SheetNames()

	// Pair every catalogued locator with the tabs it matches.
	type candidate struct {
		mapping SheetMapping
		sheet   string
	}
	var candidates []candidate
	for _, m := range r.catalog.Mappings() {
		if m.Locator.CSV {
			continue
		}
		for _, tab := range tabs {
			if m.Locator.Matches(tab) {
				candidates = append(candidates, candidate{mapping: m, sheet: tab})
			}
		}
	}

	if len(candidates) == 0 {
		return nil, &ResolveError{
			Kind:       ResolveSheetNameMismatch,
			File:       path,
			Found:      tabs,
			Expected:   r.catalog.KnownSheetNames(),
			Suggestion: r.renameHint(tabs, r.catalog.KnownSheetNames()),
		}
	}

	// The first matching tab pins the family; every sheet the family
	// expects must then be present, or the file is partial.
	family := candidates[0].mapping.DataFile
	expected := r.catalog.ForFamily(family)
	matched := make(map[string]candidate, len(candidates))
	for _, c := range candidates {
		if c.mapping.DataFile == family {
			matched[c.mapping.Locator.String()] = c
		}
	}
	var missing []string
	for _, m := range expected {
		if _, ok := matched[m.Locator.String()]; !ok {
			missing = append(missing, m.Locator.String())
		}
	}
	if len(missing) > 0 {
		var found []string
		for loc := range matched {
			found = append(found, loc)
		}
		return nil, &ResolveError{
			Kind:     ResolvePartialFile,
			File:     path,
			Expected: locatorNames(expected),
			Found:    found,
			Missing:  missing,
		}
	}

	var resolved []ResolvedSheet
	for _, m := range expected {
		c := matched[m.Locator.String()]
		rows, err := wb.Rows(c.sheet)
		if err != nil {
			return nil, &ResolveError{Kind: ResolveBadWorkbook, File: path, Sheet: c.sheet, Err: err}
		}
		if rerr := r.checkColumns(path, c.sheet, c.mapping, rows); rerr != nil {
			return nil, rerr
		}
		resolved = append(resolved, ResolvedSheet{Mapping: c.mapping, Sheet: c.sheet, Rows: rows})
	}
	return resolved, nil
}

func (r *Resolver) resolveCSV(path string) ([]ResolvedSheet, error) {
	rows, err := ReadCSV(path)
	if err != nil {
		return nil, &ResolveError{Kind: ResolveCSVError, File: path, Err: err}
	}

	var lastMismatch *ResolveError
	for _, m := range r.catalog.CSVMappings() {
		if rerr := r.checkColumns(path, "", m, rows); rerr != nil {
			lastMismatch = rerr
			continue
		}
		return []ResolvedSheet{{Mapping: m, Rows: rows}}, nil
	}
	if lastMismatch != nil {
		// A header that nearly matched is a better hint than "unknown file".
		return nil, lastMismatch
	}
	return nil, &ResolveError{Kind: ResolveNoMapping, File: path}
}

// checkColumns verifies every required source column is present in the
// sheet's declared header row.
func (r *Resolver) checkColumns(path, sheet string, m SheetMapping, rows [][]string) *ResolveError {
	var header []string
	if len(rows) > m.HeaderRow {
		header = rows[m.HeaderRow]
	}
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, col := range m.SourceColumns() {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ResolveError{
		Kind:       ResolveColumnMismatch,
		File:       path,
		Sheet:      sheet,
		Expected:   m.SourceColumns(),
		Found:      header,
		Missing:    missing,
		Suggestion: r.renameHint(header, missing),
	}
}

// renameHint fuzzy-matches found names against expected ones to produce
// a "did you mean to rename X to Y?" style suggestion.
func (r *Resolver) renameHint(found, expected []string) string {
	if r.suggest == nil {
		return ""
	}
	bestScore := 0.0
	hint := ""
	for _, want := range expected {
		match, score, ok := r.suggest.Closest(want, found)
		if ok && score > bestScore {
			bestScore = score
			hint = fmt.Sprintf("did you mean to rename %q to %q?", match, want)
		}
	}
	return hint
}

func locatorNames(ms []SheetMapping) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Locator.String())
	}
	return out
}

// FamilyOf returns the data file family of a resolved sheet set.
func FamilyOf(sheets []ResolvedSheet) domain.DataFile {
	if len(sheets) == 0 {
		return ""
	}
	return sheets[0].Mapping.DataFile
}
