package ingest

import (
	"fmt"
	"regexp"

	"ppetrack/internal/domain"
)

// RowKind tags which family of row a record belongs to. The set is
// closed: expansion dispatches over it exhaustively, so adding a new
// spreadsheet layout means adding a kind, a mapping and an expansion arm.
type RowKind int

const (
	KindSourcing RowKind = iota
	KindVentilator
	KindMake
	KindDonation
	KindFacilityDelivery
	KindFacilityInventory
	KindInventory
	KindDemand
)

func (k RowKind) String() string {
	switch k {
	case KindSourcing:
		return "sourcing"
	case KindVentilator:
		return "ventilator"
	case KindMake:
		return "make"
	case KindDonation:
		return "donation"
	case KindFacilityDelivery:
		return "facility_delivery"
	case KindFacilityInventory:
		return "facility_inventory"
	case KindInventory:
		return "inventory"
	case KindDemand:
		return "demand"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// ColumnMapping maps one source column onto a target field. A nil Coerce
// keeps the raw cell value (string, or nil when blank).
type ColumnMapping struct {
	Source string
	Target string
	Coerce CoerceFunc
}

// Locator describes how to find the sheet a mapping applies to: an exact
// tab name, a regexp over tab names, or "this is a CSV, no sheet".
type Locator struct {
	Exact string
	Regex *regexp.Regexp
	CSV   bool
}

// ExactSheet locates a tab by its exact name.
func ExactSheet(name string) Locator { return Locator{Exact: name} }

// RegexSheet locates a tab whose name matches pattern.
func RegexSheet(pattern string) Locator {
	return Locator{Regex: regexp.MustCompile(pattern)}
}

// CSVFile marks a mapping as applying to sheet-less CSV files.
func CSVFile() Locator { return Locator{CSV: true} }

// Matches reports whether the locator matches a workbook tab name.
func (l Locator) Matches(sheetName string) bool {
	if l.CSV {
		return false
	}
	if l.Regex != nil {
		return l.Regex.MatchString(sheetName)
	}
	return l.Exact == sheetName
}

func (l Locator) String() string {
	switch {
	case l.CSV:
		return "<csv>"
	case l.Regex != nil:
		return l.Regex.String()
	default:
		return l.Exact
	}
}

// SheetMapping declares one known spreadsheet layout: which data file
// family it belongs to, where its sheet lives, where the header row is
// (zero-based), and how each column maps onto a row field. Within one
// family the full set of mappings accounts for every sheet a genuine
// file contains; a file matching only some of them is a partial file.
type SheetMapping struct {
	DataFile   domain.DataFile
	Kind       RowKind
	Locator    Locator
	HeaderRow  int
	Columns    []ColumnMapping
	IncludeRaw bool
}

// SourceColumns returns the deduplicated set of source column names the
// mapping requires.
func (m SheetMapping) SourceColumns() []string {
	seen := make(map[string]struct{}, len(m.Columns))
	var out []string
	for _, cm := range m.Columns {
		if _, ok := seen[cm.Source]; ok {
			continue
		}
		seen[cm.Source] = struct{}{}
		out = append(out, cm.Source)
	}
	return out
}

// Catalog is the fixed, compiled-in set of known spreadsheet layouts.
// Adding support for a new layout is a code change, not configuration.
type Catalog struct {
	mappings []SheetMapping
}

// NewCatalog builds the full catalog with the given coercion
// configuration and item catalog injected into every column mapping.
func NewCatalog(co Coercer, items ItemCatalog) *Catalog {
	return &Catalog{mappings: []SheetMapping{
		sourcingMapping(co, items),
		ventilatorMapping(co, items),
		makeMapping(co, items),
		donationMapping(co, items),
		facilityDeliveryMapping(co),
		facilityInventoryMapping(co),
		inventoryMapping(co, items),
		demandMapping(co, items),
	}}
}

// Mappings returns every mapping in the catalog.
func (cat *Catalog) Mappings() []SheetMapping {
	return cat.mappings
}

// ForFamily returns all mappings belonging to one data file family.
func (cat *Catalog) ForFamily(df domain.DataFile) []SheetMapping {
	var out []SheetMapping
	for _, m := range cat.mappings {
		if m.DataFile == df {
			out = append(out, m)
		}
	}
	return out
}

// CSVMappings returns the mappings that apply to sheet-less CSV files.
func (cat *Catalog) CSVMappings() []SheetMapping {
	var out []SheetMapping
	for _, m := range cat.mappings {
		if m.Locator.CSV {
			out = append(out, m)
		}
	}
	return out
}

// KnownSheetNames returns the locator descriptions of every sheet-based
// mapping, used for fuzzy rename hints.
func (cat *Catalog) KnownSheetNames() []string {
	var out []string
	for _, m := range cat.mappings {
		if !m.Locator.CSV {
			out = append(out, m.Locator.String())
		}
	}
	return out
}
