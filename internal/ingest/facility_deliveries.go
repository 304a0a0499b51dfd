package ingest

import (
	"time"

	"github.com/google/uuid"

	"ppetrack/internal/domain"
)

// facilityItemColumns are the per-item quantity columns of the facility
// delivery summary sheet. Each cell becomes one FacilityDelivery record,
// zero quantities included.
var facilityItemColumns = []string{
	"N95 Respirators", "Other Respirators", "Face Masks", "Face Shields",
	"Goggles", "Gloves", "Gowns", "Ponchos", "Aprons", "Vents",
	"Ventilator Parts", "Post Mortem Bags", "BiPap", "BiPap Parts",
	"Coveralls", "Shoe/Boot Covers", "Scrubs", "Multipurpose PPE",
	"Hand Sanitizer", "Misc", "Misc Non-Deployable",
}

// facilityDeliveryRow is one line of the facility delivery summary: a
// date, a facility, and a quantity for every tracked item column.
type facilityDeliveryRow struct {
	date         *time.Time
	facilityName string
	facilityType string
	quantities   map[string]int

	raw rawBlob
}

func facilityDeliveryFromRecord(rec Record) facilityDeliveryRow {
	quantities := make(map[string]int, len(facilityItemColumns))
	for _, col := range facilityItemColumns {
		if n, ok := rec.Fields[col].(int); ok {
			quantities[col] = n
		}
	}
	return facilityDeliveryRow{
		date:         rec.Date("date"),
		facilityName: rec.Str("facility_name"),
		facilityType: rec.Str("facility_type"),
		quantities:   quantities,
		raw:          rec.Raw,
	}
}

func (r facilityDeliveryRow) toObjects(items ItemCatalog, c *Collector) []any {
	// The sheet ends with a dateless "total" row.
	if r.date == nil {
		return nil
	}
	var objs []any
	for _, col := range facilityItemColumns {
		qt, ok := r.quantities[col]
		if !ok {
			continue
		}
		objs = append(objs, domain.FacilityDelivery{
			ImportedModel: domain.ImportedModel{ID: uuid.New()},
			Date:          *r.date,
			FacilityName:  r.facilityName,
			FacilityType:  r.facilityType,
			Item:          items.Match(col, c),
			Quantity:      qt,
		})
	}
	return objs
}

func facilityDeliveryMapping(co Coercer) SheetMapping {
	columns := []ColumnMapping{
		{Source: "Date", Target: "date", Coerce: co.Date},
		{Source: "Facility Name or Network", Target: "facility_name"},
		{Source: "Facility Type", Target: "facility_type"},
	}
	for _, col := range facilityItemColumns {
		columns = append(columns, ColumnMapping{Source: col, Target: col, Coerce: co.IntOrZero})
	}
	return SheetMapping{
		DataFile:   domain.DataFileFacilityDeliveries,
		Kind:       KindFacilityDelivery,
		Locator:    ExactSheet("Facility Deliveries Summaries"),
		Columns:    columns,
		IncludeRaw: true,
	}
}
