package ingest

import (
	"time"

	"github.com/google/uuid"

	"ppetrack/internal/domain"
)

// demandRow is one line of the weekly real-demand CSV.
type demandRow struct {
	item      domain.Item
	demand    int
	weekStart *time.Time
	weekEnd   *time.Time

	raw rawBlob
}

func demandFromRecord(rec Record) demandRow {
	demand, _ := rec.Fields["demand"].(int)
	return demandRow{
		item:      rec.Item("item"),
		demand:    demand,
		weekStart: rec.Date("week_start_date"),
		weekEnd:   rec.Date("week_end_date"),
		raw:       rec.Raw,
	}
}

func (r demandRow) toObjects(c *Collector) []any {
	if r.weekStart == nil || r.weekEnd == nil {
		c.Errorf("demand row for %s is missing its week range", r.item)
		return nil
	}
	return []any{domain.Demand{
		ImportedModel: domain.ImportedModel{ID: uuid.New()},
		Item:          r.item,
		Demand:        r.demand,
		StartDate:     *r.weekStart,
		EndDate:       *r.weekEnd,
	}}
}

func demandMapping(co Coercer, items ItemCatalog) SheetMapping {
	return SheetMapping{
		DataFile: domain.DataFileHospitalDemands,
		Kind:     KindDemand,
		Locator:  CSVFile(),
		Columns: []ColumnMapping{
			{Source: "Item", Target: "item", Coerce: items.coerce},
			{Source: "Demand", Target: "demand", Coerce: co.IntOrZero},
			{Source: "Week Start", Target: "week_start_date", Coerce: co.Date},
			{Source: "Week End", Target: "week_end_date", Coerce: co.Date},
		},
		IncludeRaw: true,
	}
}
