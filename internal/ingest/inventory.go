package ingest

import (
	"time"

	"github.com/google/uuid"

	"ppetrack/internal/domain"
)

// inventoryRow is one line of the city inventory-on-hand sheet.
type inventoryRow struct {
	item     domain.Item
	quantity *int

	raw rawBlob
}

func inventoryFromRecord(rec Record) inventoryRow {
	return inventoryRow{
		item:     rec.Item("item"),
		quantity: rec.Int("quantity"),
		raw:      rec.Raw,
	}
}

func (r inventoryRow) toObjects(c *Collector) []any {
	if r.quantity == nil {
		c.Errorf("inventory row for %s has no quantity", r.item)
		return nil
	}
	return []any{domain.Inventory{
		ImportedModel: domain.ImportedModel{ID: uuid.New()},
		Item:          r.item,
		Quantity:      *r.quantity,
		RawData:       r.raw,
	}}
}

func inventoryMapping(co Coercer, items ItemCatalog) SheetMapping {
	return SheetMapping{
		DataFile: domain.DataFileInventory,
		Kind:     KindInventory,
		Locator:  ExactSheet("InventoryHand"),
		Columns: []ColumnMapping{
			{Source: "Item", Target: "item", Coerce: items.coerce},
			{Source: "CITY", Target: "quantity", Coerce: co.Int},
		},
		IncludeRaw: true,
	}
}

// facilityInventoryColumns pairs each per-item column of the facility
// inventory-levels sheet with the Item it reports on.
var facilityInventoryColumns = []struct {
	column string
	item   domain.Item
}{
	{"N95 Respirators", domain.ItemN95Surgical},
	{"Face Masks", domain.ItemMaskOther},
	{"Eyewear", domain.ItemGenericEyewear},
	{"Gloves", domain.ItemGloves},
	{"Gowns", domain.ItemGown},
	{"Ponchos", domain.ItemPonchos},
	{"Coveralls", domain.ItemCoveralls},
	{"Vents", domain.ItemVentsFull},
	{"BiPaps", domain.ItemBiPAPMachines},
	{"Multipurpose PPE", domain.ItemPPEOther},
	{"Post Mortem Bags", domain.ItemBodyBags},
	{"Scrubs", domain.ItemScrubs},
}

// facilityInventoryRow is one line of the facility inventory-levels
// sheet: a date and a quantity on hand for every tracked item.
type facilityInventoryRow struct {
	date       *time.Time
	quantities map[string]int

	raw rawBlob
}

func facilityInventoryFromRecord(rec Record) facilityInventoryRow {
	quantities := make(map[string]int, len(facilityInventoryColumns))
	for _, fc := range facilityInventoryColumns {
		if n, ok := rec.Fields[fc.column].(int); ok {
			quantities[fc.column] = n
		}
	}
	return facilityInventoryRow{
		date:       rec.Date("date"),
		quantities: quantities,
		raw:        rec.Raw,
	}
}

func (r facilityInventoryRow) toObjects(c *Collector) []any {
	if r.date == nil {
		c.Errorf("inventory levels row has no date")
		return nil
	}
	var objs []any
	for _, fc := range facilityInventoryColumns {
		objs = append(objs, domain.Inventory{
			ImportedModel: domain.ImportedModel{ID: uuid.New()},
			Item:          fc.item,
			Quantity:      r.quantities[fc.column],
			AsOf:          r.date,
			RawData:       r.raw,
		})
	}
	return objs
}

func facilityInventoryMapping(co Coercer) SheetMapping {
	columns := []ColumnMapping{
		{Source: "Date", Target: "date", Coerce: co.Date},
	}
	for _, fc := range facilityInventoryColumns {
		columns = append(columns, ColumnMapping{Source: fc.column, Target: fc.column, Coerce: co.IntOrZero})
	}
	return SheetMapping{
		DataFile:   domain.DataFileFacilityDeliveries,
		Kind:       KindFacilityInventory,
		Locator:    ExactSheet("Inventory Levels"),
		Columns:    columns,
		IncludeRaw: true,
	}
}
