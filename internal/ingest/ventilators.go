package ingest

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ppetrack/internal/domain"
)

// ventilatorRow is one line of the H+H ventilator ordering tab.
type ventilatorRow struct {
	equipType         string
	functionality     string
	vendor            string
	quantity          *int
	quantityDelivered *int
	eta               *time.Time
	delivered         string

	raw rawBlob
}

func ventilatorFromRecord(rec Record) ventilatorRow {
	return ventilatorRow{
		equipType:         rec.Str("type"),
		functionality:     rec.Str("functionality"),
		vendor:            rec.Str("vendor"),
		quantity:          rec.Int("quantity"),
		quantityDelivered: rec.Int("quantity_delivered"),
		eta:               rec.Date("eta"),
		delivered:         rec.Str("delivered"),
		raw:               rec.Raw,
	}
}

func (r ventilatorRow) toObjects(c *Collector) []any {
	// Already-delivered orders are counted by the inventory feed instead.
	if r.delivered == "Yes" {
		return nil
	}
	if r.eta == nil {
		return nil
	}

	var item domain.Item
	switch r.functionality {
	case "FULL", "CRITICAL CARE":
		item = domain.ItemVentsFull
	case "LIMITED":
		item = domain.ItemVentsNonFull
	default:
		c.Errorf("unknown ventilator type: %s", r.functionality)
		return nil
	}

	purchase := domain.Purchase{
		ImportedModel:    domain.ImportedModel{ID: uuid.New()},
		OrderType:        domain.OrderTypePurchase,
		Item:             item,
		Quantity:         intOrZero(r.quantity),
		Unit:             domain.UnitEach,
		ReceivedQuantity: intOrZero(r.quantityDelivered),
		Vendor:           r.vendor,
		Description:      fmt.Sprintf("Ventilator %s (%s)", r.equipType, r.functionality),
		RawData:          r.raw,
	}
	delivery := domain.ScheduledDelivery{
		ImportedModel: domain.ImportedModel{ID: uuid.New()},
		PurchaseID:    purchase.ID,
		DeliveryDate:  r.eta,
		Quantity:      intOrZero(r.quantity),
	}
	return []any{purchase, delivery}
}

func ventilatorMapping(co Coercer, items ItemCatalog) SheetMapping {
	return SheetMapping{
		DataFile: domain.DataFileOrderingCharts,
		Kind:     KindVentilator,
		Locator:  RegexSheet(`H\+H \d+-\d+ \d+[AP]M`), // e.g. "H+H 4-3 3PM"
		Columns: []ColumnMapping{
			{Source: "Equipment Detail", Target: "type"},
			{Source: "Adjusted ETA", Target: "eta", Coerce: co.Date},
			{Source: "Quantity Ordered", Target: "quantity", Coerce: co.Int},
			{Source: "Quantity Delivered", Target: "quantity_delivered", Coerce: co.Int},
			{Source: "Functionality", Target: "functionality"},
			{Source: "Supplier", Target: "vendor"},
			{Source: "Delivered?", Target: "delivered"},
		},
		IncludeRaw: true,
	}
}
