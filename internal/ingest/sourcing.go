package ingest

import (
	"time"

	"github.com/google/uuid"

	"ppetrack/internal/domain"
)

// sourcingRow is one line of the DCAS daily sourcing tab: an order with
// up to two scheduled deliveries.
type sourcingRow struct {
	status      string
	item        domain.Item
	description string
	quantity    *int
	vendor      string

	deliveryDay1         *time.Time
	deliveryDay1Quantity *int
	deliveryDay2         *time.Time
	deliveryDay2Quantity *int

	receivedQuantity *int

	raw rawBlob
}

func sourcingFromRecord(rec Record) sourcingRow {
	return sourcingRow{
		status:               rec.Str("status"),
		item:                 rec.Item("item"),
		description:          rec.Str("description"),
		quantity:             rec.Int("quantity"),
		vendor:               rec.Str("vendor"),
		deliveryDay1:         rec.Date("delivery_day_1"),
		deliveryDay1Quantity: rec.Int("delivery_day_1_quantity"),
		deliveryDay2:         rec.Date("delivery_day_2"),
		deliveryDay2Quantity: rec.Int("delivery_day_2_quantity"),
		receivedQuantity:     rec.Int("received_quantity"),
		raw:                  rec.Raw,
	}
}

func (r sourcingRow) sanity(c *Collector) []string {
	delivered := intOrZero(r.deliveryDay1Quantity) + intOrZero(r.deliveryDay2Quantity)
	var errs []string
	// Lots of rows legitimately have no delivery dates; only the
	// over-delivery case is worth flagging, and only as a warning.
	if r.quantity != nil && delivered > *r.quantity {
		c.Warnf("claimed delivered quantity (%d) > total quantity %d for %s from %s",
			delivered, *r.quantity, r.item, r.vendor)
	}
	if r.quantity == nil {
		errs = append(errs, "quantity is nil")
	}
	return errs
}

func (r sourcingRow) toObjects(c *Collector) []any {
	// Only completed orders count toward supply.
	if r.status != "Completed" {
		return nil
	}
	if errs := r.sanity(c); len(errs) > 0 {
		c.Errorf("refusing to generate a data model for %s row (%s from %s): %v",
			KindSourcing, r.item, r.vendor, errs)
		return nil
	}
	purchase := domain.Purchase{
		ImportedModel:    domain.ImportedModel{ID: uuid.New()},
		OrderType:        domain.OrderTypePurchase,
		Item:             r.item,
		Description:      r.description,
		Quantity:         *r.quantity,
		Unit:             domain.UnitEach,
		ReceivedQuantity: intOrZero(r.receivedQuantity),
		Vendor:           r.vendor,
		RawData:          r.raw,
	}
	objs := []any{purchase}
	days := []struct {
		date     *time.Time
		quantity *int
	}{
		{r.deliveryDay1, r.deliveryDay1Quantity},
		{r.deliveryDay2, r.deliveryDay2Quantity},
	}
	for _, day := range days {
		if day.date == nil {
			continue
		}
		quantity := intOrZero(day.quantity)
		if day.quantity == nil {
			quantity = *r.quantity
			c.Warnf("assuming that a null quantity means a full delivery for %s from %s",
				r.item, r.vendor)
		}
		objs = append(objs, domain.ScheduledDelivery{
			ImportedModel: domain.ImportedModel{ID: uuid.New()},
			PurchaseID:    purchase.ID,
			DeliveryDate:  day.date,
			Quantity:      quantity,
		})
	}
	return objs
}

func sourcingMapping(co Coercer, items ItemCatalog) SheetMapping {
	return SheetMapping{
		DataFile: domain.DataFileOrderingCharts,
		Kind:     KindSourcing,
		Locator:  RegexSheet(`DCAS \d+-\d+ \d+[AP]M`), // e.g. "DCAS 4-12 3PM"
		Columns: []ColumnMapping{
			{Source: "Critical Asset", Target: "item", Coerce: items.coerce},
			{Source: "Description", Target: "description"},
			{Source: "Total Qty Ordered", Target: "quantity", Coerce: co.Int},
			{Source: "Received Qty", Target: "received_quantity", Coerce: co.Int},
			{Source: "Delivery 1 Week Of", Target: "delivery_day_1", Coerce: co.Date},
			{Source: "Delivery 1 Qty", Target: "delivery_day_1_quantity", Coerce: co.Int},
			{Source: "Deliver 2 Week Of", Target: "delivery_day_2", Coerce: co.Date},
			{Source: "Delivery 2 Qty", Target: "delivery_day_2_quantity", Coerce: co.Int},
			{Source: "Vendor", Target: "vendor"},
			{Source: "Status", Target: "status"},
		},
		IncludeRaw: true,
	}
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
