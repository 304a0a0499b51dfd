package ingest

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"ppetrack/internal/domain"
)

// contractStatus is the normalized status of a make/buy contract.
type contractStatus string

const (
	contractExecuted    contractStatus = "executed"
	contractInProgress  contractStatus = "inprogress"
	contractPreliminary contractStatus = "preliminary"
)

func parseContractStatus(raw any, c *Collector) any {
	s, _ := raw.(string)
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	switch status := contractStatus(s); status {
	case contractExecuted, contractInProgress, contractPreliminary:
		return status
	default:
		c.Errorf("unknown contract status: %q", s)
		return nil
	}
}

// makeRow is one line of the local-manufacturing delivery tracker.
type makeRow struct {
	item     domain.Item
	quantity *int
	vendor   string

	deliveryDate *time.Time
	// rawDate keeps the unparsed cell to handle "TBD" and recurring
	// "weekly until 5/30" schedules.
	rawDate string

	status contractStatus

	raw rawBlob
}

func makeFromRecord(rec Record) makeRow {
	status, _ := rec.Fields["contract_status"].(contractStatus)
	return makeRow{
		item:         rec.Item("item"),
		quantity:     rec.Int("quantity"),
		vendor:       rec.Str("vendor"),
		deliveryDate: rec.Date("delivery_date"),
		rawDate:      rec.Str("raw_date"),
		status:       status,
		raw:          rec.Raw,
	}
}

func (r makeRow) sanity() []string {
	var errs []string
	if r.quantity == nil {
		errs = append(errs, "quantity is nil")
	}
	if r.vendor == "" {
		errs = append(errs, "vendor is nil")
	}
	return errs
}

var nonDateChars = regexp.MustCompile(`[a-zA-Z ]+`)

func (r makeRow) toObjects(co Coercer, now time.Time, c *Collector) []any {
	// Only executed contracts count.
	if r.status != contractExecuted {
		return nil
	}
	if errs := r.sanity(); len(errs) > 0 {
		c.Errorf("refusing to generate a data model for %s row (%s from %s): %v",
			KindMake, r.item, r.vendor, errs)
		return nil
	}
	purchase := domain.Purchase{
		ImportedModel: domain.ImportedModel{ID: uuid.New()},
		OrderType:     domain.OrderTypeMake,
		Item:          r.item,
		Quantity:      *r.quantity,
		Unit:          domain.UnitEach,
		Vendor:        r.vendor,
		RawData:       r.raw,
	}

	var dates []time.Time
	switch {
	case r.deliveryDate != nil:
		dates = append(dates, *r.deliveryDate)
	case strings.Contains(r.rawDate, "weekly"):
		// "weekly until 5/30" becomes one delivery per week counted
		// backward from the end date to today.
		dateStr := strings.TrimSpace(nonDateChars.ReplaceAllString(r.rawDate, ""))
		end, _ := co.Date(dateStr, c).(time.Time)
		if !end.IsZero() {
			for d := end; d.After(now); d = d.AddDate(0, 0, -7) {
				dates = append(dates, d)
			}
		}
	}

	objs := []any{purchase}
	for _, date := range dates {
		d := date
		objs = append(objs, domain.ScheduledDelivery{
			ImportedModel: domain.ImportedModel{ID: uuid.New()},
			PurchaseID:    purchase.ID,
			DeliveryDate:  &d,
			Quantity:      *r.quantity,
		})
	}
	return objs
}

func makeMapping(co Coercer, items ItemCatalog) SheetMapping {
	return SheetMapping{
		DataFile: domain.DataFileSuppliersPartners,
		Kind:     KindMake,
		Locator:  ExactSheet("Wkly Delivery Tracker - CH"),
		Columns: []ColumnMapping{
			{Source: "Supply / Service", Target: "item", Coerce: items.coerce},
			{Source: "Number of Units", Target: "quantity", Coerce: co.Int},
			{Source: "Delivery Date", Target: "delivery_date", Coerce: co.Date},
			{Source: "Delivery Date", Target: "raw_date"},
			{Source: "Counterparty Name (for procurement)", Target: "vendor"},
			{Source: "Contract Status", Target: "contract_status", Coerce: parseContractStatus},
		},
		IncludeRaw: true,
	}
}
