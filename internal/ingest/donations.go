package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"ppetrack/internal/domain"
)

// donationDaysGuess is how far past the notification date we guess a
// donation will take to arrive when no pickup has happened yet.
const donationDaysGuess = 5

// donationRow is one line of the city-hall donations tracker.
type donationRow struct {
	item     domain.Item
	quantity *int

	donor         string
	contactPerson string
	description   string
	pickedUp      bool
	receivedDate  *time.Time
	notified      *time.Time
	comments      string

	raw rawBlob
}

func donationFromRecord(rec Record) donationRow {
	return donationRow{
		item:          rec.Item("item"),
		quantity:      rec.Int("quantity"),
		donor:         rec.Str("donor"),
		contactPerson: rec.Str("contact_person"),
		description:   rec.Str("description"),
		pickedUp:      rec.Str("distribution_status") == "Picked Up",
		receivedDate:  rec.Date("received_date"),
		notified:      rec.Date("notification_date"),
		comments:      rec.Str("comments"),
		raw:           rec.Raw,
	}
}

// guessDeliveryDate estimates when an unpicked-up donation will land:
// a few days past notification, clamped so it never sits in the past.
func (r donationRow) guessDeliveryDate(now time.Time) *time.Time {
	if r.receivedDate != nil {
		return r.receivedDate
	}
	if r.notified == nil {
		return nil
	}
	guess := r.notified.AddDate(0, 0, donationDaysGuess)
	if guess.Before(now) {
		guess = now.AddDate(0, 0, donationDaysGuess)
	}
	return &guess
}

func (r donationRow) toObjects(now time.Time, c *Collector) []any {
	// Donations already picked up are in inventory, not the pipeline.
	if r.pickedUp {
		return nil
	}
	if r.quantity == nil {
		c.Warnf("ignoring donation row with no quantity (donor %s)", r.donor)
		return nil
	}
	purchase := domain.Purchase{
		ImportedModel: domain.ImportedModel{ID: uuid.New()},
		OrderType:     domain.OrderTypeDonation,
		Item:          r.item,
		Description:   r.description,
		Quantity:      *r.quantity,
		Unit:          domain.UnitEach,
		Vendor:        r.donor,
		Comment:       r.comments,
		DonationDate:  r.notified,
		RawData:       r.raw,
	}

	objs := []any{purchase}
	if date := r.guessDeliveryDate(now); date != nil {
		objs = append(objs, domain.ScheduledDelivery{
			ImportedModel: domain.ImportedModel{ID: uuid.New()},
			PurchaseID:    purchase.ID,
			DeliveryDate:  date,
			Quantity:      *r.quantity,
		})
	}
	return objs
}

// dateOrPending treats a "pending" receiving status as no date and
// parses everything else as a date.
func dateOrPending(co Coercer) CoerceFunc {
	return func(raw any, c *Collector) any {
		if s, ok := raw.(string); ok && strings.Contains(strings.ToLower(s), "pending") {
			return nil
		}
		return co.Date(raw, c)
	}
}

func donationMapping(co Coercer, items ItemCatalog) SheetMapping {
	return SheetMapping{
		DataFile:  domain.DataFileDonations,
		Kind:      KindDonation,
		Locator:   ExactSheet("{e9b4915b-d988-ea11-a328-64006a"),
		HeaderRow: 2,
		Columns: []ColumnMapping{
			{Source: "Donor", Target: "donor"},
			{Source: "Notified Date", Target: "notification_date", Coerce: co.Date},
			{Source: "Person of Contact", Target: "contact_person"},
			{Source: "Detailed Item Description", Target: "description"},
			{Source: "Critical Asset", Target: "item", Coerce: items.coerce},
			{Source: "Total Quantity ", Target: "quantity", Coerce: co.Int},
			{Source: "Distribution Status", Target: "distribution_status"},
			{Source: "Receiving Status", Target: "received_date", Coerce: dateOrPending(co)},
			{Source: "Comments", Target: "comments", Coerce: co.StringOrNone},
		},
		IncludeRaw: true,
	}
}
