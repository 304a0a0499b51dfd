package ingest

import "time"

// Expander turns extracted records into persistable domain objects. The
// coercer and item catalog are the same injected configuration used to
// build the catalog; Now anchors schedule expansion and delivery-date
// guessing so tests can pin it.
type Expander struct {
	Coercer Coercer
	Items   ItemCatalog
	Now     func() time.Time
}

// NewExpander returns an Expander using the wall clock.
func NewExpander(co Coercer, items ItemCatalog) *Expander {
	return &Expander{Coercer: co, Items: items, Now: time.Now}
}

// Expand applies the record's family-specific business rules and returns
// zero or more domain objects. A row that fails validation reports the
// specific reason to the collector and expands to nothing; it never
// aborts sibling rows. Dispatch is a closed switch over RowKind so the
// set of supported layouts is enumerable in one place.
func (e *Expander) Expand(rec Record, c *Collector) []any {
	switch rec.Kind {
	case KindSourcing:
		return sourcingFromRecord(rec).toObjects(c)
	case KindVentilator:
		return ventilatorFromRecord(rec).toObjects(c)
	case KindMake:
		return makeFromRecord(rec).toObjects(e.Coercer, e.Now(), c)
	case KindDonation:
		return donationFromRecord(rec).toObjects(e.Now(), c)
	case KindFacilityDelivery:
		return facilityDeliveryFromRecord(rec).toObjects(e.Items, c)
	case KindFacilityInventory:
		return facilityInventoryFromRecord(rec).toObjects(c)
	case KindInventory:
		return inventoryFromRecord(rec).toObjects(c)
	case KindDemand:
		return demandFromRecord(rec).toObjects(c)
	default:
		c.Errorf("no expansion for row kind %s", rec.Kind)
		return nil
	}
}
