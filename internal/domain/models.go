package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DataImport is one entry in the import ledger: a single upload attempt
// for one data file family. Domain objects created by an import carry a
// source_id pointing back at their entry; the entry exclusively owns
// that batch and the batch is deleted with it.
type DataImport struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	ImportDate   time.Time    `db:"import_date" json:"import_date"`
	Status       ImportStatus `db:"status" json:"status"`
	DataFile     DataFile     `db:"data_file" json:"data_file"`
	CurrentAsOf  *time.Time   `db:"current_as_of" json:"current_as_of"`
	UploadedBy   string       `db:"uploaded_by" json:"uploaded_by"`
	FileChecksum string       `db:"file_checksum" json:"file_checksum"`
	FileName     string       `db:"file_name" json:"file_name"`
}

// Display returns a one-line human description of the upload.
func (d *DataImport) Display() string {
	by := d.UploadedBy
	if by == "" {
		by = "unknown"
	}
	return fmt.Sprintf("File uploaded %s by %s. Filename: %s",
		d.ImportDate.Format("02/01/06"), by, d.FileName)
}

// ImportedModel is the base carried by every persisted domain object.
type ImportedModel struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	SourceID  uuid.UUID `db:"source_id" json:"source_id"`
}

// Purchase is an order of some item: bought, self-made or donated.
type Purchase struct {
	ImportedModel

	OrderType        OrderType       `db:"order_type" json:"order_type"`
	Item             Item            `db:"item" json:"item"`
	Description      string          `db:"description" json:"description"`
	Quantity         int             `db:"quantity" json:"quantity"`
	Unit             Unit            `db:"unit" json:"unit"`
	ReceivedQuantity int             `db:"received_quantity" json:"received_quantity"`
	Vendor           string          `db:"vendor" json:"vendor"`
	Cost             *int            `db:"cost" json:"cost"`
	DonationDate     *time.Time      `db:"donation_date" json:"donation_date"`
	Comment          string          `db:"comment" json:"comment"`
	RawData          json.RawMessage `db:"raw_data" json:"raw_data"`
}

// ScheduledDelivery is a quantity of a purchase due (or arrived) on a date.
type ScheduledDelivery struct {
	ImportedModel

	PurchaseID   uuid.UUID  `db:"purchase_id" json:"purchase_id"`
	DeliveryDate *time.Time `db:"delivery_date" json:"delivery_date"`
	Quantity     int        `db:"quantity" json:"quantity"`
}

// Inventory is a quantity on hand as of a date.
type Inventory struct {
	ImportedModel

	Item     Item            `db:"item" json:"item"`
	Quantity int             `db:"quantity" json:"quantity"`
	AsOf     *time.Time      `db:"as_of" json:"as_of"`
	RawData  json.RawMessage `db:"raw_data" json:"raw_data"`
}

// FacilityDelivery is a quantity of an item delivered to a facility on a date.
type FacilityDelivery struct {
	ImportedModel

	Date         time.Time `db:"date" json:"date"`
	FacilityName string    `db:"facility_name" json:"facility_name"`
	FacilityType string    `db:"facility_type" json:"facility_type"`
	Item         Item      `db:"item" json:"item"`
	Quantity     int       `db:"quantity" json:"quantity"`
}

// Demand is observed real demand for an item over an inclusive date range.
type Demand struct {
	ImportedModel

	Item      Item      `db:"item" json:"item"`
	Demand    int       `db:"demand" json:"demand"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
}

// ObjectBatch is the full set of domain objects produced by one import.
// Persisting a batch is atomic: either every object lands or none do.
type ObjectBatch struct {
	Purchases          []Purchase
	Deliveries         []ScheduledDelivery
	Inventory          []Inventory
	FacilityDeliveries []FacilityDelivery
	Demands            []Demand
}

// Add appends obj to the matching slice of the batch.
func (b *ObjectBatch) Add(obj any) {
	switch o := obj.(type) {
	case Purchase:
		b.Purchases = append(b.Purchases, o)
	case ScheduledDelivery:
		b.Deliveries = append(b.Deliveries, o)
	case Inventory:
		b.Inventory = append(b.Inventory, o)
	case FacilityDelivery:
		b.FacilityDeliveries = append(b.FacilityDeliveries, o)
	case Demand:
		b.Demands = append(b.Demands, o)
	}
}

// Stats returns per-type object counts for the batch.
func (b *ObjectBatch) Stats() map[string]int {
	stats := map[string]int{}
	if n := len(b.Purchases); n > 0 {
		stats["Purchase"] = n
	}
	if n := len(b.Deliveries); n > 0 {
		stats["ScheduledDelivery"] = n
	}
	if n := len(b.Inventory); n > 0 {
		stats["Inventory"] = n
	}
	if n := len(b.FacilityDeliveries); n > 0 {
		stats["FacilityDelivery"] = n
	}
	if n := len(b.Demands); n > 0 {
		stats["Demand"] = n
	}
	return stats
}

// Len returns the total number of objects in the batch.
func (b *ObjectBatch) Len() int {
	return len(b.Purchases) + len(b.Deliveries) + len(b.Inventory) +
		len(b.FacilityDeliveries) + len(b.Demands)
}

// SetSource stamps every object in the batch with the ledger entry id.
func (b *ObjectBatch) SetSource(sourceID uuid.UUID) {
	for i := range b.Purchases {
		b.Purchases[i].SourceID = sourceID
	}
	for i := range b.Deliveries {
		b.Deliveries[i].SourceID = sourceID
	}
	for i := range b.Inventory {
		b.Inventory[i].SourceID = sourceID
	}
	for i := range b.FacilityDeliveries {
		b.FacilityDeliveries[i].SourceID = sourceID
	}
	for i := range b.Demands {
		b.Demands[i].SourceID = sourceID
	}
}

// UploadDelta summarizes a candidate import against the currently active
// one, for human review before finalizing.
type UploadDelta struct {
	Previous       *DataImport    `json:"previous"`
	ActiveStats    map[string]int `json:"active_stats"`
	CandidateStats map[string]int `json:"candidate_stats"`
	NewPurchases   int            `json:"new_purchases"`
}

// FailedImport preserves the raw bytes of an upload that blew up, so the
// operation can be retried later without re-uploading.
type FailedImport struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Data        []byte     `db:"data" json:"-"`
	FileName    string     `db:"file_name" json:"file_name"`
	UploadedAt  time.Time  `db:"uploaded_at" json:"uploaded_at"`
	UploadedBy  string     `db:"uploaded_by" json:"uploaded_by"`
	CurrentAsOf *time.Time `db:"current_as_of" json:"current_as_of"`
	Fixed       bool       `db:"fixed" json:"fixed"`
}
