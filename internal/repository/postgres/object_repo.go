package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ppetrack/internal/domain"
	"ppetrack/internal/port"
)

type objectRepo struct {
	db        *sqlx.DB
	batchSize int
}

// NewObjectRepo creates a new PostgreSQL-backed ObjectRepository.
// batchSize bounds the multi-row insert width for high-volume tables.
func NewObjectRepo(db *sqlx.DB, batchSize int) port.ObjectRepository {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &objectRepo{db: db, batchSize: batchSize}
}

// SaveBatch persists every object of one import inside a single
// transaction. A crash mid-import therefore never leaves a
// half-populated candidate.
func (r *objectRepo) SaveBatch(ctx context.Context, batch *domain.ObjectBatch) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("objectRepo.SaveBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()

	for i := range batch.Purchases {
		p := &batch.Purchases[i]
		p.CreatedAt, p.UpdatedAt = now, now
		_, err := tx.ExecContext(ctx,
			`INSERT INTO purchases
			 (id, created_at, updated_at, source_id, order_type, item, description,
			  quantity, unit, received_quantity, vendor, cost, donation_date, comment, raw_data)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			p.ID, p.CreatedAt, p.UpdatedAt, p.SourceID, p.OrderType, p.Item, p.Description,
			p.Quantity, p.Unit, p.ReceivedQuantity, p.Vendor, p.Cost, p.DonationDate,
			p.Comment, nullableJSON(p.RawData))
		if err != nil {
			return fmt.Errorf("objectRepo.SaveBatch purchase: %w", err)
		}
	}

	for i := range batch.Deliveries {
		d := &batch.Deliveries[i]
		d.CreatedAt, d.UpdatedAt = now, now
		_, err := tx.ExecContext(ctx,
			`INSERT INTO scheduled_deliveries
			 (id, created_at, updated_at, source_id, purchase_id, delivery_date, quantity)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, d.CreatedAt, d.UpdatedAt, d.SourceID, d.PurchaseID, d.DeliveryDate, d.Quantity)
		if err != nil {
			return fmt.Errorf("objectRepo.SaveBatch delivery: %w", err)
		}
	}

	for i := range batch.Inventory {
		inv := &batch.Inventory[i]
		inv.CreatedAt, inv.UpdatedAt = now, now
		_, err := tx.ExecContext(ctx,
			`INSERT INTO inventory
			 (id, created_at, updated_at, source_id, item, quantity, as_of, raw_data)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			inv.ID, inv.CreatedAt, inv.UpdatedAt, inv.SourceID, inv.Item, inv.Quantity,
			inv.AsOf, nullableJSON(inv.RawData))
		if err != nil {
			return fmt.Errorf("objectRepo.SaveBatch inventory: %w", err)
		}
	}

	// Facility deliveries arrive in bulk (one row per facility per item
	// per day), so they get batched multi-row inserts.
	if err := r.bulkInsertFacilityDeliveries(ctx, tx, batch.FacilityDeliveries, now); err != nil {
		return err
	}

	for i := range batch.Demands {
		d := &batch.Demands[i]
		d.CreatedAt, d.UpdatedAt = now, now
		_, err := tx.ExecContext(ctx,
			`INSERT INTO demands
			 (id, created_at, updated_at, source_id, item, demand, start_date, end_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, d.CreatedAt, d.UpdatedAt, d.SourceID, d.Item, d.Demand, d.StartDate, d.EndDate)
		if err != nil {
			return fmt.Errorf("objectRepo.SaveBatch demand: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("objectRepo.SaveBatch commit: %w", err)
	}
	return nil
}

func (r *objectRepo) bulkInsertFacilityDeliveries(ctx context.Context, tx *sqlx.Tx, fds []domain.FacilityDelivery, now time.Time) error {
	const cols = 9
	for start := 0; start < len(fds); start += r.batchSize {
		end := start + r.batchSize
		if end > len(fds) {
			end = len(fds)
		}
		chunk := fds[start:end]

		placeholders := make([]string, 0, len(chunk))
		args := make([]any, 0, len(chunk)*cols)
		for i := range chunk {
			fd := &chunk[i]
			fd.CreatedAt, fd.UpdatedAt = now, now
			base := i * cols
			placeholders = append(placeholders, fmt.Sprintf(
				"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
			args = append(args, fd.ID, fd.CreatedAt, fd.UpdatedAt, fd.SourceID,
				fd.Date, fd.FacilityName, fd.FacilityType, fd.Item, fd.Quantity)
		}

		query := `INSERT INTO facility_deliveries
			(id, created_at, updated_at, source_id, date, facility_name, facility_type, item, quantity)
			VALUES ` + strings.Join(placeholders, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("objectRepo.SaveBatch facility deliveries at offset %d: %w", start, err)
		}
	}
	return nil
}

var objectTables = map[string]string{
	"Purchase":          "purchases",
	"ScheduledDelivery": "scheduled_deliveries",
	"Inventory":         "inventory",
	"FacilityDelivery":  "facility_deliveries",
	"Demand":            "demands",
}

func (r *objectRepo) CountBySource(ctx context.Context, sourceID uuid.UUID) (map[string]int, error) {
	counts := make(map[string]int, len(objectTables))
	for name, table := range objectTables {
		var n int
		err := r.db.GetContext(ctx, &n,
			fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE source_id = $1", table), sourceID)
		if err != nil {
			return nil, fmt.Errorf("objectRepo.CountBySource %s: %w", table, err)
		}
		if n > 0 {
			counts[name] = n
		}
	}
	return counts, nil
}

func (r *objectRepo) PurchaseKeysBySource(ctx context.Context, sourceID uuid.UUID) ([]port.PurchaseKey, error) {
	var keys []port.PurchaseKey
	err := r.db.SelectContext(ctx, &keys,
		"SELECT item, vendor, quantity FROM purchases WHERE source_id = $1", sourceID)
	if err != nil {
		return nil, fmt.Errorf("objectRepo.PurchaseKeysBySource: %w", err)
	}
	return keys, nil
}

func (r *objectRepo) DeleteBySource(ctx context.Context, sourceID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("objectRepo.DeleteBySource begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Deliveries reference purchases, so they go first.
	order := []string{"scheduled_deliveries", "purchases", "inventory", "facility_deliveries", "demands"}
	for _, table := range order {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE source_id = $1", table), sourceID); err != nil {
			return fmt.Errorf("objectRepo.DeleteBySource %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("objectRepo.DeleteBySource commit: %w", err)
	}
	return nil
}

// nullableJSON maps an empty raw blob to SQL NULL.
func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
