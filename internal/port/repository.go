package port

import (
	"context"

	"github.com/google/uuid"

	"ppetrack/internal/domain"
)

// ImportRepository defines the contract for import ledger persistence.
type ImportRepository interface {
	Create(ctx context.Context, imp *domain.DataImport) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DataImport, error)
	// FindByStatus returns all entries for one data file in the given
	// status, newest first.
	FindByStatus(ctx context.Context, dataFile domain.DataFile, status domain.ImportStatus) ([]domain.DataImport, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ImportStatus) error
	CountByStatus(ctx context.Context, dataFile domain.DataFile, status domain.ImportStatus) (int, error)
}

// PurchaseKey identifies a purchase for delta comparison across imports.
// Two imports of the same underlying data produce equal keys even though
// ids and timestamps differ.
type PurchaseKey struct {
	Item     domain.Item `db:"item"`
	Vendor   string      `db:"vendor"`
	Quantity int         `db:"quantity"`
}

// ObjectRepository defines the contract for persisting the domain objects
// produced by an import.
type ObjectRepository interface {
	// SaveBatch persists the whole batch in a single transaction.
	SaveBatch(ctx context.Context, batch *domain.ObjectBatch) error
	// CountBySource returns per-type object counts tagged with one ledger entry.
	CountBySource(ctx context.Context, sourceID uuid.UUID) (map[string]int, error)
	// PurchaseKeysBySource returns comparison keys for all purchases
	// tagged with one ledger entry.
	PurchaseKeysBySource(ctx context.Context, sourceID uuid.UUID) ([]PurchaseKey, error)
	// DeleteBySource removes every object tagged with one ledger entry.
	DeleteBySource(ctx context.Context, sourceID uuid.UUID) error
}

// FailedImportRepository defines the contract for the failed upload store.
type FailedImportRepository interface {
	Create(ctx context.Context, f *domain.FailedImport) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FailedImport, error)
	ListUnfixed(ctx context.Context) ([]domain.FailedImport, error)
	MarkFixed(ctx context.Context, id uuid.UUID) error
}
