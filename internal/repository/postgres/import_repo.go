package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ppetrack/internal/domain"
	"ppetrack/internal/port"
)

type importRepo struct {
	db *sqlx.DB
}

// NewImportRepo creates a new PostgreSQL-backed ImportRepository.
func NewImportRepo(db *sqlx.DB) port.ImportRepository {
	return &importRepo{db: db}
}

func (r *importRepo) Create(ctx context.Context, imp *domain.DataImport) error {
	imp.ImportDate = time.Now().UTC()

	query := `INSERT INTO data_imports
		(id, import_date, status, data_file, current_as_of, uploaded_by, file_checksum, file_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		imp.ID, imp.ImportDate, imp.Status, imp.DataFile, imp.CurrentAsOf,
		imp.UploadedBy, imp.FileChecksum, imp.FileName)
	if err != nil {
		return fmt.Errorf("importRepo.Create: %w", err)
	}
	return nil
}

func (r *importRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DataImport, error) {
	var imp domain.DataImport
	err := r.db.GetContext(ctx, &imp,
		"SELECT * FROM data_imports WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("importRepo.GetByID: %w", err)
	}
	return &imp, nil
}

func (r *importRepo) FindByStatus(ctx context.Context, dataFile domain.DataFile, status domain.ImportStatus) ([]domain.DataImport, error) {
	var imports []domain.DataImport
	err := r.db.SelectContext(ctx, &imports,
		`SELECT * FROM data_imports
		 WHERE data_file = $1 AND status = $2
		 ORDER BY import_date DESC`,
		dataFile, status)
	if err != nil {
		return nil, fmt.Errorf("importRepo.FindByStatus: %w", err)
	}
	return imports, nil
}

func (r *importRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ImportStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE data_imports SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("importRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *importRepo) CountByStatus(ctx context.Context, dataFile domain.DataFile, status domain.ImportStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM data_imports WHERE data_file = $1 AND status = $2",
		dataFile, status)
	if err != nil {
		return 0, fmt.Errorf("importRepo.CountByStatus: %w", err)
	}
	return count, nil
}
