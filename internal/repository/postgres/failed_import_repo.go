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

type failedImportRepo struct {
	db *sqlx.DB
}

// NewFailedImportRepo creates a new PostgreSQL-backed FailedImportRepository.
func NewFailedImportRepo(db *sqlx.DB) port.FailedImportRepository {
	return &failedImportRepo{db: db}
}

func (r *failedImportRepo) Create(ctx context.Context, f *domain.FailedImport) error {
	f.UploadedAt = time.Now().UTC()

	query := `INSERT INTO failed_imports
		(id, data, file_name, uploaded_at, uploaded_by, current_as_of, fixed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.Data, f.FileName, f.UploadedAt, f.UploadedBy, f.CurrentAsOf, f.Fixed)
	if err != nil {
		return fmt.Errorf("failedImportRepo.Create: %w", err)
	}
	return nil
}

func (r *failedImportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.FailedImport, error) {
	var f domain.FailedImport
	err := r.db.GetContext(ctx, &f,
		"SELECT * FROM failed_imports WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failedImportRepo.GetByID: %w", err)
	}
	return &f, nil
}

func (r *failedImportRepo) ListUnfixed(ctx context.Context) ([]domain.FailedImport, error) {
	var failed []domain.FailedImport
	err := r.db.SelectContext(ctx, &failed,
		"SELECT * FROM failed_imports WHERE fixed = FALSE ORDER BY uploaded_at")
	if err != nil {
		return nil, fmt.Errorf("failedImportRepo.ListUnfixed: %w", err)
	}
	return failed, nil
}

func (r *failedImportRepo) MarkFixed(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE failed_imports SET fixed = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failedImportRepo.MarkFixed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
