package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"ppetrack/internal/domain"
	"ppetrack/internal/ingest"
	"ppetrack/internal/port"
)

// ImportInput describes one upload attempt.
type ImportInput struct {
	Path        string
	FileName    string // user-provided name; defaults to the path basename
	Uploader    string
	CurrentAsOf *time.Time
	// Overwrite force-replaces an in-progress candidate for the same
	// data file instead of rejecting the import.
	Overwrite bool
}

// ImportService is the import pipeline's top-level contract: resolve a
// file's layout, extract and expand its rows, persist the batch against
// a candidate ledger entry, and manage the candidate's lifecycle.
type ImportService interface {
	SmartImport(ctx context.Context, input ImportInput) (*domain.DataImport, error)
	Finalize(ctx context.Context, importID uuid.UUID) error
	Cancel(ctx context.Context, importID uuid.UUID) error
	ComputeDelta(ctx context.Context, importID uuid.UUID) (*domain.UploadDelta, error)
	ImportAndFinalize(ctx context.Context, input ImportInput) (*domain.DataImport, error)
	Retry(ctx context.Context, failedID uuid.UUID) (*domain.DataImport, error)
}

type importService struct {
	imports  port.ImportRepository
	objects  port.ObjectRepository
	failed   port.FailedImportRepository
	resolver *ingest.Resolver
	expander *ingest.Expander
	sink     port.ErrorSink
}

// NewImportService creates a new ImportService implementation.
func NewImportService(
	imports port.ImportRepository,
	objects port.ObjectRepository,
	failed port.FailedImportRepository,
	resolver *ingest.Resolver,
	expander *ingest.Expander,
	sink port.ErrorSink,
) ImportService {
	return &importService{
		imports:  imports,
		objects:  objects,
		failed:   failed,
		resolver: resolver,
		expander: expander,
		sink:     sink,
	}
}

// SmartImport runs the full pipeline for one file and leaves the result
// as a candidate ledger entry awaiting Finalize or Cancel. The typed
// resolution and ledger failures propagate to the caller; anything
// unexpected is converted into a FailedImport record preserving the
// original bytes for replay, and forwarded to the error sink.
func (s *importService) SmartImport(ctx context.Context, input ImportInput) (imp *domain.DataImport, err error) {
	data, readErr := os.ReadFile(input.Path)
	if readErr != nil {
		return nil, fmt.Errorf("reading upload: %w", readErr)
	}
	if input.FileName == "" {
		input.FileName = filepath.Base(input.Path)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("import panicked: %v", r)
		}
		if err != nil && !expectedImportError(err) {
			s.captureFailure(ctx, input, data, err)
		}
	}()

	return s.runImport(ctx, input, data)
}

func (s *importService) runImport(ctx context.Context, input ImportInput, data []byte) (*domain.DataImport, error) {
	sheets, err := s.resolver.Resolve(input.Path)
	if err != nil {
		return nil, err
	}
	family := ingest.FamilyOf(sheets)

	// Optimistic precondition, not a held lock: a race between two
	// uploads for the same family surfaces at finalize time via the
	// multiple-active sanity check.
	inProgress, err := s.imports.FindByStatus(ctx, family, domain.ImportStatusCandidate)
	if err != nil {
		return nil, err
	}
	if len(inProgress) > 0 {
		if !input.Overwrite {
			return nil, fmt.Errorf("%w: candidate %s from %s",
				domain.ErrImportInProgress, inProgress[0].ID, inProgress[0].ImportDate)
		}
		for _, stale := range inProgress {
			if err := s.imports.UpdateStatus(ctx, stale.ID, domain.ImportStatusReplaced); err != nil {
				return nil, err
			}
		}
	}

	checksum := sha256.Sum256(data)
	imp := &domain.DataImport{
		ID:           uuid.New(),
		Status:       domain.ImportStatusCandidate,
		DataFile:     family,
		CurrentAsOf:  input.CurrentAsOf,
		UploadedBy:   input.Uploader,
		FileChecksum: hex.EncodeToString(checksum[:]),
		FileName:     input.FileName,
	}
	if err := s.imports.Create(ctx, imp); err != nil {
		return nil, err
	}

	collector := ingest.NewCollector()
	batch := &domain.ObjectBatch{}
	for _, sheet := range sheets {
		for _, rec := range ingest.Extract(sheet, collector) {
			for _, obj := range s.expander.Expand(rec, collector) {
				batch.Add(obj)
			}
		}
	}
	batch.SetSource(imp.ID)

	if err := s.objects.SaveBatch(ctx, batch); err != nil {
		return nil, err
	}

	collector.Dump()
	log.Printf("import %s (%s): %d objects staged as candidate, %s",
		imp.ID, family, batch.Len(), collector)
	return imp, nil
}

// Finalize promotes a candidate to active, demoting the previously
// active entry of the same data file to replaced.
func (s *importService) Finalize(ctx context.Context, importID uuid.UUID) error {
	imp, err := s.imports.GetByID(ctx, importID)
	if err != nil {
		return err
	}
	if imp.Status != domain.ImportStatusCandidate {
		return fmt.Errorf("%w: %s is %s", domain.ErrNotCandidate, imp.ID, imp.Status)
	}

	active, err := s.imports.FindByStatus(ctx, imp.DataFile, domain.ImportStatusActive)
	if err != nil {
		return err
	}
	// More than one active entry means the ledger is corrupt; raise
	// rather than silently repair.
	if len(active) > 1 {
		return fmt.Errorf("%w: %s has %d", domain.ErrMultipleActive, imp.DataFile, len(active))
	}
	for _, prev := range active {
		if err := s.imports.UpdateStatus(ctx, prev.ID, domain.ImportStatusReplaced); err != nil {
			return err
		}
	}
	return s.imports.UpdateStatus(ctx, imp.ID, domain.ImportStatusActive)
}

// Cancel abandons a candidate without touching the active entry.
func (s *importService) Cancel(ctx context.Context, importID uuid.UUID) error {
	imp, err := s.imports.GetByID(ctx, importID)
	if err != nil {
		return err
	}
	if imp.Status != domain.ImportStatusCandidate {
		return fmt.Errorf("%w: %s is %s", domain.ErrNotCandidate, imp.ID, imp.Status)
	}
	return s.imports.UpdateStatus(ctx, imp.ID, domain.ImportStatusCancelled)
}

// ComputeDelta diffs a candidate against the currently active entry of
// the same data file, for human review before finalizing.
func (s *importService) ComputeDelta(ctx context.Context, importID uuid.UUID) (*domain.UploadDelta, error) {
	imp, err := s.imports.GetByID(ctx, importID)
	if err != nil {
		return nil, err
	}
	if imp.Status != domain.ImportStatusCandidate {
		return nil, fmt.Errorf("%w: can only compute a delta on a candidate", domain.ErrNotCandidate)
	}

	active, err := s.imports.FindByStatus(ctx, imp.DataFile, domain.ImportStatusActive)
	if err != nil {
		return nil, err
	}
	if len(active) > 1 {
		return nil, fmt.Errorf("%w: can't compute a delta", domain.ErrMultipleActive)
	}

	delta := &domain.UploadDelta{ActiveStats: map[string]int{}}
	candStats, err := s.objects.CountBySource(ctx, imp.ID)
	if err != nil {
		return nil, err
	}
	delta.CandidateStats = candStats

	candKeys, err := s.objects.PurchaseKeysBySource(ctx, imp.ID)
	if err != nil {
		return nil, err
	}

	activeKeys := map[port.PurchaseKey]struct{}{}
	if len(active) == 1 {
		prev := active[0]
		delta.Previous = &prev
		if delta.ActiveStats, err = s.objects.CountBySource(ctx, prev.ID); err != nil {
			return nil, err
		}
		keys, err := s.objects.PurchaseKeysBySource(ctx, prev.ID)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			activeKeys[k] = struct{}{}
		}
	}
	for _, k := range candKeys {
		if _, ok := activeKeys[k]; !ok {
			delta.NewPurchases++
		}
	}
	return delta, nil
}

// ImportAndFinalize imports a file and immediately promotes it, for
// automated/CLI use where no human confirmation step happens.
func (s *importService) ImportAndFinalize(ctx context.Context, input ImportInput) (*domain.DataImport, error) {
	imp, err := s.SmartImport(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.Finalize(ctx, imp.ID); err != nil {
		return nil, err
	}
	return imp, nil
}

// Retry replays a preserved failed upload through the full pipeline
// with overwrite enabled, marking it fixed on success.
func (s *importService) Retry(ctx context.Context, failedID uuid.UUID) (*domain.DataImport, error) {
	failed, err := s.failed.GetByID(ctx, failedID)
	if err != nil {
		return nil, err
	}
	if failed.Fixed {
		return nil, domain.ErrAlreadyFixed
	}

	tmp, err := os.CreateTemp("", "retry-*-"+filepath.Base(failed.FileName))
	if err != nil {
		return nil, fmt.Errorf("staging retry file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(failed.Data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("staging retry file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("staging retry file: %w", err)
	}

	imp, err := s.ImportAndFinalize(ctx, ImportInput{
		Path:        tmp.Name(),
		FileName:    failed.FileName,
		Uploader:    failed.UploadedBy,
		CurrentAsOf: failed.CurrentAsOf,
		Overwrite:   true,
	})
	if err != nil {
		return nil, err
	}
	if err := s.failed.MarkFixed(ctx, failed.ID); err != nil {
		return nil, err
	}
	return imp, nil
}

// captureFailure preserves the raw upload for later replay and forwards
// the defect to the external tracker. Capture failures are logged but do
// not mask the original error.
func (s *importService) captureFailure(ctx context.Context, input ImportInput, data []byte, cause error) {
	failed := &domain.FailedImport{
		ID:          uuid.New(),
		Data:        data,
		FileName:    input.FileName,
		UploadedBy:  input.Uploader,
		CurrentAsOf: input.CurrentAsOf,
	}
	if err := s.failed.Create(ctx, failed); err != nil {
		log.Printf("could not preserve failed import %s: %v", input.FileName, err)
	}
	if s.sink != nil {
		s.sink.Notify(cause, fmt.Sprintf("import of %s failed", input.FileName))
	}
}

// expectedImportError reports whether err is one of the catalogued,
// user-facing failure modes rather than an unexpected defect.
func expectedImportError(err error) bool {
	var resolveErr *ingest.ResolveError
	if errors.As(err, &resolveErr) {
		return true
	}
	return errors.Is(err, domain.ErrImportInProgress) ||
		errors.Is(err, domain.ErrNotCandidate) ||
		errors.Is(err, domain.ErrMultipleActive) ||
		errors.Is(err, domain.ErrNotFound)
}
