// Command ppeimport batch-imports PPE spreadsheets from a directory.
// Each file is resolved against the mapping catalog, imported and
// immediately finalized; failures are reported per file and do not
// abort the batch.
// Usage: ppeimport -dir ../private-data [-as-of 2020-04-20]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"ppetrack/internal/config"
	"ppetrack/internal/domain"
	"ppetrack/internal/errortrack"
	"ppetrack/internal/ingest"
	"ppetrack/internal/repository/postgres"
	"ppetrack/internal/service"
	"ppetrack/internal/suggest"
)

func main() {
	dir := flag.String("dir", "", "directory to scan for .xlsx/.csv files")
	file := flag.String("file", "", "single file to import")
	asOf := flag.String("as-of", "", "data currency date (YYYY-MM-DD), defaults to today")
	uploader := flag.String("uploader", "Uploaded via CLI", "uploader identity recorded on the ledger")
	flag.Parse()

	if err := run(*dir, *file, *asOf, *uploader); err != nil {
		log.Fatal(err)
	}
}

func run(dir, file, asOf, uploader string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	files, err := collectFiles(dir, file)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d spreadsheet files\n", len(files))

	currentAsOf := time.Now().UTC().Truncate(24 * time.Hour)
	if asOf != "" {
		currentAsOf, err = time.Parse("2006-01-02", asOf)
		if err != nil {
			return fmt.Errorf("parsing -as-of: %w", err)
		}
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	coercer := ingest.NewCoercer()
	if cfg.Import.RefYear != 0 {
		coercer.RefYear = cfg.Import.RefYear
	}
	items := ingest.DefaultItemCatalog()
	svc := service.NewImportService(
		postgres.NewImportRepo(db),
		postgres.NewObjectRepo(db, cfg.Import.BatchSize),
		postgres.NewFailedImportRepo(db),
		ingest.NewResolver(ingest.NewCatalog(coercer, items), suggest.NewEditDistance()),
		ingest.NewExpander(coercer, items),
		errortrack.NewLogSink(),
	)

	ctx := context.Background()
	for _, f := range files {
		fmt.Printf("---- Importing %s ----\n", f)
		importOne(ctx, svc, f, uploader, currentAsOf)
		fmt.Printf("---- Import of %s complete ----\n\n", f)
	}
	return nil
}

func importOne(ctx context.Context, svc service.ImportService, path, uploader string, asOf time.Time) {
	imp, err := svc.ImportAndFinalize(ctx, service.ImportInput{
		Path:        path,
		Uploader:    uploader,
		CurrentAsOf: &asOf,
		Overwrite:   true,
	})
	if err != nil {
		var resolveErr *ingest.ResolveError
		switch {
		case errors.As(err, &resolveErr) && resolveErr.Kind == ingest.ResolveNoMapping:
			fmt.Printf("%s does not appear to be a format we recognize\n", path)
		case errors.As(err, &resolveErr) && resolveErr.Kind == ingest.ResolvePartialFile:
			fmt.Printf("%s appears to have changed and does not match the format anymore\n", path)
		case errors.As(err, &resolveErr):
			fmt.Printf("%s could not be resolved: %v\n", path, resolveErr)
		case errors.Is(err, domain.ErrMultipleActive):
			fmt.Printf("%s: ledger needs repair: %v\n", path, err)
		default:
			fmt.Printf("%s failed: %v\n", path, err)
		}
		return
	}
	fmt.Printf("imported %s as %s (%s)\n", path, imp.ID, imp.DataFile)
}

func collectFiles(dir, file string) ([]string, error) {
	if file != "" {
		return []string{file}, nil
	}
	if dir == "" {
		return nil, fmt.Errorf("either -dir or -file is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".xlsx", ".csv":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}
