package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrImportInProgress = errors.New("an import for this data file is already in progress")
	ErrNotCandidate     = errors.New("import is not in candidate state")
	ErrMultipleActive   = errors.New("multiple active imports for one data file")
	ErrAlreadyFixed     = errors.New("failed import has already been fixed")
	ErrUnsupportedFile  = errors.New("unsupported file extension")
)
