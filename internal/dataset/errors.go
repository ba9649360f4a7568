package dataset

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrMissingColumn   = errors.New("missing column")
	ErrMalformedRecord = errors.New("malformed record")
	ErrDuplicateWorker = errors.New("duplicate worker id")
	ErrValueOutOfRange = errors.New("value out of range")
)
