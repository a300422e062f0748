package autobq

import "errors"

// Sentinel errors for the terminal conditions of an invocation. Callers can
// classify failures with errors.Is; everything else is wrapped collaborator
// error text.
var (
	// ErrObjectNotMatched reports an event whose bucket or object name falls
	// outside what the pipeline is configured to process.
	ErrObjectNotMatched = errors.New("object does not match pipeline configuration")

	// ErrEmptyObject reports an object with no records to derive a header from.
	ErrEmptyObject = errors.New("object contains no records")

	// ErrUnknownEncoding reports an indeterminate or undecodable charset guess.
	ErrUnknownEncoding = errors.New("character encoding could not be determined")

	// ErrTableConflict reports an existing destination table whose schema
	// differs from the one derived from the uploaded header.
	ErrTableConflict = errors.New("table already exists with a different schema")
)
