package models

import "errors"

// Error taxonomy of the pipeline. Stage code wraps these with context via
// fmt.Errorf("...: %w", err); callers classify with errors.Is.
var (
	// ErrSource marks a source file that is missing or cannot be parsed
	// into the expected shape. Fatal to the run.
	ErrSource = errors.New("source unavailable or unparseable")

	// ErrRecord marks a single record that failed normalization. Handled
	// locally: the record is dropped and counted, the run continues.
	ErrRecord = errors.New("record failed normalization")

	// ErrIntegrity marks a violated structural invariant, such as a
	// duplicate key reaching the join or a record without the join key.
	// Fatal to the run.
	ErrIntegrity = errors.New("data integrity violation")

	// ErrPersistence marks a rejected store write. Fatal for the data
	// table; the monitoring append is still attempted independently.
	ErrPersistence = errors.New("persistence rejected write")

	// ErrNotFound marks a read for a row that does not exist. API handlers
	// map it to a 404 response.
	ErrNotFound = errors.New("not found")
)
