package reconcile

import "errors"

// Record is one keyed record of a source. Fields hold the record's values
// by canonical field name; the join key is kept separately in Key.
type Record struct {
	// Key is the join key of this record. Must be non-empty.
	Key string

	// Fields maps canonical field names to values. String values and
	// float64 values are the shapes produced by normalization.
	Fields map[string]any
}

// Source is an ordered record set participating in a merge. Record keys
// must be unique within a source; the normalizer guarantees that, and the
// engine verifies it rather than silently picking one.
type Source struct {
	// Name identifies the source in stats and output row provenance.
	Name string

	// Records is the insertion-ordered record list.
	Records []Record
}

// Row is one merged output row.
type Row struct {
	// Key is the join key shared by the merged records.
	Key string

	// Fields holds the merged values.
	Fields map[string]any

	// Sources lists the names of the sources that contributed to this
	// row, identity source first.
	Sources []string
}

// Stats describes the discrepancies observed during a merge.
type Stats struct {
	// IdentityRows is the size of the driving set, which equals the
	// output row count.
	IdentityRows int

	// MatchedBySource counts, per auxiliary source, how many identity
	// rows found a match.
	MatchedBySource map[string]int

	// OrphansBySource counts, per auxiliary source, records whose key
	// exists only in that source. Orphans never reach the output.
	OrphansBySource map[string]int

	// FilledFields is the total number of auxiliary values merged into
	// output rows.
	FilledFields int
}

// Structural failures of a merge. Both abort the run: they indicate a
// broken upstream invariant, not a bad record.
var (
	// ErrDuplicateKey reports a key occurring twice within one source.
	ErrDuplicateKey = errors.New("duplicate key in source")

	// ErrMissingKey reports a record that reached the engine without a
	// join key.
	ErrMissingKey = errors.New("record without join key")
)
