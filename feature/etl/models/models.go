package models

// SourceKind identifies the physical format of an input source.
type SourceKind string

const (
	// KindTabular is a delimited tabular file (CSV).
	KindTabular SourceKind = "tabular"
	// KindRecord is a record-oriented file (JSON array of objects).
	KindRecord SourceKind = "record"
	// KindMarkup is a hierarchical markup file (XML).
	KindMarkup SourceKind = "markup"
)

// Canonical field names of the consolidated table.
const (
	FieldStudentID = "id_alumno"
	FieldFirstName = "nombre"
	FieldLastName  = "apellido"
	FieldGrade     = "grado"
	FieldEmail     = "correo"
	FieldBirthDate = "fecha_nacimiento"
	FieldSubject   = "asignatura"
	FieldScore     = "nota"
	FieldTerm      = "periodo"
	FieldYear      = "anio"
	FieldStatus    = "estado"
	FieldShift     = "jornada"
)

// ConsolidatedColumns is the fixed column order of the consolidated table
// and of the flat CSV export. Identity fields first, then grades, then
// enrollment fields.
var ConsolidatedColumns = []string{
	FieldStudentID, FieldFirstName, FieldLastName, FieldGrade, FieldEmail,
	FieldBirthDate, FieldSubject, FieldScore, FieldTerm, FieldYear,
	FieldStatus, FieldShift,
}

// Run outcome values recorded in the monitoring table.
const (
	StatusOK   = "OK"
	StatusFail = "FAIL"
)

// SourceProfile declares how a single input source is read and normalized.
type SourceProfile struct {
	// Name identifies the source in logs and metrics (e.g. "students").
	Name string

	// Kind is the physical format of the source file.
	Kind SourceKind

	// Path is the location of the source file.
	Path string

	// Identity marks the source that drives the join: every one of its
	// records survives into the consolidated output.
	Identity bool

	// KeyAliases are the accepted field names for the student key, in
	// lookup order. The first alias with a non-empty value wins.
	KeyAliases []string

	// NumericFields lists fields that must parse as numbers. A record
	// whose numeric field is missing or unparseable is dropped.
	NumericFields []string

	// ContactField names the field synthesized when absent or empty.
	// Only meaningful on the identity source.
	ContactField string
}

// RawRecord is one record as read from a source, before normalization.
// Values are kept as raw strings; typing happens in the normalizer.
type RawRecord struct {
	Kind   SourceKind
	Fields map[string]string
}

// NormalizedRecord is a cleaned record with a guaranteed non-empty key.
// Numeric fields hold float64 values; everything else is a string.
type NormalizedRecord struct {
	Key    string
	Fields map[string]any
}

// SourceStats accumulates per-source counters during normalization.
type SourceStats struct {
	// Read is the number of raw records handed to the normalizer.
	Read int
	// Dropped counts records discarded as duplicates or parse failures.
	Dropped int
	// Synthesized counts contact values generated for empty fields.
	Synthesized int
}

// NormalizedSet is the normalizer output for one source: an
// insertion-ordered record list with at most one record per key.
type NormalizedSet struct {
	Source   string
	Identity bool
	Records  []NormalizedRecord
	Stats    SourceStats
}

// ConsolidatedRow is one joined row of the final output. Sources lists the
// names of the sources that contributed fields to this row.
type ConsolidatedRow struct {
	Key     string
	Fields  map[string]any
	Sources []string
}

// HasSource reports whether the named source contributed to this row.
func (r ConsolidatedRow) HasSource(name string) bool {
	for _, s := range r.Sources {
		if s == name {
			return true
		}
	}
	return false
}

// RunMetrics holds the data-quality counters derived from one run.
// The run monitor adds outcome, duration and timestamp when persisting.
type RunMetrics struct {
	// RecordsRead is the total raw record count across all sources.
	RecordsRead int

	// RecordsValid is the number of consolidated rows produced.
	RecordsValid int

	// RecordsDiscarded is the total dropped during normalization
	// (duplicates plus parse failures).
	RecordsDiscarded int

	// StudentsEnrolled counts rows that matched the enrollment source.
	StudentsEnrolled int

	// UniqueStudents is the distinct key count of the output.
	UniqueStudents int

	// DistinctSubjects is the distinct non-empty subject count.
	DistinctSubjects int

	// EmailsGenerated is the number of synthesized contact values.
	EmailsGenerated int

	// AverageScore is the mean of all non-null scores after clamping.
	// Nil when the run produced zero parseable scores.
	AverageScore *float64
}
