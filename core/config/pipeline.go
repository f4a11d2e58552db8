package config

// Pipeline holds configuration for the ETL pipeline: source file locations,
// normalization settings, and the outputs of a run.
type Pipeline struct {
	// StudentsPath is the identity source (tabular CSV).
	StudentsPath string `mapstructure:"students_path" default:"data/alumnos.csv"`
	// GradesPath is the grades source (record JSON).
	GradesPath string `mapstructure:"grades_path" default:"data/calificaciones.json"`
	// EnrollmentsPath is the enrollment source (markup XML).
	EnrollmentsPath string `mapstructure:"enrollments_path" default:"data/matriculas.xml"`
	// ContactDomain is the domain suffix used when synthesizing contact
	// addresses for students without one.
	ContactDomain string `mapstructure:"contact_domain" default:"colegio.edu"`
	// ExportPath is where the flat CSV export of the consolidated table
	// is written after each successful run.
	ExportPath string `mapstructure:"export_path" default:"data/consolidado.csv"`
	// ArchiveEnabled uploads raw source snapshots and the flat export to
	// object storage after each run when true.
	ArchiveEnabled bool `mapstructure:"archive_enabled" default:"false"`
	// CacheTTLSeconds is the time-to-live of the hot read cache used by
	// the HTTP API. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"30"`
}
