package etl

import (
	"student-etl/core/config"
	"student-etl/feature/etl/models"
)

// Source names as they appear in logs, metrics and monitor messages.
const (
	SourceStudents    = "alumnos"
	SourceGrades      = "calificaciones"
	SourceEnrollments = "matriculas"
)

// keyAliases lists the accepted spellings of the student key across the
// sources, canonical name first.
var keyAliases = []string{models.FieldStudentID, "idAlumno", "idalumno", "alumno_id"}

// Profiles declares the input sources of a run. The students file is the
// identity source; grades and enrollments join onto it in this order.
func Profiles(cfg config.Pipeline) []models.SourceProfile {
	return []models.SourceProfile{
		{
			Name:         SourceStudents,
			Kind:         models.KindTabular,
			Path:         cfg.StudentsPath,
			Identity:     true,
			KeyAliases:   keyAliases,
			ContactField: models.FieldEmail,
		},
		{
			Name:          SourceGrades,
			Kind:          models.KindRecord,
			Path:          cfg.GradesPath,
			KeyAliases:    keyAliases,
			NumericFields: []string{models.FieldScore},
		},
		{
			Name:       SourceEnrollments,
			Kind:       models.KindMarkup,
			Path:       cfg.EnrollmentsPath,
			KeyAliases: keyAliases,
		},
	}
}
