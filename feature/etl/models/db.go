package models

import (
	"strconv"
	"time"

	"student-etl/core/utils"
)

// StudentRecord represents one row of the consolidated 'hechos' table.
// Identity fields are plain strings; fields sourced from auxiliary sets
// are pointers so unmatched rows persist as SQL NULL.
type StudentRecord struct {
	StudentID string   `gorm:"column:id_alumno;primaryKey" json:"id_alumno"`
	FirstName string   `gorm:"column:nombre" json:"nombre"`
	LastName  string   `gorm:"column:apellido" json:"apellido"`
	Grade     string   `gorm:"column:grado" json:"grado"`
	Email     string   `gorm:"column:correo" json:"correo"`
	BirthDate string   `gorm:"column:fecha_nacimiento" json:"fecha_nacimiento"`
	Subject   *string  `gorm:"column:asignatura" json:"asignatura"`
	Score     *float64 `gorm:"column:nota" json:"nota"`
	Term      *string  `gorm:"column:periodo" json:"periodo"`
	Year      *string  `gorm:"column:anio" json:"anio"`
	Status    *string  `gorm:"column:estado" json:"estado"`
	Shift     *string  `gorm:"column:jornada" json:"jornada"`
}

// TableName overrides the table name for the consolidated output.
func (StudentRecord) TableName() string {
	return "hechos"
}

// NewStudentRecord maps a consolidated row onto the persisted shape.
func NewStudentRecord(row ConsolidatedRow) StudentRecord {
	return StudentRecord{
		StudentID: fieldString(row.Fields, FieldStudentID),
		FirstName: fieldString(row.Fields, FieldFirstName),
		LastName:  fieldString(row.Fields, FieldLastName),
		Grade:     fieldString(row.Fields, FieldGrade),
		Email:     fieldString(row.Fields, FieldEmail),
		BirthDate: fieldString(row.Fields, FieldBirthDate),
		Subject:   fieldStringPtr(row.Fields, FieldSubject),
		Score:     fieldFloatPtr(row.Fields, FieldScore),
		Term:      fieldStringPtr(row.Fields, FieldTerm),
		Year:      fieldStringPtr(row.Fields, FieldYear),
		Status:    fieldStringPtr(row.Fields, FieldStatus),
		Shift:     fieldStringPtr(row.Fields, FieldShift),
	}
}

// ColumnValues renders the record in ConsolidatedColumns order for the
// flat CSV export. NULL fields render as empty strings.
func (r StudentRecord) ColumnValues() []string {
	score := ""
	if r.Score != nil {
		score = strconv.FormatFloat(*r.Score, 'f', -1, 64)
	}
	return []string{
		r.StudentID, r.FirstName, r.LastName, r.Grade, r.Email,
		r.BirthDate, derefString(r.Subject), score, derefString(r.Term),
		derefString(r.Year), derefString(r.Status), derefString(r.Shift),
	}
}

// MonitorEntry represents one row of the 'etl_monitor' table. JSON tags
// mirror the column names since the monitoring row is the external
// contract of a run.
type MonitorEntry struct {
	ID               uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RunTS            time.Time `gorm:"column:run_ts" json:"run_ts"`
	RecordsRead      int       `gorm:"column:registros_leidos" json:"registros_leidos"`
	RecordsValid     int       `gorm:"column:registros_validos" json:"registros_validos"`
	RecordsDiscarded int       `gorm:"column:registros_descartados" json:"registros_descartados"`
	StudentsEnrolled int       `gorm:"column:alumnos_con_matricula" json:"alumnos_con_matricula"`
	UniqueStudents   int       `gorm:"column:total_alumnos_unicos" json:"total_alumnos_unicos"`
	DistinctSubjects int       `gorm:"column:total_materias_diferentes" json:"total_materias_diferentes"`
	EmailsGenerated  int       `gorm:"column:correos_generados" json:"correos_generados"`
	AverageScore     *float64  `gorm:"column:promedio_notas_general" json:"promedio_notas_general"`
	DurationSeconds  float64   `gorm:"column:duracion_s" json:"duracion_s"`
	Status           string    `gorm:"column:estado" json:"estado"`
	Message          string    `gorm:"column:mensaje;size:500" json:"mensaje"`
}

// TableName overrides the table name for the monitoring table.
func (MonitorEntry) TableName() string {
	return "etl_monitor"
}

func fieldString(fields map[string]any, name string) string {
	v, ok := fields[name]
	if !ok || v == nil {
		return ""
	}
	return utils.ToString(v)
}

func fieldStringPtr(fields map[string]any, name string) *string {
	s := fieldString(fields, name)
	if s == "" {
		return nil
	}
	return &s
}

func fieldFloatPtr(fields map[string]any, name string) *float64 {
	v, ok := fields[name]
	if !ok || v == nil {
		return nil
	}
	f, ok := utils.ToFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
