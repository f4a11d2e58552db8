package etl

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-etl/core/config"
	"student-etl/core/database"
	"student-etl/core/storage/mocks"
	"student-etl/feature/etl/models"
)

// writeSourceFiles lays out a small but complete scenario: a duplicated
// student, a student without contact, an out-of-range score, an
// unparseable score and an orphan grade.
func writeSourceFiles(t *testing.T) config.Pipeline {
	t.Helper()
	dir := t.TempDir()

	students := `id_alumno,nombre,apellido,grado,correo,fecha_nacimiento
1,Ana,Diaz,5A,ana@x.co,2012-03-01
2,Luis,Rojas,5B,,2011-07-15
3,Marta,Paz,5A,marta@x.co,2012-01-20
2,Luis,Rojas Soto,5B,,2011-07-15
`
	grades := `[
  {"idAlumno": 1, "asignatura": "Matematicas", "nota": 6.0, "periodo": "P1", "anio": 2024},
  {"idAlumno": 2, "asignatura": "Espanol", "nota": "3.75", "periodo": "P1", "anio": 2024},
  {"idAlumno": 9, "asignatura": "Ciencias", "nota": 2.0, "periodo": "P1", "anio": 2024},
  {"idAlumno": 3, "asignatura": "Historia", "nota": "mala", "periodo": "P1", "anio": 2024}
]`
	enrollments := `<?xml version="1.0" encoding="UTF-8"?>
<matriculas>
  <matricula><id_alumno>1</id_alumno><estado>activa</estado><jornada>manana</jornada></matricula>
  <matricula><id_alumno>3</id_alumno><estado>retirada</estado><jornada>tarde</jornada></matricula>
</matriculas>`

	cfg := config.Pipeline{
		StudentsPath:    filepath.Join(dir, "alumnos.csv"),
		GradesPath:      filepath.Join(dir, "calificaciones.json"),
		EnrollmentsPath: filepath.Join(dir, "matriculas.xml"),
		ContactDomain:   "colegio.edu",
		ExportPath:      filepath.Join(dir, "consolidado.csv"),
		CacheTTLSeconds: 60,
	}
	require.NoError(t, os.WriteFile(cfg.StudentsPath, []byte(students), 0o644))
	require.NoError(t, os.WriteFile(cfg.GradesPath, []byte(grades), 0o644))
	require.NoError(t, os.WriteFile(cfg.EnrollmentsPath, []byte(enrollments), 0o644))
	return cfg
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver:         database.DriverSQLite,
		Name:           ":memory:",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)
	return db
}

func TestExecuteFullRun(t *testing.T) {
	cfg := writeSourceFiles(t)
	svc := NewService(openTestDB(t), nil, "", cfg, zap.NewNop())
	ctx := context.Background()

	entry, err := svc.Execute(ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, models.StatusOK, entry.Status)
	assert.Equal(t, 10, entry.RecordsRead)
	assert.Equal(t, 3, entry.RecordsValid)
	assert.Equal(t, 2, entry.RecordsDiscarded)
	assert.Equal(t, 2, entry.StudentsEnrolled)
	assert.Equal(t, 3, entry.UniqueStudents)
	assert.Equal(t, 2, entry.DistinctSubjects)
	assert.Equal(t, 1, entry.EmailsGenerated)
	require.NotNil(t, entry.AverageScore)
	assert.InDelta(t, 4.4, *entry.AverageScore, 1e-9)
	assert.Empty(t, entry.Message)

	students, err := svc.Students(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, students, 3)

	// Student 1: out-of-range score clamped, enrollment filled.
	assert.Equal(t, "Ana", students[0].FirstName)
	require.NotNil(t, students[0].Score)
	assert.Equal(t, 5.0, *students[0].Score)
	require.NotNil(t, students[0].Status)
	assert.Equal(t, "activa", *students[0].Status)

	// Student 2: last duplicate wins, contact synthesized, no enrollment.
	assert.Equal(t, "Rojas Soto", students[1].LastName)
	assert.Equal(t, "alumno2@colegio.edu", students[1].Email)
	require.NotNil(t, students[1].Score)
	assert.Equal(t, 3.8, *students[1].Score)
	assert.Nil(t, students[1].Status)

	// Student 3: grade dropped as unparseable, enrollment kept.
	assert.Nil(t, students[2].Score)
	require.NotNil(t, students[2].Status)
	assert.Equal(t, "retirada", *students[2].Status)

	// The orphan grade never becomes a row.
	_, err = svc.Student(ctx, "9")
	assert.ErrorIs(t, err, models.ErrNotFound)

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, latest.ID)
}

func TestExecuteWritesFlatExport(t *testing.T) {
	cfg := writeSourceFiles(t)
	svc := NewService(openTestDB(t), nil, "", cfg, zap.NewNop())

	_, err := svc.Execute(context.Background())
	require.NoError(t, err)

	f, err := os.Open(cfg.ExportPath)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, models.ConsolidatedColumns, records[0])
	assert.Equal(t, "alumno2@colegio.edu", records[2][4])
}

func TestExecuteReplacesPreviousRun(t *testing.T) {
	cfg := writeSourceFiles(t)
	svc := NewService(openTestDB(t), nil, "", cfg, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Execute(ctx)
	require.NoError(t, err)
	firstStudents, err := svc.Students(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, firstStudents, 3)

	second, err := svc.Execute(ctx)
	require.NoError(t, err)

	runs, err := svc.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	// Unchanged inputs reproduce the same rows and counters.
	students, err := svc.Students(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, firstStudents, students)
	assert.Equal(t, first.RecordsValid, second.RecordsValid)
	assert.Equal(t, first.RecordsDiscarded, second.RecordsDiscarded)
}

func TestExecuteFailureStillRecordsMonitorEntry(t *testing.T) {
	cfg := writeSourceFiles(t)
	require.NoError(t, os.Remove(cfg.GradesPath))

	svc := NewService(openTestDB(t), nil, "", cfg, zap.NewNop())
	ctx := context.Background()

	entry, err := svc.Execute(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrSource)

	require.NotNil(t, entry)
	assert.Equal(t, models.StatusFail, entry.Status)
	assert.NotEmpty(t, entry.Message)
	assert.Equal(t, 4, entry.RecordsRead)

	runs, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.StatusFail, runs[0].Status)

	students, err := svc.Students(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestExecuteWithoutDatabase(t *testing.T) {
	cfg := writeSourceFiles(t)
	svc := NewService(nil, nil, "", cfg, zap.NewNop())

	_, err := svc.Execute(context.Background())
	assert.ErrorIs(t, err, models.ErrPersistence)
}

func TestExecuteArchivesArtifacts(t *testing.T) {
	cfg := writeSourceFiles(t)
	cfg.ArchiveEnabled = true

	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "etl-artifacts").Return(true, nil)
	mockClient.On("PutObject", mock.Anything, "etl-artifacts", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(openTestDB(t), mockClient, "etl-artifacts", cfg, zap.NewNop())

	entry, err := svc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusOK, entry.Status)

	// Flat export plus the three source files.
	mockClient.AssertNumberOfCalls(t, "PutObject", 4)
}

func TestExecuteArchiveFailureIsNotFatal(t *testing.T) {
	cfg := writeSourceFiles(t)
	cfg.ArchiveEnabled = true

	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "etl-artifacts").Return(false, assert.AnError)

	svc := NewService(openTestDB(t), mockClient, "etl-artifacts", cfg, zap.NewNop())

	entry, err := svc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusOK, entry.Status)
	mockClient.AssertNotCalled(t, "PutObject")
}
