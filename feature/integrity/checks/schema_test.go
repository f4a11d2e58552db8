package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"student-etl/core/database"
	"student-etl/feature/etl/models"
)

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

func TestCheckSchemaMatchesMigratedTables(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.StudentRecord{}, &models.MonitorEntry{}))

	report, err := CheckSchema(db)
	require.NoError(t, err)

	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["hechos"].Status)
	assert.Equal(t, "ok", report.Tables["etl_monitor"].Status)
	assert.Empty(t, report.Tables["hechos"].MissingColumns)
}

func TestCheckSchemaReportsMissingColumns(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.MonitorEntry{}))
	require.NoError(t, db.Exec("CREATE TABLE hechos (id_alumno TEXT PRIMARY KEY, nombre TEXT)").Error)

	report, err := CheckSchema(db)
	require.NoError(t, err)

	assert.False(t, report.Matched)
	assert.Equal(t, "error", report.Tables["hechos"].Status)
	assert.Contains(t, report.Tables["hechos"].MissingColumns, "nota")
	assert.NotContains(t, report.Tables["hechos"].MissingColumns, "nombre")
}

func TestCheckSchemaMissingTableReportsAllColumns(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.MonitorEntry{}))

	report, err := CheckSchema(db)
	require.NoError(t, err)

	assert.False(t, report.Matched)
	assert.Len(t, report.Tables["hechos"].MissingColumns, len(models.ConsolidatedColumns))
}

func TestCheckSchemaNilDB(t *testing.T) {
	_, err := CheckSchema(nil)
	assert.Error(t, err)
}
