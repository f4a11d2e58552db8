package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-etl/core/config"
	"student-etl/core/database"
	"student-etl/feature/etl/models"
)

func setupTestApp(t *testing.T, db *gorm.DB, cfg config.Pipeline) *fiber.App {
	t.Helper()
	app := fiber.New()
	handler := NewHandler(NewService(db, cfg, zap.NewNop()))
	handler.RegisterRoutes(app)
	return app
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

func testPipelineConfig(t *testing.T, withFiles bool) config.Pipeline {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Pipeline{
		StudentsPath:    filepath.Join(dir, "alumnos.csv"),
		GradesPath:      filepath.Join(dir, "calificaciones.json"),
		EnrollmentsPath: filepath.Join(dir, "matriculas.xml"),
	}
	if withFiles {
		require.NoError(t, os.WriteFile(cfg.StudentsPath, []byte("id_alumno\n"), 0o644))
		require.NoError(t, os.WriteFile(cfg.GradesPath, []byte("[]"), 0o644))
		require.NoError(t, os.WriteFile(cfg.EnrollmentsPath, []byte("<matriculas/>"), 0o644))
	}
	return cfg
}

func TestHandleIntegrityCheck(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.StudentRecord{}, &models.MonitorEntry{}))
	app := setupTestApp(t, db, testPipelineConfig(t, true))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Contains(t, body, "schema")
	require.Contains(t, body, "counts")
	require.Contains(t, body, "sources")

	schema := body["schema"].(map[string]any)
	assert.Equal(t, true, schema["matched"])
	sources := body["sources"].(map[string]any)
	assert.Equal(t, "ok", sources["status"])
}

func TestHandleIntegrityCheckWithoutDatabase(t *testing.T) {
	app := setupTestApp(t, nil, testPipelineConfig(t, false))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	schema := body["schema"].(map[string]any)
	assert.Equal(t, "error", schema["status"])
	sources := body["sources"].(map[string]any)
	assert.Equal(t, "error", sources["status"])
}

func TestHandleSchemaCheck(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&models.StudentRecord{}, &models.MonitorEntry{}))
	app := setupTestApp(t, db, testPipelineConfig(t, true))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["matched"])
}

func TestHandleCountsCheckError(t *testing.T) {
	app := setupTestApp(t, nil, testPipelineConfig(t, false))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/counts", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleSourcesCheckMissingFiles(t *testing.T) {
	app := setupTestApp(t, nil, testPipelineConfig(t, false))

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/sources", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error", body["status"])
	assert.Len(t, body["missing"], 3)
}
