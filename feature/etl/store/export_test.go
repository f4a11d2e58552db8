package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-etl/feature/etl/models"
)

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "consolidado.csv")

	rows := []models.ConsolidatedRow{
		{Key: "1", Fields: map[string]any{
			models.FieldStudentID: "1",
			models.FieldFirstName: "Ana",
			models.FieldScore:     4.5,
			models.FieldSubject:   "Matematicas",
		}},
		{Key: "2", Fields: map[string]any{
			models.FieldStudentID: "2",
			models.FieldFirstName: "Luis",
		}},
	}

	require.NoError(t, ExportCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, models.ConsolidatedColumns, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Ana", records[1][1])
	assert.Equal(t, "4.5", records[1][7])
	assert.Equal(t, "Matematicas", records[1][6])

	// Unmatched aux fields export as empty cells.
	assert.Equal(t, "", records[2][6])
	assert.Equal(t, "", records[2][7])
}

func TestExportCSVEmptyRunWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consolidado.csv")

	require.NoError(t, ExportCSV(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.ConsolidatedColumns, records[0])
}
