package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"student-etl/feature/etl/models"
)

// ExportCSV writes the consolidated rows as a flat CSV file with the fixed
// column header, creating parent directories as needed. The file is
// rewritten from scratch on every run.
func ExportCSV(path string, rows []models.ConsolidatedRow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: export dir: %v", models.ErrPersistence, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: export: %v", models.ErrPersistence, err)
	}

	w := csv.NewWriter(f)
	w.Write(models.ConsolidatedColumns)
	for _, row := range rows {
		record := models.NewStudentRecord(row)
		w.Write(record.ColumnValues())
	}
	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("%w: export: %v", models.ErrPersistence, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: export: %v", models.ErrPersistence, err)
	}
	return nil
}
