package checks

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"student-etl/feature/etl/models"
)

// CountsReport compares the live consolidated table against the latest
// successful run and surfaces key-uniqueness violations.
type CountsReport struct {
	ConsolidatedRows int64    `json:"consolidated_rows"`
	DuplicateKeys    []string `json:"duplicate_keys"`

	// LatestRunValid mirrors registros_validos of the newest OK run;
	// nil when no successful run has been recorded.
	LatestRunValid *int `json:"latest_run_valid"`

	Consistent bool `json:"consistent"`
}

// CheckCounts verifies that consolidated keys are unique and that the row
// count matches what the latest successful run recorded. Duplicates can
// only appear when the table predates the pipeline's schema.
func CheckCounts(ctx context.Context, db *gorm.DB) (*CountsReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &CountsReport{DuplicateKeys: []string{}, Consistent: true}

	if err := db.WithContext(ctx).Model(&models.StudentRecord{}).Count(&report.ConsolidatedRows).Error; err != nil {
		return nil, fmt.Errorf("failed to count consolidated rows: %w", err)
	}

	err := db.WithContext(ctx).
		Model(&models.StudentRecord{}).
		Group("id_alumno").
		Having("COUNT(id_alumno) > 1").
		Pluck("id_alumno", &report.DuplicateKeys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan duplicate keys: %w", err)
	}
	if len(report.DuplicateKeys) > 0 {
		report.Consistent = false
	}

	var latest models.MonitorEntry
	err = db.WithContext(ctx).
		Where("estado = ?", models.StatusOK).
		Order("id DESC").
		Take(&latest).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No successful run yet; nothing to compare against.
	case err != nil:
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	default:
		report.LatestRunValid = &latest.RecordsValid
		if int64(latest.RecordsValid) != report.ConsolidatedRows {
			report.Consistent = false
		}
	}

	return report, nil
}
