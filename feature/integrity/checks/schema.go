package checks

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"

	"student-etl/core/database"
	"student-etl/feature/etl/models"
)

// SchemaReport strictly types the result of a schema integrity check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table's deviation from its model.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the live pipeline tables against the GORM models as
// the source of truth. A table that does not exist reports every column as
// missing.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{Tables: make(map[string]TableReport), Matched: true}

	for _, model := range []interface{ TableName() string }{
		models.StudentRecord{},
		models.MonitorEntry{},
	} {
		table := model.TableName()
		tblReport := TableReport{MissingColumns: []string{}, Status: "ok"}

		actual, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}
		actualSet := make(map[string]struct{}, len(actual))
		for _, col := range actual {
			actualSet[col.Field] = struct{}{}
		}

		for _, col := range modelColumns(model) {
			if _, exists := actualSet[col]; !exists {
				tblReport.MissingColumns = append(tblReport.MissingColumns, col)
				tblReport.Status = "error"
				report.Matched = false
			}
		}

		report.Tables[table] = tblReport
	}

	return report, nil
}

// modelColumns extracts the declared column names from a model's gorm tags.
func modelColumns(model any) []string {
	val := reflect.TypeOf(model)
	cols := make([]string, 0, val.NumField())
	for i := 0; i < val.NumField(); i++ {
		if col := parseGormColumn(val.Field(i).Tag.Get("gorm")); col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}

// parseGormColumn extracts the column name from a gorm tag.
func parseGormColumn(tag string) string {
	for _, part := range strings.Split(tag, ";") {
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}
