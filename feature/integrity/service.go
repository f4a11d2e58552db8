package integrity

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-etl/core/config"
	"student-etl/feature/integrity/checks"
)

// Service handles data integrity checks.
type Service struct {
	db     *gorm.DB
	cfg    config.Pipeline
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(db *gorm.DB, cfg config.Pipeline, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// CheckSchema verifies the pipeline tables against their models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CheckCounts verifies consolidated key uniqueness and run count
// consistency.
func (s *Service) CheckCounts(ctx context.Context) (*checks.CountsReport, error) {
	return checks.CheckCounts(ctx, s.db)
}

// CheckSources verifies that the configured source files exist.
func (s *Service) CheckSources() *checks.SourcesReport {
	return checks.CheckSources([]string{
		s.cfg.StudentsPath,
		s.cfg.GradesPath,
		s.cfg.EnrollmentsPath,
	})
}
