package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-etl/feature/etl/models"
)

// Batch size for consolidated inserts.
const insertBatchSize = 200

// Store persists consolidated rows and monitor entries through gorm.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a Store on an open database handle.
func New(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// EnsureSchema migrates both pipeline tables to the current model shape.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.StudentRecord{}, &models.MonitorEntry{}); err != nil {
		return fmt.Errorf("%w: migrate: %v", models.ErrPersistence, err)
	}
	return nil
}

// ReplaceConsolidated swaps the whole consolidated table for the given
// rows inside one transaction, so readers never observe a partial run.
func (s *Store) ReplaceConsolidated(ctx context.Context, rows []models.ConsolidatedRow) error {
	records := make([]models.StudentRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.NewStudentRecord(row))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.StudentRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, insertBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("%w: replace consolidated: %v", models.ErrPersistence, err)
	}

	s.logger.Debug("Consolidated table replaced", zap.Int("rows", len(records)))
	return nil
}

// AppendMonitor inserts one finished-run entry.
func (s *Store) AppendMonitor(ctx context.Context, entry *models.MonitorEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("%w: append monitor: %v", models.ErrPersistence, err)
	}
	return nil
}

// ListRuns returns the most recent monitor entries, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]models.MonitorEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []models.MonitorEntry
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("%w: list runs: %v", models.ErrPersistence, err)
	}
	return entries, nil
}

// LatestRun returns the newest monitor entry, or ErrNotFound when no run
// has been recorded yet.
func (s *Store) LatestRun(ctx context.Context) (*models.MonitorEntry, error) {
	var entry models.MonitorEntry
	err := s.db.WithContext(ctx).Order("id DESC").Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no runs recorded", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: latest run: %v", models.ErrPersistence, err)
	}
	return &entry, nil
}

// ListStudents pages through the consolidated table in key order.
func (s *Store) ListStudents(ctx context.Context, limit, offset int) ([]models.StudentRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	var records []models.StudentRecord
	err := s.db.WithContext(ctx).Order("id_alumno").Limit(limit).Offset(offset).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list students: %v", models.ErrPersistence, err)
	}
	return records, nil
}

// GetStudent returns one consolidated row by student key.
func (s *Store) GetStudent(ctx context.Context, id string) (*models.StudentRecord, error) {
	var record models.StudentRecord
	err := s.db.WithContext(ctx).Where("id_alumno = ?", id).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: student %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get student: %v", models.ErrPersistence, err)
	}
	return &record, nil
}

// CountStudents returns the consolidated row count.
func (s *Store) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.StudentRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: count students: %v", models.ErrPersistence, err)
	}
	return count, nil
}
