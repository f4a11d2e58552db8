package etl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-etl/core/config"
	"student-etl/core/storage"
	"student-etl/feature/etl/extract"
	"student-etl/feature/etl/metrics"
	"student-etl/feature/etl/models"
	"student-etl/feature/etl/monitor"
	"student-etl/feature/etl/normalize"
	"student-etl/feature/etl/store"
)

// Service orchestrates pipeline runs and serves the read API.
type Service struct {
	store  *store.Store
	cache  *store.ReadCache
	runner *monitor.Runner
	client storage.Client
	bucket string
	cfg    config.Pipeline
	logger *zap.Logger
}

// NewService wires the pipeline onto an open database handle. db may be
// nil when no database is configured; runs and reads then fail with a
// persistence error instead of panicking.
func NewService(db *gorm.DB, client storage.Client, bucket string, cfg config.Pipeline, logger *zap.Logger) *Service {
	s := &Service{
		client: client,
		bucket: bucket,
		cfg:    cfg,
		logger: logger,
	}
	if db != nil {
		s.store = store.New(db, logger)
		s.cache = store.NewReadCache(s.store, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		s.runner = monitor.New(s.store, logger)
	}
	return s
}

// Execute performs one full pipeline run. The returned entry is the
// monitor row recorded for the run; err is non-nil when the run failed.
func (s *Service) Execute(ctx context.Context) (*models.MonitorEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: database not connected", models.ErrPersistence)
	}
	if err := s.store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	defer s.cache.Invalidate()

	return s.runner.Run(ctx, s.pipeline)
}

// pipeline is the monitored body of a run: extract and normalize every
// source, consolidate, persist, export, archive.
func (s *Service) pipeline(ctx context.Context, runID string, m *models.RunMetrics) error {
	normalizer := normalize.New(s.cfg.ContactDomain, s.logger)

	profiles := Profiles(s.cfg)
	sets := make([]models.NormalizedSet, 0, len(profiles))
	for _, profile := range profiles {
		raws, read, err := extract.Read(profile)
		if err != nil {
			return err
		}
		m.RecordsRead += read

		set, err := normalizer.Normalize(profile, raws)
		if err != nil {
			return err
		}
		m.RecordsDiscarded += set.Stats.Dropped
		m.EmailsGenerated += set.Stats.Synthesized

		s.logger.Info("Source normalized",
			zap.String("source", profile.Name),
			zap.Int("read", set.Stats.Read),
			zap.Int("kept", len(set.Records)),
			zap.Int("dropped", set.Stats.Dropped),
		)
		sets = append(sets, *set)
	}

	rows, err := consolidate(sets, s.logger)
	if err != nil {
		return err
	}

	*m = metrics.Collect(rows, sets, SourceEnrollments)

	if err := s.store.ReplaceConsolidated(ctx, rows); err != nil {
		return err
	}
	if err := store.ExportCSV(s.cfg.ExportPath, rows); err != nil {
		return err
	}

	s.archive(ctx, runID)
	return nil
}

// archive uploads the source files and the flat export under the run's
// prefix. Best effort: failures are logged, never fatal to the run.
func (s *Service) archive(ctx context.Context, runID string) {
	if !s.cfg.ArchiveEnabled || s.client == nil {
		return
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Warn("Archive skipped: bucket check failed", zap.Error(err))
		return
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			s.logger.Warn("Archive skipped: bucket creation failed", zap.Error(err))
			return
		}
	}

	paths := []string{s.cfg.ExportPath}
	for _, profile := range Profiles(s.cfg) {
		paths = append(paths, profile.Path)
	}
	for _, path := range paths {
		s.uploadFile(ctx, runID, path)
	}
}

func (s *Service) uploadFile(ctx context.Context, runID, path string) {
	f, err := os.Open(path)
	if err != nil {
		s.logger.Warn("Archive upload skipped", zap.String("file", path), zap.Error(err))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.logger.Warn("Archive upload skipped", zap.String("file", path), zap.Error(err))
		return
	}

	object := fmt.Sprintf("runs/%s/%s", runID, filepath.Base(path))
	_, err = s.client.PutObject(ctx, s.bucket, object, f, info.Size(), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Warn("Archive upload failed", zap.String("object", object), zap.Error(err))
		return
	}
	s.logger.Debug("Archived", zap.String("object", object))
}

// History returns the most recent monitor entries, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]models.MonitorEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: database not connected", models.ErrPersistence)
	}
	return s.store.ListRuns(ctx, limit)
}

// Latest returns the newest monitor entry, served through the read cache.
func (s *Service) Latest(ctx context.Context) (*models.MonitorEntry, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("%w: database not connected", models.ErrPersistence)
	}
	return s.cache.LatestRun(ctx)
}

// Students pages through the consolidated table.
func (s *Service) Students(ctx context.Context, limit, offset int) ([]models.StudentRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: database not connected", models.ErrPersistence)
	}
	return s.store.ListStudents(ctx, limit, offset)
}

// Student returns one consolidated row by student key.
func (s *Service) Student(ctx context.Context, id string) (*models.StudentRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: database not connected", models.ErrPersistence)
	}
	return s.store.GetStudent(ctx, id)
}
