package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"student-etl/feature/etl/models"
)

// MaxMessageLen caps the persisted failure message.
const MaxMessageLen = 500

// Sink persists finished run entries.
type Sink interface {
	AppendMonitor(ctx context.Context, entry *models.MonitorEntry) error
}

// Runner wraps a pipeline execution so that exactly one monitor entry is
// appended per run, whether the pipeline succeeds, returns an error or
// panics.
type Runner struct {
	sink   Sink
	logger *zap.Logger
}

// New creates a Runner writing to the given sink.
func New(sink Sink, logger *zap.Logger) *Runner {
	return &Runner{sink: sink, logger: logger}
}

// Run executes fn under monitoring. fn receives the run id and a metrics
// struct to fill in as it progresses; whatever has been filled at failure
// time is persisted with the FAIL entry. The returned error is always the
// run's own error: a failure to append the monitor entry is logged but
// never masks it.
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context, runID string, m *models.RunMetrics) error) (entry *models.MonitorEntry, err error) {
	runID := uuid.NewString()
	start := time.Now()
	metrics := &models.RunMetrics{}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pipeline panic: %v", rec)
		}

		entry = newEntry(start, metrics, err)
		if appendErr := r.sink.AppendMonitor(ctx, entry); appendErr != nil {
			r.logger.Error("Failed to append monitor entry",
				zap.String("run_id", runID),
				zap.Error(appendErr),
			)
		}

		r.logger.Info("Run finished",
			zap.String("run_id", runID),
			zap.String("status", entry.Status),
			zap.Float64("duration_s", entry.DurationSeconds),
		)
	}()

	r.logger.Info("Run started", zap.String("run_id", runID))
	err = fn(ctx, runID, metrics)
	return
}

func newEntry(start time.Time, m *models.RunMetrics, runErr error) *models.MonitorEntry {
	entry := &models.MonitorEntry{
		RunTS:            start,
		RecordsRead:      m.RecordsRead,
		RecordsValid:     m.RecordsValid,
		RecordsDiscarded: m.RecordsDiscarded,
		StudentsEnrolled: m.StudentsEnrolled,
		UniqueStudents:   m.UniqueStudents,
		DistinctSubjects: m.DistinctSubjects,
		EmailsGenerated:  m.EmailsGenerated,
		AverageScore:     m.AverageScore,
		DurationSeconds:  time.Since(start).Seconds(),
		Status:           models.StatusOK,
	}
	if runErr != nil {
		entry.Status = models.StatusFail
		entry.Message = truncate(runErr.Error(), MaxMessageLen)
	}
	return entry
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
