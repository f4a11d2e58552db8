package metrics

import (
	"math"

	"student-etl/feature/etl/models"
)

// Collect derives the run counters from the consolidated rows and the
// per-source normalization stats. enrollmentSource names the set whose
// membership marks a student as enrolled.
func Collect(rows []models.ConsolidatedRow, sets []models.NormalizedSet, enrollmentSource string) models.RunMetrics {
	m := models.RunMetrics{RecordsValid: len(rows)}

	for _, set := range sets {
		m.RecordsRead += set.Stats.Read
		m.RecordsDiscarded += set.Stats.Dropped
		m.EmailsGenerated += set.Stats.Synthesized
	}

	students := make(map[string]struct{}, len(rows))
	subjects := make(map[string]struct{})
	var sum float64
	var scored int
	for _, row := range rows {
		students[row.Key] = struct{}{}

		if row.HasSource(enrollmentSource) {
			m.StudentsEnrolled++
		}
		if subject, _ := row.Fields[models.FieldSubject].(string); subject != "" {
			subjects[subject] = struct{}{}
		}
		if score, ok := row.Fields[models.FieldScore].(float64); ok {
			sum += score
			scored++
		}
	}
	m.UniqueStudents = len(students)
	m.DistinctSubjects = len(subjects)

	// The average stays nil when no row carries a score, so the monitor
	// records NULL instead of a misleading zero.
	if scored > 0 {
		avg := math.Round(sum/float64(scored)*100) / 100
		m.AverageScore = &avg
	}

	return m
}
