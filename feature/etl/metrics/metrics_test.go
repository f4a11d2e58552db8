package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-etl/feature/etl/models"
)

func row(key string, sources []string, fields map[string]any) models.ConsolidatedRow {
	if fields == nil {
		fields = map[string]any{}
	}
	return models.ConsolidatedRow{Key: key, Fields: fields, Sources: sources}
}

func TestCollect(t *testing.T) {
	rows := []models.ConsolidatedRow{
		row("1", []string{"alumnos", "calificaciones", "matriculas"}, map[string]any{
			models.FieldScore:   4.5,
			models.FieldSubject: "Matematicas",
		}),
		row("2", []string{"alumnos", "calificaciones"}, map[string]any{
			models.FieldScore:   3.0,
			models.FieldSubject: "Matematicas",
		}),
		row("3", []string{"alumnos"}, nil),
	}
	sets := []models.NormalizedSet{
		{Source: "alumnos", Stats: models.SourceStats{Read: 4, Dropped: 1, Synthesized: 2}},
		{Source: "calificaciones", Stats: models.SourceStats{Read: 3, Dropped: 1}},
		{Source: "matriculas", Stats: models.SourceStats{Read: 1}},
	}

	m := Collect(rows, sets, "matriculas")

	assert.Equal(t, 8, m.RecordsRead)
	assert.Equal(t, 3, m.RecordsValid)
	assert.Equal(t, 2, m.RecordsDiscarded)
	assert.Equal(t, 1, m.StudentsEnrolled)
	assert.Equal(t, 3, m.UniqueStudents)
	assert.Equal(t, 1, m.DistinctSubjects)
	assert.Equal(t, 2, m.EmailsGenerated)
	require.NotNil(t, m.AverageScore)
	assert.Equal(t, 3.75, *m.AverageScore)
}

func TestCollectAverageRounding(t *testing.T) {
	rows := []models.ConsolidatedRow{
		row("1", nil, map[string]any{models.FieldScore: 4.0}),
		row("2", nil, map[string]any{models.FieldScore: 3.5}),
		row("3", nil, map[string]any{models.FieldScore: 2.6}),
	}

	m := Collect(rows, nil, "matriculas")

	require.NotNil(t, m.AverageScore)
	assert.Equal(t, 3.37, *m.AverageScore)
}

func TestCollectAverageNilWithoutScores(t *testing.T) {
	rows := []models.ConsolidatedRow{
		row("1", []string{"alumnos"}, nil),
		row("2", []string{"alumnos"}, map[string]any{models.FieldScore: nil}),
	}

	m := Collect(rows, nil, "matriculas")

	assert.Nil(t, m.AverageScore)
	assert.Equal(t, 2, m.UniqueStudents)
}

func TestCollectEmptyRun(t *testing.T) {
	m := Collect(nil, nil, "matriculas")

	assert.Zero(t, m.RecordsRead)
	assert.Zero(t, m.RecordsValid)
	assert.Zero(t, m.UniqueStudents)
	assert.Nil(t, m.AverageScore)
}
