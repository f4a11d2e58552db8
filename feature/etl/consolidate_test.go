package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"student-etl/feature/etl/models"
)

func identitySet(keys ...string) models.NormalizedSet {
	set := models.NormalizedSet{Source: "alumnos", Identity: true}
	for _, k := range keys {
		set.Records = append(set.Records, models.NormalizedRecord{
			Key: k,
			Fields: map[string]any{
				models.FieldStudentID: k,
				models.FieldFirstName: "Estudiante " + k,
			},
		})
	}
	return set
}

func TestConsolidateJoinsAuxOntoIdentity(t *testing.T) {
	grades := models.NormalizedSet{Source: "calificaciones", Records: []models.NormalizedRecord{
		{Key: "1", Fields: map[string]any{models.FieldStudentID: "1", models.FieldScore: 4.5, models.FieldSubject: "Matematicas"}},
	}}
	enrollments := models.NormalizedSet{Source: "matriculas", Records: []models.NormalizedRecord{
		{Key: "2", Fields: map[string]any{models.FieldStudentID: "2", models.FieldStatus: "activa"}},
	}}

	rows, err := consolidate([]models.NormalizedSet{identitySet("1", "2"), grades, enrollments}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1", rows[0].Key)
	assert.Equal(t, 4.5, rows[0].Fields[models.FieldScore])
	assert.Nil(t, rows[0].Fields[models.FieldStatus])
	assert.True(t, rows[0].HasSource("calificaciones"))
	assert.False(t, rows[0].HasSource("matriculas"))

	assert.Equal(t, "2", rows[1].Key)
	assert.Equal(t, "activa", rows[1].Fields[models.FieldStatus])
	assert.Nil(t, rows[1].Fields[models.FieldScore])
}

func TestConsolidatePreservesIdentityOrder(t *testing.T) {
	rows, err := consolidate([]models.NormalizedSet{identitySet("9", "3", "5")}, zap.NewNop())
	require.NoError(t, err)

	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"9", "3", "5"}, keys)
}

func TestConsolidateShapesFullColumnSet(t *testing.T) {
	rows, err := consolidate([]models.NormalizedSet{identitySet("1")}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Len(t, rows[0].Fields, len(models.ConsolidatedColumns))
	for _, col := range models.ConsolidatedColumns {
		assert.Contains(t, rows[0].Fields, col)
	}
}

func TestConsolidateExcludesOrphans(t *testing.T) {
	grades := models.NormalizedSet{Source: "calificaciones", Records: []models.NormalizedRecord{
		{Key: "99", Fields: map[string]any{models.FieldStudentID: "99", models.FieldScore: 2.0}},
	}}

	rows, err := consolidate([]models.NormalizedSet{identitySet("1"), grades}, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].Key)
}

func TestConsolidateFailsWithoutIdentitySource(t *testing.T) {
	grades := models.NormalizedSet{Source: "calificaciones"}

	_, err := consolidate([]models.NormalizedSet{grades}, zap.NewNop())
	assert.ErrorIs(t, err, models.ErrIntegrity)
}

func TestConsolidateFailsWithTwoIdentitySources(t *testing.T) {
	a := identitySet("1")
	b := identitySet("2")
	b.Source = "alumnos_bis"

	_, err := consolidate([]models.NormalizedSet{a, b}, zap.NewNop())
	assert.ErrorIs(t, err, models.ErrIntegrity)
}

func TestConsolidateFailsOnDuplicateIdentityKey(t *testing.T) {
	set := identitySet("1", "1")

	_, err := consolidate([]models.NormalizedSet{set}, zap.NewNop())
	assert.ErrorIs(t, err, models.ErrIntegrity)
}
