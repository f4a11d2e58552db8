package extract

import (
	"os"
	"path/filepath"
	"testing"

	"student-etl/feature/etl/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_Tabular(t *testing.T) {
	path := writeSource(t, "alumnos.csv",
		"id_alumno,nombre,apellido\n1,Ana,Lopez\n2,Luis,Marin\n")

	records, count, err := Read(models.SourceProfile{
		Name: "students", Kind: models.KindTabular, Path: path,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, records, 2)
	assert.Equal(t, "Ana", records[0].Fields["nombre"])
	assert.Equal(t, "2", records[1].Fields["id_alumno"])
	assert.Equal(t, models.KindTabular, records[0].Kind)
}

func TestRead_Records(t *testing.T) {
	t.Run("Flat Objects", func(t *testing.T) {
		path := writeSource(t, "calificaciones.json",
			`[{"idAlumno": 1, "asignatura": "math", "nota": 4.5},
			  {"idAlumno": 2, "asignatura": "art", "nota": null}]`)

		records, count, err := Read(models.SourceProfile{
			Name: "grades", Kind: models.KindRecord, Path: path,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		// JSON numbers flatten to plain strings.
		assert.Equal(t, "1", records[0].Fields["idAlumno"])
		assert.Equal(t, "4.5", records[0].Fields["nota"])

		// Null values are absent, not the string "null".
		_, ok := records[1].Fields["nota"]
		assert.False(t, ok)
	})

	t.Run("Not An Array", func(t *testing.T) {
		path := writeSource(t, "calificaciones.json", `{"idAlumno": 1}`)
		_, _, err := Read(models.SourceProfile{Name: "grades", Kind: models.KindRecord, Path: path})
		assert.ErrorIs(t, err, models.ErrSource)
	})
}

func TestRead_Markup(t *testing.T) {
	path := writeSource(t, "matriculas.xml", `<?xml version="1.0"?>
<matriculas>
  <matricula>
    <id_matricula>m1</id_matricula>
    <alumno_id>1</alumno_id>
    <anio>2024</anio>
    <estado>activa</estado>
    <jornada>am</jornada>
  </matricula>
  <matricula>
    <id_matricula>m2</id_matricula>
    <alumno_id>2</alumno_id>
    <anio>2024</anio>
    <estado>retirada</estado>
    <jornada>pm</jornada>
  </matricula>
</matriculas>`)

	records, count, err := Read(models.SourceProfile{
		Name: "enrollments", Kind: models.KindMarkup, Path: path,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "1", records[0].Fields["alumno_id"])
	assert.Equal(t, "activa", records[0].Fields["estado"])
	assert.Equal(t, "pm", records[1].Fields["jornada"])
}

func TestRead_SourceErrors(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		_, _, err := Read(models.SourceProfile{
			Name: "students", Kind: models.KindTabular,
			Path: filepath.Join(t.TempDir(), "nope.csv"),
		})
		assert.ErrorIs(t, err, models.ErrSource)
	})

	t.Run("Ragged CSV", func(t *testing.T) {
		path := writeSource(t, "alumnos.csv", "id_alumno,nombre\n1,Ana,extra\n")
		_, _, err := Read(models.SourceProfile{Name: "students", Kind: models.KindTabular, Path: path})
		assert.ErrorIs(t, err, models.ErrSource)
	})

	t.Run("Empty Tabular File", func(t *testing.T) {
		path := writeSource(t, "alumnos.csv", "")
		_, _, err := Read(models.SourceProfile{Name: "students", Kind: models.KindTabular, Path: path})
		assert.ErrorIs(t, err, models.ErrSource)
	})

	t.Run("Malformed XML", func(t *testing.T) {
		path := writeSource(t, "matriculas.xml", "<matriculas><matricula>")
		_, _, err := Read(models.SourceProfile{Name: "enrollments", Kind: models.KindMarkup, Path: path})
		assert.ErrorIs(t, err, models.ErrSource)
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		path := writeSource(t, "data.bin", "x")
		_, _, err := Read(models.SourceProfile{Name: "x", Kind: "binary", Path: path})
		assert.ErrorIs(t, err, models.ErrSource)
	})
}
