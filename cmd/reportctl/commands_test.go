package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportapi/internal/curriculum/curriculumtest"
	"reportapi/internal/model"
)

func recordDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	recs := []model.RawRecord{
		curriculumtest.Course("Informatica", "10", "Baze de date"),
		curriculumtest.Course("Informatica", "2", "Algebra"),
		curriculumtest.Course("Automatica", "1", "Circuite"),
	}
	for i, rec := range recs {
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "fisa"+string(rune('a'+i))+".json"), data, 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestProgramsCommand(t *testing.T) {
	out, err := execute(t, "programs", "--dir", recordDir(t))
	require.NoError(t, err)
	assert.Equal(t, "Automatica\nInformatica\n", out)
}

func TestFiltersCommand(t *testing.T) {
	out, err := execute(t, "filters", "--dir", recordDir(t))
	require.NoError(t, err)
	assert.Contains(t, out, "types:   DF\n")
	assert.Contains(t, out, "years:   1\n")
}

func TestGenerateCommand(t *testing.T) {
	dir := recordDir(t)

	t.Run("six documents", func(t *testing.T) {
		outDir := filepath.Join(t.TempDir(), "out")
		_, err := execute(t, "generate", "--dir", dir, "--program", "Informatica", "--format", "csv", "--out", outDir)
		require.NoError(t, err)

		for _, name := range []string{
			"Raport_continuturi.csv", "Raport_competente.csv", "Raport_preconditii.csv",
			"Raport_conditii.csv", "Raport_obiective.csv", "Raport_CD.csv",
		} {
			assert.FileExists(t, filepath.Join(outDir, name))
		}
	})

	t.Run("zip bundle", func(t *testing.T) {
		outDir := t.TempDir()
		_, err := execute(t, "generate", "--dir", dir, "--program", "Informatica", "--format", "docx", "--zip", "--out", outDir)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(outDir, "Rapoarte_Informatica.zip"))
	})

	t.Run("empty year list keeps nothing", func(t *testing.T) {
		outDir := t.TempDir()
		out, err := execute(t, "generate", "--dir", dir, "--program", "Informatica", "--year=", "--out", outDir)
		require.NoError(t, err)
		assert.Contains(t, out, "matches the selection")

		entries, err := os.ReadDir(outDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("program is required", func(t *testing.T) {
		_, err := execute(t, "generate", "--dir", dir)
		assert.Error(t, err)
	})

	t.Run("dir is required", func(t *testing.T) {
		t.Setenv("SOURCE_DIR", "")
		_, err := execute(t, "generate", "--program", "Informatica")
		assert.EqualError(t, err, "--dir is required")
	})
}
