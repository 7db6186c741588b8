package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"reportapi/internal/model"
	"reportapi/internal/repository"
)

var recordFileCols = []string{"id", "filename", "storage_path", "size", "content_type", "course_code", "program", "created_at"}

func TestRecordFilePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRecordFilePostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	f := &model.RecordFile{
		ID:          "test-uuid",
		Filename:    "course.json",
		StoragePath: "fise/abc.json",
		Size:        123,
		ContentType: "application/json",
		CourseCode:  "12",
		Program:     "Informatica",
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows(recordFileCols).
		AddRow(f.ID, f.Filename, f.StoragePath, f.Size, f.ContentType, f.CourseCode, f.Program, f.CreatedAt)

	mock.ExpectQuery("INSERT INTO record_files").
		WithArgs(f.ID, f.Filename, f.StoragePath, f.Size, f.ContentType, f.CourseCode, f.Program, f.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, f)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, f.ID, result.ID)
	assert.Equal(t, "Informatica", result.Program)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordFilePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRecordFilePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(recordFileCols).
			AddRow("test-id", "c.yaml", "fise/x.yaml", 100, "application/yaml", "3", "Automatica", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM record_files WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		f, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, f)
		assert.Equal(t, "test-id", f.ID)
		assert.Equal(t, "3", f.CourseCode)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM record_files WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		f, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, f)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordFilePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRecordFilePostgres(db)
	ctx := context.Background()

	t.Run("filtered by program", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM record_files`).
			WithArgs("Informatica").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(recordFileCols).
			AddRow("1", "a.json", "fise/1.json", 10, "application/json", "1", "Informatica", time.Now()).
			AddRow("2", "b.json", "fise/2.json", 20, "application/json", "2", "Informatica", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM record_files (.+) ORDER BY created_at DESC").
			WithArgs("Informatica", 10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0, Program: "Informatica"})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, "b.json", res.Items[1].Filename)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM record_files`).
			WithArgs("").
			WillReturnError(errors.New("db down"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})

		assert.EqualError(t, err, "db down")
		assert.Nil(t, res)
	})

	t.Run("scan error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM record_files`).
			WithArgs("").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM record_files").
			WithArgs("", 5, 5).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("only-id"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 5, Offset: 5})

		assert.Error(t, err)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordFilePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewRecordFilePostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM record_files WHERE id = ?").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(ctx, "gone"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
