package postgres

import (
	"context"
	"database/sql"

	"reportapi/internal/model"
	"reportapi/internal/repository"
)

// RecordFilePostgres is a PostgreSQL implementation of repository.RecordFileRepository.
type RecordFilePostgres struct {
	db *sql.DB
}

// NewRecordFilePostgres creates a new RecordFilePostgres repository.
func NewRecordFilePostgres(db *sql.DB) *RecordFilePostgres {
	return &RecordFilePostgres{db: db}
}

var _ repository.RecordFileRepository = (*RecordFilePostgres)(nil)

const recordFileColumns = `id, filename, storage_path, size, content_type, course_code, program, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecordFile(s scanner) (*model.RecordFile, error) {
	var f model.RecordFile
	if err := s.Scan(
		&f.ID,
		&f.Filename,
		&f.StoragePath,
		&f.Size,
		&f.ContentType,
		&f.CourseCode,
		&f.Program,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new row and returns the stored record.
func (r *RecordFilePostgres) Create(ctx context.Context, f *model.RecordFile) (*model.RecordFile, error) {
	const q = `
		INSERT INTO record_files (` + recordFileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + recordFileColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.Filename,
		f.StoragePath,
		f.Size,
		f.ContentType,
		f.CourseCode,
		f.Program,
		f.CreatedAt,
	)
	return scanRecordFile(row)
}

// FindByID fetches a single record file by its ID.
func (r *RecordFilePostgres) FindByID(ctx context.Context, id string) (*model.RecordFile, error) {
	const q = `SELECT ` + recordFileColumns + ` FROM record_files WHERE id = $1`
	return scanRecordFile(r.db.QueryRowContext(ctx, q, id))
}

// List returns record files using LIMIT/OFFSET pagination and a total count,
// newest first.
func (r *RecordFilePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.RecordFile], error) {
	const qCount = `SELECT COUNT(*) FROM record_files WHERE ($1 = '' OR program = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, pq.Program).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + recordFileColumns + `
		FROM record_files
		WHERE ($1 = '' OR program = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Program, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RecordFile, 0)
	for rows.Next() {
		f, err := scanRecordFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.RecordFile]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a record file by ID.
func (r *RecordFilePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM record_files WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
