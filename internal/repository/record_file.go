package repository

import (
	"context"

	"reportapi/internal/model"
)

// RecordFileRepository defines data access for uploaded course record files.
// Strictly persistence operations.
type RecordFileRepository interface {
	// Create inserts a new record file row and returns it as stored.
	Create(ctx context.Context, f *model.RecordFile) (*model.RecordFile, error)

	// FindByID returns a record file by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.RecordFile, error)

	// List returns a page of record files and the total rows count for the query.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.RecordFile], error)

	// Delete removes a record file by ID. A missing row is not an error.
	Delete(ctx context.Context, id string) error
}
