package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"reportapi/internal/model"
	"reportapi/internal/repository"
	"reportapi/internal/source"
	"reportapi/internal/storage"
)

// MaxRecordFileSize caps the size of one uploaded record file.
const MaxRecordFileSize = 4 << 20

const downloadURLExpiry = 15 * time.Minute

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("record file not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrUnsupportedFile = errors.New("only .json, .yaml and .yml record files are accepted")
	ErrFileTooLarge    = errors.New("record file too large")
	ErrInvalidRecord   = errors.New("record file must hold exactly one flat course record")
)

// RecordFileListResult is the service-level DTO for paginated record files.
type RecordFileListResult struct {
	Items []model.RecordFile `json:"data"`
	Total int                `json:"total"`
}

// Invalidator drops cached data derived from the record files.
type Invalidator interface {
	Invalidate()
}

// RecordFileService manages the raw course record files that feed the reports.
type RecordFileService interface {
	// Upload validates and stores one record file, saves its metadata and rolls
	// the object back if the metadata cannot be saved.
	Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (*model.RecordFile, error)

	// List returns record files using limit/offset and a total count, optionally
	// limited to one program.
	List(ctx context.Context, program string, limit, offset int) (*RecordFileListResult, error)

	// Get returns a single record file by its ID.
	Get(ctx context.Context, id string) (*model.RecordFile, error)

	// DownloadURL returns a short-lived URL for the stored file content.
	DownloadURL(ctx context.Context, id string) (string, error)

	// Delete removes a record file from both storage and repository.
	Delete(ctx context.Context, id string) error
}

type recordFileService struct {
	store  storage.Storage
	repo   repository.RecordFileRepository
	cache  Invalidator
	prefix string
	log    *zap.Logger
	now    func() time.Time
}

// NewRecordFileService constructs a RecordFileService. Objects are stored
// under prefix, the same prefix the record source reads from.
func NewRecordFileService(store storage.Storage, repo repository.RecordFileRepository, cache Invalidator, prefix string, log *zap.Logger) RecordFileService {
	if log == nil {
		log = zap.NewNop()
	}
	return &recordFileService{
		store:  store,
		repo:   repo,
		cache:  cache,
		prefix: strings.Trim(prefix, "/"),
		log:    log.With(zap.String("component", "record_files")),
		now:    time.Now,
	}
}

func (s *recordFileService) Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (*model.RecordFile, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if !source.Supported(filename) {
		return nil, ErrUnsupportedFile
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxRecordFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxRecordFileSize {
		return nil, ErrFileTooLarge
	}
	rec, err := singleFlatRecord(filename, data)
	if err != nil {
		return nil, err
	}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = source.ContentType(filename)
	}
	ext := strings.ToLower(path.Ext(filename))
	genName := uuid.New().String() + ext
	key := path.Join(s.prefix, genName)

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	f := &model.RecordFile{
		ID:          uuid.New().String(),
		Filename:    filename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: contentType,
		CourseCode:  cast.ToString(rec[model.FieldCourseCode]),
		Program:     cast.ToString(rec[model.FieldProgram]),
		CreatedAt:   s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, f)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.invalidate()
	s.log.Info("record_file_uploaded",
		zap.String("id", stored.ID),
		zap.String("storage_path", stored.StoragePath),
		zap.String("course_code", stored.CourseCode),
		zap.String("program", stored.Program),
	)
	return stored, nil
}

// singleFlatRecord decodes data and requires exactly one record whose values
// are all scalars.
func singleFlatRecord(filename string, data []byte) (model.RawRecord, error) {
	recs, err := source.Decode(filename, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if len(recs) != 1 {
		return nil, fmt.Errorf("%w: found %d records", ErrInvalidRecord, len(recs))
	}
	for k, v := range recs[0] {
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("%w: field %s is nested", ErrInvalidRecord, k)
		}
	}
	return recs[0], nil
}

// List returns paginated record files without exposing repository types.
func (s *recordFileService) List(ctx context.Context, program string, limit, offset int) (*RecordFileListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset, Program: program})
	if err != nil {
		return nil, err
	}
	return &RecordFileListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *recordFileService) Get(ctx context.Context, id string) (*model.RecordFile, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *recordFileService) DownloadURL(ctx context.Context, id string) (string, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	u, err := s.store.PresignGet(ctx, f.StoragePath, downloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign: %w", err)
	}
	return u, nil
}

// Delete removes the object first; if that fails the row is kept so the file
// can still be found and deleted later.
func (s *recordFileService) Delete(ctx context.Context, id string) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, f.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	s.log.Info("record_file_deleted", zap.String("id", id), zap.String("storage_path", f.StoragePath))
	return nil
}

func (s *recordFileService) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}
