package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"reportapi/internal/model"
	"reportapi/internal/service"
)

type MockRecordFileService struct {
	mock.Mock
}

func (m *MockRecordFileService) Upload(ctx context.Context, r io.Reader, filename string, contentType string, size int64) (*model.RecordFile, error) {
	args := m.Called(ctx, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecordFile), args.Error(1)
}

func (m *MockRecordFileService) List(ctx context.Context, program string, limit, offset int) (*service.RecordFileListResult, error) {
	args := m.Called(ctx, program, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecordFileListResult), args.Error(1)
}

func (m *MockRecordFileService) Get(ctx context.Context, id string) (*model.RecordFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecordFile), args.Error(1)
}

func (m *MockRecordFileService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockRecordFileService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
