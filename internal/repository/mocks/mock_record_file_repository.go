package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reportapi/internal/model"
	"reportapi/internal/repository"
)

type MockRecordFileRepository struct {
	mock.Mock
}

func (m *MockRecordFileRepository) Create(ctx context.Context, f *model.RecordFile) (*model.RecordFile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecordFile), args.Error(1)
}

func (m *MockRecordFileRepository) FindByID(ctx context.Context, id string) (*model.RecordFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecordFile), args.Error(1)
}

func (m *MockRecordFileRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.RecordFile], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.RecordFile]), args.Error(1)
}

func (m *MockRecordFileRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
