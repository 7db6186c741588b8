package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reportapi/internal/curriculum"
	"reportapi/internal/render"
	"reportapi/internal/service"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Programs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReportService) Filters(ctx context.Context) (*service.Filters, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Filters), args.Error(1)
}

func (m *MockReportService) Preview(ctx context.Context, sel curriculum.Selection) (*service.Preview, error) {
	args := m.Called(ctx, sel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Preview), args.Error(1)
}

func (m *MockReportService) Render(ctx context.Context, sel curriculum.Selection, view, format string) (*render.Document, error) {
	args := m.Called(ctx, sel, view, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*render.Document), args.Error(1)
}

func (m *MockReportService) Bundle(ctx context.Context, sel curriculum.Selection, format string) (*render.Document, error) {
	args := m.Called(ctx, sel, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*render.Document), args.Error(1)
}

func (m *MockReportService) Refresh(ctx context.Context) (*service.DatasetStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DatasetStatus), args.Error(1)
}
