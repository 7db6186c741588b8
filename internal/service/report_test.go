package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reportapi/internal/curriculum"
	"reportapi/internal/curriculum/curriculumtest"
	"reportapi/internal/render"
)

type mockDatasetProvider struct {
	mock.Mock
}

func (m *mockDatasetProvider) Get(ctx context.Context) (*curriculum.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*curriculum.Dataset), args.Error(1)
}

func (m *mockDatasetProvider) Refresh(ctx context.Context) (*curriculum.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*curriculum.Dataset), args.Error(1)
}

func reportDataset(t *testing.T) *curriculum.Dataset {
	bad := curriculumtest.Course("Automatica", "7", "Circuite")
	bad["M_4_1"] = 3.5
	return curriculumtest.Dataset(t,
		curriculumtest.Course("Informatica", "10", "Baze de date"),
		curriculumtest.Course("Informatica", "2", "Algebra"),
		bad,
	)
}

func TestReportService_ProgramsAndFilters(t *testing.T) {
	ctx := context.Background()
	data := new(mockDatasetProvider)
	data.On("Get", ctx).Return(reportDataset(t), nil)

	svc := NewReportService(data, "", nil)

	programs, err := svc.Programs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Automatica", "Informatica"}, programs)

	f, err := svc.Filters(ctx)
	require.NoError(t, err)
	assert.Equal(t, programs, f.Programs)
	assert.Equal(t, []string{"DF"}, f.Types)
	assert.Equal(t, []string{"DI"}, f.Regimes)
	assert.Equal(t, []string{"1"}, f.Years)
}

func TestReportService_Preview(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		sel       curriculum.Selection
		setup     func(data *mockDatasetProvider)
		wantCodes []string
		check     func(t *testing.T, err error)
	}{
		{
			name: "sorted views for a program",
			sel:  curriculum.Selection{Program: "Informatica"},
			setup: func(data *mockDatasetProvider) {
				data.On("Get", ctx).Return(reportDataset(t), nil)
			},
			wantCodes: []string{"2", "10"},
		},
		{
			name:  "program required",
			sel:   curriculum.Selection{Program: "  "},
			setup: func(*mockDatasetProvider) {},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrProgramRequired) },
		},
		{
			name: "empty result",
			sel:  curriculum.Selection{Program: "Informatica", Years: []string{}},
			setup: func(data *mockDatasetProvider) {
				data.On("Get", ctx).Return(reportDataset(t), nil)
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, curriculum.ErrEmptyResult) },
		},
		{
			name: "malformed selected record",
			sel:  curriculum.Selection{Program: "Automatica"},
			setup: func(data *mockDatasetProvider) {
				data.On("Get", ctx).Return(reportDataset(t), nil)
			},
			check: func(t *testing.T, err error) { assert.True(t, curriculum.IsFormat(err)) },
		},
		{
			name: "transport failure",
			sel:  curriculum.Selection{Program: "Informatica"},
			setup: func(data *mockDatasetProvider) {
				data.On("Get", ctx).Return(nil, &curriculum.TransportError{Op: "list fise", Err: errors.New("dial tcp")})
			},
			check: func(t *testing.T, err error) { assert.True(t, curriculum.IsTransport(err)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := new(mockDatasetProvider)
			tt.setup(data)

			got, err := NewReportService(data, "docx", nil).Preview(ctx, tt.sel)

			if tt.check != nil {
				tt.check(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Len(t, got.Views, len(curriculum.Views))
			for _, v := range got.Views {
				codes := make([]string, len(v.Rows))
				for i, row := range v.Rows {
					codes[i] = row[0]
				}
				assert.Equal(t, tt.wantCodes, codes, v.Key)
			}
			data.AssertExpectations(t)
		})
	}
}

func TestReportService_Render(t *testing.T) {
	ctx := context.Background()
	data := new(mockDatasetProvider)
	data.On("Get", ctx).Return(reportDataset(t), nil)
	svc := NewReportService(data, "csv", nil)
	sel := curriculum.Selection{Program: "Informatica"}

	t.Run("default format", func(t *testing.T) {
		doc, err := svc.Render(ctx, sel, curriculum.ViewStaff, "")
		require.NoError(t, err)
		assert.Equal(t, "Raport_CD.csv", doc.Filename)
		assert.Contains(t, string(doc.Body), "lead 2 assistant 2")
	})

	t.Run("explicit format", func(t *testing.T) {
		doc, err := svc.Render(ctx, sel, curriculum.ViewContent, "xlsx")
		require.NoError(t, err)
		assert.Equal(t, "Raport_continuturi.xlsx", doc.Filename)
	})

	t.Run("unknown view", func(t *testing.T) {
		_, err := svc.Render(ctx, sel, "grades", "")
		assert.ErrorIs(t, err, ErrUnknownView)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := svc.Render(ctx, sel, curriculum.ViewStaff, "pdf")
		assert.ErrorIs(t, err, render.ErrUnsupportedFormat)
	})
}

func TestReportService_Bundle(t *testing.T) {
	ctx := context.Background()
	data := new(mockDatasetProvider)
	data.On("Get", ctx).Return(reportDataset(t), nil)

	doc, err := NewReportService(data, "docx", nil).Bundle(ctx, curriculum.Selection{Program: "Informatica"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Rapoarte_Informatica.zip", doc.Filename)
	assert.Equal(t, "application/zip", doc.ContentType)

	zr, err := zip.NewReader(bytes.NewReader(doc.Body), int64(len(doc.Body)))
	require.NoError(t, err)
	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		"Raport_continuturi.docx",
		"Raport_competente.docx",
		"Raport_preconditii.docx",
		"Raport_conditii.docx",
		"Raport_obiective.docx",
		"Raport_CD.docx",
	}, names)
}

func TestReportService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		data := new(mockDatasetProvider)
		data.On("Refresh", ctx).Return(reportDataset(t), nil)

		st, err := NewReportService(data, "", nil).Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, &DatasetStatus{Courses: 3, Programs: 2}, st)
	})

	t.Run("schema error", func(t *testing.T) {
		data := new(mockDatasetProvider)
		data.On("Refresh", ctx).Return(nil, &curriculum.SchemaError{Reason: "no course records available"})

		_, err := NewReportService(data, "", nil).Refresh(ctx)
		assert.True(t, curriculum.IsSchema(err))
	})
}

func TestBundleName(t *testing.T) {
	assert.Equal(t, "Rapoarte_Calculatoare_si_TI.zip", bundleName("Calculatoare si TI"))
	assert.Equal(t, "Rapoarte.zip", bundleName("//"))
}
