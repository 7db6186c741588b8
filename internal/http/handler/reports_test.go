package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reportapi/internal/cache"
	"reportapi/internal/curriculum"
	"reportapi/internal/curriculum/curriculumtest"
	"reportapi/internal/model"
	"reportapi/internal/render"
	"reportapi/internal/service"
	serviceMocks "reportapi/internal/service/mocks"
	"reportapi/internal/source"
)

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func reportApp(svc service.ReportService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, nil, svc, nil)
	return app
}

func TestListPrograms(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := reportApp(mockSvc)

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Programs", mock.Anything).Return([]string{"Automatica", "Informatica"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/programs", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Data []string `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, []string{"Automatica", "Informatica"}, body.Data)
	})

	t.Run("store unavailable", func(t *testing.T) {
		mockSvc.On("Programs", mock.Anything).
			Return(nil, &curriculum.TransportError{Op: "list fise", Err: errors.New("dial tcp")}).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/programs", nil))

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "SOURCE_UNAVAILABLE", res.Error.Code)
		assert.NotContains(t, res.Error.Message, "dial tcp")
	})

	t.Run("no records", func(t *testing.T) {
		mockSvc.On("Programs", mock.Anything).
			Return(nil, &curriculum.SchemaError{Reason: "no course records available"}).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/programs", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
	mockSvc.AssertExpectations(t)
}

func TestGetFilters(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	mockSvc.On("Filters", mock.Anything).Return(&service.Filters{
		Programs: []string{"Informatica"},
		Universe: curriculum.Universe{Types: []string{"DF", "DS"}, Regimes: []string{"DI"}, Years: []string{"1", "2"}},
	}, nil)

	resp, _ := reportApp(mockSvc).Test(httptest.NewRequest(http.MethodGet, "/filters", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string][]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, []string{"DF", "DS"}, body["types"])
	assert.Equal(t, []string{"1", "2"}, body["years"])
	assert.Equal(t, []string{"Informatica"}, body["programs"])
}

func TestPreviewReports(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(m *serviceMocks.MockReportService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "omitted lists stay nil and empty lists stay empty",
			body: `{"program": "Informatica", "years": []}`,
			setupMocks: func(m *serviceMocks.MockReportService) {
				m.On("Preview", mock.Anything, mock.MatchedBy(func(sel curriculum.Selection) bool {
					return sel.Program == "Informatica" &&
						sel.Types == nil && sel.Regimes == nil &&
						sel.Years != nil && len(sel.Years) == 0
				})).Return(nil, curriculum.ErrEmptyResult).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "views",
			body: `{"program": "Informatica", "types": ["DF"]}`,
			setupMocks: func(m *serviceMocks.MockReportService) {
				m.On("Preview", mock.Anything, curriculum.Selection{Program: "Informatica", Types: []string{"DF"}}).
					Return(&service.Preview{Views: []curriculum.View{{Key: curriculum.ViewStaff}}}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed body",
			body:       `{"program": `,
			setupMocks: func(*serviceMocks.MockReportService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_BODY",
		},
		{
			name: "program required",
			body: `{}`,
			setupMocks: func(m *serviceMocks.MockReportService) {
				m.On("Preview", mock.Anything, curriculum.Selection{}).Return(nil, service.ErrProgramRequired).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "PROGRAM_REQUIRED",
		},
		{
			name: "malformed course",
			body: `{"program": "Automatica"}`,
			setupMocks: func(m *serviceMocks.MockReportService) {
				m.On("Preview", mock.Anything, mock.Anything).
					Return(nil, &curriculum.FormatError{Row: 3, Code: "7", Field: "M_4_1", Reason: "float64 value"}).Once()
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_COURSE_DATA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockReportService)
			tt.setupMocks(mockSvc)

			resp, err := reportApp(mockSvc).Test(postJSON("/reports/preview", tt.body))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				var res errorPayload
				json.NewDecoder(resp.Body).Decode(&res)
				assert.Equal(t, tt.wantCode, res.Error.Code)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestPreviewReports_EmptyResultBody(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	mockSvc.On("Preview", mock.Anything, mock.Anything).Return(nil, curriculum.ErrEmptyResult)

	resp, _ := reportApp(mockSvc).Test(postJSON("/reports/preview", `{"program": "Informatica"}`))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body emptyPayload
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "no_matching_rows", body.Status)
}

func TestRenderReport(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	app := reportApp(mockSvc)
	sel := curriculum.Selection{Program: "Informatica"}

	t.Run("document", func(t *testing.T) {
		mockSvc.On("Render", mock.Anything, sel, "staff", "csv").Return(&render.Document{
			Filename:    "Raport_CD.csv",
			ContentType: "text/csv; charset=utf-8",
			Body:        []byte("a,b\n"),
		}, nil).Once()

		resp, _ := app.Test(postJSON("/reports/staff", `{"program": "Informatica", "format": "csv"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="Raport_CD.csv"`)
		b, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "a,b\n", string(b))
	})

	t.Run("format from query", func(t *testing.T) {
		mockSvc.On("Render", mock.Anything, sel, "content", "xlsx").Return(&render.Document{
			Filename: "Raport_continuturi.xlsx", ContentType: "application/octet-stream",
		}, nil).Once()

		resp, _ := app.Test(postJSON("/reports/content?format=xlsx", `{"program": "Informatica"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown view", func(t *testing.T) {
		mockSvc.On("Render", mock.Anything, sel, "grades", "").Return(nil, service.ErrUnknownView).Once()

		resp, _ := app.Test(postJSON("/reports/grades", `{"program": "Informatica"}`))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unsupported format", func(t *testing.T) {
		mockSvc.On("Render", mock.Anything, sel, "staff", "pdf").Return(nil, render.ErrUnsupportedFormat).Once()

		resp, _ := app.Test(postJSON("/reports/staff", `{"program": "Informatica", "format": "pdf"}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UNSUPPORTED_FORMAT", res.Error.Code)
	})
	mockSvc.AssertExpectations(t)
}

func TestRenderBundle(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	mockSvc.On("Bundle", mock.Anything, curriculum.Selection{Program: "Informatica"}, "docx").Return(&render.Document{
		Filename:    "Rapoarte_Informatica.zip",
		ContentType: "application/zip",
		Body:        []byte("PK"),
	}, nil).Once()

	resp, _ := reportApp(mockSvc).Test(postJSON("/reports", `{"program": "Informatica", "format": "docx"}`))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	mockSvc.AssertExpectations(t)
}

func TestRefreshDataset(t *testing.T) {
	mockSvc := new(serviceMocks.MockReportService)
	mockSvc.On("Refresh", mock.Anything).Return(&service.DatasetStatus{Courses: 40, Programs: 3}, nil).Once()

	resp, _ := reportApp(mockSvc).Test(httptest.NewRequest(http.MethodPost, "/dataset/refresh", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var st service.DatasetStatus
	json.NewDecoder(resp.Body).Decode(&st)
	assert.Equal(t, 40, st.Courses)
	mockSvc.AssertExpectations(t)
}

func TestIncompleteDatasetBlocksEveryRoute(t *testing.T) {
	rec := curriculumtest.Course("Informatica", "1", "Algebra")
	delete(rec, "M_8_1_1")
	src := source.Func(func(context.Context) ([]model.RawRecord, error) {
		return []model.RawRecord{rec}, nil
	})
	data := cache.New(func(ctx context.Context) (*curriculum.Dataset, error) {
		return source.LoadDataset(ctx, src)
	}, 0)
	app := reportApp(service.NewReportService(data, "", nil))

	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "programs", req: httptest.NewRequest(http.MethodGet, "/programs", nil)},
		{name: "filters", req: httptest.NewRequest(http.MethodGet, "/filters", nil)},
		{name: "preview of another program", req: postJSON("/reports/preview", `{"program": "Automatica"}`)},
		{name: "preview accepting nothing", req: postJSON("/reports/preview", `{"program": "Informatica", "years": []}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(tt.req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

			var res errorPayload
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
			assert.Equal(t, "NO_DATA", res.Error.Code)
			assert.Contains(t, res.Error.Message, "M_8_1_1")
		})
	}
}
