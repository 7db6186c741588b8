package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"reportapi/internal/curriculum"
	"reportapi/internal/render"
)

var (
	ErrProgramRequired = errors.New("program is required")
	ErrUnknownView     = errors.New("unknown report view")
)

// DatasetProvider hands out the aggregated course dataset.
type DatasetProvider interface {
	Get(ctx context.Context) (*curriculum.Dataset, error)
	Refresh(ctx context.Context) (*curriculum.Dataset, error)
}

// Filters is the set of selector options of the unfiltered dataset.
type Filters struct {
	Programs []string `json:"programs"`
	curriculum.Universe
}

// Preview is the JSON form of the report views for one selection.
type Preview struct {
	Selection curriculum.Selection `json:"selection"`
	Views     []curriculum.View    `json:"views"`
}

// DatasetStatus describes the dataset after a refresh.
type DatasetStatus struct {
	Courses  int `json:"courses"`
	Programs int `json:"programs"`
}

// ReportService builds the curriculum reports on request. Reports are not
// stored; every call produces them from the current dataset.
type ReportService interface {
	Programs(ctx context.Context) ([]string, error)
	Filters(ctx context.Context) (*Filters, error)
	Preview(ctx context.Context, sel curriculum.Selection) (*Preview, error)
	Render(ctx context.Context, sel curriculum.Selection, view, format string) (*render.Document, error)
	Bundle(ctx context.Context, sel curriculum.Selection, format string) (*render.Document, error)
	Refresh(ctx context.Context) (*DatasetStatus, error)
}

type reportService struct {
	data          DatasetProvider
	defaultFormat string
	tracer        trace.Tracer
	log           *zap.Logger
}

// NewReportService constructs a ReportService. defaultFormat is used when a
// request names no format.
func NewReportService(data DatasetProvider, defaultFormat string, log *zap.Logger) ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	if defaultFormat == "" {
		defaultFormat = "docx"
	}
	return &reportService{
		data:          data,
		defaultFormat: defaultFormat,
		tracer:        otel.Tracer("reportapi/internal/service"),
		log:           log.With(zap.String("component", "reports")),
	}
}

func (s *reportService) Programs(ctx context.Context) ([]string, error) {
	ds, err := s.data.Get(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Programs(), nil
}

func (s *reportService) Filters(ctx context.Context) (*Filters, error) {
	ds, err := s.data.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &Filters{Programs: ds.Programs(), Universe: curriculum.Observe(ds)}, nil
}

func (s *reportService) Preview(ctx context.Context, sel curriculum.Selection) (*Preview, error) {
	ctx, span := s.tracer.Start(ctx, "reports.preview", trace.WithAttributes(attribute.String("program", sel.Program)))
	defer span.End()

	views, err := s.run(ctx, sel, curriculum.Views)
	if err != nil {
		recordErr(span, err)
		return nil, err
	}
	return &Preview{Selection: sel, Views: views}, nil
}

func (s *reportService) Render(ctx context.Context, sel curriculum.Selection, view, format string) (*render.Document, error) {
	ctx, span := s.tracer.Start(ctx, "reports.render", trace.WithAttributes(
		attribute.String("program", sel.Program),
		attribute.String("view", view),
	))
	defer span.End()

	def, ok := curriculum.FindView(view)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
	r, err := s.renderer(format)
	if err != nil {
		return nil, err
	}
	views, err := s.run(ctx, sel, []curriculum.ViewDef{def})
	if err != nil {
		recordErr(span, err)
		return nil, err
	}
	doc, err := render.RenderView(r, views[0])
	if err != nil {
		recordErr(span, err)
		return nil, err
	}
	s.log.Info("report_rendered",
		zap.String("program", sel.Program),
		zap.String("view", view),
		zap.String("filename", doc.Filename),
		zap.Int("bytes", len(doc.Body)),
	)
	return &doc, nil
}

func (s *reportService) Bundle(ctx context.Context, sel curriculum.Selection, format string) (*render.Document, error) {
	ctx, span := s.tracer.Start(ctx, "reports.bundle", trace.WithAttributes(attribute.String("program", sel.Program)))
	defer span.End()

	r, err := s.renderer(format)
	if err != nil {
		return nil, err
	}
	views, err := s.run(ctx, sel, curriculum.Views)
	if err != nil {
		recordErr(span, err)
		return nil, err
	}

	docs := make([]render.Document, 0, len(views))
	for _, v := range views {
		doc, err := render.RenderView(r, v)
		if err != nil {
			recordErr(span, err)
			return nil, err
		}
		docs = append(docs, doc)
	}
	body, err := render.Bundle(docs)
	if err != nil {
		recordErr(span, err)
		return nil, err
	}
	s.log.Info("report_bundle_rendered",
		zap.String("program", sel.Program),
		zap.Int("documents", len(docs)),
		zap.Int("bytes", len(body)),
	)
	return &render.Document{
		Filename:    bundleName(sel.Program),
		ContentType: "application/zip",
		Body:        body,
	}, nil
}

func (s *reportService) Refresh(ctx context.Context) (*DatasetStatus, error) {
	ds, err := s.data.Refresh(ctx)
	if err != nil {
		s.log.Warn("dataset_refresh_failed", zap.Error(err))
		return nil, err
	}
	st := &DatasetStatus{Courses: ds.Len(), Programs: len(ds.Programs())}
	s.log.Info("dataset_refreshed", zap.Int("courses", st.Courses), zap.Int("programs", st.Programs))
	return st, nil
}

func (s *reportService) run(ctx context.Context, sel curriculum.Selection, defs []curriculum.ViewDef) ([]curriculum.View, error) {
	if strings.TrimSpace(sel.Program) == "" {
		return nil, ErrProgramRequired
	}
	ds, err := s.data.Get(ctx)
	if err != nil {
		return nil, err
	}
	views, err := curriculum.Run(ds, sel, defs)
	if err != nil {
		if errors.Is(err, curriculum.ErrEmptyResult) {
			s.log.Info("no_matching_rows", zap.String("program", sel.Program))
		}
		return nil, err
	}
	return views, nil
}

func (s *reportService) renderer(format string) (render.Renderer, error) {
	if format == "" {
		format = s.defaultFormat
	}
	return render.ForFormat(format)
}

func recordErr(span trace.Span, err error) {
	if errors.Is(err, curriculum.ErrEmptyResult) {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// bundleName is "Rapoarte_<program>.zip" with the program reduced to a safe
// file name.
func bundleName(program string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, program)
	if safe == "" {
		return "Rapoarte.zip"
	}
	return "Rapoarte_" + safe + ".zip"
}
