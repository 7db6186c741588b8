package render

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"reportapi/internal/curriculum"
)

// ErrUnsupportedFormat is returned for an unknown document format.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Table is the payload a renderer consumes: a title, ordered column labels and
// ordered rows of cells.
type Table struct {
	Title  string
	Labels []string
	Rows   [][]string
}

// FromView copies a projected report view into a Table.
func FromView(v curriculum.View) Table {
	return Table{Title: v.Title, Labels: v.Labels, Rows: v.Rows}
}

// Renderer turns a Table into one document.
type Renderer interface {
	Render(t Table) ([]byte, error)
	ContentType() string
	Extension() string
}

// Document is a rendered report ready to be sent to the user.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Formats lists the supported format names.
var Formats = []string{"docx", "csv", "xlsx"}

// ForFormat returns the renderer for a format name.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "docx":
		return DOCX{}, nil
	case "csv":
		return CSV{}, nil
	case "xlsx":
		return XLSX{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// RenderView renders one report view. Callers must not pass an empty view.
func RenderView(r Renderer, v curriculum.View) (Document, error) {
	body, err := r.Render(FromView(v))
	if err != nil {
		return Document{}, fmt.Errorf("render %s: %w", v.Key, err)
	}
	return Document{
		Filename:    v.Filename + r.Extension(),
		ContentType: r.ContentType(),
		Body:        body,
	}, nil
}

// Bundle packs documents into one zip archive, in order.
func Bundle(docs []Document) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, d := range docs {
		w, err := zw.Create(d.Filename)
		if err != nil {
			return nil, fmt.Errorf("bundle %s: %w", d.Filename, err)
		}
		if _, err := w.Write(d.Body); err != nil {
			return nil, fmt.Errorf("bundle %s: %w", d.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	return buf.Bytes(), nil
}
