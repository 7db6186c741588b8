package render

import (
	"bytes"
	"encoding/csv"
)

// utf8BOM lets spreadsheet tools detect UTF-8 (diacritics in course names).
const utf8BOM = "\ufeff"

// CSV writes the labels then the rows. The title is not part of the file.
type CSV struct{}

func (CSV) ContentType() string { return "text/csv; charset=utf-8" }
func (CSV) Extension() string   { return ".csv" }

func (CSV) Render(t Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Labels); err != nil {
		return nil, err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
