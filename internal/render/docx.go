package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
)

// tableStyle ships with the default godocx template; its first row is
// formatted as a header.
const tableStyle = "LightList-Accent4"

// DOCX writes a Word document: the title as a heading followed by one table,
// header row first.
type DOCX struct{}

func (DOCX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (DOCX) Extension() string { return ".docx" }

func (DOCX) Render(t Table) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("docx: new document: %w", err)
	}
	if _, err := doc.AddHeading(t.Title, 1); err != nil {
		return nil, fmt.Errorf("docx: heading: %w", err)
	}

	tbl := doc.AddTable()
	tbl.Style(tableStyle)

	header := tbl.AddRow()
	for _, label := range t.Labels {
		cell := header.AddCell()
		for _, line := range cellLines(label) {
			cell.AddParagraph("").AddText(line).Bold(true)
		}
	}
	for _, row := range t.Rows {
		r := tbl.AddRow()
		for _, text := range row {
			cell := r.AddCell()
			for _, line := range cellLines(text) {
				cell.AddParagraph(line)
			}
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("docx: write: %w", err)
	}
	return buf.Bytes(), nil
}

// cellLines splits text into one paragraph per line. A trailing newline
// (every composite value has one) adds no empty paragraph.
func cellLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
