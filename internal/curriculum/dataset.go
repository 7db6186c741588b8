package curriculum

import (
	"slices"

	"reportapi/internal/model"
)

// Row is one course of an aggregated dataset. A Row is never modified after it
// is built; deriving columns produces a new Row.
type Row struct {
	index   int
	cells   map[string]string
	invalid map[string]string // field code -> Go type of a value that is not text
}

// Index is the position of the row's source record in aggregation order.
func (r Row) Index() int { return r.index }

// Get returns the text of a column, or "" when the column is unknown.
func (r Row) Get(code string) string { return r.cells[code] }

func (r Row) Code() string             { return r.cells[model.FieldCourseCode] }
func (r Row) Name() string             { return r.cells[model.FieldCourseName] }
func (r Row) Program() string          { return r.cells[model.FieldProgram] }
func (r Row) DisciplineType() string   { return r.cells[model.FieldDisciplineType] }
func (r Row) Regime() string           { return r.cells[model.FieldRegime] }
func (r Row) Year() string             { return r.cells[model.FieldStudyYear] }
func (r Row) CourseLead() string       { return r.cells[model.FieldCourseLead] }
func (r Row) ApplicationsLead() string { return r.cells[model.FieldApplicationsLead] }

// withColumns returns a copy of the row extended (or overridden) by cols.
func (r Row) withColumns(cols map[string]string) Row {
	cells := make(map[string]string, len(r.cells)+len(cols))
	for k, v := range r.cells {
		cells[k] = v
	}
	for k, v := range cols {
		cells[k] = v
	}
	return Row{index: r.index, cells: cells, invalid: r.invalid}
}

// Dataset is the tabular view of all course records: one row per record and
// the same column set on every row.
type Dataset struct {
	columns []string
	rows    []Row
}

// Columns returns the column codes in first-seen order.
func (d *Dataset) Columns() []string { return slices.Clone(d.columns) }

// Rows returns the rows in aggregation order.
func (d *Dataset) Rows() []Row { return slices.Clone(d.rows) }

func (d *Dataset) Len() int { return len(d.rows) }

func (d *Dataset) HasColumn(code string) bool {
	return slices.Contains(d.columns, code)
}

// Subset returns a dataset with the same columns restricted to rows.
func (d *Dataset) Subset(rows []Row) *Dataset {
	return &Dataset{columns: d.columns, rows: slices.Clone(rows)}
}

// Distinct returns the distinct values of a column in first-seen order. Empty
// values are observed values too and are included.
func (d *Dataset) Distinct(code string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range d.rows {
		v := r.Get(code)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Programs returns the sorted, non-empty program names found in the dataset.
func (d *Dataset) Programs() []string {
	out := make([]string, 0)
	for _, p := range d.Distinct(model.FieldProgram) {
		if p != "" {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out
}
