package curriculum

import (
	"fmt"
	"strings"

	"reportapi/internal/model"
)

// Composite column names. They double as report column labels.
const (
	ColCourses       = "Cursuri"
	ColApplications  = "Aplicatii"
	ColPreconditions = "Preconditii"
	ColConditions    = "Conditii"
	ColCompetencies  = "Competente"
	ColStaff         = "Titulari"
	ColObjectives    = "Obiective"
)

// CompositeField derives one text column by joining Sources, in order, with a
// single space and ending the result with a newline.
type CompositeField struct {
	Name    string
	Sources []string
}

// Composites is the fixed table of derived columns.
var Composites = []CompositeField{
	{Name: ColCourses, Sources: numbered("M_8_1_", 14)},
	{Name: ColApplications, Sources: numbered("M_8_2_", 14)},
	{Name: ColPreconditions, Sources: []string{"M_4_1", "M_4_2"}},
	{Name: ColConditions, Sources: []string{"M_5_1", "M_5_2"}},
	{Name: ColCompetencies, Sources: []string{"M_6_cp", "M_6_ct"}},
	{Name: ColStaff, Sources: []string{model.FieldCourseLead, model.FieldApplicationsLead}},
	{Name: ColObjectives, Sources: []string{"M_7_1", "M_7_2"}},
}

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return out
}

// Compose returns a copy of ds extended with the composite columns in defs.
// Original columns are kept. A source column absent from the whole dataset is
// a SchemaError; a source value that is not text is a FormatError. A value
// missing from a single record is already "" and joins as such.
func Compose(ds *Dataset, defs []CompositeField) (*Dataset, error) {
	if err := Validate(ds, defs); err != nil {
		return nil, err
	}

	rows := make([]Row, len(ds.rows))
	for i, row := range ds.rows {
		derived := make(map[string]string, len(defs))
		for _, def := range defs {
			v, err := composeRow(row, def)
			if err != nil {
				return nil, err
			}
			derived[def.Name] = v
		}
		rows[i] = row.withColumns(derived)
	}

	columns := ds.Columns()
	for _, def := range defs {
		if !ds.HasColumn(def.Name) {
			columns = append(columns, def.Name)
		}
	}
	return &Dataset{columns: columns, rows: rows}, nil
}

// Validate reports a SchemaError when a source column of defs is absent from
// every record of ds. Such a dataset cannot produce any report.
func Validate(ds *Dataset, defs []CompositeField) error {
	for _, def := range defs {
		for _, src := range def.Sources {
			if !ds.HasColumn(src) {
				return &SchemaError{Reason: fmt.Sprintf("column %s required by %s is absent from every record", src, def.Name)}
			}
		}
	}
	return nil
}

func composeRow(row Row, def CompositeField) (string, error) {
	parts := make([]string, len(def.Sources))
	for i, src := range def.Sources {
		if kind, bad := row.invalid[src]; bad {
			return "", &FormatError{
				Row:    row.index,
				Code:   row.Code(),
				Field:  src,
				Reason: fmt.Sprintf("%s value is not text (needed by %s)", kind, def.Name),
			}
		}
		parts[i] = row.cells[src]
	}
	return strings.Join(parts, " ") + "\n", nil
}
