package curriculum

import "reportapi/internal/model"

// Display labels of the identifying columns. Renaming happens only here.
const (
	LabelCode = "Cod disciplina"
	LabelName = "Denumire disciplina"
)

// View keys.
const (
	ViewContent       = "content"
	ViewCompetencies  = "competencies"
	ViewPreconditions = "preconditions"
	ViewConditions    = "conditions"
	ViewObjectives    = "objectives"
	ViewStaff         = "staff"
)

// Column maps a dataset column to its label in a report.
type Column struct {
	Source string
	Label  string
}

// ViewDef is the fixed shape of one report.
type ViewDef struct {
	Key      string
	Title    string
	Filename string
	Columns  []Column
}

// View is a projected report: ordered labels and ordered rows of cells.
type View struct {
	Key      string     `json:"key"`
	Title    string     `json:"title"`
	Filename string     `json:"filename"`
	Labels   []string   `json:"labels"`
	Rows     [][]string `json:"rows"`
}

func (v View) Empty() bool { return len(v.Rows) == 0 }

func identity(extra ...string) []Column {
	cols := []Column{
		{Source: model.FieldCourseCode, Label: LabelCode},
		{Source: model.FieldCourseName, Label: LabelName},
	}
	for _, c := range extra {
		cols = append(cols, Column{Source: c, Label: c})
	}
	return cols
}

// Views lists the six reports in the order they are offered.
var Views = []ViewDef{
	{Key: ViewContent, Title: "Raport cursuri si aplicatii", Filename: "Raport_continuturi", Columns: identity(ColCourses, ColApplications)},
	{Key: ViewCompetencies, Title: "Raport competente", Filename: "Raport_competente", Columns: identity(ColCompetencies)},
	{Key: ViewPreconditions, Title: "Raport preconditii", Filename: "Raport_preconditii", Columns: identity(ColPreconditions)},
	{Key: ViewConditions, Title: "Raport conditii", Filename: "Raport_conditii", Columns: identity(ColConditions)},
	{Key: ViewObjectives, Title: "Raport obiective", Filename: "Raport_obiective", Columns: identity(ColObjectives)},
	{Key: ViewStaff, Title: "Raport cadre didactice", Filename: "Raport_CD", Columns: identity(ColStaff)},
}

// FindView looks a view definition up by key.
func FindView(key string) (ViewDef, bool) {
	for _, v := range Views {
		if v.Key == key {
			return v, true
		}
	}
	return ViewDef{}, false
}

// Project slices rows into one View per definition, keeping row order. No rows
// means no views: nothing is handed to a document sink.
func Project(rows []Row, defs []ViewDef) []View {
	if len(rows) == 0 {
		return nil
	}
	views := make([]View, 0, len(defs))
	for _, def := range defs {
		v := View{
			Key:      def.Key,
			Title:    def.Title,
			Filename: def.Filename,
			Labels:   make([]string, len(def.Columns)),
			Rows:     make([][]string, len(rows)),
		}
		for i, c := range def.Columns {
			v.Labels[i] = c.Label
		}
		for i, r := range rows {
			cells := make([]string, len(def.Columns))
			for j, c := range def.Columns {
				cells[j] = r.Get(c.Source)
			}
			v.Rows[i] = cells
		}
		views = append(views, v)
	}
	return views
}
