package curriculum

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"reportapi/internal/model"
)

// Selection is one committed set of user choices. A nil accepted list means
// "every observed value"; an empty non-nil list accepts nothing.
type Selection struct {
	Program string   `json:"program"`
	Types   []string `json:"types"`
	Regimes []string `json:"regimes"`
	Years   []string `json:"years"`
}

// Universe holds the distinct values observed in the unfiltered dataset for
// each cascading filter dimension. These are also the selector defaults.
type Universe struct {
	Types   []string `json:"types"`
	Regimes []string `json:"regimes"`
	Years   []string `json:"years"`
}

// Observe collects the filter universe of an unfiltered dataset.
func Observe(ds *Dataset) Universe {
	return Universe{
		Types:   ds.Distinct(model.FieldDisciplineType),
		Regimes: ds.Distinct(model.FieldRegime),
		Years:   ds.Distinct(model.FieldStudyYear),
	}
}

// SelectProgram keeps the rows whose program equals program exactly. No
// program selects nothing.
func SelectProgram(ds *Dataset, program string) []Row {
	out := make([]Row, 0)
	if program == "" {
		return out
	}
	for _, r := range ds.rows {
		if r.Program() == program {
			out = append(out, r)
		}
	}
	return out
}

// Cascade narrows rows by discipline type, then regime, then study year.
func Cascade(rows []Row, sel Selection, u Universe) []Row {
	steps := []struct {
		accept func(string) bool
		value  func(Row) string
	}{
		{acceptor(sel.Types, u.Types), Row.DisciplineType},
		{acceptor(sel.Regimes, u.Regimes), Row.Regime},
		{acceptor(sel.Years, u.Years), Row.Year},
	}

	out := append(make([]Row, 0, len(rows)), rows...)
	for _, step := range steps {
		if step.accept == nil {
			continue
		}
		kept := make([]Row, 0, len(out))
		for _, r := range out {
			if step.accept(step.value(r)) {
				kept = append(kept, r)
			}
		}
		out = kept
	}
	return out
}

// acceptor returns nil when the accepted set is the identity filter: unset, or
// equal to everything observed.
func acceptor(accepted, observed []string) func(string) bool {
	if accepted == nil {
		return nil
	}
	set := make(map[string]struct{}, len(accepted))
	for _, v := range accepted {
		set[v] = struct{}{}
	}
	if sameSet(set, observed) {
		return nil
	}
	return func(v string) bool {
		_, ok := set[v]
		return ok
	}
}

func sameSet(set map[string]struct{}, values []string) bool {
	if len(values) == 0 {
		return false
	}
	other := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := set[v]; !ok {
			return false
		}
		other[v] = struct{}{}
	}
	return len(other) == len(set)
}

// SortByCode orders rows by the numeric value of their course code. Equal
// codes keep their relative order. A code that is not a number fails the
// whole sort.
func SortByCode(rows []Row) ([]Row, error) {
	type keyed struct {
		row Row
		key float64
	}
	wrapped := make([]keyed, len(rows))
	for i, r := range rows {
		k, err := parseCode(r)
		if err != nil {
			return nil, err
		}
		wrapped[i] = keyed{row: r, key: k}
	}

	sort.SliceStable(wrapped, func(i, j int) bool {
		return wrapped[i].key < wrapped[j].key
	})

	out := make([]Row, len(wrapped))
	for i, w := range wrapped {
		out[i] = w.row
	}
	return out, nil
}

func parseCode(r Row) (float64, error) {
	code := strings.TrimSpace(r.Code())
	v, err := strconv.ParseFloat(code, 64)
	if err != nil || math.IsNaN(v) {
		return 0, &FormatError{
			Row:    r.index,
			Code:   r.Code(),
			Field:  model.FieldCourseCode,
			Reason: "course code is not a number",
		}
	}
	return v, nil
}

// Filter runs program selection, the cascading filters (against the universe
// of ds itself) and the course code sort.
func Filter(ds *Dataset, sel Selection) ([]Row, error) {
	rows := SelectProgram(ds, sel.Program)
	rows = Cascade(rows, sel, Observe(ds))
	return SortByCode(rows)
}
