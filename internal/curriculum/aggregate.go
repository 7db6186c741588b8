package curriculum

import (
	"fmt"
	"slices"

	"github.com/spf13/cast"

	"reportapi/internal/model"
)

// Aggregate merges raw records into one dataset. The column set is the union of
// every record's keys and a key absent from a record reads as "". Rows keep the
// input order. An empty input is a SchemaError: there is nothing to report on.
func Aggregate(records []model.RawRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, &SchemaError{Reason: "no course records available"}
	}

	seen := make(map[string]struct{})
	columns := make([]string, 0)
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			if _, ok := seen[k]; !ok {
				keys = append(keys, k)
			}
		}
		// Map order is random; sort the new keys of each record so column order is stable.
		slices.Sort(keys)
		for _, k := range keys {
			seen[k] = struct{}{}
			columns = append(columns, k)
		}
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		cells := make(map[string]string, len(columns))
		var invalid map[string]string
		for _, col := range columns {
			text, ok := cellText(rec[col])
			cells[col] = text
			if !ok {
				if invalid == nil {
					invalid = make(map[string]string)
				}
				invalid[col] = fmt.Sprintf("%T", rec[col])
			}
		}
		rows[i] = Row{index: i, cells: cells, invalid: invalid}
	}

	return &Dataset{columns: columns, rows: rows}, nil
}

// cellText stringifies a raw value. Strings and missing values are text; other
// scalars are stringified for display and filtering but flagged so composite
// columns refuse them. Nested values have no text form.
func cellText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, false
}
