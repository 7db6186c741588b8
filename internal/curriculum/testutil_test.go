package curriculum

import (
	"fmt"

	"reportapi/internal/model"
)

// course builds a record carrying every field the reports read.
func course(program, code, name string) model.RawRecord {
	rec := model.RawRecord{
		model.FieldProgram:          program,
		model.FieldCourseCode:       code,
		model.FieldCourseName:       name,
		model.FieldCourseLead:       "lead " + code,
		model.FieldApplicationsLead: "assistant " + code,
		model.FieldStudyYear:        "1",
		model.FieldDisciplineType:   "DF",
		model.FieldRegime:           "DI",
		"M_4_1":                     "pre1",
		"M_4_2":                     "pre2",
		"M_5_1":                     "cond1",
		"M_5_2":                     "cond2",
		"M_6_cp":                    "cp",
		"M_6_ct":                    "ct",
		"M_7_1":                     "obj1",
		"M_7_2":                     "obj2",
	}
	for i := 1; i <= 14; i++ {
		rec[fmt.Sprintf("M_8_1_%d", i)] = fmt.Sprintf("c%d", i)
		rec[fmt.Sprintf("M_8_2_%d", i)] = fmt.Sprintf("a%d", i)
	}
	return rec
}

func with(rec model.RawRecord, kv ...any) model.RawRecord {
	out := make(model.RawRecord, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1]
	}
	return out
}

func without(rec model.RawRecord, keys ...string) model.RawRecord {
	out := with(rec)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func codes(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Code()
	}
	return out
}
