// Package curriculumtest provides course record fixtures for tests.
package curriculumtest

import (
	"fmt"
	"testing"

	"reportapi/internal/curriculum"
	"reportapi/internal/model"
)

// Course builds a record carrying every field the reports read, of discipline
// type DF, regime DI and study year 1.
func Course(program, code, name string) model.RawRecord {
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

// Dataset aggregates recs and fails the test on error.
func Dataset(t testing.TB, recs ...model.RawRecord) *curriculum.Dataset {
	t.Helper()
	ds, err := curriculum.Aggregate(recs)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	return ds
}
