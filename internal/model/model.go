package model

// Package model contains domain models/data structures shared across layers.
// Keep it free of business logic; the pipeline lives in internal/curriculum.

// Field codes used by the course record files. Every record is keyed by these
// codes; only the ones the reports read are named here.
const (
	FieldProgram          = "M_1_6"
	FieldCourseCode       = "M_1_8"
	FieldCourseName       = "M_2_1"
	FieldCourseLead       = "M_2_2"
	FieldApplicationsLead = "M_2_3"
	FieldStudyYear        = "M_2_4"
	FieldEvaluation       = "M_2_6"
	FieldDisciplineType   = "M_2_7_1"
	FieldRegime           = "M_2_7_2"
	FieldCredits          = "M_3_11"
)
