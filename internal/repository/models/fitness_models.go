package models

import "github.com/schoolfit/fitness-server/internal/standards"

// RawStudentRecord is one student's raw test results for one year, as
// returned by the data provider. A nil measurement means the student did not
// take that test; that is a valid state, not an error.
type RawStudentRecord struct {
	StudentID string
	Name      string
	Sex       standards.Sex
	Grade     standards.Grade
	Year      int

	EnduranceRun  *float64 // seconds
	Sprint        *float64 // seconds
	SitAndReach   *float64 // centimeters
	StandingJump  *float64 // centimeters
	VitalCapacity *float64 // milliliters
	StrengthReps  *float64 // repetitions
}

// Page is one page of grade-year results plus the provider's total count
// for the query.
type Page struct {
	Records []RawStudentRecord
	Total   int
}
