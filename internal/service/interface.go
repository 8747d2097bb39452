package service

import (
	"context"

	"github.com/schoolfit/fitness-server/internal/repository/models"
)

// DataProvider is the read-only source of raw test results. The service
// treats it as an external collaborator; timeouts and retries belong behind
// this boundary, not in front of it.
type DataProvider interface {
	// AvailableYears lists the years a grade has results for, ascending.
	AvailableYears(ctx context.Context, gradeID string) ([]int, error)

	// StudentAvailableYears lists the years a student has results for,
	// ascending.
	StudentAvailableYears(ctx context.Context, studentID string) ([]int, error)

	// FetchPage returns one page of a grade-year's records plus the total
	// record count for the query. Pages are 1-based.
	FetchPage(ctx context.Context, gradeID string, year, page, pageSize int) (models.Page, error)

	// StudentByID returns a student's record for one year, or (nil, nil)
	// when the student has no record for that year.
	StudentByID(ctx context.Context, studentID string, year int) (*models.RawStudentRecord, error)
}
