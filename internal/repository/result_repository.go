package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/schoolfit/fitness-server/internal/repository/models"
	"github.com/schoolfit/fitness-server/internal/standards"
)

// Query timeouts live at the provider boundary; the service layer above
// never sets its own.
const queryTimeout = 3 * time.Second

// ResultRepository reads raw fitness test results from the results store.
// It owns no schema and performs no writes.
type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

const recordColumns = `
	student_id, name, sex, grade, year,
	endurance_run, sprint, sit_and_reach,
	standing_jump, vital_capacity, strength_reps
`

// AvailableYears lists the years a grade has results for, ascending.
func (r *ResultRepository) AvailableYears(ctx context.Context, gradeID string) ([]int, error) {
	const query = `
		SELECT DISTINCT year
		FROM fitness_results
		WHERE grade_id = ?
		ORDER BY year
	`
	return r.queryYears(ctx, query, gradeID)
}

// StudentAvailableYears lists the years a student has results for, ascending.
func (r *ResultRepository) StudentAvailableYears(ctx context.Context, studentID string) ([]int, error) {
	const query = `
		SELECT DISTINCT year
		FROM fitness_results
		WHERE student_id = ?
		ORDER BY year
	`
	return r.queryYears(ctx, query, studentID)
}

func (r *ResultRepository) queryYears(ctx context.Context, query string, arg any) ([]int, error) {
	dbCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(dbCtx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query available years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year row: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate year rows: %w", err)
	}
	return years, nil
}

// FetchPage returns one 1-based page of a grade-year's records plus the
// total record count for the query. Rows are ordered by student id so
// paging is deterministic.
func (r *ResultRepository) FetchPage(ctx context.Context, gradeID string, year, page, pageSize int) (models.Page, error) {
	if page < 1 || pageSize < 1 {
		return models.Page{}, fmt.Errorf("invalid paging: page %d size %d", page, pageSize)
	}

	dbCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	const countQuery = `
		SELECT COUNT(*)
		FROM fitness_results
		WHERE grade_id = ? AND year = ?
	`
	var total int
	if err := r.db.QueryRowContext(dbCtx, countQuery, gradeID, year).Scan(&total); err != nil {
		return models.Page{}, fmt.Errorf("count grade-year records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM fitness_results
		WHERE grade_id = ? AND year = ?
		ORDER BY student_id
		LIMIT ? OFFSET ?
	`, recordColumns)

	rows, err := r.db.QueryContext(dbCtx, query, gradeID, year, pageSize, (page-1)*pageSize)
	if err != nil {
		return models.Page{}, fmt.Errorf("query grade-year page: %w", err)
	}
	defer rows.Close()

	records := make([]models.RawStudentRecord, 0, pageSize)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return models.Page{}, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return models.Page{}, fmt.Errorf("iterate page rows: %w", err)
	}

	return models.Page{Records: records, Total: total}, nil
}

// StudentByID returns a student's record for one year, or (nil, nil) when
// the student has no record for that year.
func (r *ResultRepository) StudentByID(ctx context.Context, studentID string, year int) (*models.RawStudentRecord, error) {
	dbCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT %s
		FROM fitness_results
		WHERE student_id = ? AND year = ?
		LIMIT 1
	`, recordColumns)

	rows, err := r.db.QueryContext(dbCtx, query, studentID, year)
	if err != nil {
		return nil, fmt.Errorf("query student record: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate student record: %w", err)
		}
		return nil, nil
	}

	rec, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanRecord(rows *sql.Rows) (models.RawStudentRecord, error) {
	var (
		rec        models.RawStudentRecord
		sex, grade int
		m          [standards.ItemCount]sql.NullFloat64
	)

	err := rows.Scan(
		&rec.StudentID, &rec.Name, &sex, &grade, &rec.Year,
		&m[0], &m[1], &m[2], &m[3], &m[4], &m[5],
	)
	if err != nil {
		return models.RawStudentRecord{}, fmt.Errorf("scan result row: %w", err)
	}

	rec.Sex = standards.Sex(sex)
	rec.Grade = standards.Grade(grade)

	assign := func(n sql.NullFloat64) *float64 {
		if !n.Valid {
			return nil
		}
		v := n.Float64
		return &v
	}
	rec.EnduranceRun = assign(m[0])
	rec.Sprint = assign(m[1])
	rec.SitAndReach = assign(m[2])
	rec.StandingJump = assign(m[3])
	rec.VitalCapacity = assign(m[4])
	rec.StrengthReps = assign(m[5])

	return rec, nil
}
