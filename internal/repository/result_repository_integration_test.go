package repository_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolfit/fitness-server/internal/repository"
	"github.com/schoolfit/fitness-server/internal/standards"
	dbbuilder "github.com/schoolfit/fitness-server/pkg/database"
)

func setupTestDB(tb testing.TB) *repository.ResultRepository {
	tb.Helper()

	db, err := dbbuilder.New(
		dbbuilder.WithDriver("sqlite3"),
		dbbuilder.WithDataSource(":memory:"),
		dbbuilder.WithMaxOpenConns(1),
	)
	if err != nil {
		tb.Fatalf("failed to create db pool via builder: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE fitness_results (
			id INTEGER PRIMARY KEY,
			student_id TEXT,
			name TEXT,
			sex INTEGER,
			grade INTEGER,
			grade_id TEXT,
			year INTEGER,
			endurance_run REAL,
			sprint REAL,
			sit_and_reach REAL,
			standing_jump REAL,
			vital_capacity REAL,
			strength_reps REAL
		);
		INSERT INTO fitness_results
			(student_id, name, sex, grade, grade_id, year,
			 endurance_run, sprint, sit_and_reach, standing_jump, vital_capacity, strength_reps)
		VALUES
			('s01', 'Avery',  1, 1, 'g1', 2024, 220, 7.7, 16.2, 225, 3280, 11),
			('s02', 'Blake',  2, 1, 'g1', 2024, 214, NULL, 18.8, 166, 2450, NULL),
			('s03', 'Casey',  1, 1, 'g1', 2024, NULL, 8.0, NULL, 175, NULL, 7),
			('s01', 'Avery',  1, 2, 'g1', 2025, 215, 7.5, 17.2, 230, 3580, 13),
			('s04', 'Drew',   2, 2, 'g2', 2025, 216, 8.5, 17.9, 163, 2450, 44);
	`)
	if err != nil {
		db.Close()
		tb.Fatalf("failed to seed db: %v", err)
	}

	tb.Cleanup(func() { db.Close() })

	return repository.NewResultRepository(db)
}

func TestAvailableYears(t *testing.T) {
	repo := setupTestDB(t)

	years, err := repo.AvailableYears(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025}, years)

	years, err = repo.AvailableYears(context.Background(), "g9")
	require.NoError(t, err)
	assert.Empty(t, years)
}

func TestStudentAvailableYears(t *testing.T) {
	repo := setupTestDB(t)

	years, err := repo.StudentAvailableYears(context.Background(), "s01")
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025}, years)

	years, err = repo.StudentAvailableYears(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, years)
}

func TestFetchPage(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	t.Run("full page with total", func(t *testing.T) {
		page, err := repo.FetchPage(ctx, "g1", 2024, 1, 50)
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		require.Len(t, page.Records, 3)

		first := page.Records[0]
		assert.Equal(t, "s01", first.StudentID)
		assert.Equal(t, standards.Male, first.Sex)
		assert.Equal(t, standards.Grade(1), first.Grade)
		require.NotNil(t, first.EnduranceRun)
		assert.Equal(t, 220.0, *first.EnduranceRun)
	})

	t.Run("null measurements stay nil", func(t *testing.T) {
		page, err := repo.FetchPage(ctx, "g1", 2024, 1, 50)
		require.NoError(t, err)

		blake := page.Records[1]
		assert.Equal(t, "s02", blake.StudentID)
		assert.Nil(t, blake.Sprint)
		assert.Nil(t, blake.StrengthReps)
		require.NotNil(t, blake.SitAndReach)
		assert.Equal(t, 18.8, *blake.SitAndReach)
	})

	t.Run("pagination is deterministic", func(t *testing.T) {
		p1, err := repo.FetchPage(ctx, "g1", 2024, 1, 2)
		require.NoError(t, err)
		p2, err := repo.FetchPage(ctx, "g1", 2024, 2, 2)
		require.NoError(t, err)

		assert.Equal(t, 3, p1.Total)
		require.Len(t, p1.Records, 2)
		require.Len(t, p2.Records, 1)
		assert.Equal(t, "s01", p1.Records[0].StudentID)
		assert.Equal(t, "s02", p1.Records[1].StudentID)
		assert.Equal(t, "s03", p2.Records[0].StudentID)
	})

	t.Run("invalid paging rejected", func(t *testing.T) {
		_, err := repo.FetchPage(ctx, "g1", 2024, 0, 50)
		assert.Error(t, err)
	})
}

func TestStudentByID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rec, err := repo.StudentByID(ctx, "s01", 2025)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, standards.Grade(2), rec.Grade)
		require.NotNil(t, rec.StrengthReps)
		assert.Equal(t, 13.0, *rec.StrengthReps)
	})

	t.Run("absent year returns nil without error", func(t *testing.T) {
		rec, err := repo.StudentByID(ctx, "s01", 2020)
		require.NoError(t, err)
		assert.Nil(t, rec)
	})
}

func TestRepositoryClosedDB(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo := repository.NewResultRepository(db)
	_, err = repo.AvailableYears(context.Background(), "g1")
	assert.Error(t, err)
}
