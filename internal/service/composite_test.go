package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/schoolfit/fitness-server/internal/repository/models"
	"github.com/schoolfit/fitness-server/internal/standards"
)

func fptr(v float64) *float64 {
	return &v
}

func TestComposeFullRecord(t *testing.T) {
	rec := models.RawStudentRecord{
		StudentID:     "s1",
		Name:          "Student One",
		Sex:           standards.Male,
		Grade:         1,
		Year:          2025,
		EnduranceRun:  fptr(220),  // 90
		Sprint:        fptr(7.7),  // 90
		SitAndReach:   fptr(16.2), // 85
		StandingJump:  fptr(225),  // 100
		VitalCapacity: fptr(3280), // 85
		StrengthReps:  fptr(11),   // 80
	}

	got := Compose(zap.NewNop(), rec)

	assert.Equal(t, "s1", got.StudentID)
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, 6, got.ItemsPresent)

	wantScores := [standards.ItemCount]int{90, 90, 85, 100, 85, 80}
	for item, want := range wantScores {
		assert.Equal(t, want, got.Items[item].Score, "item %s", standards.Item(item))
	}

	assert.Equal(t, 530, got.Total)
	assert.InDelta(t, 530.0/6, got.Average, 1e-9)
	assert.Equal(t, standards.LevelExcellent, got.Level)
}

// A student with only three measurements keeps the fixed six-way divisor:
// the composite average counts the missing items as zero, unlike the grade
// aggregator's valid-items average computed from the same scores.
func TestComposePartialRecordKeepsFixedDivisor(t *testing.T) {
	rec := models.RawStudentRecord{
		StudentID:     "s2",
		Sex:           standards.Male,
		Grade:         1,
		Year:          2025,
		EnduranceRun:  fptr(220),  // 90
		StandingJump:  fptr(175),  // 60
		VitalCapacity: fptr(2180), // 60
	}

	got := Compose(zap.NewNop(), rec)

	assert.Equal(t, 3, got.ItemsPresent)
	assert.Equal(t, 210, got.Total)
	assert.InDelta(t, 35.0, got.Average, 1e-9)
	assert.Equal(t, standards.LevelFail, got.Level)

	assert.Equal(t, standards.LevelNoData, got.Items[standards.Sprint].Level)
	assert.Equal(t, 0, got.Items[standards.Sprint].Score)
	assert.Equal(t, standards.LevelNoData, got.Items[standards.SitAndReach].Level)
	assert.Equal(t, standards.LevelNoData, got.Items[standards.StrengthReps].Level)

	// The aggregator's valid-items average for the same student.
	agg, err := Aggregate([]CompositeRecord{got})
	assert.NoError(t, err)
	assert.InDelta(t, 70.0, agg.TopStudents[0].Average, 1e-9)
}

func TestComposeEmptyRecord(t *testing.T) {
	got := Compose(zap.NewNop(), models.RawStudentRecord{
		StudentID: "s3",
		Sex:       standards.Female,
		Grade:     2,
		Year:      2024,
	})

	assert.Equal(t, 0, got.ItemsPresent)
	assert.Equal(t, 0, got.Total)
	assert.Equal(t, 0.0, got.Average)
	assert.Equal(t, standards.LevelFail, got.Level)
	for item := range got.Items {
		assert.Equal(t, standards.LevelNoData, got.Items[item].Level, "item %s", standards.Item(item))
	}
}

// A scoring failure on one item must not abort the other five.
func TestComposeIsolatesCalculationErrors(t *testing.T) {
	rec := models.RawStudentRecord{
		StudentID:    "s4",
		Sex:          standards.Male,
		Grade:        1,
		Year:         2025,
		Sprint:       fptr(-3), // invalid, fails scoring
		StandingJump: fptr(225),
	}

	got := Compose(zap.NewNop(), rec)

	assert.Equal(t, standards.LevelCalcError, got.Items[standards.Sprint].Level)
	assert.Equal(t, 0, got.Items[standards.Sprint].Score)
	assert.Equal(t, 100, got.Items[standards.StandingJump].Score)
	assert.Equal(t, 1, got.ItemsPresent)
	assert.Equal(t, 100, got.Total)
}

func TestComposeDeterministic(t *testing.T) {
	rec := models.RawStudentRecord{
		StudentID:    "s5",
		Sex:          standards.Female,
		Grade:        3,
		Year:         2025,
		SitAndReach:  fptr(20),
		StandingJump: fptr(150),
	}

	first := Compose(zap.NewNop(), rec)
	second := Compose(zap.NewNop(), rec)
	assert.Equal(t, first, second)
}
