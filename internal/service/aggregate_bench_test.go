package service

import (
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/schoolfit/fitness-server/internal/repository/models"
	"github.com/schoolfit/fitness-server/internal/standards"
)

func benchRecords(n int) []CompositeRecord {
	logger := zap.NewNop()
	out := make([]CompositeRecord, 0, n)
	for i := 0; i < n; i++ {
		sex := standards.Male
		if i%2 == 1 {
			sex = standards.Female
		}
		run := 200 + float64(i%120)
		jump := 120 + float64(i%110)
		vc := 1500 + float64((i*37)%2600)
		out = append(out, Compose(logger, models.RawStudentRecord{
			StudentID:     fmt.Sprintf("s%04d", i),
			Sex:           sex,
			Grade:         standards.Grade(1 + i%3),
			Year:          2025,
			EnduranceRun:  &run,
			StandingJump:  &jump,
			VitalCapacity: &vc,
		}))
	}
	return out
}

func BenchmarkAggregate(b *testing.B) {
	records := benchRecords(500)

	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Aggregate(records)
	}
}

func BenchmarkCompose(b *testing.B) {
	logger := zap.NewNop()
	run := 220.0
	jump := 210.0
	rec := models.RawStudentRecord{
		StudentID:    "s1",
		Sex:          standards.Male,
		Grade:        1,
		Year:         2025,
		EnduranceRun: &run,
		StandingJump: &jump,
	}

	b.ReportAllocs()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compose(logger, rec)
	}
}
