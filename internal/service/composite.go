package service

import (
	"go.uber.org/zap"

	"github.com/schoolfit/fitness-server/internal/repository/models"
	"github.com/schoolfit/fitness-server/internal/standards"
)

// itemAccessors maps every item to its raw-measurement field. The fixed
// array keeps the six items exhaustively covered at compile time; the
// composite scorer iterates it instead of switching on item names.
var itemAccessors = [standards.ItemCount]func(*models.RawStudentRecord) *float64{
	standards.EnduranceRun:  func(r *models.RawStudentRecord) *float64 { return r.EnduranceRun },
	standards.Sprint:        func(r *models.RawStudentRecord) *float64 { return r.Sprint },
	standards.SitAndReach:   func(r *models.RawStudentRecord) *float64 { return r.SitAndReach },
	standards.StandingJump:  func(r *models.RawStudentRecord) *float64 { return r.StandingJump },
	standards.VitalCapacity: func(r *models.RawStudentRecord) *float64 { return r.VitalCapacity },
	standards.StrengthReps:  func(r *models.RawStudentRecord) *float64 { return r.StrengthReps },
}

// compositeDivisor is the fixed divisor of the composite average. Missing
// and errored items count as zero rather than shrinking the divisor; the
// grade aggregator deliberately uses the other definition.
const compositeDivisor = standards.ItemCount

// Compose scores all six items of one raw record and builds the student's
// composite for that year. A missing measurement becomes score 0 with level
// no_data; a scoring failure is isolated to its item (score 0, level
// calc_error, logged) and never aborts the remaining items. Compose is
// total: given validated inputs it always returns a fully populated record.
func Compose(logger *zap.Logger, rec models.RawStudentRecord) CompositeRecord {
	if logger == nil {
		logger = zap.NewNop()
	}

	out := CompositeRecord{
		StudentID: rec.StudentID,
		Name:      rec.Name,
		Sex:       rec.Sex,
		Grade:     rec.Grade,
		Year:      rec.Year,
	}

	for item := standards.Item(0); item < standards.ItemCount; item++ {
		raw := itemAccessors[item](&rec)
		if raw == nil {
			out.Items[item] = standards.ItemScore{Score: 0, Level: standards.LevelNoData}
			continue
		}

		scored, err := standards.Score(item, rec.Sex, rec.Grade, *raw)
		if err != nil {
			logger.Warn("item scoring failed",
				zap.String("student_id", rec.StudentID),
				zap.Int("year", rec.Year),
				zap.Stringer("item", item),
				zap.Float64("raw", *raw),
				zap.Error(err))
			out.Items[item] = standards.ItemScore{Score: 0, Level: standards.LevelCalcError}
			continue
		}

		out.Items[item] = scored
		out.ItemsPresent++
	}

	for _, it := range out.Items {
		out.Total += it.Score
	}
	out.Average = float64(out.Total) / compositeDivisor
	out.Level = standards.LevelFor(out.Average)

	return out
}
