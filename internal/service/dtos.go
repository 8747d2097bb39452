package service

import (
	"github.com/schoolfit/fitness-server/internal/standards"
)

// CompositeRecord is one student's fully scored result for one year. It is
// always fully populated: items without data carry score 0 and an
// explanatory level instead of being omitted.
type CompositeRecord struct {
	StudentID string          `json:"student_id"`
	Name      string          `json:"name"`
	Sex       standards.Sex   `json:"sex"`
	Grade     standards.Grade `json:"grade"`
	Year      int             `json:"year"`

	// Items is indexed by standards.Item.
	Items [standards.ItemCount]standards.ItemScore `json:"items"`

	Total int `json:"total"`
	// Average always divides by six, counting missing and errored items
	// as zero. The grade aggregator's per-student average divides by the
	// number of valid items instead; the two are intentionally distinct.
	Average      float64         `json:"average"`
	Level        standards.Level `json:"level"`
	ItemsPresent int             `json:"items_present"`
}

// StudentRank is one row of the top-by-total ranking.
type StudentRank struct {
	StudentID string          `json:"student_id"`
	Name      string          `json:"name"`
	Total     int             `json:"total"`
	Average   float64         `json:"average"`
	Level     standards.Level `json:"level"`
}

// ItemRank is one row of a per-item ranking.
type ItemRank struct {
	StudentID string          `json:"student_id"`
	Name      string          `json:"name"`
	Score     int             `json:"score"`
	Level     standards.Level `json:"level"`
}

// GradeAggregate is the grade-wide statistical summary for one year. It is
// derived in a single pass over the grade's composite records and never
// mutated once built.
type GradeAggregate struct {
	GradeID string `json:"grade_id"`
	Year    int    `json:"year"`

	TotalStudents int `json:"total_students"`
	MaleCount     int `json:"male_count"`
	FemaleCount   int `json:"female_count"`

	// Per-item averages over valid scores only (valid = score > 0);
	// 0 when an item has no valid entries. Indexed by standards.Item.
	ItemAverages       [standards.ItemCount]float64 `json:"item_averages"`
	MaleItemAverages   [standards.ItemCount]float64 `json:"male_item_averages"`
	FemaleItemAverages [standards.ItemCount]float64 `json:"female_item_averages"`

	OverallAverage float64 `json:"overall_average"`
	MaleAverage    float64 `json:"male_average"`
	FemaleAverage  float64 `json:"female_average"`

	// LevelCounts histograms students by the level of their valid-items
	// average.
	LevelCounts map[standards.Level]int `json:"level_counts"`

	// TopStudents holds at most five students by total score; ties keep
	// their encounter order. TopByItem is the same per item.
	TopStudents []StudentRank                   `json:"top_students"`
	TopByItem   [standards.ItemCount][]ItemRank `json:"top_by_item"`

	// The two items with the lowest average score, ascending.
	WeakestItems  []standards.Item `json:"weakest_items"`
	MaleWeakest   []standards.Item `json:"male_weakest"`
	FemaleWeakest []standards.Item `json:"female_weakest"`
}

// Improvement summarizes first-to-last change over a score series.
type Improvement struct {
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Improved      bool    `json:"improved"`
}

// Trend is the qualitative classification of a multi-year series.
type Trend string

const (
	TrendRising   Trend = "rising"
	TrendFalling  Trend = "falling"
	TrendStable   Trend = "stable"
	TrendVolatile Trend = "volatile"
)

// SeriesPoint is one year's value in a score series.
type SeriesPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// ItemSeries is the multi-year series for one item, with its improvement
// summary and trend when at least two data points exist. With fewer points
// the series is still reported and Improvement stays nil.
type ItemSeries struct {
	Item        standards.Item `json:"item"`
	Points      []SeriesPoint  `json:"points"`
	Improvement *Improvement   `json:"improvement,omitempty"`
	Trend       Trend          `json:"trend,omitempty"`
}

// YearAverage is one year's average score.
type YearAverage struct {
	Year    int     `json:"year"`
	Average float64 `json:"average"`
}

// StudentHistory is the multi-year analysis for a single student.
type StudentHistory struct {
	StudentID string `json:"student_id"`
	Years     []int  `json:"years"`

	Items [standards.ItemCount]ItemSeries `json:"items"`

	Best       YearAverage   `json:"best"`
	Worst      YearAverage   `json:"worst"`
	Trajectory []YearAverage `json:"trajectory"`
}

// GradeHistory is the multi-year analysis for a whole grade, built from the
// grade's per-year aggregates.
type GradeHistory struct {
	GradeID string `json:"grade_id"`
	Years   []int  `json:"years"`

	Items [standards.ItemCount]ItemSeries `json:"items"`

	OverallTrajectory []YearAverage `json:"overall_trajectory"`
}
