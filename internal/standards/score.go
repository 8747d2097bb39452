package standards

import (
	"fmt"
	"math"
)

// ItemScore is the outcome of scoring one raw measurement against a table.
type ItemScore struct {
	Score int   `json:"score"`
	Level Level `json:"level"`
}

// Score converts a raw measurement into a score and level using the
// graduated table for (item, sex, grade).
//
// The table is scanned from the highest score down; the first breakpoint
// whose threshold is reached by raw wins. "Reached" means raw <= threshold
// for the time-based items and raw >= threshold for the rest. When no
// breakpoint is reached the terminal 0-score floor applies, so every valid
// input yields a score in [0, 100].
func Score(item Item, sex Sex, grade Grade, raw float64) (ItemScore, error) {
	table, err := TableFor(item, sex, grade)
	if err != nil {
		return ItemScore{}, err
	}
	if raw < 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return ItemScore{}, fmt.Errorf("%w: raw measurement %v for %s", ErrInvalidArgument, raw, item)
	}

	lower := item.LowerIsBetter()
	for _, bp := range table {
		if reached(raw, bp.Threshold, lower) {
			return ItemScore{Score: bp.Score, Level: LevelFor(float64(bp.Score))}, nil
		}
	}

	floor := table[len(table)-1]
	return ItemScore{Score: floor.Score, Level: LevelFor(float64(floor.Score))}, nil
}

func reached(raw, threshold float64, lowerIsBetter bool) bool {
	if lowerIsBetter {
		return raw <= threshold
	}
	return raw >= threshold
}
