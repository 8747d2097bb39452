// Package standards holds the graduated scoring tables for the six national
// fitness test items and the pure lookup that converts a raw measurement
// into a score and level.
package standards

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sex identifies the standard table variant for a student.
type Sex int

const (
	Male Sex = iota + 1
	Female
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return fmt.Sprintf("sex(%d)", int(s))
	}
}

// Valid reports whether s is one of the two table variants.
func (s Sex) Valid() bool {
	return s == Male || s == Female
}

// Grade is the school grade a standard table applies to, 1 through 3.
type Grade int

// Valid reports whether g is a grade the tables cover.
func (g Grade) Valid() bool {
	return g >= 1 && g <= 3
}

// Item is one of the six fitness test categories.
type Item int

const (
	EnduranceRun Item = iota // 1000m (male) / 800m (female) run, seconds
	Sprint                   // 50m sprint, seconds
	SitAndReach              // sit-and-reach, centimeters
	StandingJump             // standing long jump, centimeters
	VitalCapacity            // vital capacity, milliliters
	StrengthReps             // pull-ups (male) / one-minute sit-ups (female)

	ItemCount = 6
)

var itemNames = [ItemCount]string{
	EnduranceRun:  "endurance_run",
	Sprint:        "sprint",
	SitAndReach:   "sit_and_reach",
	StandingJump:  "standing_jump",
	VitalCapacity: "vital_capacity",
	StrengthReps:  "strength_reps",
}

func (i Item) String() string {
	if i < 0 || i >= ItemCount {
		return fmt.Sprintf("item(%d)", int(i))
	}
	return itemNames[i]
}

// Valid reports whether i is one of the six items.
func (i Item) Valid() bool {
	return i >= 0 && i < ItemCount
}

// LowerIsBetter reports the scoring direction of the item: true for the two
// time-based items, false for the distance/volume/repetition items.
func (i Item) LowerIsBetter() bool {
	return i == EnduranceRun || i == Sprint
}

// MarshalJSON renders the item by name so rankings and series stay readable
// on the wire.
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	item, err := ParseItem(name)
	if err != nil {
		return err
	}
	*i = item
	return nil
}

// ParseItem resolves an item name produced by Item.String.
func ParseItem(name string) (Item, error) {
	for i, n := range itemNames {
		if n == name {
			return Item(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown item %q", ErrInvalidArgument, name)
}

// Level is the categorical rating derived from a numeric score.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelPass      Level = "pass"
	LevelFail      Level = "fail"

	// The two item-only states the composite scorer records without
	// consulting a table.
	LevelNoData    Level = "no_data"
	LevelCalcError Level = "calc_error"
)

// Uniform level thresholds shared by all six tables and by the composite
// and aggregate averages.
const (
	excellentThreshold = 85
	goodThreshold      = 70
	passThreshold      = 60
)

// LevelFor maps a score or average onto the uniform 85/70/60 ladder.
func LevelFor(score float64) Level {
	switch {
	case score >= excellentThreshold:
		return LevelExcellent
	case score >= goodThreshold:
		return LevelGood
	case score >= passThreshold:
		return LevelPass
	default:
		return LevelFail
	}
}

// ErrInvalidArgument marks precondition violations: unknown sex or grade, or
// a negative/non-finite raw measurement. Callers must not use a result
// returned alongside it.
var ErrInvalidArgument = errors.New("invalid argument")
