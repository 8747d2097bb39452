package standards

import "fmt"

// Breakpoint is one (score, threshold) step of a graduated table.
type Breakpoint struct {
	Score     int
	Threshold float64
}

// Table is the ordered breakpoint list for one (item, sex, grade) cell,
// highest score first. The terminal entry always carries score 0 and acts as
// the floor when no other breakpoint is reached. Tables are package data and
// are never mutated at runtime.
type Table []Breakpoint

// itemTables is indexed by item, then sex (Male first), then grade-1.
// Thresholds follow the published graduated standards: for the two
// time-based items a smaller raw value is better, for the remaining four a
// larger raw value is better.
var itemTables = [ItemCount][2][3]Table{
	EnduranceRun: {
		{ // male, 1000m run, seconds
			{{100, 207}, {95, 214}, {90, 220}, {85, 226}, {80, 232}, {75, 238}, {70, 245}, {65, 252}, {60, 260}, {50, 275}, {40, 290}, {30, 305}, {20, 320}, {10, 335}, {0, 350}},
			{{100, 202}, {95, 209}, {90, 215}, {85, 221}, {80, 227}, {75, 233}, {70, 240}, {65, 247}, {60, 255}, {50, 270}, {40, 285}, {30, 300}, {20, 315}, {10, 330}, {0, 345}},
			{{100, 197}, {95, 204}, {90, 210}, {85, 216}, {80, 222}, {75, 228}, {70, 235}, {65, 242}, {60, 250}, {50, 265}, {40, 280}, {30, 295}, {20, 310}, {10, 325}, {0, 340}},
		},
		{ // female, 800m run, seconds
			{{100, 195}, {95, 202}, {90, 208}, {85, 214}, {80, 220}, {75, 226}, {70, 233}, {65, 240}, {60, 248}, {50, 263}, {40, 278}, {30, 293}, {20, 308}, {10, 323}, {0, 338}},
			{{100, 191}, {95, 198}, {90, 204}, {85, 210}, {80, 216}, {75, 222}, {70, 229}, {65, 236}, {60, 244}, {50, 259}, {40, 274}, {30, 289}, {20, 304}, {10, 319}, {0, 334}},
			{{100, 187}, {95, 194}, {90, 200}, {85, 206}, {80, 212}, {75, 218}, {70, 225}, {65, 232}, {60, 240}, {50, 255}, {40, 270}, {30, 285}, {20, 300}, {10, 315}, {0, 330}},
		},
	},
	Sprint: {
		{ // male, 50m, seconds
			{{100, 7.5}, {95, 7.6}, {90, 7.7}, {85, 7.8}, {80, 8.0}, {75, 8.2}, {70, 8.4}, {65, 8.6}, {60, 8.8}, {50, 9.2}, {40, 9.6}, {30, 10.0}, {20, 10.4}, {10, 10.8}, {0, 11.2}},
			{{100, 7.3}, {95, 7.4}, {90, 7.5}, {85, 7.6}, {80, 7.8}, {75, 8.0}, {70, 8.2}, {65, 8.4}, {60, 8.6}, {50, 9.0}, {40, 9.4}, {30, 9.8}, {20, 10.2}, {10, 10.6}, {0, 11.0}},
			{{100, 7.1}, {95, 7.2}, {90, 7.3}, {85, 7.4}, {80, 7.6}, {75, 7.8}, {70, 8.0}, {65, 8.2}, {60, 8.4}, {50, 8.8}, {40, 9.2}, {30, 9.6}, {20, 10.0}, {10, 10.4}, {0, 10.8}},
		},
		{ // female, 50m, seconds
			{{100, 7.9}, {95, 8.0}, {90, 8.2}, {85, 8.4}, {80, 8.6}, {75, 8.8}, {70, 9.0}, {65, 9.2}, {60, 9.4}, {50, 9.8}, {40, 10.2}, {30, 10.6}, {20, 11.0}, {10, 11.4}, {0, 11.8}},
			{{100, 7.8}, {95, 7.9}, {90, 8.1}, {85, 8.3}, {80, 8.5}, {75, 8.7}, {70, 8.9}, {65, 9.1}, {60, 9.3}, {50, 9.7}, {40, 10.1}, {30, 10.5}, {20, 10.9}, {10, 11.3}, {0, 11.7}},
			{{100, 7.7}, {95, 7.8}, {90, 8.0}, {85, 8.2}, {80, 8.4}, {75, 8.6}, {70, 8.8}, {65, 9.0}, {60, 9.2}, {50, 9.6}, {40, 10.0}, {30, 10.4}, {20, 10.8}, {10, 11.2}, {0, 11.6}},
		},
	},
	SitAndReach: {
		{ // male, centimeters
			{{100, 21.6}, {95, 19.8}, {90, 18.0}, {85, 16.2}, {80, 14.4}, {75, 12.6}, {70, 10.8}, {65, 9.0}, {60, 7.2}, {50, 5.4}, {40, 3.6}, {30, 1.8}, {20, 1.0}, {10, 0.4}, {0, 0}},
			{{100, 22.6}, {95, 20.8}, {90, 19.0}, {85, 17.2}, {80, 15.4}, {75, 13.6}, {70, 11.8}, {65, 10.0}, {60, 8.2}, {50, 6.4}, {40, 4.6}, {30, 2.8}, {20, 1.4}, {10, 0.6}, {0, 0}},
			{{100, 23.6}, {95, 21.8}, {90, 20.0}, {85, 18.2}, {80, 16.4}, {75, 14.6}, {70, 12.8}, {65, 11.0}, {60, 9.2}, {50, 7.4}, {40, 5.6}, {30, 3.8}, {20, 2.0}, {10, 0.8}, {0, 0}},
		},
		{ // female, centimeters
			{{100, 23.6}, {95, 22.0}, {90, 20.4}, {85, 18.8}, {80, 17.2}, {75, 15.6}, {70, 14.0}, {65, 12.4}, {60, 10.8}, {50, 8.6}, {40, 6.4}, {30, 4.2}, {20, 2.0}, {10, 0.8}, {0, 0}},
			{{100, 24.5}, {95, 22.9}, {90, 21.3}, {85, 19.5}, {80, 17.9}, {75, 16.3}, {70, 14.7}, {65, 13.1}, {60, 11.5}, {50, 9.3}, {40, 7.1}, {30, 4.9}, {20, 2.7}, {10, 1.1}, {0, 0}},
			{{100, 25.1}, {95, 23.5}, {90, 21.8}, {85, 20.1}, {80, 18.3}, {75, 16.7}, {70, 15.1}, {65, 13.5}, {60, 11.9}, {50, 9.7}, {40, 7.5}, {30, 5.3}, {20, 3.1}, {10, 1.3}, {0, 0}},
		},
	},
	StandingJump: {
		{ // male, centimeters
			{{100, 225}, {95, 220}, {90, 215}, {85, 210}, {80, 203}, {75, 196}, {70, 189}, {65, 182}, {60, 175}, {50, 163}, {40, 151}, {30, 139}, {20, 127}, {10, 115}, {0, 0}},
			{{100, 230}, {95, 225}, {90, 220}, {85, 215}, {80, 208}, {75, 201}, {70, 194}, {65, 187}, {60, 180}, {50, 168}, {40, 156}, {30, 144}, {20, 132}, {10, 120}, {0, 0}},
			{{100, 240}, {95, 235}, {90, 230}, {85, 225}, {80, 218}, {75, 211}, {70, 204}, {65, 197}, {60, 190}, {50, 178}, {40, 166}, {30, 154}, {20, 142}, {10, 130}, {0, 0}},
		},
		{ // female, centimeters
			{{100, 181}, {95, 176}, {90, 171}, {85, 166}, {80, 160}, {75, 154}, {70, 148}, {65, 142}, {60, 136}, {50, 126}, {40, 116}, {30, 106}, {20, 96}, {10, 86}, {0, 0}},
			{{100, 184}, {95, 179}, {90, 174}, {85, 169}, {80, 163}, {75, 157}, {70, 151}, {65, 145}, {60, 139}, {50, 129}, {40, 119}, {30, 109}, {20, 99}, {10, 89}, {0, 0}},
			{{100, 187}, {95, 182}, {90, 177}, {85, 172}, {80, 166}, {75, 160}, {70, 154}, {65, 148}, {60, 142}, {50, 132}, {40, 122}, {30, 112}, {20, 102}, {10, 92}, {0, 0}},
		},
	},
	VitalCapacity: {
		{ // male, milliliters
			{{100, 3940}, {95, 3720}, {90, 3500}, {85, 3280}, {80, 3060}, {75, 2840}, {70, 2620}, {65, 2400}, {60, 2180}, {50, 1960}, {40, 1740}, {30, 1520}, {20, 1300}, {10, 1080}, {0, 0}},
			{{100, 4240}, {95, 4020}, {90, 3800}, {85, 3580}, {80, 3360}, {75, 3140}, {70, 2920}, {65, 2700}, {60, 2480}, {50, 2260}, {40, 2040}, {30, 1820}, {20, 1600}, {10, 1380}, {0, 0}},
			{{100, 4540}, {95, 4320}, {90, 4100}, {85, 3880}, {80, 3660}, {75, 3440}, {70, 3220}, {65, 3000}, {60, 2780}, {50, 2560}, {40, 2340}, {30, 2120}, {20, 1900}, {10, 1680}, {0, 0}},
		},
		{ // female, milliliters
			{{100, 2900}, {95, 2750}, {90, 2600}, {85, 2450}, {80, 2300}, {75, 2150}, {70, 2000}, {65, 1850}, {60, 1700}, {50, 1550}, {40, 1400}, {30, 1250}, {20, 1100}, {10, 950}, {0, 0}},
			{{100, 3050}, {95, 2900}, {90, 2750}, {85, 2600}, {80, 2450}, {75, 2300}, {70, 2150}, {65, 2000}, {60, 1850}, {50, 1700}, {40, 1550}, {30, 1400}, {20, 1250}, {10, 1100}, {0, 0}},
			{{100, 3200}, {95, 3050}, {90, 2900}, {85, 2750}, {80, 2600}, {75, 2450}, {70, 2300}, {65, 2150}, {60, 2000}, {50, 1850}, {40, 1700}, {30, 1550}, {20, 1400}, {10, 1250}, {0, 0}},
		},
	},
	StrengthReps: {
		{ // male, pull-ups
			{{100, 15}, {95, 14}, {90, 13}, {85, 12}, {80, 11}, {75, 10}, {70, 9}, {65, 8}, {60, 7}, {50, 6}, {40, 5}, {30, 4}, {20, 3}, {10, 2}, {0, 0}},
			{{100, 16}, {95, 15}, {90, 14}, {85, 13}, {80, 12}, {75, 11}, {70, 10}, {65, 9}, {60, 8}, {50, 7}, {40, 6}, {30, 5}, {20, 4}, {10, 3}, {0, 0}},
			{{100, 17}, {95, 16}, {90, 15}, {85, 14}, {80, 13}, {75, 12}, {70, 11}, {65, 10}, {60, 9}, {50, 8}, {40, 7}, {30, 6}, {20, 5}, {10, 4}, {0, 0}},
		},
		{ // female, one-minute sit-ups
			{{100, 52}, {95, 49}, {90, 46}, {85, 44}, {80, 42}, {75, 40}, {70, 38}, {65, 36}, {60, 34}, {50, 30}, {40, 26}, {30, 22}, {20, 18}, {10, 14}, {0, 0}},
			{{100, 54}, {95, 51}, {90, 48}, {85, 46}, {80, 44}, {75, 42}, {70, 40}, {65, 38}, {60, 36}, {50, 32}, {40, 28}, {30, 24}, {20, 20}, {10, 16}, {0, 0}},
			{{100, 56}, {95, 53}, {90, 50}, {85, 48}, {80, 46}, {75, 44}, {70, 42}, {65, 40}, {60, 38}, {50, 34}, {40, 30}, {30, 26}, {20, 22}, {10, 18}, {0, 0}},
		},
	},
}

// TableFor returns the table for one (item, sex, grade) cell. The returned
// slice shares the package data and must not be modified.
func TableFor(item Item, sex Sex, grade Grade) (Table, error) {
	if !item.Valid() {
		return nil, fmt.Errorf("%w: item %d", ErrInvalidArgument, int(item))
	}
	if !sex.Valid() {
		return nil, fmt.Errorf("%w: sex %d", ErrInvalidArgument, int(sex))
	}
	if !grade.Valid() {
		return nil, fmt.Errorf("%w: grade %d", ErrInvalidArgument, int(grade))
	}
	return itemTables[item][sex-1][grade-1], nil
}
