package service

import (
	"sort"

	"github.com/schoolfit/fitness-server/internal/standards"
)

const topListSize = 5

// Aggregate reduces all composite records of one grade-year into a
// GradeAggregate in a single pass. Returns ErrNoData when the record set is
// empty.
//
// Per-student averages here divide by the number of valid items (score > 0)
// rather than by six; this intentionally differs from CompositeRecord.Average
// and the two are kept as separate operations.
func Aggregate(records []CompositeRecord) (*GradeAggregate, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	agg := &GradeAggregate{
		TotalStudents: len(records),
		LevelCounts:   make(map[standards.Level]int),
	}

	var (
		itemSum    [standards.ItemCount]float64
		itemValid  [standards.ItemCount]int
		sexSum     [2][standards.ItemCount]float64
		sexValid   [2][standards.ItemCount]int
		withData   int
		sexWith    [2]int
		ranks      = make([]StudentRank, 0, len(records))
		itemRanks  [standards.ItemCount][]ItemRank
	)

	for _, rec := range records {
		sexIdx := -1
		switch rec.Sex {
		case standards.Male:
			agg.MaleCount++
			sexIdx = 0
		case standards.Female:
			agg.FemaleCount++
			sexIdx = 1
		}

		validSum := 0
		validCount := 0
		for item := standards.Item(0); item < standards.ItemCount; item++ {
			it := rec.Items[item]
			itemRanks[item] = append(itemRanks[item], ItemRank{
				StudentID: rec.StudentID,
				Name:      rec.Name,
				Score:     it.Score,
				Level:     it.Level,
			})

			if it.Score <= 0 {
				continue
			}
			itemSum[item] += float64(it.Score)
			itemValid[item]++
			validSum += it.Score
			validCount++
			if sexIdx >= 0 {
				sexSum[sexIdx][item] += float64(it.Score)
				sexValid[sexIdx][item]++
			}
		}

		avg := 0.0
		if validCount > 0 {
			avg = float64(validSum) / float64(validCount)
			withData++
			if sexIdx >= 0 {
				sexWith[sexIdx]++
			}
		}
		level := standards.LevelFor(avg)
		agg.LevelCounts[level]++

		ranks = append(ranks, StudentRank{
			StudentID: rec.StudentID,
			Name:      rec.Name,
			Total:     rec.Total,
			Average:   avg,
			Level:     level,
		})
	}

	var gradeTotal float64
	var sexTotal [2]float64
	for item := standards.Item(0); item < standards.ItemCount; item++ {
		if itemValid[item] > 0 {
			agg.ItemAverages[item] = itemSum[item] / float64(itemValid[item])
		}
		gradeTotal += itemSum[item]
		for s := 0; s < 2; s++ {
			if sexValid[s][item] > 0 {
				avgs := sexSum[s][item] / float64(sexValid[s][item])
				if s == 0 {
					agg.MaleItemAverages[item] = avgs
				} else {
					agg.FemaleItemAverages[item] = avgs
				}
			}
			sexTotal[s] += sexSum[s][item]
		}
	}

	if withData > 0 {
		agg.OverallAverage = gradeTotal / float64(withData*standards.ItemCount)
	}
	if sexWith[0] > 0 {
		agg.MaleAverage = sexTotal[0] / float64(sexWith[0]*standards.ItemCount)
	}
	if sexWith[1] > 0 {
		agg.FemaleAverage = sexTotal[1] / float64(sexWith[1]*standards.ItemCount)
	}

	// Stable sorts keep encounter order between tied students.
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Total > ranks[j].Total })
	agg.TopStudents = truncateRanks(ranks)

	for item := standards.Item(0); item < standards.ItemCount; item++ {
		rs := itemRanks[item]
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Score > rs[j].Score })
		if len(rs) > topListSize {
			rs = rs[:topListSize]
		}
		agg.TopByItem[item] = rs
	}

	agg.WeakestItems = weakestTwo(agg.ItemAverages)
	agg.MaleWeakest = weakestTwo(agg.MaleItemAverages)
	agg.FemaleWeakest = weakestTwo(agg.FemaleItemAverages)

	return agg, nil
}

func truncateRanks(ranks []StudentRank) []StudentRank {
	if len(ranks) > topListSize {
		return ranks[:topListSize]
	}
	return ranks
}

// weakestTwo returns the two items with the lowest average score, ascending.
func weakestTwo(avgs [standards.ItemCount]float64) []standards.Item {
	items := make([]standards.Item, standards.ItemCount)
	for i := range items {
		items[i] = standards.Item(i)
	}
	sort.SliceStable(items, func(i, j int) bool { return avgs[items[i]] < avgs[items[j]] })
	return items[:2]
}
