package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/schoolfit/fitness-server/internal/standards"
	"github.com/schoolfit/fitness-server/pkg/cache"
)

const defaultCacheTTL = 10 * time.Minute

var (
	// ErrNoData means an aggregation or analysis was invoked with zero
	// usable records. It is a structured result, not a failure of the
	// service.
	ErrNoData = errors.New("no data")

	// ErrProviderFailure wraps a failed data provider call.
	ErrProviderFailure = errors.New("provider failure")

	// ErrInvalidArgument re-exports the standards sentinel so callers can
	// match every hard precondition failure in one place.
	ErrInvalidArgument = standards.ErrInvalidArgument
)

// StatisticsService is the scoring, aggregation and trend-analysis facade.
// All reads are memoized in a process-wide store with per-kind key prefixes.
type StatisticsService struct {
	provider DataProvider
	fetcher  *PagedFetcher
	store    *cache.Store
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewStatisticsService creates a new StatisticsService instance.
func NewStatisticsService(provider DataProvider, fetcher *PagedFetcher, store *cache.Store, logger *zap.Logger, cacheTTL time.Duration) *StatisticsService {
	if provider == nil {
		panic("provider must not be nil")
	}
	if fetcher == nil {
		panic("fetcher must not be nil")
	}
	if store == nil {
		panic("store must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &StatisticsService{
		provider: provider,
		fetcher:  fetcher,
		store:    store,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// GetGradeStatistics builds (or serves from cache) the aggregate for one
// grade-year.
func (s *StatisticsService) GetGradeStatistics(ctx context.Context, gradeID string, year int) (*GradeAggregate, error) {
	if gradeID == "" {
		return nil, fmt.Errorf("%w: empty grade id", ErrInvalidArgument)
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidArgument, year)
	}

	key := fmt.Sprintf("grade_stats:%s:%d", gradeID, year)
	return cache.GetOrFetch(ctx, s.store, key, s.cacheTTL, func(ctx context.Context) (*GradeAggregate, error) {
		records, err := s.fetcher.FetchGradeYear(ctx, gradeID, year)
		if err != nil {
			return nil, err
		}

		composites := make([]CompositeRecord, 0, len(records))
		for _, rec := range records {
			composites = append(composites, Compose(s.logger, rec))
		}

		agg, err := Aggregate(composites)
		if err != nil {
			return nil, err
		}
		agg.GradeID = gradeID
		agg.Year = year

		s.logger.Info("aggregated grade statistics",
			zap.String("grade_id", gradeID),
			zap.Int("year", year),
			zap.Int("students", agg.TotalStudents),
			zap.Float64("overall_average", agg.OverallAverage))

		return agg, nil
	})
}

// GetStudentComposite returns one student's scored record for one year.
func (s *StatisticsService) GetStudentComposite(ctx context.Context, studentID string, year int) (*CompositeRecord, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: empty student id", ErrInvalidArgument)
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: year %d", ErrInvalidArgument, year)
	}

	key := fmt.Sprintf("student_composite:%s:%d", studentID, year)
	return cache.GetOrFetch(ctx, s.store, key, s.cacheTTL, func(ctx context.Context) (*CompositeRecord, error) {
		rec, err := s.provider.StudentByID(ctx, studentID, year)
		if err != nil {
			return nil, fmt.Errorf("%w: student %s year %d: %v", ErrProviderFailure, studentID, year, err)
		}
		if rec == nil {
			return nil, fmt.Errorf("%w: student %s has no record for year %d", ErrNoData, studentID, year)
		}

		comp := Compose(s.logger, *rec)
		return &comp, nil
	})
}

// GetStudentHistory builds the multi-year analysis for one student across
// every year the provider knows about.
func (s *StatisticsService) GetStudentHistory(ctx context.Context, studentID string) (*StudentHistory, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: empty student id", ErrInvalidArgument)
	}

	key := fmt.Sprintf("student_history:%s", studentID)
	return cache.GetOrFetch(ctx, s.store, key, s.cacheTTL, func(ctx context.Context) (*StudentHistory, error) {
		years, err := s.provider.StudentAvailableYears(ctx, studentID)
		if err != nil {
			return nil, fmt.Errorf("%w: years for student %s: %v", ErrProviderFailure, studentID, err)
		}
		if len(years) == 0 {
			return nil, fmt.Errorf("%w: student %s has no recorded years", ErrNoData, studentID)
		}
		sort.Ints(years)

		records, err := s.fetcher.FetchStudentYears(ctx, studentID, years)
		if err != nil {
			return nil, err
		}

		hist := &StudentHistory{StudentID: studentID}
		for item := standards.Item(0); item < standards.ItemCount; item++ {
			hist.Items[item].Item = item
		}

		for i, rec := range records {
			if rec == nil {
				continue
			}
			comp := Compose(s.logger, *rec)
			year := years[i]

			hist.Years = append(hist.Years, year)
			hist.Trajectory = append(hist.Trajectory, YearAverage{Year: year, Average: comp.Average})

			for item := standards.Item(0); item < standards.ItemCount; item++ {
				it := comp.Items[item]
				if it.Level == standards.LevelNoData || it.Level == standards.LevelCalcError {
					continue
				}
				hist.Items[item].Points = append(hist.Items[item].Points,
					SeriesPoint{Year: year, Value: float64(it.Score)})
			}
		}

		if len(hist.Years) == 0 {
			return nil, fmt.Errorf("%w: no usable records for student %s", ErrNoData, studentID)
		}

		hist.Best = hist.Trajectory[0]
		hist.Worst = hist.Trajectory[0]
		for _, ya := range hist.Trajectory[1:] {
			if ya.Average > hist.Best.Average {
				hist.Best = ya
			}
			if ya.Average < hist.Worst.Average {
				hist.Worst = ya
			}
		}

		for item := range hist.Items {
			analyzeItemSeries(&hist.Items[item])
		}

		return hist, nil
	})
}

// GetGradeHistory builds the multi-year analysis for a whole grade from its
// per-year aggregates. Years whose aggregation fails are dropped from the
// series rather than aborting the analysis.
func (s *StatisticsService) GetGradeHistory(ctx context.Context, gradeID string) (*GradeHistory, error) {
	if gradeID == "" {
		return nil, fmt.Errorf("%w: empty grade id", ErrInvalidArgument)
	}

	key := fmt.Sprintf("grade_history:%s", gradeID)
	return cache.GetOrFetch(ctx, s.store, key, s.cacheTTL, func(ctx context.Context) (*GradeHistory, error) {
		years, err := s.provider.AvailableYears(ctx, gradeID)
		if err != nil {
			return nil, fmt.Errorf("%w: years for grade %s: %v", ErrProviderFailure, gradeID, err)
		}
		if len(years) == 0 {
			return nil, fmt.Errorf("%w: grade %s has no recorded years", ErrNoData, gradeID)
		}
		sort.Ints(years)

		hist := &GradeHistory{GradeID: gradeID}
		for item := standards.Item(0); item < standards.ItemCount; item++ {
			hist.Items[item].Item = item
		}

		for _, year := range years {
			agg, err := s.GetGradeStatistics(ctx, gradeID, year)
			if err != nil {
				if errors.Is(err, ErrNoData) || errors.Is(err, ErrProviderFailure) {
					s.logger.Warn("dropping year from grade history",
						zap.String("grade_id", gradeID),
						zap.Int("year", year),
						zap.Error(err))
					continue
				}
				return nil, err
			}

			hist.Years = append(hist.Years, year)
			hist.OverallTrajectory = append(hist.OverallTrajectory,
				YearAverage{Year: year, Average: agg.OverallAverage})
			for item := standards.Item(0); item < standards.ItemCount; item++ {
				hist.Items[item].Points = append(hist.Items[item].Points,
					SeriesPoint{Year: year, Value: agg.ItemAverages[item]})
			}
		}

		if len(hist.Years) == 0 {
			return nil, fmt.Errorf("%w: no usable years for grade %s", ErrNoData, gradeID)
		}

		for item := range hist.Items {
			analyzeItemSeries(&hist.Items[item])
		}

		return hist, nil
	})
}

// InvalidateCache removes cached results matching the scope prefix; an
// empty scope clears everything. Returns the number of entries removed.
func (s *StatisticsService) InvalidateCache(scope string) int {
	removed := s.store.Invalidate(scope)
	s.logger.Info("cache invalidated",
		zap.String("scope", scope),
		zap.Int("removed", removed))
	return removed
}

// CacheStats reports the memo store's entry count and oldest-entry age.
func (s *StatisticsService) CacheStats() cache.Stats {
	return s.store.Stats()
}
