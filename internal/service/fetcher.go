package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/schoolfit/fitness-server/internal/repository/models"
	"github.com/schoolfit/fitness-server/pkg/metrics"
)

const (
	defaultPageSize    = 50
	defaultMaxParallel = 5
	defaultBatchPause  = 100 * time.Millisecond
)

// FetcherConfig bounds the paged fetch against the data provider.
type FetcherConfig struct {
	// PageSize is the number of records requested per page.
	PageSize int
	// MaxParallel caps concurrent in-flight provider calls per batch.
	MaxParallel int
	// BatchPause is the pause inserted between batches to bound load on
	// the provider.
	BatchPause time.Duration
}

func (c FetcherConfig) withDefaults() FetcherConfig {
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.MaxParallel <= 0 {
		c.MaxParallel = defaultMaxParallel
	}
	if c.BatchPause < 0 {
		c.BatchPause = defaultBatchPause
	}
	return c
}

// PagedFetcher collects complete grade-year and student-history result sets
// from the provider with bounded concurrency. Result ordering is fixed by
// page or year index, never by completion order.
type PagedFetcher struct {
	provider DataProvider
	logger   *zap.Logger
	metrics  *metrics.Collector
	cfg      FetcherConfig
}

// NewPagedFetcher creates a fetcher over provider.
func NewPagedFetcher(provider DataProvider, logger *zap.Logger, collector *metrics.Collector, cfg FetcherConfig) *PagedFetcher {
	if provider == nil {
		panic("provider must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PagedFetcher{
		provider: provider,
		logger:   logger.Named("fetcher"),
		metrics:  collector,
		cfg:      cfg.withDefaults(),
	}
}

// FetchGradeYear returns every record of one grade-year, concatenated in
// page order. Page 1 is fetched first to learn the total count; the
// remaining pages are fetched in batches of at most MaxParallel with a
// pause between batches. A single failed page is logged and its records are
// simply absent from the result; already-fetched pages are never discarded.
func (f *PagedFetcher) FetchGradeYear(ctx context.Context, gradeID string, year int) ([]models.RawStudentRecord, error) {
	first, err := f.fetchPage(ctx, gradeID, year, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: page 1 of grade %s year %d: %v", ErrProviderFailure, gradeID, year, err)
	}

	totalPages := (first.Total + f.cfg.PageSize - 1) / f.cfg.PageSize
	if totalPages <= 1 {
		return first.Records, nil
	}

	pages := make([][]models.RawStudentRecord, totalPages+1)
	pages[1] = first.Records

	for start := 2; start <= totalPages; start += f.cfg.MaxParallel {
		end := min(start+f.cfg.MaxParallel-1, totalPages)

		var g errgroup.Group
		for page := start; page <= end; page++ {
			page := page
			g.Go(func() error {
				p, err := f.fetchPage(ctx, gradeID, year, page)
				if err != nil {
					f.logger.Warn("page fetch failed, dropping its records",
						zap.String("grade_id", gradeID),
						zap.Int("year", year),
						zap.Int("page", page),
						zap.Error(err))
					return nil
				}
				pages[page] = p.Records
				return nil
			})
		}
		_ = g.Wait()

		if end < totalPages && f.cfg.BatchPause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.cfg.BatchPause):
			}
		}
	}

	out := make([]models.RawStudentRecord, 0, first.Total)
	for _, p := range pages {
		out = append(out, p...)
	}
	return out, nil
}

// FetchStudentYears looks up one student's record for each given year, with
// the same batching discipline as FetchGradeYear. The result is aligned
// with years; a slot is nil when the student has no record for that year or
// its lookup failed.
func (f *PagedFetcher) FetchStudentYears(ctx context.Context, studentID string, years []int) ([]*models.RawStudentRecord, error) {
	out := make([]*models.RawStudentRecord, len(years))

	for start := 0; start < len(years); start += f.cfg.MaxParallel {
		end := min(start+f.cfg.MaxParallel, len(years))

		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				f.metrics.ProviderRequestsTotal.WithLabelValues("student_by_id").Inc()
				rec, err := f.provider.StudentByID(ctx, studentID, years[i])
				if err != nil {
					f.metrics.ProviderErrorsTotal.WithLabelValues("student_by_id").Inc()
					f.logger.Warn("student year lookup failed, dropping it",
						zap.String("student_id", studentID),
						zap.Int("year", years[i]),
						zap.Error(err))
					return nil
				}
				out[i] = rec
				return nil
			})
		}
		_ = g.Wait()

		if end < len(years) && f.cfg.BatchPause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.cfg.BatchPause):
			}
		}
	}

	return out, nil
}

func (f *PagedFetcher) fetchPage(ctx context.Context, gradeID string, year, page int) (models.Page, error) {
	f.metrics.ProviderRequestsTotal.WithLabelValues("fetch_page").Inc()
	p, err := f.provider.FetchPage(ctx, gradeID, year, page, f.cfg.PageSize)
	if err != nil {
		f.metrics.ProviderErrorsTotal.WithLabelValues("fetch_page").Inc()
	}
	return p, err
}
